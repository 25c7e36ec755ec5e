package profile

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler holds the settings of a profiling session.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option sets a field of a Profiler.
type Option func(Profiler) Profiler

// Make returns a Profiler configured by opts.
func Make(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// WithMode sets the profiling mode, one of [Modes].
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling and returns the stopper that ends it.
//
// If the build tag is unset, or p.Mode is empty or unknown, Start returns a
// no-op stopper. Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
