package log

import (
	"io"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithDefaults resets every setting to its default and writes to w.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		return apply(config{},
			WithOutput(w),
			WithTimeLayout(DefaultTimeLayout),
			WithLevel(DefaultLevel),
			WithFormat(DefaultFormat),
			WithCaller(DefaultCaller),
			WithPretty(DefaultPretty),
		)
	}
}

// WithOutput sets the writer for log messages. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum level of messages written.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the layout of timestamps.
//
// The layout may name a layout of package time, such as "RFC3339" or
// "Kitchen", matched without regard to case or punctuation. Other layouts
// are passed to [time.Time.Format] verbatim. An empty layout or "none"
// omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.formatTime = makeFormatTime(layout)

		return c
	}
}

// WithCaller includes the source file and line of each call.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty styles text output with colors. It has no effect on JSON.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}
