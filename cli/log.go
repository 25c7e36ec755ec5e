package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/opline/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that messages logged while kong parses already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
// Offsets such as debug-2 select levels between the named ones.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	var lvl log.Level
	if err := lvl.UnmarshalText(text); err != nil {
		return err
	}

	*l = logLevel(text)
	log.Config(log.WithLevel(lvl))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevel}"  help:"Set log level (${logLevels}, with optional +N/-N offset)."`
	Format     logFormat `default:"${logFormat}" enum:"${logFormats}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"${logTime}"   help:"Set timestamp layout (Go layout or name such as RFC3339, Kitchen, none)."`
	Caller     bool      `help:"Include caller information." negatable:""`
	Pretty     bool      `default:"true" help:"Enable colorized pretty printing of text logs." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":   log.DefaultLevel.String(),
		"logLevels":  strings.Join(slices.Collect(log.Levels()), ", "),
		"logFormat":  log.DefaultFormat.String(),
		"logFormats": strings.Join(slices.Collect(log.Formats()), ","),
		"logTime":    "RFC3339",
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies all parsed logger settings, including those that do not go
// through a TextUnmarshaler.
func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags before kong parses the command line, so the
// logger is configured regardless of flag position. Boolean flags do not
// pass through a TextUnmarshaler and are only applied here and in start.
func (f *logConfig) scan(args []string) {
	bools := map[string]struct {
		field *bool
		apply func(bool) log.Option
	}{
		"pretty": {&f.Pretty, log.WithPretty},
		"caller": {&f.Caller, log.WithCaller},
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		negated := false

		name, ok := strings.CutPrefix(arg, "--log-")
		if !ok {
			if name, ok = strings.CutPrefix(arg, "--no-log-"); !ok {
				continue
			}

			negated = true
		}

		name, value, assigned := strings.Cut(name, "=")

		// the value of a non-boolean flag may be the next argument
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "level":
			if !negated {
				_ = f.Level.UnmarshalText([]byte(next()))
			}
		case "format":
			if !negated {
				_ = f.Format.UnmarshalText([]byte(next()))
			}
		default:
			b, isBool := bools[name]
			if !isBool {
				continue
			}

			v := true
			if assigned {
				parsed, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				v = parsed
			}

			if negated {
				v = !v
			}

			*b.field = v
			log.Config(b.apply(v))
		}
	}
}
