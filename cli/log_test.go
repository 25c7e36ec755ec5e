package cli

import (
	"testing"

	"github.com/ardnew/opline/log"
)

func TestLogScan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() {
		log.Config(log.WithLevel(prev.Level()), log.WithFormat(prev.Format()))
	})

	tests := []struct {
		name   string
		args   []string
		want   logConfig
		level  log.Level
		format log.Format
	}{
		{
			name:   "separate values",
			args:   []string{"parse", "--log-level", "debug", "--log-format", "json", ":op"},
			want:   logConfig{Level: "debug", Format: "json", Pretty: true},
			level:  log.LevelDebug,
			format: log.FormatJSON,
		},
		{
			name:   "assigned values",
			args:   []string{"--log-level=trace", "--log-format=text", "--log-caller"},
			want:   logConfig{Level: "trace", Format: "text", Caller: true, Pretty: true},
			level:  log.LevelTrace,
			format: log.FormatText,
		},
		{
			name:   "negated bools",
			args:   []string{"--no-log-pretty", "--log-caller=false", "--log-level=warn"},
			want:   logConfig{Level: "warn"},
			level:  log.LevelWarn,
			format: log.FormatText,
		},
		{
			name:   "after terminator",
			args:   []string{"--log-level=error", "--", "--log-level=debug"},
			want:   logConfig{Level: "error", Pretty: true},
			level:  log.LevelError,
			format: log.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.Config(log.WithFormat(log.FormatText))

			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if f != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, f)
			}

			if got := log.Default().Level(); got != tt.level {
				t.Errorf("expected level %s, got %s", tt.level, got)
			}

			if got := log.Default().Format(); got != tt.format {
				t.Errorf("expected format %s, got %s", tt.format, got)
			}
		})
	}
}

func TestLogLevelRejectsUnknown(t *testing.T) {
	var l logLevel

	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
