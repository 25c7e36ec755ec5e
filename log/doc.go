// Package log provides a simplified leveled logging interface based on
// [log/slog].
//
// A [Logger] is configured once, when it is made, using functional
// options. Its configuration is copied rather than shared, so a Logger is
// safe for concurrent use and deriving a new one with [Logger.Wrap] never
// affects the original.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed request", slog.String("operation", "read-resource"))
//	logger.Error("parse failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// The package-level functions write to a default logger that is
// reconfigured with [Config].
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and records every state transition
// of a parse. Levels parse from names such as "debug" or "trace+2".
//
// # Output Formats
//
// [FormatText] (the default) writes one line per message. With
// [WithPretty] the line is colored for terminals that support it.
// [FormatJSON] writes one JSON object per message.
package log
