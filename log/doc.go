// Package log provides a small structured logging interface based on
// [log/slog].
//
// Output format, minimum level, timestamp layout, and caller information are
// configured at logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Info("parse complete", slog.Int("models", n))
//
// A package-level default logger writes to standard error and can be
// reconfigured with [Config]; the package-level functions [Debug], [Info],
// [Warn], and [Error] (and their Context variants) delegate to it. The CLI
// uses [Config] to apply --log-* flags before commands run.
//
// The pretty option renders colorized, human-oriented text lines and is
// meant for interactive terminals; otherwise "json" and "text" map onto the
// standard slog handlers.
package log
