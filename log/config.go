package log

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const (
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// String returns the lowercase name of the level.
func (l Level) String() string {
	return strings.ToLower(slog.Level(l).String())
}

// Levels returns an iterator over the names of all defined log levels.
func Levels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, level := range []Level{
			LevelDebug,
			LevelInfo,
			LevelWarn,
			LevelError,
		} {
			if !yield(level.String()) {
				return
			}
		}
	}
}

// ParseLevel parses a string representation of a log level.
// Unrecognized strings yield [DefaultLevel].
func ParseLevel(s string) Level {
	l := new(slog.Level)

	err := l.UnmarshalText([]byte(strings.TrimSpace(s)))
	if err != nil {
		return DefaultLevel
	}

	return Level(*l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// String returns the name of the format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "text"
}

// ParseFormat parses a string representation of a log format.
// Unrecognized strings yield [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	default:
		return DefaultFormat
	}
}

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// config holds the immutable configuration of a Logger.
// A config is only mutated by options before the Logger is constructed.
type config struct {
	output     io.Writer
	timeLayout string
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// Option applies a configuration option to config.
type Option func(config) config

func makeConfig(w io.Writer, opts ...Option) config {
	if w == nil {
		w = io.Discard
	}

	cfg := config{
		output:     w,
		timeLayout: DefaultTimeLayout,
		level:      DefaultLevel,
		format:     DefaultFormat,
	}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// WithOutput sets the output writer. A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}

		c.output = w

		return c
	}
}

// WithLevel sets the minimum log level. Messages below it are discarded.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat sets the output format for log messages.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the layout used to format log timestamps.
// Named layouts from the [time] package are recognized case-insensitively
// ("RFC3339", "Kitchen", ...); any other non-empty string is passed verbatim
// to [time.Time.Format]. An empty layout disables timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		if std, ok := timeLayout[strings.ToLower(strings.TrimSpace(layout))]; ok {
			layout = std
		}

		c.timeLayout = layout

		return c
	}
}

// WithCaller controls whether caller information is included in log output.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty controls whether text output is colorized for terminals.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// timeLayout maps named layouts to their [time] package constants.
var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"none":        "",
}

// handler constructs the slog.Handler described by the config.
func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					if c.timeLayout == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(t.Format(c.timeLayout))
				}
			}

			return a
		},
	}

	if c.pretty && c.format == FormatText {
		return newPrettyHandler(c.output, opts)
	}

	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, opts)
	}

	return slog.NewTextHandler(c.output, opts)
}
