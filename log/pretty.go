package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTime  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return styleError
	case level >= slog.LevelWarn:
		return styleWarn
	case level >= slog.LevelInfo:
		return styleInfo
	default:
		return styleDebug
	}
}

// prettyHandler renders colorized single-line text records for terminals.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		t := h.replace(slog.Time(slog.TimeKey, r.Time))
		if !t.Equal(slog.Attr{}) {
			buf.WriteString(styleTime.Render(t.Value.String()))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(levelStyle(r.Level).Render(Level(r.Level).String()))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	write := func(a slog.Attr) {
		a = h.replace(a)
		if a.Equal(slog.Attr{}) {
			return
		}

		buf.WriteByte(' ')
		buf.WriteString(styleKey.Render(h.qualify(a.Key) + "="))
		buf.WriteString(a.Value.String())
	}

	for _, a := range h.attrs {
		write(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		write(a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)

	return &clone
}

func (h *prettyHandler) qualify(key string) string {
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}

	return key
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(h.groups, a)
}
