package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrEmptyInput    = NewError("empty or blank input")
	ErrReadInput     = NewError("failed to read input")
	ErrDocumentParse = NewError("no grammar tree generated")
	ErrJSONMarshal   = NewError("JSON marshal error")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is matches derived errors against their sentinel: Wrap and With return
// new instances, so identity comparison alone would never match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// A new Error instance is returned to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	merged := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(merged, e.attrs)
	copy(merged[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: merged,
	}
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Diagnostic is a single syntax or validation finding. Diagnostics are
// accumulated, never thrown: one finding does not suppress others.
type Diagnostic struct {
	Severity Severity
	// Rule is a short stable identifier for the violated rule,
	// e.g. "initial-screen" or "enum-duplicate".
	Rule string
	// Ref names the offending entity, e.g. "model.Account.status" or
	// "api.endpoints.getAccount". Empty for document-level findings.
	Ref     string
	Message string
	// Suggest holds likely intended names for unresolved references.
	Suggest []string
	// Pos is set for syntax diagnostics; zero for semantic ones.
	Pos Position
}

// String formats the diagnostic as a single line.
func (d Diagnostic) String() string {
	var sb strings.Builder

	sb.WriteString(d.Severity.String())

	if d.Pos.Line > 0 {
		sb.WriteString(" at line ")
		sb.WriteString(strconv.Itoa(d.Pos.Line))
		sb.WriteString(", column ")
		sb.WriteString(strconv.Itoa(d.Pos.Column))
	}

	if d.Ref != "" {
		sb.WriteString(" [")
		sb.WriteString(d.Ref)
		sb.WriteString("]")
	}

	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if len(d.Suggest) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(d.Suggest, ", "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// HasErrors reports whether any diagnostic has error severity.
// An application with error diagnostics is not safe to hand to emitters.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Snippet renders the source line at pos with a caret marker, for terminal
// display of syntax diagnostics.
func Snippet(src string, pos Position) string {
	if pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(src, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	line := lines[pos.Line-1]
	num := strconv.Itoa(pos.Line)

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(line)
	sb.WriteByte('\n')

	// 2 leading spaces + line number + " | "
	padding := strings.Repeat(" ", len(num)+5)
	if pos.Column > 0 {
		padding += strings.Repeat(" ", pos.Column-1)
	}

	sb.WriteString(padding + "^\n")

	return sb.String()
}
