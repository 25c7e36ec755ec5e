package parsing

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values). Errors returned by the engine are
// derived from one of these and match it with [errors.Is].
var (
	ErrUnterminated       = NewError("unterminated construct")
	ErrUnresolvedProperty = NewError("unresolved property")
	ErrUnresolvedVariable = NewError("unresolved variable")
	ErrInvalidIdentifier  = NewError("invalid identifier")
	ErrUnexpected         = NewError("unexpected character")
	ErrEndOfInput         = NewError("unexpected end of input")
	ErrDanglingEscape     = NewError("dangling escape character")
	ErrFormat             = NewError("failed to parse")
)

// Error is a parse failure. It records the input line and the offset at
// which the failure occurred, when known, and implements [slog.LogValuer].
type Error struct {
	kind   *Error
	msg    string
	detail string
	err    error
	input  string
	offset int
	attrs  []slog.Attr
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg, offset: -1}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.detail != "" {
		part = append(part, e.detail)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")
	if e.offset >= 0 {
		s += " (offset " + strconv.Itoa(e.offset) + ")"
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.root() == t.root()
}

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.detail != "" {
		attrs = append(attrs, slog.String("detail", e.detail))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.input != "" {
		attrs = append(attrs, slog.String("input", e.input))
	}

	if e.offset >= 0 {
		attrs = append(attrs, slog.Int("offset", e.offset))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Message returns the error text without the offset suffix.
func (e *Error) Message() string {
	c := *e
	c.offset = -1

	return c.Error()
}

// Input returns the line being parsed when the error occurred.
func (e *Error) Input() string { return e.input }

// Offset returns the character offset of the failure, or -1 if unknown.
func (e *Error) Offset() int { return e.offset }

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// Detail creates a new Error carrying a specific description.
func (e *Error) Detail(detail string) *Error {
	c := e.derive()
	c.detail = detail

	return c
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], attrs...)

	return c
}

// At returns a copy of e positioned at offset within input.
// A position already recorded is kept.
func (e *Error) At(input string, offset int) *Error {
	c := e.derive()

	if c.input == "" {
		c.input = input
	}

	if c.offset < 0 {
		c.offset = max(0, min(offset, len([]rune(input))))
	}

	return c
}

// Caret renders the input line followed by a caret under the offset.
// It returns an empty string if the error carries no position.
func (e *Error) Caret() string {
	if e.input == "" || e.offset < 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(e.input)
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", e.offset))
	sb.WriteByte('^')

	return sb.String()
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

func (e *Error) derive() *Error {
	c := *e
	c.kind = e.root()

	return &c
}

// asError converts any error into an *Error, wrapping foreign errors in
// [ErrFormat].
func asError(err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	return ErrFormat.Wrap(err)
}
