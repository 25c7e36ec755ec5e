package parsing

import (
	"fmt"
)

type handlerKind uint8

const (
	kindNoop handlerKind = iota
	kindContent
	kindEnter
	kindLeave
	kindPass
	kindFail
	kindFunc
)

// Handler is the action taken for one character in one state.
//
// The zero value is [Noop].
type Handler struct {
	kind   handlerKind
	target StateID
	err    *Error
	fn     func(*Context) error
}

// Predefined handlers.
var (
	// Noop ignores the current character.
	Noop = Handler{kind: kindNoop}
	// Content emits the current character to the callback.
	Content = Handler{kind: kindContent}
	// Leave pops the current state. The current character is consumed.
	Leave = Handler{kind: kindLeave}
	// Pass pops the current state and dispatches the current character to
	// the state that becomes current.
	Pass = Handler{kind: kindPass}
)

// Enter returns a handler that pushes the state identified by id.
func Enter(id StateID) Handler { return Handler{kind: kindEnter, target: id} }

// Fail returns a handler that aborts the parse with err.
func Fail(err *Error) Handler { return Handler{kind: kindFail, err: err} }

// Func returns a handler that calls fn.
func Func(fn func(*Context) error) Handler {
	if fn == nil {
		return Noop
	}

	return Handler{kind: kindFunc, fn: fn}
}

// Missing returns a handler that fails because the closing ch never came.
func Missing(ch rune) Handler {
	return Fail(missing(ch))
}

func missing(ch rune) *Error {
	return ErrUnterminated.Detail(fmt.Sprintf("the closing '%c' is missing", ch))
}

// Handle performs the handler's action on c.
func (h Handler) Handle(c *Context) error {
	switch h.kind {
	case kindNoop:
		return nil
	case kindContent:
		return c.emit()
	case kindEnter:
		return c.EnterState(h.target)
	case kindLeave:
		_, err := c.LeaveState()

		return err
	case kindPass:
		return c.pass()
	case kindFail:
		return h.err.derive()
	case kindFunc:
		return h.fn(c)
	}

	return nil
}

// IsNoop reports whether h does nothing.
func (h Handler) IsNoop() bool { return h.kind == kindNoop }

// String returns a short description of the handler for tracing.
func (h Handler) String() string {
	switch h.kind {
	case kindNoop:
		return "noop"
	case kindContent:
		return "content"
	case kindEnter:
		return fmt.Sprintf("enter(%d)", h.target)
	case kindLeave:
		return "leave"
	case kindPass:
		return "pass"
	case kindFail:
		return "fail(" + h.err.Error() + ")"
	case kindFunc:
		return "func"
	}

	return "unknown"
}
