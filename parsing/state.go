package parsing

import (
	"unicode"
)

// StateID identifies a [State] within a [Grammar].
type StateID int

// NoState is returned by lookups that find nothing.
const NoState StateID = -1

// State is one node of a grammar: a table mapping characters to handlers
// plus lifecycle hooks. States are immutable once their grammar is sealed.
type State struct {
	id   StateID
	name string

	enterOn  map[rune]StateID
	handlers map[rune]Handler
	fallback Handler

	onEnter  Handler
	onLeave  Handler
	onReturn Handler
	onEnd    Handler
	hasEnd   bool

	end         rune
	endSet      bool
	endRequired bool

	whitespace    Handler
	hasWhitespace bool

	entrance     bool
	marker       bool
	expression   bool
	enterContent bool
	leaveContent bool

	lockValueIndex bool
	noValueIndex   bool
}

// StateOption configures a [State] when it is defined.
type StateOption func(*State)

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Name returns the state's diagnostic name.
func (s *State) Name() string { return s.name }

// String implements fmt.Stringer.
func (s *State) String() string { return s.name }

// EndCharacter returns the character that closes the state, if any.
func (s *State) EndCharacter() (rune, bool) { return s.end, s.endSet }

// IsEndRequired reports whether reaching end of input before the end
// character is an error.
func (s *State) IsEndRequired() bool { return s.endSet && s.endRequired }

// LocksValueIndex reports whether entering s freezes the value index.
func (s *State) LocksValueIndex() bool { return s.lockValueIndex }

// UpdatesValueIndex reports whether entering s moves the value index.
func (s *State) UpdatesValueIndex() bool { return !s.noValueIndex }

// Handler returns the handler for ch. The lookup order is: the end
// character, whitespace handling, states entered on ch, explicit handlers,
// and finally the default handler.
func (s *State) Handler(ch rune) Handler {
	if s.endSet && ch == s.end {
		return Leave
	}

	if s.hasWhitespace && unicode.IsSpace(ch) {
		return s.whitespace
	}

	if id, ok := s.enterOn[ch]; ok {
		return Enter(id)
	}

	if h, ok := s.handlers[ch]; ok {
		return h
	}

	return s.fallback
}

func (s *State) enter(c *Context) error {
	rewritten := false

	if s.expression {
		var err error
		if rewritten, err = c.resolveOnEnter(s.entrance); err != nil {
			return err
		}

		if c.IsEndOfContent() {
			return nil
		}
	}

	// The entry character is gone once a substitution replaced it.
	if s.enterContent && !rewritten {
		if err := c.emit(); err != nil {
			return err
		}
	}

	if err := s.onEnter.Handle(c); err != nil {
		return err
	}

	switch {
	case s.marker:
		_, err := c.LeaveState()

		return err
	case s.entrance:
		return s.Handler(c.ch).Handle(c)
	}

	return nil
}

func (s *State) leave(c *Context) error {
	if s.leaveContent && !c.IsEndOfContent() {
		if err := c.emit(); err != nil {
			return err
		}
	}

	return s.onLeave.Handle(c)
}

func (s *State) endOfContent(c *Context) error {
	if s.hasEnd {
		return s.onEnd.Handle(c)
	}

	if s.IsEndRequired() {
		return missing(s.end)
	}

	return nil
}

// EnterOn enters the state id on each of chars.
func EnterOn(id StateID, chars ...rune) StateOption {
	return func(s *State) {
		for _, ch := range chars {
			s.enterOn[ch] = id
		}
	}
}

// On sets the handler for each of chars.
func On(h Handler, chars ...rune) StateOption {
	return func(s *State) {
		for _, ch := range chars {
			s.handlers[ch] = h
		}
	}
}

// LeaveOn leaves the state, consuming the character, on each of chars.
func LeaveOn(chars ...rune) StateOption { return On(Leave, chars...) }

// PassOn leaves the state on each of chars and lets the parent state
// handle the character.
func PassOn(chars ...rune) StateOption { return On(Pass, chars...) }

// Default sets the handler for characters with no other mapping.
func Default(h Handler) StateOption {
	return func(s *State) { s.fallback = h }
}

// OnEnter runs h after the state is pushed.
func OnEnter(h Handler) StateOption {
	return func(s *State) { s.onEnter = h }
}

// OnLeave runs h before the state is popped.
func OnLeave(h Handler) StateOption {
	return func(s *State) { s.onLeave = h }
}

// OnReturn runs h when a child of the state is popped.
func OnReturn(h Handler) StateOption {
	return func(s *State) { s.onReturn = h }
}

// OnEndOfContent runs h when input ends while the state is active.
// It replaces the failure configured by a required end character.
func OnEndOfContent(h Handler) StateOption {
	return func(s *State) { s.onEnd, s.hasEnd = h, true }
}

// EndCharacter closes the state on ch. If required, input ending before
// ch is an [ErrUnterminated] failure.
func EndCharacter(ch rune, required bool) StateOption {
	return func(s *State) { s.end, s.endSet, s.endRequired = ch, true, required }
}

// OnWhitespace handles every whitespace character with h.
func OnWhitespace(h Handler) StateOption {
	return func(s *State) { s.whitespace, s.hasWhitespace = h, true }
}

// IgnoreWhitespace drops whitespace characters.
func IgnoreWhitespace() StateOption { return OnWhitespace(Noop) }

// LeaveOnWhitespace leaves the state on whitespace, consuming it.
func LeaveOnWhitespace() StateOption { return OnWhitespace(Leave) }

// PassOnWhitespace leaves the state on whitespace and lets the parent
// handle it.
func PassOnWhitespace() StateOption { return OnWhitespace(Pass) }

// HandleEntrance dispatches the character that caused the state to be
// entered to the state's own handler.
func HandleEntrance() StateOption {
	return func(s *State) { s.entrance = true }
}

// Marker leaves the state immediately after it is entered. Marker states
// exist only to notify the callback.
func Marker() StateOption {
	return func(s *State) { s.marker = true }
}

// Expression resolves a substitution at the entry character.
func Expression() StateOption {
	return func(s *State) { s.expression = true }
}

// EnterContent emits the character that caused the state to be entered.
func EnterContent() StateOption {
	return func(s *State) { s.enterContent = true }
}

// LeaveContent emits the character that caused the state to be left.
func LeaveContent() StateOption {
	return func(s *State) { s.leaveContent = true }
}

// Delimited emits both the opening and the closing character.
func Delimited() StateOption {
	return func(s *State) { s.enterContent, s.leaveContent = true, true }
}

// LockValueIndex freezes the value index while the state is active.
func LockValueIndex() StateOption {
	return func(s *State) { s.lockValueIndex = true }
}

// NoValueIndex leaves the value index unchanged when the state is entered.
func NoValueIndex() StateOption {
	return func(s *State) { s.noValueIndex = true }
}
