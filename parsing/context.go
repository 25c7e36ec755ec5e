package parsing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/opline/log"
)

type frame struct {
	state   *State
	at      int
	emitted int
}

// Context is the mutable state of one parse. It is created by
// [Grammar.Parse] and handed to handlers and callbacks; it must not be
// retained after Parse returns.
type Context struct {
	ctx      context.Context
	grammar  *Grammar
	initial  frame
	callback Callback

	input    []rune
	location int
	ch       rune
	stack    []frame

	lookFor     []rune
	deactivated map[rune]int
	err         *Error

	strict bool
	props  PropertyResolver
	vars   VariableResolver
	logger log.Logger

	// runes before protect were produced by a substitution
	protect int
}

func newContext(
	ctx context.Context,
	g *Grammar,
	initial *State,
	input string,
	cb Callback,
	opts ...Option,
) *Context {
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Context{
		ctx:      ctx,
		grammar:  g,
		initial:  frame{state: initial},
		callback: cb,
		input:    []rune(input),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Context returns the context.Context of the parse.
func (c *Context) Context() context.Context { return c.ctx }

// Grammar returns the grammar being run.
func (c *Context) Grammar() *Grammar { return c.grammar }

// Input returns the current input, including any substitutions made so
// far.
func (c *Context) Input() string { return string(c.input) }

// Location returns the offset of the current character. At end of input
// it equals the input length.
func (c *Context) Location() int { return c.location }

// Character returns the current character. At end of input it is the
// last character of the input.
func (c *Context) Character() rune { return c.ch }

// IsEndOfContent reports whether the whole input has been consumed.
func (c *Context) IsEndOfContent() bool { return c.location >= len(c.input) }

// Strict reports whether unresolved properties are errors.
func (c *Context) Strict() bool { return c.strict }

// Logger returns the parse logger.
func (c *Context) Logger() log.Logger { return c.logger }

// State returns the current state: the top of the stack, or the initial
// state if the stack is empty.
func (c *Context) State() *State { return c.top().state }

// EnteredAt returns the offset at which the current state was entered.
func (c *Context) EnteredAt() int { return c.top().at }

// Emitted returns the number of content characters emitted while the
// current state or any of its descendants was active.
func (c *Context) Emitted() int { return c.top().emitted }

// Depth returns the number of states on the stack, not counting the
// initial state.
func (c *Context) Depth() int { return len(c.stack) }

// States returns the names of the active states, outermost first,
// including the initial state.
func (c *Context) States() []string {
	names := make([]string, 0, len(c.stack)+1)

	names = append(names, c.initial.state.name)
	for _, f := range c.stack {
		names = append(names, f.state.name)
	}

	return names
}

func (c *Context) top() *frame {
	if n := len(c.stack); n > 0 {
		return &c.stack[n-1]
	}

	return &c.initial
}

// EnterState pushes the state identified by id. The callback is notified
// before the state's enter hook runs.
func (c *Context) EnterState(id StateID) error {
	s := c.grammar.State(id)
	if s == nil {
		return ErrFormat.Detail(fmt.Sprintf("unknown state %d", id))
	}

	if err := c.ctx.Err(); err != nil {
		return ErrFormat.Wrap(err)
	}

	c.stack = append(c.stack, frame{state: s, at: c.location})

	c.logger.TraceContext(c.ctx, "enter state",
		slog.String("state", s.name),
		slog.Int("location", c.location),
		slog.Int("depth", len(c.stack)),
	)

	if err := c.callback.EnteredState(c); err != nil {
		return err
	}

	return s.enter(c)
}

// LeaveState pops the current state and returns it. The state's leave
// hook runs first, then the callback is notified, then the state is
// popped and the new current state's return hook runs.
func (c *Context) LeaveState() (*State, error) {
	if len(c.stack) == 0 {
		return nil, ErrUnexpected.Detail(fmt.Sprintf("'%c' closes nothing", c.ch))
	}

	s := c.top().state

	if err := s.leave(c); err != nil {
		return nil, err
	}

	if err := c.callback.LeavingState(c); err != nil {
		return nil, err
	}

	c.logger.TraceContext(c.ctx, "leave state",
		slog.String("state", s.name),
		slog.Int("location", c.location),
		slog.Int("depth", len(c.stack)),
	)

	emitted := c.top().emitted
	c.stack = c.stack[:len(c.stack)-1]
	c.top().emitted += emitted

	if err := c.State().onReturn.Handle(c); err != nil {
		return nil, err
	}

	return s, nil
}

// ReenterState notifies the callback that the current state was left and
// entered again at the current location, running both hooks in between.
func (c *Context) ReenterState() error {
	s := c.State()

	if err := c.callback.LeavingState(c); err != nil {
		return err
	}

	if err := s.onLeave.Handle(c); err != nil {
		return err
	}

	f := c.top()
	f.at, f.emitted = c.location, 0

	if err := c.callback.EnteredState(c); err != nil {
		return err
	}

	return s.onEnter.Handle(c)
}

// AdvanceLocation moves the cursor forward by n characters. The character
// at the new location is the last one consumed by the current handler.
func (c *Context) AdvanceLocation(n int) error {
	if c.IsEndOfContent() || c.location+n > len(c.input) {
		return ErrEndOfInput
	}

	c.location += n
	if c.location < len(c.input) {
		c.ch = c.input[c.location]
	}

	return nil
}

// Begins reports whether the input at the current location starts with
// seq.
func (c *Context) Begins(seq string) bool {
	if c.IsEndOfContent() {
		return false
	}

	rs := []rune(seq)
	if c.location+len(rs) > len(c.input) {
		return false
	}

	return slices.Equal(c.input[c.location:c.location+len(rs)], rs)
}

// Peek returns the character n positions after the current one.
func (c *Context) Peek(n int) (rune, bool) {
	i := c.location + n
	if i < 0 || i >= len(c.input) {
		return 0, false
	}

	return c.input[i], true
}

// DeactivateControl makes ch plain content until it is reactivated.
// Calls nest.
func (c *Context) DeactivateControl(ch rune) {
	if c.deactivated == nil {
		c.deactivated = make(map[rune]int)
	}

	c.deactivated[ch]++
}

// ActivateControl undoes one DeactivateControl call for ch.
func (c *Context) ActivateControl(ch rune) {
	if c.deactivated[ch] > 1 {
		c.deactivated[ch]--
	} else {
		delete(c.deactivated, ch)
	}
}

// IsDeactivated reports whether ch is currently plain content.
func (c *Context) IsDeactivated(ch rune) bool { return c.deactivated[ch] > 0 }

// LookFor pushes ch as a closing character expected later in the input.
func (c *Context) LookFor(ch rune) { c.lookFor = append(c.lookFor, ch) }

// IsLookingFor reports whether any closing character is expected.
func (c *Context) IsLookingFor() bool { return len(c.lookFor) > 0 }

// LookingFor returns the innermost expected closing character.
func (c *Context) LookingFor() (rune, bool) {
	if n := len(c.lookFor); n > 0 {
		return c.lookFor[n-1], true
	}

	return 0, false
}

// MeetIfLookedFor pops the expected closing character if it is ch.
func (c *Context) MeetIfLookedFor(ch rune) bool {
	if r, ok := c.LookingFor(); ok && r == ch {
		c.lookFor = c.lookFor[:len(c.lookFor)-1]

		return true
	}

	return false
}

// SetError records a non-fatal error. Parsing continues, and Parse
// returns the first recorded error if nothing fails outright.
func (c *Context) SetError(err error) {
	if c.err != nil {
		return
	}

	c.err = asError(err).At(string(c.input), c.location)
}

// Err returns the recorded non-fatal error.
func (c *Context) Err() error {
	if c.err == nil {
		return nil
	}

	return c.err
}

func (c *Context) emit() error {
	c.top().emitted++

	return c.callback.Character(c)
}

// pass leaves the current state and dispatches the current character to
// the new current state.
func (c *Context) pass() error {
	left, err := c.LeaveState()
	if err != nil {
		return err
	}

	// Re-entering a state that handles its entrance on the character it
	// just passed would never advance.
	h := c.State().Handler(c.ch)
	if left.entrance && h.kind == kindEnter && h.target == left.id {
		return ErrUnexpected.Detail(fmt.Sprintf("'%c' is not accepted by %s", c.ch, left.name))
	}

	return h.Handle(c)
}

func (c *Context) step() {
	c.location++
	if c.location < len(c.input) {
		c.ch = c.input[c.location]
	}
}

func (c *Context) lineBreakAfter() int {
	switch {
	case c.Begins("\\\r\n"):
		return 2
	case c.Begins("\\\n"):
		return 1
	}

	return 0
}

func (c *Context) run() error {
	c.location, c.ch = 0, c.input[0]

	if err := c.initial.state.enter(c); err != nil {
		return err
	}

	// a substitution at offset 0 rewinds to -1
	if c.location < 0 {
		c.step()
	}

	for !c.IsEndOfContent() {
		if err := c.State().Handler(c.ch).Handle(c); err != nil {
			return err
		}

		c.step()
	}

	for len(c.stack) > 0 {
		if err := c.State().endOfContent(c); err != nil {
			return err
		}

		if _, err := c.LeaveState(); err != nil {
			return err
		}
	}

	if err := c.initial.state.endOfContent(c); err != nil {
		return err
	}

	return c.initial.state.leave(c)
}
