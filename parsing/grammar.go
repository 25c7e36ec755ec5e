package parsing

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
)

// Built-in states, registered in every [Grammar] by [NewGrammar].
const (
	// StateEscape drops the backslash and emits the next character.
	StateEscape StateID = iota
	// StateEscapeKeep emits both the backslash and the next character.
	StateEscapeKeep
	// StateQuotes reads a double-quoted string, dropping the quotes.
	StateQuotes
	// StateQuotesIncluded reads a double-quoted string, emitting the quotes
	// and keeping escapes.
	StateQuotesIncluded
	// StateSingleQuotes reads a single-quoted string literally, dropping the
	// quotes.
	StateSingleQuotes
	// StateSingleQuotesIncluded reads a single-quoted string literally,
	// emitting the quotes.
	StateSingleQuotesIncluded
	// StateBackQuotes reads a back-quoted string literally, dropping the
	// quotes.
	StateBackQuotes
	// StateBackQuotesIncluded reads a back-quoted string literally, emitting
	// the quotes.
	StateBackQuotesIncluded
	// StateParens reads raw text up to the matching ')'.
	StateParens
	// StateBrackets reads raw text up to the matching ']'.
	StateBrackets
	// StateBraces reads raw text up to the matching '}'.
	StateBraces

	builtinStates
)

// Grammar is an arena of states. States refer to each other by [StateID],
// so recursive grammars need no pointer cycles.
//
// A Grammar is built by [Grammar.Declare] and [Grammar.Define] calls and
// then sealed. A sealed Grammar is immutable and safe for concurrent use.
type Grammar struct {
	states []*State
	names  map[string]StateID
	sealed bool
}

// NewGrammar returns a Grammar holding only the built-in states.
func NewGrammar() *Grammar {
	g := &Grammar{names: make(map[string]StateID)}

	g.builtin()

	return g
}

// Declare reserves a StateID for name. The state must be defined with
// [Grammar.Define] before the grammar is sealed.
//
// Declare panics if name is already declared or the grammar is sealed.
func (g *Grammar) Declare(name string) StateID {
	if g.sealed {
		panic(fmt.Sprintf("parsing: declare %q: grammar is sealed", name))
	}

	if _, ok := g.names[name]; ok {
		panic(fmt.Sprintf("parsing: declare %q: duplicate state name", name))
	}

	id := StateID(len(g.states))

	g.states = append(g.states, nil)
	g.names[name] = id

	return id
}

// Define configures the state declared as id.
func (g *Grammar) Define(id StateID, opts ...StateOption) {
	if g.sealed {
		panic(fmt.Sprintf("parsing: define %d: grammar is sealed", id))
	}

	if id < 0 || int(id) >= len(g.states) {
		panic(fmt.Sprintf("parsing: define %d: undeclared state", id))
	}

	s := &State{
		id:       id,
		name:     g.name(id),
		enterOn:  make(map[rune]StateID),
		handlers: make(map[rune]Handler),
		fallback: Noop,
	}

	for _, opt := range opts {
		opt(s)
	}

	g.states[id] = s
}

// Seal validates the grammar and makes it immutable. It panics if a
// declared state was never defined or a handler refers to an unknown
// state.
func (g *Grammar) Seal() *Grammar {
	valid := func(id StateID) bool {
		return id >= 0 && int(id) < len(g.states) && g.states[id] != nil
	}

	for id, s := range g.states {
		if s == nil {
			panic(fmt.Sprintf("parsing: state %q declared but not defined", g.name(StateID(id))))
		}

		for ch, target := range s.enterOn {
			if !valid(target) {
				panic(fmt.Sprintf("parsing: state %q enters unknown state %d on %q", s.name, target, ch))
			}
		}

		hs := []Handler{s.fallback, s.onEnter, s.onLeave, s.onReturn, s.onEnd, s.whitespace}
		for _, h := range s.handlers {
			hs = append(hs, h)
		}

		for _, h := range hs {
			if h.kind == kindEnter && !valid(h.target) {
				panic(fmt.Sprintf("parsing: state %q enters unknown state %d", s.name, h.target))
			}
		}
	}

	g.sealed = true

	return g
}

// State returns the state identified by id, or nil.
func (g *Grammar) State(id StateID) *State {
	if id < 0 || int(id) >= len(g.states) {
		return nil
	}

	return g.states[id]
}

// Lookup returns the StateID registered for name.
func (g *Grammar) Lookup(name string) (StateID, bool) {
	id, ok := g.names[name]
	if !ok {
		return NoState, false
	}

	return id, true
}

// States returns an iterator over the grammar's states in ID order.
func (g *Grammar) States() iter.Seq[*State] {
	return func(yield func(*State) bool) {
		for _, s := range g.states {
			if s != nil && !yield(s) {
				return
			}
		}
	}
}

// Parse runs the state machine over input starting in the state initial,
// reporting events to cb.
//
// Empty input succeeds without any callback. The returned error, if any,
// is an [*Error] carrying input and the offset of the failure.
func (g *Grammar) Parse(
	ctx context.Context,
	input string,
	initial StateID,
	cb Callback,
	opts ...Option,
) (err error) {
	if input == "" {
		return nil
	}

	s := g.State(initial)
	if s == nil {
		return ErrFormat.Detail(fmt.Sprintf("unknown initial state %d", initial))
	}

	if cb == nil {
		cb = NopCallback{}
	}

	c := newContext(ctx, g, s, input, cb, opts...)

	defer func() {
		if r := recover(); r != nil {
			err = ErrFormat.Detail(fmt.Sprint(r)).At(input, c.location)
		}
	}()

	if err := c.run(); err != nil {
		e := asError(err).At(input, c.location)
		c.logger.DebugContext(c.ctx, "parse failed", slog.Any("error", e))

		return e
	}

	if c.err != nil {
		return c.err
	}

	return nil
}

func (g *Grammar) name(id StateID) string {
	for name, v := range g.names {
		if v == id {
			return name
		}
	}

	return fmt.Sprintf("STATE_%d", id)
}
