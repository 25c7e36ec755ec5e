package value

import (
	"strings"

	"github.com/ardnew/opline/parsing"
)

// Term is one state visited during a parse: the content emitted while it
// was current, interleaved with the terms of the states it entered.
type Term struct {
	State  parsing.StateID
	Name   string
	Offset int

	parent *Term
	parts  []part
}

type part struct {
	text  []rune
	child *Term
}

// Children returns the terms entered directly from t.
func (t *Term) Children() []*Term {
	var out []*Term

	for _, p := range t.parts {
		if p.child != nil {
			out = append(out, p.child)
		}
	}

	return out
}

// Content returns the text emitted while t itself was current.
func (t *Term) Content() string {
	var sb strings.Builder

	for _, p := range t.parts {
		if p.child == nil {
			sb.WriteString(string(p.text))
		}
	}

	return sb.String()
}

// String returns all text emitted while t or any descendant was current.
func (t *Term) String() string {
	var sb strings.Builder

	t.write(&sb)

	return sb.String()
}

func (t *Term) write(sb *strings.Builder) {
	for _, p := range t.parts {
		if p.child != nil {
			p.child.write(sb)
		} else {
			sb.WriteString(string(p.text))
		}
	}
}

func (t *Term) appendRune(r rune) {
	if n := len(t.parts); n > 0 && t.parts[n-1].child == nil {
		t.parts[n-1].text = append(t.parts[n-1].text, r)

		return
	}

	t.parts = append(t.parts, part{text: []rune{r}})
}

// TermBuilder is a [parsing.Callback] that records a parse as a tree of
// terms rooted at the initial state.
type TermBuilder struct {
	root *Term
	cur  *Term
}

// NewTermBuilder returns a builder whose root term stands for the initial
// state.
func NewTermBuilder() *TermBuilder {
	root := &Term{State: parsing.NoState}

	return &TermBuilder{root: root, cur: root}
}

// Root returns the root term.
func (b *TermBuilder) Root() *Term { return b.root }

// EnteredState implements [parsing.Callback].
func (b *TermBuilder) EnteredState(c *parsing.Context) error {
	t := &Term{
		State:  c.State().ID(),
		Name:   c.State().Name(),
		Offset: c.Location(),
		parent: b.cur,
	}

	b.cur.parts = append(b.cur.parts, part{child: t})
	b.cur = t

	return nil
}

// LeavingState implements [parsing.Callback].
func (b *TermBuilder) LeavingState(*parsing.Context) error {
	if b.cur.parent != nil {
		b.cur = b.cur.parent
	}

	return nil
}

// Character implements [parsing.Callback].
func (b *TermBuilder) Character(c *parsing.Context) error {
	b.cur.appendRune(c.Character())

	return nil
}
