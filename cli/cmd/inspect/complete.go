package inspect

import (
	"context"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/opline/request"
)

// Operations are offered after ':' in addition to the operations found in
// history.
var Operations = []string{
	"add",
	"read-attribute",
	"read-children-names",
	"read-children-resources",
	"read-children-types",
	"read-operation-description",
	"read-operation-names",
	"read-resource",
	"read-resource-description",
	"remove",
	"undefine-attribute",
	"write-attribute",
}

// Kind is the kind of word being completed.
type Kind uint8

const (
	KindNone Kind = iota
	KindNodeType
	KindNodeName
	KindOperation
	KindProperty
	KindHeader
)

var kindNames = [...]string{
	KindNone:      "",
	KindNodeType:  "node type",
	KindNodeName:  "node name",
	KindOperation: "operation",
	KindProperty:  "property",
	KindHeader:    "header",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return ""
}

// Completion describes the word at the cursor and what may replace it.
type Completion struct {
	Kind    Kind
	Word    string
	Start   int // byte offset of Word
	End     int
	Matches fuzzy.Matches
}

type set map[string]struct{}

func (s set) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string { return slices.Sorted(maps.Keys(s)) }

// catalog collects the node types, node names, operations and property
// names of the lines it has learned.
type catalog struct {
	types  set
	names  map[string]set
	ops    set
	params map[string]set
}

func newCatalog() *catalog {
	c := &catalog{
		types:  set{},
		names:  map[string]set{},
		ops:    set{},
		params: map[string]set{},
	}

	for _, op := range Operations {
		c.ops.add(op)
	}

	return c
}

// learn records the parts of line read by h. A line that fails to parse
// still contributes what was read before the failure.
func (c *catalog) learn(ctx context.Context, h *request.Handler, line string) {
	_ = h.ParseLine(ctx, line)

	if h.IsCommand() {
		return
	}

	for _, n := range h.Address().Nodes() {
		c.types.add(n.Type)

		if n.Name != "" {
			if c.names[n.Type] == nil {
				c.names[n.Type] = set{}
			}

			c.names[n.Type].add(n.Name)
		}
	}

	op := h.Operation()
	if op == "" {
		return
	}

	c.ops.add(op)

	for _, p := range h.Properties() {
		if p.Name == "" {
			continue
		}

		if c.params[op] == nil {
			c.params[op] = set{}
		}

		c.params[op].add(p.Name)
	}
}

// candidates returns what may be typed after the text read by h.
func (c *catalog) candidates(h *request.Handler) (Kind, []string) {
	switch h.Separator() {
	case request.SepNode:
		return KindNodeType, c.types.sorted()
	case request.SepNodeTypeName:
		addr := h.Address()
		if !addr.EndsOnType() {
			return KindNodeName, nil
		}

		nodes := addr.Nodes()

		return KindNodeName, c.names[nodes[len(nodes)-1].Type].sorted()
	case request.SepOperation:
		return KindOperation, c.ops.sorted()
	case request.SepPropertyListStart, request.SepProperty:
		return KindProperty, c.params[h.Operation()].sorted()
	case request.SepHeaderListStart, request.SepHeader:
		return KindHeader, slices.Clone(request.KnownHeaders)
	}

	return KindNone, nil
}

// complete returns the completion of the word at cursor, a byte offset in
// input. The text before the word is parsed with h to find which kind of
// word it is.
func (c *catalog) complete(ctx context.Context, h *request.Handler, input string, cursor int) Completion {
	word, start, end := wordBounds(input, cursor)

	_ = h.ParseLine(ctx, input[:start])

	kind, cands := c.candidates(h)
	comp := Completion{Kind: kind, Word: word, Start: start, End: end}

	if len(cands) == 0 {
		return comp
	}

	if word == "" {
		comp.Matches = make(fuzzy.Matches, len(cands))
		for i, s := range cands {
			comp.Matches[i] = fuzzy.Match{Str: s, Index: i}
		}

		return comp
	}

	comp.Matches = fuzzy.Find(word, cands)

	return comp
}

// isWordBoundary reports whether r ends a word of an operation request.
// Hyphens and dots are part of words.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'/', '=', ':', ',', ';', '>',
		'(', ')', '{', '}', '[', ']':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}
