package value

import (
	"context"
	"strings"
	"unicode"

	"github.com/ardnew/opline/grammar"
	"github.com/ardnew/opline/parsing"
)

// Parse converts parameter value text into a Node.
//
// A single item is a string, or a property when it has the form
// name=value. Several comma-separated items form an object if any of
// them is a property, and a list otherwise. [...] and {...} nest lists
// and objects explicitly. Unquoted text is trimmed, quoted text is kept
// verbatim, and an object key without a value is undefined.
func Parse(ctx context.Context, text string, opts ...parsing.Option) (*Node, error) {
	if strings.TrimSpace(text) == "" {
		return Undefined(), nil
	}

	b := NewTermBuilder()

	err := grammar.Default().Parse(ctx, text, grammar.Value, b, opts...)
	if err != nil {
		return nil, err
	}

	return fromRoot(b.Root())
}

// Unquote removes quotes and escapes from text.
func Unquote(ctx context.Context, text string, opts ...parsing.Option) (string, error) {
	b := NewTermBuilder()

	err := grammar.Default().Parse(ctx, text, grammar.Text, b, opts...)
	if err != nil {
		return "", err
	}

	return b.Root().String(), nil
}

func fromRoot(root *Term) (*Node, error) {
	items := root.Children()

	switch len(items) {
	case 0:
		return Undefined(), nil
	case 1:
		n, err := fromItem(items[0])
		if err != nil {
			return nil, err
		}

		if name, v, ok := n.Property(); ok {
			return NewObject().Set(name, v), nil
		}

		return n, nil
	}

	nodes := make([]*Node, 0, len(items))
	object := false

	for _, item := range items {
		n, err := fromItem(item)
		if err != nil {
			return nil, err
		}

		object = object || n.Kind() == KindProperty
		nodes = append(nodes, n)
	}

	if object {
		return toObject(nodes), nil
	}

	return NewList(nodes...), nil
}

func fromContainer(t *Term) (*Node, error) {
	nodes := make([]*Node, 0)

	for _, item := range t.Children() {
		n, err := fromItem(item)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}

	if t.State == grammar.Object {
		return toObject(nodes), nil
	}

	return NewList(nodes...), nil
}

func toObject(nodes []*Node) *Node {
	obj := NewObject()

	for _, n := range nodes {
		if name, v, ok := n.Property(); ok {
			obj.Set(name, v)
		} else {
			obj.Set(n.AsString(), Undefined())
		}
	}

	return obj
}

func fromItem(t *Term) (*Node, error) {
	n, val, err := scalar(t)
	if err != nil || val == nil {
		return n, err
	}

	v, _, err := scalar(val)
	if err != nil {
		return nil, err
	}

	return NewProperty(n.AsString(), v), nil
}

type segment struct {
	text   string
	quoted bool
}

// scalar converts the parts of an item, returning the term of its value
// if the item is a property.
func scalar(t *Term) (*Node, *Term, error) {
	var (
		segs      []segment
		structure *Node
		val       *Term
	)

	for _, p := range t.parts {
		if p.child == nil {
			segs = append(segs, segment{text: string(p.text)})

			continue
		}

		switch p.child.State {
		case grammar.List, grammar.Object:
			n, err := fromContainer(p.child)
			if err != nil {
				return nil, nil, err
			}

			structure = n
		case grammar.ItemValue:
			val = p.child
		default:
			segs = append(segs, segment{text: p.child.String(), quoted: true})
		}
	}

	text, quoted := join(segs)

	switch {
	case structure != nil && val == nil && strings.TrimSpace(text) == "":
		return structure, nil, nil
	case structure != nil:
		return NewString(strings.TrimSpace(t.String())), val, nil
	case text == "" && !quoted:
		return Undefined(), val, nil
	}

	return NewString(text), val, nil
}

// join concatenates segments, trimming whitespace from unquoted ends.
func join(segs []segment) (string, bool) {
	quoted := false

	for _, s := range segs {
		quoted = quoted || s.quoted
	}

	for len(segs) > 0 && !segs[0].quoted {
		segs[0].text = strings.TrimLeftFunc(segs[0].text, unicode.IsSpace)
		if segs[0].text != "" {
			break
		}

		segs = segs[1:]
	}

	for n := len(segs); n > 0 && !segs[n-1].quoted; n = len(segs) {
		segs[n-1].text = strings.TrimRightFunc(segs[n-1].text, unicode.IsSpace)
		if segs[n-1].text != "" {
			break
		}

		segs = segs[:n-1]
	}

	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.text)
	}

	return sb.String(), quoted
}
