package value

import (
	"bytes"
	"encoding/json"
	"iter"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Kind is the type of a [Node].
type Kind uint8

const (
	KindUndefined Kind = iota // undefined
	KindString                // string
	KindList                  // list
	KindObject                // object
	KindProperty              // property
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindProperty:
		return "property"
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Field is a named member of an object or a property.
type Field struct {
	Name  string
	Value *Node
}

// Node is a parameter value: undefined, a string, a list of nodes, an
// object with ordered fields, or a single name/value property.
//
// A nil *Node behaves as undefined.
type Node struct {
	kind   Kind
	str    string
	items  []*Node
	fields []Field
}

// Undefined returns a new undefined node.
func Undefined() *Node { return &Node{kind: KindUndefined} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: KindString, str: s} }

// NewList returns a list node holding items.
func NewList(items ...*Node) *Node {
	return &Node{kind: KindList, items: append([]*Node{}, items...)}
}

// NewObject returns an empty object node.
func NewObject() *Node { return &Node{kind: KindObject} }

// NewProperty returns a property node.
func NewProperty(name string, v *Node) *Node {
	return &Node{kind: KindProperty, fields: []Field{{Name: name, Value: v}}}
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUndefined
	}

	return n.kind
}

// IsDefined reports whether n holds a value.
func (n *Node) IsDefined() bool { return n.Kind() != KindUndefined }

// AsString returns the string value of a string node.
func (n *Node) AsString() string {
	if n.Kind() != KindString {
		return ""
	}

	return n.str
}

// Len returns the number of list items or object fields.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindList:
		return len(n.items)
	case KindObject, KindProperty:
		return len(n.fields)
	}

	return 0
}

// Index returns the i'th list item, or nil.
func (n *Node) Index(i int) *Node {
	if n.Kind() != KindList || i < 0 || i >= len(n.items) {
		return nil
	}

	return n.items[i]
}

// Append adds items to a list node and returns it.
func (n *Node) Append(items ...*Node) *Node {
	if n.Kind() == KindList {
		n.items = append(n.items, items...)
	}

	return n
}

// Items returns an iterator over list items.
func (n *Node) Items() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n.Kind() != KindList {
			return
		}

		for _, item := range n.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Get returns the value of the named object field or property.
func (n *Node) Get(name string) (*Node, bool) {
	switch n.Kind() {
	case KindObject, KindProperty:
		for _, f := range n.fields {
			if f.Name == name {
				return f.Value, true
			}
		}
	}

	return nil, false
}

// Set replaces the named field of an object node, or appends it, and
// returns the node.
func (n *Node) Set(name string, v *Node) *Node {
	if n.Kind() != KindObject {
		return n
	}

	for i := range n.fields {
		if n.fields[i].Name == name {
			n.fields[i].Value = v

			return n
		}
	}

	n.fields = append(n.fields, Field{Name: name, Value: v})

	return n
}

// Fields returns an iterator over object fields in insertion order, or
// the single field of a property.
func (n *Node) Fields() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		switch n.Kind() {
		case KindObject, KindProperty:
		default:
			return
		}

		for _, f := range n.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Keys returns the object field names in order.
func (n *Node) Keys() []string {
	var keys []string
	for k := range n.Fields() {
		keys = append(keys, k)
	}

	return keys
}

// Property returns the name and value of a property node.
func (n *Node) Property() (string, *Node, bool) {
	if n.Kind() != KindProperty {
		return "", nil, false
	}

	return n.fields[0].Name, n.fields[0].Value, true
}

// Interface converts n to plain Go values: nil, string, []any, or
// map[string]any. A property becomes a one-entry map.
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindList:
		out := make([]any, 0, len(n.items))
		for _, item := range n.items {
			out = append(out, item.Interface())
		}

		return out
	case KindObject, KindProperty:
		out := make(map[string]any, len(n.fields))
		for _, f := range n.fields {
			out[f.Name] = f.Value.Interface()
		}

		return out
	}

	return nil
}

// String renders n in the management model text notation, for example
// {"a" => "1","b" => ["x"]}.
func (n *Node) String() string {
	var sb strings.Builder

	n.write(&sb)

	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind() {
	case KindUndefined:
		sb.WriteString("undefined")
	case KindString:
		sb.WriteString(strconv.Quote(n.str))
	case KindList:
		sb.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				sb.WriteByte(',')
			}

			item.write(sb)
		}

		sb.WriteByte(']')
	case KindObject, KindProperty:
		open, end := byte('{'), byte('}')
		if n.kind == KindProperty {
			open, end = '(', ')'
		}

		sb.WriteByte(open)

		for i, f := range n.fields {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteString(strconv.Quote(f.Name))
			sb.WriteString(" => ")
			f.Value.write(sb)
		}

		sb.WriteByte(end)
	}
}

// MarshalJSON encodes n, keeping object fields in order.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind() {
	case KindUndefined:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(n.str)
	case KindList:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(b)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, f := range n.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}

		v, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes n, keeping object fields in order.
func (n *Node) MarshalYAML() (any, error) {
	return n.yaml(), nil
}

func (n *Node) yaml() any {
	switch n.Kind() {
	case KindString:
		return n.str
	case KindList:
		out := make([]any, 0, len(n.items))
		for _, item := range n.items {
			out = append(out, item.yaml())
		}

		return out
	case KindObject, KindProperty:
		out := make(yaml.MapSlice, 0, len(n.fields))
		for _, f := range n.fields {
			out = append(out, yaml.MapItem{Key: f.Name, Value: f.Value.yaml()})
		}

		return out
	}

	return nil
}
