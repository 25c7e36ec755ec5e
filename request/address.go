package request

import (
	"context"
	"strings"

	"github.com/ardnew/opline/value"
)

// Node is one segment of an address. A node without a name selects the
// type only.
type Node struct {
	Type string `json:"type" yaml:"type" expr:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" expr:"name"`
}

// Address is a path of nodes from the root of the management model.
// The zero Address is the root.
type Address struct {
	nodes      []Node
	endsOnType bool
}

// NewAddress returns an address holding nodes. If the last node has no
// name, the address ends on its type.
func NewAddress(nodes ...Node) Address {
	a := Address{nodes: append([]Node(nil), nodes...)}
	if n := len(a.nodes); n > 0 && a.nodes[n-1].Name == "" {
		a.endsOnType = true
	}

	return a
}

// ParsePath reads an address such as /subsystem=logging/logger=x.
func ParsePath(ctx context.Context, path string) (Address, error) {
	h := New()
	if err := h.ParseAddress(ctx, path); err != nil {
		return Address{}, err
	}

	return h.Address(), nil
}

// Nodes returns a copy of the address nodes.
func (a Address) Nodes() []Node { return append([]Node(nil), a.nodes...) }

// Len returns the number of nodes.
func (a Address) Len() int { return len(a.nodes) }

// IsRoot reports whether a has no nodes.
func (a Address) IsRoot() bool { return len(a.nodes) == 0 }

// EndsOnType reports whether the last node has a type but no name.
func (a Address) EndsOnType() bool { return a.endsOnType }

// Clone returns a copy of a that shares no memory with it.
func (a Address) Clone() Address {
	a.nodes = append([]Node(nil), a.nodes...)

	return a
}

// String renders a as /type=name/type.
func (a Address) String() string {
	if len(a.nodes) == 0 {
		return "/"
	}

	var sb strings.Builder

	for _, n := range a.nodes {
		sb.WriteByte('/')
		sb.WriteString(n.Type)

		if n.Name != "" {
			sb.WriteByte('=')
			sb.WriteString(n.Name)
		}
	}

	return sb.String()
}

// Value returns the address model: a list of single-field objects.
func (a Address) Value() (*value.Node, error) {
	list := value.NewList()

	for _, n := range a.nodes {
		if n.Name == "" {
			return nil, ErrMissingNodeName.Detail("node type " + n.Type + " has no name")
		}

		list.Append(value.NewObject().Set(n.Type, value.NewString(n.Name)))
	}

	return list, nil
}

func (a *Address) reset() {
	a.nodes, a.endsOnType = a.nodes[:0], false
}

// toNodeType appends a node of type t without a name.
func (a *Address) toNodeType(t string) {
	a.nodes = append(a.nodes, Node{Type: t})
	a.endsOnType = true
}

// toNode names the node of the type the address ends on.
func (a *Address) toNode(name string) {
	a.nodes[len(a.nodes)-1].Name = name
	a.endsOnType = false
}

// toType drops the name of the last node.
func (a *Address) toType() {
	if n := len(a.nodes); n > 0 {
		a.nodes[n-1].Name = ""
		a.endsOnType = true
	}
}

// toParent drops the last node.
func (a *Address) toParent() {
	if n := len(a.nodes); n > 0 {
		a.nodes = a.nodes[:n-1]
		a.endsOnType = false
	}
}
