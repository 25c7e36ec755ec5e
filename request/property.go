package request

import (
	"context"
	"strings"

	"github.com/ardnew/opline/parsing"
	"github.com/ardnew/opline/value"
)

// Property is an operation parameter or a command argument. Either the
// name or the value may be missing. Value holds the text as written,
// with quotes and escapes.
type Property struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" expr:"name"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty" expr:"value"`
	HasValue bool   `json:"-" yaml:"-" expr:"has_value"`
}

// Text returns the value with quotes and escapes removed.
func (p Property) Text(ctx context.Context) (string, error) {
	return value.Unquote(ctx, p.Value, parsing.WithDeactivated('$'))
}

// Node converts the value into a model node. A property without a value
// is the flag "true".
func (p Property) Node(ctx context.Context) (*value.Node, error) {
	if !p.HasValue {
		return value.NewString("true"), nil
	}

	return value.Parse(ctx, p.Value, parsing.WithDeactivated('$'))
}

// String renders the property as name=value.
func (p Property) String() string {
	var sb strings.Builder

	sb.WriteString(p.Name)

	if p.HasValue {
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}

	return sb.String()
}
