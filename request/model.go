package request

import (
	"context"

	"github.com/ardnew/opline/value"
)

// ToModel converts the parsed operation request into its model:
//
//	{"operation" => name, "address" => [{type => name}...], param => value...,
//	 "operation-headers" => {header => value...}}
func (h *Handler) ToModel(ctx context.Context) (*value.Node, error) {
	if h.IsCommand() {
		return nil, ErrMissingOperation.Detail("command " + h.command + " is not an operation request")
	}

	if h.operation == "" {
		return nil, ErrMissingOperation
	}

	addr, err := h.address.Value()
	if err != nil {
		return nil, err
	}

	model := value.NewObject().
		Set("operation", value.NewString(h.operation)).
		Set("address", addr)

	for _, p := range h.properties {
		if p.Name == "" {
			return nil, ErrMissingPropName.Detail("value " + p.Value)
		}

		v, err := p.Node(ctx)
		if err != nil {
			return nil, err
		}

		model.Set(p.Name, v)
	}

	if len(h.headers) == 0 {
		return model, nil
	}

	headers := value.NewObject()

	for _, hdr := range h.headers {
		if g, ok := hdr.(*GenericHeader); ok {
			if err := checkHeader(g.Name()); err != nil {
				return nil, err
			}
		}

		v, err := hdr.Node(ctx)
		if err != nil {
			return nil, err
		}

		headers.Set(hdr.Name(), v)
	}

	return model.Set("operation-headers", headers), nil
}

// Summary is a plain snapshot of a parsed line. Params holds the named
// properties with their raw values and is not encoded.
type Summary struct {
	Line       string            `json:"line" yaml:"line"`
	Command    string            `json:"command,omitempty" yaml:"command,omitempty"`
	Address    string            `json:"address,omitempty" yaml:"address,omitempty"`
	Nodes      []Node            `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Operation  string            `json:"operation,omitempty" yaml:"operation,omitempty"`
	Properties []Property        `json:"properties,omitempty" yaml:"properties,omitempty"`
	Params     map[string]string `json:"-" yaml:"-"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Output     string            `json:"output,omitempty" yaml:"output,omitempty"`
	EndsOn     Separator         `json:"ends_on" yaml:"ends_on"`
	Complete   bool              `json:"complete" yaml:"complete"`
}

// Summary returns a snapshot of the line last parsed.
func (h *Handler) Summary(line string) Summary {
	s := Summary{
		Line:       line,
		Command:    h.command,
		Operation:  h.operation,
		Properties: h.Properties(),
		Params:     make(map[string]string, len(h.properties)),
		Output:     h.output,
		EndsOn:     h.sep,
		Complete:   h.complete,
	}

	if h.hasAddress || !h.address.IsRoot() {
		s.Address = h.address.String()
		s.Nodes = h.address.Nodes()
	}

	for _, p := range h.properties {
		if p.Name == "" {
			continue
		}

		if p.HasValue {
			s.Params[p.Name] = p.Value
		} else {
			s.Params[p.Name] = "true"
		}
	}

	if len(h.headers) > 0 {
		s.Headers = make(map[string]string, len(h.headers))
		for _, hdr := range h.headers {
			if g, ok := hdr.(*GenericHeader); ok {
				s.Headers[g.Name()] = g.Value()
			} else {
				s.Headers[hdr.Name()] = hdr.String()
			}
		}
	}

	return s
}
