package request

import (
	"context"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/opline/parsing"
	"github.com/ardnew/opline/value"
)

// KnownHeaders are the operation headers accepted by [Handler.ToModel].
var KnownHeaders = []string{
	"allow-resource-service-restart",
	"blocking-timeout",
	"roles",
	"rollback-on-runtime-failure",
	"rollout",
}

// Header is one entry of an operation's header block.
type Header interface {
	// Name returns the header name used in the request model.
	Name() string
	// Node returns the header value in the request model.
	Node(ctx context.Context) (*value.Node, error)
	String() string
}

// GenericHeader is a header written as name=value or name arguments.
type GenericHeader struct {
	name  string
	value string
	args  bool
}

// NewHeader returns a header assigned value with name=value.
func NewHeader(name, value string) *GenericHeader {
	return &GenericHeader{name: name, value: value}
}

// Name implements [Header].
func (h *GenericHeader) Name() string { return h.name }

// Value returns the header value or its arguments as written.
func (h *GenericHeader) Value() string { return h.value }

// Node implements [Header]. A header without a value is the flag "true".
func (h *GenericHeader) Node(ctx context.Context) (*value.Node, error) {
	if h.value == "" {
		return value.NewString("true"), nil
	}

	return value.Parse(ctx, h.value, parsing.WithDeactivated('$'))
}

func (h *GenericHeader) String() string {
	switch {
	case h.value == "":
		return h.name
	case h.args:
		return h.name + " " + h.value
	}

	return h.name + "=" + h.value
}

// checkHeader returns ErrUnknownHeader, with the closest known names, if
// name is not a known header.
func checkHeader(name string) error {
	if slices.Contains(KnownHeaders, name) {
		return nil
	}

	matches := fuzzy.Find(name, KnownHeaders)
	if len(matches) == 0 {
		return ErrUnknownHeader.Detail(name)
	}

	hint := make([]string, 0, min(len(matches), 3))
	for _, m := range matches[:cap(hint)] {
		hint = append(hint, m.Str)
	}

	return ErrUnknownHeader.Detail(name + " (did you mean " + strings.Join(hint, ", ") + "?)")
}
