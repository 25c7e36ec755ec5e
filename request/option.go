package request

import (
	"github.com/ardnew/opline/log"
	"github.com/ardnew/opline/parsing"
)

// Option configures a [Handler].
type Option func(*Handler)

// WithPrefix sets the address relative addresses are read from.
func WithPrefix(a Address) Option {
	return func(h *Handler) { h.prefix = a.Clone() }
}

// WithStrict makes unresolved ${name} references an error.
func WithStrict(strict bool) Option {
	return func(h *Handler) { h.opts = append(h.opts, parsing.WithStrict(strict)) }
}

// WithProperties sets the resolver for ${name} references.
func WithProperties(r parsing.PropertyResolver) Option {
	return func(h *Handler) { h.opts = append(h.opts, parsing.WithProperties(r)) }
}

// WithVariables sets the resolver for $name references.
func WithVariables(r parsing.VariableResolver) Option {
	return func(h *Handler) { h.opts = append(h.opts, parsing.WithVariables(r)) }
}

// WithLogger sets the logger for parse results and, at trace level, state
// transitions.
func WithLogger(l log.Logger) Option {
	return func(h *Handler) {
		h.logger = l
		h.opts = append(h.opts, parsing.WithLogger(l))
	}
}
