package parsing

import (
	"github.com/ardnew/opline/log"
)

// Option configures a single [Grammar.Parse] call.
type Option func(*Context)

// WithStrict makes unresolved ${name} references an error. Without it they
// are kept as literal text.
func WithStrict(strict bool) Option {
	return func(c *Context) { c.strict = strict }
}

// WithProperties sets the resolver for ${name} references.
func WithProperties(r PropertyResolver) Option {
	return func(c *Context) { c.props = r }
}

// WithVariables sets the resolver for $name references.
func WithVariables(r VariableResolver) Option {
	return func(c *Context) { c.vars = r }
}

// WithLogger sets the logger that receives state transitions at trace
// level.
func WithLogger(l log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithDeactivated treats each of chars as plain content for the whole
// parse. Only '\\' and '$' have control meaning.
func WithDeactivated(chars ...rune) Option {
	return func(c *Context) {
		for _, ch := range chars {
			c.DeactivateControl(ch)
		}
	}
}
