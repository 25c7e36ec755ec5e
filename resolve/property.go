package resolve

import (
	"os"
	"strings"
)

// envPrefix selects the process environment in a property name.
const envPrefix = "env."

// Properties resolves the expressions of ${...} references. It implements
// [parsing.PropertyResolver].
//
// An expression is a comma-separated list of names tried in order,
// optionally followed by :default. A name starting with "env." is looked
// up in the process environment, any other name in the defined values.
type Properties struct {
	values map[string]string
	lookup func(string) (string, bool)
}

// NewProperties returns a resolver over values and the process
// environment.
func NewProperties(values map[string]string) *Properties {
	p := &Properties{values: make(map[string]string, len(values)), lookup: os.LookupEnv}
	for k, v := range values {
		p.values[k] = v
	}

	return p
}

// Set defines the property name.
func (p *Properties) Set(name, value string) { p.values[name] = value }

// ResolveProperty returns the value of expr.
func (p *Properties) ResolveProperty(expr string) (string, bool) {
	names, def, hasDefault := strings.Cut(expr, ":")

	for name := range strings.SplitSeq(names, ",") {
		if v, ok := p.get(strings.TrimSpace(name)); ok {
			return v, true
		}
	}

	return def, hasDefault
}

func (p *Properties) get(name string) (string, bool) {
	if env, ok := strings.CutPrefix(name, envPrefix); ok {
		return p.lookup(env)
	}

	v, ok := p.values[name]

	return v, ok
}
