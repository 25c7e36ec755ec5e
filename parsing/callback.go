package parsing

// Callback receives parse events. The Context passed to each method is
// only valid for the duration of the call.
type Callback interface {
	// EnteredState is called after a state is pushed, before its enter
	// hook runs.
	EnteredState(c *Context) error
	// LeavingState is called before a state is popped, after its leave
	// hook runs. c.State() is still the state being left.
	LeavingState(c *Context) error
	// Character is called for every emitted content character.
	Character(c *Context) error
}

// NopCallback ignores every event. Embed it to implement only some of the
// Callback methods.
type NopCallback struct{}

func (NopCallback) EnteredState(*Context) error { return nil }
func (NopCallback) LeavingState(*Context) error { return nil }
func (NopCallback) Character(*Context) error    { return nil }

// PropertyResolver resolves ${name} references.
type PropertyResolver interface {
	ResolveProperty(name string) (string, bool)
}

// VariableResolver resolves $name references.
type VariableResolver interface {
	ResolveVariable(name string) (string, bool)
}

// PropertyFunc adapts a function to a [PropertyResolver].
type PropertyFunc func(name string) (string, bool)

// ResolveProperty calls f(name).
func (f PropertyFunc) ResolveProperty(name string) (string, bool) { return f(name) }

// VariableFunc adapts a function to a [VariableResolver].
type VariableFunc func(name string) (string, bool)

// ResolveVariable calls f(name).
func (f VariableFunc) ResolveVariable(name string) (string, bool) { return f(name) }
