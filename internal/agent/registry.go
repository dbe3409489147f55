package agent

import "context"

// Handler executes a tool with the arguments the model supplied. The value
// it returns is fed back to the model verbatim; a non-nil error is captured
// by the executor and never escapes as an error to the loop.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Descriptor is the registered definition of a tool: its provider-facing
// schema plus the handler that runs it. Descriptors are registered once at
// construction and immutable afterward.
type Descriptor struct {
	Name        string
	Description string
	// Parameters follows JSON Schema conventions. It is provider-facing
	// metadata only; the loop never validates arguments against it.
	Parameters map[string]any
	Handler    Handler
}

// Registry maps tool names to descriptors and preserves registration order
// for building the provider's tool menu. It is read-mostly after startup
// and safe to share across sessions once fully populated.
type Registry struct {
	order   []string
	entries map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Descriptor)}
}

// Register adds a tool. It returns a DuplicateToolError if the name is
// already taken.
func (r *Registry) Register(d *Descriptor) error {
	if _, exists := r.entries[d.Name]; exists {
		return &DuplicateToolError{Name: d.Name}
	}
	r.entries[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// MustRegister registers a tool and panics on duplicate names. Intended for
// setup code where a duplicate is a programming error.
func (r *Registry) MustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Resolve looks up a tool by name, returning a NotFoundError if absent.
// Resolving the same name twice returns the same descriptor.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.entries[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return d, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.entries) }
