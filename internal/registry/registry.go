package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/stimforge/internal/depth"
	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/model"
)

// Module is the interface that all component modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Request carries everything a Writer needs for one component and phase.
type Request struct {
	Phase      emit.Phase
	Target     model.Target
	Descriptor *model.Descriptor
	Routine    depth.Routine
}

// Writer emits the code of one component type.
type Writer interface {
	// Required lists the parameters the writer's templates cannot do
	// without.
	Required() []string
	// Write appends the code of req.Descriptor for req.Phase to sink. A
	// phase the component has nothing to say about appends nothing.
	Write(ctx context.Context, req *Request, sink emit.Sink) error
}

// Component holds the compiled Go parts of one component type.
type Component struct {
	Type    string
	Tooltip string
	// New builds the default Descriptor of a component called name.
	New    func(name string) (*model.Descriptor, error)
	Writer Writer
}

// Registry holds the registered component types of one application
// instance.
type Registry struct {
	components map[string]*Component
}

// New creates a Registry and registers the given modules.
func New(modules ...Module) *Registry {
	r := &Registry{components: make(map[string]*Component)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds a component type. Registering a type twice is a programmer
// error and panics.
func (r *Registry) Register(c *Component) {
	if c == nil || c.Type == "" {
		panic("component registration requires a type")
	}
	if _, exists := r.components[c.Type]; exists {
		panic(fmt.Sprintf("component type '%s' already registered", c.Type))
	}
	if c.New == nil || c.Writer == nil {
		panic(fmt.Sprintf("component type '%s' requires a factory and a writer", c.Type))
	}
	slog.Debug("Registering component type.", "type", c.Type)
	r.components[c.Type] = c
}

// Lookup returns the component registered for typ.
func (r *Registry) Lookup(typ string) (*Component, bool) {
	c, ok := r.components[typ]
	return c, ok
}

// Types returns every registered type tag in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.components))
	for typ := range r.components {
		out = append(out, typ)
	}
	slices.Sort(out)
	return out
}

// NewDescriptor builds the default Descriptor of a component of type typ.
func (r *Registry) NewDescriptor(typ, name string) (*model.Descriptor, error) {
	c, ok := r.components[typ]
	if !ok {
		return nil, fmt.Errorf("unknown component type '%s'", typ)
	}
	return c.New(name)
}
