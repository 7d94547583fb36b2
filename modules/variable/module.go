package variable

import "github.com/specialistvlad/stimforge/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the variable component type.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Component{
		Type:    Type,
		Tooltip: "Variable: create a new variable",
		New:     New,
		Writer:  Writer{},
	})
}
