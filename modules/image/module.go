package image

import (
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/modules/base"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the image component type.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Component{
		Type:    Type,
		Tooltip: "Image: present images (bmp, jpg, tif...)",
		New:     New,
		Writer:  base.NewStimWriter(ParamImage),
	})
}
