package app

import (
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/modules/image"
	"github.com/specialistvlad/stimforge/modules/variable"
)

// coreModules is the definitive list of all component types that are
// compiled into the stimforge binary.
var coreModules = []registry.Module{
	&image.Module{},
	&variable.Module{},
}
