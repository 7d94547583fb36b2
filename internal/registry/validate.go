package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
)

// probeName is the component name used to build default descriptors.
const probeName = "probe"

// ValidateRegistry performs a parity check between each component's factory
// and its writer: the default Descriptor must build, must validate, and must
// define every field the writer requires.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, typ := range r.Types() {
		c := r.components[typ]

		desc, err := c.New(probeName)
		if err != nil {
			errs = append(errs, fmt.Sprintf("component '%s': factory failed: %v", typ, err))
			continue
		}
		if desc.Type != typ {
			errs = append(errs, fmt.Sprintf("component '%s': factory builds type '%s'", typ, desc.Type))
		}
		if len(desc.Targets.Targets()) == 0 {
			errs = append(errs, fmt.Sprintf("component '%s': declares no targets", typ))
		}

		for _, name := range c.Writer.Required() {
			if _, ok := desc.Params[name]; !ok {
				errs = append(errs, fmt.Sprintf("component '%s': writer requires parameter '%s' which the factory does not define", typ, name))
			}
		}

		if err := desc.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("component '%s': default values are invalid: %v", typ, err))
		}
		logger.Debug("Component type validated.", "type", typ, "params", len(desc.Params), "targets", desc.Targets.String())
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
