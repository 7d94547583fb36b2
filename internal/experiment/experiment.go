// Package experiment holds a loaded design: an experiment made of routines,
// each an ordered list of component descriptors.
package experiment

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/stimforge/internal/model"
)

// Experiment is the root of a design.
type Experiment struct {
	Name     string
	Routines []*Routine
}

// Routine is an ordered group of components shown together. The order of
// Components is the sibling order used for drawing depth.
type Routine struct {
	Name       string
	Components []*model.Descriptor
}

// RoutineName returns the routine name.
func (r *Routine) RoutineName() string { return r.Name }

// Siblings returns the component names in routine order.
func (r *Routine) Siblings() []string {
	out := make([]string, 0, len(r.Components))
	for _, c := range r.Components {
		out = append(out, c.Name)
	}
	return out
}

// SiblingPosition returns the 1-based position of the first component
// called name.
func (r *Routine) SiblingPosition(name string) (int, error) {
	for i, c := range r.Components {
		if c.Name == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("component '%s' is not part of routine '%s'", name, r.Name)
}

// Component returns the component called name.
func (r *Routine) Component(name string) (*model.Descriptor, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Routine returns the routine called name.
func (e *Experiment) Routine(name string) (*Routine, bool) {
	for _, r := range e.Routines {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// RequiredLibraries returns the sorted union of the runtime libraries of
// every component that supports target.
func (e *Experiment) RequiredLibraries(target model.Target) []string {
	var libs []string
	for _, r := range e.Routines {
		for _, c := range r.Components {
			if c.Supports(target) {
				libs = append(libs, c.Libraries...)
			}
		}
	}
	slices.Sort(libs)
	return slices.Compact(libs)
}

// Validate checks that routine names are unique, that component names are
// unique across the experiment, and that every component validates.
func (e *Experiment) Validate() error {
	var errs []error
	routines := make(map[string]struct{}, len(e.Routines))
	components := make(map[string]string)

	for _, r := range e.Routines {
		if _, dup := routines[r.Name]; dup {
			errs = append(errs, fmt.Errorf("routine '%s' is defined more than once", r.Name))
		}
		routines[r.Name] = struct{}{}

		for _, c := range r.Components {
			if prev, dup := components[c.Name]; dup {
				errs = append(errs, fmt.Errorf("component '%s' in routine '%s' is already defined in routine '%s'", c.Name, r.Name, prev))
				continue
			}
			components[c.Name] = r.Name
			if err := c.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
