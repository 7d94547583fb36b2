// Package resolve turns a Descriptor into a target-scoped, ordered list of
// rendered fields.
//
// A Resolved value is created fresh by every call, is owned by the caller and
// is never cached. The Descriptor is only read.
package resolve

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/stimforge/internal/literal"
	"github.com/specialistvlad/stimforge/internal/model"
)

// Field is one resolved parameter.
type Field struct {
	Name    string
	Arg     string
	Literal literal.Literal
}

// Resolved is the ordered result of resolving a Descriptor for one target.
type Resolved struct {
	Target model.Target
	Fields []Field
	index  map[string]int
}

// Lookup returns the field resolved for parameter name.
func (r *Resolved) Lookup(name string) (Field, bool) {
	if r == nil {
		return Field{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Field{}, false
	}
	return r.Fields[i], true
}

// Len returns the number of resolved fields.
func (r *Resolved) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Fields)
}

func newResolved(target model.Target, capacity int) *Resolved {
	return &Resolved{
		Target: target,
		Fields: make([]Field, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

func (r *Resolved) add(f Field) {
	r.index[f.Name] = len(r.Fields)
	r.Fields = append(r.Fields, f)
}

// Resolve renders the initial value of every parameter in desc.Order, then
// of every name in required that is not in the order. Names in required are
// the fields an emitter template cannot do without; a missing one is an
// UnresolvedParameterError.
func Resolve(desc *model.Descriptor, target model.Target, required ...string) (*Resolved, error) {
	for _, name := range required {
		if _, ok := desc.Params[name]; !ok {
			return nil, &model.UnresolvedParameterError{Component: desc.Name, Param: name}
		}
	}

	names := slices.Clone(desc.Order)
	for _, name := range required {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	res := newResolved(target, len(names))
	for _, name := range names {
		p, ok := desc.Params[name]
		if !ok {
			return nil, &model.UnresolvedParameterError{Component: desc.Name, Param: name}
		}
		v, typ := p.InitValue()
		lit, err := literal.Coerce(target, typ, v)
		if err != nil {
			return nil, annotate(desc, p, err)
		}
		res.add(Field{Name: p.Name, Arg: p.ArgName(), Literal: lit})
	}
	return res, nil
}

// ResolveUpdates renders the current value of every ordered parameter whose
// update policy is policy. These values feed the setter calls made while
// the program runs.
func ResolveUpdates(desc *model.Descriptor, target model.Target, policy model.UpdatePolicy) (*Resolved, error) {
	res := newResolved(target, 0)
	if policy == model.UpdateConstant {
		return res, nil
	}
	for _, name := range desc.Order {
		p, ok := desc.Params[name]
		if !ok {
			return nil, &model.UnresolvedParameterError{Component: desc.Name, Param: name}
		}
		if p.Updates != policy || !p.AppliesTo(target) {
			continue
		}
		lit, err := literal.Coerce(target, p.Type, p.Value)
		if err != nil {
			return nil, annotate(desc, p, err)
		}
		res.add(Field{Name: p.Name, Arg: p.ArgName(), Literal: lit})
	}
	return res, nil
}

// annotate attaches the parameter to a coercion error.
func annotate(desc *model.Descriptor, p *model.Parameter, err error) error {
	var unsupported *model.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		tagged := *unsupported
		tagged.Param = p.Name
		return fmt.Errorf("component '%s': %w", desc.Name, &tagged)
	}
	return fmt.Errorf("component '%s', parameter '%s': %w", desc.Name, p.Name, err)
}
