// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Descriptor, the ordered collection of a component's
// Parameters, and the Builder that assembles one.
package model

import (
	"fmt"
	"regexp"
	"slices"
)

// identRegex matches names that are valid identifiers in both targets.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedNames cannot name a component: keywords and literals of either
// target, and the raw texts the web target renders as undefined.
var reservedNames = func() map[string]struct{} {
	names := []string{
		// Python
		"False", "None", "True", "and", "as", "assert", "async", "await",
		"break", "class", "continue", "def", "del", "elif", "else", "except",
		"finally", "for", "from", "global", "if", "import", "in", "is",
		"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
		"while", "with", "yield",
		// JavaScript
		"case", "catch", "const", "debugger", "default", "delete", "do",
		"enum", "export", "extends", "false", "function", "implements",
		"instanceof", "interface", "let", "new", "null", "package", "private",
		"protected", "public", "static", "super", "switch", "this", "throw",
		"true", "typeof", "var", "void", "arguments", "eval", "undefined",
		"NaN", "Infinity",
		// null sentinels
		"none", "sin",
	}
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}()

// IsReservedName reports whether name is a keyword or literal of a target.
func IsReservedName(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// Descriptor is the format-agnostic representation of one component of a
// design.
type Descriptor struct {
	// Name is the component name. It becomes the variable bound in
	// generated code.
	Name string

	// Type is the declared component type tag, e.g. "image".
	Type string

	// Class is the constructor called in generated code, e.g.
	// "visual.ImageStim". Components that are not constructed leave it empty.
	Class string

	// Order is the render order of the constructor fields. Every name in it
	// is a key of Params. Params may hold further names that are not
	// rendered as fields, such as timing settings.
	Order []string

	Params map[string]*Parameter

	Targets   TargetSet
	Libraries []string
}

// Param returns the parameter called name.
func (d *Descriptor) Param(name string) (*Parameter, bool) {
	p, ok := d.Params[name]
	return p, ok
}

// ParamByKey finds a parameter by its name or by its constructor keyword.
func (d *Descriptor) ParamByKey(key string) (*Parameter, bool) {
	if p, ok := d.Params[key]; ok {
		return p, true
	}
	for _, p := range d.Params {
		if p.Arg == key {
			return p, true
		}
	}
	return nil, false
}

// Supports reports whether the component can be generated for target t.
func (d *Descriptor) Supports(t Target) bool {
	return d.Targets.Has(t)
}

// Remove deletes a parameter from both Params and Order.
func (d *Descriptor) Remove(name string) {
	delete(d.Params, name)
	d.Order = slices.DeleteFunc(d.Order, func(n string) bool { return n == name })
}

// Sorted returns the parameters in Order followed by the remaining ones in
// name order.
func (d *Descriptor) Sorted() []*Parameter {
	out := make([]*Parameter, 0, len(d.Params))
	seen := make(map[string]struct{}, len(d.Order))
	for _, name := range d.Order {
		if p, ok := d.Params[name]; ok {
			out = append(out, p)
			seen[name] = struct{}{}
		}
	}
	rest := make([]string, 0, len(d.Params)-len(seen))
	for name := range d.Params {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		out = append(out, d.Params[name])
	}
	return out
}

// Validate checks the descriptor's structure and every parameter value.
func (d *Descriptor) Validate() error {
	if !identRegex.MatchString(d.Name) {
		return &ValidationError{Component: d.Name, Param: "name", Reason: fmt.Sprintf("%q is not a valid identifier", d.Name)}
	}
	if IsReservedName(d.Name) {
		return &ValidationError{Component: d.Name, Param: "name", Reason: fmt.Sprintf("%q is a reserved word in a target language", d.Name)}
	}
	for _, name := range d.Order {
		if _, ok := d.Params[name]; !ok {
			return &UnresolvedParameterError{Component: d.Name, Param: name}
		}
	}
	for _, p := range d.Sorted() {
		if err := p.Validate(d.Name); err != nil {
			return err
		}
	}
	return nil
}

// Builder assembles a Descriptor. Parameter filtering happens here, before
// the Descriptor is handed to anyone else.
type Builder struct {
	d   *Descriptor
	err error
}

// NewBuilder starts a Descriptor for component name of type typeTag.
func NewBuilder(name, typeTag string) *Builder {
	return &Builder{d: &Descriptor{
		Name:   name,
		Type:   typeTag,
		Params: make(map[string]*Parameter),
	}}
}

// Class sets the constructor called in generated code.
func (b *Builder) Class(class string) *Builder {
	b.d.Class = class
	return b
}

// Targets sets the targets the component can be generated for.
func (b *Builder) Targets(targets ...Target) *Builder {
	b.d.Targets = NewTargetSet(targets...)
	return b
}

// Libraries adds runtime libraries the generated code imports.
func (b *Builder) Libraries(libs ...string) *Builder {
	for _, lib := range libs {
		if !slices.Contains(b.d.Libraries, lib) {
			b.d.Libraries = append(b.d.Libraries, lib)
		}
	}
	return b
}

// Add appends rendered parameters in order.
func (b *Builder) Add(params ...*Parameter) *Builder {
	for _, p := range params {
		if b.put(p) {
			b.d.Order = append(b.d.Order, p.Name)
		}
	}
	return b
}

// AddSettings adds parameters that are part of the component but are not
// rendered as constructor fields.
func (b *Builder) AddSettings(params ...*Parameter) *Builder {
	for _, p := range params {
		b.put(p)
	}
	return b
}

func (b *Builder) put(p *Parameter) bool {
	if b.err != nil {
		return false
	}
	if _, exists := b.d.Params[p.Name]; exists {
		b.err = fmt.Errorf("component '%s': parameter '%s' is already defined", b.d.Name, p.Name)
		return false
	}
	b.d.Params[p.Name] = p
	return true
}

// Without filters parameters out of the descriptor being built.
func (b *Builder) Without(names ...string) *Builder {
	for _, name := range names {
		b.d.Remove(name)
	}
	return b
}

// Set replaces the value of an already added parameter.
func (b *Builder) Set(name string, v any) *Builder {
	if b.err != nil {
		return b
	}
	p, ok := b.d.Params[name]
	if !ok {
		b.err = &UnresolvedParameterError{Component: b.d.Name, Param: name}
		return b
	}
	val, err := toValue(v)
	if err != nil {
		b.err = fmt.Errorf("component '%s', parameter '%s': %w", b.d.Name, name, err)
		return b
	}
	p.Value = val
	return b
}

// Build returns the Descriptor. It fails if any step of the build failed or
// if Order references a missing parameter.
func (b *Builder) Build() (*Descriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	for _, name := range b.d.Order {
		if _, ok := b.d.Params[name]; !ok {
			return nil, &UnresolvedParameterError{Component: b.d.Name, Param: name}
		}
	}
	return b.d, nil
}
