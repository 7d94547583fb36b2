// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Parameter, a single typed and update-scheduled
// attribute of a component, and the validation of its value.
//
// Values are cty.Value instances, so every value is one of a closed set of
// variants: string, number, bool, null, or a tuple/list of those. A null
// value stands for "None", the absence of a value.
package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Input hints understood by the emitters and the validator.
const (
	HintSingle = "single"
	HintChoice = "choice"
	HintFile   = "file"
	HintBool   = "bool"
	HintColor  = "color"
	HintMulti  = "multi"
)

// ExprPrefix marks a string value as an expression rather than a literal.
const ExprPrefix = "$"

// Parameter is a single named attribute of a component.
type Parameter struct {
	// Name is the key of the parameter in its Descriptor.
	Name string

	// Arg is the keyword used for the parameter in generated constructor
	// calls. Empty means Name.
	Arg string

	// Value is the current value set by the editing layer.
	Value cty.Value

	// Type is the declared value type and selects the coercion rule.
	Type ValType

	// InputHint tells an editor which widget to show. The emitters use the
	// HintColor hint to wrap values for the browser runtime.
	InputHint string

	// AllowedVals, when not empty, is the closed set of values the parameter
	// accepts. It is required for ValTypeChoice.
	AllowedVals []string

	Updates        UpdatePolicy
	AllowedUpdates []UpdatePolicy

	// Placeholder is the initial value used instead of Value when Updates is
	// not UpdateConstant. A zero Placeholder stands for null.
	Placeholder cty.Value
	// PlaceholderType is the declared type of Placeholder. Zero means Type.
	PlaceholderType ValType

	// Targets restricts the parameter to some targets. The zero set means
	// every target.
	Targets TargetSet

	Category string
	Hint     string
	Label    string
}

// ArgName returns the constructor keyword for the parameter.
func (p *Parameter) ArgName() string {
	if p.Arg != "" {
		return p.Arg
	}
	return p.Name
}

// AppliesTo reports whether the parameter is emitted for target t.
func (p *Parameter) AppliesTo(t Target) bool {
	return p.Targets == 0 || p.Targets.Has(t)
}

// Text returns the raw text of the current value.
func (p *Parameter) Text() string {
	s, _ := ValueText(p.Value)
	return s
}

// InitValue returns the value and declared type to use for the initial
// construction of the component: Value for constant parameters, Placeholder
// for parameters that are updated while the program runs.
func (p *Parameter) InitValue() (cty.Value, ValType) {
	if p.Updates == UpdateConstant {
		return p.Value, p.Type
	}
	typ := p.PlaceholderType
	if typ == ValTypeInvalid {
		typ = p.Type
	}
	if p.Placeholder.IsNull() {
		return cty.NullVal(cty.DynamicPseudoType), typ
	}
	return p.Placeholder, typ
}

// Validate checks the value against the declared type, the allowed values and
// the allowed update policies. The component name is used for reporting.
func (p *Parameter) Validate(component string) error {
	fail := func(format string, args ...any) error {
		return &ValidationError{Component: component, Param: p.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if _, ok := valTypeNames[p.Type]; !ok {
		return fail("undeclared value type %s", p.Type)
	}
	if p.Updates != UpdateConstant && !slices.Contains(p.AllowedUpdates, p.Updates) {
		return fail("update policy %q is not allowed", p.Updates)
	}
	if !p.Value.IsKnown() {
		return fail("value is not known")
	}
	if p.Value.IsNull() {
		if p.Type == ValTypeChoice || p.Type == ValTypeBool {
			return fail("%s parameter cannot be null", p.Type)
		}
		return nil
	}

	text, isScalar := ValueText(p.Value)
	if isScalar && IsExpression(text) {
		// Expressions are evaluated by the target runtime.
		return nil
	}

	switch p.Type {
	case ValTypeBool:
		if _, err := convert.Convert(p.Value, cty.Bool); err != nil {
			return fail("expected a bool, got %s", p.Value.Type().FriendlyName())
		}
	case ValTypeNumber:
		if isScalar && !IsNullText(text) {
			if _, err := convert.Convert(p.Value, cty.Number); err != nil {
				return fail("expected a number, got %q", text)
			}
		}
	case ValTypeChoice:
		if len(p.AllowedVals) == 0 {
			return fail("choice parameter declares no allowed values")
		}
		if !isScalar {
			return fail("expected one of %s, got %s", strings.Join(p.AllowedVals, ", "), p.Value.Type().FriendlyName())
		}
	}

	if len(p.AllowedVals) > 0 && isScalar && !slices.Contains(p.AllowedVals, text) {
		return fail("%q is not one of %s", text, strings.Join(p.AllowedVals, ", "))
	}

	if p.InputHint == HintColor && isScalar && strings.HasPrefix(text, "#") {
		if _, err := colorful.Hex(text); err != nil {
			return fail("malformed hex color %q", text)
		}
	}
	return nil
}

// ValueText returns the text form of a known, non-null string or number
// value. The second result is false for every other value.
func ValueText(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsKnown() {
		return "", false
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), true
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), true
	}
	return "", false
}

// IsExpression reports whether a raw string value is an expression.
func IsExpression(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), ExprPrefix)
}

// IsNullText reports whether a raw string spells the absent value.
func IsNullText(s string) bool {
	return s == "None" || s == "none"
}

// Str, Num, Bool, None and Pair build cty values for component definitions.
func Str(s string) cty.Value { return cty.StringVal(s) }

func Num(f float64) cty.Value { return cty.NumberFloatVal(f) }

func Bool(b bool) cty.Value { return cty.BoolVal(b) }

func None() cty.Value { return cty.NullVal(cty.DynamicPseudoType) }

func Pair(a, b float64) cty.Value {
	return cty.TupleVal([]cty.Value{cty.NumberFloatVal(a), cty.NumberFloatVal(b)})
}
