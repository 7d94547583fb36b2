// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the error taxonomy of a generation pass. Every error
// names the component, and where one applies the parameter, that caused it.
// Callers match them with errors.As.
package model

import (
	"fmt"
	"strings"
)

// ValidationError reports a parameter value that violates its declared type,
// its allowed values or its allowed update policies.
type ValidationError struct {
	Component string
	Param     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("component '%s', parameter '%s': invalid value: %s", e.Component, e.Param, e.Reason)
}

// UnresolvedParameterError reports a name that an emitter template or the
// descriptor order requires but that is missing from the parameter mapping.
type UnresolvedParameterError struct {
	Component string
	Param     string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("component '%s': parameter '%s' is required but not defined", e.Component, e.Param)
}

// UnsupportedTypeError reports a (target, declared type) pair that has no
// coercion rule.
type UnsupportedTypeError struct {
	Target Target
	Type   ValType
	Param  string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("parameter '%s': no %s literal rule for value type %s", e.Param, e.Target, e.Type)
	}
	return fmt.Sprintf("no %s literal rule for value type %s", e.Target, e.Type)
}

// TemplateBindingError reports an emitter field that has no entry in the
// resolved value map it was given.
type TemplateBindingError struct {
	Component string
	Field     string
	Target    Target
}

func (e *TemplateBindingError) Error() string {
	return fmt.Sprintf("component '%s': %s template field '%s' has no resolved value", e.Component, e.Target, e.Field)
}

// OrderingError reports siblings in one routine that share a position, or a
// position that is not a positive integer. It is an internal invariant
// violation, not a user error.
type OrderingError struct {
	Routine    string
	Components []string
	Position   int
}

func (e *OrderingError) Error() string {
	if len(e.Components) > 1 {
		return fmt.Sprintf("routine '%s': components %s share position %d", e.Routine, strings.Join(e.Components, ", "), e.Position)
	}
	return fmt.Sprintf("routine '%s': component '%s' has invalid position %d", e.Routine, strings.Join(e.Components, ", "), e.Position)
}

// UnsupportedTargetError reports a component that cannot be generated for a
// target.
type UnsupportedTargetError struct {
	Component string
	Type      string
	Target    Target
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("component '%s' of type '%s' does not support target %s", e.Component, e.Type, e.Target)
}
