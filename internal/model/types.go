// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed enumerations of the parameter model: the
// declared value types, the update policies and the generation targets.
package model

import (
	"fmt"
	"strings"
)

// ValType is the declared type of a Parameter. It decides which literal
// coercion rule applies to the parameter's value.
type ValType int

const (
	// ValTypeInvalid is the zero value and never valid on a Parameter.
	ValTypeInvalid ValType = iota
	ValTypeFile
	ValTypeString
	ValTypeNumber
	ValTypeBool
	ValTypeCode
	ValTypeChoice
)

var valTypeNames = map[ValType]string{
	ValTypeFile:   "file",
	ValTypeString: "str",
	ValTypeNumber: "num",
	ValTypeBool:   "bool",
	ValTypeCode:   "code",
	ValTypeChoice: "choice",
}

// AllValTypes lists every valid ValType in declaration order.
var AllValTypes = []ValType{
	ValTypeFile, ValTypeString, ValTypeNumber, ValTypeBool, ValTypeCode, ValTypeChoice,
}

// String returns the short name of the type, e.g. "str".
func (t ValType) String() string {
	if name, ok := valTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValType(%d)", int(t))
}

// ParseValType accepts both the short ("str", "num", "bool") and long
// ("string", "number", "boolean") spellings.
func ParseValType(s string) (ValType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return ValTypeFile, nil
	case "str", "string":
		return ValTypeString, nil
	case "num", "number":
		return ValTypeNumber, nil
	case "bool", "boolean":
		return ValTypeBool, nil
	case "code":
		return ValTypeCode, nil
	case "choice":
		return ValTypeChoice, nil
	default:
		return ValTypeInvalid, fmt.Errorf("unknown value type %q", s)
	}
}

// UpdatePolicy controls how often a parameter is refreshed while the
// generated program runs.
type UpdatePolicy int

const (
	UpdateConstant UpdatePolicy = iota
	UpdateEveryRepeat
	UpdateEveryFrame
)

// String returns the builder spelling of the policy.
func (u UpdatePolicy) String() string {
	switch u {
	case UpdateConstant:
		return "constant"
	case UpdateEveryRepeat:
		return "set every repeat"
	case UpdateEveryFrame:
		return "set every frame"
	default:
		return fmt.Sprintf("UpdatePolicy(%d)", int(u))
	}
}

// ParseUpdatePolicy accepts the builder spelling ("set every repeat") as well
// as the short forms "repeat" and "frame".
func ParseUpdatePolicy(s string) (UpdatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "constant", "":
		return UpdateConstant, nil
	case "set every repeat", "every repeat", "every_repeat", "repeat":
		return UpdateEveryRepeat, nil
	case "set every frame", "every frame", "every_frame", "frame":
		return UpdateEveryFrame, nil
	default:
		return UpdateConstant, fmt.Errorf("unknown update policy %q", s)
	}
}

// Target identifies the runtime that generated code is written for.
type Target int

const (
	// TargetNative is the desktop runtime (Python).
	TargetNative Target = iota + 1
	// TargetWeb is the browser runtime (JavaScript).
	TargetWeb
)

// AllTargets lists every Target in a stable order.
var AllTargets = []Target{TargetNative, TargetWeb}

func (t Target) String() string {
	switch t {
	case TargetNative:
		return "native"
	case TargetWeb:
		return "web"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// ParseTarget accepts "native"/"psychopy" and "web"/"psychojs".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native", "psychopy", "py":
		return TargetNative, nil
	case "web", "psychojs", "js":
		return TargetWeb, nil
	default:
		return 0, fmt.Errorf("unknown target %q: must be 'native' or 'web'", s)
	}
}

// TargetSet is a set of Targets. The zero value is the empty set.
type TargetSet uint8

// NewTargetSet returns a set holding the given targets.
func NewTargetSet(targets ...Target) TargetSet {
	var s TargetSet
	for _, t := range targets {
		s |= 1 << uint(t)
	}
	return s
}

// Has reports whether t is in the set.
func (s TargetSet) Has(t Target) bool {
	return s&(1<<uint(t)) != 0
}

// Targets returns the members of the set in AllTargets order.
func (s TargetSet) Targets() []Target {
	var out []Target
	for _, t := range AllTargets {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TargetSet) String() string {
	names := make([]string, 0, 2)
	for _, t := range s.Targets() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
