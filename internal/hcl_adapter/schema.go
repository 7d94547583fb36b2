package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Experiments []*ExperimentBlock `hcl:"experiment,block"`
	Routines    []*RoutineBlock    `hcl:"routine,block"`
}

// ExperimentBlock is `experiment "<name>" { ... }`.
type ExperimentBlock struct {
	Name     string          `hcl:"name,label"`
	Routines []*RoutineBlock `hcl:"routine,block"`
}

// RoutineBlock is `routine "<name>" { ... }`.
type RoutineBlock struct {
	Name       string            `hcl:"name,label"`
	Components []*ComponentBlock `hcl:"component,block"`
}

// updatesBlockType is the only block a component body may contain.
const updatesBlockType = "updates"

// ComponentBlock is `component "<type>" "<name>" { ... }`. Its attributes
// are parameter values keyed by parameter name or constructor keyword.
type ComponentBlock struct {
	Type    string        `hcl:"type,label"`
	Name    string        `hcl:"name,label"`
	Updates *UpdatesBlock `hcl:"updates,block"`
	Body    hcl.Body      `hcl:",remain"`
}

// UpdatesBlock maps parameters to update policies, e.g.
// `image = "set every repeat"`.
type UpdatesBlock struct {
	Body hcl.Body `hcl:",remain"`
}
