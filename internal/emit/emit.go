// Package emit writes resolved component fields as source statements for the
// native and the web runtime.
//
// Each Emitter assembles one statement from a Resolved field list and appends
// it to a caller-owned Sink. Literal rules come from package literal; the
// emitters only add the syntax around them: keyword or object-literal
// fields, the optional units clause, the interpolate flag and the depth.
package emit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/stimforge/internal/literal"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/resolve"
)

// Names and values the emitter templates treat specially.
const (
	UnitsParam        = "units"
	UnitsFromExp      = "from exp settings"
	InterpolateParam  = "interpolate"
	InterpolateLinear = "linear"
)

// Phase is the point of the generated program a statement belongs to.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseRoutineStart
	PhaseFrame
	PhaseRoutineEnd
	PhaseExperimentEnd
)

// Phases lists every phase in program order.
var Phases = []Phase{PhaseInit, PhaseRoutineStart, PhaseFrame, PhaseRoutineEnd, PhaseExperimentEnd}

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseRoutineStart:
		return "routine start"
	case PhaseFrame:
		return "each frame"
	case PhaseRoutineEnd:
		return "routine end"
	case PhaseExperimentEnd:
		return "experiment end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Emitter writes statements in the syntax of one target.
type Emitter interface {
	Target() model.Target
	// IndentUnit is one level of block indentation.
	IndentUnit() string
	// Comment renders text as a line comment.
	Comment(text string) string
	// Prelude appends the import statements for libs.
	Prelude(libs []string, sink Sink)
	// Declare appends the declarations of the component bindings.
	Declare(names []string, sink Sink)
	// Construct appends the construction statement of desc.
	Construct(desc *model.Descriptor, res *resolve.Resolved, depth float64, sink Sink) error
	// Updates appends one setter call per resolved field.
	Updates(desc *model.Descriptor, res *resolve.Resolved, sink Sink) error
}

// For returns the Emitter of target.
func For(target model.Target) (Emitter, error) {
	switch target {
	case model.TargetNative:
		return Native{}, nil
	case model.TargetWeb:
		return Web{}, nil
	default:
		return nil, fmt.Errorf("no emitter for target %s", target)
	}
}

// binding is one field of a statement: the keyword and the rendered text.
type binding struct {
	key  string
	text string
}

// bindings selects the fields of desc in declared order and renders them for
// target. colorWrap, when set, wraps color-hinted fields.
func bindings(desc *model.Descriptor, res *resolve.Resolved, target model.Target, colorWrap func(string) string) ([]binding, error) {
	if res == nil || res.Target != target {
		return nil, fmt.Errorf("component '%s': resolved values do not belong to target %s", desc.Name, target)
	}

	out := make([]binding, 0, len(desc.Order))
	for _, name := range desc.Order {
		p, ok := desc.Params[name]
		if !ok {
			return nil, &model.TemplateBindingError{Component: desc.Name, Field: name, Target: target}
		}
		if !p.AppliesTo(target) {
			continue
		}
		f, ok := res.Lookup(name)
		if !ok {
			return nil, &model.TemplateBindingError{Component: desc.Name, Field: name, Target: target}
		}

		text := f.Literal.Text
		switch {
		case name == UnitsParam:
			if p.Text() == UnitsFromExp {
				continue
			}
		case name == InterpolateParam:
			// A semantic mapping of the choice, not a literal coercion.
			var err error
			text, err = literal.Bool(target, p.Text() == InterpolateLinear)
			if err != nil {
				return nil, err
			}
		case colorWrap != nil && p.InputHint == model.HintColor:
			text = colorWrap(text)
		}
		out = append(out, binding{key: f.Arg, text: text})
	}
	return out, nil
}

// updateBindings renders every resolved field for a setter call.
func updateBindings(desc *model.Descriptor, res *resolve.Resolved, target model.Target, colorWrap func(string) string) ([]binding, error) {
	if res == nil || res.Target != target {
		return nil, fmt.Errorf("component '%s': resolved values do not belong to target %s", desc.Name, target)
	}
	out := make([]binding, 0, res.Len())
	for _, f := range res.Fields {
		p, ok := desc.Params[f.Name]
		if !ok {
			return nil, &model.TemplateBindingError{Component: desc.Name, Field: f.Name, Target: target}
		}
		text := f.Literal.Text
		if colorWrap != nil && p.InputHint == model.HintColor {
			text = colorWrap(text)
		}
		out = append(out, binding{key: f.Arg, text: text})
	}
	return out, nil
}

// FormatDepth renders a depth with one decimal, e.g. -1.0.
func FormatDepth(d float64) string {
	return strconv.FormatFloat(d, 'f', 1, 64)
}

// setter returns the setter method for keyword arg, e.g. "setImage".
func setter(arg string) string {
	r, size := utf8.DecodeRuneInString(arg)
	return "set" + string(unicode.ToUpper(r)) + arg[size:]
}

func checkConstructible(desc *model.Descriptor, target model.Target) error {
	if !desc.Supports(target) {
		return &model.UnsupportedTargetError{Component: desc.Name, Type: desc.Type, Target: target}
	}
	if strings.TrimSpace(desc.Class) == "" {
		return fmt.Errorf("component '%s' of type '%s' has no constructor", desc.Name, desc.Type)
	}
	return nil
}
