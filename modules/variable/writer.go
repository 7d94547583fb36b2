package variable

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/stimforge/internal/ctxlog"
	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/internal/resolve"
	"github.com/specialistvlad/stimforge/modules/base"
)

// Writer writes the variable component for the native runtime.
type Writer struct{}

var _ registry.Writer = Writer{}

var required = []string{
	base.ParamName,
	ParamStartExpValue, ParamStartRoutineValue, ParamStartFrameValue,
	ParamSaveStartExp, ParamSaveStartRoutine, ParamSaveFrameValue, ParamSaveEndRoutine, ParamSaveEndExp,
	base.ParamStartType, base.ParamStartVal, base.ParamStopType, base.ParamStopVal,
}

// Required implements registry.Writer.
func (Writer) Required() []string {
	return append([]string(nil), required...)
}

// state is the view of one component the phase writers work from.
type state struct {
	desc *model.Descriptor
	res  *resolve.Resolved
	name string
}

// raw returns the trimmed text the user entered for a value parameter.
func (s *state) raw(param string) string {
	return strings.TrimSpace(s.desc.Params[param].Text())
}

// empty reports whether a value parameter was left blank. Only a null or a
// blank string counts; bools, numbers and tuples are values like any other.
func (s *state) empty(param string) bool {
	v := s.desc.Params[param].Value
	if v.IsNull() {
		return true
	}
	if v.IsKnown() && v.Type() == cty.String {
		return strings.TrimSpace(v.AsString()) == ""
	}
	return false
}

// code returns the rendered literal of a parameter.
func (s *state) code(param string) string {
	f, _ := s.res.Lookup(param)
	return f.Literal.Text
}

// on reports whether a bool parameter is set.
func (s *state) on(param string) bool {
	v, err := convert.Convert(s.desc.Params[param].Value, cty.Bool)
	if err != nil || v.IsNull() || !v.IsKnown() {
		return false
	}
	return v.True()
}

// Write implements registry.Writer.
func (Writer) Write(ctx context.Context, req *registry.Request, sink emit.Sink) error {
	desc := req.Descriptor
	if req.Target != model.TargetNative || !desc.Supports(req.Target) {
		return &model.UnsupportedTargetError{Component: desc.Name, Type: desc.Type, Target: req.Target}
	}
	res, err := resolve.Resolve(desc, req.Target, required...)
	if err != nil {
		return err
	}
	s := &state{desc: desc, res: res, name: desc.Name}
	ctxlog.FromContext(ctx).Debug("Writing variable.", "component", s.name, "phase", req.Phase.String())

	switch req.Phase {
	case emit.PhaseInit:
		writeInit(s, sink)
	case emit.PhaseRoutineStart:
		writeRoutineStart(s, sink)
	case emit.PhaseFrame:
		return writeFrame(s, sink)
	case emit.PhaseRoutineEnd:
		writeRoutineEnd(s, sink)
	case emit.PhaseExperimentEnd:
		writeExperimentEnd(s, sink)
	}
	return nil
}

func writeInit(s *state, sink emit.Sink) {
	start := "''"
	if !s.empty(ParamStartExpValue) {
		start = s.code(ParamStartExpValue)
	}
	sink.Append(
		fmt.Sprintf("# Set experiment start values for variable component %s", s.name),
		fmt.Sprintf("%s = %s", s.name, start),
		fmt.Sprintf("%sContainer = []", s.name),
	)
}

func writeRoutineStart(s *state, sink emit.Sink) {
	if s.empty(ParamStartRoutineValue) {
		return
	}
	sink.Append(fmt.Sprintf("%s = %s  # Set Routine start values for %s", s.name, s.code(ParamStartRoutineValue), s.name))
	if s.on(ParamSaveStartRoutine) {
		sink.Append(fmt.Sprintf("thisExp.addData('%s.routineStartVal', %s)  # Save Routine start value", s.name, s.name))
	}
}

func writeFrame(s *state, sink emit.Sink) error {
	if s.empty(ParamStartFrameValue) {
		return nil
	}
	lines := []string{fmt.Sprintf("%s = %s  # Set frame start values for %s", s.name, s.code(ParamStartFrameValue), s.name)}
	if s.raw(ParamSaveFrameValue) != SaveNever {
		lines = append(lines, fmt.Sprintf("%sContainer.append(%s)  # Save frame values", s.name, s.name))
	}

	gate, gated, err := base.Gate(s.desc)
	if err != nil {
		return err
	}
	if !gated {
		sink.Append(lines...)
		return nil
	}
	indent := emit.Native{}.IndentUnit()
	sink.Append(gate)
	for _, line := range lines {
		sink.Append(indent + line)
	}
	return nil
}

func writeRoutineEnd(s *state, sink emit.Sink) {
	if s.on(ParamSaveStartExp) && !s.empty(ParamStartExpValue) {
		sink.Append(fmt.Sprintf("thisExp.addData('%s.expStartVal', %s)  # Save exp start value", s.name, s.code(ParamStartExpValue)))
	}
	if s.on(ParamSaveEndRoutine) && !s.empty(ParamStartRoutineValue) {
		sink.Append(fmt.Sprintf("thisExp.addData('%s.routineEndVal', %s)  # Save end Routine value", s.name, s.name))
	}
	if s.empty(ParamStartFrameValue) {
		return
	}
	switch s.raw(ParamSaveFrameValue) {
	case SaveLast:
		sink.Append(fmt.Sprintf("thisExp.addData('%s.frameEndVal', %sContainer[-1])  # Save end frame value", s.name, s.name))
	case SaveFirst:
		sink.Append(fmt.Sprintf("thisExp.addData('%s.frameStartVal', %sContainer[0])  # Save start frame value", s.name, s.name))
	case SaveAll:
		sink.Append(fmt.Sprintf("thisExp.addData('%s.allFrameVal', %sContainer)  # Save all frame value", s.name, s.name))
	}
}

func writeExperimentEnd(s *state, sink emit.Sink) {
	if !s.on(ParamSaveEndExp) {
		return
	}
	for _, p := range []string{ParamStartExpValue, ParamStartRoutineValue, ParamStartFrameValue} {
		if !s.empty(p) {
			sink.Append(fmt.Sprintf("thisExp.addData('%s.endExpVal', %s)  # Save end experiment value", s.name, s.name))
			return
		}
	}
}
