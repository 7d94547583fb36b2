// Package variable provides the variable component: a named value that is
// set at experiment start, routine start or every frame, and optionally
// saved to the data file. It exists only in the native runtime.
package variable

import (
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/modules/base"
)

// Type is the design type tag of the component.
const Type = "variable"

const (
	ParamStartExpValue     = "startExpValue"
	ParamStartRoutineValue = "startRoutineValue"
	ParamStartFrameValue   = "startFrameValue"
	ParamSaveStartExp      = "saveStartExp"
	ParamSaveStartRoutine  = "saveStartRoutine"
	ParamSaveFrameValue    = "saveFrameValue"
	ParamSaveEndRoutine    = "saveEndRoutine"
	ParamSaveEndExp        = "saveEndExp"
)

// Choices of saveFrameValue.
const (
	SaveFirst = "first"
	SaveLast  = "last"
	SaveAll   = "all"
	SaveNever = "never"
)

// New builds the default variable component called name.
func New(name string) (*model.Descriptor, error) {
	return model.NewBuilder(name, Type).
		Targets(model.TargetNative).
		Add(
			base.Name(name),
			value(ParamStartExpValue, "Experiment start value", "The start value. A variable can be set to any value."),
			save(ParamSaveStartExp, false, "Save exp start value", "Save the experiment start value in data file."),
			value(ParamStartRoutineValue, "Routine start value", "Set the value for the beginning of each Routine."),
			save(ParamSaveStartRoutine, false, "Save Routine start value", "Save the Routine start value in data file."),
			value(ParamStartFrameValue, "Frame start value", "Set the value for the beginning of every screen refresh."),
			&model.Parameter{
				Name:        ParamSaveFrameValue,
				Value:       model.Str(SaveNever),
				Type:        model.ValTypeString,
				InputHint:   model.HintChoice,
				AllowedVals: []string{SaveFirst, SaveLast, SaveAll, SaveNever},
				Category:    base.CategoryData,
				Hint:        "Save choice of frame value in data file.",
				Label:       "Save frame value",
			},
			save(ParamSaveEndRoutine, true, "Save Routine end value", "Save the Routine end value in data file."),
			save(ParamSaveEndExp, false, "Save exp end value", "Save the experiment end value in data file."),
		).
		AddSettings(base.Timing("", "")...).
		Build()
}

func value(name, label, hint string) *model.Parameter {
	return &model.Parameter{
		Name:      name,
		Value:     model.Str(""),
		Type:      model.ValTypeCode,
		InputHint: model.HintSingle,
		Category:  base.CategoryBasic,
		Hint:      hint,
		Label:     label,
	}
}

func save(name string, on bool, label, hint string) *model.Parameter {
	return &model.Parameter{
		Name:      name,
		Value:     model.Bool(on),
		Type:      model.ValTypeBool,
		InputHint: model.HintBool,
		Category:  base.CategoryData,
		Hint:      hint,
		Label:     label,
	}
}
