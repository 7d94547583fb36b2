package base

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/stimforge/internal/model"
)

// Names of the timing settings.
const (
	ParamStartType     = "startType"
	ParamStartVal      = "startVal"
	ParamStopType      = "stopType"
	ParamStopVal       = "stopVal"
	ParamStartEstim    = "startEstim"
	ParamDurationEstim = "durationEstim"
)

// Start and stop types.
const (
	TimeSeconds      = "time (s)"
	FrameN           = "frame N"
	Condition        = "condition"
	DurationSeconds  = "duration (s)"
	DurationFrames   = "duration (frames)"
	defaultTimeStart = "0.0"
	defaultFrameN    = "0"
)

var (
	StartTypes = []string{TimeSeconds, FrameN, Condition}
	StopTypes  = []string{DurationSeconds, DurationFrames, TimeSeconds, FrameN, Condition}
)

// Timing returns the timing settings. They are part of every component
// but never rendered as constructor fields.
func Timing(startVal, stopVal string) []*model.Parameter {
	return []*model.Parameter{
		choice(ParamStartType, TimeSeconds, StartTypes, "Start type", "How do you want to define your start point?"),
		setting(ParamStartVal, startVal, "Start", "When does the component start?"),
		choice(ParamStopType, DurationSeconds, StopTypes, "Stop type", "How do you want to define your end point?"),
		setting(ParamStopVal, stopVal, "Stop", "When does the component end? (blank is endless)"),
		setting(ParamStartEstim, "", "Expected start (s)", "(Optional) expected start (s), purely for representing in the timeline"),
		setting(ParamDurationEstim, "", "Expected duration (s)", "(Optional) expected duration (s), purely for representing in the timeline"),
	}
}

func setting(name, value, label, hint string) *model.Parameter {
	return &model.Parameter{
		Name:      name,
		Value:     model.Str(value),
		Type:      model.ValTypeCode,
		InputHint: model.HintSingle,
		Category:  CategoryBasic,
		Hint:      hint,
		Label:     label,
	}
}

func choice(name, value string, allowed []string, label, hint string) *model.Parameter {
	return &model.Parameter{
		Name:        name,
		Value:       model.Str(value),
		Type:        model.ValTypeString,
		InputHint:   model.HintChoice,
		AllowedVals: allowed,
		Category:    CategoryBasic,
		Hint:        hint,
		Label:       label,
	}
}

// clock returns the runtime variable a start or stop type is measured on.
func clock(kind string) string {
	if strings.Contains(kind, "frame") {
		return "frameN"
	}
	return "t"
}

// Gate returns the native clause that gates per-frame code by the timing
// settings of desc, e.g. "if t >= 0.5 and t <= 1.5:". It returns false
// when neither a start nor a stop value is set.
func Gate(desc *model.Descriptor) (string, bool, error) {
	text := func(name string) (string, error) {
		p, ok := desc.Params[name]
		if !ok {
			return "", &model.UnresolvedParameterError{Component: desc.Name, Param: name}
		}
		return strings.TrimSpace(p.Text()), nil
	}
	startType, err := text(ParamStartType)
	if err != nil {
		return "", false, err
	}
	startVal, err := text(ParamStartVal)
	if err != nil {
		return "", false, err
	}
	stopType, err := text(ParamStopType)
	if err != nil {
		return "", false, err
	}
	stopVal, err := text(ParamStopVal)
	if err != nil {
		return "", false, err
	}

	if startVal == "" && stopVal == "" {
		return "", false, nil
	}

	var sb strings.Builder
	switch startType {
	case TimeSeconds:
		if startVal == "" {
			startVal = defaultTimeStart
		}
		fmt.Fprintf(&sb, "if t >= %s", startVal)
	case FrameN:
		if startVal == "" {
			startVal = defaultFrameN
		}
		fmt.Fprintf(&sb, "if frameN >= %s", startVal)
	case Condition:
		fmt.Fprintf(&sb, "if bool(%s)", startVal)
	default:
		return "", false, &model.ValidationError{Component: desc.Name, Param: ParamStartType, Reason: fmt.Sprintf("unknown start type %q", startType)}
	}

	switch {
	case stopVal == "":
	case stopType == DurationSeconds || stopType == DurationFrames:
		fmt.Fprintf(&sb, " and %s <= %s", clock(stopType), endTime(startType, startVal, stopType, stopVal))
	case stopType == TimeSeconds || stopType == FrameN:
		fmt.Fprintf(&sb, " and %s <= %s", clock(stopType), stopVal)
	case stopType == Condition:
		fmt.Fprintf(&sb, " and bool(%s)", stopVal)
	default:
		return "", false, &model.ValidationError{Component: desc.Name, Param: ParamStopType, Reason: fmt.Sprintf("unknown stop type %q", stopType)}
	}
	sb.WriteString(":")
	return sb.String(), true, nil
}

// endTime adds a duration to a start measured on the same clock. Mixed
// clocks and non-numeric values leave the duration as the bound.
func endTime(startType, startVal, stopType, stopVal string) string {
	sameClock := (startType == FrameN && stopType == DurationFrames) ||
		(startType == TimeSeconds && stopType == DurationSeconds)
	if !sameClock {
		return stopVal
	}
	start, err1 := strconv.ParseFloat(startVal, 64)
	stop, err2 := strconv.ParseFloat(stopVal, 64)
	if err1 != nil || err2 != nil {
		return stopVal
	}
	return formatFloat(start + stop)
}

// formatFloat always keeps a decimal point, e.g. 2.0.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
