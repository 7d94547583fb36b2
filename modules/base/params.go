// Package base holds what every visual stimulus component shares: the
// common parameters, the timing settings and the phase writer of a
// constructed stimulus.
package base

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/stimforge/internal/model"
)

// Parameter categories shown by editors.
const (
	CategoryBasic      = "Basic"
	CategoryLayout     = "Layout"
	CategoryAppearance = "Appearance"
	CategoryTexture    = "Texture"
	CategoryData       = "Data"
)

// Names of the shared visual parameters.
const (
	ParamName             = "name"
	ParamUnits            = "units"
	ParamColor            = "color"
	ParamColorSpace       = "colorSpace"
	ParamFillColor        = "fillColor"
	ParamFillColorSpace   = "fillColorSpace"
	ParamBorderColor      = "borderColor"
	ParamBorderColorSpace = "borderColorSpace"
	ParamPos              = "pos"
	ParamSize             = "size"
	ParamOri              = "ori"
	ParamOpacity          = "opacity"
)

// AllUpdates is the update choice offered by parameters that may change
// while the program runs.
var AllUpdates = []model.UpdatePolicy{model.UpdateConstant, model.UpdateEveryRepeat, model.UpdateEveryFrame}

// Units lists the accepted spatial units.
var Units = []string{"from exp settings", "deg", "cm", "pix", "norm", "height", "degFlatPos", "degFlat"}

// ColorSpaces lists the accepted color spaces.
var ColorSpaces = []string{"rgb", "dkl", "lms", "hsv"}

// Name returns the component name parameter.
func Name(name string) *model.Parameter {
	return &model.Parameter{
		Name:      ParamName,
		Value:     model.Str(name),
		Type:      model.ValTypeString,
		InputHint: model.HintSingle,
		Category:  CategoryBasic,
		Hint:      "Name of this component (alphanumeric or _, no spaces)",
		Label:     "Name",
	}
}

// UnitsParam returns the spatial units parameter.
func UnitsParam() *model.Parameter {
	return &model.Parameter{
		Name:        ParamUnits,
		Value:       model.Str(Units[0]),
		Type:        model.ValTypeString,
		InputHint:   model.HintChoice,
		AllowedVals: Units,
		Category:    CategoryLayout,
		Hint:        "Units of dimensions for this stimulus",
		Label:       "Spatial units",
	}
}

// Appearance returns the layout and color parameters in render order:
// ori, pos, size, color, colorSpace, opacity, then the fill and border
// colors that not every stimulus has.
func Appearance() []*model.Parameter {
	return []*model.Parameter{
		updatable(ParamOri, model.ValTypeNumber, model.Num(0), CategoryLayout,
			"Orientation", "Orientation of this stimulus (in deg)").
			withPlaceholder(model.Num(0), model.ValTypeCode),
		updatable(ParamPos, model.ValTypeCode, model.Pair(0, 0), CategoryLayout,
			"Position [x,y]", "Position of this stimulus (e.g. [1,2] )").
			withPlaceholder(model.Pair(0, 0), model.ValTypeCode),
		updatable(ParamSize, model.ValTypeCode, model.Pair(0.5, 0.5), CategoryLayout,
			"Size [w,h]", "Size of this stimulus (either a single value or x,y pair, e.g. 2.5, [1,2] ").
			withPlaceholder(model.Str("1.0"), model.ValTypeCode),
		color(ParamColor, "Foreground color", "Foreground color of this stimulus"),
		colorSpace(ParamColorSpace, "Color space"),
		updatable(ParamOpacity, model.ValTypeNumber, model.Num(1), CategoryAppearance,
			"Opacity", "Opacity of the stimulus (1=opaque, 0=fully transparent, 0.5=translucent)").
			withPlaceholder(model.Num(1), model.ValTypeCode),
		color(ParamFillColor, "Fill color", "Fill color of this stimulus"),
		colorSpace(ParamFillColorSpace, "Fill color space"),
		color(ParamBorderColor, "Border color", "Color of this stimulus' outline"),
		colorSpace(ParamBorderColorSpace, "Border color space"),
	}
}

// param is a Parameter under construction.
type param struct{ *model.Parameter }

func updatable(name string, typ model.ValType, value cty.Value, category, label, hint string) param {
	return param{&model.Parameter{
		Name:           name,
		Value:          value,
		Type:           typ,
		InputHint:      model.HintSingle,
		AllowedUpdates: AllUpdates,
		Category:       category,
		Hint:           hint,
		Label:          label,
	}}
}

func (p param) withPlaceholder(v cty.Value, typ model.ValType) *model.Parameter {
	p.Placeholder = v
	p.PlaceholderType = typ
	return p.Parameter
}

func color(name, label, hint string) *model.Parameter {
	p := updatable(name, model.ValTypeString, model.Str("$[1,1,1]"), CategoryAppearance, label, hint)
	p.InputHint = model.HintColor
	return p.withPlaceholder(model.Str("white"), model.ValTypeString)
}

// FillAndBorder lists the parameters of stimuli that draw a shape.
var FillAndBorder = []string{ParamFillColor, ParamFillColorSpace, ParamBorderColor, ParamBorderColorSpace}

// colorSpace parameters exist only in the native runtime; the browser
// runtime carries the space inside its color objects.
func colorSpace(name, label string) *model.Parameter {
	return &model.Parameter{
		Name:        name,
		Value:       model.Str(ColorSpaces[0]),
		Type:        model.ValTypeString,
		InputHint:   model.HintChoice,
		AllowedVals: ColorSpaces,
		Targets:     model.NewTargetSet(model.TargetNative),
		Category:    CategoryAppearance,
		Hint:        "In what format (color space) have you specified the colors?",
		Label:       label,
	}
}
