// Package image provides the image stimulus component: a picture, with an
// optional alpha mask, drawn by the runtime's image stimulus class.
package image

import (
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/modules/base"
)

// Type is the design type tag of the component.
const Type = "image"

// Parameters added on top of the shared visual set.
const (
	ParamImage         = "image"
	ParamMask          = "mask"
	ParamTexRes        = "texture resolution"
	ParamInterpolate   = "interpolate"
	ParamFlipVert      = "flipVert"
	ParamFlipHoriz     = "flipHoriz"
	defaultTexRes      = 128
	texResArg          = "texRes"
	placeholderTexture = "sin"
)

// TextureResolutions lists the accepted mask resolutions.
var TextureResolutions = []string{"32", "64", "128", "256", "512"}

// New builds the default image component called name.
func New(name string) (*model.Descriptor, error) {
	return model.NewBuilder(name, Type).
		Class("visual.ImageStim").
		Targets(model.TargetNative, model.TargetWeb).
		Libraries("visual").
		Add(base.Name(name), base.UnitsParam()).
		Add(texture(ParamImage, model.ValTypeFile, model.HintFile, base.CategoryBasic,
			"Image", "The image to be displayed - a filename, including path")).
		Add(texture(ParamMask, model.ValTypeString, model.HintSingle, base.CategoryTexture,
			"Mask", "An image to define the alpha mask through which the image is seen - gauss, circle, None or a filename (including path)")).
		Add(base.Appearance()...).
		Add(
			flip(ParamFlipHoriz, "Flip horizontally", "Should the image be flipped horizontally (left to right)?"),
			flip(ParamFlipVert, "Flip vertically", "Should the image be flipped vertically (top to bottom)?"),
			&model.Parameter{
				Name:            ParamTexRes,
				Arg:             texResArg,
				Value:           model.Num(defaultTexRes),
				Type:            model.ValTypeNumber,
				InputHint:       model.HintChoice,
				AllowedVals:     TextureResolutions,
				Placeholder:     model.Num(defaultTexRes),
				PlaceholderType: model.ValTypeCode,
				Category:        base.CategoryTexture,
				Hint:            "Resolution of the mask if one is used.",
				Label:           "Texture resolution",
			},
			&model.Parameter{
				Name:        ParamInterpolate,
				Value:       model.Str("linear"),
				Type:        model.ValTypeString,
				InputHint:   model.HintChoice,
				AllowedVals: []string{"linear", "nearest"},
				Category:    base.CategoryTexture,
				Hint:        "How should the image be interpolated if/when rescaled",
				Label:       "Interpolate",
			},
		).
		Without(base.FillAndBorder...).
		AddSettings(base.Timing("0.0", "1.0")...).
		Build()
}

func texture(name string, typ model.ValType, hint, category, label, help string) *model.Parameter {
	return &model.Parameter{
		Name:            name,
		Value:           model.Str("None"),
		Type:            typ,
		InputHint:       hint,
		AllowedUpdates:  base.AllUpdates,
		Placeholder:     model.Str(placeholderTexture),
		PlaceholderType: model.ValTypeString,
		Category:        category,
		Hint:            help,
		Label:           label,
	}
}

func flip(name, label, hint string) *model.Parameter {
	return &model.Parameter{
		Name:      name,
		Value:     model.Bool(false),
		Type:      model.ValTypeBool,
		InputHint: model.HintBool,
		Category:  base.CategoryLayout,
		Hint:      hint,
		Label:     label,
	}
}
