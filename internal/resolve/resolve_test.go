package resolve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/stimforge/internal/literal"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allUpdates = []model.UpdatePolicy{model.UpdateConstant, model.UpdateEveryRepeat, model.UpdateEveryFrame}

func testDescriptor(t *testing.T) *model.Descriptor {
	t.Helper()
	d, err := model.NewBuilder("stim", "image").
		Targets(model.TargetNative, model.TargetWeb).
		Add(
			&model.Parameter{Name: "name", Type: model.ValTypeString, Value: model.Str("stim")},
			&model.Parameter{Name: "image", Type: model.ValTypeFile, Value: model.Str("face.jpg"),
				AllowedUpdates: allUpdates, Placeholder: model.Str("sin"), PlaceholderType: model.ValTypeString},
			&model.Parameter{Name: "mask", Type: model.ValTypeString, Value: model.Str("None")},
			&model.Parameter{Name: "ori", Type: model.ValTypeNumber, Value: model.Num(0),
				AllowedUpdates: allUpdates, Placeholder: model.Str("1.0"), PlaceholderType: model.ValTypeCode},
			&model.Parameter{Name: "texture resolution", Arg: "texRes", Type: model.ValTypeNumber, Value: model.Str("128")},
			&model.Parameter{Name: "colorSpace", Type: model.ValTypeString, Value: model.Str("rgb"),
				Targets: model.NewTargetSet(model.TargetNative), AllowedUpdates: allUpdates},
		).
		Build()
	require.NoError(t, err)
	return d
}

func TestResolve_Order(t *testing.T) {
	d := testDescriptor(t)

	res, err := Resolve(d, model.TargetNative, "name")
	require.NoError(t, err)

	var names []string
	for _, f := range res.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, d.Order, names)
	assert.Equal(t, model.TargetNative, res.Target)

	f, ok := res.Lookup("texture resolution")
	require.True(t, ok)
	assert.Equal(t, "texRes", f.Arg)
	assert.Equal(t, "128", f.Literal.Text)

	f, ok = res.Lookup("mask")
	require.True(t, ok)
	assert.Equal(t, literal.Literal{Text: "None", Type: model.ValTypeCode}, f.Literal)
}

func TestResolve_WebCoercion(t *testing.T) {
	res, err := Resolve(testDescriptor(t), model.TargetWeb)
	require.NoError(t, err)

	f, ok := res.Lookup("mask")
	require.True(t, ok)
	assert.Equal(t, "undefined", f.Literal.Text)
	assert.Equal(t, model.ValTypeCode, f.Literal.Type)

	f, ok = res.Lookup("image")
	require.True(t, ok)
	assert.Equal(t, "'face.jpg'", f.Literal.Text)
}

func TestResolve_Idempotent(t *testing.T) {
	d := testDescriptor(t)
	for _, target := range model.AllTargets {
		first, err := Resolve(d, target, "name")
		require.NoError(t, err)
		second, err := Resolve(d, target, "name")
		require.NoError(t, err)

		if diff := cmp.Diff(first, second, cmp.AllowUnexported(Resolved{})); diff != "" {
			t.Errorf("resolve is not idempotent for %s (-first +second):\n%s", target, diff)
		}
	}
}

func TestResolve_PlaceholdersForUpdatedParameters(t *testing.T) {
	d := testDescriptor(t)
	d.Params["image"].Updates = model.UpdateEveryRepeat
	d.Params["ori"].Updates = model.UpdateEveryFrame

	native, err := Resolve(d, model.TargetNative)
	require.NoError(t, err)
	image, _ := native.Lookup("image")
	assert.Equal(t, "'sin'", image.Literal.Text)
	ori, _ := native.Lookup("ori")
	assert.Equal(t, "1.0", ori.Literal.Text)

	web, err := Resolve(d, model.TargetWeb)
	require.NoError(t, err)
	image, _ = web.Lookup("image")
	assert.Equal(t, "undefined", image.Literal.Text)

	// The descriptor itself is untouched.
	assert.Equal(t, "face.jpg", d.Params["image"].Text())
}

func TestResolve_MissingRequired(t *testing.T) {
	d := testDescriptor(t)
	d.Remove("name")

	_, err := Resolve(d, model.TargetNative, "name")
	var unresolved *model.UnresolvedParameterError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "stim", unresolved.Component)
	assert.Equal(t, "name", unresolved.Param)
}

func TestResolve_DanglingOrder(t *testing.T) {
	d := testDescriptor(t)
	delete(d.Params, "mask")

	_, err := Resolve(d, model.TargetWeb)
	var unresolved *model.UnresolvedParameterError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "mask", unresolved.Param)
}

func TestResolve_UnsupportedTypeNamesParameter(t *testing.T) {
	d := testDescriptor(t)
	d.Params["mask"].Type = model.ValTypeInvalid

	_, err := Resolve(d, model.TargetNative)
	var unsupported *model.UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "mask", unsupported.Param)
	assert.Contains(t, err.Error(), "component 'stim'")
}

func TestResolveUpdates(t *testing.T) {
	d := testDescriptor(t)
	d.Params["image"].Updates = model.UpdateEveryRepeat
	d.Params["ori"].Updates = model.UpdateEveryFrame
	d.Params["ori"].Value = model.Str("$t * 10")
	d.Params["colorSpace"].Updates = model.UpdateEveryFrame

	repeat, err := ResolveUpdates(d, model.TargetNative, model.UpdateEveryRepeat)
	require.NoError(t, err)
	require.Equal(t, 1, repeat.Len())
	assert.Equal(t, "'face.jpg'", repeat.Fields[0].Literal.Text)

	frame, err := ResolveUpdates(d, model.TargetNative, model.UpdateEveryFrame)
	require.NoError(t, err)
	require.Equal(t, 2, frame.Len())
	assert.Equal(t, "t * 10", frame.Fields[0].Literal.Text)
	assert.Equal(t, "colorSpace", frame.Fields[1].Name)

	webFrame, err := ResolveUpdates(d, model.TargetWeb, model.UpdateEveryFrame)
	require.NoError(t, err)
	require.Equal(t, 1, webFrame.Len(), "native-only parameters are skipped for web")

	constant, err := ResolveUpdates(d, model.TargetNative, model.UpdateConstant)
	require.NoError(t, err)
	assert.Zero(t, constant.Len())
}
