package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/experiment"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/internal/testutil"
	"github.com/specialistvlad/stimforge/modules/base"
)

func faceImage(t *testing.T) (*model.Descriptor, *experiment.Routine) {
	t.Helper()
	desc, err := New("image")
	require.NoError(t, err)
	desc.Params[ParamImage].Value = model.Str("face.jpg")
	return desc, &experiment.Routine{Name: "trial", Components: []*model.Descriptor{desc}}
}

func write(t *testing.T, desc *model.Descriptor, routine *experiment.Routine, phase emit.Phase, target model.Target) []string {
	t.Helper()
	r := registry.New(&Module{})
	c, ok := r.Lookup(Type)
	require.True(t, ok)

	e, err := emit.For(target)
	require.NoError(t, err)
	buf := emit.NewBuffer(e.IndentUnit())
	err = c.Writer.Write(testutil.Context(nil), &registry.Request{
		Phase: phase, Target: target, Descriptor: desc, Routine: routine,
	}, buf)
	require.NoError(t, err)
	return buf.Lines()
}

func TestNew_Defaults(t *testing.T) {
	desc, err := New("image")
	require.NoError(t, err)
	require.NoError(t, desc.Validate())

	want := []string{
		"name", "units", "image", "mask", "ori", "pos", "size", "color", "colorSpace",
		"opacity", "flipHoriz", "flipVert", "texture resolution", "interpolate",
	}
	assert.Equal(t, want, desc.Order)
	for _, name := range base.FillAndBorder {
		_, ok := desc.Params[name]
		assert.False(t, ok, "parameter %q should be filtered out", name)
	}
	_, ok := desc.Params[base.ParamStopVal]
	assert.True(t, ok, "timing settings are part of the component")
	assert.Equal(t, []string{"visual"}, desc.Libraries)
	assert.True(t, desc.Supports(model.TargetNative))
	assert.True(t, desc.Supports(model.TargetWeb))
}

func TestInit_Native(t *testing.T) {
	desc, routine := faceImage(t)
	want := []string{
		"image = visual.ImageStim(",
		"    win=win,",
		"    name='image',",
		"    image='face.jpg',",
		"    mask=None,",
		"    ori=0,",
		"    pos=(0, 0),",
		"    size=(0.5, 0.5),",
		"    color=[1,1,1],",
		"    colorSpace='rgb',",
		"    opacity=1,",
		"    flipHoriz=False,",
		"    flipVert=False,",
		"    texRes=128,",
		"    interpolate=True,",
		"    depth=-1.0)",
	}
	assert.Equal(t, want, write(t, desc, routine, emit.PhaseInit, model.TargetNative))
}

func TestInit_Web(t *testing.T) {
	desc, routine := faceImage(t)
	want := []string{
		"image = new visual.ImageStim({",
		"  win : psychoJS.window,",
		"  name : 'image',",
		"  image : 'face.jpg',",
		"  mask : undefined,",
		"  ori : 0,",
		"  pos : [0, 0],",
		"  size : [0.5, 0.5],",
		"  color : new util.Color([1,1,1]),",
		"  opacity : 1,",
		"  flipHoriz : false,",
		"  flipVert : false,",
		"  texRes : 128,",
		"  interpolate : true,",
		"  depth : -1.0",
		"});",
	}
	assert.Equal(t, want, write(t, desc, routine, emit.PhaseInit, model.TargetWeb))
}

func TestInit_NearestAndUnits(t *testing.T) {
	desc, routine := faceImage(t)
	desc.Params[ParamInterpolate].Value = model.Str("nearest")
	desc.Params[base.ParamUnits].Value = model.Str("pix")

	native := write(t, desc, routine, emit.PhaseInit, model.TargetNative)
	assert.Contains(t, native, "    interpolate=False,")
	assert.Contains(t, native, "    units='pix',")

	web := write(t, desc, routine, emit.PhaseInit, model.TargetWeb)
	assert.Contains(t, web, "  interpolate : false,")
	assert.Contains(t, web, "  units : 'pix',")
}

func TestInit_DepthFollowsPosition(t *testing.T) {
	first, err := New("fixation")
	require.NoError(t, err)
	desc, _ := faceImage(t)
	routine := &experiment.Routine{Name: "trial", Components: []*model.Descriptor{first, desc}}

	lines := write(t, desc, routine, emit.PhaseInit, model.TargetNative)
	assert.Equal(t, "    depth=-2.0)", lines[len(lines)-1])
}

func TestUpdatedImage(t *testing.T) {
	desc, routine := faceImage(t)
	desc.Params[ParamImage].Updates = model.UpdateEveryRepeat

	assert.Contains(t, write(t, desc, routine, emit.PhaseInit, model.TargetNative), "    image='sin',")
	assert.Contains(t, write(t, desc, routine, emit.PhaseInit, model.TargetWeb), "  image : undefined,")

	assert.Equal(t, []string{"image.setImage('face.jpg', log=False)"},
		write(t, desc, routine, emit.PhaseRoutineStart, model.TargetNative))
	assert.Equal(t, []string{"image.setImage('face.jpg');"},
		write(t, desc, routine, emit.PhaseRoutineStart, model.TargetWeb))
	assert.Empty(t, write(t, desc, routine, emit.PhaseFrame, model.TargetNative))
}

func TestRegister_Validates(t *testing.T) {
	r := registry.New(&Module{})
	require.NoError(t, r.ValidateRegistry(testutil.Context(nil)))
}

func TestNew_RejectsReservedNames(t *testing.T) {
	for _, name := range []string{"None", "class", "new", "sin"} {
		desc, err := New(name)
		require.NoError(t, err)
		assert.Error(t, desc.Validate(), name)
	}
}
