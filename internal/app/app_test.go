package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stimforge/internal/emit"
	"github.com/specialistvlad/stimforge/internal/model"
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/internal/testutil"
)

const demoDesign = `
experiment "demo" {
  routine "trial" {
    component "image" "face" {
      image = "face.jpg"
    }
    component "variable" "counter" {
      startExpValue = "0"
    }
  }
}
`

// setupApp creates an App with debug logging captured in a buffer.
func setupApp(t *testing.T, cfg Config, modules ...registry.Module) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("STIMFORGE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return NewApp(out, logs, config, modules...), out, logs
}

func writeDesign(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		err  string
	}{
		{"generate", Config{DesignPaths: []string{"a.hcl"}}, ""},
		{"describe without design", Config{Describe: "image"}, ""},
		{"init without design", Config{Init: "image"}, ""},
		{"no design", Config{}, "DesignPaths is a required"},
		{"both modes", Config{Describe: "all", Init: "image"}, "cannot be combined"},
		{"bad target", Config{DesignPaths: []string{"a.hcl"}, Target: "desktop"}, `unknown target "desktop"`},
		{"negative workers", Config{DesignPaths: []string{"a.hcl"}, Workers: -1}, "must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TargetAll, cfg.Target)
			assert.Equal(t, "en-US", cfg.Locale)
		})
	}
}

func TestConfig_Targets(t *testing.T) {
	all, err := (&Config{Target: TargetAll}).Targets()
	require.NoError(t, err)
	assert.Equal(t, model.AllTargets, all)

	web, err := (&Config{Target: "psychojs"}).Targets()
	require.NoError(t, err)
	assert.Equal(t, []model.Target{model.TargetWeb}, web)
}

type brokenWriter struct{}

func (brokenWriter) Required() []string { return []string{"missing"} }

func (brokenWriter) Write(context.Context, *registry.Request, emit.Sink) error { return nil }

type brokenModule struct{}

func (brokenModule) Register(r *registry.Registry) {
	r.Register(&registry.Component{
		Type: "broken",
		New: func(name string) (*model.Descriptor, error) {
			return model.NewBuilder(name, "broken").
				Targets(model.TargetNative).
				Add(&model.Parameter{Name: "name", Type: model.ValTypeString, Value: model.Str(name)}).
				Build()
		},
		Writer: brokenWriter{},
	})
}

func TestNewApp_PanicsOnInvalidRegistry(t *testing.T) {
	cfg := &Config{Describe: DescribeAll}
	require.PanicsWithError(t,
		"registry validation failed:\n- component 'broken': writer requires parameter 'missing' which the factory does not define",
		func() { NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, brokenModule{}) })
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	a, _, logs := setupApp(t, Config{Describe: DescribeAll})
	assert.Equal(t, []string{"image", "variable"}, a.Registry().Types())
	assert.Contains(t, logs.String(), "Registry validation passed.")
}

func TestRun_GenerateToWriter(t *testing.T) {
	path := writeDesign(t, demoDesign)
	a, out, logs := setupApp(t, Config{DesignPaths: []string{path}, Target: "native"})

	require.NoError(t, a.Run(context.Background()))

	testutil.AssertInOrder(t, out.String(),
		"# demo: generated for the native runtime",
		"from psychopy import visual",
		"face = visual.ImageStim(",
		"    image='face.jpg',",
		"    depth=-1.0)",
		"counter = 0",
	)
	assert.Contains(t, logs.String(), "destination=stdout")
}

func TestRun_GenerateToDirectory(t *testing.T) {
	path := writeDesign(t, demoDesign)
	outDir := filepath.Join(t.TempDir(), "out")
	a, out, _ := setupApp(t, Config{DesignPaths: []string{path}, OutPath: outDir, Workers: 2})

	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, out.String())

	py, err := os.ReadFile(filepath.Join(outDir, "demo.py"))
	require.NoError(t, err)
	assert.Contains(t, string(py), "counter = 0")

	js, err := os.ReadFile(filepath.Join(outDir, "demo.js"))
	require.NoError(t, err)
	assert.Contains(t, string(js), "face = new visual.ImageStim({")
	assert.Contains(t, string(js), "// component 'counter' (variable) in routine 'trial' is not available for the web runtime")
}

func TestRun_GenerateLoadError(t *testing.T) {
	path := writeDesign(t, `experiment "demo" { routine "trial" {`)
	a, out, _ := setupApp(t, Config{DesignPaths: []string{path}})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load design")
	assert.Empty(t, out.String())
}

func TestRun_GenerateInvalidDesign(t *testing.T) {
	path := writeDesign(t, `
routine "trial" {
  component "image" "face" {
    interpolate = "cubic"
  }
}
`)
	a, out, _ := setupApp(t, Config{DesignPaths: []string{path}, Target: "web"})

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate web code")
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, out.String())
}

func TestRun_Describe(t *testing.T) {
	a, out, _ := setupApp(t, Config{Describe: "image", Locale: "de-AT"})

	require.NoError(t, a.Run(context.Background()))

	testutil.AssertInOrder(t, out.String(),
		"Komponententyp image: Bild: Bilder darstellen (bmp, jpg, tif...)",
		"Ziele: {native, web}",
		"Parameter", "Typ", "Standard", "Aktualisierung",
		"Name",
		"Bild",
		"Maske",
	)
}

func TestRun_DescribeAll(t *testing.T) {
	a, out, _ := setupApp(t, Config{Describe: DescribeAll})

	require.NoError(t, a.Run(context.Background()))

	testutil.AssertInOrder(t, out.String(),
		"Component type image: Image: present images (bmp, jpg, tif...)",
		"Targets: {native, web}",
		"Texture resolution",
		"Component type variable: Variable: create a new variable",
		"Targets: {native}",
		"Save exp end value",
	)
}

func TestRun_DescribeUnknownType(t *testing.T) {
	a, _, _ := setupApp(t, Config{Describe: "movie"})

	err := a.Run(context.Background())
	require.EqualError(t, err, "unknown component type 'movie', available: image, variable")
}

func TestRun_InitToWriter(t *testing.T) {
	a, out, _ := setupApp(t, Config{Init: "image, image,variable"})

	require.NoError(t, a.Run(context.Background()))

	testutil.AssertInOrder(t, out.String(),
		`experiment "untitled" {`,
		`routine "trial" {`,
		`component "image" "image1" {`,
		`component "image" "image2" {`,
		`component "variable" "variable1" {`,
	)
}

func TestRun_InitUnknownType(t *testing.T) {
	a, _, _ := setupApp(t, Config{Init: "movie"})

	err := a.Run(context.Background())
	require.EqualError(t, err, "unknown component type 'movie'")
}

func TestRun_InitThenGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.hcl")
	a, _, _ := setupApp(t, Config{Init: "image,variable", OutPath: path})
	require.NoError(t, a.Run(context.Background()))

	g, out, _ := setupApp(t, Config{DesignPaths: []string{path}, Target: "native"})
	require.NoError(t, g.Run(context.Background()))

	testutil.AssertInOrder(t, out.String(),
		"# starter: generated for the native runtime",
		"image1 = visual.ImageStim(",
		"variable1 = ''",
	)
}
