package integrationtests

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/stimforge/internal/app"
	"github.com/specialistvlad/stimforge/internal/registry"
	"github.com/specialistvlad/stimforge/internal/testutil"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	Dir       string
}

// RunIntegrationTest writes files below a temporary directory and runs the
// app on it. Without design paths in cfg the whole directory is the design.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, modules...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller
// provided context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	// 1. Write all HCL files to a temporary directory.
	tmpDir := t.TempDir()
	designDir := filepath.Join(tmpDir, "design")
	require.NoError(t, os.MkdirAll(designDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(designDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Configure the app.
	if len(cfg.DesignPaths) == 0 && cfg.Describe == "" && cfg.Init == "" {
		cfg.DesignPaths = []string{designDir}
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logBuffer := &testutil.SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, logBuffer, appConfig, modules...)
	}()

	result := &HarnessResult{Dir: tmpDir}
	if panicErr != nil {
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
	} else {
		result.App = testApp
		result.Err = testApp.Run(ctx)
	}
	result.Output = out.String()
	result.LogOutput = logBuffer.String()

	if os.Getenv("STIMFORGE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
