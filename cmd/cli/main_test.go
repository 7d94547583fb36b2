package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_GeneratesDesign(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	design := `
experiment "demo" {
  routine "trial" {
    component "image" "face" {
      image = "face.jpg"
    }
  }
}
`
	filePath := filepath.Join(t.TempDir(), "demo.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(design), 0o600), "failed to set up test file")
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, logs, []string{"-target", "web", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "face = new visual.ImageStim({")
	require.Contains(t, logs.String(), "Code written.")
}

func TestRun_InvalidDesign(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Missing closing brace.
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`routine "trial" {`), 0o600))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load design")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
