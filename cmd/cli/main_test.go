package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/texgrid/modules/normalmap"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Registering the same compiled-in module twice panics inside app.NewApp().
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, nil, &normalmap.Module{}, &normalmap.Module{})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked", "The error message should indicate that a panic was recovered.")
	require.Contains(t, runErr.Error(), "node type already registered", "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	manifest := `
node_type "checker" {
  title = "Checker"
  property "cells" {
    type    = int
    default = 8
  }
  shader = "vec4 sample(vec2 uv) { return vec4(1.0); }"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "checker.hcl"), []byte(manifest), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-width", "64", "-height", "64", tempDir})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "ok    checker")
	require.Contains(t, out.String(), "ok    normal_map")
}

func TestRun_ManifestError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
node_type "broken" {
  title = "Broken"
  // Missing closing brace here
`
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "broken.hcl"), []byte(invalidHCL), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{tempDir})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load node types")
	require.Contains(t, out.String(), "broken.hcl", "diagnostics name the offending file")
}
