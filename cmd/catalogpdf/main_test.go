package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/catalogpdf/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCommand()
	cmd.SetArgs(append(args, "--no-color"))
	return cmd.Execute()
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(exampleCSV), 0o644))
	out := filepath.Join(dir, "out.pdf")

	require.NoError(t, run(t, "generate", csvPath, "-o", out, "--bleed-mode", "guide"))

	info, err := render.Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)
	assert.InDelta(t, 612, info.Sizes[0].Width, 0.01)
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, run(t, "generate"))
	assert.Error(t, run(t, "generate", filepath.Join(dir, "missing.csv"), "-o", filepath.Join(dir, "out.pdf")))
	assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
	assert.Error(t, run(t, "generate", "x.csv", "--bleed-mode", "crop"))
}

func TestPreviewCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.svg")
	require.NoError(t, run(t, "preview", "--count", "4", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="cell-3"`)
	assert.NotContains(t, string(data), `id="cell-4"`)

	assert.Error(t, run(t, "preview"), "needs a CSV or --count")
}

func TestInspectCommand(t *testing.T) {
	assert.Error(t, run(t, "inspect", filepath.Join(t.TempDir(), "missing.pdf")))
}

func TestGenerateExampleCatalog(t *testing.T) {
	out := filepath.Join(t.TempDir(), "catalog.pdf")
	require.NoError(t, run(t, "generate", filepath.Join("..", "..", "example", "products.csv"), "-o", out, "--title", "Example"))

	info, err := render.Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Pages)
	assert.InDelta(t, 629, info.Sizes[0].Width, 0.01)
	assert.InDelta(t, 809, info.Sizes[0].Height, 0.01)
}
