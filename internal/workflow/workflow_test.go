package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWorkflow = `
step "a" {
  inputs  = []
  outputs = ["a.csv"]
}

step "b" {
  inputs      = ["a.csv"]
  outputs     = ["b.csv"]
  output_tags = ["final"]

  options {
    method = "transform"
  }
}
`

func TestLoadFileDecodesStepBlocks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkflow), 0o644))

	steps, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, []string{"a.csv"}, steps[0].RawOutputs)
	assert.Empty(t, steps[0].RawInputs)

	assert.Equal(t, []string{"a.csv"}, steps[1].RawInputs)
	assert.Equal(t, []string{"b.csv"}, steps[1].RawOutputs)
	assert.Equal(t, []string{"final"}, steps[1].OutputTags)
	assert.Equal(t, "transform", steps[1].Method)
}

func TestLoadFileDefaultsOutputsToLabel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
step "build/report.csv" {
  inputs     = ["data/clean.csv"]
  input_tags = ["%clean"]

  options {
    method = "render"
  }
}
`), 0o644))

	steps, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	assert.Equal(t, []string{"build/report.csv"}, steps[0].RawOutputs)
	assert.Equal(t, []string{"data/clean.csv"}, steps[0].RawInputs)
	assert.Equal(t, []string{"%clean"}, steps[0].InputTags)
	assert.Equal(t, "render", steps[0].Method)
}

func TestLoadDirOrdersFilesLexically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
step "second" {
  inputs  = []
  outputs = ["second.out"]
}
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
step "first" {
  inputs  = []
  outputs = ["first.out"]
}
`), 0o644))

	steps, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, []string{"first.out"}, steps[0].RawOutputs)
	assert.Equal(t, []string{"second.out"}, steps[1].RawOutputs)
}

func TestLoadFileRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`step "broken" {`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflow file error:")
}
