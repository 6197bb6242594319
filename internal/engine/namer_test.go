package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeflow/pipeflow/internal/fsadapter"
)

type stubFS struct {
	abs string
}

func (s stubFS) Normalize(p string) (string, error) { return p, nil }
func (s stubFS) SlashClean(p string) string         { return p }
func (s stubFS) AbsolutePath(string) (string, error) {
	return s.abs, nil
}

func TestAssignDirsDisambiguatesCollisions(t *testing.T) {
	t.Parallel()

	steps := []Step{
		{RawStep: RawStep{RawOutputs: []string{"out/x"}}},
		{RawStep: RawStep{RawOutputs: []string{"out/x"}}},
		{RawStep: RawStep{RawOutputs: []string{"out/x"}}},
	}

	fs := stubFS{abs: "/tmp/pipeflow"}

	require.NoError(t, AssignDirs(steps, "/tmp/pipeflow", fs))

	dirs := map[string]bool{}
	for _, s := range steps {
		assert.False(t, dirs[s.Dir], "duplicate dir %s", s.Dir)
		dirs[s.Dir] = true
	}

	assert.Equal(t, "/tmp/pipeflow/out_x.0", steps[0].Dir)
	assert.Equal(t, "/tmp/pipeflow/out_x.1", steps[1].Dir)
	assert.Equal(t, "/tmp/pipeflow/out_x.2", steps[2].Dir)
}

func TestAssignDirsRejectsOverlongRoot(t *testing.T) {
	t.Parallel()

	longRoot := "/" + strings.Repeat("a", MaxPathLength)
	fs := stubFS{abs: longRoot}

	steps := []Step{{RawStep: RawStep{RawOutputs: []string{"a"}}}}

	err := AssignDirs(steps, longRoot, fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is too long.")
}

func TestAssignDirsUsesMethodWhenNoOutputs(t *testing.T) {
	t.Parallel()

	steps := []Step{{RawStep: RawStep{Method: "transform"}}}
	fs := stubFS{abs: "/tmp/pipeflow"}

	require.NoError(t, AssignDirs(steps, "/tmp/pipeflow", fs))
	assert.Equal(t, "/tmp/pipeflow/transform", steps[0].Dir)
}

var _ fsadapter.Filesystem = stubFS{}
