package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeflow/pipeflow/internal/fsadapter"
)

func TestDAGAncestorsAndDescendants(t *testing.T) {
	t.Parallel()

	raw := []RawStep{
		{RawOutputs: []string{"a"}},
		{RawInputs: []string{"a"}, RawOutputs: []string{"b"}},
		{RawInputs: []string{"b"}, RawOutputs: []string{"c"}},
	}

	tree, err := BuildIndex(raw, fsadapter.NewLocal())
	require.NoError(t, err)

	d, err := tree.dagOf()
	require.NoError(t, err)

	ancestors, err := d.Ancestors(2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, ancestors)

	descendants, err := d.Descendants(0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, descendants)
}

func TestCycleDetectedFromGraphSharesChainRendering(t *testing.T) {
	t.Parallel()

	raw := []RawStep{
		{RawOutputs: []string{"a"}},
		{RawOutputs: []string{"b"}},
	}

	tree, err := BuildIndex(raw, fsadapter.NewLocal())
	require.NoError(t, err)

	tree.Steps[0].Children = []int{1}
	tree.Steps[1].Children = []int{0}

	_, err = tree.dagOf()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle dependency detected:")
}
