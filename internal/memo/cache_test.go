package memo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrComputeCachesSuccess(t *testing.T) {
	t.Parallel()

	c := New[int]()
	calls := 0

	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestCacheGetOrComputeDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c := New[int]()
	calls := 0

	_, err := c.GetOrCompute("k", func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	_, err = c.GetOrCompute("k", func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
