package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlashClean(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b", SlashClean("a//b/"))
	assert.Equal(t, "", SlashClean(""))
	assert.Equal(t, "", SlashClean("."))
}

func TestCanonicalPathResolvesRelative(t *testing.T) {
	t.Parallel()

	got, err := CanonicalPath("b", "/tmp/a")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a/b", got)
}

func TestSplitScheme(t *testing.T) {
	t.Parallel()

	bucket, key, ok := SplitScheme("s3://my-bucket/some/key.csv", "s3")
	require.True(t, ok)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "some/key.csv", key)

	_, _, ok = SplitScheme("/local/path", "s3")
	assert.False(t, ok)
}
