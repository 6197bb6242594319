package fsadapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3FSNormalizeCleansKeyOnly(t *testing.T) {
	t.Parallel()

	fs := &S3FS{}

	norm, err := fs.Normalize("s3://bucket//a//b/")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/a/b", norm)

	assert.Equal(t, "s3://bucket/a/b", fs.SlashClean("s3://bucket//a//b/"))
}

func TestS3FSNormalizeFallsBackForNonS3Paths(t *testing.T) {
	t.Parallel()

	fs := &S3FS{}

	norm, err := fs.Normalize("local/path//x")
	require.NoError(t, err)
	assert.Equal(t, "local/path/x", norm)
}

func TestAzureBlobFSNormalizeCleansBlobOnly(t *testing.T) {
	t.Parallel()

	fs := &AzureBlobFS{}

	norm, err := fs.Normalize("azblob://container//a//b/")
	require.NoError(t, err)
	assert.Equal(t, "azblob://container/a/b", norm)
}

func TestNewS3RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := NewS3(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNewAzureBlobRequiresStorageAccountAndContainer(t *testing.T) {
	t.Parallel()

	_, err := NewAzureBlob(context.Background(), "", "mycontainer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage account")

	_, err = NewAzureBlob(context.Background(), "myaccount", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container")
}
