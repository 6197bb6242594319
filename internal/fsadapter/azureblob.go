package fsadapter

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/pipeflow/pipeflow/internal/pathutil"
)

const azureBlobScheme = "azblob"

// AzureBlobFS normalizes "azblob://container/blob" paths. Grounded on
// azurehelper/azure_blob.go's BlobServiceClient wrapper, substituted
// for the HDFS adapter spec.md names, since no HDFS client exists in
// the example corpus (SPEC_FULL.md §4.8).
type AzureBlobFS struct {
	client *azblob.Client
}

// NewAzureBlob authenticates with the default Azure credential chain,
// constructs a blob client against storageAccount, and validates that
// container exists with a single GetProperties call, grounded on
// azurehelper/azure_blob.go's ContainerExists.
func NewAzureBlob(ctx context.Context, storageAccount, container string) (*AzureBlobFS, error) {
	if storageAccount == "" {
		return nil, errors.New("azureblob backend requires a storage account")
	}

	if container == "" {
		return nil, errors.New("azureblob backend requires a container")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", storageAccount)

	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob client: %w", err)
	}

	containerClient := client.ServiceClient().NewContainerClient(container)
	if _, err := containerClient.GetProperties(ctx, nil); err != nil {
		return nil, fmt.Errorf("azure container %q is not reachable: %w", container, err)
	}

	return &AzureBlobFS{client: client}, nil
}

func (a *AzureBlobFS) Normalize(p string) (string, error) {
	container, blob, ok := pathutil.SplitScheme(p, azureBlobScheme)
	if !ok {
		return pathutil.SlashClean(p), nil
	}

	cleanBlob := strings.TrimPrefix(path.Clean("/"+blob), "/")
	return fmt.Sprintf("%s://%s/%s", azureBlobScheme, container, cleanBlob), nil
}

func (a *AzureBlobFS) SlashClean(p string) string {
	container, blob, ok := pathutil.SplitScheme(p, azureBlobScheme)
	if !ok {
		return pathutil.SlashClean(p)
	}

	return fmt.Sprintf("%s://%s/%s", azureBlobScheme, container, strings.TrimPrefix(pathutil.SlashClean(blob), "/"))
}

func (a *AzureBlobFS) AbsolutePath(dir string) (string, error) {
	return a.Normalize(dir)
}
