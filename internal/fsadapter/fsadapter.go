// Package fsadapter implements the Filesystem Collaborator interface
// the engine's normalize/slash-clean/absolute-path calls delegate to
// (spec §6), with local, S3, and Azure Blob backends.
package fsadapter

import "context"

// Filesystem is the interface the engine's Index Builder (C1) and Step
// Directory Namer (C2) consume. Every call is treated as pure from the
// engine's perspective (spec §5) — backends that touch the network do
// so only at construction time, never per call.
type Filesystem interface {
	// Normalize returns the canonical absolute form of path. Idempotent.
	Normalize(path string) (string, error)

	// SlashClean collapses "//+" runs and strips a trailing "/".
	SlashClean(path string) string

	// AbsolutePath resolves dir to an absolute form, for C2's tmpdir
	// resolution.
	AbsolutePath(dir string) (string, error)
}

// BackendKind selects a Filesystem implementation.
type BackendKind string

const (
	Local     BackendKind = "local"
	S3        BackendKind = "s3"
	AzureBlob BackendKind = "azureblob"
)

// RemoteOptions carries the bucket/container identifiers the remote
// backends need to perform their one-time construction-time reachability
// check (S3's HeadBucket, Azure Blob's container GetProperties). Local
// ignores it entirely.
type RemoteOptions struct {
	S3Bucket            string
	AzureStorageAccount string
	AzureContainer      string
}

// New constructs the Filesystem for kind. ctx is used only for the
// one-time reachability check remote backends perform at construction.
func New(ctx context.Context, kind BackendKind, remote RemoteOptions) (Filesystem, error) {
	switch kind {
	case "", Local:
		return NewLocal(), nil
	case S3:
		return NewS3(ctx, remote.S3Bucket)
	case AzureBlob:
		return NewAzureBlob(ctx, remote.AzureStorageAccount, remote.AzureContainer)
	default:
		return nil, &UnknownBackendError{Kind: kind}
	}
}

// UnknownBackendError reports an unrecognized BackendKind.
type UnknownBackendError struct {
	Kind BackendKind
}

func (e *UnknownBackendError) Error() string {
	return "unknown filesystem backend: " + string(e.Kind)
}
