package fsadapter

import (
	"os"

	"github.com/pipeflow/pipeflow/internal/pathutil"
)

// LocalFS normalizes paths against the process's working directory,
// grounded on the teacher's util.CanonicalPath (util/file_test.go);
// symlinks are not resolved, an explicit scope cut (SPEC_FULL.md §4.8).
type LocalFS struct{}

// NewLocal constructs the local disk Filesystem backend.
func NewLocal() *LocalFS {
	return &LocalFS{}
}

func (l *LocalFS) Normalize(path string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return pathutil.CanonicalPath(path, wd)
}

func (l *LocalFS) SlashClean(path string) string {
	return pathutil.SlashClean(path)
}

func (l *LocalFS) AbsolutePath(dir string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return pathutil.CanonicalPath(dir, wd)
}
