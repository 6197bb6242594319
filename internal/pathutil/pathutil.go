// Package pathutil provides the path-string math behind the engine's
// Filesystem Collaborator, grounded on the teacher's util.CanonicalPath
// naming and semantics (util/file_test.go), reimplemented here since no
// util implementation source was available to copy.
package pathutil

import (
	"path"
	"path/filepath"
	"strings"
)

// SlashClean collapses runs of "/" and strips a trailing slash (spec
// §4.1's slash-cleaned(raw-outputs)). It is built on path.Clean, so it
// also resolves "." and ".." elements, and a path that cleans to "."
// becomes the empty string.
func SlashClean(p string) string {
	if p == "" {
		return p
	}

	cleaned := path.Clean(filepath.ToSlash(p))
	if cleaned == "." {
		return ""
	}

	return cleaned
}

// CanonicalPath resolves path relative to basePath into an absolute,
// cleaned form, without resolving symlinks. It is the "normalize"
// primitive for the local filesystem backend.
func CanonicalPath(p, basePath string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(basePath, p)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Clean(abs)), nil
}

// HasScheme reports whether p is schemeURI-shaped, e.g. "s3://" or
// "azblob://", used by the remote backends to recognize their own
// paths before delegating string math to SlashClean.
func HasScheme(p, scheme string) bool {
	return strings.HasPrefix(p, scheme+"://")
}

// SplitScheme splits "scheme://bucket/key" into ("bucket", "key").
func SplitScheme(p, scheme string) (bucket, key string, ok bool) {
	if !HasScheme(p, scheme) {
		return "", "", false
	}

	rest := strings.TrimPrefix(p, scheme+"://")
	parts := strings.SplitN(rest, "/", 2)
	bucket = parts[0]

	if len(parts) == 2 {
		key = parts[1]
	}

	return bucket, key, true
}
