package model

import (
	"path/filepath"
	"sort"
	"strings"
)

// NormalizePath converts a filesystem path to the canonical asset path
// form: forward-slash separators, relative to the project root.
// Identity of assets is string equality on this normalized form, so both
// the inventory scanner and the reference scanner must go through here.
func NormalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// RelativePath returns the normalized path of target relative to root.
// If target cannot be expressed relative to root, the normalized target
// is returned as-is.
func RelativePath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return NormalizePath(target)
	}
	return NormalizePath(rel)
}

// PathSet is a set of normalized asset paths.
// Membership is what matters; insertion order is irrelevant.
type PathSet map[string]struct{}

// NewPathSet creates a PathSet from the given paths.
func NewPathSet(paths ...string) PathSet {
	s := make(PathSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts a path into the set.
func (s PathSet) Add(path string) {
	s[path] = struct{}{}
}

// Contains reports whether the set holds the given path.
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the set's members in lexicographic order.
// Reports sort before presenting so that output is reproducible across
// runs regardless of traversal order.
func (s PathSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// HasSuffixPath reports whether any member of the set ends with the given
// slash-separated suffix. This is used by the reference scanner to match
// bare file names found in source literals against inventory paths.
func (s PathSet) HasSuffixPath(suffix string) (string, bool) {
	for p := range s {
		if p == suffix || strings.HasSuffix(p, "/"+suffix) {
			return p, true
		}
	}
	return "", false
}

// UnusedAsset is an asset present on disk but referenced nowhere in the
// source tree. Size is resolved lazily, only for the unused subset, and
// is zero when the stat failed.
type UnusedAsset struct {
	// Path is the normalized path relative to the project root.
	Path string `json:"path"`

	// SizeBytes is the file size in bytes, or 0 if the stat failed.
	SizeBytes int64 `json:"size_bytes"`

	// SizeHuman is the human-readable rendering of SizeBytes.
	SizeHuman string `json:"size_human"`
}
