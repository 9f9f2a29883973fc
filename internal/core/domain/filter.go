package domain

import (
	"path/filepath"
	"strings"
)

// WatchFilter decides whether a path is eligible to be watched at all.
type WatchFilter func(path string) bool

// NewWatchFilter returns a filter accepting paths at or below one of roots whose
// path segments below that root match none of the ignore globs.
func NewWatchFilter(roots []string, ignores []string) WatchFilter {
	cleaned := make([]string, len(roots))
	for i, root := range roots {
		cleaned[i] = filepath.Clean(root)
	}
	return func(path string) bool {
		path = filepath.Clean(path)
		for _, root := range cleaned {
			if !IsAncestorOrSelf(root, path) {
				continue
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return false
			}
			return !hasIgnoredSegment(rel, ignores)
		}
		return false
	}
}

func hasIgnoredSegment(rel string, ignores []string) bool {
	if rel == "." {
		return false
	}
	for _, segment := range strings.Split(rel, string(filepath.Separator)) {
		if IsIgnoredName(segment, ignores) {
			return true
		}
	}
	return false
}

// IsIgnoredName reports whether a single file name matches one of the ignore globs.
// Malformed globs never match.
func IsIgnoredName(name string, ignores []string) bool {
	for _, pattern := range ignores {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}
