// Package watchroots computes which directories have to be watched to observe
// changes to cached entities, and collapses them into a minimal set of roots.
//
// Everything in this package is a pure function of its inputs.
package watchroots

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/vfswatch/internal/core/domain"
)

// MustWatchPrefixes returns the string prefixes used to admit paths below the
// must-watch directories regardless of the watch filter. No separator is
// appended to the cleaned directory, so "/a/b" also admits "/a/bcxyz".
func MustWatchPrefixes(mustWatch []string) []string {
	prefixes := make([]string, 0, len(mustWatch))
	for _, dir := range mustWatch {
		prefixes = append(prefixes, filepath.Clean(dir))
	}
	slices.Sort(prefixes)
	return slices.Compact(prefixes)
}

// HasAnyPrefix reports whether path starts with one of prefixes. This is a plain
// string test: the prefix "/a/b" also matches "/a/bc".
func HasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// DirectoriesToWatch returns the directories whose coverage is required to notice
// any future change to entity. With recursive watch primitives the entity's own
// directory suffices; otherwise every directory in its subtree is needed too,
// because nested directories report nothing unless watched themselves.
//
// A directory is kept when eligible accepts it or it starts with one of prefixes.
func DirectoriesToWatch(entity *domain.CachedEntity, eligible domain.WatchFilter, prefixes []string, recursive bool) []string {
	admit := func(dir string) bool {
		return (eligible != nil && eligible(dir)) || HasAnyPrefix(dir, prefixes)
	}

	var dirs []string
	if own := entity.Dir(); admit(own) {
		dirs = append(dirs, own)
	}
	if !recursive {
		entity.WalkDirectories(func(dir string) bool {
			if dir != entity.Path && admit(dir) {
				dirs = append(dirs, dir)
			}
			return true
		})
	}

	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// ResolveRootsToWatch collapses dirs into the minimal set of roots covering all of
// them: every input has exactly one ancestor-or-self among the roots, and no root
// is an ancestor of another. The result is sorted.
func ResolveRootsToWatch(dirs []string) []string {
	candidates := make([]string, len(dirs))
	for i, dir := range dirs {
		candidates[i] = filepath.Clean(dir)
	}
	// Component-wise ordering puts every ancestor before its descendants.
	slices.SortFunc(candidates, comparePaths)

	roots := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if len(roots) > 0 && domain.IsAncestorOrSelf(roots[len(roots)-1], dir) {
			continue
		}
		roots = append(roots, dir)
	}

	slices.Sort(roots)
	return roots
}

// comparePaths orders paths by their components, so "/a/b" sorts before
// "/a/b/c", which in turn sorts before "/a/b-c".
func comparePaths(a, b string) int {
	return strings.Compare(sortKey(a), sortKey(b))
}

func sortKey(path string) string {
	// The separator is mapped below every other byte so that a parent's
	// descendants stay contiguous right after it.
	return strings.ReplaceAll(path, string(filepath.Separator), "\x00")
}

// Deduplicate cleans dirs and returns them sorted without duplicates. Unlike
// ResolveRootsToWatch it keeps nested directories.
func Deduplicate(dirs []string) []string {
	cleaned := make([]string, len(dirs))
	for i, dir := range dirs {
		cleaned[i] = filepath.Clean(dir)
	}
	slices.Sort(cleaned)
	return slices.Compact(cleaned)
}

// Covers reports whether some root is an ancestor-or-self of dir.
func Covers(roots []string, dir string) bool {
	for _, root := range roots {
		if domain.IsAncestorOrSelf(root, dir) {
			return true
		}
	}
	return false
}
