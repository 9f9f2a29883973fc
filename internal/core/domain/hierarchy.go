package domain

import (
	"maps"
	"path/filepath"
	"slices"
)

// NodeDiffListener observes the entities a hierarchy update removes and adds.
type NodeDiffListener interface {
	NodeRemoved(entity *CachedEntity)
	NodeAdded(entity *CachedEntity)
}

// Hierarchy is an immutable mapping from paths to cached entities.
// Every operation returns a new version and leaves the receiver untouched, so a
// *Hierarchy can be shared freely between goroutines.
type Hierarchy struct {
	entries map[string]*CachedEntity
}

// EmptyHierarchy returns a hierarchy without entries.
func EmptyHierarchy() *Hierarchy {
	return &Hierarchy{entries: map[string]*CachedEntity{}}
}

// Len returns the number of top-level entries.
func (h *Hierarchy) Len() int {
	return len(h.entries)
}

// Entities returns the top-level entries sorted by path.
func (h *Hierarchy) Entities() []*CachedEntity {
	paths := slices.Sorted(maps.Keys(h.entries))
	entities := make([]*CachedEntity, len(paths))
	for i, path := range paths {
		entities[i] = h.entries[path]
	}
	return entities
}

// Get returns the entity stored for path, looking inside directory snapshots
// that contain it.
func (h *Hierarchy) Get(path string) (*CachedEntity, bool) {
	path = filepath.Clean(path)
	if entity, ok := h.entries[path]; ok {
		return entity, true
	}
	for candidate := parentOf(path); candidate != ""; candidate = parentOf(candidate) {
		if entity, ok := h.entries[candidate]; ok {
			return entity.Find(path)
		}
	}
	return nil, false
}

// Store returns a new hierarchy holding entity. Entries at or below the entity's
// path are replaced, and entries containing it are dropped since their view of
// the subtree is superseded.
func (h *Hierarchy) Store(entity *CachedEntity, diff NodeDiffListener) *Hierarchy {
	next := h.without(func(path string) bool {
		return IsAncestorOrSelf(entity.Path, path) || IsAncestorOrSelf(path, entity.Path)
	}, diff)
	next.entries[entity.Path] = entity
	if diff != nil {
		diff.NodeAdded(entity)
	}
	return next
}

// Invalidate returns a new hierarchy without any entry that contains path or lies below it.
func (h *Hierarchy) Invalidate(path string, diff NodeDiffListener) *Hierarchy {
	path = filepath.Clean(path)
	return h.without(func(entry string) bool {
		return IsAncestorOrSelf(entry, path) || IsAncestorOrSelf(path, entry)
	}, diff)
}

// Clear returns an empty hierarchy, reporting every entry as removed.
func (h *Hierarchy) Clear(diff NodeDiffListener) *Hierarchy {
	return h.without(func(string) bool { return true }, diff)
}

func (h *Hierarchy) without(drop func(path string) bool, diff NodeDiffListener) *Hierarchy {
	next := &Hierarchy{entries: make(map[string]*CachedEntity, len(h.entries)+1)}
	for _, entity := range h.Entities() {
		if drop(entity.Path) {
			if diff != nil {
				diff.NodeRemoved(entity)
			}
			continue
		}
		next.entries[entity.Path] = entity
	}
	return next
}

func parentOf(path string) string {
	parent := filepath.Dir(path)
	if parent == path || parent == "." {
		return ""
	}
	return parent
}
