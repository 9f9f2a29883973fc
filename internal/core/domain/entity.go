package domain

import (
	"path/filepath"
	"strings"
)

// EntryKind describes what a cached path pointed at when it was snapshotted.
type EntryKind uint8

const (
	// KindMissing indicates nothing existed at the path.
	KindMissing EntryKind = iota
	// KindFile indicates a regular file (or anything that is not a directory).
	KindFile
	// KindDirectory indicates a directory. Its subtree is carried in Children.
	KindDirectory
)

// String returns a human-readable name of the kind.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "missing"
	}
}

// CachedEntity is an immutable snapshot of a file or directory subtree known to the cache.
// It is replaced wholesale on invalidation and never modified after construction.
type CachedEntity struct {
	// Path is the absolute, cleaned path. It uniquely identifies the entity.
	Path string
	// Hash is the content identity of the entity.
	Hash uint64
	// Kind is what was found at Path.
	Kind EntryKind
	// Children holds the direct children of a directory, sorted by path.
	Children []*CachedEntity
}

// NewFile creates a snapshot of a regular file.
func NewFile(path string, hash uint64) *CachedEntity {
	return &CachedEntity{Path: filepath.Clean(path), Hash: hash, Kind: KindFile}
}

// NewMissing creates a snapshot of a path that does not exist.
func NewMissing(path string) *CachedEntity {
	return &CachedEntity{Path: filepath.Clean(path), Kind: KindMissing}
}

// NewDirectory creates a snapshot of a directory with the given children.
func NewDirectory(path string, hash uint64, children ...*CachedEntity) *CachedEntity {
	return &CachedEntity{Path: filepath.Clean(path), Hash: hash, Kind: KindDirectory, Children: children}
}

// IsDir reports whether the entity is a directory.
func (e *CachedEntity) IsDir() bool {
	return e.Kind == KindDirectory
}

// Dir returns the directory that holds the entity's state: the path itself for
// directories and the parent directory for files and missing entries.
func (e *CachedEntity) Dir() string {
	if e.IsDir() {
		return e.Path
	}
	return filepath.Dir(e.Path)
}

// WalkDirectories visits every directory in the entity's subtree in pre-order,
// starting with the entity itself when it is a directory.
func (e *CachedEntity) WalkDirectories(yield func(dir string) bool) {
	e.walkDirectories(yield)
}

func (e *CachedEntity) walkDirectories(yield func(dir string) bool) bool {
	if !e.IsDir() {
		return true
	}
	if !yield(e.Path) {
		return false
	}
	for _, child := range e.Children {
		if !child.walkDirectories(yield) {
			return false
		}
	}
	return true
}

// Find returns the entity at path inside this entity's subtree.
func (e *CachedEntity) Find(path string) (*CachedEntity, bool) {
	path = filepath.Clean(path)
	current := e
	for {
		if current.Path == path {
			return current, true
		}
		next := current.childContaining(path)
		if next == nil {
			return nil, false
		}
		current = next
	}
}

func (e *CachedEntity) childContaining(path string) *CachedEntity {
	for _, child := range e.Children {
		if IsAncestorOrSelf(child.Path, path) {
			return child
		}
	}
	return nil
}

// IsAncestorOrSelf reports whether ancestor is path itself or one of its parent
// directories. The comparison is component-wise, so "/a/b" is not an ancestor of "/a/bc".
func IsAncestorOrSelf(ancestor, path string) bool {
	if ancestor == path {
		return true
	}
	if !strings.HasPrefix(path, ancestor) {
		return false
	}
	if strings.HasSuffix(ancestor, string(filepath.Separator)) {
		return true
	}
	return path[len(ancestor)] == filepath.Separator
}
