// Package hierarchy guards the current snapshot hierarchy: readers get a
// consistent version without locking while writers are serialized.
package hierarchy

import (
	"sync"
	"sync/atomic"

	"go.trai.ch/vfswatch/internal/core/domain"
)

// ChangeListener observes one hierarchy update. Start is called before the
// update function runs and Finish after the new version is published.
type ChangeListener interface {
	domain.NodeDiffListener
	Start()
	Finish()
}

// UpdateFunc derives the next hierarchy version, reporting its diff to listener.
type UpdateFunc func(current *domain.Hierarchy, diff domain.NodeDiffListener) *domain.Hierarchy

// Reference holds the current hierarchy version.
type Reference struct {
	mu      sync.Mutex
	current atomic.Pointer[domain.Hierarchy]
}

// NewReference returns a reference holding initial, or an empty hierarchy when initial is nil.
func NewReference(initial *domain.Hierarchy) *Reference {
	if initial == nil {
		initial = domain.EmptyHierarchy()
	}
	r := &Reference{}
	r.current.Store(initial)
	return r
}

// Get returns the current version without blocking.
func (r *Reference) Get() *domain.Hierarchy {
	return r.current.Load()
}

// Update applies fn to the current version and publishes the result. Updates are
// serialized; concurrent readers see either the old or the new version.
func (r *Reference) Update(fn UpdateFunc, listener ChangeListener) {
	if listener == nil {
		listener = NopListener{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	listener.Start()
	next := fn(r.current.Load(), listener)
	if next != nil {
		r.current.Store(next)
	}
	listener.Finish()
}

// NopListener ignores every notification.
type NopListener struct{}

// NodeRemoved implements domain.NodeDiffListener.
func (NopListener) NodeRemoved(*domain.CachedEntity) {}

// NodeAdded implements domain.NodeDiffListener.
func (NopListener) NodeAdded(*domain.CachedEntity) {}

// Start implements ChangeListener.
func (NopListener) Start() {}

// Finish implements ChangeListener.
func (NopListener) Finish() {}
