package hierarchy

import (
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
)

// WatchingListener forwards the diff of one hierarchy update to a watch registry
// as a single batch.
type WatchingListener struct {
	registry ports.WatchRegistry
	onError  func(error)

	removed []*domain.CachedEntity
	added   []*domain.CachedEntity
}

// NewWatchingListener returns a listener reporting to registry. Failures of the
// registry are passed to onError.
func NewWatchingListener(registry ports.WatchRegistry, onError func(error)) *WatchingListener {
	return &WatchingListener{registry: registry, onError: onError}
}

// Start resets the collected diff.
func (l *WatchingListener) Start() {
	l.removed = nil
	l.added = nil
}

// NodeRemoved records a removed entity.
func (l *WatchingListener) NodeRemoved(entity *domain.CachedEntity) {
	l.removed = append(l.removed, entity)
}

// NodeAdded records an added entity.
func (l *WatchingListener) NodeAdded(entity *domain.CachedEntity) {
	l.added = append(l.added, entity)
}

// Finish reports the collected diff. Updates that changed nothing are not reported.
func (l *WatchingListener) Finish() {
	removed, added := l.removed, l.added
	l.removed, l.added = nil, nil
	if len(removed) == 0 && len(added) == 0 {
		return
	}
	if err := l.registry.Changed(removed, added); err != nil && l.onError != nil {
		l.onError(err)
	}
}
