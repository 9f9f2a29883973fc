// Package vfs is a read-through cache of file system snapshots that stays valid
// across reads as long as the file system is watched.
package vfs

import (
	"path/filepath"
	"sync"

	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/engine/hierarchy"
	"go.trai.ch/vfswatch/internal/engine/serial"
	"go.trai.ch/zerr"
)

// Registry is the watch registry a FileSystem reports its changes to.
// It is satisfied by *serial.Proxy.
type Registry interface {
	ports.WatchRegistry
	CloseAsync() *serial.Future
}

// FileSystem caches snapshots in a hierarchy and invalidates them on change
// notifications.
type FileSystem struct {
	ref         *hierarchy.Reference
	snapshotter ports.Snapshotter
	logger      ports.Logger

	mu       sync.Mutex
	registry Registry
}

// New returns an empty file system reading through snapshotter.
func New(snapshotter ports.Snapshotter, logger ports.Logger) *FileSystem {
	return &FileSystem{
		ref:         hierarchy.NewReference(nil),
		snapshotter: snapshotter,
		logger:      logger,
	}
}

// Hierarchy returns the current cached hierarchy.
func (fs *FileSystem) Hierarchy() *domain.Hierarchy {
	return fs.ref.Get()
}

// Read returns the cached entity for path, snapshotting it on a miss.
func (fs *FileSystem) Read(path string) (*domain.CachedEntity, error) {
	if !filepath.IsAbs(path) {
		return nil, zerr.With(zerr.Wrap(domain.ErrPathNotAbsolute, "cannot read relative path"), "path", path)
	}
	path = filepath.Clean(path)

	if entity, ok := fs.ref.Get().Get(path); ok {
		return entity, nil
	}

	entity, err := fs.snapshotter.Snapshot(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "path", path)
	}
	fs.update(func(current *domain.Hierarchy, diff domain.NodeDiffListener) *domain.Hierarchy {
		return current.Store(entity, diff)
	})
	return entity, nil
}

// HandleChanges drops every cached entity affected by events. An invalidation
// event drops the whole hierarchy.
func (fs *FileSystem) HandleChanges(events []domain.ChangeEvent) {
	if len(events) == 0 {
		return
	}
	fs.update(func(current *domain.Hierarchy, diff domain.NodeDiffListener) *domain.Hierarchy {
		next := current
		for _, event := range events {
			if event.Kind == domain.ChangeInvalidated {
				return next.Clear(diff)
			}
			next = next.Invalidate(event.Path, diff)
		}
		return next
	})
}

// StartWatching attaches registry. Entities cached so far are reported to it.
func (fs *FileSystem) StartWatching(registry Registry) {
	fs.mu.Lock()
	fs.registry = registry
	fs.mu.Unlock()

	current := fs.ref.Get().Entities()
	if len(current) == 0 {
		return
	}
	if err := registry.Changed(nil, current); err != nil {
		fs.watchingFailed(registry, err)
	}
}

// UpdateMustWatchDirectories forwards the must-watch directories to the registry.
func (fs *FileSystem) UpdateMustWatchDirectories(dirs []string) {
	registry := fs.currentRegistry()
	if registry == nil {
		return
	}
	if err := registry.UpdateMustWatchDirectories(dirs); err != nil {
		fs.watchingFailed(registry, err)
	}
}

// StopWatching detaches and closes the registry. Without change notifications
// the cached hierarchy cannot be trusted anymore, so it is dropped.
func (fs *FileSystem) StopWatching() error {
	fs.mu.Lock()
	registry := fs.registry
	fs.registry = nil
	fs.mu.Unlock()

	if registry == nil {
		return nil
	}
	fs.ref.Update(func(current *domain.Hierarchy, diff domain.NodeDiffListener) *domain.Hierarchy {
		return current.Clear(diff)
	}, nil)
	return registry.Close()
}

// WatchingEnabled reports whether a registry is attached.
func (fs *FileSystem) WatchingEnabled() bool {
	return fs.currentRegistry() != nil
}

// Statistics returns the watch counters since the last call.
func (fs *FileSystem) Statistics() domain.WatchStatistics {
	registry := fs.currentRegistry()
	if registry == nil {
		return domain.WatchStatistics{}
	}
	return registry.GetAndResetStatistics()
}

func (fs *FileSystem) currentRegistry() Registry {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.registry
}

func (fs *FileSystem) update(fn hierarchy.UpdateFunc) {
	registry := fs.currentRegistry()
	if registry == nil {
		fs.ref.Update(fn, nil)
		return
	}

	var failure error
	fs.ref.Update(fn, hierarchy.NewWatchingListener(registry, func(err error) {
		failure = err
	}))
	if failure != nil {
		fs.watchingFailed(registry, failure)
	}
}

// watchingFailed disables watching for the rest of the session. The registry is
// closed in the background and every cached entity is considered dirty.
func (fs *FileSystem) watchingFailed(registry Registry, err error) {
	fs.mu.Lock()
	if fs.registry != registry {
		fs.mu.Unlock()
		return
	}
	fs.registry = nil
	fs.mu.Unlock()

	fs.logger.Warn("Watching the file system is not supported, continuing without watching")
	fs.logger.Error(err)

	registry.CloseAsync()
	fs.ref.Update(func(current *domain.Hierarchy, diff domain.NodeDiffListener) *domain.Hierarchy {
		return current.Clear(diff)
	}, nil)
}
