package ports

import "go.trai.ch/vfswatch/internal/core/domain"

//go:generate mockgen -source=watch_registry.go -destination=mocks/mock_watch_registry.go -package=mocks

// WatchRegistry keeps native watches in line with the cached snapshot hierarchy.
type WatchRegistry interface {
	// Changed reports entities removed from and added to the snapshot hierarchy.
	Changed(removed, added []*domain.CachedEntity) error
	// UpdateMustWatchDirectories replaces the directories that must always stay watched.
	UpdateMustWatchDirectories(dirs []string) error
	// GetAndResetStatistics returns the native watcher counters accumulated since the last call.
	GetAndResetStatistics() domain.WatchStatistics
	// Close releases all watches.
	Close() error
}
