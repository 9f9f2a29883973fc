package ports

import (
	"time"

	"go.trai.ch/vfswatch/internal/core/domain"
)

//go:generate mockgen -source=native_watcher.go -destination=mocks/mock_native_watcher.go -package=mocks

// ChangeCallback receives batches of changes from the native watcher.
// It is invoked asynchronously from a goroutine owned by the watcher.
type ChangeCallback func(events []domain.ChangeEvent)

// NativeWatcher is the operating system watch primitive.
// Implementations are not required to be safe for concurrent mutation.
type NativeWatcher interface {
	// StartWatching registers the given roots. Watching a path that is already
	// watched, directly or through an alias, fails with domain.ErrAlreadyWatching.
	StartWatching(roots []string) error
	// StopWatching unregisters the given roots.
	StopWatching(roots []string) error
	// GetAndResetStatistics returns the counters accumulated since the last call.
	GetAndResetStatistics() domain.WatchStatistics
	// Close releases the watcher. It is safe to call more than once.
	Close() error
}

// NativeWatcherFactory starts native watchers.
type NativeWatcherFactory interface {
	// Start creates a watcher delivering changes to callback, coalesced over debounce.
	Start(callback ChangeCallback, debounce time.Duration) (NativeWatcher, error)
}
