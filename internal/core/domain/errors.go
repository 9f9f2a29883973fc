package domain

import "go.trai.ch/zerr"

var (
	// ErrWatchingNotSupported is returned when file system watching cannot be honored for
	// this session. Callers fall back to treating the file system as fully dirty.
	ErrWatchingNotSupported = zerr.New("file system watching is not supported")

	// ErrAlreadyWatching is returned by a native watcher asked to watch a path it
	// already watches, possibly through a different (e.g. symlinked) path.
	ErrAlreadyWatching = zerr.New("already watching path")

	// ErrRegistryClosed is returned when an operation is attempted on a closed watch registry.
	ErrRegistryClosed = zerr.New("watch registry is closed")

	// ErrWatcherTimeout is returned when a synchronous watch operation does not complete in time.
	ErrWatcherTimeout = zerr.New("timed out waiting for file watcher")

	// ErrWorkerFailed is returned when the watch worker panics while running an action.
	ErrWorkerFailed = zerr.New("file watcher worker failed")

	// ErrNativeWatcherStart is returned when the native watcher cannot be started.
	ErrNativeWatcherStart = zerr.New("failed to start native file watcher")

	// ErrSnapshotFailed is returned when a path cannot be snapshotted.
	ErrSnapshotFailed = zerr.New("failed to snapshot path")

	// ErrPathNotAbsolute is returned when a path cannot be made absolute.
	ErrPathNotAbsolute = zerr.New("failed to get absolute path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file contains an invalid value.
	ErrConfigInvalid = zerr.New("invalid configuration")
)
