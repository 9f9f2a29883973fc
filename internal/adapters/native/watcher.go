// Package native implements the native watch primitive on top of fsnotify.
package native

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.NativeWatcherFactory = Factory{}
	_ ports.NativeWatcher        = (*Watcher)(nil)
)

var errNotWatching = zerr.New("path is not watched")

// Factory starts fsnotify-backed watchers.
type Factory struct {
	// Recursive makes every root cover its whole hierarchy. fsnotify only
	// watches single directories, so subdirectories are added one by one and
	// directories created later are picked up from their Create events.
	Recursive bool
	// Ignores are directory name globs never descended into in recursive mode.
	Ignores []string
	// Logger receives native watcher errors. It may be nil.
	Logger ports.Logger
}

// Start creates a watcher delivering changes to callback, coalesced over debounce.
func (f Factory) Start(callback ports.ChangeCallback, debounce time.Duration) (ports.NativeWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		recursive: f.Recursive,
		ignores:   f.Ignores,
		logger:    f.Logger,
		debouncer: NewDebouncer(debounce, callback),
		roots:     make(map[string]string),
		resolved:  make(map[string]string),
		owners:    make(map[string]string),
		done:      make(chan struct{}),
	}
	go w.processEvents()

	return w, nil
}

// Watcher implements ports.NativeWatcher using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	recursive bool
	ignores   []string
	logger    ports.Logger
	debouncer *Debouncer

	mu sync.Mutex
	// roots maps each watched root to its symlink-resolved path.
	roots map[string]string
	// resolved maps resolved paths back to the root registered for them.
	resolved map[string]string
	// owners maps every directory added to fsnotify to the root it belongs to.
	owners map[string]string

	eventCount atomic.Int64
	overflowed atomic.Bool

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// StartWatching registers the given roots.
func (w *Watcher) StartWatching(roots []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, root := range roots {
		if err := w.startRoot(filepath.Clean(root)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) startRoot(root string) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolved = root
	}

	if _, ok := w.roots[root]; ok {
		return zerr.With(zerr.Wrap(domain.ErrAlreadyWatching, "root is already watched"), "path", root)
	}
	if existing, ok := w.resolved[resolved]; ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrAlreadyWatching, "root is already watched through another path"), "path", root), "existing", existing)
	}
	if owner, ok := w.owners[root]; ok && w.recursive {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrAlreadyWatching, "root is inside a watched hierarchy"), "path", root), "existing", owner)
	}

	if err := w.fsWatcher.Add(root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add watch"), "path", root)
	}
	w.roots[root] = resolved
	w.resolved[resolved] = root
	w.owners[root] = root

	if w.recursive {
		w.addSubdirectories(root, root)
	}
	return nil
}

// addSubdirectories watches every directory below dir on behalf of root.
// Callers hold w.mu.
func (w *Watcher) addSubdirectories(root, dir string) {
	for sub := range walkDirectories(dir, w.ignores) {
		if _, ok := w.owners[sub]; ok {
			continue
		}
		if err := w.fsWatcher.Add(sub); err != nil {
			// The directory may be gone already; its removal is reported by the parent.
			continue
		}
		w.owners[sub] = root
	}
}

// StopWatching unregisters the given roots together with their emulated subdirectory watches.
func (w *Watcher) StopWatching(roots []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for _, root := range roots {
		root = filepath.Clean(root)
		resolved, ok := w.roots[root]
		if !ok {
			errs = append(errs, zerr.With(errNotWatching, "path", root))
			continue
		}
		delete(w.roots, root)
		delete(w.resolved, resolved)

		for dir, owner := range w.owners {
			if owner != root {
				continue
			}
			delete(w.owners, dir)
			err := w.fsWatcher.Remove(dir)
			if err != nil && dir == root && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
				errs = append(errs, zerr.With(zerr.Wrap(err, "failed to remove watch"), "path", root))
			}
		}
	}
	return errors.Join(errs...)
}

// GetAndResetStatistics returns the counters accumulated since the last call.
func (w *Watcher) GetAndResetStatistics() domain.WatchStatistics {
	return domain.WatchStatistics{
		EventCount: int(w.eventCount.Swap(0)),
		Overflowed: w.overflowed.Swap(false),
	}
}

// Close stops the event loop and delivers pending changes. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsWatcher.Close()
		<-w.done
		w.debouncer.Flush()
	})
	return w.closeErr
}

// processEvents converts fsnotify events into change events until the watcher is closed.
func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.eventCount.Add(1)

			change, ok := convertEvent(event)
			if !ok {
				continue
			}
			w.track(change)
			w.debouncer.Add(change)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.overflow()
				continue
			}
			if w.logger != nil {
				w.logger.Error(zerr.Wrap(err, "file watcher error"))
			}
		}
	}
}

// track keeps the emulated recursive watches in step with created and removed directories.
func (w *Watcher) track(change domain.ChangeEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch change.Kind {
	case domain.ChangeCreated:
		if !w.recursive {
			return
		}
		root, ok := w.owners[filepath.Dir(change.Path)]
		if !ok || domain.IsIgnoredName(filepath.Base(change.Path), w.ignores) {
			return
		}
		if info, err := os.Lstat(change.Path); err == nil && info.IsDir() {
			w.addSubdirectories(root, change.Path)
		}
	case domain.ChangeRemoved:
		for dir := range w.owners {
			if _, isRoot := w.roots[dir]; isRoot {
				continue
			}
			if domain.IsAncestorOrSelf(change.Path, dir) {
				delete(w.owners, dir)
				_ = w.fsWatcher.Remove(dir)
			}
		}
	}
}

// overflow invalidates every root after the kernel queue dropped events.
func (w *Watcher) overflow() {
	w.overflowed.Store(true)

	w.mu.Lock()
	roots := make([]string, 0, len(w.roots))
	for root := range w.roots {
		roots = append(roots, root)
	}
	w.mu.Unlock()

	for _, root := range roots {
		w.debouncer.Add(domain.ChangeEvent{Path: root, Kind: domain.ChangeInvalidated})
	}
}

// convertEvent maps an fsnotify event to a change event.
func convertEvent(event fsnotify.Event) (domain.ChangeEvent, bool) {
	change := domain.ChangeEvent{Path: filepath.Clean(event.Name)}

	switch {
	case event.Has(fsnotify.Create):
		change.Kind = domain.ChangeCreated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		change.Kind = domain.ChangeRemoved
	case event.Has(fsnotify.Write), event.Has(fsnotify.Chmod):
		change.Kind = domain.ChangeModified
	default:
		return change, false
	}
	return change, true
}

// walkDirectories yields root and every directory below it, skipping ignored names.
func walkDirectories(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // Unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && domain.IsIgnoredName(d.Name(), ignores) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
