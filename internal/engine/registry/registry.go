// Package registry keeps the native watch roots in line with the entities held
// by the snapshot hierarchy.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/engine/watchroots"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of a Registry.
type State uint8

const (
	// StateIdle means no root is watched yet.
	StateIdle State = iota
	// StateTracking means at least one recompute has been applied.
	StateTracking
	// StateClosed means the native watcher was released.
	StateClosed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	default:
		return "closed"
	}
}

// Registry maps snapshot hierarchy changes onto start and stop calls of a native
// watcher. It is not safe for concurrent use; production code drives it from the
// single worker of a serial.Proxy. Only GetAndResetStatistics and State may be
// called from other goroutines.
type Registry struct {
	native   ports.NativeWatcher
	platform Platform
	filter   domain.WatchFilter
	logger   ports.Logger

	tracked   map[string]*domain.CachedEntity
	mustWatch []string
	prefixes  []string
	active    map[string]struct{}
	state     atomic.Uint32
}

type options struct {
	debounce  time.Duration
	mustWatch []string
}

// Option configures a Registry.
type Option func(*options)

// WithDebounce sets the window the native watcher coalesces events over.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithMustWatchDirectories sets the initial must-watch directories. They are
// only applied by the first recompute.
func WithMustWatchDirectories(dirs []string) Option {
	return func(o *options) {
		o.mustWatch = dirs
	}
}

// New starts a native watcher delivering its changes to handler and returns a
// registry driving it.
func New(
	factory ports.NativeWatcherFactory,
	platform Platform,
	filter domain.WatchFilter,
	handler ports.ChangeHandler,
	logger ports.Logger,
	opts ...Option,
) (*Registry, error) {
	o := options{debounce: domain.DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}

	native, err := factory.Start(handler.HandleChanges, o.debounce)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNativeWatcherStart.Error()), "platform", platform.Name())
	}

	r := &Registry{
		native:   native,
		platform: platform,
		filter:   filter,
		logger:   logger,
		tracked:  make(map[string]*domain.CachedEntity),
		active:   make(map[string]struct{}),
	}
	r.mustWatch = r.normalize(o.mustWatch)
	r.prefixes = watchroots.MustWatchPrefixes(r.mustWatch)
	return r, nil
}

// Changed applies a batch of hierarchy changes: all removals, then all
// additions, followed by a single recompute of the watched roots.
func (r *Registry) Changed(removed, added []*domain.CachedEntity) error {
	if r.State() == StateClosed {
		return domain.ErrRegistryClosed
	}
	for _, entity := range removed {
		delete(r.tracked, entity.Path)
	}
	for _, entity := range added {
		r.tracked[entity.Path] = entity
	}
	return r.recompute()
}

// EntityAdded starts tracking a single entity.
func (r *Registry) EntityAdded(entity *domain.CachedEntity) error {
	return r.Changed(nil, []*domain.CachedEntity{entity})
}

// EntityRemoved stops tracking a single entity.
func (r *Registry) EntityRemoved(entity *domain.CachedEntity) error {
	return r.Changed([]*domain.CachedEntity{entity}, nil)
}

// UpdateMustWatchDirectories replaces the must-watch directories.
func (r *Registry) UpdateMustWatchDirectories(dirs []string) error {
	if r.State() == StateClosed {
		return domain.ErrRegistryClosed
	}
	r.mustWatch = r.normalize(dirs)
	r.prefixes = watchroots.MustWatchPrefixes(r.mustWatch)
	return r.recompute()
}

// GetAndResetStatistics returns the native watcher counters. It only touches the
// state flag and the native watcher's own counters, so it is safe to call
// while the worker mutates the registry.
func (r *Registry) GetAndResetStatistics() domain.WatchStatistics {
	if r.State() == StateClosed {
		return domain.WatchStatistics{}
	}
	return r.native.GetAndResetStatistics()
}

// Close stops every active root and releases the native watcher. Calling Close
// again is a no-op.
func (r *Registry) Close() error {
	if r.State() == StateClosed {
		return nil
	}
	r.state.Store(uint32(StateClosed))

	var stopErr error
	if roots := r.ActiveRoots(); len(roots) > 0 {
		stopErr = r.native.StopWatching(roots)
	}
	clear(r.active)
	clear(r.tracked)

	return errors.Join(stopErr, r.native.Close())
}

// ActiveRoots returns the currently watched roots, sorted.
func (r *Registry) ActiveRoots() []string {
	return slices.Sorted(maps.Keys(r.active))
}

// State returns the lifecycle state.
func (r *Registry) State() State {
	return State(r.state.Load())
}

// Watching reports whether at least one root is watched.
func (r *Registry) Watching() bool {
	return len(r.active) > 0
}

func (r *Registry) recompute() error {
	roots := r.normalize(r.candidates())

	var toRemove, toAdd []string
	for root := range r.active {
		if _, found := slices.BinarySearch(roots, root); !found {
			toRemove = append(toRemove, root)
		}
	}
	for _, root := range roots {
		if _, ok := r.active[root]; !ok {
			toAdd = append(toAdd, root)
		}
	}
	if len(toRemove) == 0 && len(toAdd) == 0 {
		return nil
	}
	slices.Sort(toRemove)

	if len(toRemove) > 0 {
		if err := r.native.StopWatching(toRemove); err != nil {
			return classify(err, "failed to stop watching", toRemove)
		}
		for _, root := range toRemove {
			delete(r.active, root)
		}
	}
	if len(toAdd) > 0 {
		if err := r.native.StartWatching(toAdd); err != nil {
			return classify(err, "failed to start watching", toAdd)
		}
		for _, root := range toAdd {
			r.active[root] = struct{}{}
		}
	}
	r.state.Store(uint32(StateTracking))

	if len(r.active) == 0 && !r.platform.Recursive() {
		r.logger.Warn("Not watching anything anymore")
		return nil
	}
	r.logger.Info(fmt.Sprintf("Watching %d directory hierarchies to track changes", len(r.active)))
	return nil
}

// normalize turns candidate directories into the roots handed to the native
// watcher. A recursive primitive covers a whole hierarchy, so nested candidates
// collapse into their ancestors. A non-recursive primitive reports nothing for
// unwatched nested directories, so every candidate is watched itself.
func (r *Registry) normalize(dirs []string) []string {
	if r.platform.Recursive() {
		return watchroots.ResolveRootsToWatch(dirs)
	}
	return watchroots.Deduplicate(dirs)
}

// candidates returns every directory that has to be covered: the platform
// expansion of each tracked entity plus the must-watch directories.
func (r *Registry) candidates() []string {
	dirs := slices.Clone(r.mustWatch)
	for _, path := range slices.Sorted(maps.Keys(r.tracked)) {
		dirs = append(dirs, r.platform.DirectoriesToWatch(r.tracked[path], r.filter, r.prefixes)...)
	}
	return dirs
}

// classify turns a native duplicate-watch failure into ErrWatchingNotSupported.
// Other failures are returned unchanged.
func classify(err error, msg string, roots []string) error {
	if !errors.Is(err, domain.ErrAlreadyWatching) {
		return err
	}
	wrapped := zerr.With(zerr.Wrap(err, msg), "roots", roots)
	return errors.Join(domain.ErrWatchingNotSupported, wrapped)
}
