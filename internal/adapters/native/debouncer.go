package native

import (
	"slices"
	"strings"
	"sync"
	"time"
	"unique"

	"go.trai.ch/vfswatch/internal/core/domain"
)

// Debouncer coalesces rapid native events into batched change notifications.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]domain.ChangeKind
	timer    *time.Timer
	window   time.Duration
	callback func(events []domain.ChangeEvent)
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(events []domain.ChangeEvent)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]domain.ChangeKind),
		window:   window,
		callback: callback,
	}
}

// Add records an event. A later event for the same path replaces the earlier
// one, except that an invalidation is never downgraded.
func (d *Debouncer) Add(event domain.ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handle := unique.Make(event.Path)
	if prev, ok := d.pending[handle]; !ok || prev != domain.ChangeInvalidated {
		d.pending[handle] = event.Kind
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire is called when the debounce window expires.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}
	events := d.drain()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(events)
	}
}

// Flush immediately delivers all pending events and blocks until the callback
// returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Timer already fired, let it complete rather than processing twice.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	events := d.drain()
	d.mu.Unlock()

	if len(events) > 0 && d.callback != nil {
		d.callback(events)
	}
}

// drain empties the pending set. Callers hold d.mu.
func (d *Debouncer) drain() []domain.ChangeEvent {
	events := make([]domain.ChangeEvent, 0, len(d.pending))
	for handle, kind := range d.pending {
		events = append(events, domain.ChangeEvent{Path: handle.Value(), Kind: kind})
	}
	d.pending = make(map[unique.Handle[string]]domain.ChangeKind)

	slices.SortFunc(events, func(a, b domain.ChangeEvent) int {
		return strings.Compare(a.Path, b.Path)
	})
	return events
}
