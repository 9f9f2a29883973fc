// Package serial runs every mutation of a watch registry on one dedicated
// worker goroutine, so that the registry itself never needs to be thread-safe.
package serial

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// SpanUpdateMustWatch is the span recorded around must-watch directory updates.
	SpanUpdateMustWatch = "vfswatch.update_must_watch"
	// SpanChanged is the span recorded around hierarchy change batches.
	SpanChanged = "vfswatch.changed"
	// SpanClose is the span recorded around closing the delegate.
	SpanClose = "vfswatch.close"
)

type task struct {
	name   string
	attrs  []attribute.KeyValue
	run    func(ports.WatchRegistry) error
	future *Future
	// always is set for the close task, which runs after the closed flag is raised.
	always bool
}

// Proxy serializes calls to a ports.WatchRegistry on a single worker goroutine.
// Each mutation has a synchronous form bounded by a timeout and an asynchronous
// form returning a Future. Submitting never blocks: the queue is unbounded, so a
// worker stuck in a native call cannot stall callers past their timeouts.
type Proxy struct {
	delegate ports.WatchRegistry
	timeouts domain.Timeouts
	tracer   trace.Tracer
	logger   ports.Logger

	mu      sync.Mutex
	queue   []task
	signal  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithTimeouts overrides the bounds of the synchronous operations.
func WithTimeouts(timeouts domain.Timeouts) Option {
	return func(p *Proxy) {
		p.timeouts = timeouts
	}
}

// WithTracer sets the tracer used for worker spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Proxy) {
		p.tracer = tracer
	}
}

// WithLogger sets the logger reporting operation timings.
func WithLogger(logger ports.Logger) Option {
	return func(p *Proxy) {
		p.logger = logger
	}
}

// New starts the worker goroutine for delegate.
func New(delegate ports.WatchRegistry, opts ...Option) *Proxy {
	p := &Proxy{
		delegate: delegate,
		timeouts: domain.Timeouts{
			Update:  domain.DefaultUpdateTimeout,
			Changed: domain.DefaultChangedTimeout,
			Close:   domain.DefaultCloseTimeout,
		},
		tracer:  otel.Tracer("go.trai.ch/vfswatch/serial"),
		logger:  nopLogger{},
		signal:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.work()
	return p
}

// UpdateMustWatchDirectories replaces the must-watch directories and waits for
// the worker to apply them.
func (p *Proxy) UpdateMustWatchDirectories(dirs []string) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), p.timeouts.Update)
	defer cancel()

	if err := p.await(ctx, p.UpdateMustWatchDirectoriesAsync(dirs), p.timeouts.Update, "error while updating must watch directories"); err != nil {
		return err
	}
	p.logger.Info(fmt.Sprintf("Updating watched directories took %dms", time.Since(start).Milliseconds()))
	return nil
}

// UpdateMustWatchDirectoriesAsync submits a must-watch directory update.
func (p *Proxy) UpdateMustWatchDirectoriesAsync(dirs []string) *Future {
	dirs = append([]string(nil), dirs...)
	return p.submit(task{
		name:  SpanUpdateMustWatch,
		attrs: []attribute.KeyValue{attribute.Int("vfswatch.directories", len(dirs))},
		run: func(r ports.WatchRegistry) error {
			return r.UpdateMustWatchDirectories(dirs)
		},
	})
}

// Changed applies a batch of hierarchy changes and waits for the worker.
func (p *Proxy) Changed(removed, added []*domain.CachedEntity) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeouts.Changed)
	defer cancel()

	return p.await(ctx, p.ChangedAsync(removed, added), p.timeouts.Changed, "failed to update watches")
}

// ChangedAsync submits a batch of hierarchy changes.
func (p *Proxy) ChangedAsync(removed, added []*domain.CachedEntity) *Future {
	removed = append([]*domain.CachedEntity(nil), removed...)
	added = append([]*domain.CachedEntity(nil), added...)
	return p.submit(task{
		name: SpanChanged,
		attrs: []attribute.KeyValue{
			attribute.Int("vfswatch.removed", len(removed)),
			attribute.Int("vfswatch.added", len(added)),
		},
		run: func(r ports.WatchRegistry) error {
			return r.Changed(removed, added)
		},
	})
}

// GetAndResetStatistics reads the delegate's counters directly, bypassing the worker.
func (p *Proxy) GetAndResetStatistics() domain.WatchStatistics {
	return p.delegate.GetAndResetStatistics()
}

// Close closes the delegate on the worker and waits for the worker to exit.
// Each of the two waits is bounded by the close timeout.
func (p *Proxy) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeouts.Close)
	defer cancel()

	closer := p.CloseAsync()
	if err := closer.Wait(ctx); err != nil {
		return p.closeError(err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), p.timeouts.Close)
	defer cancel()
	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return p.closeError(ctx.Err())
	}
}

// CloseAsync marks the proxy closed and submits closing the delegate. Actions
// still queued are skipped. Only the first call closes the delegate; later calls
// return a completed Future.
func (p *Proxy) CloseAsync() *Future {
	p.mu.Lock()
	if p.closed.Swap(true) {
		p.mu.Unlock()
		return completed(nil)
	}
	f := newFuture()
	p.queue = append(p.queue, task{
		name: SpanClose,
		run: func(r ports.WatchRegistry) error {
			return r.Close()
		},
		future: f,
		always: true,
	})
	p.mu.Unlock()

	p.notify()
	return f
}

// Closed reports whether Close or CloseAsync was called.
func (p *Proxy) Closed() bool {
	return p.closed.Load()
}

func (p *Proxy) submit(t task) *Future {
	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		return completed(nil)
	}
	t.future = newFuture()
	p.queue = append(p.queue, t)
	p.mu.Unlock()

	p.notify()
	return t.future
}

// notify wakes the worker. A pending wake-up already covers every queued task.
func (p *Proxy) notify() {
	select {
	case p.signal <- struct{}{}:
	default:
	}
}

// next pops the oldest queued task.
func (p *Proxy) next() (task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return task{}, false
	}
	t := p.queue[0]
	p.queue[0] = task{}
	p.queue = p.queue[1:]
	return t, true
}

// work runs queued tasks in order until the close task has run. Nothing is
// queued after the close task.
func (p *Proxy) work() {
	defer close(p.stopped)
	for {
		t, ok := p.next()
		if !ok {
			<-p.signal
			continue
		}
		if p.closed.Load() && !t.always {
			t.future.complete(nil)
			continue
		}
		t.future.complete(p.execute(t))
		if t.always {
			return
		}
	}
}

func (p *Proxy) execute(t task) (err error) {
	_, span := p.tracer.Start(context.Background(), t.name, trace.WithAttributes(t.attrs...))
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.Wrap(domain.ErrWorkerFailed, t.name), "panic", fmt.Sprint(r))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	return t.run(p.delegate)
}

// await waits for f until ctx, which carries the operation's timeout, is done.
// Any failure, including the timeout itself, means watching cannot be relied
// upon anymore.
func (p *Proxy) await(ctx context.Context, f *Future, timeout time.Duration, msg string) error {
	err := f.Wait(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = zerr.With(zerr.Wrap(domain.ErrWatcherTimeout, msg), "timeout", timeout.String())
	} else {
		err = zerr.Wrap(err, msg)
	}
	return errors.Join(domain.ErrWatchingNotSupported, err)
}

func (p *Proxy) closeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return zerr.With(zerr.Wrap(domain.ErrWatcherTimeout, "failed to stop file watcher worker"), "timeout", p.timeouts.Close.String())
	}
	return zerr.Wrap(err, "failed to stop file watcher worker")
}

type nopLogger struct{}

func (nopLogger) Info(string) {}

func (nopLogger) Warn(string) {}

func (nopLogger) Error(error) {}
