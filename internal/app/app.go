// Package app implements the application layer for vfswatch.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vfswatch/internal/adapters/native"
	"go.trai.ch/vfswatch/internal/adapters/snapshot"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/engine/registry"
	"go.trai.ch/vfswatch/internal/engine/serial"
	"go.trai.ch/vfswatch/internal/engine/vfs"
	"go.trai.ch/vfswatch/internal/engine/watchroots"
	"go.trai.ch/vfswatch/internal/ui/output"
	"go.trai.ch/vfswatch/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultStatisticsInterval is how often watch statistics are reported.
	DefaultStatisticsInterval = 10 * time.Second

	tracerName = "go.trai.ch/vfswatch"
)

// NativeFactoryFunc creates the native watcher factory for a session.
type NativeFactoryFunc func(recursive bool, ignores []string, logger ports.Logger) ports.NativeWatcherFactory

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	logger        ports.Logger
	provider      *sdktrace.TracerProvider
	nativeFactory NativeFactoryFunc
	statsInterval time.Duration
	goos          string
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, provider *sdktrace.TracerProvider) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		provider:     provider,
		nativeFactory: func(recursive bool, ignores []string, logger ports.Logger) ports.NativeWatcherFactory {
			return native.Factory{Recursive: recursive, Ignores: ignores, Logger: logger}
		},
		statsInterval: DefaultStatisticsInterval,
		goos:          runtime.GOOS,
	}
}

// WithNativeFactory replaces the fsnotify watcher factory.
// This is primarily used for testing.
func (a *App) WithNativeFactory(f NativeFactoryFunc) *App {
	a.nativeFactory = f
	return a
}

// WithStatisticsInterval changes how often watch statistics are reported.
func (a *App) WithStatisticsInterval(d time.Duration) *App {
	a.statsInterval = d
	return a
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Dir is where the configuration search starts. Empty means the working directory.
	Dir string
	// Paths are snapshotted up front and kept up to date while watching.
	Paths []string
	// Platform overrides the configured watch platform when set.
	Platform string
	// Debounce overrides the configured debounce window when positive.
	Debounce time.Duration
	// Timings logs the duration of every watch operation.
	Timings bool
}

// Watch watches the configured directories until ctx is canceled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Platform != "" {
		cfg.Platform = opts.Platform
	}
	if opts.Debounce > 0 {
		cfg.Debounce = opts.Debounce
	}

	paths, err := absolutePaths(opts.Paths)
	if err != nil {
		return err
	}

	// 2. Build the watch stack
	platform, err := registry.PlatformFor(cfg.Platform, a.goos)
	if err != nil {
		return err
	}

	fs := vfs.New(snapshot.New(cfg.Ignore), a.logger)
	handler := &changeReporter{fs: fs, logger: a.logger, paths: paths}

	reg, err := registry.New(
		a.nativeFactory(platform.Recursive(), cfg.Ignore, a.logger),
		platform,
		cfg.Filter(),
		handler,
		a.logger,
		registry.WithDebounce(cfg.Debounce),
	)
	if err != nil {
		return err
	}

	proxyOpts := []serial.Option{serial.WithTimeouts(cfg.Timeouts), serial.WithLogger(a.logger)}
	if opts.Timings && a.provider != nil {
		proxyOpts = append(proxyOpts, serial.WithTracer(a.provider.Tracer(tracerName)))
	}
	proxy := serial.New(reg, proxyOpts...)

	// 3. Start watching
	fs.StartWatching(proxy)
	fs.UpdateMustWatchDirectories(cfg.MustWatch)
	handler.refresh()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return fs.StopWatching()
	})
	g.Go(func() error {
		a.reportStatistics(ctx, fs)
		return nil
	})

	return g.Wait()
}

func (a *App) reportStatistics(ctx context.Context, fs *vfs.FileSystem) {
	ticker := time.NewTicker(a.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := fs.Statistics()
			if stats.Overflowed {
				a.logger.Warn("File system event queue overflowed, all cached state was dropped")
			}
			if stats.EventCount > 0 {
				a.logger.Info(fmt.Sprintf("Received %d file system events", stats.EventCount))
			}
		}
	}
}

// Roots prints the hierarchies that would be watched for dirs. Without dirs the
// configured must-watch directories are used.
func (a *App) Roots(w io.Writer, dirs []string) error {
	if len(dirs) == 0 {
		cfg, err := a.configLoader.Load(".")
		if err != nil {
			return zerr.Wrap(err, "failed to load configuration")
		}
		dirs = cfg.MustWatch
	}

	abs, err := absolutePaths(dirs)
	if err != nil {
		return err
	}
	roots := watchroots.ResolveRootsToWatch(abs)

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	_, _ = fmt.Fprintln(w, style.Header(r).Render(fmt.Sprintf("Roots to watch (%d)", len(roots))))
	for _, root := range roots {
		_, _ = fmt.Fprintf(w, "  %s %s\n", style.Root(r).Render(style.Dot), root)
	}
	if skipped := len(abs) - len(roots); skipped > 0 {
		_, _ = fmt.Fprintln(w, style.Muted(r).Render(fmt.Sprintf("(%d covered by another root)", skipped)))
	}
	return nil
}

func absolutePaths(paths []string) ([]string, error) {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPathNotAbsolute.Error()), "path", p)
		}
		abs = append(abs, a)
	}
	return abs, nil
}
