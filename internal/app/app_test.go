package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vfswatch/internal/app"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/vfswatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app     *app.App
	loader  *mocks.MockConfigLoader
	logger  *mocks.MockLogger
	factory *mocks.MockNativeWatcherFactory
	native  *mocks.MockNativeWatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		factory: mocks.NewMockNativeWatcherFactory(ctrl),
		native:  mocks.NewMockNativeWatcher(ctrl),
	}
	f.app = app.New(f.loader, f.logger, nil).
		WithNativeFactory(func(bool, []string, ports.Logger) ports.NativeWatcherFactory { return f.factory }).
		WithStatisticsInterval(time.Hour)
	return f
}

func recursiveConfig(root string) *domain.Config {
	cfg := domain.DefaultConfig(root)
	cfg.Platform = domain.PlatformRecursive
	return cfg
}

// watch runs Watch in the background until cancel is called.
func watch(t *testing.T, a *app.App, opts app.WatchOptions) (cancel func() error) {
	t.Helper()
	ctx, stop := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Watch(ctx, opts) }()

	return func() error {
		stop()
		select {
		case err := <-errCh:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("Watch did not return after cancellation")
			return nil
		}
	}
}

func TestWatch_Lifecycle(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), domain.FilePerm))

	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	started := make(chan struct{})
	gomock.InOrder(
		f.loader.EXPECT().Load(root).Return(recursiveConfig(root), nil),
		f.factory.EXPECT().Start(gomock.Any(), domain.DefaultDebounce).Return(f.native, nil),
		f.native.EXPECT().StartWatching([]string{root}).DoAndReturn(func([]string) error {
			close(started)
			return nil
		}),
		f.native.EXPECT().StopWatching([]string{root}).Return(nil),
		f.native.EXPECT().Close().Return(nil),
	)

	cancel := watch(t, f.app, app.WatchOptions{Dir: root, Paths: []string{file}})

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("watching did not start")
	}
	require.NoError(t, cancel())
}

func TestWatch_OverridesConfiguration(t *testing.T) {
	root := t.TempDir()
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	started := make(chan struct{})
	f.loader.EXPECT().Load(root).Return(domain.DefaultConfig(root), nil)
	f.factory.EXPECT().Start(gomock.Any(), 5*time.Millisecond).Return(f.native, nil)
	f.native.EXPECT().StartWatching([]string{root}).DoAndReturn(func([]string) error {
		close(started)
		return nil
	})
	f.native.EXPECT().StopWatching(gomock.Any()).Return(nil)
	f.native.EXPECT().Close().Return(nil)

	cancel := watch(t, f.app, app.WatchOptions{
		Dir:      root,
		Platform: domain.PlatformRecursive,
		Debounce: 5 * time.Millisecond,
	})
	<-started
	require.NoError(t, cancel())
}

func TestWatch_UnsupportedWatchingDegrades(t *testing.T) {
	root := t.TempDir()
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	closed := make(chan struct{})
	f.loader.EXPECT().Load(root).Return(recursiveConfig(root), nil)
	f.factory.EXPECT().Start(gomock.Any(), gomock.Any()).Return(f.native, nil)
	f.native.EXPECT().StartWatching([]string{root}).Return(domain.ErrAlreadyWatching)
	f.logger.EXPECT().Warn("Watching the file system is not supported, continuing without watching")
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrWatchingNotSupported))
	})
	f.native.EXPECT().Close().DoAndReturn(func() error {
		close(closed)
		return nil
	})

	cancel := watch(t, f.app, app.WatchOptions{Dir: root})

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("registry was not closed")
	}
	require.NoError(t, cancel(), "watching continues without the registry")
}

func TestWatch_Errors(t *testing.T) {
	t.Run("configuration", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigParseFailed)

		err := f.app.Watch(t.Context(), app.WatchOptions{})
		require.ErrorIs(t, err, domain.ErrConfigParseFailed)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})

	t.Run("unknown platform", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.DefaultConfig("/ws"), nil)

		err := f.app.Watch(t.Context(), app.WatchOptions{Platform: "polling"})
		require.ErrorIs(t, err, domain.ErrConfigInvalid)
	})

	t.Run("native watcher start", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().Load(".").Return(domain.DefaultConfig("/ws"), nil)
		f.factory.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil, errors.New("too many open files"))

		err := f.app.Watch(t.Context(), app.WatchOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrNativeWatcherStart.Error())
	})
}

func TestRoots(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	f := newFixture(t)

	buf := &bytes.Buffer{}
	require.NoError(t, f.app.Roots(buf, []string{"/c", "/a/b", "/a", "/a/b/c"}))

	g := goldie.New(t)
	g.Assert(t, "roots", buf.Bytes())
}

func TestRoots_FromConfiguration(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	f := newFixture(t)
	cfg := domain.DefaultConfig("/ws")
	cfg.MustWatch = []string{"/ws/src", "/ws/gen"}
	f.loader.EXPECT().Load(".").Return(cfg, nil)

	buf := &bytes.Buffer{}
	require.NoError(t, f.app.Roots(buf, nil))
	assert.Equal(t, "Roots to watch (2)\n  ● /ws/gen\n  ● /ws/src\n", buf.String())
}
