package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vfswatch/internal/adapters/config"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(logger), logger
}

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	loader, _ := newLoader(t)

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Empty(t, cfg.Path)
	assert.Equal(t, []string{dir}, cfg.Roots)
	assert.Equal(t, []string{dir}, cfg.MustWatch)
	assert.Equal(t, domain.DefaultIgnores(), cfg.Ignore)
	assert.Equal(t, domain.PlatformAuto, cfg.Platform)
	assert.Equal(t, domain.DefaultDebounce, cfg.Debounce)
	assert.Equal(t, domain.DefaultUpdateTimeout, cfg.Timeouts.Update)
}

func TestLoad_SearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "platform: recursive\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	loader, _ := newLoader(t)
	cfg, err := loader.Load(nested)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, domain.PlatformRecursive, cfg.Platform)
	assert.Equal(t, []string{root}, cfg.Roots)
	assert.Equal(t, []string{root}, cfg.MustWatch)
}

func TestLoad_ResolvesPaths(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
roots:
  - src
  - /abs/other
ignore:
  - "*.tmp"
debounce: 0s
timeouts:
  update: 5s
  changed: 1500ms
  close: 1s
`)

	loader, _ := newLoader(t)
	cfg, err := loader.Load(root)
	require.NoError(t, err)

	roots := []string{filepath.Join(root, "src"), "/abs/other"}
	assert.Equal(t, roots, cfg.Roots)
	assert.Equal(t, roots, cfg.MustWatch, "roots are watched when no must-watch directories are configured")
	assert.Equal(t, []string{"*.tmp"}, cfg.Ignore)
	assert.Equal(t, time.Duration(0), cfg.Debounce)
	assert.Equal(t, domain.Timeouts{Update: 5 * time.Second, Changed: 1500 * time.Millisecond, Close: time.Second}, cfg.Timeouts)
}

func TestLoad_MustWatchOutsideRootsWarns(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
roots: [src]
mustWatch: [src/gen, /elsewhere]
`)

	loader, logger := newLoader(t)
	logger.EXPECT().Warn("must-watch directory /elsewhere is outside of the configured roots")

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "src", "gen"), "/elsewhere"}, cfg.MustWatch)
}

func TestLoad_EmptyIgnoreListDisablesDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "ignore: []\n")

	loader, _ := newLoader(t)
	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Empty(t, cfg.Ignore)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown platform", content: "platform: kqueue\n", wantErr: domain.ErrConfigInvalid},
		{name: "malformed duration", content: "debounce: soon\n", wantErr: domain.ErrConfigInvalid},
		{name: "negative duration", content: "debounce: -1s\n", wantErr: domain.ErrConfigInvalid},
		{name: "zero timeout", content: "timeouts:\n  close: 0s\n", wantErr: domain.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			loader, _ := newLoader(t)
			_, err := loader.Load(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLoad_ParseFailure(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "roots: [unterminated\n")

	loader, _ := newLoader(t)
	_, err := loader.Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
}
