// Package config provides the configuration loader for vfswatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its parents for the config file. Without one, the
// defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPathNotAbsolute.Error()), "cwd", cwd)
	}

	configPath, found := findConfiguration(cwd)
	if !found {
		return domain.DefaultConfig(cwd), nil
	}

	var watchfile Watchfile
	if err := readAndUnmarshalYAML(configPath, &watchfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.resolve(configPath, &watchfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) resolve(configPath string, watchfile *Watchfile) (*domain.Config, error) {
	configDir := filepath.Dir(configPath)
	cfg := domain.DefaultConfig(configDir)
	cfg.Path = configPath

	if len(watchfile.Roots) > 0 {
		cfg.Roots = resolvePaths(configDir, watchfile.Roots)
		cfg.MustWatch = cfg.Roots
	}
	if watchfile.MustWatch != nil {
		cfg.MustWatch = resolvePaths(configDir, watchfile.MustWatch)
	}
	if watchfile.Ignore != nil {
		cfg.Ignore = watchfile.Ignore
	}

	switch watchfile.Platform {
	case "":
	case domain.PlatformAuto, domain.PlatformRecursive, domain.PlatformNonRecursive:
		cfg.Platform = watchfile.Platform
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown platform"), "platform", watchfile.Platform)
	}

	durations := []struct {
		key    string
		value  string
		target *time.Duration
	}{
		{"debounce", watchfile.Debounce, &cfg.Debounce},
		{"timeouts.update", watchfile.Timeouts.Update, &cfg.Timeouts.Update},
		{"timeouts.changed", watchfile.Timeouts.Changed, &cfg.Timeouts.Changed},
		{"timeouts.close", watchfile.Timeouts.Close, &cfg.Timeouts.Close},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := parseDuration(d.key, d.value)
		if err != nil {
			return nil, err
		}
		*d.target = parsed
	}

	for _, dir := range cfg.MustWatch {
		if !underAnyRoot(dir, cfg.Roots) {
			l.Logger.Warn(fmt.Sprintf("must-watch directory %s is outside of the configured roots", dir))
		}
	}

	return cfg, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "invalid duration"), key, value)
	}
	if d < 0 || (d == 0 && key != "debounce") {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "duration out of range"), key, value)
	}
	return d, nil
}

func resolvePaths(base string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		resolved = append(resolved, filepath.Clean(p))
	}
	return resolved
}

func underAnyRoot(dir string, roots []string) bool {
	for _, root := range roots {
		if domain.IsAncestorOrSelf(root, dir) {
			return true
		}
	}
	return false
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
