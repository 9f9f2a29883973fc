package domain

import "time"

// Timeouts bound the synchronous operations of the serializing watch proxy.
type Timeouts struct {
	Update  time.Duration
	Changed time.Duration
	Close   time.Duration
}

// Config is the resolved configuration of a watch session. All paths are absolute.
type Config struct {
	// Path is the config file the values were read from, empty when defaults are used.
	Path string
	// Roots are the workspace boundaries; only paths below them are eligible for watching.
	Roots []string
	// MustWatch are directories that stay watched regardless of the cache contents.
	MustWatch []string
	// Ignore are file name globs excluded from watching and snapshotting.
	Ignore []string
	// Platform is one of PlatformAuto, PlatformRecursive and PlatformNonRecursive.
	Platform string
	// Debounce is the native event coalescing window.
	Debounce time.Duration
	// Timeouts bound the synchronous watch operations.
	Timeouts Timeouts
}

// DefaultConfig returns the configuration used when no config file exists: the
// given directory is both the only root and the only must-watch directory.
func DefaultConfig(dir string) *Config {
	return &Config{
		Roots:     []string{dir},
		MustWatch: []string{dir},
		Ignore:    DefaultIgnores(),
		Platform:  PlatformAuto,
		Debounce:  DefaultDebounce,
		Timeouts: Timeouts{
			Update:  DefaultUpdateTimeout,
			Changed: DefaultChangedTimeout,
			Close:   DefaultCloseTimeout,
		},
	}
}

// Filter returns the watch filter described by the configuration.
func (c *Config) Filter() WatchFilter {
	return NewWatchFilter(c.Roots, c.Ignore)
}
