package domain

import "time"

const (
	// ConfigFileName is the name of the configuration file searched for upwards from the working directory.
	ConfigFileName = "vfswatch.yaml"

	// PlatformAuto selects the watch platform from the operating system.
	PlatformAuto = "auto"
	// PlatformRecursive selects watching whole hierarchies from a single root.
	PlatformRecursive = "recursive"
	// PlatformNonRecursive selects watching every directory level separately.
	PlatformNonRecursive = "non-recursive"

	// DefaultDebounce is the default window for coalescing native events.
	DefaultDebounce = 50 * time.Millisecond

	// DefaultUpdateTimeout bounds synchronous must-watch directory updates.
	DefaultUpdateTimeout = 2 * time.Second

	// DefaultChangedTimeout bounds synchronous hierarchy change updates.
	DefaultChangedTimeout = 2 * time.Second

	// DefaultCloseTimeout bounds each of the two waits performed on close.
	DefaultCloseTimeout = 2 * time.Second

	// DirPerm is the default permission for directories created by vfswatch.
	DirPerm = 0o750
	// FilePerm is the default permission for files created by vfswatch.
	FilePerm = 0o600
)

// DefaultIgnores are directory names never worth watching.
func DefaultIgnores() []string {
	return []string{".git", ".jj", "node_modules"}
}
