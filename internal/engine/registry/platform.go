package registry

import (
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/engine/watchroots"
	"go.trai.ch/zerr"
)

// Platform captures how an operating system's watch primitive covers directories.
// The registry driver is shared; only the expansion of an entity into the
// directories to watch differs between platforms.
type Platform interface {
	// Name identifies the platform in logs.
	Name() string
	// Recursive reports whether a single watched root reports changes for its whole subtree.
	Recursive() bool
	// DirectoriesToWatch returns the directories required to observe changes to entity.
	DirectoriesToWatch(entity *domain.CachedEntity, eligible domain.WatchFilter, mustWatchPrefixes []string) []string
}

var (
	// Recursive is the platform for FSEvents-style primitives watching whole hierarchies.
	Recursive Platform = recursivePlatform{}
	// NonRecursive is the platform for inotify-style primitives watching one directory level.
	NonRecursive Platform = nonRecursivePlatform{}
)

type recursivePlatform struct{}

func (recursivePlatform) Name() string { return domain.PlatformRecursive }

func (recursivePlatform) Recursive() bool { return true }

func (recursivePlatform) DirectoriesToWatch(entity *domain.CachedEntity, eligible domain.WatchFilter, prefixes []string) []string {
	return watchroots.DirectoriesToWatch(entity, eligible, prefixes, true)
}

type nonRecursivePlatform struct{}

func (nonRecursivePlatform) Name() string { return domain.PlatformNonRecursive }

func (nonRecursivePlatform) Recursive() bool { return false }

func (nonRecursivePlatform) DirectoriesToWatch(entity *domain.CachedEntity, eligible domain.WatchFilter, prefixes []string) []string {
	return watchroots.DirectoriesToWatch(entity, eligible, prefixes, false)
}

// PlatformFor resolves a configured platform mode. PlatformAuto picks the
// non-recursive platform on Linux and the recursive one elsewhere.
func PlatformFor(mode, goos string) (Platform, error) {
	switch mode {
	case domain.PlatformRecursive:
		return Recursive, nil
	case domain.PlatformNonRecursive:
		return NonRecursive, nil
	case domain.PlatformAuto, "":
		if goos == "linux" {
			return NonRecursive, nil
		}
		return Recursive, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown watch platform"), "platform", mode)
	}
}
