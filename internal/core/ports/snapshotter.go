package ports

import "go.trai.ch/vfswatch/internal/core/domain"

//go:generate mockgen -source=snapshotter.go -destination=mocks/mock_snapshotter.go -package=mocks

// Snapshotter captures the current state of a path on disk.
type Snapshotter interface {
	// Snapshot returns the entity for path. A path that does not exist yields a
	// domain.KindMissing entity, not an error.
	Snapshot(path string) (*domain.CachedEntity, error)
}
