// Package snapshot captures files and directory trees as domain.CachedEntity values.
package snapshot

import (
	"encoding/binary"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/vfswatch/internal/core/domain"
	"go.trai.ch/vfswatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Snapshotter = (*Snapshotter)(nil)

// Snapshotter hashes file contents and directory trees with xxhash.
type Snapshotter struct {
	ignores []string
}

// New creates a Snapshotter skipping entries whose name matches one of ignores.
func New(ignores []string) *Snapshotter {
	return &Snapshotter{ignores: ignores}
}

// Snapshot returns the entity at path. Symbolic links are not followed.
func (s *Snapshotter) Snapshot(path string) (*domain.CachedEntity, error) {
	if !filepath.IsAbs(path) {
		return nil, zerr.With(zerr.Wrap(domain.ErrPathNotAbsolute, "cannot snapshot relative path"), "path", path)
	}
	return s.snapshot(filepath.Clean(path))
}

func (s *Snapshotter) snapshot(path string) (*domain.CachedEntity, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.NewMissing(path), nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}

	if !info.IsDir() {
		hash, err := s.fileHash(path, info)
		if err != nil {
			return nil, err
		}
		return domain.NewFile(path, hash), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", path)
	}

	// os.ReadDir sorts by name, so children come out sorted by path.
	children := make([]*domain.CachedEntity, 0, len(entries))
	digest := xxhash.New()
	for _, entry := range entries {
		if domain.IsIgnoredName(entry.Name(), s.ignores) {
			continue
		}
		child, err := s.snapshot(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		if child.Kind == domain.KindMissing {
			// Removed between ReadDir and Lstat.
			continue
		}
		children = append(children, child)

		_, _ = digest.WriteString(entry.Name())
		_, _ = digest.Write([]byte{0})
		if err := binary.Write(digest, binary.LittleEndian, child.Hash); err != nil {
			return nil, zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return domain.NewDirectory(path, digest.Sum64(), children...), nil
}

func (s *Snapshotter) fileHash(path string, info iofs.FileInfo) (uint64, error) {
	if info.Mode()&iofs.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", path)
		}
		return xxhash.Sum64String(target), nil
	}
	if !info.Mode().IsRegular() {
		return 0, nil
	}
	return ComputeFileHash(path)
}

// ComputeFileHash computes the xxhash of a file's content.
func ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}
