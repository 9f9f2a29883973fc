package ports

import "go.trai.ch/vfswatch/internal/core/domain"

//go:generate mockgen -source=change_handler.go -destination=mocks/mock_change_handler.go -package=mocks

// ChangeHandler reacts to file system changes by invalidating cached state.
type ChangeHandler interface {
	// HandleChanges invalidates whatever depends on the changed paths.
	HandleChanges(events []domain.ChangeEvent)
}
