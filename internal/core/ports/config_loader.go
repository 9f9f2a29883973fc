package ports

import "go.trai.ch/vfswatch/internal/core/domain"

// ConfigLoader defines the interface for loading the watch configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory. Without a
	// config file it returns defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}
