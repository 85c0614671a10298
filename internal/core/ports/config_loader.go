package ports

import "go.trai.ch/margo/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, or the default file if path is empty,
	// and applies overrides on top of it. Keys of overrides use the dotted config names.
	Load(path string, overrides map[string]any) (*domain.Config, error)
}
