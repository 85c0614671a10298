package ports

import "go.trai.ch/margo/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// Configure applies the log settings of a loaded configuration.
	Configure(cfg domain.LogConfig) error
}
