// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/margo/internal/adapters/config"
	_ "go.trai.ch/margo/internal/adapters/download"
	_ "go.trai.ch/margo/internal/adapters/fs"
	_ "go.trai.ch/margo/internal/adapters/linear"
	_ "go.trai.ch/margo/internal/adapters/lockfile"
	_ "go.trai.ch/margo/internal/adapters/logger"
	_ "go.trai.ch/margo/internal/adapters/registry"
	_ "go.trai.ch/margo/internal/adapters/report"
	// Register app nodes.
	_ "go.trai.ch/margo/internal/app"
)
