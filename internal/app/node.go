package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/margo/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/download" //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/linear"   //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/lockfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/registry" //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/adapters/report"   //nolint:depguard // Wired in app layer
	"go.trai.ch/margo/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			registry.NodeID,
			download.NodeID,
			report.NodeID,
			fs.NodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	lockfiles, err := graft.Dep[ports.LockfileLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolvers, err := graft.Dep[ports.ResolverFactory](ctx)
	if err != nil {
		return nil, err
	}

	downloaders, err := graft.Dep[ports.DownloaderFactory](ctx)
	if err != nil {
		return nil, err
	}

	reports, err := graft.Dep[ports.ReportWriter](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ArchiveCache](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, lockfiles, resolvers, downloaders, reports, cache, renderer, log), nil
}
