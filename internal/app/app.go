// Package app implements the application layer for margo.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/margo/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lockfiles    ports.LockfileLoader
	resolvers    ports.ResolverFactory
	downloaders  ports.DownloaderFactory
	reports      ports.ReportWriter
	cache        ports.ArchiveCache
	renderer     ports.Renderer
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	lockfiles ports.LockfileLoader,
	resolvers ports.ResolverFactory,
	downloaders ports.DownloaderFactory,
	reports ports.ReportWriter,
	cache ports.ArchiveCache,
	renderer ports.Renderer,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lockfiles:    lockfiles,
		resolvers:    resolvers,
		downloaders:  downloaders,
		reports:      reports,
		cache:        cache,
		renderer:     renderer,
		logger:       logger,
	}
}

// Options selects the configuration of a command.
type Options struct {
	// ConfigPath is an explicit config file. The default file is used if empty.
	ConfigPath string
	// Overrides are applied on top of every other config source. Keys use the dotted config names.
	Overrides map[string]any
}

// FetchOptions configures App.Fetch.
type FetchOptions struct {
	Options
}

// Fetch downloads every crate of the lockfile that is missing from the cache.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) error {
	run, err := a.prepare(opts.Options)
	if err != nil {
		return err
	}
	cfg := run.cfg

	tracer, shutdown := a.newTracer()
	defer shutdown()

	p := pipeline.New(
		a.resolvers.NewResolver(cfg.Registry, cfg.HTTP()),
		a.downloaders.NewDownloader(cfg.HTTP()),
		tracer,
		a.logger,
		pipeline.WithConcurrency(cfg.Concurrency),
	)

	summary, runErr := p.Run(ctx, run.targets)
	if summary == nil {
		return runErr
	}

	for _, res := range summary.Results {
		if res.Err != nil {
			a.logger.Error(zerr.With(res.Err, "crate", res.Target.ID()))
		}
	}
	a.logger.Info(fmt.Sprintf("fetched %d, already cached %d, failed %d",
		summary.FetchedCount(), len(summary.Cached), summary.FailedCount()))

	if cfg.Report != "" {
		report := domain.NewReport(summary, cfg.Lockfile, run.fingerprint, cfg.Registry.URL)
		if err := a.reports.Write(cfg.Report, report); err != nil {
			return errors.Join(err, runErr)
		}
	}

	if runErr != nil {
		return errors.Join(domain.ErrFetchFailed, runErr)
	}
	return nil
}

type prepared struct {
	cfg         *domain.Config
	fingerprint string
	targets     []domain.FetchTarget
}

// prepare loads the configuration and the lockfile and builds the fetch targets.
func (a *App) prepare(opts Options) (*prepared, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return nil, err
	}

	if err := a.logger.Configure(cfg.Log); err != nil {
		return nil, err
	}

	lf, fingerprint, err := a.lockfiles.Load(cfg.Lockfile)
	if err != nil {
		return nil, err
	}

	records, err := lf.FetchableRecords(cfg.Registry.Source())
	if err != nil {
		return nil, zerr.With(err, "lockfile", cfg.Lockfile)
	}

	return &prepared{
		cfg:         cfg,
		fingerprint: fingerprint,
		targets:     domain.NewFetchTargets(records, cfg.CargoDir, cfg.Registry.Name),
	}, nil
}
