// Package pipeline fetches the crate archives of a lockfile into the local cache.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Pipeline resolves and downloads every target that is not yet cached.
type Pipeline struct {
	resolver    ports.LinkResolver
	downloader  ports.Downloader
	tracer      ports.Tracer
	logger      ports.Logger
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds how many targets are fetched at the same time.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

// New creates a Pipeline.
func New(
	resolver ports.LinkResolver,
	downloader ports.Downloader,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		resolver:    resolver,
		downloader:  downloader,
		tracer:      tracer,
		logger:      logger,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan splits targets into the ones whose archive already exists and the ones still to fetch.
// Both slices keep the input order.
func (p *Pipeline) Plan(targets []domain.FetchTarget) (cached, pending []domain.FetchTarget, err error) {
	for _, t := range targets {
		_, err := os.Stat(t.Path())
		switch {
		case err == nil:
			cached = append(cached, t)
		case errors.Is(err, fs.ErrNotExist):
			pending = append(pending, t)
		default:
			return nil, nil, domain.NewError(domain.ErrIO, zerr.With(err, "path", t.Path()))
		}
	}
	return cached, pending, nil
}

// Run fetches every pending target. A failing target does not stop the others.
// The returned summary is complete even when the error is non-nil; the error joins the
// per-target errors in submission order.
func (p *Pipeline) Run(ctx context.Context, targets []domain.FetchTarget) (*domain.Summary, error) {
	cached, pending, err := p.Plan(targets)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := p.tracer.Start(ctx, domain.SpanRun, ports.WithAttribute(domain.AttrRunID, runID))
	defer span.End()

	p.logger.Info(fmt.Sprintf("%d already cached, %d to fetch", len(cached), len(pending)))
	p.tracer.EmitPlan(ctx, targetIDs(cached), targetIDs(pending))

	results := make([]domain.Result, len(pending))

	g := &errgroup.Group{}
	g.SetLimit(p.concurrency)
	for i, t := range pending {
		g.Go(func() error {
			results[i] = p.fetch(ctx, t)
			return nil
		})
	}
	_ = g.Wait()

	summary := &domain.Summary{
		RunID:   runID,
		Cached:  cached,
		Results: results,
	}
	if err := summary.Err(); err != nil {
		span.RecordError(err)
		return summary, err
	}
	return summary, nil
}

func (p *Pipeline) fetch(ctx context.Context, t domain.FetchTarget) domain.Result {
	ctx, span := p.tracer.Start(ctx, t.ID(),
		ports.WithAttribute(domain.AttrCrateName, t.Name()),
		ports.WithAttribute(domain.AttrCrateVersion, t.Version()),
		ports.WithAttribute(domain.AttrCratePath, t.Path()),
	)
	defer span.End()

	if err := p.fetchTarget(ctx, t, span); err != nil {
		span.RecordError(err)
		return domain.Result{Target: t, Outcome: domain.OutcomeFailed, Err: err}
	}
	return domain.Result{Target: t, Outcome: domain.OutcomeFetched}
}

func (p *Pipeline) fetchTarget(ctx context.Context, t domain.FetchTarget, span ports.Span) error {
	url, err := p.resolver.Resolve(ctx, t.Record)
	if err != nil {
		return err
	}
	span.SetAttribute(domain.AttrCrateURL, url)

	return p.downloader.Download(ctx, url, t.Path(), t.Checksum())
}

func targetIDs(targets []domain.FetchTarget) []string {
	ids := make([]string, len(targets))
	for i, t := range targets {
		ids[i] = t.ID()
	}
	return ids
}
