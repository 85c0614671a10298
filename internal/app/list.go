package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/margo/internal/core/domain"
)

// ListOptions configures App.List.
type ListOptions struct {
	Options
}

// List writes one line per fetchable crate with its cache state.
func (a *App) List(_ context.Context, opts ListOptions, w io.Writer) error {
	run, err := a.prepare(opts.Options)
	if err != nil {
		return err
	}

	for _, t := range run.targets {
		ok, err := a.cache.Exists(t.Path())
		if err != nil {
			return err
		}

		state := "missing"
		if ok {
			state = string(domain.OutcomeCached)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", t.ID(), state, t.Path()); err != nil {
			return err
		}
	}
	return nil
}
