package app

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/zerr"
)

// VerifyOptions configures App.Verify.
type VerifyOptions struct {
	Options
	// Prune removes corrupt archives so that the next fetch replaces them.
	Prune bool
}

// Verify re-hashes every cached archive of the lockfile against its declared checksum.
// Missing archives are counted but are not an error.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	run, err := a.prepare(opts.Options)
	if err != nil {
		return err
	}

	var (
		errs              []error
		verified, missing int
	)
	for _, t := range run.targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := a.cache.Exists(t.Path())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			missing++
			continue
		}

		actual, err := a.cache.Hash(t.Path())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if actual == t.Checksum() {
			verified++
			continue
		}

		errs = append(errs, corruptError(t, actual))
		if opts.Prune {
			if err := a.cache.Remove(t.Path()); err != nil {
				errs = append(errs, err)
				continue
			}
			a.logger.Warn("removed corrupt archive " + t.Path())
		}
	}

	a.logger.Info(fmt.Sprintf("verified %d, failed %d, missing %d", verified, len(errs), missing))

	if len(errs) > 0 {
		return errors.Join(append([]error{domain.ErrVerifyFailed}, errs...)...)
	}
	return nil
}

func corruptError(t domain.FetchTarget, actual string) error {
	var err error = zerr.New("cached archive does not match its checksum")
	err = zerr.With(err, "crate", t.ID())
	err = zerr.With(err, "path", t.Path())
	err = zerr.With(err, "expected", t.Checksum())
	err = zerr.With(err, "actual", actual)
	return domain.NewError(domain.ErrChecksumMismatch, err)
}
