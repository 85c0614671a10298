package domain

import "errors"

// Outcome is the terminal state of one crate in a run.
type Outcome string

const (
	// OutcomeCached means the archive was already present before the run.
	OutcomeCached Outcome = "cached"
	// OutcomeFetched means the archive was downloaded, verified and written.
	OutcomeFetched Outcome = "fetched"
	// OutcomeFailed means resolving, downloading, verifying or writing failed.
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome of one pending target.
type Result struct {
	Target  FetchTarget
	Outcome Outcome
	Err     error
}

// Summary aggregates a pipeline run.
type Summary struct {
	// RunID identifies the run in logs and reports.
	RunID string
	// Cached are the targets that were present before the run.
	Cached []FetchTarget
	// Results holds one entry per pending target, in submission order.
	Results []Result
}

// FetchedCount returns how many targets were written during the run.
func (s *Summary) FetchedCount() int {
	return s.count(OutcomeFetched)
}

// FailedCount returns how many targets failed.
func (s *Summary) FailedCount() int {
	return s.count(OutcomeFailed)
}

// Err joins the errors of all failed targets in submission order.
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

func (s *Summary) count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}
