package ports

import "time"

// Renderer presents per-crate progress.
// It is driven by span events so that the pipeline stays unaware of presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlan is called once before any crate starts.
	OnPlan(cached, pending []string)

	// OnTaskStart is called when work on a crate begins.
	OnTaskStart(spanID, name string, startTime time.Time)

	// OnTaskComplete is called when work on a crate ends.
	// err is nil if the crate was fetched.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
