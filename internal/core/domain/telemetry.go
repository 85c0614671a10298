package domain

// Span and attribute names shared by the pipeline and the telemetry adapters.
const (
	// SpanRun names the span enclosing one pipeline run.
	SpanRun = "fetch"

	// EventPlan is added to the run span once cached and pending crates are known.
	EventPlan = "plan"

	AttrRunID        = "run.id"
	AttrCrateName    = "crate.name"
	AttrCrateVersion = "crate.version"
	AttrCratePath    = "crate.path"
	AttrCrateURL     = "crate.url"
	AttrErrorKind    = "error.kind"
)
