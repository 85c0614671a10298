package domain

// Report is the persisted record of a run.
type Report struct {
	RunID               string        `yaml:"run_id"`
	Lockfile            string        `yaml:"lockfile"`
	LockfileFingerprint string        `yaml:"lockfile_fingerprint"`
	Registry            string        `yaml:"registry"`
	Cached              int           `yaml:"cached"`
	Fetched             int           `yaml:"fetched"`
	Failed              int           `yaml:"failed"`
	Crates              []CrateReport `yaml:"crates"`
}

// CrateReport describes the outcome for one crate.
type CrateReport struct {
	Name    string  `yaml:"name"`
	Version string  `yaml:"version"`
	Status  Outcome `yaml:"status"`
	Path    string  `yaml:"path"`
	Kind    string  `yaml:"kind,omitempty"`
	Error   string  `yaml:"error,omitempty"`
}

// NewReport builds a report from a summary. Cached crates come first, followed by
// pending crates in submission order.
func NewReport(s *Summary, lockfile, fingerprint, registry string) *Report {
	r := &Report{
		RunID:               s.RunID,
		Lockfile:            lockfile,
		LockfileFingerprint: fingerprint,
		Registry:            registry,
		Cached:              len(s.Cached),
		Fetched:             s.FetchedCount(),
		Failed:              s.FailedCount(),
		Crates:              make([]CrateReport, 0, len(s.Cached)+len(s.Results)),
	}

	for _, t := range s.Cached {
		r.Crates = append(r.Crates, CrateReport{
			Name:    t.Name(),
			Version: t.Version(),
			Status:  OutcomeCached,
			Path:    t.Path(),
		})
	}

	for _, res := range s.Results {
		cr := CrateReport{
			Name:    res.Target.Name(),
			Version: res.Target.Version(),
			Status:  res.Outcome,
			Path:    res.Target.Path(),
		}
		if res.Err != nil {
			cr.Kind = KindOf(res.Err)
			cr.Error = res.Err.Error()
		}
		r.Crates = append(r.Crates, cr)
	}

	return r
}
