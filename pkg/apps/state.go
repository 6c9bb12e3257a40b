package apps

import (
	"math"
	"time"

	"github.com/agentstation/utc"
)

// Progress reports how far a batch has advanced.
type Progress struct {
	Processed int `json:"processed" yaml:"processed"`
	Total     int `json:"total" yaml:"total"`
}

// Percent returns processed/total as a percentage in [0, 100].
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Processed) / float64(p.Total) * 100
}

// Rounded returns the percentage rounded to the nearest integer.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent()))
}

// Done reports whether every identifier has been processed.
func (p Progress) Done() bool {
	return p.Processed >= p.Total
}

// State is the accumulated outcome of one batch run.
type State struct {
	RunID      string      `json:"runId" yaml:"runId"`
	Release    string      `json:"release" yaml:"release"`
	Results    []Aggregate `json:"results" yaml:"results"`
	Progress   Progress    `json:"progress" yaml:"progress"`
	StartedAt  utc.Time    `json:"startedAt" yaml:"startedAt"`
	FinishedAt *utc.Time   `json:"finishedAt,omitempty" yaml:"finishedAt,omitempty"`
}

// Snapshot returns a copy whose Results slice does not alias the receiver's.
func (s *State) Snapshot() State {
	cp := *s
	cp.Results = append([]Aggregate(nil), s.Results...)
	return cp
}

// Valid returns the exportable results in input order.
func (s *State) Valid() []Aggregate {
	var out []Aggregate
	for i := range s.Results {
		if s.Results[i].Exportable() {
			out = append(out, s.Results[i])
		}
	}
	return out
}

// Counts returns the number of successful, deprecated and failed results.
func (s *State) Counts() (succeeded, deprecated, failed int) {
	for i := range s.Results {
		switch {
		case !s.Results[i].Succeeded():
			failed++
		case s.Results[i].Deprecated:
			deprecated++
		default:
			succeeded++
		}
	}
	return succeeded, deprecated, failed
}

// Duration returns how long the run took, or zero while it is still running.
func (s *State) Duration() time.Duration {
	if s.FinishedAt == nil {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
