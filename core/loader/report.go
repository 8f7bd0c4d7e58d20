package loader

import (
	"time"

	"zhi-theme/core/dependency"
)

// Status is the outcome of one item.
type Status string

const (
	StatusLoaded               Status = "loaded"
	StatusSkippedFormat        Status = "skipped_format"
	StatusSkippedRuntime       Status = "skipped_runtime"
	StatusSkippedDuplicate     Status = "skipped_duplicate"
	StatusResolutionFailed     Status = "resolution_failed"
	StatusInitializationFailed Status = "initialization_failed"

	// StatusPending marks an item Plan would resolve. It never appears in a Report.
	StatusPending Status = "pending"
)

// Skipped reports whether the item was never attempted.
func (s Status) Skipped() bool {
	return s == StatusSkippedFormat || s == StatusSkippedRuntime || s == StatusSkippedDuplicate
}

// Failed reports whether the item was attempted and failed.
func (s Status) Failed() bool {
	return s == StatusResolutionFailed || s == StatusInitializationFailed
}

// Outcome records what happened to one item.
type Outcome struct {
	Libpath    string                  `json:"libpath"`
	ImportType dependency.ImportType   `json:"import_type"`
	BaseType   dependency.BasePathType `json:"base_type"`
	Status     Status                  `json:"status"`
	// Hook is the module kind that was dispatched, empty when nothing was resolved.
	Hook     string        `json:"hook,omitempty"`
	Output   any           `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Report collects the outcomes of one Load call, in input order.
type Report struct {
	Runtime    dependency.Runtime `json:"runtime"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Outcomes   []Outcome          `json:"outcomes"`
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Summary returns loaded, skipped and failed totals.
func (r *Report) Summary() (loaded, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch {
		case o.Status == StatusLoaded:
			loaded++
		case o.Status.Skipped():
			skipped++
		case o.Status.Failed():
			failed++
		}
	}
	return loaded, skipped, failed
}
