package domain

import "fmt"

// IngestReport tracks counts and captured diagnostics from one ingest
// operation. Batch loaders return it instead of swallowing failures, so
// callers see exactly what was skipped and why.
type IngestReport struct {
	Created          int
	Updated          int
	Skipped          int
	SkippedAmbiguous int
	Errors           []string
}

// Add merges another report into this one.
func (r *IngestReport) Add(other IngestReport) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.SkippedAmbiguous += other.SkippedAmbiguous
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *IngestReport) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Failed reports whether any row-level error was captured.
func (r *IngestReport) Failed() bool {
	return len(r.Errors) > 0
}

// Summary returns a human-readable summary of the ingest operation.
func (r *IngestReport) Summary() string {
	return fmt.Sprintf(
		"created=%d updated=%d skipped=%d ambiguous=%d errors=%d",
		r.Created, r.Updated, r.Skipped, r.SkippedAmbiguous, len(r.Errors),
	)
}
