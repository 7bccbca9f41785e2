package model

import "time"

// CredibilityScore summarizes an entire transcript's claim accuracy.
// Derived fresh from the full verdict list on every run; never stored
// incrementally.
type CredibilityScore struct {
	Score         float64        `json:"score"` // 0-100
	Label         string         `json:"label"` // e.g., "High credibility"
	VerdictCounts map[string]int `json:"verdict_counts"`
}

// Report is the final result payload for one transcript job.
// Consumed read-only by report renderers and any UI.
type Report struct {
	Source           string              `json:"source"`     // Caller-supplied source label
	AnalyzedAt       time.Time           `json:"analyzed_at"`
	TotalClaims      int                 `json:"total_claims"`
	CheckedClaims    int                 `json:"checked_claims"`
	CredibilityScore CredibilityScore    `json:"credibility_score"`
	FactChecks       []AggregatedVerdict `json:"fact_checks"`
	Summary          string              `json:"summary"`
	AnalysisNotes    []string            `json:"analysis_notes,omitempty"` // Degraded-mode labels (e.g., skipped checkers)
}

// JobStatus is the lifecycle state of a transcript job.
type JobStatus string

const (
	StatusCreated     JobStatus = "created"
	StatusExtracting  JobStatus = "extracting"
	StatusFiltering   JobStatus = "filtering"
	StatusChecking    JobStatus = "checking"
	StatusAggregating JobStatus = "aggregating"
	StatusSummarizing JobStatus = "summarizing"
	StatusComplete    JobStatus = "complete"
	StatusError       JobStatus = "error"
)

// Terminal reports whether the status is an absorbing state.
// Once terminal, a job is immutable.
func (s JobStatus) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// JobUpdate is one write into the job/progress sink.
type JobUpdate struct {
	Status   JobStatus `json:"status"`
	Progress int       `json:"progress"` // Monotonically increasing, 0-100
	Message  string    `json:"message,omitempty"`
	Result   *Report   `json:"result,omitempty"` // Set atomically and wholly on completion
	Error    string    `json:"error,omitempty"`
}
