// Package verification is the final gate before generated content is
// released. It re-derives citation coverage from the text rather than
// trusting the generator's own numbers, and it rejects outright on any
// critical issue.
package verification

import "time"

// Status is the verification verdict.
type Status string

const (
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusRequiresReview Status = "requires_review"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Output modes.
const (
	OutputInternal         = "internal"
	OutputExternalRedacted = "external_redacted"
	OutputExternalFull     = "external_full"
)

// Issue is one problem found during verification.
type Issue struct {
	Type        string   `json:"issue_type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Result is the complete verification outcome.
type Result struct {
	Status   Status `json:"status"`
	Approved bool   `json:"approved"`

	Issues         []Issue `json:"issues"`
	CriticalIssues int     `json:"critical_issues"`
	HighIssues     int     `json:"high_issues"`
	MediumIssues   int     `json:"medium_issues"`
	LowIssues      int     `json:"low_issues"`

	CitationCoverageActual float64 `json:"citation_coverage_actual"`
	PIIDetected            bool    `json:"pii_detected"`
	HallucinationDetected  bool    `json:"hallucination_detected"`
	FormatValid            bool    `json:"format_valid"`

	FinalConfidence float64 `json:"final_confidence"`

	Recommendations []string  `json:"recommendations"`
	VerifiedAt      time.Time `json:"verified_at"`
}

// Options configure one verification pass.
type Options struct {
	OutputMode          string
	MinCitationCoverage float64
	AllowPII            bool
}

// DefaultOptions verify for internal use with 90% minimum coverage.
func DefaultOptions() Options {
	return Options{
		OutputMode:          OutputInternal,
		MinCitationCoverage: 0.9,
	}
}
