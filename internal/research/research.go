// Package research holds the data types for external claim verification.
// Verification itself runs outside this service; results arrive as input
// to question generation and content generation, which treat them as one
// more cited source alongside the document.
package research

import "time"

// VerificationStatus records the outcome of checking a claim against
// public sources.
type VerificationStatus string

const (
	StatusConfirmed    VerificationStatus = "confirmed"
	StatusContradicted VerificationStatus = "contradicted"
	StatusNotFound     VerificationStatus = "not_found"
	StatusUncertain    VerificationStatus = "uncertain"
)

// Reliability rates a public source.
type Reliability string

const (
	ReliabilityHigh   Reliability = "high"
	ReliabilityMedium Reliability = "medium"
	ReliabilityLow    Reliability = "low"
)

// PublicSource is one source consulted during verification.
type PublicSource struct {
	URL            string      `json:"url"`
	Title          string      `json:"title"`
	AccessedDate   time.Time   `json:"accessed_date"`
	Excerpt        string      `json:"excerpt,omitempty"`
	Reliability    Reliability `json:"reliability"`
	RelevanceScore float64     `json:"relevance_score"`
}

// Discrepancy is a conflict between a document claim and public data.
type Discrepancy struct {
	ClaimFromDocument   string         `json:"claim_from_document"`
	FindingFromResearch string         `json:"finding_from_research"`
	Severity            string         `json:"severity"`
	Sources             []PublicSource `json:"sources"`
}

// Result is the verification outcome for a single claim.
type Result struct {
	Claim                string             `json:"claim"`
	ClaimSource          string             `json:"claim_source"`
	VerificationStatus   VerificationStatus `json:"verification_status"`
	PublicSources        []PublicSource     `json:"public_sources"`
	SourceCount          int                `json:"source_count"`
	Discrepancies        []Discrepancy      `json:"discrepancies"`
	ConfidenceAdjustment float64            `json:"confidence_adjustment"`
	ResearchedAt         time.Time          `json:"researched_at"`
}
