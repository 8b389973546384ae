// Package analysis implements the second pipeline stage: interpreting
// extraction output into classified, cited metrics and insights. The model
// is constrained to the extracted text; the review rules that decide
// whether a human needs to look are deterministic post-processing and
// never require another model call.
package analysis

import "time"

// Classification identifies the document type.
type Classification string

// Document classifications.
const (
	PitchDeckPreSeed         Classification = "pitch_deck_pre_seed"
	PitchDeckSeed            Classification = "pitch_deck_seed"
	PitchDeckSeriesA         Classification = "pitch_deck_series_a"
	PitchDeckSeriesBPlus     Classification = "pitch_deck_series_b_plus"
	FinancialReportQuarterly Classification = "financial_report_quarterly"
	FinancialReportAnnual    Classification = "financial_report_annual"
	LegalTermSheet           Classification = "legal_term_sheet"
	LegalContract            Classification = "legal_contract"
	MeetingNotes             Classification = "meeting_notes"
	MarketResearch           Classification = "market_research"
	CompetitorAnalysis       Classification = "competitor_analysis"
	Other                    Classification = "other"
)

// Grounding classifies how directly the source supports a fact.
type Grounding string

// Grounding levels.
const (
	GroundingStated   Grounding = "stated"
	GroundingImplied  Grounding = "implied"
	GroundingInferred Grounding = "inferred"
)

// Importance ranks how much a gap matters.
type Importance string

// Gap importance levels.
const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// MetricValue is a single quantitative finding. A non-null Value with an
// empty SourceCitation is a fabrication, not a style problem; the verifier
// rejects it.
type MetricValue struct {
	Value          any     `json:"value"`
	Unit           string  `json:"unit,omitempty"`
	SourceCitation string  `json:"source_citation"`
	Confidence     float64 `json:"confidence"`
	Note           string  `json:"note,omitempty"`
	Stated         bool    `json:"stated"`
}

// Insight is a qualitative observation grounded in the extracted data.
type Insight struct {
	Claim              string    `json:"claim"`
	Category           string    `json:"category"`
	SupportingEvidence []string  `json:"supporting_evidence"`
	Confidence         float64   `json:"confidence"`
	StatedVsImplied    Grounding `json:"stated_vs_implied"`
}

// Gap records information the document does not disclose. Missing data is
// reported, never guessed at.
type Gap struct {
	Metric     string     `json:"metric"`
	Importance Importance `json:"importance"`
	Note       string     `json:"note"`
}

// Result is the complete output of one analysis.
type Result struct {
	Classification           Classification `json:"classification"`
	ClassificationConfidence float64        `json:"classification_confidence"`

	KeyMetrics    map[string]MetricValue `json:"key_metrics"`
	Insights      []Insight              `json:"insights"`
	Risks         []Insight              `json:"risks_identified"`
	Opportunities []Insight              `json:"opportunities_identified"`

	ConfidenceBreakdown map[string]float64 `json:"confidence_breakdown"`
	OverallConfidence   float64            `json:"overall_confidence"`
	DataCompleteness    float64            `json:"data_completeness"`
	InternalConsistency bool               `json:"internal_consistency"`
	Inconsistencies     []string           `json:"inconsistencies"`

	Gaps []Gap `json:"gaps"`

	RequiresHumanReview bool   `json:"requires_human_review"`
	ReviewReason        string `json:"review_reason,omitempty"`

	ExtractionConfidence float64   `json:"extraction_confidence"`
	AnalyzedAt           time.Time `json:"analyzed_at"`
}

// DocumentContext carries optional metadata about the source document.
type DocumentContext struct {
	Filename   string
	UploadedAt time.Time
}
