// Package generation produces citation-annotated narrative documents from
// analysis output. Every factual sentence carries an inline footnote
// marker; coverage and confidence are computed from the text itself so the
// verifier can re-check them independently.
package generation

import "time"

// ContentType selects the report template.
type ContentType string

const (
	DueDiligence        ContentType = "due_diligence"
	SwotAnalysis        ContentType = "swot_analysis"
	CompetitiveAnalysis ContentType = "competitive_analysis"
	InvestmentMemo      ContentType = "investment_memo"
	ExecutiveSummary    ContentType = "executive_summary"
	RiskAssessment      ContentType = "risk_assessment"
	MarketAnalysis      ContentType = "market_analysis"
	FinancialSummary    ContentType = "financial_summary"
)

// ConfidenceLevel buckets combined confidence.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Citation source types.
const (
	SourceDocument = "document"
	SourceResearch = "research"
	SourceAnalysis = "analysis"
)

// Citation is one footnote definition from the generated markdown.
type Citation struct {
	RefID      string `json:"ref_id"`
	SourceType string `json:"source_type"`
	SourceText string `json:"source_text"`
	URL        string `json:"url,omitempty"`
}

// Content is a generated document with its quality metrics.
type Content struct {
	ContentType     ContentType `json:"content_type"`
	ContentMarkdown string      `json:"content_markdown"`

	Citations        []Citation      `json:"citations"`
	CitationCoverage float64         `json:"citation_coverage"`
	ConfidenceLevel  ConfidenceLevel `json:"confidence_level"`

	Disclaimer  string    `json:"disclaimer"`
	WordCount   int       `json:"word_count"`
	GeneratedAt time.Time `json:"generated_at"`
}
