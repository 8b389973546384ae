// Package extraction implements the first pipeline stage: parsing raw
// document bytes into text, typed entities, and tables with zero
// interpretation. Everything the extractor emits carries a literal source
// location; sections it cannot read are flagged, never dropped.
package extraction

import "time"

// EntityType identifies the kind of span a detector matched.
type EntityType string

// Entity types recognized by the regex detectors.
const (
	EntityMoney      EntityType = "money"
	EntityPercentage EntityType = "percentage"
	EntityEmail      EntityType = "email"
	EntityURL        EntityType = "url"
	EntityDate       EntityType = "date"
)

// ExtractedEntity is a literal span pulled from the document. Context holds
// the surrounding text so a reviewer can verify the match without reopening
// the source.
type ExtractedEntity struct {
	Type           EntityType `json:"type"`
	Value          string     `json:"value"`
	SourceLocation string     `json:"source_location"`
	Confidence     float64    `json:"confidence"`
	Context        string     `json:"context,omitempty"`
}

// ExtractedTable is a table pulled from the document. Malformed is set when
// row widths disagree with the header row; malformed tables carry reduced
// confidence rather than being discarded.
type ExtractedTable struct {
	Location   string     `json:"location"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	Confidence float64    `json:"confidence"`
	Malformed  bool       `json:"malformed"`
}

// Ambiguity flags a section that yielded no extractable content.
type Ambiguity struct {
	Location string `json:"location"`
	Issue    string `json:"issue"`
}

// Result is the complete output of one extraction. It is immutable once
// produced; downstream stages read it and annotate their own results.
type Result struct {
	Text       string `json:"text"`
	TextLength int    `json:"text_length"`

	Entities []ExtractedEntity `json:"entities"`
	Tables   []ExtractedTable  `json:"tables"`
	Metadata map[string]string `json:"metadata,omitempty"`

	ConfidenceScore   float64     `json:"confidence_score"`
	Ambiguities       []Ambiguity `json:"ambiguities,omitempty"`
	CorruptedSections []string    `json:"corrupted_sections,omitempty"`

	// SourceHash is the SHA-256 of the input bytes: the identity of the
	// input and the idempotency key for re-runs.
	SourceHash string `json:"source_hash"`

	Method      string    `json:"extraction_method"`
	ExtractedAt time.Time `json:"extracted_at"`
}
