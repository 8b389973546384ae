// Package evidence links generated content back to the source material it
// was derived from. Every non-null field of a piece of generated content
// must trace to at least one source quote; fields that cannot be traced are
// treated as possible fabrications downstream.
package evidence

import "github.com/google/uuid"

// SourceSegment is one unit of source material a claim can be traced to.
type SourceSegment struct {
	Table   string    `json:"source_table"`
	ID      uuid.UUID `json:"source_id"`
	Field   string    `json:"source_field"`
	Text    string    `json:"text"`
	Speaker string    `json:"speaker,omitempty"`
}

// Pointer links one generated field to a supporting quote. ContentField
// names the generated field the quote supports so verification can check
// per-field coverage rather than guessing from the source column name.
type Pointer struct {
	SourceTable    string    `json:"source_table"`
	SourceID       uuid.UUID `json:"source_id"`
	SourceField    string    `json:"source_field"`
	ContentField   string    `json:"content_field"`
	Quote          string    `json:"quote"`
	RelevanceScore float64   `json:"relevance_score"`
}

// Content is one generated item awaiting evidence matching. Data values
// may be nil; nil means the source did not state the fact, which is the
// correct output for missing information.
type Content struct {
	ContentType string         `json:"content_type"`
	Data        map[string]any `json:"data"`
	Confidence  float64        `json:"confidence"`
}

// Matched is content annotated with its evidence and traceability score.
type Matched struct {
	Content      Content   `json:"content"`
	Evidence     []Pointer `json:"evidence"`
	Traceability float64   `json:"traceability_score"`
}

// Matcher finds supporting evidence for generated content. The default is
// lexical; a semantic implementation can be swapped in without touching
// the workflow.
type Matcher interface {
	Match(content Content, segments []SourceSegment) Matched
}

// Unevidenced returns the named fields that carry a value but have no
// evidence pointer. Nil values are fine; they mean missing data.
func Unevidenced(matched Matched, fields []string) []string {
	covered := make(map[string]bool, len(matched.Evidence))
	for _, pointer := range matched.Evidence {
		covered[pointer.ContentField] = true
	}

	var missing []string
	for _, field := range fields {
		value, ok := matched.Content.Data[field]
		if !ok || value == nil {
			continue
		}
		if !covered[field] {
			missing = append(missing, field)
		}
	}
	return missing
}
