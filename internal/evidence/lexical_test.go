package evidence_test

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
)

func segment(text string) evidence.SourceSegment {
	return evidence.SourceSegment{
		Table: "transcript_segments",
		ID:    uuid.New(),
		Field: "text",
		Text:  text,
	}
}

func TestLexicalMatch(t *testing.T) {
	matcher := evidence.NewLexicalMatcher()

	segments := []evidence.SourceSegment{
		segment("We decided to migrate the billing system to the new platform."),
		segment("Anna will own the migration work."),
		segment("Lunch orders are due by noon."),
	}

	content := evidence.Content{
		ContentType: "decision",
		Data: map[string]any{
			"decision":  "Migrate the billing system to the new platform",
			"owner":     "Anna",
			"rationale": nil,
		},
		Confidence: 0.8,
	}

	matched := matcher.Match(content, segments)

	if len(matched.Evidence) == 0 {
		t.Fatal("expected evidence pointers")
	}
	for _, pointer := range matched.Evidence {
		if pointer.RelevanceScore != 0.85 {
			t.Errorf("relevance = %v, expected 0.85", pointer.RelevanceScore)
		}
		if pointer.ContentField == "" {
			t.Error("pointer missing content field")
		}
		if pointer.SourceTable != "transcript_segments" {
			t.Errorf("source table = %q", pointer.SourceTable)
		}
	}

	// Two non-null fields, both evidenced by distinct segments.
	if matched.Traceability < 0.99 {
		t.Errorf("traceability = %v, expected 1.0", matched.Traceability)
	}
}

func TestQuoteTruncationRuneSafe(t *testing.T) {
	matcher := evidence.NewLexicalMatcher()

	// A 19-byte prefix followed by 3-byte runes puts the 200-byte cap
	// mid-rune; the stored quote must still be valid UTF-8.
	text := "mötesanteckning x " + strings.Repeat("€", 100)
	content := evidence.Content{
		ContentType: "decision",
		Data:        map[string]any{"decision": "mötesanteckning"},
	}

	matched := matcher.Match(content, []evidence.SourceSegment{segment(text)})
	if len(matched.Evidence) == 0 {
		t.Fatal("expected evidence pointer")
	}

	quote := matched.Evidence[0].Quote
	if len(quote) > 200 {
		t.Errorf("quote length = %d, want at most 200", len(quote))
	}
	if !utf8.ValidString(quote) {
		t.Errorf("quote is not valid UTF-8: %q", quote)
	}
}

func TestLexicalMatchNoEvidence(t *testing.T) {
	matcher := evidence.NewLexicalMatcher()

	content := evidence.Content{
		ContentType: "decision",
		Data:        map[string]any{"decision": "quarterly zebra acquisition"},
	}
	matched := matcher.Match(content, []evidence.SourceSegment{
		segment("Nothing relevant was said."),
	})

	if len(matched.Evidence) != 0 {
		t.Errorf("expected no evidence, got %d pointers", len(matched.Evidence))
	}
	if matched.Traceability != 0 {
		t.Errorf("traceability = %v, expected 0", matched.Traceability)
	}
}

func TestLexicalMatchEmptyContent(t *testing.T) {
	matched := evidence.NewLexicalMatcher().Match(evidence.Content{}, nil)
	if matched.Traceability != 0 {
		t.Errorf("traceability = %v, expected 0 for empty content", matched.Traceability)
	}
}

func TestTraceabilityCap(t *testing.T) {
	matcher := evidence.NewLexicalMatcher()

	// One non-null field matched by several distinct segments must not
	// exceed 1.0.
	segments := []evidence.SourceSegment{
		segment("the migration plan was approved"),
		segment("we reviewed the migration plan today"),
		segment("migration plan status is green"),
	}
	matched := matcher.Match(evidence.Content{
		Data: map[string]any{"decision": "migration plan approved"},
	}, segments)

	if math.Abs(matched.Traceability-1.0) > 1e-9 {
		t.Errorf("traceability = %v, expected cap at 1.0", matched.Traceability)
	}
}

func TestUnevidenced(t *testing.T) {
	matched := evidence.Matched{
		Content: evidence.Content{
			Data: map[string]any{
				"owner_name":  "Anna Svensson",
				"owner_email": "anna@example.org",
				"due_date":    nil,
			},
		},
		Evidence: []evidence.Pointer{
			{ContentField: "owner_name", Quote: "Anna Svensson will own this"},
		},
	}

	missing := evidence.Unevidenced(matched, []string{"owner_name", "owner_email", "due_date"})
	if len(missing) != 1 || missing[0] != "owner_email" {
		t.Errorf("Unevidenced() = %v, expected [owner_email]", missing)
	}
}
