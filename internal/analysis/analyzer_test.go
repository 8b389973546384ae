package analysis_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubClient struct {
	response string
	request  llm.Request
	err      error
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.request = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const analysisResponse = `{
	"classification": "pitch_deck_seed",
	"classification_confidence": 0.9,
	"key_metrics": {
		"revenue": {
			"value": "$2M ARR",
			"unit": "USD",
			"source_citation": "page 8, revenue chart",
			"confidence": 1.0,
			"stated": true
		}
	},
	"insights": [{
		"claim": "Revenue doubled between 2023 and 2024",
		"category": "financial",
		"supporting_evidence": ["page 8"],
		"confidence": 0.9,
		"stated_vs_implied": "stated"
	}],
	"risks_identified": [],
	"opportunities_identified": [],
	"gaps": [],
	"inconsistencies": [],
	"data_completeness": 0.8
}`

func TestAnalyze(t *testing.T) {
	client := &stubClient{response: analysisResponse}
	analyzer := analysis.New(client, discardLogger())

	ext := &extraction.Result{
		Text:            "Revenue: $2M ARR (page 8)",
		ConfidenceScore: 1.0,
	}

	result, err := analyzer.Analyze(context.Background(), ext, &analysis.DocumentContext{Filename: "deck.pdf"})
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if result.Classification != analysis.PitchDeckSeed {
		t.Errorf("classification = %q, expected pitch_deck_seed", result.Classification)
	}
	if result.ExtractionConfidence != 1.0 {
		t.Errorf("extraction confidence = %v, expected 1.0", result.ExtractionConfidence)
	}
	// (1.0 + 0.9 + 1.0 + 0.9) / 4 = 0.95
	if result.OverallConfidence < 0.94 || result.OverallConfidence > 0.96 {
		t.Errorf("overall confidence = %v, expected 0.95", result.OverallConfidence)
	}
	if result.RequiresHumanReview {
		t.Errorf("clean result flagged for review: %s", result.ReviewReason)
	}
	if !result.InternalConsistency {
		t.Error("expected internal consistency with no inconsistencies")
	}

	if client.request.Schema.Name != "analysis_result" || !client.request.Schema.Strict {
		t.Errorf("unexpected schema binding: %+v", client.request.Schema)
	}
	if !strings.Contains(client.request.User, "Revenue: $2M ARR") {
		t.Error("user prompt missing extracted text")
	}
	if !strings.Contains(client.request.System, "ZERO hallucinations") {
		t.Error("system prompt missing grounding rules")
	}
}

func TestAnalyzeFencedResponse(t *testing.T) {
	client := &stubClient{response: "```json\n" + analysisResponse + "\n```"}
	analyzer := analysis.New(client, discardLogger())

	result, err := analyzer.Analyze(context.Background(), &extraction.Result{Text: "x", ConfidenceScore: 0.9}, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if result.Classification != analysis.PitchDeckSeed {
		t.Errorf("classification = %q, expected pitch_deck_seed", result.Classification)
	}
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	client := &stubClient{response: "not json"}
	analyzer := analysis.New(client, discardLogger())

	if _, err := analyzer.Analyze(context.Background(), &extraction.Result{ConfidenceScore: 1.0}, nil); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
