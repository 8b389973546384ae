package analysis_test

import (
	"math"
	"strings"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
)

func TestBreakdown(t *testing.T) {
	tests := []struct {
		name           string
		extraction     float64
		classification float64
		metrics        map[string]analysis.MetricValue
		insights       []analysis.Insight
		expected       map[string]float64
	}{
		{
			name:           "empty collections score zero",
			extraction:     1.0,
			classification: 0.9,
			expected: map[string]float64{
				"extraction":     1.0,
				"classification": 0.9,
				"metrics":        0.0,
				"insights":       0.0,
			},
		},
		{
			name:           "means over populated collections",
			extraction:     0.8,
			classification: 1.0,
			metrics: map[string]analysis.MetricValue{
				"revenue": {Confidence: 1.0},
				"users":   {Confidence: 0.5},
			},
			insights: []analysis.Insight{
				{Confidence: 0.9},
				{Confidence: 0.6},
				{Confidence: 0.3},
			},
			expected: map[string]float64{
				"extraction":     0.8,
				"classification": 1.0,
				"metrics":        0.75,
				"insights":       0.6,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			breakdown := analysis.Breakdown(test.extraction, test.classification, test.metrics, test.insights)
			for key, expected := range test.expected {
				if math.Abs(breakdown[key]-expected) > 1e-9 {
					t.Errorf("breakdown[%q] = %v, expected %v", key, breakdown[key], expected)
				}
			}
		})
	}
}

func TestOverall(t *testing.T) {
	breakdown := map[string]float64{
		"extraction":     1.0,
		"classification": 0.8,
		"metrics":        0.6,
		"insights":       0.6,
	}
	if overall := analysis.Overall(breakdown); math.Abs(overall-0.75) > 1e-9 {
		t.Errorf("Overall() = %v, expected 0.75", overall)
	}
	if overall := analysis.Overall(nil); overall != 0 {
		t.Errorf("Overall(nil) = %v, expected 0", overall)
	}
}

func TestReviewDecision(t *testing.T) {
	tests := []struct {
		name           string
		result         *analysis.Result
		expectedReview bool
		reasonContains string
	}{
		{
			name: "clean result passes",
			result: &analysis.Result{
				OverallConfidence:    0.85,
				ExtractionConfidence: 0.95,
			},
			expectedReview: false,
		},
		{
			name: "low overall confidence",
			result: &analysis.Result{
				OverallConfidence:    0.65,
				ExtractionConfidence: 0.95,
			},
			expectedReview: true,
			reasonContains: "overall confidence",
		},
		{
			name: "low extraction quality",
			result: &analysis.Result{
				OverallConfidence:    0.8,
				ExtractionConfidence: 0.5,
			},
			expectedReview: true,
			reasonContains: "extraction quality",
		},
		{
			name: "inconsistencies escalate",
			result: &analysis.Result{
				OverallConfidence:    0.9,
				ExtractionConfidence: 0.9,
				Inconsistencies:      []string{"revenue on page 2 contradicts page 8"},
			},
			expectedReview: true,
			reasonContains: "inconsistencies",
		},
		{
			name: "critical gap escalates",
			result: &analysis.Result{
				OverallConfidence:    0.9,
				ExtractionConfidence: 0.9,
				Gaps: []analysis.Gap{
					{Metric: "burn_rate", Importance: analysis.ImportanceCritical},
				},
			},
			expectedReview: true,
			reasonContains: "Critical",
		},
		{
			name: "non-critical gaps pass",
			result: &analysis.Result{
				OverallConfidence:    0.9,
				ExtractionConfidence: 0.9,
				Gaps: []analysis.Gap{
					{Metric: "team_size", Importance: analysis.ImportanceMedium},
				},
			},
			expectedReview: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			review, reason := analysis.ReviewDecision(test.result)
			if review != test.expectedReview {
				t.Errorf("ReviewDecision() = %v, expected %v", review, test.expectedReview)
			}
			if test.reasonContains != "" && !strings.Contains(reason, test.reasonContains) {
				t.Errorf("reason %q does not contain %q", reason, test.reasonContains)
			}
		})
	}
}
