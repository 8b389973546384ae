package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/formatting"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

// Analyzer drives one analysis call and its deterministic post-processing.
type Analyzer struct {
	client llm.Client
	logger *slog.Logger
}

func New(client llm.Client, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		logger: logger.With("system", "analysis"),
	}
}

// Analyze interprets extraction output into a classified, cited result.
// Everything after the model call is pure computation, so the confidence
// breakdown and review decision are reproducible from the stored result.
func (a *Analyzer) Analyze(ctx context.Context, ext *extraction.Result, docCtx *DocumentContext) (*Result, error) {
	content, err := a.client.Complete(ctx, llm.Request{
		System: systemPrompt,
		User:   buildUserPrompt(ext, docCtx),
		Schema: &llm.Schema{
			Name:   "analysis_result",
			Spec:   json.RawMessage(analysisSchema),
			Strict: true,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis completion: %w", err)
	}

	response, err := formatting.Parse[modelResponse](content)
	if err != nil {
		return nil, fmt.Errorf("analysis response: %w", err)
	}

	result := a.assemble(response, ext.ConfidenceScore)

	a.logger.Info("document analyzed",
		"classification", result.Classification,
		"overall_confidence", result.OverallConfidence,
		"metrics", len(result.KeyMetrics),
		"requires_review", result.RequiresHumanReview)

	return result, nil
}

func (a *Analyzer) assemble(response modelResponse, extractionConfidence float64) *Result {
	result := &Result{
		Classification:           Classification(response.Classification),
		ClassificationConfidence: response.ClassificationConfidence,
		KeyMetrics:               response.KeyMetrics,
		Insights:                 response.Insights,
		Risks:                    response.Risks,
		Opportunities:            response.Opportunities,
		DataCompleteness:         response.DataCompleteness,
		InternalConsistency:      len(response.Inconsistencies) == 0,
		Inconsistencies:          response.Inconsistencies,
		Gaps:                     response.Gaps,
		ExtractionConfidence:     extractionConfidence,
		AnalyzedAt:               time.Now().UTC(),
	}
	if result.KeyMetrics == nil {
		result.KeyMetrics = map[string]MetricValue{}
	}

	result.ConfidenceBreakdown = Breakdown(extractionConfidence, response.ClassificationConfidence, result.KeyMetrics, result.Insights)
	result.OverallConfidence = Overall(result.ConfidenceBreakdown)
	result.RequiresHumanReview, result.ReviewReason = ReviewDecision(result)

	return result
}
