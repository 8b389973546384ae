package generation

import (
	"encoding/json"
	"fmt"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/questions"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/research"
)

// Input carries everything the generator may draw on. Research and
// questions are optional; the document analysis is not.
type Input struct {
	ContentType  ContentType
	Analysis     *analysis.Result
	Research     []research.Result
	Questions    *questions.Set
	CompanyName  string
	DocumentDate string
}

// buildContext flattens the inputs into the JSON structure handed to the
// model. Only source-derived data goes in; the model sees nothing it
// could not cite.
func buildContext(input Input) (string, error) {
	companyName := input.CompanyName
	if companyName == "" {
		companyName = "Unknown"
	}
	documentDate := input.DocumentDate
	if documentDate == "" {
		documentDate = "Unknown"
	}

	metrics := map[string]map[string]any{}
	for name, metric := range input.Analysis.KeyMetrics {
		metrics[name] = map[string]any{
			"value":      fmt.Sprintf("%v", metric.Value),
			"source":     metric.SourceCitation,
			"confidence": metric.Confidence,
			"stated":     metric.Stated,
		}
	}

	insights := make([]map[string]any, 0, len(input.Analysis.Insights))
	for _, insight := range input.Analysis.Insights {
		insights = append(insights, map[string]any{
			"claim":    insight.Claim,
			"category": insight.Category,
			"evidence": insight.SupportingEvidence,
			"type":     insight.StatedVsImplied,
		})
	}

	risks := make([]map[string]any, 0, len(input.Analysis.Risks))
	for _, risk := range input.Analysis.Risks {
		risks = append(risks, map[string]any{
			"claim":    risk.Claim,
			"category": risk.Category,
			"evidence": risk.SupportingEvidence,
		})
	}

	gaps := make([]map[string]any, 0, len(input.Analysis.Gaps))
	for _, gap := range input.Analysis.Gaps {
		gaps = append(gaps, map[string]any{
			"metric":     gap.Metric,
			"importance": gap.Importance,
			"note":       gap.Note,
		})
	}

	researchContext := make([]map[string]any, 0, len(input.Research))
	for _, res := range input.Research {
		discrepancies := make([]map[string]any, 0, len(res.Discrepancies))
		for _, disc := range res.Discrepancies {
			discrepancies = append(discrepancies, map[string]any{
				"document": disc.ClaimFromDocument,
				"research": disc.FindingFromResearch,
				"severity": disc.Severity,
			})
		}
		researchContext = append(researchContext, map[string]any{
			"claim":         res.Claim,
			"status":        res.VerificationStatus,
			"sources":       len(res.PublicSources),
			"discrepancies": discrepancies,
		})
	}

	questionContext := map[string][]string{"critical": {}, "high": {}}
	if input.Questions != nil {
		for _, q := range input.Questions.Critical {
			questionContext["critical"] = append(questionContext["critical"], q.Question)
		}
		for _, q := range input.Questions.HighPriority {
			questionContext["high"] = append(questionContext["high"], q.Question)
		}
	}

	context := map[string]any{
		"company_name":       companyName,
		"document_date":      documentDate,
		"classification":     input.Analysis.Classification,
		"key_metrics":        metrics,
		"insights":           insights,
		"risks":              risks,
		"gaps":               gaps,
		"research":           researchContext,
		"questions":          questionContext,
		"overall_confidence": input.Analysis.OverallConfidence,
		"data_completeness":  input.Analysis.DataCompleteness,
	}

	encoded, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
