package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/research"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/formatting"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

const systemPrompt = `You are a venture capital due diligence expert. Generate specific, actionable questions based on gaps, risks, and discrepancies.

QUESTION QUALITY RULES:
1. Questions must be SPECIFIC and DATA-DRIVEN
2. Bad: "Is the team good?"
3. Good: "CEO has 2 years industry experience (LinkedIn); what expertise does the advisory board provide?"
4. Must reference the source data that triggered the question
5. Must explain the risk or opportunity
6. Must be answerable (not philosophical)

PRIORITY LEVELS:
- CRITICAL: Deal-breakers if unanswered (e.g., suspicious financials, major team gaps)
- HIGH: Significant risks (e.g., unclear market position, unverified claims)
- MEDIUM: Important but not blocking (e.g., missing context, competitor info)
- LOW: Nice-to-have context (e.g., company culture, future plans)

CATEGORIES:
- financial: Revenue, costs, funding, burn rate, unit economics
- technical: Product, tech stack, IP, scalability
- team: Founders, key hires, advisors, culture
- market: TAM, competition, positioning, go-to-market
- legal: IP ownership, contracts, compliance, litigation
- product: Features, roadmap, customer feedback, PMF
- competitive: Competitors, differentiation, moat
- operational: Processes, metrics, infrastructure

Return JSON with a "questions" array.`

const questionSchema = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string"},
          "category": {
            "type": "string",
            "enum": ["financial", "technical", "team", "market", "legal", "product", "competitive", "operational"]
          },
          "priority": {"type": "string", "enum": ["critical", "high", "medium", "low"]},
          "triggered_by": {"type": "string"},
          "risk_category": {"type": ["string", "null"]},
          "suggested_sources": {"type": "array", "items": {"type": "string"}},
          "context": {"type": ["string", "null"]}
        },
        "required": ["question", "category", "priority", "triggered_by", "suggested_sources"],
        "additionalProperties": false
      }
    }
  },
  "required": ["questions"],
  "additionalProperties": false
}`

type questionResponse struct {
	Questions []Question `json:"questions"`
}

// Generator produces due diligence questions from analysis output.
type Generator struct {
	client llm.Client
	logger *slog.Logger
}

func NewGenerator(client llm.Client, logger *slog.Logger) *Generator {
	return &Generator{
		client: client,
		logger: logger.With("system", "questions"),
	}
}

func (g *Generator) Generate(ctx context.Context, result *analysis.Result, researchResults []research.Result, companyName string) (*Set, error) {
	content, err := g.client.Complete(ctx, llm.Request{
		System: systemPrompt,
		User:   buildUserPrompt(result, researchResults, companyName),
		Schema: &llm.Schema{
			Name:   "question_set",
			Spec:   json.RawMessage(questionSchema),
			Strict: true,
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("question completion: %w", err)
	}

	response, err := formatting.Parse[questionResponse](content)
	if err != nil {
		return nil, fmt.Errorf("question response: %w", err)
	}

	set := Categorize(response.Questions)
	g.logger.Info("questions generated",
		"total", set.TotalCount,
		"critical", len(set.Critical),
		"high", len(set.HighPriority))
	return set, nil
}

func buildUserPrompt(result *analysis.Result, researchResults []research.Result, companyName string) string {
	var b strings.Builder

	if companyName == "" {
		companyName = "Unknown"
	}
	fmt.Fprintf(&b, "COMPANY: %s\n\n=== DOCUMENT ANALYSIS ===\n", companyName)
	fmt.Fprintf(&b, "Classification: %s\n", result.Classification)
	fmt.Fprintf(&b, "Overall Confidence: %.2f\n", result.OverallConfidence)
	fmt.Fprintf(&b, "Data Completeness: %.2f\n\nKEY METRICS:\n", result.DataCompleteness)

	for name, metric := range result.KeyMetrics {
		fmt.Fprintf(&b, "- %s: %v (stated: %t, confidence: %.2f)\n",
			name, metric.Value, metric.Stated, metric.Confidence)
	}

	if len(result.Gaps) > 0 {
		b.WriteString("\nINFORMATION GAPS:\n")
		for _, gap := range result.Gaps {
			fmt.Fprintf(&b, "- %s (%s): %s\n", gap.Metric, gap.Importance, gap.Note)
		}
	}

	if len(result.Risks) > 0 {
		b.WriteString("\nRISKS IDENTIFIED:\n")
		risks := result.Risks
		if len(risks) > 5 {
			risks = risks[:5]
		}
		for _, risk := range risks {
			fmt.Fprintf(&b, "- %s (confidence: %.2f)\n", risk.Claim, risk.Confidence)
		}
	}

	if len(result.Inconsistencies) > 0 {
		b.WriteString("\nINCONSISTENCIES:\n")
		for _, inconsistency := range result.Inconsistencies {
			fmt.Fprintf(&b, "- %s\n", inconsistency)
		}
	}

	if len(researchResults) > 0 {
		b.WriteString("\n=== RESEARCH FINDINGS ===\n")
		results := researchResults
		if len(results) > 10 {
			results = results[:10]
		}
		for _, res := range results {
			fmt.Fprintf(&b, "Claim: %s\nStatus: %s\nSources: %d\n",
				res.Claim, res.VerificationStatus, res.SourceCount)
			for _, disc := range res.Discrepancies {
				fmt.Fprintf(&b, "  Discrepancy (%s): %s\n", disc.Severity, disc.FindingFromResearch)
			}
		}
	}

	b.WriteString("\nGenerate 10-20 targeted due diligence questions based on the above analysis.\n")
	b.WriteString("Focus on:\n1. Critical information gaps\n2. Risks that need validation\n")
	b.WriteString("3. Discrepancies between document and research\n4. Unusual or suspicious data points\n")

	return b.String()
}
