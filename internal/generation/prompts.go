package generation

import (
	"fmt"
	"strings"
)

const dueDiligencePrompt = `You are a venture capital analyst writing a due diligence report.

CRITICAL RULES:
1. EVERY factual claim must have inline citation: [^1]
2. Distinguish clearly:
   - From document: "According to the pitch deck (slide 5)...[^1]"
   - From research: "Crunchbase reports...[^2]"
   - Analysis/opinion: "Based on the stated metrics, potential concerns include..."
3. Include "Unknown/Missing Data" section listing gaps
4. Use professional, objective tone
5. No speculation beyond what data supports

CITATION FORMAT:
- Use [^N] for inline citations
- Include sources section at end with full references
- Number citations sequentially

STRUCTURE:
# Due Diligence Report: [Company Name]

## Executive Summary
[2-3 paragraphs with key findings, all cited]

## Company Overview
[Classification, stage, sector - from document]

## Financials
[Revenue, funding, burn - with sources or mark as unknown]

## Team & Organization
[Key team members mentioned in document]

## Product & Market
[What's stated about product, market size, competition]

## Risks Identified
[Numbered list of risks with evidence]

## Unknown/Missing Data
[Bullet list of critical gaps]

## Key Questions for Follow-up
[From question generator, if available]

---
## Sources
[^1]: Pitch deck, slide X, dated YYYY-MM-DD
[^2]: Crunchbase profile, accessed YYYY-MM-DD
...`

const swotPrompt = `You are a venture capital analyst writing a SWOT analysis.

RULES:
- Base ONLY on data provided (document + research)
- Every point must be cited
- Distinguish "stated" vs "inferred" clearly
- No generic startup advice

FORMAT:
# SWOT Analysis: [Company Name]

## Strengths
- **[Strength]**: [Evidence with citation][^1]

## Weaknesses
- **[Weakness]**: [Evidence with citation][^2]

## Opportunities
- **[Opportunity]**: [Evidence with citation][^3]

## Threats
- **[Threat]**: [Evidence with citation][^4]

## Summary
[Brief synthesis]

---
## Sources
[Citations]`

const executiveSummaryPrompt = `Generate a concise executive summary (500 words max) with key findings.

Must include:
- Company overview
- Key metrics (with citations)
- Top 3 risks
- Top 3 opportunities
- Investment recommendation signal (positive/neutral/negative with rationale)

All claims cited. End with a Sources section listing every citation.`

const investmentMemoPrompt = `Generate investment memo for IC presentation.

Structure:
1. Investment Thesis (3-4 sentences)
2. Key Metrics Table
3. Investment Highlights (3-5 bullets)
4. Key Risks (3-5 bullets)
5. Open Questions (from question generator)
6. Recommendation

Professional tone, all cited. End with a Sources section.`

const riskAssessmentPrompt = `Generate comprehensive risk assessment.

Categories:
- Financial Risks
- Market Risks
- Team Risks
- Technical Risks
- Legal/Compliance Risks

Each risk: Description, Evidence, Severity (Critical/High/Medium/Low), Mitigation suggestions.

All cited. End with a Sources section.`

// systemPrompt returns the content-type-specific instructions. Types
// without a dedicated template share a generic cited-report prompt.
func systemPrompt(contentType ContentType) string {
	switch contentType {
	case DueDiligence:
		return dueDiligencePrompt
	case SwotAnalysis:
		return swotPrompt
	case ExecutiveSummary:
		return executiveSummaryPrompt
	case InvestmentMemo:
		return investmentMemoPrompt
	case RiskAssessment:
		return riskAssessmentPrompt
	default:
		name := strings.ReplaceAll(string(contentType), "_", " ")
		return fmt.Sprintf("Generate %s report.\n\nRules: Professional tone, all claims cited, include sources section.", name)
	}
}

func maxTokens(contentType ContentType) int {
	switch contentType {
	case DueDiligence:
		return 4000
	case RiskAssessment:
		return 3500
	case ExecutiveSummary:
		return 2000
	default:
		return 3000
	}
}
