package analysis

import (
	"fmt"
	"strings"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
)

const (
	maxPromptText     = 15000
	maxPromptEntities = 100
	maxPromptTables   = 10
)

const systemPrompt = `You are an expert document analyst. Your job is to analyze extracted document data with PERFECT accuracy and ZERO hallucinations.

ABSOLUTE RULES:
1. ONLY analyze what is in the extracted text. Do NOT use external knowledge.
2. Distinguish clearly between:
   - STATED facts: Explicitly written in the document
   - IMPLIED facts: Can be reasonably inferred from stated facts
   - UNKNOWN: Not mentioned or unclear
3. EVERY metric must have a source citation (page number, section, etc.)
4. If information is missing, mark as "unknown" - DO NOT fill gaps
5. Flag inconsistencies within the document

FORBIDDEN PHRASES (unless directly quoted from document):
- "typically"
- "usually"
- "industry standard"
- "estimated" (without source)
- "approximately" (without source)
- "likely"
- "probably"

CONFIDENCE SCORING:
- 1.0 (100%): Explicitly stated with clear source
- 0.8-0.9: Clearly implied from multiple data points
- 0.6-0.7: Inferred from limited information
- 0.4-0.5: Unclear or ambiguous
- 0.0-0.3: Not found or highly uncertain

OUTPUT STRUCTURE:
- Classification: Document type based on content and structure
- Key Metrics: Extract all quantitative data with sources
- Insights: Factual observations grounded in data
- Risks: Issues or concerns identified in the document
- Opportunities: Positive indicators mentioned
- Gaps: What information is missing
- Inconsistencies: Any contradictions found

EXAMPLES:

GOOD:
{
  "metric": "revenue",
  "value": "$2M ARR",
  "source_citation": "page 8, revenue chart",
  "confidence": 1.0,
  "stated": true
}

BAD (hallucination):
{
  "metric": "burn_rate",
  "value": "$100K/month",
  "note": "Typical for a company of this size",
  "confidence": 0.8,
  "stated": false
}

GOOD (handling missing data):
{
  "metric": "burn_rate",
  "value": null,
  "note": "Not disclosed in document",
  "confidence": 0.0,
  "stated": false
}

Now analyze the provided document extraction.`

// buildUserPrompt lays the extraction output in front of the model:
// truncated text, entity inventory, table shapes, and the extractor's own
// quality flags so the model knows where the ground is shaky.
func buildUserPrompt(ext *extraction.Result, docCtx *DocumentContext) string {
	var b strings.Builder

	b.WriteString("DOCUMENT EXTRACTION:\n\n=== EXTRACTED TEXT ===\n")
	text := ext.Text
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}
	b.WriteString(text)
	b.WriteString("\n\n=== EXTRACTED ENTITIES ===\n")

	entities := ext.Entities
	if len(entities) > maxPromptEntities {
		entities = entities[:maxPromptEntities]
	}
	for _, entity := range entities {
		fmt.Fprintf(&b, "- %s: '%s' (source: %s, confidence: %.2f)\n",
			entity.Type, entity.Value, entity.SourceLocation, entity.Confidence)
	}

	if len(ext.Tables) > 0 {
		b.WriteString("\n=== EXTRACTED TABLES ===\n")
		tables := ext.Tables
		if len(tables) > maxPromptTables {
			tables = tables[:maxPromptTables]
		}
		for _, table := range tables {
			fmt.Fprintf(&b, "\nTable at %s:\nHeaders: %v\nRows: %d\n",
				table.Location, table.Headers, len(table.Rows))
			if table.Malformed {
				b.WriteString("WARNING: Table structure is malformed\n")
			}
		}
	}

	if len(ext.Ambiguities) > 0 {
		b.WriteString("\n=== AMBIGUITIES FLAGGED BY EXTRACTOR ===\n")
		for _, amb := range ext.Ambiguities {
			fmt.Fprintf(&b, "- %s: %s\n", amb.Location, amb.Issue)
		}
	}

	if docCtx != nil {
		b.WriteString("\n=== DOCUMENT CONTEXT ===\n")
		fmt.Fprintf(&b, "Filename: %s\n", docCtx.Filename)
		if !docCtx.UploadedAt.IsZero() {
			fmt.Fprintf(&b, "Upload date: %s\n", docCtx.UploadedAt.Format("2006-01-02"))
		}
	}

	b.WriteString("\n=== EXTRACTION QUALITY ===\n")
	fmt.Fprintf(&b, "Overall confidence: %.2f\n", ext.ConfidenceScore)
	b.WriteString("\nNow provide your analysis following the strict rules above.\n")

	return b.String()
}
