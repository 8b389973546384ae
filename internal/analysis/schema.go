package analysis

// analysisSchema constrains the model's output. Keeping it as literal JSON
// rather than building it reflectively makes drift against the response
// struct visible in review.
const analysisSchema = `{
  "type": "object",
  "properties": {
    "classification": {
      "type": "string",
      "enum": [
        "pitch_deck_pre_seed", "pitch_deck_seed", "pitch_deck_series_a",
        "pitch_deck_series_b_plus", "financial_report_quarterly",
        "financial_report_annual", "legal_term_sheet", "legal_contract",
        "meeting_notes", "market_research", "competitor_analysis", "other"
      ]
    },
    "classification_confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "key_metrics": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "value": {"type": ["string", "number", "null"]},
          "unit": {"type": ["string", "null"]},
          "source_citation": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "note": {"type": ["string", "null"]},
          "stated": {"type": "boolean"}
        },
        "required": ["value", "source_citation", "confidence", "stated"],
        "additionalProperties": false
      }
    },
    "insights": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "claim": {"type": "string"},
          "category": {"type": "string"},
          "supporting_evidence": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "stated_vs_implied": {"type": "string", "enum": ["stated", "implied", "inferred"]}
        },
        "required": ["claim", "category", "supporting_evidence", "confidence", "stated_vs_implied"],
        "additionalProperties": false
      }
    },
    "risks_identified": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "claim": {"type": "string"},
          "category": {"type": "string"},
          "supporting_evidence": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "stated_vs_implied": {"type": "string"}
        },
        "required": ["claim", "category", "supporting_evidence", "confidence", "stated_vs_implied"],
        "additionalProperties": false
      }
    },
    "opportunities_identified": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "claim": {"type": "string"},
          "category": {"type": "string"},
          "supporting_evidence": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "stated_vs_implied": {"type": "string"}
        },
        "required": ["claim", "category", "supporting_evidence", "confidence", "stated_vs_implied"],
        "additionalProperties": false
      }
    },
    "gaps": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "metric": {"type": "string"},
          "importance": {"type": "string", "enum": ["critical", "high", "medium", "low"]},
          "note": {"type": "string"}
        },
        "required": ["metric", "importance", "note"],
        "additionalProperties": false
      }
    },
    "inconsistencies": {"type": "array", "items": {"type": "string"}},
    "data_completeness": {"type": "number", "minimum": 0, "maximum": 1}
  },
  "required": [
    "classification", "classification_confidence", "key_metrics",
    "insights", "risks_identified", "gaps", "inconsistencies", "data_completeness"
  ],
  "additionalProperties": false
}`

// modelResponse mirrors analysisSchema.
type modelResponse struct {
	Classification           string                 `json:"classification"`
	ClassificationConfidence float64                `json:"classification_confidence"`
	KeyMetrics               map[string]MetricValue `json:"key_metrics"`
	Insights                 []Insight              `json:"insights"`
	Risks                    []Insight              `json:"risks_identified"`
	Opportunities            []Insight              `json:"opportunities_identified"`
	Gaps                     []Gap                  `json:"gaps"`
	Inconsistencies          []string               `json:"inconsistencies"`
	DataCompleteness         float64                `json:"data_completeness"`
}
