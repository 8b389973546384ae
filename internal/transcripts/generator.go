package transcripts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/formatting"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

const generatorPromptTemplate = `CRITICAL INSTRUCTIONS - ZERO FABRICATION POLICY:

You are extracting %s items from a meeting transcript.

RULES:
1. ONLY extract information explicitly stated in the transcript
2. NEVER guess, infer, or fabricate:
   - Speaker names (if not stated, use NULL)
   - Email addresses (if not stated, use NULL)
   - Dates or deadlines (if not stated, use NULL)
   - Companies or organizations (if not stated, use NULL)
3. Use NULL for any missing information
4. Quote exact text as evidence for each claim
5. If the transcript contains no %s items, return an empty list`

const decisionSchema = `{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "decision": {"type": ["string", "null"]},
          "rationale": {"type": ["string", "null"]},
          "impact": {"type": ["string", "null"]},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["decision", "rationale", "impact", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["items"],
  "additionalProperties": false
}`

const actionItemSchema = `{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]},
          "owner_name": {"type": ["string", "null"]},
          "owner_email": {"type": ["string", "null"]},
          "due_date": {"type": ["string", "null"]},
          "priority": {"type": ["string", "null"]},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["title", "description", "owner_name", "owner_email", "due_date", "priority", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["items"],
  "additionalProperties": false
}`

const summarySchema = `{
  "type": "object",
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "summary": {"type": ["string", "null"]},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["summary", "confidence"],
        "additionalProperties": false
      }
    }
  },
  "required": ["items"],
  "additionalProperties": false
}`

func contentSchema(contentType string) (llm.Schema, error) {
	var spec string
	switch contentType {
	case ContentDecision:
		spec = decisionSchema
	case ContentActionItem:
		spec = actionItemSchema
	case ContentSummary:
		spec = summarySchema
	default:
		return llm.Schema{}, fmt.Errorf("%w: %s", ErrUnknownContentType, contentType)
	}
	return llm.Schema{
		Name:   contentType + "_extraction",
		Spec:   json.RawMessage(spec),
		Strict: true,
	}, nil
}

type generatorResponse struct {
	Items []map[string]any `json:"items"`
}

// generate runs the first agent: candidate items extracted strictly from
// the transcript. Returns no items when the transcript does not support
// any, which is a valid outcome, not an error.
func generate(ctx context.Context, client llm.Client, contentType string, segments []Segment) ([]evidence.Content, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	schema, err := contentSchema(contentType)
	if err != nil {
		return nil, err
	}

	var transcript strings.Builder
	for _, segment := range segments {
		speaker := segment.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		fmt.Fprintf(&transcript, "[%s]: %s\n", speaker, segment.Text)
	}

	user := fmt.Sprintf("TRANSCRIPT:\n%s\nExtract %s items following the rules above. Return JSON.",
		transcript.String(), contentType)

	raw, err := client.Complete(ctx, llm.Request{
		System:      fmt.Sprintf(generatorPromptTemplate, contentType, contentType),
		User:        user,
		Schema:      &schema,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("transcript completion: %w", err)
	}

	response, err := formatting.Parse[generatorResponse](raw)
	if err != nil {
		return nil, fmt.Errorf("transcript response: %w", err)
	}

	contents := make([]evidence.Content, 0, len(response.Items))
	for _, item := range response.Items {
		confidence := 0.0
		if c, ok := item["confidence"].(float64); ok {
			confidence = c
		}
		delete(item, "confidence")
		contents = append(contents, evidence.Content{
			ContentType: contentType,
			Data:        item,
			Confidence:  confidence,
		})
	}
	return contents, nil
}
