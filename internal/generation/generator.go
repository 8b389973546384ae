package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

// Generator turns analysis output into narrative reports.
type Generator struct {
	client llm.Client
	logger *slog.Logger
}

func New(client llm.Client, logger *slog.Logger) *Generator {
	return &Generator{
		client: client,
		logger: logger.With("system", "generation"),
	}
}

// Generate produces one report. Citation extraction, coverage, and
// confidence bucketing run locally on the returned markdown.
func (g *Generator) Generate(ctx context.Context, input Input) (*Content, error) {
	contextJSON, err := buildContext(input)
	if err != nil {
		return nil, fmt.Errorf("generation context: %w", err)
	}

	user := fmt.Sprintf("Generate the report based on this data:\n\n%s\n\nRemember: Every claim must be cited. If data is missing, explicitly state \"Not disclosed in provided materials\".", contextJSON)

	markdown, err := g.client.Complete(ctx, llm.Request{
		System:      systemPrompt(input.ContentType),
		User:        user,
		Temperature: 0.2,
		MaxTokens:   maxTokens(input.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("content completion: %w", err)
	}

	coverage := citationCoverage(markdown)
	content := &Content{
		ContentType:      input.ContentType,
		ContentMarkdown:  markdown,
		Citations:        extractCitations(markdown),
		CitationCoverage: coverage,
		ConfidenceLevel:  determineConfidence(input.Analysis.OverallConfidence, coverage),
		Disclaimer:       Disclaimer(input.DocumentDate, time.Now().UTC()),
		WordCount:        len(strings.Fields(markdown)),
		GeneratedAt:      time.Now().UTC(),
	}

	g.logger.Info("content generated",
		"content_type", content.ContentType,
		"citations", len(content.Citations),
		"coverage", content.CitationCoverage,
		"confidence", content.ConfidenceLevel,
		"words", content.WordCount)

	return content, nil
}

// Disclaimer states the data boundary of a generated report.
func Disclaimer(documentDate string, accessed time.Time) string {
	if documentDate == "" {
		documentDate = "unknown"
	}
	return fmt.Sprintf(
		"**Disclaimer**: This analysis is based solely on provided documents dated %s "+
			"and public sources accessed on %s. Information may be incomplete, outdated, or inaccurate. "+
			"This is not investment advice. Conduct independent verification before making investment decisions.",
		documentDate, accessed.Format("2006-01-02"))
}
