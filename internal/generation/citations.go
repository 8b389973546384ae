package generation

import (
	"regexp"
	"strings"
)

var (
	markerPattern     = regexp.MustCompile(`\[\^\d+\]`)
	definitionPattern = regexp.MustCompile(`(?m)^\[\^(\d+)\]:\s*(.+)$`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	sourcesPattern    = regexp.MustCompile(`(?mi)^#+\s*Sources\s*$`)
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
)

var researchSources = []string{"crunchbase", "linkedin", "techcrunch", "bloomberg"}

// factualIndicators mark a sentence as carrying a checkable claim:
// copulas, quantity words, and currency or percentage tokens.
var factualIndicators = []string{
	"is", "are", "was", "were", "has", "have", "shows", "reports",
	"$", "%", "million", "billion", "founded", "raised",
}

// extractCitations parses footnote definitions out of the markdown and
// classifies each by source.
func extractCitations(content string) []Citation {
	var citations []Citation

	for _, match := range definitionPattern.FindAllStringSubmatch(content, -1) {
		text := strings.TrimSpace(match[2])

		sourceType := SourceDocument
		lower := strings.ToLower(text)
		for _, source := range researchSources {
			if strings.Contains(lower, source) {
				sourceType = SourceResearch
				break
			}
		}
		if sourceType == SourceDocument &&
			(strings.Contains(lower, "analysis") || strings.Contains(lower, "based on")) {
			sourceType = SourceAnalysis
		}

		url := ""
		if loc := urlPattern.FindString(text); loc != "" {
			url = loc
		}

		citations = append(citations, Citation{
			RefID:      "[" + match[1] + "]",
			SourceType: sourceType,
			SourceText: text,
			URL:        url,
		})
	}

	return citations
}

// citationCoverage is the share of factual sentences carrying at least one
// inline marker. The sources section is excluded; its lines are citations,
// not claims. No factual sentences means full coverage.
func citationCoverage(content string) float64 {
	body := content
	if loc := sourcesPattern.FindStringIndex(content); loc != nil {
		body = content[:loc[0]]
	}

	var factual, cited int
	for _, sentence := range sentencePattern.Split(body, -1) {
		if !isFactual(sentence) {
			continue
		}
		factual++
		if markerPattern.MatchString(sentence) {
			cited++
		}
	}

	if factual == 0 {
		return 1.0
	}
	return float64(cited) / float64(factual)
}

func isFactual(sentence string) bool {
	trimmed := strings.TrimSpace(sentence)
	if len(trimmed) <= 20 {
		return false
	}

	lower := strings.ToLower(trimmed)
	words := map[string]bool{}
	for _, word := range strings.Fields(lower) {
		words[strings.Trim(word, `*_"'()[],:;`)] = true
	}

	for _, indicator := range factualIndicators {
		switch indicator {
		case "$", "%":
			if strings.Contains(lower, indicator) {
				return true
			}
		default:
			if words[indicator] {
				return true
			}
		}
	}
	return false
}

// confidenceEpsilon absorbs float64 error in the weighted blend so inputs
// sitting exactly on a bucket boundary land in the upper bucket.
const confidenceEpsilon = 1e-9

// determineConfidence buckets the weighted blend of analysis confidence
// and citation coverage.
func determineConfidence(analysisConfidence, coverage float64) ConfidenceLevel {
	combined := analysisConfidence*0.7 + coverage*0.3
	switch {
	case combined >= 0.8-confidenceEpsilon:
		return ConfidenceHigh
	case combined >= 0.6-confidenceEpsilon:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
