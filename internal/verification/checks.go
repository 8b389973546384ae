package verification

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/generation"
)

// forbiddenPhrases signal unsupported generalization. Any occurrence
// outside a quotation is a critical hallucination risk.
var forbiddenPhrases = []string{
	"typically",
	"usually",
	"often",
	"generally",
	"commonly",
	"industry standard",
	"best practice",
	"it is likely",
	"probably",
	"presumably",
	"one can assume",
	"it can be inferred",
}

// placeholders that must never survive into released content.
var placeholders = []string{"lorem ipsum", "xxx", "tbd", "todo", "placeholder", "example.com"}

var piiPatterns = map[string]*regexp.Regexp{
	"email":       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	"phone":       regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	"ssn":         regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	"credit_card": regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
}

var (
	markerPattern   = regexp.MustCompile(`\[\^\d+\]`)
	sourcesPattern  = regexp.MustCompile(`(?mi)^#+\s*Sources\s*$`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
	titlePattern    = regexp.MustCompile(`(?m)^#\s+.+`)
	estimatePattern = regexp.MustCompile(`(?i)(estimated|approximately)`)
)

// factualIndicators for the citation check. Broader than the generator's
// list so verification errs toward demanding citations.
var factualIndicators = []string{
	"is", "are", "was", "were", "has", "have", "had",
	"shows", "reports", "states", "indicates",
	"$", "%", "million", "billion", "founded", "raised",
	"revenue", "growth", "team", "market", "customer",
}

// requiredSections per content type. Sources and Unknown carry high
// severity when absent; the rest are medium.
var requiredSections = map[generation.ContentType][]string{
	generation.DueDiligence:   {"Executive Summary", "Unknown", "Missing Data", "Sources"},
	generation.SwotAnalysis:   {"Strengths", "Weaknesses", "Opportunities", "Threats", "Sources"},
	generation.InvestmentMemo: {"Investment Thesis", "Key Metrics", "Risks", "Sources"},
	generation.RiskAssessment: {"Risks", "Sources"},
}

func stripSources(content string) string {
	if loc := sourcesPattern.FindStringIndex(content); loc != nil {
		return content[:loc[0]]
	}
	return content
}

func factualSentences(content string) []string {
	var factual []string
	for _, sentence := range sentencePattern.Split(stripSources(content), -1) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) <= 20 {
			continue
		}
		if containsIndicator(trimmed) {
			factual = append(factual, trimmed)
		}
	}
	return factual
}

func containsIndicator(sentence string) bool {
	lower := strings.ToLower(sentence)
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

// actualCitationCoverage re-derives coverage from the text instead of
// trusting the generator's reported number.
func actualCitationCoverage(content string) float64 {
	factual := factualSentences(content)
	if len(factual) == 0 {
		return 1.0
	}
	cited := 0
	for _, sentence := range factual {
		if markerPattern.MatchString(sentence) {
			cited++
		}
	}
	return float64(cited) / float64(len(factual))
}

func checkCitations(content string, citations []generation.Citation, minCoverage float64) []Issue {
	var issues []Issue

	factual := factualSentences(content)
	uncited := 0
	for _, sentence := range factual {
		if !markerPattern.MatchString(sentence) {
			uncited++
		}
	}

	if uncited > 0 && len(factual) > 0 {
		coverage := 1 - float64(uncited)/float64(len(factual))
		if coverage < minCoverage {
			issues = append(issues, Issue{
				Type:        "missing_citations",
				Severity:    SeverityCritical,
				Description: fmt.Sprintf("Only %.0f%% of factual claims are cited (minimum: %.0f%%)", coverage*100, minCoverage*100),
				Location:    "Throughout document",
				Suggestion:  fmt.Sprintf("Add citations to %d uncited factual claims", uncited),
			})
		}
	}

	defined := make(map[string]bool, len(citations))
	for _, citation := range citations {
		defined[citation.RefID] = true
	}
	seen := map[string]bool{}
	for _, marker := range markerPattern.FindAllString(stripSources(content), -1) {
		ref := strings.Replace(marker, "^", "", 1)
		if seen[ref] {
			continue
		}
		seen[ref] = true
		if !defined[ref] {
			issues = append(issues, Issue{
				Type:        "invalid_citation",
				Severity:    SeverityHigh,
				Description: fmt.Sprintf("Citation marker %s has no corresponding source", marker),
				Suggestion:  "Add source to references or remove marker",
			})
		}
	}

	for _, citation := range citations {
		if citation.URL != "" && !strings.HasPrefix(citation.URL, "http") {
			issues = append(issues, Issue{
				Type:        "invalid_url",
				Severity:    SeverityMedium,
				Description: fmt.Sprintf("Invalid URL format in %s", citation.RefID),
				Location:    truncate(citation.SourceText, 100),
			})
		}
	}

	return issues
}

func checkHallucinations(content string) []Issue {
	var issues []Issue
	lower := strings.ToLower(content)

	for _, phrase := range forbiddenPhrases {
		count := 0
		for index := 0; count < 3; {
			found := strings.Index(lower[index:], phrase)
			if found < 0 {
				break
			}
			found += index
			index = found + len(phrase)

			context := surrounding(content, found, found+len(phrase), 50)
			// Quoted occurrences come from the document itself.
			if strings.ContainsAny(context, `"'`) {
				continue
			}
			count++
			issues = append(issues, Issue{
				Type:        "hallucination_risk",
				Severity:    SeverityCritical,
				Description: fmt.Sprintf("Forbidden phrase '%s' suggests hallucination", phrase),
				Location:    strings.TrimSpace(context),
				Suggestion:  "Remove unsupported generalization or provide citation",
			})
		}
	}

	for _, loc := range estimatePattern.FindAllStringIndex(content, -1) {
		window := content[loc[1]:min(len(content), loc[1]+50)]
		if !markerPattern.MatchString(window) {
			issues = append(issues, Issue{
				Type:        "unsupported_estimate",
				Severity:    SeverityHigh,
				Description: "Estimate provided without source citation",
				Location:    truncate(content[loc[0]:min(len(content), loc[0]+80)], 80),
				Suggestion:  "Cite source or state explicitly that this is an assumption",
			})
		}
	}

	for _, placeholder := range placeholders {
		if strings.Contains(lower, placeholder) {
			issues = append(issues, Issue{
				Type:        "placeholder_data",
				Severity:    SeverityCritical,
				Description: fmt.Sprintf("Placeholder text detected: '%s'", placeholder),
				Suggestion:  "Replace with real data or remove",
			})
		}
	}

	return issues
}

func checkPII(content, outputMode string) []Issue {
	if !strings.HasPrefix(outputMode, "external") {
		return nil
	}

	var issues []Issue
	for piiType, pattern := range piiPatterns {
		matches := pattern.FindAllString(content, -1)
		if len(matches) > 0 {
			issues = append(issues, Issue{
				Type:        "pii_detected",
				Severity:    SeverityCritical,
				Description: fmt.Sprintf("%s detected in external-facing content", strings.ToUpper(piiType)),
				Location:    fmt.Sprintf("Found %d instances", len(matches)),
				Suggestion:  "Redact or mask PII before external release",
			})
		}
	}
	return issues
}

func checkFormat(content string) []Issue {
	var issues []Issue

	if !strings.Contains(content, "## Sources") && !strings.Contains(content, "## References") {
		issues = append(issues, Issue{
			Type:        "missing_sources",
			Severity:    SeverityHigh,
			Description: "No sources/references section found",
			Suggestion:  "Add '## Sources' section with all citations",
		})
	}

	if !titlePattern.MatchString(content) {
		issues = append(issues, Issue{
			Type:        "missing_title",
			Severity:    SeverityMedium,
			Description: "No title heading found",
			Suggestion:  "Add title with # heading",
		})
	}

	return issues
}

func checkRequiredSections(content string, contentType generation.ContentType) []Issue {
	required, ok := requiredSections[contentType]
	if !ok {
		required = []string{"Sources"}
	}

	lower := strings.ToLower(content)
	var issues []Issue
	for _, section := range required {
		if strings.Contains(lower, strings.ToLower(section)) {
			continue
		}
		severity := SeverityMedium
		if section == "Sources" || section == "Unknown" {
			severity = SeverityHigh
		}
		issues = append(issues, Issue{
			Type:        "missing_section",
			Severity:    severity,
			Description: fmt.Sprintf("Required section missing: %s", section),
			Suggestion:  fmt.Sprintf("Add '%s' section", section),
		})
	}
	return issues
}

func checkConfidence(content *generation.Content) []Issue {
	if content.CitationCoverage < 0.8 && content.ConfidenceLevel == generation.ConfidenceHigh {
		return []Issue{{
			Type:        "confidence_mismatch",
			Severity:    SeverityMedium,
			Description: "High confidence claimed but citation coverage is low",
			Suggestion:  "Lower confidence level or add more citations",
		}}
	}
	return nil
}

func surrounding(text string, start, end, radius int) string {
	from := max(0, start-radius)
	to := min(len(text), end+radius)
	return text[from:to]
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
