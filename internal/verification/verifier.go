package verification

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/generation"
)

// Verifier runs the full check suite. It is deterministic: no model call,
// so the same content and options always produce the same verdict.
type Verifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Verifier {
	return &Verifier{logger: logger.With("system", "verification")}
}

// Verify checks content against the release gate. Critical issues reject;
// accumulated high or medium issues demand review.
func (v *Verifier) Verify(content *generation.Content, opts Options) *Result {
	if opts.OutputMode == "" {
		opts.OutputMode = OutputInternal
	}
	if opts.MinCitationCoverage == 0 {
		opts.MinCitationCoverage = 0.9
	}

	markdown := content.ContentMarkdown

	var issues []Issue
	issues = append(issues, checkCitations(markdown, content.Citations, opts.MinCitationCoverage)...)

	hallucinationIssues := checkHallucinations(markdown)
	issues = append(issues, hallucinationIssues...)

	var piiIssues []Issue
	if !opts.AllowPII {
		piiIssues = checkPII(markdown, opts.OutputMode)
		issues = append(issues, piiIssues...)
	}

	formatIssues := checkFormat(markdown)
	issues = append(issues, formatIssues...)
	issues = append(issues, checkRequiredSections(markdown, content.ContentType)...)
	issues = append(issues, checkConfidence(content)...)

	var critical, high, medium, low int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		case SeverityLow:
			low++
		}
	}

	status := StatusApproved
	switch {
	case critical > 0:
		status = StatusRejected
	case high > 2:
		status = StatusRequiresReview
	case high > 0 || medium > 5:
		status = StatusRequiresReview
	}

	coverage := actualCitationCoverage(markdown)

	result := &Result{
		Status:                 status,
		Approved:               status == StatusApproved,
		Issues:                 issues,
		CriticalIssues:         critical,
		HighIssues:             high,
		MediumIssues:           medium,
		LowIssues:              low,
		CitationCoverageActual: coverage,
		PIIDetected:            len(piiIssues) > 0,
		HallucinationDetected:  len(hallucinationIssues) > 0,
		FormatValid:            len(formatIssues) == 0,
		FinalConfidence:        finalConfidence(content.ConfidenceLevel, coverage, len(issues)),
		Recommendations:        recommendations(issues, content),
		VerifiedAt:             time.Now().UTC(),
	}

	v.logger.Info("content verified",
		"status", result.Status,
		"critical", critical,
		"high", high,
		"coverage", coverage,
		"final_confidence", result.FinalConfidence)

	return result
}

// finalConfidence scales the generator's confidence bucket by measured
// coverage and an issue penalty capped at 40%.
func finalConfidence(level generation.ConfidenceLevel, coverage float64, issueCount int) float64 {
	base := 0.5
	switch level {
	case generation.ConfidenceHigh:
		base = 0.9
	case generation.ConfidenceMedium:
		base = 0.7
	}

	penalty := min(0.4, float64(issueCount)*0.05)
	final := base * coverage * (1 - penalty)
	return max(0.0, min(1.0, final))
}

func recommendations(issues []Issue, content *generation.Content) []string {
	byType := map[string][]Issue{}
	for _, issue := range issues {
		byType[issue.Type] = append(byType[issue.Type], issue)
	}

	var recs []string
	if _, ok := byType["missing_citations"]; ok {
		recs = append(recs, "Add citations to all factual claims")
	}
	if _, ok := byType["hallucination_risk"]; ok {
		recs = append(recs, "Remove unsupported generalizations or add sources")
	}
	if _, ok := byType["pii_detected"]; ok {
		recs = append(recs, "Redact PII before external release")
	}
	if missing, ok := byType["missing_section"]; ok {
		sections := make([]string, 0, len(missing))
		for _, issue := range missing {
			if _, section, found := strings.Cut(issue.Description, ": "); found {
				sections = append(sections, section)
			}
		}
		recs = append(recs, fmt.Sprintf("Add required sections: %s", strings.Join(sections, ", ")))
	}
	if content.CitationCoverage < 0.8 {
		recs = append(recs, "Increase citation coverage to at least 80%")
	}
	if len(recs) == 0 {
		recs = append(recs, "Content meets quality standards - approved for release")
	}
	return recs
}
