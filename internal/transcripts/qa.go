package transcripts

import (
	"fmt"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
)

// sensitiveFields must never carry a value without evidence; a guessed
// owner or deadline is exactly the fabrication this system exists to stop.
var sensitiveFields = []string{"owner_email", "due_date", "owner_name"}

// strict goals demand near-complete traceability.
const strictTraceability = 0.9

// runQA is the third agent: a deterministic approval check against the
// named goal. Issues cost 0.2 each; only maximize_recall tolerates a
// degraded score.
func runQA(matched evidence.Matched, qaGoal string, detector privacy.Detector) QAResult {
	var issues, recommendations []string

	if qaGoal == GoalZeroHallucinations || qaGoal == GoalBoardReadySummary {
		if matched.Traceability < strictTraceability {
			issues = append(issues, fmt.Sprintf(
				"Traceability %.2f below %.1f for zero-hallucination goal",
				matched.Traceability, strictTraceability))
		}
	}

	if len(matched.Evidence) == 0 {
		issues = append(issues, "No evidence pointers found - cannot verify claims")
	}

	for _, field := range evidence.Unevidenced(matched, sensitiveFields) {
		issues = append(issues, fmt.Sprintf(
			"Field '%s' has value but no evidence - possible fabrication", field))
		recommendations = append(recommendations, fmt.Sprintf(
			"Set '%s' to NULL if not explicitly stated in transcript", field))
	}

	for _, pointer := range matched.Evidence {
		if len(privacy.Residue(detector, pointer.Quote, privacy.TypeEmail)) > 0 {
			recommendations = append(recommendations,
				"Evidence contains email - ensure PII tagging applied")
			break
		}
	}

	score := 1.0
	if len(issues) > 0 {
		score = 1.0 - float64(len(issues))*0.2
		if score < 0 {
			score = 0
		}
	}

	approved := len(issues) == 0 || (qaGoal == GoalMaximizeRecall && score >= 0.5)

	return QAResult{
		Approved:        approved,
		QAScore:         score,
		Issues:          issues,
		Recommendations: recommendations,
	}
}
