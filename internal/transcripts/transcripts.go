// Package transcripts extracts structured meeting data from transcripts
// through a three-stage workflow: generate candidate content from the
// segments, match every claim to source evidence, then QA against a named
// goal. A parallel guard redacts personal data before anything reaches
// the database.
package transcripts

import (
	"context"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
)

// Content types extracted from transcripts.
const (
	ContentDecision   = "decision"
	ContentActionItem = "action_item"
	ContentSummary    = "summary"
)

// QA goals. The goal is a policy profile, not a hint: it changes the
// thresholds the approver enforces.
const (
	GoalZeroHallucinations = "zero_hallucinations"
	GoalBoardReadySummary  = "board_ready_summary"
	GoalMaximizeRecall     = "maximize_recall"
)

// Segment is one unit of transcript text.
type Segment struct {
	ID      uuid.UUID `json:"id"`
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
}

// Attendee is a meeting participant. Email never survives into the
// database version.
type Attendee struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
	PIIRedacted bool   `json:"pii_redacted,omitempty"`
}

// Decision is one decision recorded in a meeting.
type Decision struct {
	Decision  string `json:"decision"`
	Rationale string `json:"rationale,omitempty"`
	Impact    string `json:"impact,omitempty"`
}

// ActionItem is one task extracted from a meeting. Fields the transcript
// does not state stay empty.
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name,omitempty"`
	OwnerEmail  string `json:"owner_email,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority,omitempty"`
	PIIRedacted bool   `json:"pii_redacted,omitempty"`
}

// MeetingInfo is general metadata about the meeting.
type MeetingInfo struct {
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
}

// MeetingData is the full structured extraction of one meeting.
type MeetingData struct {
	Attendees   []Attendee   `json:"attendees"`
	ActionItems []ActionItem `json:"action_items"`
	Decisions   []Decision   `json:"decisions"`
	MeetingInfo MeetingInfo  `json:"meeting_info"`
}

// QAResult is the approver's verdict for one extracted item.
type QAResult struct {
	Approved        bool     `json:"approved"`
	QAScore         float64  `json:"qa_score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Outcome is the final result of one workflow run. Content is nil unless
// the item was approved.
type Outcome struct {
	Success bool              `json:"success"`
	Content *evidence.Matched `json:"content,omitempty"`
	QA      QAResult          `json:"qa_result"`
	RunID   uuid.UUID         `json:"extraction_run_id"`
}

// RunInfo identifies one workflow run for the audit trail.
type RunInfo struct {
	MeetingID     uuid.UUID
	OrgID         uuid.UUID
	RunType       string
	QAGoal        string
	CorrelationID string
}

// Recorder is the audit boundary: every run, issue, and outcome is
// persisted through it.
type Recorder interface {
	StartRun(ctx context.Context, info RunInfo) (uuid.UUID, error)
	LogIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, extracted, passed, rejected int) error
}

// NopRecorder discards the audit trail. Tests and dry runs only.
type NopRecorder struct{}

func (NopRecorder) StartRun(context.Context, RunInfo) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (NopRecorder) LogIssue(context.Context, uuid.UUID, string, string, string) error {
	return nil
}

func (NopRecorder) CompleteRun(context.Context, uuid.UUID, int, int, int) error {
	return nil
}
