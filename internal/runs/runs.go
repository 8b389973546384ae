// Package runs persists the audit trail of pipeline executions: one row per
// run, an append-only issue log, and the approved artifacts. Rejected content
// is recorded through issues for audit but never stored as an artifact.
package runs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/pagination"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
)

// WorkflowVersion tags every run so schema or gating changes remain
// distinguishable in the audit trail.
const WorkflowVersion = "v1"

// Run is one pipeline execution over a single document or transcript.
type Run struct {
	ID              uuid.UUID  `json:"id"`
	SubjectID       uuid.UUID  `json:"subject_id"`
	OrgID           uuid.UUID  `json:"org_id"`
	RunType         string     `json:"run_type"`
	QAGoal          string     `json:"qa_goal,omitempty"`
	WorkflowVersion string     `json:"workflow_version"`
	CorrelationID   string     `json:"correlation_id,omitempty"`
	Status          string     `json:"status"`
	ItemsExtracted  int        `json:"items_extracted"`
	ItemsPassedQA   int        `json:"items_passed_qa"`
	ItemsRejected   int        `json:"items_rejected"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	DurationSeconds *float64   `json:"duration_seconds,omitempty"`
}

// Issue is one audit log entry attached to a run. Issues are append-only;
// nothing updates or deletes them.
type Issue struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	IssueType string    `json:"issue_type"`
	Severity  string    `json:"severity"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Artifact is one approved output payload. Only content that passed the
// verification or QA gate is written here.
type Artifact struct {
	ID          uuid.UUID       `json:"id"`
	RunID       uuid.UUID       `json:"run_id"`
	ContentType string          `json:"content_type"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StartParams carries the identifying fields for a new run.
type StartParams struct {
	SubjectID     uuid.UUID
	OrgID         uuid.UUID
	RunType       string
	QAGoal        string
	CorrelationID string
}

// System defines the public contract for run store operations.
type System interface {
	Handler() *Handler

	StartRun(ctx context.Context, params StartParams) (uuid.UUID, error)
	LogIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, extracted, passed, rejected int) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, contentType string, payload any) (*Artifact, error)

	Find(ctx context.Context, id uuid.UUID) (*Run, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Run], error)
	Issues(ctx context.Context, runID uuid.UUID) ([]Issue, error)
	Artifacts(ctx context.Context, runID uuid.UUID) ([]Artifact, error)
}
