package runs

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/repository"
)

const runColumns = `id, subject_id, org_id, run_type, qa_goal, workflow_version,
	correlation_id, status, items_extracted, items_passed_qa, items_rejected,
	started_at, completed_at, duration_seconds`

// Filters contains optional filtering criteria for run queries. Nil fields
// are ignored; all matching is exact.
type Filters struct {
	RunType *string    `json:"run_type,omitempty"`
	Status  *string    `json:"status,omitempty"`
	OrgID   *uuid.UUID `json:"org_id,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if rt := values.Get("run_type"); rt != "" {
		f.RunType = &rt
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if org := values.Get("org_id"); org != "" {
		if id, err := uuid.Parse(org); err == nil {
			f.OrgID = &id
		}
	}

	return f
}

// where builds the WHERE clause and argument list for the active filters.
func (f Filters) where() (string, []any) {
	var clauses []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.RunType != nil {
		add("run_type", *f.RunType)
	}
	if f.Status != nil {
		add("status", *f.Status)
	}
	if f.OrgID != nil {
		add("org_id", *f.OrgID)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.ID,
		&r.SubjectID,
		&r.OrgID,
		&r.RunType,
		&r.QAGoal,
		&r.WorkflowVersion,
		&r.CorrelationID,
		&r.Status,
		&r.ItemsExtracted,
		&r.ItemsPassedQA,
		&r.ItemsRejected,
		&r.StartedAt,
		&r.CompletedAt,
		&r.DurationSeconds,
	)
	return r, err
}

func scanIssue(s repository.Scanner) (Issue, error) {
	var i Issue
	err := s.Scan(
		&i.ID,
		&i.RunID,
		&i.IssueType,
		&i.Severity,
		&i.Detail,
		&i.CreatedAt,
	)
	return i, err
}

func scanArtifact(s repository.Scanner) (Artifact, error) {
	var a Artifact
	err := s.Scan(
		&a.ID,
		&a.RunID,
		&a.ContentType,
		&a.Payload,
		&a.CreatedAt,
	)
	return a, err
}
