package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/pagination"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a run store implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "runs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) StartRun(ctx context.Context, params StartParams) (uuid.UUID, error) {
	q := `
		INSERT INTO extraction_runs(
			id, subject_id, org_id, run_type, qa_goal,
			workflow_version, correlation_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	id := uuid.New()
	args := []any{
		id,
		params.SubjectID,
		params.OrgID,
		params.RunType,
		params.QAGoal,
		WorkflowVersion,
		params.CorrelationID,
		StatusRunning,
	}

	scanID := func(s repository.Scanner) (uuid.UUID, error) {
		var v uuid.UUID
		err := s.Scan(&v)
		return v, err
	}

	created, err := repository.QueryOne(ctx, r.db, q, args, scanID)
	if err != nil {
		return uuid.Nil, repository.MapError(fmt.Errorf("insert run: %w", err), ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("run started",
		"run_id", created,
		"run_type", params.RunType,
		"qa_goal", params.QAGoal,
	)
	return created, nil
}

func (r *repo) LogIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) error {
	q := `
		INSERT INTO run_issues(id, run_id, issue_type, severity, detail)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, q, uuid.New(), runID, issueType, severity, detail); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *repo) CompleteRun(ctx context.Context, runID uuid.UUID, extracted, passed, rejected int) error {
	q := `
		UPDATE extraction_runs
		SET status = $1,
			items_extracted = $2,
			items_passed_qa = $3,
			items_rejected = $4,
			completed_at = NOW(),
			duration_seconds = EXTRACT(EPOCH FROM (NOW() - started_at))
		WHERE id = $5`

	err := repository.ExecExpectOne(ctx, r.db, q, StatusCompleted, extracted, passed, rejected, runID)
	if err != nil {
		return repository.MapError(fmt.Errorf("complete run: %w", err), ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("run completed",
		"run_id", runID,
		"extracted", extracted,
		"passed", passed,
		"rejected", rejected,
	)
	return nil
}

func (r *repo) SaveArtifact(ctx context.Context, runID uuid.UUID, contentType string, payload any) (*Artifact, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal artifact payload: %w", err)
	}

	q := `
		INSERT INTO artifacts(id, run_id, content_type, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, run_id, content_type, payload, created_at`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Artifact, error) {
		return repository.QueryOne(ctx, tx, q,
			[]any{uuid.New(), runID, contentType, data},
			scanArtifact,
		)
	})
	if err != nil {
		return nil, repository.MapError(fmt.Errorf("insert artifact: %w", err), ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("artifact saved",
		"artifact_id", a.ID,
		"run_id", runID,
		"content_type", contentType,
	)
	return &a, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	q := fmt.Sprintf("SELECT %s FROM extraction_runs WHERE id = $1", runColumns)

	run, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &run, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	where, args := filters.where()

	countQ := "SELECT COUNT(*) FROM extraction_runs" + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	pageQ := fmt.Sprintf(
		"SELECT %s FROM extraction_runs%s ORDER BY started_at DESC LIMIT $%d OFFSET $%d",
		runColumns, where, len(args)+1, len(args)+2,
	)
	pageArgs := append(args, page.PageSize, page.Offset())

	items, err := repository.QueryMany(ctx, r.db, pageQ, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Issues(ctx context.Context, runID uuid.UUID) ([]Issue, error) {
	q := `
		SELECT id, run_id, issue_type, severity, detail, created_at
		FROM run_issues
		WHERE run_id = $1
		ORDER BY created_at`

	issues, err := repository.QueryMany(ctx, r.db, q, []any{runID}, scanIssue)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	return issues, nil
}

func (r *repo) Artifacts(ctx context.Context, runID uuid.UUID) ([]Artifact, error) {
	q := `
		SELECT id, run_id, content_type, payload, created_at
		FROM artifacts
		WHERE run_id = $1
		ORDER BY created_at`

	artifacts, err := repository.QueryMany(ctx, r.db, q, []any{runID}, scanArtifact)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	return artifacts, nil
}
