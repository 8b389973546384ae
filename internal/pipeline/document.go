package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/generation"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/questions"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/research"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/verification"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

// DocumentRequest describes one document pipeline instance.
type DocumentRequest struct {
	DocumentID    uuid.UUID
	OrgID         uuid.UUID
	CorrelationID string

	Data     []byte
	Filename string
	MIMEType string

	ContentType  generation.ContentType
	CompanyName  string
	DocumentDate string

	Context  *analysis.DocumentContext
	Research []research.Result

	Verification verification.Options
}

// DocumentResult is the complete outcome of one document pipeline instance.
// Stage outputs populate as stages complete; a failed instance keeps the
// outputs of the stages that ran.
type DocumentResult struct {
	RunID uuid.UUID `json:"run_id"`
	State State     `json:"state"`

	Progress *Progress `json:"progress"`

	Extraction   *extraction.Result   `json:"extraction,omitempty"`
	Analysis     *analysis.Result     `json:"analysis,omitempty"`
	Questions    *questions.Set       `json:"questions,omitempty"`
	Content      *generation.Content  `json:"content,omitempty"`
	Verification *verification.Result `json:"verification,omitempty"`

	// Error describes the failure for terminal states that did not come
	// from the verification verdict.
	Error string `json:"error,omitempty"`
}

// ProcessDocument runs one document through extraction, analysis, question
// generation, content generation, and verification. Persistence of the
// artifact happens only on an approved verdict; every stage failure is
// recorded in the run's issue log before the instance stops.
func (p *Pipeline) ProcessDocument(ctx context.Context, req DocumentRequest) (*DocumentResult, error) {
	if req.Verification == (verification.Options{}) {
		req.Verification = verification.DefaultOptions()
	}

	runID, err := p.store.StartRun(ctx, runs.StartParams{
		SubjectID:     req.DocumentID,
		OrgID:         req.OrgID,
		RunType:       "document:" + string(req.ContentType),
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	result := &DocumentResult{
		RunID:    runID,
		Progress: NewProgress(),
	}

	extracted, err := p.extractor.Extract(ctx, req.Data, req.Filename, req.MIMEType)
	if err != nil {
		return p.fail(ctx, result, "extraction_failed", err), nil
	}
	result.Extraction = extracted
	p.advance(result, StageExtracted)

	analyzed, err := p.analyzer.Analyze(ctx, extracted, req.Context)
	if err != nil {
		return p.stageError(ctx, result, "analysis_failed", err), nil
	}
	result.Analysis = analyzed
	p.advance(result, StageAnalyzed)

	if analyzed.RequiresHumanReview {
		p.logIssue(ctx, runID, "human_review_flagged", "warning", analyzed.ReviewReason)
	}

	// Question generation is supplementary: a failure degrades the
	// report's open-questions input but never aborts the run.
	set, err := p.questions.Generate(ctx, analyzed, req.Research, req.CompanyName)
	if err != nil {
		p.logIssue(ctx, runID, "question_generation_failed", "warning", err.Error())
	} else {
		result.Questions = set
	}

	content, err := p.generator.Generate(ctx, generation.Input{
		ContentType:  req.ContentType,
		Analysis:     analyzed,
		Research:     req.Research,
		Questions:    result.Questions,
		CompanyName:  req.CompanyName,
		DocumentDate: req.DocumentDate,
	})
	if err != nil {
		return p.stageError(ctx, result, "generation_failed", err), nil
	}
	result.Content = content
	p.advance(result, StageGenerated)

	verdict := p.verifier.Verify(content, req.Verification)
	result.Verification = verdict
	p.advance(result, StageVerified)

	for _, issue := range verdict.Issues {
		p.logIssue(ctx, runID, issue.Type, string(issue.Severity), issue.Description)
	}

	passed, rejected := 0, 0
	switch verdict.Status {
	case verification.StatusApproved:
		result.State = StateApproved
		passed = 1
		if _, err := p.store.SaveArtifact(ctx, runID, string(req.ContentType), approvedArtifact(content, verdict)); err != nil {
			p.logger.Error("artifact save failed", "run_id", runID, "error", err)
		}
	case verification.StatusRejected:
		result.State = StateRejected
		rejected = 1
	default:
		result.State = StateRequiresReview
	}

	if err := p.store.CompleteRun(ctx, runID, 1, passed, rejected); err != nil {
		p.logger.Error("complete run", "run_id", runID, "error", err)
	}

	p.logger.Info("document pipeline complete",
		"run_id", runID,
		"content_type", req.ContentType,
		"state", result.State,
		"coverage", verdict.CitationCoverageActual,
	)
	return result, nil
}

// ProcessDocuments runs independent instances concurrently, bounded by the
// batch limit. Instance failures land in their own results; the batch never
// aborts siblings.
func (p *Pipeline) ProcessDocuments(ctx context.Context, reqs []DocumentRequest) []*DocumentResult {
	results := make([]*DocumentResult, len(reqs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(p.batchLimit)

	for i, req := range reqs {
		group.Go(func() error {
			result, err := p.ProcessDocument(ctx, req)
			if err != nil {
				result = &DocumentResult{
					State:    StateFailed,
					Progress: NewProgress(),
					Error:    err.Error(),
				}
			}
			results[i] = result
			return nil
		})
	}

	_ = group.Wait()
	return results
}

// advance moves the stage machine forward. The transitions here are fixed
// by construction, so a failure is a bug worth a loud log rather than a
// recoverable condition.
func (p *Pipeline) advance(result *DocumentResult, stage Stage) {
	if err := result.Progress.Advance(stage); err != nil {
		p.logger.Error("stage machine violation", "run_id", result.RunID, "error", err)
	}
}

// stageError distinguishes provider exhaustion, which parks the run for a
// human, from everything else, which fails the instance.
func (p *Pipeline) stageError(ctx context.Context, result *DocumentResult, issueType string, err error) *DocumentResult {
	if errors.Is(err, llm.ErrProviderUnavailable) {
		p.logIssue(ctx, result.RunID, "provider_error", "critical", err.Error())
		p.completeFailed(ctx, result.RunID)
		result.State = StateRequiresReview
		result.Error = err.Error()
		return result
	}
	return p.fail(ctx, result, issueType, err)
}

func (p *Pipeline) fail(ctx context.Context, result *DocumentResult, issueType string, err error) *DocumentResult {
	p.logIssue(ctx, result.RunID, issueType, "critical", err.Error())
	p.completeFailed(ctx, result.RunID)
	result.State = StateFailed
	result.Error = err.Error()
	return result
}

func (p *Pipeline) completeFailed(ctx context.Context, runID uuid.UUID) {
	if err := p.store.CompleteRun(ctx, runID, 0, 0, 1); err != nil {
		p.logger.Error("complete run", "run_id", runID, "error", err)
	}
}

func (p *Pipeline) logIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) {
	if err := p.store.LogIssue(ctx, runID, issueType, severity, detail); err != nil {
		p.logger.Error("log issue", "run_id", runID, "issue_type", issueType, "error", err)
	}
}

// approvedArtifact is the persisted payload for an approved run: the content
// together with the verdict that released it.
func approvedArtifact(content *generation.Content, verdict *verification.Result) map[string]any {
	return map[string]any{
		"content":      content,
		"verification": verdict,
	}
}
