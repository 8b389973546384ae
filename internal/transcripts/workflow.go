package transcripts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
)

// lowTraceability marks runs worth a warning even when they pass QA.
const lowTraceability = 0.7

// Workflow wires the three agents together. Every stage runs on every
// item; there is no path that skips evidence matching or QA.
type Workflow struct {
	client   llm.Client
	matcher  evidence.Matcher
	detector privacy.Detector
	recorder Recorder
	logger   *slog.Logger
}

func NewWorkflow(client llm.Client, matcher evidence.Matcher, detector privacy.Detector, recorder Recorder, logger *slog.Logger) *Workflow {
	return &Workflow{
		client:   client,
		matcher:  matcher,
		detector: detector,
		recorder: recorder,
		logger:   logger.With("system", "transcripts"),
	}
}

// Extract runs the workflow for one content type over one transcript.
// The QA goal is required; there is no default leniency.
func (w *Workflow) Extract(ctx context.Context, info RunInfo, segments []Segment) ([]Outcome, error) {
	if info.QAGoal == "" {
		return nil, ErrMissingQAGoal
	}

	runID, err := w.recorder.StartRun(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	contents, err := generate(ctx, w.client, info.RunType, segments)
	if err != nil {
		w.logIssue(ctx, runID, "workflow_error", "critical", fmt.Sprintf("Workflow failed: %v", err))
		return nil, err
	}

	if len(contents) == 0 {
		w.logIssue(ctx, runID, "generation_failed", "critical", "Generator produced no output")
		if err := w.recorder.CompleteRun(ctx, runID, 0, 0, 0); err != nil {
			w.logger.Error("complete run", "error", err)
		}
		return []Outcome{{
			Success: false,
			QA: QAResult{
				QAScore:         0,
				Issues:          []string{"Generation failed"},
				Recommendations: []string{"Check source data quality"},
			},
			RunID: runID,
		}}, nil
	}

	sources := make([]evidence.SourceSegment, 0, len(segments))
	for _, segment := range segments {
		sources = append(sources, evidence.SourceSegment{
			Table:   "transcript_segments",
			ID:      segment.ID,
			Field:   "text",
			Text:    segment.Text,
			Speaker: segment.Speaker,
		})
	}

	var outcomes []Outcome
	var passed, rejected int
	for _, content := range contents {
		matched := w.matcher.Match(content, sources)

		if matched.Traceability < lowTraceability {
			w.logIssue(ctx, runID, "low_traceability", "warning",
				fmt.Sprintf("Traceability score %.2f below %.1f", matched.Traceability, lowTraceability))
		}

		qa := runQA(matched, info.QAGoal, w.detector)
		for _, issue := range qa.Issues {
			w.logIssue(ctx, runID, "qa_failed", "warning", issue)
		}

		outcome := Outcome{
			Success: qa.Approved,
			QA:      qa,
			RunID:   runID,
		}
		if qa.Approved {
			outcome.Content = &matched
			passed++
		} else {
			rejected++
		}
		outcomes = append(outcomes, outcome)
	}

	if err := w.recorder.CompleteRun(ctx, runID, len(contents), passed, rejected); err != nil {
		w.logger.Error("complete run", "error", err)
	}

	w.logger.Info("transcript extraction complete",
		"run_id", runID,
		"run_type", info.RunType,
		"qa_goal", info.QAGoal,
		"extracted", len(contents),
		"passed", passed,
		"rejected", rejected)

	return outcomes, nil
}

func (w *Workflow) logIssue(ctx context.Context, runID uuid.UUID, issueType, severity, detail string) {
	if err := w.recorder.LogIssue(ctx, runID, issueType, severity, detail); err != nil {
		w.logger.Error("log issue", "run_id", runID, "issue_type", issueType, "error", err)
	}
}
