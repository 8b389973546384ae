package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
)

// TranscriptRequest describes one meeting transcript pipeline instance.
// Attendees and meeting info come from the ingestion collaborator; the
// decisions and action items are extracted from the segments.
type TranscriptRequest struct {
	MeetingID     uuid.UUID
	OrgID         uuid.UUID
	QAGoal        string
	CorrelationID string

	Segments    []transcripts.Segment
	Attendees   []transcripts.Attendee
	MeetingInfo transcripts.MeetingInfo
}

// TranscriptResult is the outcome of one transcript pipeline instance.
type TranscriptResult struct {
	RunID uuid.UUID `json:"run_id"`
	State State     `json:"state"`

	Decisions   []transcripts.Outcome `json:"decisions"`
	ActionItems []transcripts.Outcome `json:"action_items"`

	Versions   *transcripts.Versions        `json:"versions,omitempty"`
	Compliance transcripts.ComplianceReport `json:"compliance"`

	// SourceKey is the blob key holding the PII-intact source version.
	// Empty unless the database write was approved.
	SourceKey string `json:"source_key,omitempty"`

	Error string `json:"error,omitempty"`
}

// ProcessTranscript extracts decisions and action items from a transcript,
// splits the assembled meeting data into source and database versions, and
// persists only after the zero-residue check approves the database version.
// The PII-intact source version goes to the file store, never the database.
func (p *Pipeline) ProcessTranscript(ctx context.Context, req TranscriptRequest) (*TranscriptResult, error) {
	runID, err := p.store.StartRun(ctx, runs.StartParams{
		SubjectID:     req.MeetingID,
		OrgID:         req.OrgID,
		RunType:       "transcript:meeting",
		QAGoal:        req.QAGoal,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}

	result := &TranscriptResult{RunID: runID}

	decisions, err := p.workflow.Extract(ctx, transcripts.RunInfo{
		MeetingID:     req.MeetingID,
		OrgID:         req.OrgID,
		RunType:       transcripts.ContentDecision,
		QAGoal:        req.QAGoal,
		CorrelationID: req.CorrelationID,
	}, req.Segments)
	if err != nil {
		return p.failTranscript(ctx, result, "workflow_error", err), nil
	}
	result.Decisions = decisions

	actions, err := p.workflow.Extract(ctx, transcripts.RunInfo{
		MeetingID:     req.MeetingID,
		OrgID:         req.OrgID,
		RunType:       transcripts.ContentActionItem,
		QAGoal:        req.QAGoal,
		CorrelationID: req.CorrelationID,
	}, req.Segments)
	if err != nil {
		return p.failTranscript(ctx, result, "workflow_error", err), nil
	}
	result.ActionItems = actions

	extracted := assembleMeeting(req, decisions, actions)
	versions := transcripts.Split(p.detector, extracted)
	result.Versions = &versions

	report := transcripts.VerifyNoPII(p.detector, versions.DB)
	result.Compliance = report

	for _, warning := range report.Warnings {
		p.logIssue(ctx, runID, "completeness_warning", "warning", warning)
	}

	passed := approvedCount(decisions) + approvedCount(actions)
	rejected := len(decisions) + len(actions) - passed

	if !report.Approved {
		for _, issue := range report.Issues {
			p.logIssue(ctx, runID, "pii_residue", "critical", issue)
		}
		result.State = StateRejected
		if err := p.store.CompleteRun(ctx, runID, len(decisions)+len(actions), 0, len(decisions)+len(actions)); err != nil {
			p.logger.Error("complete run", "run_id", runID, "error", err)
		}
		return result, nil
	}

	sourceKey := fmt.Sprintf("meetings/%s/source.json", req.MeetingID)
	sourceJSON, err := json.Marshal(versions.Source)
	if err != nil {
		return p.failTranscript(ctx, result, "source_encode_failed", err), nil
	}
	if err := p.files.Upload(ctx, sourceKey, bytes.NewReader(sourceJSON), "application/json"); err != nil {
		return p.failTranscript(ctx, result, "source_store_failed", err), nil
	}
	result.SourceKey = sourceKey

	if _, err := p.store.SaveArtifact(ctx, runID, "meeting_data", versions.DB); err != nil {
		p.logger.Error("artifact save failed", "run_id", runID, "error", err)
	}

	result.State = StateApproved
	if err := p.store.CompleteRun(ctx, runID, len(decisions)+len(actions), passed, rejected); err != nil {
		p.logger.Error("complete run", "run_id", runID, "error", err)
	}

	p.logger.Info("transcript pipeline complete",
		"run_id", runID,
		"meeting_id", req.MeetingID,
		"redactions", versions.RedactionCount,
		"passed", passed,
		"rejected", rejected,
	)
	return result, nil
}

func (p *Pipeline) failTranscript(ctx context.Context, result *TranscriptResult, issueType string, err error) *TranscriptResult {
	p.logIssue(ctx, result.RunID, issueType, "critical", err.Error())
	p.completeFailed(ctx, result.RunID)
	result.State = StateFailed
	result.Error = err.Error()
	return result
}

// assembleMeeting builds the meeting structure from approved workflow
// outcomes. Rejected items stay in the audit trail only.
func assembleMeeting(req TranscriptRequest, decisions, actions []transcripts.Outcome) transcripts.MeetingData {
	meeting := transcripts.MeetingData{
		Attendees:   req.Attendees,
		MeetingInfo: req.MeetingInfo,
	}

	for _, outcome := range decisions {
		if !outcome.Success || outcome.Content == nil {
			continue
		}
		data := outcome.Content.Content.Data
		meeting.Decisions = append(meeting.Decisions, transcripts.Decision{
			Decision:  stringField(data, "decision"),
			Rationale: stringField(data, "rationale"),
			Impact:    stringField(data, "impact"),
		})
	}

	for _, outcome := range actions {
		if !outcome.Success || outcome.Content == nil {
			continue
		}
		data := outcome.Content.Content.Data
		meeting.ActionItems = append(meeting.ActionItems, transcripts.ActionItem{
			Title:       stringField(data, "title"),
			Description: stringField(data, "description"),
			OwnerName:   stringField(data, "owner_name"),
			OwnerEmail:  stringField(data, "owner_email"),
			DueDate:     stringField(data, "due_date"),
			Priority:    stringField(data, "priority"),
		})
	}

	return meeting
}

func approvedCount(outcomes []transcripts.Outcome) int {
	count := 0
	for _, outcome := range outcomes {
		if outcome.Success {
			count++
		}
	}
	return count
}

// stringField reads a string value from generated content data, treating
// null and absent the same way.
func stringField(data map[string]any, key string) string {
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}
