package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/pipeline"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
)

const decisionResponse = `{
	"items": [{
		"decision": "migrate the billing system to the new platform",
		"rationale": null,
		"impact": null,
		"confidence": 0.9
	}]
}`

const actionResponse = `{
	"items": [{
		"title": "Follow up with vendor",
		"description": "follow up with the vendor about pricing",
		"owner_name": null,
		"owner_email": null,
		"due_date": null,
		"priority": null,
		"confidence": 0.8
	}]
}`

func transcriptRequest() pipeline.TranscriptRequest {
	return pipeline.TranscriptRequest{
		MeetingID: uuid.New(),
		OrgID:     uuid.New(),
		QAGoal:    transcripts.GoalZeroHallucinations,
		Segments: []transcripts.Segment{
			{ID: uuid.New(), Speaker: "Anna", Text: "We decided to migrate the billing system to the new platform."},
			{ID: uuid.New(), Speaker: "Bob", Text: "I'll follow up with the vendor about pricing, you can reach me at bob@acme.com."},
		},
		Attendees: []transcripts.Attendee{
			{Name: "Anna Svensson", Email: "anna@acme.com", Role: "CTO"},
		},
	}
}

func TestProcessTranscriptApproved(t *testing.T) {
	client := &stubClient{responses: map[string]string{
		"decision_extraction":    decisionResponse,
		"action_item_extraction": actionResponse,
	}}
	store := newMemStore()
	files := newMemFiles()

	result, err := newPipeline(t, client, store, files).
		ProcessTranscript(context.Background(), transcriptRequest())
	if err != nil {
		t.Fatalf("ProcessTranscript() error: %v", err)
	}

	if result.State != pipeline.StateApproved {
		t.Fatalf("state = %q, compliance: %+v", result.State, result.Compliance)
	}

	db := result.Versions.DB
	if db.Attendees[0].Email != "" {
		t.Error("attendee email reached the database version")
	}
	if db.Attendees[0].Name != "Anna Svensson" {
		t.Error("attendee name dropped from the database version")
	}
	if len(db.Decisions) != 1 || !strings.Contains(db.Decisions[0].Decision, "billing system") {
		t.Errorf("decisions = %+v", db.Decisions)
	}
	if len(db.ActionItems) != 1 {
		t.Fatalf("action items = %+v", db.ActionItems)
	}

	if result.Versions.Source.Attendees[0].Email != "anna@acme.com" {
		t.Error("source version lost attendee email")
	}

	if result.SourceKey == "" {
		t.Fatal("source version not stored")
	}
	exists, _ := files.Exists(context.Background(), result.SourceKey)
	if !exists {
		t.Errorf("no blob at %q", result.SourceKey)
	}

	artifacts, _ := store.Artifacts(context.Background(), result.RunID)
	if len(artifacts) != 1 || artifacts[0].ContentType != "meeting_data" {
		t.Errorf("artifacts = %+v, expected one meeting_data artifact", artifacts)
	}

	run, err := store.Find(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("meeting run not recorded: %v", err)
	}
	if run.Status != runs.StatusCompleted || run.ItemsPassedQA != 2 {
		t.Errorf("run = %+v, expected completed with two passed items", run)
	}
}

func TestProcessTranscriptMissingGoal(t *testing.T) {
	store := newMemStore()

	result, err := newPipeline(t, &stubClient{}, store, newMemFiles()).
		ProcessTranscript(context.Background(), pipeline.TranscriptRequest{
			MeetingID: uuid.New(),
			OrgID:     uuid.New(),
		})
	if err != nil {
		t.Fatalf("ProcessTranscript() error: %v", err)
	}

	if result.State != pipeline.StateFailed {
		t.Errorf("state = %q, expected failed without a QA goal", result.State)
	}

	issues, _ := store.Issues(context.Background(), result.RunID)
	if len(issues) == 0 {
		t.Error("failure not recorded in the issue log")
	}
}
