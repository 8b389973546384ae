package transcripts_test

import (
	"strings"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
)

func TestSplit(t *testing.T) {
	detector := newDetector(t)

	extracted := transcripts.MeetingData{
		Attendees: []transcripts.Attendee{
			{Name: "Jane Doe", Email: "jane@acme.com", Role: "CEO"},
		},
		ActionItems: []transcripts.ActionItem{
			{
				Title:       "Send pricing",
				Description: "Email jane@acme.com the pricing sheet by Friday",
				OwnerEmail:  "bob@acme.com",
			},
			{Title: "Book room", Description: "Book the large meeting room"},
		},
		Decisions: []transcripts.Decision{
			{Decision: "Proceed with the pilot", Rationale: "Budget approved"},
		},
	}

	versions := transcripts.Split(detector, extracted)

	// Source version keeps everything.
	if versions.Source.Attendees[0].Email != "jane@acme.com" {
		t.Error("source version lost attendee email")
	}
	if versions.Source.ActionItems[0].Description != "Email jane@acme.com the pricing sheet by Friday" {
		t.Error("source version lost action description")
	}

	// Database version is scrubbed.
	db := versions.DB
	if db.Attendees[0].Email != "" {
		t.Error("db version kept attendee email")
	}
	if db.Attendees[0].Name != "Jane Doe" {
		t.Error("db version should keep attendee name for business context")
	}
	if !db.Attendees[0].PIIRedacted {
		t.Error("db attendee not marked redacted")
	}
	if !strings.Contains(db.ActionItems[0].Description, "[EMAIL_REDACTED]") {
		t.Errorf("db description = %q, expected redaction token", db.ActionItems[0].Description)
	}
	if db.ActionItems[0].OwnerEmail != "" {
		t.Error("db version kept owner email")
	}
	if !db.ActionItems[0].PIIRedacted {
		t.Error("redacted action not marked")
	}
	if db.ActionItems[1].PIIRedacted {
		t.Error("clean action marked redacted")
	}
	if versions.RedactionCount == 0 {
		t.Error("redaction count not tracked")
	}
}

func TestSplitRoundTrip(t *testing.T) {
	detector := newDetector(t)

	extracted := transcripts.MeetingData{
		ActionItems: []transcripts.ActionItem{
			{Title: "Follow up", Description: "Ask jane@acme.com to confirm, or call 070-1234567"},
		},
	}

	versions := transcripts.Split(detector, extracted)
	report := transcripts.VerifyNoPII(detector, versions.DB)

	if !report.Approved {
		t.Fatalf("zero-residue check failed: %v", report.Issues)
	}
	if len(privacy.Residue(detector, versions.DB.ActionItems[0].Description, privacy.TypeEmail)) != 0 {
		t.Error("email residue in db version")
	}
}

func TestVerifyNoPIIRejects(t *testing.T) {
	detector := newDetector(t)

	tests := []struct {
		name string
		db   transcripts.MeetingData
	}{
		{
			name: "attendee email",
			db: transcripts.MeetingData{
				Attendees: []transcripts.Attendee{{Name: "Jane Doe", Email: "jane@acme.com"}},
			},
		},
		{
			name: "email as attendee name",
			db: transcripts.MeetingData{
				Attendees: []transcripts.Attendee{{Name: "jane@acme.com"}},
			},
		},
		{
			name: "pii in action description",
			db: transcripts.MeetingData{
				ActionItems: []transcripts.ActionItem{{Description: "call 070-1234567 tomorrow"}},
			},
		},
		{
			name: "email in decision",
			db: transcripts.MeetingData{
				Decisions: []transcripts.Decision{{Decision: "escalate to jane@acme.com"}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report := transcripts.VerifyNoPII(detector, test.db)
			if report.Approved {
				t.Errorf("approved despite PII: %+v", test.db)
			}
			if len(report.Issues) == 0 {
				t.Error("no issues reported")
			}
		})
	}
}

func TestVerifyNoPIIWarningsDoNotBlock(t *testing.T) {
	detector := newDetector(t)

	report := transcripts.VerifyNoPII(detector, transcripts.MeetingData{})
	if !report.Approved {
		t.Errorf("empty meeting rejected: %v", report.Issues)
	}
	if len(report.Warnings) != 3 {
		t.Errorf("warnings = %d, expected 3 completeness warnings", len(report.Warnings))
	}

	// Decision-maker names in decisions are business context, not a
	// violation.
	named := transcripts.MeetingData{
		Attendees: []transcripts.Attendee{{Name: "Jane Doe"}},
		Decisions: []transcripts.Decision{{Decision: "Jane Doe approved the budget"}},
	}
	if report := transcripts.VerifyNoPII(detector, named); !report.Approved {
		t.Errorf("decision-maker name rejected: %v", report.Issues)
	}
}
