package transcripts

import (
	"fmt"
	"strings"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
)

// Versions holds the two parallel copies of one meeting extraction. The
// source version keeps personal data and goes to the source-file store
// only; the database version is redacted. They are produced together so
// they can never drift.
type Versions struct {
	DB             MeetingData `json:"db_version"`
	Source         MeetingData `json:"source_version"`
	RedactionCount int         `json:"redaction_count"`
}

// ComplianceReport is the verdict on a database version. Issues block the
// write; warnings never do.
type ComplianceReport struct {
	Approved bool     `json:"approved"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

// Split produces the database and source versions of extracted meeting
// data. Attendee names stay in the database for business context; emails
// do not. Action descriptions are scrubbed with typed tokens.
func Split(detector privacy.Detector, extracted MeetingData) Versions {
	versions := Versions{Source: extracted}

	dbAttendees := make([]Attendee, 0, len(extracted.Attendees))
	for _, attendee := range extracted.Attendees {
		dbAttendees = append(dbAttendees, Attendee{
			Name:        attendee.Name,
			Role:        attendee.Role,
			PIIRedacted: true,
		})
	}

	dbActions := make([]ActionItem, 0, len(extracted.ActionItems))
	for _, action := range extracted.ActionItems {
		redacted, entities := privacy.Scrub(detector, action.Description)
		db := action
		db.Description = redacted
		db.OwnerEmail = ""
		db.PIIRedacted = len(entities) > 0 || action.OwnerEmail != ""
		versions.RedactionCount += len(entities)
		dbActions = append(dbActions, db)
	}

	versions.DB = MeetingData{
		Attendees:   dbAttendees,
		ActionItems: dbActions,
		Decisions:   extracted.Decisions,
		MeetingInfo: extracted.MeetingInfo,
	}
	return versions
}

// VerifyNoPII is the zero-residue gate: any personal identifier left in
// the database version rejects the write outright. Names inside decision
// text are tolerated; decision makers are business context.
func VerifyNoPII(detector privacy.Detector, db MeetingData) ComplianceReport {
	var issues, warnings []string

	for i, attendee := range db.Attendees {
		if attendee.Email != "" {
			issues = append(issues, fmt.Sprintf("Attendee %d has email in DB version (GDPR violation)", i+1))
		}
		if strings.Contains(attendee.Name, "@") {
			issues = append(issues, fmt.Sprintf("Attendee %d name contains email address", i+1))
		}
	}

	for i, action := range db.ActionItems {
		residue := privacy.Residue(detector, action.Description)
		if len(residue) > 0 {
			types := make([]string, 0, len(residue))
			for _, entity := range residue {
				types = append(types, entity.Type)
			}
			issues = append(issues, fmt.Sprintf("Action %d contains PII in description: %s", i+1, strings.Join(types, ", ")))
		}
		if action.OwnerEmail != "" {
			issues = append(issues, fmt.Sprintf("Action %d has owner email in DB version (GDPR violation)", i+1))
		}
	}

	for i, decision := range db.Decisions {
		text := decision.Decision + " " + decision.Rationale
		for _, entity := range privacy.Residue(detector, text, privacy.TypeEmail, privacy.TypePhone) {
			issues = append(issues, fmt.Sprintf("Decision %d contains %s: %s", i+1, entity.Type, entity.Value))
		}
	}

	if len(db.Attendees) == 0 {
		warnings = append(warnings, "No attendees - meeting might be incomplete")
	}
	if len(db.ActionItems) == 0 {
		warnings = append(warnings, "No action items - unusual for business meeting")
	}
	if len(db.Decisions) == 0 {
		warnings = append(warnings, "No decisions recorded")
	}

	return ComplianceReport{
		Approved: len(issues) == 0,
		Issues:   issues,
		Warnings: warnings,
	}
}
