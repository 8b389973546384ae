// Package privacy detects and redacts personal data before anything is
// written to the database. The source file keeps personal data intact;
// the database only ever sees redacted text, and a residue scan guards
// the boundary.
package privacy

// Entity types.
const (
	TypeEmail      = "email"
	TypePhone      = "phone"
	TypePersonName = "person_name"
)

// GDPR categories.
const (
	CategoryPersonalIdentifier = "personal_identifier"
	CategoryPersonalData       = "personal_data"
)

// Entity is one detected piece of personal data with its byte position.
type Entity struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Category string `json:"gdpr_category"`
}

// Detector finds personal data in text. The regex implementation is the
// default; an NER-backed one can replace it without changing callers.
type Detector interface {
	Detect(text string) []Entity
}
