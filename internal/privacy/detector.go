package privacy

import (
	"regexp"
	"sort"
)

// DefaultPhonePattern matches Swedish national and international phone
// formats. Deployments in other regions override it through config. The
// boundary sits on the 0 branch only; \b before + never holds.
const DefaultPhonePattern = `(\+46|\b0)[\s-]?\d{1,3}[\s-]?\d{5,8}\b`

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// Two adjacent capitalized words, including Swedish letters. A crude
	// stand-in for proper NER; it overmatches, which is the safe direction
	// for redaction. No \b anchors: RE2 word boundaries are ASCII-only and
	// would skip names starting with Å, Ä, or Ö.
	namePattern = regexp.MustCompile(`[A-ZÅÄÖ][a-zåäö]+\s+[A-ZÅÄÖ][a-zåäö]+`)
)

// RegexDetector detects emails, phone numbers, and person names with
// pattern matching.
type RegexDetector struct {
	phone *regexp.Regexp
}

// NewRegexDetector builds a detector. An empty phonePattern selects
// DefaultPhonePattern; an invalid one is a configuration error.
func NewRegexDetector(phonePattern string) (*RegexDetector, error) {
	if phonePattern == "" {
		phonePattern = DefaultPhonePattern
	}
	phone, err := regexp.Compile(phonePattern)
	if err != nil {
		return nil, err
	}
	return &RegexDetector{phone: phone}, nil
}

func (d *RegexDetector) Detect(text string) []Entity {
	var entities []Entity

	collect := func(pattern *regexp.Regexp, entityType, category string) {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			entities = append(entities, Entity{
				Type:     entityType,
				Value:    text[loc[0]:loc[1]],
				Start:    loc[0],
				End:      loc[1],
				Category: category,
			})
		}
	}

	collect(emailPattern, TypeEmail, CategoryPersonalIdentifier)
	collect(d.phone, TypePhone, CategoryPersonalIdentifier)
	collect(namePattern, TypePersonName, CategoryPersonalData)

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})
	return entities
}
