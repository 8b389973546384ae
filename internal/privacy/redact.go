package privacy

import "sort"

// Redaction tokens, one per entity type so redacted text stays readable.
const (
	tokenEmail   = "[EMAIL_REDACTED]"
	tokenPhone   = "[PHONE_REDACTED]"
	tokenName    = "[NAME_REDACTED]"
	tokenGeneric = "[REDACTED]"
)

// Redact replaces each entity with its typed token. Entities are spliced
// in reverse position order so earlier offsets stay valid.
func Redact(text string, entities []Entity) string {
	ordered := make([]Entity, len(entities))
	copy(ordered, entities)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	redacted := text
	for _, entity := range ordered {
		if entity.Start < 0 || entity.End > len(redacted) || entity.Start > entity.End {
			continue
		}
		redacted = redacted[:entity.Start] + token(entity.Type) + redacted[entity.End:]
	}
	return redacted
}

func token(entityType string) string {
	switch entityType {
	case TypeEmail:
		return tokenEmail
	case TypePhone:
		return tokenPhone
	case TypePersonName:
		return tokenName
	default:
		return tokenGeneric
	}
}

// Scrub detects and redacts in one step, returning the redacted text and
// what was found.
func Scrub(detector Detector, text string) (string, []Entity) {
	entities := detector.Detect(text)
	if len(entities) == 0 {
		return text, nil
	}
	return Redact(text, entities), entities
}

// Residue returns entities of the given types still present in text. An
// empty type list means all types. Callers use it after redaction; any
// email or phone residue blocks the database write.
func Residue(detector Detector, text string, types ...string) []Entity {
	entities := detector.Detect(text)
	if len(types) == 0 {
		return entities
	}

	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	var filtered []Entity
	for _, entity := range entities {
		if wanted[entity.Type] {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}
