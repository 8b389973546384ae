package extraction

import "regexp"

// Detector patterns. These intentionally match literal spans only; no
// normalization or interpretation happens at this stage.
var (
	moneyPattern      = regexp.MustCompile(`[$€£¥]\s*[\d,]+\.?\d*(?:\s*[KMBkmb])?`)
	percentagePattern = regexp.MustCompile(`\d+\.?\d*\s*%`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	urlPattern        = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`),
	}
)

const contextRadius = 20

// detectEntities runs every pattern against text, attaching the given
// source location and surrounding context to each match.
func detectEntities(text, location string) []ExtractedEntity {
	var entities []ExtractedEntity

	collect := func(pattern *regexp.Regexp, entityType EntityType, confidence float64, withContext bool) {
		for _, span := range pattern.FindAllStringIndex(text, -1) {
			entity := ExtractedEntity{
				Type:           entityType,
				Value:          text[span[0]:span[1]],
				SourceLocation: location,
				Confidence:     confidence,
			}
			if withContext {
				entity.Context = surrounding(text, span[0], span[1])
			}
			entities = append(entities, entity)
		}
	}

	collect(moneyPattern, EntityMoney, 0.95, true)
	collect(percentagePattern, EntityPercentage, 0.98, true)
	collect(emailPattern, EntityEmail, 1.0, true)
	collect(urlPattern, EntityURL, 1.0, false)
	for _, pattern := range datePatterns {
		collect(pattern, EntityDate, 0.9, true)
	}

	return entities
}

func surrounding(text string, start, end int) string {
	lo := max(0, start-contextRadius)
	hi := min(len(text), end+contextRadius)
	return text[lo:hi]
}
