package extraction

// Table confidence levels. A table whose row widths disagree with its
// header row is kept but marked malformed with reduced confidence.
const (
	tableConfidence          = 0.95
	malformedTableConfidence = 0.7
)

// parseTable structures raw cell data, treating the first row as headers.
func parseTable(cells [][]string, location string) ExtractedTable {
	if len(cells) == 0 {
		return ExtractedTable{
			Location:  location,
			Headers:   []string{},
			Rows:      [][]string{},
			Malformed: true,
		}
	}

	headers := cells[0]
	rows := cells[1:]

	malformed := false
	for _, row := range rows {
		if len(row) != len(headers) {
			malformed = true
			break
		}
	}

	confidence := tableConfidence
	if malformed {
		confidence = malformedTableConfidence
	}

	return ExtractedTable{
		Location:   location,
		Headers:    headers,
		Rows:       rows,
		Confidence: confidence,
		Malformed:  malformed,
	}
}
