package extraction

import (
	"strings"
	"unicode/utf8"
)

// extractText decodes a plain text file, falling back to Latin-1 when the
// bytes are not valid UTF-8. Content is preserved exactly; typos and
// formatting errors are never cleaned up.
func (e *Extractor) extractText(data []byte, sourceHash string) (*Result, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		text = decodeLatin1(data)
	}

	return &Result{
		Text:            text,
		TextLength:      len(text),
		Entities:        detectEntities(text, "file"),
		Tables:          []ExtractedTable{},
		ConfidenceScore: 1.0,
		SourceHash:      sourceHash,
		Method:          "text",
	}, nil
}

func decodeLatin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
