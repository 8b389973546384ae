package evidence

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultRelevance = 0.85
	maxQuoteLength   = 200
	minTokenLength   = 4
)

// LexicalMatcher matches claims to segments by literal containment or
// keyword overlap. It deliberately errs toward recall; weak matches are
// caught by the traceability threshold and verification, not here.
type LexicalMatcher struct {
	relevance float64
}

func NewLexicalMatcher() *LexicalMatcher {
	return &LexicalMatcher{relevance: defaultRelevance}
}

func (m *LexicalMatcher) Match(content Content, segments []SourceSegment) Matched {
	var pointers []Pointer

	for field, value := range content.Data {
		if value == nil {
			continue
		}
		claim := strings.ToLower(fmt.Sprintf("%v", value))

		for _, segment := range segments {
			text := strings.ToLower(segment.Text)
			if !strings.Contains(text, claim) && !keywordMatch(claim, text) {
				continue
			}

			quote := truncateQuote(segment.Text)
			pointers = append(pointers, Pointer{
				SourceTable:    segment.Table,
				SourceID:       segment.ID,
				SourceField:    segment.Field,
				ContentField:   field,
				Quote:          quote,
				RelevanceScore: m.relevance,
			})
		}
	}

	return Matched{
		Content:      content,
		Evidence:     pointers,
		Traceability: traceability(content, pointers),
	}
}

// truncateQuote caps stored quotes, backing up to a rune boundary so a
// multi-byte character is never split.
func truncateQuote(text string) string {
	if len(text) <= maxQuoteLength {
		return text
	}
	cut := maxQuoteLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// keywordMatch reports whether any substantial token of the claim appears
// in the text. Short tokens are skipped; they match everything.
func keywordMatch(claim, text string) bool {
	for _, token := range strings.Fields(claim) {
		if len(token) >= minTokenLength && strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// traceability is the share of non-null fields backed by at least one
// pointer. Content with no fields at all scores zero.
func traceability(content Content, pointers []Pointer) float64 {
	if len(content.Data) == 0 {
		return 0
	}

	covered := make(map[string]bool, len(pointers))
	for _, pointer := range pointers {
		covered[pointer.ContentField] = true
	}

	var nonNull, evidenced int
	for field, value := range content.Data {
		if value == nil {
			continue
		}
		nonNull++
		if covered[field] {
			evidenced++
		}
	}
	if nonNull == 0 {
		return 0
	}
	return float64(evidenced) / float64(nonNull)
}
