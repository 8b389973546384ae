package extraction

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDF walks the document page by page. A failure on one page is
// recorded as a corrupted section and degrades confidence; it never aborts
// the run. Pages with no extractable text are flagged as ambiguities since
// they may be scanned images.
func (e *Extractor) extractPDF(data []byte, sourceHash string) (*Result, error) {
	var (
		text      strings.Builder
		entities  []ExtractedEntity
		tables    []ExtractedTable
		ambigs    []Ambiguity
		corrupted []string
		scores    []float64
	)

	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		corrupted = append(corrupted, fmt.Sprintf("PDF validation error: %v", err))
		scores = append(scores, 0.3)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		corrupted = append(corrupted, fmt.Sprintf("PDF parsing error: %v", err))
		return &Result{
			Entities:          []ExtractedEntity{},
			Tables:            []ExtractedTable{},
			ConfidenceScore:   0.3,
			CorruptedSections: corrupted,
			SourceHash:        sourceHash,
			Method:            "pdf",
		}, nil
	}

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		location := fmt.Sprintf("page %d", pageNum)

		pageText, err := readPage(reader, pageNum)
		if err != nil {
			corrupted = append(corrupted, fmt.Sprintf("%s: %v", location, err))
			scores = append(scores, 0.3)
			continue
		}

		if strings.TrimSpace(pageText) == "" {
			ambigs = append(ambigs, Ambiguity{
				Location: location,
				Issue:    "No text extracted - may be scanned image requiring OCR",
			})
			scores = append(scores, 0.5)
			continue
		}

		fmt.Fprintf(&text, "\n--- Page %d ---\n%s\n", pageNum, pageText)
		entities = append(entities, detectEntities(pageText, location)...)
		tables = append(tables, detectTextTables(pageText, location)...)
		scores = append(scores, 1.0)
	}

	full := text.String()
	return &Result{
		Text:              full,
		TextLength:        len(full),
		Entities:          entities,
		Tables:            tables,
		ConfidenceScore:   mean(scores, 0.5),
		Ambiguities:       ambigs,
		CorruptedSections: corrupted,
		SourceHash:        sourceHash,
		Method:            "pdf",
	}, nil
}

// readPage extracts plain text from a single page, converting parser
// panics on malformed content streams into errors.
func readPage(reader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page parse failure: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("missing page object")
	}

	return page.GetPlainText(nil)
}

var columnSeparator = regexp.MustCompile(`\t|\s{2,}`)

// detectTextTables recovers tabular blocks from page text: two or more
// consecutive lines whose cells are separated by tabs or wide spacing.
// The PDF content stream carries no table structure, so this is a layout
// heuristic; ill-fitting blocks surface as malformed tables downstream.
func detectTextTables(pageText, location string) []ExtractedTable {
	var (
		tables [][]string
		block  [][]string
		found  []ExtractedTable
	)

	flush := func() {
		if len(block) >= 2 {
			tables = append(tables, nil) // count tables for location labels
			found = append(found, parseTable(block, fmt.Sprintf("%s, table %d", location, len(tables))))
		}
		block = nil
	}

	for _, line := range strings.Split(pageText, "\n") {
		cells := splitColumns(line)
		if len(cells) >= 2 {
			block = append(block, cells)
			continue
		}
		flush()
	}
	flush()

	return found
}

func splitColumns(line string) []string {
	var cells []string
	for _, cell := range columnSeparator.Split(strings.TrimSpace(line), -1) {
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}
