package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDocx walks the paragraphs and tables of a DOCX body. The format
// is a zip archive whose word/document.xml carries paragraphs (w:p),
// tables (w:tbl > w:tr > w:tc), and text runs (w:t).
func (e *Extractor) extractDocx(data []byte, sourceHash string) (*Result, error) {
	body, err := readDocumentXML(data)
	if err != nil {
		return &Result{
			Entities: []ExtractedEntity{},
			Tables:   []ExtractedTable{},
			Ambiguities: []Ambiguity{{
				Location: "document",
				Issue:    fmt.Sprintf("DOCX parsing error: %v", err),
			}},
			ConfidenceScore: 0.7,
			SourceHash:      sourceHash,
			Method:          "docx",
		}, nil
	}

	paragraphs, rawTables, err := walkDocumentXML(body)
	if err != nil {
		return &Result{
			Entities: []ExtractedEntity{},
			Tables:   []ExtractedTable{},
			Ambiguities: []Ambiguity{{
				Location: "document",
				Issue:    fmt.Sprintf("DOCX body walk error: %v", err),
			}},
			ConfidenceScore: 0.7,
			SourceHash:      sourceHash,
			Method:          "docx",
		}, nil
	}

	var (
		text     strings.Builder
		entities []ExtractedEntity
	)

	for i, para := range paragraphs {
		if strings.TrimSpace(para) == "" {
			continue
		}
		text.WriteString(para)
		text.WriteString("\n")
		entities = append(entities, detectEntities(para, fmt.Sprintf("paragraph %d", i+1))...)
	}

	tables := make([]ExtractedTable, 0, len(rawTables))
	for i, cells := range rawTables {
		tables = append(tables, parseTable(cells, fmt.Sprintf("table %d", i+1)))
	}

	full := text.String()
	return &Result{
		Text:            full,
		TextLength:      len(full),
		Entities:        entities,
		Tables:          tables,
		ConfidenceScore: 0.95,
		SourceHash:      sourceHash,
		Method:          "docx",
	}, nil
}

func readDocumentXML(data []byte) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	return nil, fmt.Errorf("word/document.xml not found")
}

// walkDocumentXML streams the body, collecting top-level paragraph text and
// table cell text. Paragraphs inside table cells belong to the cell, not
// the paragraph list.
func walkDocumentXML(body []byte) (paragraphs []string, tables [][][]string, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	var (
		tableDepth int
		paragraph  strings.Builder
		cell       strings.Builder
		row        []string
		table      [][]string
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					table = nil
				}
			case "tr":
				if tableDepth == 1 {
					row = nil
				}
			case "tc":
				if tableDepth == 1 {
					cell.Reset()
				}
			case "p":
				if tableDepth == 0 {
					paragraph.Reset()
				}
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &t); err != nil {
					return nil, nil, err
				}
				if tableDepth > 0 {
					cell.WriteString(text)
				} else {
					paragraph.WriteString(text)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth == 1 && len(table) > 0 {
					tables = append(tables, table)
				}
				tableDepth--
			case "tr":
				if tableDepth == 1 {
					table = append(table, row)
				}
			case "tc":
				if tableDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
				}
			case "p":
				if tableDepth == 0 {
					paragraphs = append(paragraphs, paragraph.String())
				}
			}
		}
	}

	return paragraphs, tables, nil
}
