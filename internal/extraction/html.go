package extraction

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// extractHTML strips markup and walks <table> elements. Script and style
// content is dropped entirely.
func (e *Extractor) extractHTML(data []byte, sourceHash string) (*Result, error) {
	if !utf8.Valid(data) {
		data = []byte(decodeLatin1(data))
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return &Result{
			Entities:          []ExtractedEntity{},
			Tables:            []ExtractedTable{},
			ConfidenceScore:   0.3,
			CorruptedSections: []string{fmt.Sprintf("HTML parsing error: %v", err)},
			SourceHash:        sourceHash,
			Method:            "html",
		}, nil
	}

	text := collectText(doc)

	var tables []ExtractedTable
	for i, tableNode := range findElements(doc, "table") {
		cells := tableCells(tableNode)
		if len(cells) > 0 {
			tables = append(tables, parseTable(cells, fmt.Sprintf("html table %d", i+1)))
		}
	}

	return &Result{
		Text:            text,
		TextLength:      len(text),
		Entities:        detectEntities(text, "html body"),
		Tables:          tables,
		ConfidenceScore: 0.9,
		SourceHash:      sourceHash,
		Method:          "html",
	}, nil
}

func collectText(node *html.Node) string {
	var parts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return strings.Join(parts, "\n")
}

func findElements(node *html.Node, name string) []*html.Node {
	var found []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == name {
			found = append(found, n)
			return // nested tables belong to their parent's cells
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)

	return found
}

func tableCells(table *html.Node) [][]string {
	var rows [][]string

	for _, tr := range findElements(table, "tr") {
		var cells []string
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
				cells = append(cells, strings.TrimSpace(collectText(n)))
				return
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		}
		walk(tr)
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	return rows
}
