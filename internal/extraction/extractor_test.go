package extraction_test

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
)

func newExtractor() *extraction.Extractor {
	return extraction.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func findEntity(entities []extraction.ExtractedEntity, entityType extraction.EntityType, fragment string) *extraction.ExtractedEntity {
	for i, entity := range entities {
		if entity.Type == entityType && strings.Contains(entity.Value, fragment) {
			return &entities[i]
		}
	}
	return nil
}

func TestExtractText(t *testing.T) {
	input := "Acme AB reached $5,000,000 ARR in 2025 with 4% monthly churn.\n" +
		"Contact anna@acme.com or visit https://acme.example for details.\n" +
		"Report dated 2025-01-15."

	result, err := newExtractor().Extract(context.Background(), []byte(input), "notes.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Method != "text" {
		t.Errorf("method = %q, want text", result.Method)
	}
	if result.Text != input {
		t.Error("text was altered during extraction")
	}
	if result.TextLength != len(input) {
		t.Errorf("text_length = %d, want %d", result.TextLength, len(input))
	}
	if result.ConfidenceScore != 1.0 {
		t.Errorf("confidence = %v, want 1.0", result.ConfidenceScore)
	}
	if result.Metadata["original_filename"] != "notes.txt" {
		t.Errorf("original_filename = %q", result.Metadata["original_filename"])
	}

	cases := []struct {
		entityType extraction.EntityType
		fragment   string
	}{
		{extraction.EntityMoney, "5,000,000"},
		{extraction.EntityPercentage, "4%"},
		{extraction.EntityEmail, "anna@acme.com"},
		{extraction.EntityURL, "https://acme.example"},
		{extraction.EntityDate, "2025-01-15"},
	}
	for _, tc := range cases {
		entity := findEntity(result.Entities, tc.entityType, tc.fragment)
		if entity == nil {
			t.Errorf("missing %s entity containing %q", tc.entityType, tc.fragment)
			continue
		}
		if entity.SourceLocation == "" {
			t.Errorf("%s entity has no source location", tc.entityType)
		}
	}

	money := findEntity(result.Entities, extraction.EntityMoney, "5,000,000")
	if money != nil && !strings.Contains(money.Context, "ARR") {
		t.Errorf("money context = %q, expected surrounding text", money.Context)
	}
}

func TestMoneyEntityValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no suffix keeps no trailing space", "Acme reached $5,000,000 ARR this year.", "$5,000,000"},
		{"suffix attached", "raised $2M in funding", "$2M"},
		{"suffix after space", "burn of $1.5 M monthly", "$1.5 M"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newExtractor().Extract(context.Background(), []byte(tc.input), "n.txt", "text/plain")
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			var values []string
			for _, entity := range result.Entities {
				if entity.Type == extraction.EntityMoney {
					values = append(values, entity.Value)
				}
			}
			if len(values) != 1 || values[0] != tc.want {
				t.Errorf("money values = %q, want [%q]", values, tc.want)
			}
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	input := []byte("Revenue grew to $2M with 12% margin.")

	first, err := newExtractor().Extract(context.Background(), input, "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := newExtractor().Extract(context.Background(), input, "a.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	sum := sha256.Sum256(input)
	want := hex.EncodeToString(sum[:])
	if first.SourceHash != want {
		t.Errorf("source_hash = %q, want sha256 of input", first.SourceHash)
	}
	if first.SourceHash != second.SourceHash {
		t.Error("identical input produced different source hashes")
	}
	if len(first.Entities) != len(second.Entities) {
		t.Errorf("entity counts differ: %d vs %d", len(first.Entities), len(second.Entities))
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	_, err := newExtractor().Extract(context.Background(), []byte("binary"), "archive.bin", "application/zip")
	if !errors.Is(err, extraction.ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestExtractDetectsTypeFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		method   string
	}{
		{"markdown as text", "readme.md", "# Title", "text"},
		{"html by extension", "page.html", "<html><body>hi</body></html>", "html"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := newExtractor().Extract(context.Background(), []byte(tc.data), tc.filename, "")
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if result.Method != tc.method {
				t.Errorf("method = %q, want %q", result.Method, tc.method)
			}
		})
	}
}

func TestExtractHTML(t *testing.T) {
	input := `<html><head><style>body { color: red }</style>
<script>alert("never")</script></head><body>
<p>Quarterly revenue was $1,200,000.</p>
<table>
<tr><th>Metric</th><th>Value</th></tr>
<tr><td>Churn</td><td>4%</td></tr>
</table>
</body></html>`

	result, err := newExtractor().Extract(context.Background(), []byte(input), "report.html", "text/html")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if strings.Contains(result.Text, "alert") || strings.Contains(result.Text, "color: red") {
		t.Error("script or style content leaked into text")
	}
	if !strings.Contains(result.Text, "Quarterly revenue") {
		t.Error("body text missing")
	}

	if len(result.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(result.Tables))
	}
	table := result.Tables[0]
	if len(table.Headers) != 2 || table.Headers[0] != "Metric" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0][1] != "4%" {
		t.Errorf("rows = %v", table.Rows)
	}
	if table.Malformed {
		t.Error("well-formed table marked malformed")
	}

	if findEntity(result.Entities, extraction.EntityMoney, "1,200,000") == nil {
		t.Error("missing money entity from html body")
	}
}

func TestExtractHTMLMalformedTable(t *testing.T) {
	input := `<table>
<tr><th>A</th><th>B</th></tr>
<tr><td>only one cell</td></tr>
</table>`

	result, err := newExtractor().Extract(context.Background(), []byte(input), "t.html", "text/html")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(result.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(result.Tables))
	}
	if !result.Tables[0].Malformed {
		t.Error("ragged table not marked malformed")
	}
	if result.Tables[0].Confidence >= 0.95 {
		t.Errorf("malformed confidence = %v, expected reduced", result.Tables[0].Confidence)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDocx(t *testing.T) {
	documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Funding round closed at $3,500,000.</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Year</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Revenue</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>2025</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>$1M</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
</w:body>
</w:document>`

	data := buildDocx(t, documentXML)
	result, err := newExtractor().Extract(context.Background(), data, "deck.docx", "")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Method != "docx" {
		t.Errorf("method = %q, want docx", result.Method)
	}
	if !strings.Contains(result.Text, "Funding round closed") {
		t.Error("paragraph text missing")
	}
	if strings.Contains(result.Text, "Revenue") {
		t.Error("table cell text leaked into paragraph text")
	}
	if findEntity(result.Entities, extraction.EntityMoney, "3,500,000") == nil {
		t.Error("missing money entity from paragraph")
	}

	if len(result.Tables) != 1 {
		t.Fatalf("tables = %d, want 1", len(result.Tables))
	}
	table := result.Tables[0]
	if len(table.Headers) != 2 || table.Headers[0] != "Year" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "2025" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestExtractDocxCorrupt(t *testing.T) {
	result, err := newExtractor().Extract(
		context.Background(),
		[]byte("not a zip archive"),
		"broken.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(result.Ambiguities) == 0 {
		t.Fatal("corrupt docx produced no ambiguities")
	}
	if result.ConfidenceScore >= 0.95 {
		t.Errorf("confidence = %v, expected reduced for corrupt input", result.ConfidenceScore)
	}
}

func TestExtractTextLatin1Fallback(t *testing.T) {
	input := []byte{'c', 'a', 'f', 0xE9}

	result, err := newExtractor().Extract(context.Background(), input, "menu.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Text != "café" {
		t.Errorf("text = %q, want café", result.Text)
	}
}
