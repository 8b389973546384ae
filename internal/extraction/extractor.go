package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// MIME types the extractor dispatches on.
const (
	mimePDF   = "application/pdf"
	mimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeWord  = "application/msword"
	mimeText  = "text/plain"
	mimeHTML  = "text/html"
	mimeXHTML = "application/xhtml+xml"
)

// Extractor parses raw document bytes into a Result. It performs no
// interpretation: only what is literally present in the input is emitted.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger.With("stage", "extract")}
}

// Extract parses the document and returns its extraction result. The MIME
// type is detected from content and filename when not declared. Extraction
// is deterministic: identical bytes produce an identical source hash and
// entity set.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename, mimeType string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	sourceHash := hex.EncodeToString(sum[:])

	if mimeType == "" {
		mimeType = detectMIME(data, filename)
	}

	var (
		result *Result
		err    error
	)

	switch normalizeMIME(mimeType) {
	case mimePDF:
		result, err = e.extractPDF(data, sourceHash)
	case mimeDocx, mimeWord:
		result, err = e.extractDocx(data, sourceHash)
	case mimeText:
		result, err = e.extractText(data, sourceHash)
	case mimeHTML, mimeXHTML:
		result, err = e.extractHTML(data, sourceHash)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return nil, err
	}

	if result.Metadata == nil {
		result.Metadata = map[string]string{}
	}
	result.Metadata["original_filename"] = filename
	result.ExtractedAt = time.Now().UTC()

	e.logger.Info(
		"extraction complete",
		"method", result.Method,
		"text_length", result.TextLength,
		"entities", len(result.Entities),
		"tables", len(result.Tables),
		"ambiguities", len(result.Ambiguities),
		"confidence", result.ConfidenceScore,
	)

	return result, nil
}

func detectMIME(data []byte, filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDocx
	case ".html", ".htm":
		return mimeHTML
	case ".txt", ".md":
		return mimeText
	}

	sniffed := http.DetectContentType(data)

	// DOCX files sniff as zip archives.
	if sniffed == "application/zip" && strings.HasSuffix(strings.ToLower(filename), ".docx") {
		return mimeDocx
	}

	return sniffed
}

func normalizeMIME(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// mean returns the average of scores, or fallback when scores is empty.
func mean(scores []float64, fallback float64) float64 {
	if len(scores) == 0 {
		return fallback
	}
	var total float64
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}
