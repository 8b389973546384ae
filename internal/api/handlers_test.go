package api_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/api"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// The validation tests below never reach the pipeline, so a nil pipeline
// keeps them free of provider and store stubs.

func documentMux() *http.ServeMux {
	handler := api.NewDocumentHandler(nil, discardLogger(), 1024*1024)
	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())
	return mux
}

func transcriptMux() *http.ServeMux {
	handler := api.NewTranscriptHandler(nil, discardLogger())
	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())
	return mux
}

func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("document body"))
	}

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestDocumentProcessValidation(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		filename string
		want     int
	}{
		{
			name:     "unknown content type",
			fields:   map[string]string{"content_type": "horoscope"},
			filename: "doc.txt",
			want:     http.StatusBadRequest,
		},
		{
			name:     "missing content type",
			fields:   map[string]string{},
			filename: "doc.txt",
			want:     http.StatusBadRequest,
		},
		{
			name:   "missing file",
			fields: map[string]string{"content_type": "due_diligence"},
			want:   http.StatusBadRequest,
		},
		{
			name: "unknown output mode",
			fields: map[string]string{
				"content_type": "due_diligence",
				"output_mode":  "whisper",
			},
			filename: "doc.txt",
			want:     http.StatusBadRequest,
		},
		{
			name: "invalid org id",
			fields: map[string]string{
				"content_type": "due_diligence",
				"org_id":       "not-a-uuid",
			},
			filename: "doc.txt",
			want:     http.StatusBadRequest,
		},
	}

	mux := documentMux()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tc.fields, tc.filename)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/documents/process", body)
			req.Header.Set("Content-Type", contentType)
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestTranscriptProcessValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "malformed json",
			body: "{not json",
			want: http.StatusBadRequest,
		},
		{
			name: "missing meeting id",
			body: `{"qa_goal":"extract decisions","segments":[{"speaker":"Anna","text":"hi"}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "missing qa goal",
			body: `{"meeting_id":"550e8400-e29b-41d4-a716-446655440000","segments":[{"speaker":"Anna","text":"hi"}]}`,
			want: http.StatusBadRequest,
		},
		{
			name: "no segments",
			body: `{"meeting_id":"550e8400-e29b-41d4-a716-446655440000","qa_goal":"extract decisions","segments":[]}`,
			want: http.StatusBadRequest,
		},
	}

	mux := transcriptMux()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/transcripts/process", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
