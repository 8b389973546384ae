package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AIwizard-disruptive/dvai-sub000/pkg/handlers"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.RespondJSON(rec, http.StatusCreated, map[string]string{"id": "42"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content-type = %q", got)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["id"] != "42" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondError(t *testing.T) {
	t.Run("client error keeps message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, discardLogger(), http.StatusBadRequest, errors.New("missing field"))

		var body handlers.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json body: %v", err)
		}
		if body.Error != "missing field" {
			t.Errorf("error = %q", body.Error)
		}
	})

	t.Run("server error masks message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handlers.RespondError(rec, discardLogger(), http.StatusInternalServerError, errors.New("dsn=postgres://secret"))

		var body handlers.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json body: %v", err)
		}
		if body.Error != "internal server error" {
			t.Errorf("error = %q, internal details leaked", body.Error)
		}
	})
}
