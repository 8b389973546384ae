// Package handlers provides shared HTTP response helpers for API handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes value as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// RespondError logs the error and writes a JSON error body. Internal server
// errors are masked with a generic message so details stay in the logs.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}

	RespondJSON(w, status, ErrorResponse{Error: message})
}
