package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/pipeline"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/handlers"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/routes"
)

var (
	ErrInvalidTranscript = errors.New("invalid transcript: meeting_id, qa_goal, and segments are required")
)

// TranscriptHandler exposes the transcript pipeline over HTTP.
type TranscriptHandler struct {
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

func NewTranscriptHandler(p *pipeline.Pipeline, logger *slog.Logger) *TranscriptHandler {
	return &TranscriptHandler{
		pipeline: p,
		logger:   logger.With("handler", "transcripts"),
	}
}

// Routes returns the route group for transcript processing.
func (h *TranscriptHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/transcripts",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/process", Handler: h.Process},
		},
	}
}

// TranscriptPayload is the request body for transcript processing.
type TranscriptPayload struct {
	MeetingID     uuid.UUID               `json:"meeting_id"`
	OrgID         uuid.UUID               `json:"org_id"`
	QAGoal        string                  `json:"qa_goal"`
	CorrelationID string                  `json:"correlation_id"`
	Segments      []transcripts.Segment   `json:"segments"`
	Attendees     []transcripts.Attendee  `json:"attendees"`
	MeetingInfo   transcripts.MeetingInfo `json:"meeting_info"`
}

// Process runs one meeting transcript through decision and action item
// extraction, privacy splitting, and the zero-residue check.
func (h *TranscriptHandler) Process(w http.ResponseWriter, r *http.Request) {
	var payload TranscriptPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidTranscript)
		return
	}

	if payload.MeetingID == uuid.Nil || payload.QAGoal == "" || len(payload.Segments) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidTranscript)
		return
	}

	for i := range payload.Segments {
		if payload.Segments[i].ID == uuid.Nil {
			payload.Segments[i].ID = uuid.New()
		}
	}

	result, err := h.pipeline.ProcessTranscript(r.Context(), pipeline.TranscriptRequest{
		MeetingID:     payload.MeetingID,
		OrgID:         payload.OrgID,
		QAGoal:        payload.QAGoal,
		CorrelationID: payload.CorrelationID,
		Segments:      payload.Segments,
		Attendees:     payload.Attendees,
		MeetingInfo:   payload.MeetingInfo,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
