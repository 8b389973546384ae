package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/generation"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/pipeline"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/verification"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/handlers"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/routes"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrInvalidUpload      = errors.New("invalid upload: file and content_type are required")
	ErrInvalidContentType = errors.New("unknown content_type")
	ErrInvalidOutputMode  = errors.New("unknown output_mode")
)

var contentTypes = map[generation.ContentType]bool{
	generation.DueDiligence:        true,
	generation.SwotAnalysis:        true,
	generation.CompetitiveAnalysis: true,
	generation.InvestmentMemo:      true,
	generation.ExecutiveSummary:    true,
	generation.RiskAssessment:      true,
	generation.MarketAnalysis:      true,
	generation.FinancialSummary:    true,
}

var outputModes = map[string]bool{
	verification.OutputInternal:         true,
	verification.OutputExternalRedacted: true,
	verification.OutputExternalFull:     true,
}

// DocumentHandler exposes the document pipeline over HTTP.
type DocumentHandler struct {
	pipeline      *pipeline.Pipeline
	logger        *slog.Logger
	maxUploadSize int64
}

func NewDocumentHandler(p *pipeline.Pipeline, logger *slog.Logger, maxUploadSize int64) *DocumentHandler {
	return &DocumentHandler{
		pipeline:      p,
		logger:        logger.With("handler", "documents"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group for document processing.
func (h *DocumentHandler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/documents",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/process", Handler: h.Process},
		},
	}
}

// Process runs one uploaded document through the full pipeline and returns
// the pipeline result. The call is synchronous; the run record is readable
// under /runs as soon as the response arrives.
func (h *DocumentHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	contentType := generation.ContentType(r.FormValue("content_type"))
	if !contentTypes[contentType] {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidContentType)
		return
	}

	opts := verification.DefaultOptions()
	if mode := r.FormValue("output_mode"); mode != "" {
		if !outputModes[mode] {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidOutputMode)
			return
		}
		opts.OutputMode = mode
	}

	orgID, err := optionalUUID(r.FormValue("org_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUpload)
		return
	}

	req := pipeline.DocumentRequest{
		DocumentID:    uuid.New(),
		OrgID:         orgID,
		CorrelationID: r.FormValue("correlation_id"),
		Data:          data,
		Filename:      header.Filename,
		MIMEType:      detectMIMEType(header.Header.Get("Content-Type"), data),
		ContentType:   contentType,
		CompanyName:   r.FormValue("company_name"),
		DocumentDate:  r.FormValue("document_date"),
		Verification:  opts,
	}

	result, err := h.pipeline.ProcessDocument(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// detectMIMEType prefers the declared content type and falls back to
// content sniffing when the client sent none.
func detectMIMEType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

func optionalUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, errors.New("invalid org_id")
	}
	return id, nil
}
