package api

import (
	"net/http"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/config"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/routes"
)

// registerRoutes registers all domain routes on the module mux.
func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config, runtime *Runtime) {
	documents := NewDocumentHandler(domain.Pipeline, runtime.Logger, cfg.API.MaxUploadSizeBytes())
	transcripts := NewTranscriptHandler(domain.Pipeline, runtime.Logger)

	routes.Register(mux,
		domain.Runs.Handler().Routes(),
		documents.Routes(),
		transcripts.Routes(),
	)
}
