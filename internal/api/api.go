// Package api assembles the API module: domain systems, route registration,
// and module-level middleware.
package api

import (
	"net/http"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/config"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/infrastructure"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/middleware"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
