package api

import (
	"github.com/AIwizard-disruptive/dvai-sub000/internal/config"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/pipeline"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Runs     runs.System
	Pipeline *pipeline.Pipeline
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	runsSystem := runs.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	pipelineSystem := pipeline.New(
		runtime.LLM,
		runtime.Detector,
		runsSystem,
		runtime.Storage,
		runtime.Logger,
		pipeline.Config{BatchLimit: cfg.Pipeline.BatchLimit},
	)

	return &Domain{
		Runs:     runsSystem,
		Pipeline: pipelineSystem,
	}
}
