// Package pipeline orchestrates the processing stages for one document or
// transcript as an explicit state machine: Extracted, Analyzed, Matched,
// Generated, Verified, ending in a terminal state. Every stage instance is
// constructed explicitly and injected; there are no package-level singletons.
// Instances are independent of each other and may run concurrently; the only
// shared state is the append-only run store.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/analysis"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/evidence"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/extraction"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/generation"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/questions"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/transcripts"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/verification"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/storage"
)

// Stage names one processing stage of a pipeline instance.
type Stage string

const (
	StageReceived  Stage = "received"
	StageExtracted Stage = "extracted"
	StageAnalyzed  Stage = "analyzed"
	StageMatched   Stage = "matched"
	StageGenerated Stage = "generated"
	StageVerified  Stage = "verified"
)

// State is the terminal state of a pipeline instance.
type State string

const (
	StateApproved       State = "approved"
	StateRejected       State = "rejected"
	StateRequiresReview State = "requires_review"
	StateFailed         State = "failed"
)

// stageOrder defines the legal forward progression. Matched sits between
// Analyzed and Generated on the transcript route and is skipped on the
// document route; every other transition is strictly sequential.
var stageOrder = map[Stage][]Stage{
	StageReceived:  {StageExtracted},
	StageExtracted: {StageAnalyzed, StageMatched},
	StageAnalyzed:  {StageMatched, StageGenerated},
	StageMatched:   {StageGenerated, StageVerified},
	StageGenerated: {StageVerified},
	StageVerified:  {},
}

// Trace records one stage transition for the audit chain.
type Trace struct {
	Stage Stage     `json:"stage"`
	At    time.Time `json:"at"`
}

// Progress tracks the stage transitions of one instance. Transitions only
// move forward; an illegal transition is a programming error surfaced
// immediately rather than recorded.
type Progress struct {
	current Stage
	Traces  []Trace `json:"stages"`
}

// NewProgress starts a progress tracker in the received stage.
func NewProgress() *Progress {
	return &Progress{current: StageReceived}
}

// Current returns the most recent stage.
func (p *Progress) Current() Stage {
	return p.current
}

// Advance moves to the next stage, rejecting transitions the stage machine
// does not allow.
func (p *Progress) Advance(to Stage) error {
	allowed := false
	for _, next := range stageOrder[p.current] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("illegal stage transition %s -> %s", p.current, to)
	}

	p.current = to
	p.Traces = append(p.Traces, Trace{Stage: to, At: time.Now().UTC()})
	return nil
}

// Pipeline holds the stage instances shared by all pipeline runs. The
// instances themselves are stateless; per-run state lives in the request
// and result values.
type Pipeline struct {
	extractor *extraction.Extractor
	analyzer  *analysis.Analyzer
	questions *questions.Generator
	generator *generation.Generator
	verifier  *verification.Verifier
	workflow  *transcripts.Workflow
	detector  privacy.Detector
	store     runs.System
	files     storage.System
	logger    *slog.Logger

	// batchLimit caps concurrent instances in batch processing.
	batchLimit int
}

// Config bounds pipeline-level behavior.
type Config struct {
	// BatchLimit is the maximum number of concurrently processed
	// instances in a batch. Zero means a conservative default.
	BatchLimit int
}

// New constructs a pipeline with all stage instances built from the given
// collaborators.
func New(
	client llm.Client,
	detector privacy.Detector,
	store runs.System,
	files storage.System,
	logger *slog.Logger,
	cfg Config,
) *Pipeline {
	limit := cfg.BatchLimit
	if limit <= 0 {
		limit = 4
	}

	return &Pipeline{
		extractor: extraction.New(logger),
		analyzer:  analysis.New(client, logger),
		questions: questions.NewGenerator(client, logger),
		generator: generation.New(client, logger),
		verifier:  verification.New(logger),
		workflow:  transcripts.NewWorkflow(client, evidence.NewLexicalMatcher(), detector, runs.Recorder(store), logger),
		detector:  detector,
		store:     store,
		files:     files,
		logger:    logger.With("system", "pipeline"),

		batchLimit: limit,
	}
}
