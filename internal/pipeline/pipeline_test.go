package pipeline_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/AIwizard-disruptive/dvai-sub000/internal/pipeline"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/privacy"
	"github.com/AIwizard-disruptive/dvai-sub000/internal/runs"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/lifecycle"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/llm"
	"github.com/AIwizard-disruptive/dvai-sub000/pkg/pagination"
)

// stubClient routes responses by schema name; the empty key answers
// unconstrained (markdown) requests.
type stubClient struct {
	responses map[string]string
	err       error

	mu       sync.Mutex
	requests []llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	// Schema-less requests are the markdown generation calls; they route
	// through the empty key.
	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}
	return s.responses[name], nil
}

// memStore is an in-memory runs.System for pipeline tests.
type memStore struct {
	mu        sync.Mutex
	runs      map[uuid.UUID]*runs.Run
	issues    map[uuid.UUID][]runs.Issue
	artifacts map[uuid.UUID][]runs.Artifact
}

func newMemStore() *memStore {
	return &memStore{
		runs:      make(map[uuid.UUID]*runs.Run),
		issues:    make(map[uuid.UUID][]runs.Issue),
		artifacts: make(map[uuid.UUID][]runs.Artifact),
	}
}

func (m *memStore) Handler() *runs.Handler { return nil }

func (m *memStore) StartRun(_ context.Context, params runs.StartParams) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.runs[id] = &runs.Run{
		ID:        id,
		SubjectID: params.SubjectID,
		OrgID:     params.OrgID,
		RunType:   params.RunType,
		QAGoal:    params.QAGoal,
		Status:    runs.StatusRunning,
	}
	return id, nil
}

func (m *memStore) LogIssue(_ context.Context, runID uuid.UUID, issueType, severity, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.issues[runID] = append(m.issues[runID], runs.Issue{
		RunID:     runID,
		IssueType: issueType,
		Severity:  severity,
		Detail:    detail,
	})
	return nil
}

func (m *memStore) CompleteRun(_ context.Context, runID uuid.UUID, extracted, passed, rejected int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return runs.ErrNotFound
	}
	run.Status = runs.StatusCompleted
	run.ItemsExtracted = extracted
	run.ItemsPassedQA = passed
	run.ItemsRejected = rejected
	return nil
}

func (m *memStore) SaveArtifact(_ context.Context, runID uuid.UUID, contentType string, _ any) (*runs.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	artifact := runs.Artifact{ID: uuid.New(), RunID: runID, ContentType: contentType}
	m.artifacts[runID] = append(m.artifacts[runID], artifact)
	return &artifact, nil
}

func (m *memStore) Find(_ context.Context, id uuid.UUID) (*runs.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, runs.ErrNotFound
	}
	return run, nil
}

func (m *memStore) List(_ context.Context, page pagination.PageRequest, _ runs.Filters) (*pagination.PageResult[runs.Run], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []runs.Run
	for _, run := range m.runs {
		all = append(all, *run)
	}
	result := pagination.NewPageResult(all, len(all), page.Page, page.PageSize)
	return &result, nil
}

func (m *memStore) Issues(_ context.Context, runID uuid.UUID) ([]runs.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issues[runID], nil
}

func (m *memStore) Artifacts(_ context.Context, runID uuid.UUID) ([]runs.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.artifacts[runID], nil
}

// memFiles is an in-memory storage.System.
type memFiles struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemFiles() *memFiles {
	return &memFiles{blobs: make(map[string][]byte)}
}

func (m *memFiles) Start(*lifecycle.Coordinator) error { return nil }

func (m *memFiles) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return nil
}

func (m *memFiles) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return io.NopCloser(bytes.NewReader(m.blobs[key])), nil
}

func (m *memFiles) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memFiles) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func newDetector(t *testing.T) privacy.Detector {
	t.Helper()
	detector, err := privacy.NewRegexDetector("")
	if err != nil {
		t.Fatalf("NewRegexDetector() error: %v", err)
	}
	return detector
}

func newPipeline(t *testing.T, client llm.Client, store runs.System, files *memFiles) *pipeline.Pipeline {
	t.Helper()
	return pipeline.New(
		client,
		newDetector(t),
		store,
		files,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pipeline.Config{},
	)
}

func TestProgressTransitions(t *testing.T) {
	tests := []struct {
		name   string
		stages []pipeline.Stage
		fail   bool
	}{
		{
			name:   "document route",
			stages: []pipeline.Stage{pipeline.StageExtracted, pipeline.StageAnalyzed, pipeline.StageGenerated, pipeline.StageVerified},
		},
		{
			name:   "transcript route",
			stages: []pipeline.Stage{pipeline.StageExtracted, pipeline.StageMatched, pipeline.StageVerified},
		},
		{
			name:   "skip extraction",
			stages: []pipeline.Stage{pipeline.StageAnalyzed},
			fail:   true,
		},
		{
			name:   "backwards",
			stages: []pipeline.Stage{pipeline.StageExtracted, pipeline.StageAnalyzed, pipeline.StageExtracted},
			fail:   true,
		},
		{
			name:   "verify before generate on document route",
			stages: []pipeline.Stage{pipeline.StageExtracted, pipeline.StageAnalyzed, pipeline.StageVerified},
			fail:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			progress := pipeline.NewProgress()

			var err error
			for _, stage := range test.stages {
				if err = progress.Advance(stage); err != nil {
					break
				}
			}

			if test.fail && err == nil {
				t.Errorf("transition chain %v accepted", test.stages)
			}
			if !test.fail && err != nil {
				t.Errorf("transition chain %v rejected: %v", test.stages, err)
			}
		})
	}
}

const analysisResponse = `{
	"classification": "pitch_deck_seed",
	"classification_confidence": 0.9,
	"key_metrics": {
		"revenue": {
			"value": "$5,000,000",
			"unit": "USD",
			"source_citation": "page 1: '$5,000,000 ARR'",
			"confidence": 0.95,
			"stated": true
		}
	},
	"insights": [{
		"claim": "Revenue of $5,000,000 ARR is explicitly stated",
		"category": "financial",
		"supporting_evidence": ["page 1"],
		"confidence": 0.95,
		"stated_vs_implied": "stated"
	}],
	"risks_identified": [],
	"opportunities_identified": [],
	"gaps": [{"metric": "burn_rate", "importance": "high", "note": "Not stated anywhere in the document"}],
	"inconsistencies": [],
	"data_completeness": 0.7
}`

const questionsResponse = `{
	"questions": [{
		"question": "Burn rate is not disclosed; what is the current monthly net burn?",
		"category": "financial",
		"priority": "high",
		"triggered_by": "gap: burn_rate",
		"suggested_sources": ["bank statements"]
	}]
}`

const reportResponse = `# Due Diligence Report: Acme AB

## Executive Summary
Revenue is $5,000,000 ARR according to the document[^1].

## Risks Identified
Churn is reported at 4% monthly[^1].

## Unknown/Missing Data
- Burn rate: Not disclosed in provided materials

---
## Sources
[^1]: Source document, page 1
`

func documentRequest() pipeline.DocumentRequest {
	return pipeline.DocumentRequest{
		DocumentID:  uuid.New(),
		OrgID:       uuid.New(),
		Data:        []byte("Acme AB reached $5,000,000 ARR in 2025 with 4% monthly churn."),
		Filename:    "acme.txt",
		MIMEType:    "text/plain",
		ContentType: "due_diligence",
		CompanyName: "Acme AB",
	}
}

func TestProcessDocumentApproved(t *testing.T) {
	client := &stubClient{responses: map[string]string{
		"analysis_result": analysisResponse,
		"question_set":    questionsResponse,
		"":                reportResponse,
	}}
	store := newMemStore()

	result, err := newPipeline(t, client, store, newMemFiles()).
		ProcessDocument(context.Background(), documentRequest())
	if err != nil {
		t.Fatalf("ProcessDocument() error: %v", err)
	}

	if result.State != pipeline.StateApproved {
		t.Fatalf("state = %q, verification: %+v", result.State, result.Verification)
	}

	money := false
	for _, entity := range result.Extraction.Entities {
		if entity.Type == "money" && entity.Value == "$5,000,000" {
			money = true
		}
	}
	if !money {
		t.Errorf("no MONEY entity for $5,000,000 in %+v", result.Extraction.Entities)
	}

	metric, ok := result.Analysis.KeyMetrics["revenue"]
	if !ok || metric.SourceCitation == "" {
		t.Errorf("revenue metric missing or uncited: %+v", result.Analysis.KeyMetrics)
	}
	if _, ok := result.Analysis.KeyMetrics["burn_rate"]; ok {
		t.Error("burn_rate invented despite absent data")
	}

	if result.Questions == nil || len(result.Questions.HighPriority) != 1 {
		t.Errorf("questions = %+v, expected one high-priority question", result.Questions)
	}

	stages := result.Progress.Traces
	want := []pipeline.Stage{pipeline.StageExtracted, pipeline.StageAnalyzed, pipeline.StageGenerated, pipeline.StageVerified}
	if len(stages) != len(want) {
		t.Fatalf("stage traces = %+v, expected %v", stages, want)
	}
	for i, stage := range want {
		if stages[i].Stage != stage {
			t.Errorf("stage[%d] = %q, expected %q", i, stages[i].Stage, stage)
		}
	}

	run, err := store.Find(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("run not recorded: %v", err)
	}
	if run.Status != runs.StatusCompleted || run.ItemsPassedQA != 1 {
		t.Errorf("run = %+v, expected completed with one passed item", run)
	}

	artifacts, _ := store.Artifacts(context.Background(), result.RunID)
	if len(artifacts) != 1 || artifacts[0].ContentType != "due_diligence" {
		t.Errorf("artifacts = %+v, expected one due_diligence artifact", artifacts)
	}
}

func TestProcessDocumentSchemaBindings(t *testing.T) {
	client := &stubClient{responses: map[string]string{
		"analysis_result": analysisResponse,
		"question_set":    questionsResponse,
		"":                reportResponse,
	}}
	store := newMemStore()

	_, err := newPipeline(t, client, store, newMemFiles()).
		ProcessDocument(context.Background(), documentRequest())
	if err != nil {
		t.Fatalf("ProcessDocument() error: %v", err)
	}

	schemaless := 0
	names := map[string]bool{}
	for _, req := range client.requests {
		if req.Schema == nil {
			schemaless++
			continue
		}
		names[req.Schema.Name] = true
		if !req.Schema.Strict {
			t.Errorf("schema %q not strict", req.Schema.Name)
		}
	}

	// Report generation is the only free-form markdown call.
	if schemaless != 1 {
		t.Errorf("schema-less requests = %d, want 1", schemaless)
	}
	if !names["analysis_result"] || !names["question_set"] {
		t.Errorf("schema names = %v, want analysis_result and question_set", names)
	}
}

func TestProcessDocumentRejectedNotPersisted(t *testing.T) {
	report := `# Due Diligence Report: Acme AB

## Executive Summary
Churn of 4% monthly is industry standard for this segment[^1].

## Risks Identified
Revenue is $5,000,000 ARR according to the document[^1].

## Unknown/Missing Data
- none

---
## Sources
[^1]: Source document, page 1
`
	client := &stubClient{responses: map[string]string{
		"analysis_result": analysisResponse,
		"question_set":    questionsResponse,
		"":                report,
	}}
	store := newMemStore()

	result, err := newPipeline(t, client, store, newMemFiles()).
		ProcessDocument(context.Background(), documentRequest())
	if err != nil {
		t.Fatalf("ProcessDocument() error: %v", err)
	}

	if result.State != pipeline.StateRejected {
		t.Fatalf("state = %q, expected rejected for forbidden phrase", result.State)
	}

	artifacts, _ := store.Artifacts(context.Background(), result.RunID)
	if len(artifacts) != 0 {
		t.Errorf("rejected content persisted: %+v", artifacts)
	}

	issues, _ := store.Issues(context.Background(), result.RunID)
	critical := false
	for _, issue := range issues {
		if issue.IssueType == "hallucination_risk" && issue.Severity == "critical" {
			critical = true
		}
	}
	if !critical {
		t.Errorf("no critical hallucination_risk issue logged: %+v", issues)
	}
}

func TestProcessDocumentProviderUnavailable(t *testing.T) {
	client := &stubClient{err: llm.ErrProviderUnavailable}
	store := newMemStore()

	result, err := newPipeline(t, client, store, newMemFiles()).
		ProcessDocument(context.Background(), documentRequest())
	if err != nil {
		t.Fatalf("ProcessDocument() error: %v", err)
	}

	if result.State != pipeline.StateRequiresReview {
		t.Fatalf("state = %q, expected requires_review after provider exhaustion", result.State)
	}

	issues, _ := store.Issues(context.Background(), result.RunID)
	found := false
	for _, issue := range issues {
		if issue.IssueType == "provider_error" {
			found = true
		}
	}
	if !found {
		t.Errorf("no provider_error issue logged: %+v", issues)
	}
}

func TestProcessDocumentsIndependentInstances(t *testing.T) {
	client := &stubClient{responses: map[string]string{
		"analysis_result": analysisResponse,
		"question_set":    questionsResponse,
		"":                reportResponse,
	}}
	store := newMemStore()

	good := documentRequest()
	bad := documentRequest()
	bad.Filename = "archive.bin"
	bad.MIMEType = "application/zip"

	results := newPipeline(t, client, store, newMemFiles()).
		ProcessDocuments(context.Background(), []pipeline.DocumentRequest{good, bad, good})

	if len(results) != 3 {
		t.Fatalf("results = %d, expected 3", len(results))
	}
	if results[1].State != pipeline.StateFailed {
		t.Errorf("unsupported document state = %q, expected failed", results[1].State)
	}
	if results[0].State != pipeline.StateApproved || results[2].State != pipeline.StateApproved {
		t.Errorf("sibling instances affected by failure: %q, %q", results[0].State, results[2].State)
	}
}
