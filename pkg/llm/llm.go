// Package llm provides the single model call type the pipeline depends on:
// a chat completion constrained to a JSON schema. Providers are external
// collaborators with their own latency and failure semantics; every client
// is wrapped with a per-call timeout and bounded retry.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Schema constrains a completion to a named JSON schema.
type Schema struct {
	Name   string
	Spec   json.RawMessage
	Strict bool
}

// Request is a single schema-constrained chat completion.
type Request struct {
	System      string
	User        string
	Schema      *Schema
	Temperature float32
	MaxTokens   int
}

// Client executes chat completions against a model provider.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// New creates a provider client from configuration, wrapped with the
// configured timeout and bounded exponential backoff.
func New(cfg *Config) (Client, error) {
	var inner Client

	switch cfg.Provider {
	case ProviderOpenAI:
		inner = newOpenAI(cfg)
	case ProviderAnthropic:
		inner = newAnthropic(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	return withRetry(inner, cfg.TimeoutDuration(), cfg.MaxRetries), nil
}
