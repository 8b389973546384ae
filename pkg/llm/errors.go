package llm

import "errors"

var (
	// ErrUnknownProvider indicates an unrecognized provider name in configuration.
	ErrUnknownProvider = errors.New("unknown llm provider")
	// ErrEmptyResponse indicates the provider returned no completion choices.
	ErrEmptyResponse = errors.New("provider returned empty response")
	// ErrProviderUnavailable indicates the provider failed after all retries.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
