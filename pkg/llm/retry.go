package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryClient wraps a provider client with a per-call timeout and bounded
// exponential backoff. Requests are idempotent at this boundary: a retried
// completion carries the identical prompt and schema.
type retryClient struct {
	inner      Client
	timeout    time.Duration
	maxRetries uint
}

func withRetry(inner Client, timeout time.Duration, maxRetries uint) Client {
	return &retryClient{inner: inner, timeout: timeout, maxRetries: maxRetries}
}

func (c *retryClient) Complete(ctx context.Context, req Request) (string, error) {
	var result string

	op := func() error {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		content, err := c.inner.Complete(callCtx, req)
		if err != nil {
			return err
		}

		result = content
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)

	if err := backoff.Retry(op, policy); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return result, nil
}
