package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

type anthropicClient struct {
	client *anthropic.Client
	model  string
}

func newAnthropic(cfg *Config) *anthropicClient {
	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	return &anthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  cfg.Model,
	}
}

// Complete issues a messages request. Anthropic has no native JSON-schema
// response mode, so the schema is appended to the system prompt and the
// caller parses the result through formatting.Parse.
func (c *anthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	system := req.System
	if req.Schema != nil {
		system += fmt.Sprintf(
			"\n\nRespond with a single JSON object matching this schema exactly. No prose, no markdown fences.\nSchema %q:\n%s",
			req.Schema.Name, string(req.Schema.Spec),
		)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	messagesReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    system,
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		messagesReq.Temperature = &temp
	}

	resp, err := c.client.CreateMessages(ctx, messagesReq)
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
