// Package anthropic adapts Anthropic's Claude API to strategy.Chat.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gammsgo/gammsgo/strategy"
)

// Client implements strategy.Chat for Claude models.
type Client struct {
	apiKey    string
	modelName string
}

// NewClient constructs a Client. An empty modelName defaults to Claude
// Sonnet 4.5.
func NewClient(apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = "claude-sonnet-4-5-20250929"
	}
	return &Client{apiKey: apiKey, modelName: modelName}
}

// Complete implements strategy.Chat: a single-turn user message, no tools.
func (c *Client) Complete(ctx context.Context, prompt string) (string, strategy.Usage, error) {
	if ctx.Err() != nil {
		return "", strategy.Usage{}, ctx.Err()
	}
	if c.apiKey == "" {
		return "", strategy.Usage{}, errors.New("anthropic: API key is required")
	}

	client := anthropicsdk.NewClient(option.WithAPIKey(c.apiKey))
	resp, err := client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(c.modelName),
		MaxTokens: 1024,
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", strategy.Usage{}, fmt.Errorf("anthropic: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropicsdk.TextBlock); ok {
			text += tb.Text
		}
	}

	return text, strategy.Usage{
		Model:        c.modelName,
		InputTokens:  int(resp.Usage.InputTokens),
		OutputTokens: int(resp.Usage.OutputTokens),
	}, nil
}
