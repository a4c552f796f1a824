// Package openai adapts OpenAI's chat completion API to strategy.Chat.
package openai

import (
	"context"
	"errors"
	"fmt"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gammsgo/gammsgo/strategy"
)

// Client implements strategy.Chat for GPT models.
type Client struct {
	apiKey    string
	modelName string
}

// NewClient constructs a Client. An empty modelName defaults to GPT-4o.
func NewClient(apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = "gpt-4o"
	}
	return &Client{apiKey: apiKey, modelName: modelName}
}

// Complete implements strategy.Chat: a single-turn user message.
func (c *Client) Complete(ctx context.Context, prompt string) (string, strategy.Usage, error) {
	if ctx.Err() != nil {
		return "", strategy.Usage{}, ctx.Err()
	}
	if c.apiKey == "" {
		return "", strategy.Usage{}, errors.New("openai: API key is required")
	}

	client := openaisdk.NewClient(option.WithAPIKey(c.apiKey))
	resp, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.modelName),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", strategy.Usage{}, fmt.Errorf("openai: %w", err)
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	return text, strategy.Usage{
		Model:        c.modelName,
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}, nil
}
