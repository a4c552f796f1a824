// Package google adapts Google's Gemini API to strategy.Chat.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gammsgo/gammsgo/strategy"
)

// Client implements strategy.Chat for Gemini models.
type Client struct {
	apiKey    string
	modelName string
}

// NewClient constructs a Client. An empty modelName defaults to Gemini 1.5
// Flash.
func NewClient(apiKey, modelName string) *Client {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &Client{apiKey: apiKey, modelName: modelName}
}

// Complete implements strategy.Chat: a single-turn text prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, strategy.Usage, error) {
	if ctx.Err() != nil {
		return "", strategy.Usage{}, ctx.Err()
	}
	if c.apiKey == "" {
		return "", strategy.Usage{}, errors.New("google: API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", strategy.Usage{}, fmt.Errorf("google: %w", err)
	}
	defer client.Close()

	genModel := client.GenerativeModel(c.modelName)
	resp, err := genModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", strategy.Usage{}, fmt.Errorf("google: %w", err)
	}

	var text string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text += string(t)
			}
		}
	}

	usage := strategy.Usage{Model: c.modelName}
	if resp.UsageMetadata != nil {
		usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return text, usage, nil
}
