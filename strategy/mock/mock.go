// Package mock provides a deterministic strategy.Chat implementation for
// tests, modeled on the teacher's model.MockChatModel.
package mock

import (
	"context"
	"sync"

	"github.com/gammsgo/gammsgo/strategy"
)

// Client returns a configured sequence of replies, repeating the last one
// once exhausted, and records every prompt it was asked to complete.
type Client struct {
	Replies []string
	Usage   strategy.Usage
	Err     error

	mu     sync.Mutex
	Prompts []string
	index   int
}

// Complete implements strategy.Chat.
func (c *Client) Complete(ctx context.Context, prompt string) (string, strategy.Usage, error) {
	if err := ctx.Err(); err != nil {
		return "", strategy.Usage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", strategy.Usage{}, c.Err
	}
	if len(c.Replies) == 0 {
		return "", c.Usage, nil
	}

	idx := c.index
	if idx >= len(c.Replies) {
		idx = len(c.Replies) - 1
	} else {
		c.index++
	}
	return c.Replies[idx], c.Usage, nil
}
