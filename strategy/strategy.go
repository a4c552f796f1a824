// Package strategy provides optional LLM-backed strategy adapters. Agent
// strategies remain plain user code (fn(state) -> ()); this package only
// wraps chat-completion providers behind a common interface so a strategy
// can be built out of one without hand-rolling provider SDK calls.
package strategy

import (
	"context"
	"errors"
)

// ErrMalformedReply names the case of a chat reply that can't be parsed
// into a node id. LLM's Func does not return it: on such a reply the agent
// stays in place and the turn succeeds.
var ErrMalformedReply = errors.New("strategy: malformed reply")

// Usage reports token accounting for a single Complete call, mirroring the
// teacher's LLMCall fields closely enough to feed straight into CostTracker.
type Usage struct {
	Model        string
	InputTokens  int
	OutputTokens int
}

// Chat is the minimal contract a provider adapter must satisfy: send a
// single prompt, get back the model's text reply and its token usage.
type Chat interface {
	Complete(ctx context.Context, prompt string) (string, Usage, error)
}

// Func matches spec §4.3's strategy signature exactly: fn(state) -> (),
// mutating state in place to set "action".
type Func func(state map[string]any) error
