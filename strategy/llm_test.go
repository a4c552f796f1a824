package strategy_test

import (
	"testing"

	"github.com/gammsgo/gammsgo/strategy"
	"github.com/gammsgo/gammsgo/strategy/mock"
)

func TestLLMPicksParsedNeighbor(t *testing.T) {
	chat := &mock.Client{Replies: []string{"7"}}
	fn := strategy.LLM(chat, "pick a neighbor")

	state := map[string]any{
		"curr_pos": int64(3),
		"sensor": map[string]any{
			"neighbors": map[string]any{
				"Type": "NEIGHBOR",
				"Data": []any{float64(3), float64(7), float64(9)},
			},
		},
	}
	if err := fn(state); err != nil {
		t.Fatal(err)
	}
	if state["action"] != int64(7) {
		t.Fatalf("action = %v, want 7", state["action"])
	}
}

func TestLLMStaysInPlaceOnMalformedReply(t *testing.T) {
	chat := &mock.Client{Replies: []string{"not a node id"}}
	fn := strategy.LLM(chat, "pick a neighbor")

	state := map[string]any{"curr_pos": int64(4)}
	if err := fn(state); err != nil {
		t.Fatal(err)
	}
	if state["action"] != int64(4) {
		t.Fatalf("action = %v, want 4 (stay in place)", state["action"])
	}
}

func TestLLMStaysInPlaceOnChatError(t *testing.T) {
	chat := &mock.Client{Err: errMockFailure}
	fn := strategy.LLM(chat, "pick a neighbor")

	state := map[string]any{"curr_pos": int64(2)}
	if err := fn(state); err != nil {
		t.Fatal(err)
	}
	if state["action"] != int64(2) {
		t.Fatalf("action = %v, want 2 (stay in place)", state["action"])
	}
}

func TestCostTrackerAccumulatesByAgent(t *testing.T) {
	ct := strategy.NewCostTracker()
	ct.Record("A", strategy.Usage{Model: "gpt-4o", InputTokens: 1000, OutputTokens: 500})
	ct.Record("B", strategy.Usage{Model: "gpt-4o-mini", InputTokens: 1000, OutputTokens: 500})

	if ct.TotalUSD() <= 0 {
		t.Fatal("expected positive total cost")
	}
	byAgent := ct.ByAgent()
	if byAgent["A"] <= byAgent["B"] {
		t.Fatalf("expected gpt-4o cost > gpt-4o-mini cost, got A=%v B=%v", byAgent["A"], byAgent["B"])
	}
}

func TestCostTrackerIgnoresUnknownModel(t *testing.T) {
	ct := strategy.NewCostTracker()
	ct.Record("A", strategy.Usage{Model: "not-a-real-model", InputTokens: 1000, OutputTokens: 500})
	if ct.TotalUSD() != 0 {
		t.Fatalf("expected zero cost for unknown model, got %v", ct.TotalUSD())
	}
}

var errMockFailure = mockErr("mock failure")

type mockErr string

func (e mockErr) Error() string { return string(e) }
