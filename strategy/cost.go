package strategy

import "sync"

// modelPricing holds per-million-token USD costs, re-scoped from the
// teacher's defaultModelPricing table to the three providers strategy
// actually wires: Anthropic Claude, OpenAI GPT, Google Gemini.
type modelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

var defaultPricing = map[string]modelPricing{
	"claude-sonnet-4-5-20250929": {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3-5-sonnet-20241022": {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3-haiku-20240307":    {InputPer1M: 0.25, OutputPer1M: 1.25},
	"gpt-4o":                     {InputPer1M: 2.50, OutputPer1M: 10.00},
	"gpt-4o-mini":                {InputPer1M: 0.15, OutputPer1M: 0.60},
	"gemini-1.5-pro":             {InputPer1M: 1.25, OutputPer1M: 5.00},
	"gemini-1.5-flash":           {InputPer1M: 0.075, OutputPer1M: 0.30},
}

// CostTracker accumulates Usage per agent name across a run, the way the
// teacher's CostTracker accumulates per-node LLMCalls.
type CostTracker struct {
	mu         sync.Mutex
	pricing    map[string]modelPricing
	byAgent    map[string]float64
	totalUSD   float64
	callsTotal int
}

// NewCostTracker constructs a tracker seeded with the default pricing
// table.
func NewCostTracker() *CostTracker {
	return &CostTracker{
		pricing: defaultPricing,
		byAgent: make(map[string]float64),
	}
}

// Record attributes usage's cost to agentName, using the tracker's pricing
// table. Unknown models cost nothing but are still counted, since strategy
// usage shouldn't fail a turn over a missing price entry.
func (ct *CostTracker) Record(agentName string, usage Usage) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ct.callsTotal++
	price, ok := ct.pricing[usage.Model]
	if !ok {
		return
	}
	cost := (float64(usage.InputTokens)*price.InputPer1M + float64(usage.OutputTokens)*price.OutputPer1M) / 1_000_000
	ct.byAgent[agentName] += cost
	ct.totalUSD += cost
}

// TotalUSD returns the cumulative cost recorded so far.
func (ct *CostTracker) TotalUSD() float64 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.totalUSD
}

// ByAgent returns a copy of the per-agent cost breakdown.
func (ct *CostTracker) ByAgent() map[string]float64 {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	out := make(map[string]float64, len(ct.byAgent))
	for k, v := range ct.byAgent {
		out[k] = v
	}
	return out
}
