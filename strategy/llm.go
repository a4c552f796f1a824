package strategy

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// LLM builds a Func that asks chat to pick the next node from whatever
// neighbor ids neighborIDs finds in state's sensor payload (see there for
// the payload shapes it reads), using systemPrompt to
// frame the choice. A malformed or unparsable reply is not a turn error:
// the agent stays where it is (state["action"] = state["curr_pos"]),
// matching §4.3's "never fatal" posture for degraded strategy input.
//
// Callers wrap the returned Func to satisfy agent.Strategy, e.g.:
//
//	a.RegisterStrategy(func(s agent.State) error { return strategy.LLM(chat, prompt)(s) })
func LLM(chat Chat, systemPrompt string) Func {
	return func(state map[string]any) error {
		ctx := context.Background()
		prompt := buildPrompt(systemPrompt, state)
		reply, _, err := chat.Complete(ctx, prompt)
		if err != nil {
			stayInPlace(state)
			return nil
		}

		action, ok := parseNodeID(reply)
		if !ok {
			stayInPlace(state)
			return nil
		}
		state["action"] = action
		return nil
	}
}

func stayInPlace(state map[string]any) {
	if curr, ok := state["curr_pos"]; ok {
		state["action"] = curr
	}
}

func buildPrompt(systemPrompt string, state map[string]any) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\ncurrent position: ")
	fmt.Fprintf(&b, "%v", state["curr_pos"])
	b.WriteString("\nvisible neighbors: ")
	for _, id := range neighborIDs(state) {
		fmt.Fprintf(&b, "%d ", id)
	}
	b.WriteString("\nReply with exactly one neighbor node id.")
	return b.String()
}

// neighborIDs scans the sensor payload for anything shaped like a neighbor
// sensor's []int64 reading, tolerating the []any form JSON round-tripping
// produces. Only a state["sensor"] of type map[string]any whose readings are
// map[string]any values with a "Data" key is read; any other shape, including
// agent.GetState's map[string]agent.SensorReading, yields no ids.
func neighborIDs(state map[string]any) []int64 {
	sensed, ok := state["sensor"].(map[string]any)
	if !ok {
		return nil
	}
	var out []int64
	for _, raw := range sensed {
		reading, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch data := reading["Data"].(type) {
		case []int64:
			out = append(out, data...)
		case []any:
			for _, v := range data {
				if f, ok := v.(float64); ok {
					out = append(out, int64(f))
				}
			}
		}
	}
	return out
}

func parseNodeID(reply string) (int64, bool) {
	field := strings.Fields(strings.TrimSpace(reply))
	if len(field) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(field[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
