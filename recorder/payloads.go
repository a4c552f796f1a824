package recorder

import (
	"encoding/json"
	"fmt"
)

// AgentCreatePayload is AGENT_CREATE's data: the full constructor arguments,
// sufficient for Replayer to reconstruct the agent.
type AgentCreatePayload struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs"`
}

// NodeEventPayload is AGENT_CURRENT_NODE/AGENT_PREV_NODE's data.
type NodeEventPayload struct {
	AgentName string `json:"agent_name"`
	NodeID    int64  `json:"node_id"`
}

// SensorBindingPayload is AGENT_SENSOR_REGISTER/AGENT_SENSOR_DEREGISTER's
// data.
type SensorBindingPayload struct {
	AgentName string `json:"agent_name"`
	Name      string `json:"name"`
	SensorID  string `json:"sensor_id"`
}

// SensorCreatePayload is SENSOR_CREATE's data.
type SensorCreatePayload struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Kwargs map[string]any `json:"kwargs"`
}

// ComponentRegisterPayload is COMPONENT_REGISTER's data. Key is the
// (module, qualname) pair; Struct maps field name to type tag.
type ComponentRegisterPayload struct {
	Key    [2]string         `json:"key"`
	Struct map[string]string `json:"struct"`
}

// ComponentCreatePayload is COMPONENT_CREATE's data.
type ComponentCreatePayload struct {
	Type [2]string `json:"type"`
	Name string    `json:"name"`
}

// ComponentUpdatePayload is COMPONENT_UPDATE's data: one field assignment.
type ComponentUpdatePayload struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// decodePayload re-marshals ev.Data (generically decoded by encoding/json
// into a map[string]any) and unmarshals it into a concrete payload type.
func decodePayload[T any](data any) (T, error) {
	var out T
	raw, err := json.Marshal(data)
	if err != nil {
		return out, fmt.Errorf("re-marshal payload: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
