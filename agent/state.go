package agent

// Well-known state keys, populated by GetState and read by SetState. The
// map stays open beyond these so strategies can stash whatever else they
// need alongside action.
const (
	KeyCurrPos = "curr_pos"
	KeySensor  = "sensor"
	KeyAction  = "action"
)

// SensorReading pairs a sensor's type tag with its sensed payload, exactly
// the (type, data) pair spec §4.3 says get_state must preserve so
// strategies can match on both.
type SensorReading struct {
	Type string
	Data any
}

// State is the canonical per-turn state object returned by GetState: a
// heterogeneous, strategy-extensible map. Go has no tagged-union state
// object, so well-known fields are read through the accessors below while
// everything else stays reachable as a plain map entry.
type State map[string]any

// CurrPos returns the curr_pos field.
func (s State) CurrPos() (int64, bool) {
	v, ok := s[KeyCurrPos]
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Sensor returns the sensor field.
func (s State) Sensor() (map[string]SensorReading, bool) {
	v, ok := s[KeySensor]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]SensorReading)
	return m, ok
}

// Action returns the action field, the node id a strategy selected.
func (s State) Action() (int64, bool) {
	v, ok := s[KeyAction]
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	default:
		return 0, false
	}
}
