// Package recorder implements the append-only event log and its
// replay dispatch (§4.4): the opcode set, the .ggr file codec, the
// recording state machine, and generic component tracking.
package recorder

// OpCode identifies one kind of event in the record stream. Values are
// stable per spec §4.4; new opcodes may only be added, never renumbered.
type OpCode uint32

const (
	TERMINATE OpCode = 0x00000000
	SIMULATE  OpCode = 0x00000001

	AgentCreate OpCode = 0x01000000
	AgentDelete OpCode = 0x01000001

	AgentCurrentNode OpCode = 0x01100000
	AgentPrevNode    OpCode = 0x01100001

	AgentSensorRegister   OpCode = 0x01110000
	AgentSensorDeregister OpCode = 0x01110001

	SensorCreate OpCode = 0x02000000

	ComponentRegister OpCode = 0x03000000
	ComponentCreate   OpCode = 0x03000001
	ComponentUpdate   OpCode = 0x03000002
)

func (op OpCode) String() string {
	switch op {
	case TERMINATE:
		return "TERMINATE"
	case SIMULATE:
		return "SIMULATE"
	case AgentCreate:
		return "AGENT_CREATE"
	case AgentDelete:
		return "AGENT_DELETE"
	case AgentCurrentNode:
		return "AGENT_CURRENT_NODE"
	case AgentPrevNode:
		return "AGENT_PREV_NODE"
	case AgentSensorRegister:
		return "AGENT_SENSOR_REGISTER"
	case AgentSensorDeregister:
		return "AGENT_SENSOR_DEREGISTER"
	case SensorCreate:
		return "SENSOR_CREATE"
	case ComponentRegister:
		return "COMPONENT_REGISTER"
	case ComponentCreate:
		return "COMPONENT_CREATE"
	case ComponentUpdate:
		return "COMPONENT_UPDATE"
	default:
		return "UNKNOWN"
	}
}

// knownOpCodes backs Replayer's unknown-opcode hard-fail check.
var knownOpCodes = map[OpCode]bool{
	TERMINATE: true, SIMULATE: true,
	AgentCreate: true, AgentDelete: true,
	AgentCurrentNode: true, AgentPrevNode: true,
	AgentSensorRegister: true, AgentSensorDeregister: true,
	SensorCreate:      true,
	ComponentRegister: true, ComponentCreate: true, ComponentUpdate: true,
}
