package recorder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// AgentReplayer is the subset of agent.Engine/agent.Agent the replayer
// drives. Declared here rather than imported from the agent package so
// recorder never depends on agent (dependency inversion, see the module
// layout's acyclic rule).
type AgentReplayer interface {
	ReplayCreateAgent(name string, startNodeID int64, kwargs map[string]any) error
	ReplayDeleteAgent(name string) error
	SetCurrentNode(agentName string, nodeID int64) error
	SetPrevNode(agentName string, nodeID int64) error
	SetSensorOwner(agentName, sensorName, sensorID string) error
	ClearSensorOwner(agentName, sensorName, sensorID string) error
}

// SensorReplayer is the subset of sensor.Engine the replayer drives.
type SensorReplayer interface {
	ReplayCreateSensor(id, sensorType string, kwargs map[string]any) error
}

// VisualReplayer is the subset of visual.Backend the replayer drives.
type VisualReplayer interface {
	Simulate() error
}

// ComponentReplayer is the subset of the component registry the replayer
// drives.
type ComponentReplayer interface {
	RegisterComponentSchema(key [2]string, schema map[string]string) error
	CreateComponentInstance(key [2]string, name string) error
	UpdateComponentField(name, key string, value any) error
}

// Replayer drives a .ggr file's events into a fresh set of engines.
type Replayer struct {
	Agents     AgentReplayer
	Sensors    SensorReplayer
	Visual     VisualReplayer
	Components ComponentReplayer
}

// Replay iterates path's records in file order, dispatching each opcode to
// its re-execution. Unknown opcodes are a hard failure; version mismatches
// are tolerated as long as the magic matches and every opcode is known.
func (rp *Replayer) Replay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if _, err := readHeader(br); err != nil {
		return err
	}

	var lastTimestamp int64
	first := true
	for {
		ev, err := readFrame(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if !first && ev.Timestamp < lastTimestamp {
			return fmt.Errorf("%w: %d after %d", ErrTimestampRegression, ev.Timestamp, lastTimestamp)
		}
		lastTimestamp = ev.Timestamp
		first = false

		if !knownOpCodes[ev.OpCode] {
			return fmt.Errorf("%w: 0x%08x", ErrUnknownOpCode, uint32(ev.OpCode))
		}

		if ev.OpCode == TERMINATE {
			return nil
		}
		if err := rp.dispatch(ev); err != nil {
			return fmt.Errorf("replay %s: %w", ev.OpCode, err)
		}
	}
}

func (rp *Replayer) dispatch(ev Event) error {
	switch ev.OpCode {
	case SIMULATE:
		if rp.Visual == nil {
			return nil
		}
		return rp.Visual.Simulate()

	case AgentCreate:
		p, err := decodePayload[AgentCreatePayload](ev.Data)
		if err != nil {
			return err
		}
		startNodeID, _ := p.Kwargs["start_node_id"].(float64)
		return rp.Agents.ReplayCreateAgent(p.Name, int64(startNodeID), p.Kwargs)

	case AgentDelete:
		name, err := decodePayload[string](ev.Data)
		if err != nil {
			return err
		}
		return rp.Agents.ReplayDeleteAgent(name)

	case AgentCurrentNode:
		p, err := decodePayload[NodeEventPayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Agents.SetCurrentNode(p.AgentName, p.NodeID)

	case AgentPrevNode:
		p, err := decodePayload[NodeEventPayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Agents.SetPrevNode(p.AgentName, p.NodeID)

	case AgentSensorRegister:
		p, err := decodePayload[SensorBindingPayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Agents.SetSensorOwner(p.AgentName, p.Name, p.SensorID)

	case AgentSensorDeregister:
		p, err := decodePayload[SensorBindingPayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Agents.ClearSensorOwner(p.AgentName, p.Name, p.SensorID)

	case SensorCreate:
		p, err := decodePayload[SensorCreatePayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Sensors.ReplayCreateSensor(p.ID, p.Type, p.Kwargs)

	case ComponentRegister:
		p, err := decodePayload[ComponentRegisterPayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Components.RegisterComponentSchema(p.Key, p.Struct)

	case ComponentCreate:
		p, err := decodePayload[ComponentCreatePayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Components.CreateComponentInstance(p.Type, p.Name)

	case ComponentUpdate:
		p, err := decodePayload[ComponentUpdatePayload](ev.Data)
		if err != nil {
			return err
		}
		return rp.Components.UpdateComponentField(p.Name, p.Key, p.Value)

	default:
		return fmt.Errorf("%w: 0x%08x", ErrUnknownOpCode, uint32(ev.OpCode))
	}
}
