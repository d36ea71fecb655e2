// Package control exposes the running session to external skins over a
// WebSocket connection. Browser presentation layers connect, receive state
// snapshots, and send parameter edits that are applied between frames.
package control

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// Message types accepted from and sent to clients.
const (
	MessageSetParam   = "setParam"
	MessageLoadPreset = "loadPreset"
	MessageState      = "state"
)

// Message is the inbound JSON envelope. Only the fields relevant to the
// message type are populated.
type Message struct {
	Type  string    `json:"type"`
	ID    string    `json:"id,omitempty"`
	Value []float32 `json:"value,omitempty"`
	Name  string    `json:"name,omitempty"`
}

// ParamState describes one tunable parameter in a state snapshot.
type ParamState struct {
	ID    string     `json:"id"`
	Kind  string     `json:"kind"`
	Value [3]float32 `json:"value"`
	Min   float32    `json:"min"`
	Max   float32    `json:"max"`
	Step  float32    `json:"step"`
}

// StateSnapshot is the outbound state message broadcast to clients.
type StateSnapshot struct {
	Type   string       `json:"type"`
	Preset string       `json:"preset"`
	Params []ParamState `json:"params"`
	FPS    float64      `json:"fps"`
}

// Handler receives validated client commands. Edits are enqueued, not applied
// directly, so they take effect between frames alongside local input.
type Handler interface {
	// EnqueueSetParam queues a parameter value edit.
	//
	// Parameters:
	//   - id: the parameter id
	//   - value: the new value (floats use element 0)
	EnqueueSetParam(id string, value [3]float32)

	// EnqueueLoadPreset queues a preset change.
	//
	// Parameters:
	//   - name: the preset name
	EnqueueLoadPreset(name string)

	// Snapshot returns the current session state for broadcast.
	//
	// Returns:
	//   - StateSnapshot: preset name, parameter list, and measured fps
	Snapshot() StateSnapshot
}

// NewSnapshot assembles a StateSnapshot from session state.
//
// Parameters:
//   - preset: the active preset name
//   - params: the active parameter descriptors
//   - fps: the measured frame rate
//
// Returns:
//   - StateSnapshot: the assembled snapshot with Type set
func NewSnapshot(preset string, params []uniform.ParamDescriptor, fps float64) StateSnapshot {
	states := make([]ParamState, len(params))
	for i, p := range params {
		states[i] = ParamState{
			ID:    p.ID,
			Kind:  p.Kind.String(),
			Value: p.Value,
			Min:   p.Min,
			Max:   p.Max,
			Step:  p.Step,
		}
	}
	return StateSnapshot{
		Type:   MessageState,
		Preset: preset,
		Params: states,
		FPS:    fps,
	}
}

// dispatch validates and routes one inbound message. A "state" request
// returns a snapshot reply; edits return nil after being enqueued.
func dispatch(data []byte, h Handler) (*StateSnapshot, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("malformed control message: %w", err)
	}

	switch msg.Type {
	case MessageSetParam:
		if msg.ID == "" {
			return nil, fmt.Errorf("setParam requires an id")
		}
		var value [3]float32
		copy(value[:], msg.Value)
		h.EnqueueSetParam(msg.ID, value)
		return nil, nil
	case MessageLoadPreset:
		if msg.Name == "" {
			return nil, fmt.Errorf("loadPreset requires a name")
		}
		h.EnqueueLoadPreset(msg.Name)
		return nil, nil
	case MessageState:
		snapshot := h.Snapshot()
		return &snapshot, nil
	default:
		return nil, fmt.Errorf("unknown control message type %q", msg.Type)
	}
}
