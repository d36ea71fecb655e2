package control

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// fakeHandler records enqueued commands for assertions.
type fakeHandler struct {
	setParams   map[string][3]float32
	loadPresets []string
	snapshot    StateSnapshot
}

func newFakeHandler() *fakeHandler {
	return &fakeHandler{setParams: make(map[string][3]float32)}
}

func (f *fakeHandler) EnqueueSetParam(id string, value [3]float32) {
	f.setParams[id] = value
}

func (f *fakeHandler) EnqueueLoadPreset(name string) {
	f.loadPresets = append(f.loadPresets, name)
}

func (f *fakeHandler) Snapshot() StateSnapshot {
	return f.snapshot
}

func TestDispatchSetParam(t *testing.T) {
	h := newFakeHandler()

	reply, err := dispatch([]byte(`{"type":"setParam","id":"glow","value":[0.75]}`), h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != nil {
		t.Fatal("setParam should not produce a reply")
	}
	if got := h.setParams["glow"]; got != [3]float32{0.75, 0, 0} {
		t.Fatalf("unexpected enqueued value: %v", got)
	}
}

func TestDispatchSetParamVec3(t *testing.T) {
	h := newFakeHandler()

	_, err := dispatch([]byte(`{"type":"setParam","id":"tint","value":[1,0.5,0.25]}`), h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := h.setParams["tint"]; got != [3]float32{1, 0.5, 0.25} {
		t.Fatalf("unexpected enqueued value: %v", got)
	}
}

func TestDispatchLoadPreset(t *testing.T) {
	h := newFakeHandler()

	_, err := dispatch([]byte(`{"type":"loadPreset","name":"orbit-glass"}`), h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h.loadPresets) != 1 || h.loadPresets[0] != "orbit-glass" {
		t.Fatalf("unexpected enqueued presets: %v", h.loadPresets)
	}
}

func TestDispatchStateRequest(t *testing.T) {
	h := newFakeHandler()
	h.snapshot = StateSnapshot{Type: MessageState, Preset: "orbit-glass", FPS: 60}

	reply, err := dispatch([]byte(`{"type":"state"}`), h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply == nil {
		t.Fatal("state request should produce a reply")
	}
	if reply.Preset != "orbit-glass" || reply.FPS != 60 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestDispatchRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"malformed json", `{"type":`, "malformed"},
		{"unknown type", `{"type":"reboot"}`, "unknown control message type"},
		{"setParam without id", `{"type":"setParam","value":[1]}`, "requires an id"},
		{"loadPreset without name", `{"type":"loadPreset"}`, "requires a name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFakeHandler()
			_, err := dispatch([]byte(tt.payload), h)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
			if len(h.setParams) != 0 || len(h.loadPresets) != 0 {
				t.Error("invalid messages must not enqueue edits")
			}
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	params := []uniform.ParamDescriptor{
		{ID: "glow", Kind: uniform.ParamFloat, Value: [3]float32{0.5}, Min: 0, Max: 1, Step: 0.01},
		{ID: "tint", Kind: uniform.ParamVec3, Value: [3]float32{1, 0.5, 0.25}, Min: 0, Max: 1},
	}

	snapshot := NewSnapshot("orbit-glass", params, 59.8)

	if snapshot.Type != MessageState {
		t.Errorf("expected type %q, got %q", MessageState, snapshot.Type)
	}
	if snapshot.Preset != "orbit-glass" || snapshot.FPS != 59.8 {
		t.Errorf("unexpected snapshot header: %+v", snapshot)
	}
	if len(snapshot.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(snapshot.Params))
	}
	if snapshot.Params[0].Kind != "f32" || snapshot.Params[1].Kind != "vec3" {
		t.Errorf("unexpected param kinds: %+v", snapshot.Params)
	}
	if snapshot.Params[1].Value != [3]float32{1, 0.5, 0.25} {
		t.Errorf("unexpected vec3 value: %v", snapshot.Params[1].Value)
	}
}
