package session

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/marcher-go/engine/camera"
	"github.com/Carmen-Shannon/marcher-go/engine/preset"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// sessionImpl is the single implementation of Session.
type sessionImpl struct {
	mu *sync.Mutex

	// schema is the fixed frame header every preset compiles against.
	schema uniform.Schema

	// presetName is the name of the active preset, empty before LoadPreset.
	presetName string

	// params are the active parameter descriptors in pack order.
	params []uniform.ParamDescriptor

	// layout is the packed layout of params, recomputed on every LoadPreset.
	layout uniform.Layout

	// buf is the scratch word buffer reused by BuildFrame; its length tracks
	// layout.WordCount().
	buf []float32

	camera camera.Controller

	// Pointer position, normalized to the surface.
	pointerX float32
	pointerY float32

	// Scroll state driving the post effect.
	scrollProgress float32
	scrollEffect   int
	scrollStrength float32
	scrollSpeed    float32

	audioBands [4]float32

	// Texture transform applied to the user texture UVs.
	texTilingX float32
	texTilingY float32
	texOffsetX float32
	texOffsetY float32

	// Recording clock. While recording, elapsed time is frame/fps and delta
	// is 1/fps, so captured videos are reproducible.
	recording    bool
	recordingFPS int
	frame        int
}

// Compile-time interface compliance check
var _ Session = &sessionImpl{}

// NewSession creates a session against the canonical frame schema with an
// identity texture transform and a default orbit camera.
//
// Parameters:
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
func NewSession(options ...SessionOption) Session {
	s := &sessionImpl{
		mu:     &sync.Mutex{},
		schema: uniform.FrameSchema(),
		camera: camera.NewController(),

		scrollStrength: 1.0,
		scrollSpeed:    1.0,

		texTilingX: 1.0,
		texTilingY: 1.0,
	}

	for _, option := range options {
		option(s)
	}

	// An empty parameter list still packs: the header plus one padding slot.
	layout, err := uniform.ComputeLayout(nil, s.schema.Size())
	if err != nil {
		panic(fmt.Sprintf("session: empty layout failed to pack: %v", err))
	}
	s.layout = layout
	s.buf = make([]float32, layout.WordCount())

	return s
}

func (s *sessionImpl) LoadPreset(p preset.Preset) error {
	params := make([]uniform.ParamDescriptor, len(p.Params))
	copy(params, p.Params)

	layout, err := uniform.ComputeLayout(params, s.schema.Size())
	if err != nil {
		return fmt.Errorf("load preset %q: %w", p.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.presetName = p.Name
	s.params = params
	s.layout = layout
	s.buf = make([]float32, layout.WordCount())
	return nil
}

func (s *sessionImpl) PresetName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presetName
}

func (s *sessionImpl) SetParam(id string, value [3]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.params {
		if s.params[i].ID == id {
			params := make([]uniform.ParamDescriptor, len(s.params))
			copy(params, s.params)
			params[i].Value = value
			s.params = params
			return nil
		}
	}
	return fmt.Errorf("%w: %q", uniform.ErrMissingParam, id)
}

func (s *sessionImpl) Params() []uniform.ParamDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	params := make([]uniform.ParamDescriptor, len(s.params))
	copy(params, s.params)
	return params
}

func (s *sessionImpl) Layout() uniform.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

func (s *sessionImpl) Camera() camera.Controller {
	return s.camera
}

func (s *sessionImpl) SetPointer(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerX = x
	s.pointerY = y
}

func (s *sessionImpl) SetScrollProgress(progress float32) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollProgress = progress
}

func (s *sessionImpl) SetScrollEffect(effect int, strength, speed float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollEffect = effect
	s.scrollStrength = strength
	s.scrollSpeed = speed
}

func (s *sessionImpl) SetAudioBands(bands [4]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioBands = bands
}

func (s *sessionImpl) SetTextureTransform(tilingX, tilingY, offsetX, offsetY float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texTilingX = tilingX
	s.texTilingY = tilingY
	s.texOffsetX = offsetX
	s.texOffsetY = offsetY
}

func (s *sessionImpl) BeginRecording(fps int) {
	if fps <= 0 {
		fps = 30
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = true
	s.recordingFPS = fps
	s.frame = 0
}

func (s *sessionImpl) EndRecording() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = false
}

func (s *sessionImpl) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

func (s *sessionImpl) AdvanceFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recording {
		s.frame++
	}
	return s.frame
}

func (s *sessionImpl) BuildFrame(input FrameInput) ([]float32, error) {
	camX, camY, camZ := s.camera.Position()
	tgtX, tgtY, tgtZ := s.camera.Target()

	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed, delta := input.Elapsed, input.Delta
	if s.recording {
		elapsed = float32(s.frame) / float32(s.recordingFPS)
		delta = 1.0 / float32(s.recordingFPS)
	}

	type fieldWrite struct {
		name  string
		value []float32
	}
	writes := []fieldWrite{
		{uniform.FieldResolution, []float32{float32(input.Width), float32(input.Height)}},
		{uniform.FieldTime, []float32{elapsed}},
		{uniform.FieldDeltaTime, []float32{delta}},
		{uniform.FieldCameraPos, []float32{camX, camY, camZ}},
		{uniform.FieldCameraTarget, []float32{tgtX, tgtY, tgtZ}},
		{uniform.FieldPointer, []float32{s.pointerX, s.pointerY}},
		{uniform.FieldScrollProgress, []float32{s.scrollProgress}},
		{uniform.FieldScrollEffect, []float32{float32(s.scrollEffect)}},
		{uniform.FieldScrollStrength, []float32{s.scrollStrength}},
		{uniform.FieldScrollSpeed, []float32{s.scrollSpeed}},
		{uniform.FieldAudioBands, s.audioBands[:]},
		{uniform.FieldTexTiling, []float32{s.texTilingX, s.texTilingY}},
		{uniform.FieldTexOffset, []float32{s.texOffsetX, s.texOffsetY}},
	}
	for _, w := range writes {
		if err := s.schema.WriteField(s.buf, w.name, w.value...); err != nil {
			return nil, fmt.Errorf("frame header: %w", err)
		}
	}

	if err := uniform.WriteParams(s.buf, s.params, s.layout); err != nil {
		return nil, fmt.Errorf("parameter block: %w", err)
	}
	return s.buf, nil
}
