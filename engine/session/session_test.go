package session

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/marcher-go/engine/preset"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// testPreset is a minimal preset with one float and one vec3 parameter, giving
// known packed offsets past the 112-byte frame header.
func testPreset() preset.Preset {
	return preset.Preset{
		Name: "test",
		Body: "@fragment fn fs_main() {}",
		Params: []uniform.ParamDescriptor{
			{ID: "glow", Kind: uniform.ParamFloat, Value: [3]float32{0.5}},
			{ID: "tint", Kind: uniform.ParamVec3, Value: [3]float32{1, 0.5, 0.25}},
		},
	}
}

func TestEmptyLayoutStillPacks(t *testing.T) {
	s := NewSession()
	// No preset loaded: the layout is the 112-byte header rounded up to the
	// strictly next 16-byte boundary.
	if got := s.Layout().TotalSize(); got != 128 {
		t.Errorf("TotalSize() before any preset = %d, want 128", got)
	}
	if got := s.Layout().Len(); got != 0 {
		t.Errorf("Len() before any preset = %d, want 0", got)
	}
}

func TestBuildFrameHeaderFields(t *testing.T) {
	s := NewSession()
	s.SetPointer(0.25, 0.75)
	s.SetScrollProgress(0.5)
	s.SetScrollEffect(2, 0.8, 1.5)
	s.SetAudioBands([4]float32{0.1, 0.2, 0.3, 0.4})
	s.SetTextureTransform(2, 3, 0.1, 0.2)

	buf, err := s.BuildFrame(FrameInput{Width: 1920, Height: 1080, Elapsed: 12.5, Delta: 0.016})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	if len(buf) != 32 {
		t.Fatalf("len(buf) = %d, want 32 words for the header plus padding slot", len(buf))
	}

	schema := uniform.FrameSchema()
	checks := []struct {
		field string
		want  []float32
	}{
		{uniform.FieldResolution, []float32{1920, 1080}},
		{uniform.FieldTime, []float32{12.5}},
		{uniform.FieldDeltaTime, []float32{0.016}},
		{uniform.FieldPointer, []float32{0.25, 0.75}},
		{uniform.FieldScrollProgress, []float32{0.5}},
		{uniform.FieldScrollEffect, []float32{2}},
		{uniform.FieldScrollStrength, []float32{0.8}},
		{uniform.FieldScrollSpeed, []float32{1.5}},
		{uniform.FieldAudioBands, []float32{0.1, 0.2, 0.3, 0.4}},
		{uniform.FieldTexTiling, []float32{2, 3}},
		{uniform.FieldTexOffset, []float32{0.1, 0.2}},
	}
	for _, c := range checks {
		word := schema.WordOffset(c.field)
		for i, want := range c.want {
			if got := buf[word+i]; got != want {
				t.Errorf("%s word %d = %g, want %g", c.field, i, got, want)
			}
		}
	}
}

func TestBuildFrameCameraFields(t *testing.T) {
	s := NewSession()
	s.Camera().SetTarget(1, 2, 3)

	buf, err := s.BuildFrame(FrameInput{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	schema := uniform.FrameSchema()
	camWord := schema.WordOffset(uniform.FieldCameraPos)
	tgtWord := schema.WordOffset(uniform.FieldCameraTarget)

	x, y, z := s.Camera().Position()
	if buf[camWord] != x || buf[camWord+1] != y || buf[camWord+2] != z {
		t.Errorf("camera_pos = (%g, %g, %g), want (%g, %g, %g)",
			buf[camWord], buf[camWord+1], buf[camWord+2], x, y, z)
	}
	if buf[tgtWord] != 1 || buf[tgtWord+1] != 2 || buf[tgtWord+2] != 3 {
		t.Errorf("camera_target = (%g, %g, %g), want (1, 2, 3)",
			buf[tgtWord], buf[tgtWord+1], buf[tgtWord+2])
	}
}

func TestLoadPresetRepacks(t *testing.T) {
	s := NewSession()
	if err := s.LoadPreset(testPreset()); err != nil {
		t.Fatalf("LoadPreset() error: %v", err)
	}
	if got := s.PresetName(); got != "test" {
		t.Errorf("PresetName() = %q, want %q", got, "test")
	}

	layout := s.Layout()
	if off, ok := layout.Offset("glow"); !ok || off != 112 {
		t.Errorf("glow offset = %d (ok %v), want 112", off, ok)
	}
	if off, ok := layout.Offset("tint"); !ok || off != 128 {
		t.Errorf("tint offset = %d (ok %v), want 128", off, ok)
	}
	if layout.TotalSize() != 144 {
		t.Errorf("TotalSize() = %d, want 144", layout.TotalSize())
	}

	buf, err := s.BuildFrame(FrameInput{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	if len(buf) != 36 {
		t.Fatalf("len(buf) = %d, want 36 words", len(buf))
	}
	if buf[28] != 0.5 {
		t.Errorf("glow word = %g, want 0.5", buf[28])
	}
	if buf[32] != 1 || buf[33] != 0.5 || buf[34] != 0.25 {
		t.Errorf("tint words = (%g, %g, %g), want (1, 0.5, 0.25)", buf[32], buf[33], buf[34])
	}
}

func TestLoadPresetRejectsBadParams(t *testing.T) {
	s := NewSession()
	bad := preset.Preset{
		Name: "bad",
		Params: []uniform.ParamDescriptor{
			{ID: "x", Kind: uniform.ParamFloat},
			{ID: "x", Kind: uniform.ParamFloat},
		},
	}
	if err := s.LoadPreset(bad); !errors.Is(err, uniform.ErrDuplicateParam) {
		t.Errorf("LoadPreset() error = %v, want ErrDuplicateParam", err)
	}
	// The failed load must not leave partial state behind.
	if got := s.PresetName(); got != "" {
		t.Errorf("PresetName() after failed load = %q, want empty", got)
	}
}

func TestSetParam(t *testing.T) {
	s := NewSession()
	if err := s.LoadPreset(testPreset()); err != nil {
		t.Fatalf("LoadPreset() error: %v", err)
	}

	before := s.Params()
	if err := s.SetParam("glow", [3]float32{0.9}); err != nil {
		t.Fatalf("SetParam() error: %v", err)
	}

	// SetParam copies the slice; earlier snapshots are unaffected.
	if before[0].Value[0] != 0.5 {
		t.Errorf("snapshot mutated: glow = %g, want 0.5", before[0].Value[0])
	}

	buf, err := s.BuildFrame(FrameInput{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	if buf[28] != 0.9 {
		t.Errorf("glow word after SetParam = %g, want 0.9", buf[28])
	}

	if err := s.SetParam("missing", [3]float32{}); !errors.Is(err, uniform.ErrMissingParam) {
		t.Errorf("SetParam(missing) error = %v, want ErrMissingParam", err)
	}
}

func TestRecordingClock(t *testing.T) {
	s := NewSession()
	s.BeginRecording(30)
	if !s.Recording() {
		t.Fatal("Recording() = false after BeginRecording")
	}

	for i := 0; i < 3; i++ {
		s.AdvanceFrame()
	}

	// Wall-clock input is ignored while recording.
	buf, err := s.BuildFrame(FrameInput{Width: 64, Height: 64, Elapsed: 999, Delta: 999})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}

	schema := uniform.FrameSchema()
	timeWord := schema.WordOffset(uniform.FieldTime)
	deltaWord := schema.WordOffset(uniform.FieldDeltaTime)
	if got, want := buf[timeWord], float32(3)/30; got != want {
		t.Errorf("time while recording = %g, want %g", got, want)
	}
	if got, want := buf[deltaWord], float32(1)/30; got != want {
		t.Errorf("delta while recording = %g, want %g", got, want)
	}

	s.EndRecording()
	buf, err = s.BuildFrame(FrameInput{Width: 64, Height: 64, Elapsed: 7, Delta: 0.5})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	if buf[timeWord] != 7 || buf[deltaWord] != 0.5 {
		t.Errorf("wall clock after EndRecording = (%g, %g), want (7, 0.5)", buf[timeWord], buf[deltaWord])
	}
}

func TestScrollProgressClamped(t *testing.T) {
	s := NewSession()
	schema := uniform.FrameSchema()
	word := schema.WordOffset(uniform.FieldScrollProgress)

	s.SetScrollProgress(-2)
	buf, _ := s.BuildFrame(FrameInput{Width: 1, Height: 1})
	if buf[word] != 0 {
		t.Errorf("scroll_progress = %g, want clamp at 0", buf[word])
	}

	s.SetScrollProgress(5)
	buf, _ = s.BuildFrame(FrameInput{Width: 1, Height: 1})
	if buf[word] != 1 {
		t.Errorf("scroll_progress = %g, want clamp at 1", buf[word])
	}
}

func TestDefaultsWithoutOptions(t *testing.T) {
	s := NewSession()
	buf, err := s.BuildFrame(FrameInput{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("BuildFrame() error: %v", err)
	}
	schema := uniform.FrameSchema()
	if got := buf[schema.WordOffset(uniform.FieldTexTiling)]; got != 1 {
		t.Errorf("default tiling x = %g, want 1", got)
	}
	if got := buf[schema.WordOffset(uniform.FieldScrollStrength)]; got != 1 {
		t.Errorf("default scroll strength = %g, want 1", got)
	}
}
