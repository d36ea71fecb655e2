package uniform

import (
	"strings"
	"testing"
)

func TestFrameSchemaOffsets(t *testing.T) {
	s := FrameSchema()

	wantOffsets := map[string]uint32{
		FieldResolution:     0,
		FieldTime:           8,
		FieldDeltaTime:      12,
		FieldCameraPos:      16,
		FieldCameraTarget:   32,
		FieldPointer:        48,
		FieldScrollProgress: 56,
		FieldScrollEffect:   60,
		FieldScrollStrength: 64,
		FieldScrollSpeed:    68,
		FieldAudioBands:     80,
		FieldTexTiling:      96,
		FieldTexOffset:      104,
	}
	for name, want := range wantOffsets {
		got, ok := s.Offset(name)
		if !ok {
			t.Fatalf("Offset(%q) missing", name)
		}
		if got != want {
			t.Errorf("Offset(%q) = %d, want %d", name, got, want)
		}
	}

	if s.Size() != 112 {
		t.Errorf("Size() = %d, want 112", s.Size())
	}
	if s.Size()%16 != 0 {
		t.Errorf("Size() = %d is not a multiple of 16", s.Size())
	}
}

func TestSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema("Bad", []Field{
		{Name: "time", Type: FieldF32},
		{Name: "time", Type: FieldF32},
	})
	if err == nil {
		t.Fatal("NewSchema() accepted a duplicate field name")
	}
}

func TestSchemaWriteField(t *testing.T) {
	s := FrameSchema()
	buf := make([]float32, s.Size()/4)

	if err := s.WriteField(buf, FieldResolution, 1920, 1080); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteField(buf, FieldCameraPos, 1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteField(buf, FieldTime, 4.5); err != nil {
		t.Fatal(err)
	}

	if buf[0] != 1920 || buf[1] != 1080 {
		t.Errorf("resolution words = %v %v, want 1920 1080", buf[0], buf[1])
	}
	if buf[2] != 4.5 {
		t.Errorf("time word = %v, want 4.5", buf[2])
	}
	cam := s.WordOffset(FieldCameraPos)
	if buf[cam] != 1 || buf[cam+1] != 2 || buf[cam+2] != 3 {
		t.Errorf("camera words = %v, want [1 2 3]", buf[cam:cam+3])
	}

	if err := s.WriteField(buf, "nope", 0); err == nil {
		t.Error("WriteField() accepted an unknown field")
	}
	if err := s.WriteField(buf[:1], FieldCameraPos, 1, 2, 3); err == nil {
		t.Error("WriteField() accepted a short buffer")
	}
}

func TestBlockWGSLMatchesPackedOffsets(t *testing.T) {
	s := FrameSchema()
	params := []ParamDescriptor{
		{ID: "glow", Kind: ParamFloat},
		{ID: "tint", Kind: ParamVec3},
		{ID: "fog", Kind: ParamFloat},
	}

	src, err := s.BlockWGSL(params)
	if err != nil {
		t.Fatalf("BlockWGSL() error = %v", err)
	}

	// Every field and parameter appears exactly once, in declaration order.
	wantOrder := []string{
		"resolution: vec2<f32>",
		"time: f32",
		"camera_pos: vec3<f32>",
		"audio_bands: vec4<f32>",
		"glow: f32",
		"tint: vec3<f32>",
		"fog: f32",
	}
	prev := -1
	for _, want := range wantOrder {
		idx := strings.Index(src, want)
		if idx < 0 {
			t.Fatalf("BlockWGSL() output missing %q:\n%s", want, src)
		}
		if idx < prev {
			t.Errorf("%q out of order", want)
		}
		prev = idx
	}

	// The emitted member word count must equal the packed layout's word count,
	// so the WGSL compiler derives the exact offsets ComputeLayout assigned.
	layout, err := ComputeLayout(params, s.Size())
	if err != nil {
		t.Fatal(err)
	}
	words := 0
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, "vec4<f32>"):
			words += 4
		case strings.Contains(line, "vec3<f32>"):
			words += 3
		case strings.Contains(line, "vec2<f32>"):
			words += 2
		case strings.Contains(line, ": f32"):
			words++
		}
	}
	if uint32(words) != layout.WordCount() {
		t.Errorf("emitted %d words, layout has %d", words, layout.WordCount())
	}
}

func TestBlockWGSLRejectsBadParams(t *testing.T) {
	s := FrameSchema()
	tests := []struct {
		name   string
		params []ParamDescriptor
	}{
		{"invalid identifier", []ParamDescriptor{{ID: "9lives", Kind: ParamFloat}}},
		{"hyphenated identifier", []ParamDescriptor{{ID: "my-param", Kind: ParamFloat}}},
		{"pad prefix", []ParamDescriptor{{ID: "_pad7", Kind: ParamFloat}}},
		{"clash with header field", []ParamDescriptor{{ID: "time", Kind: ParamFloat}}},
		{"duplicate param", []ParamDescriptor{{ID: "a", Kind: ParamFloat}, {ID: "a", Kind: ParamFloat}}},
		{"unknown kind", []ParamDescriptor{{ID: "ok", Kind: ParamKind(42)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.BlockWGSL(tt.params); err == nil {
				t.Error("BlockWGSL() accepted bad params")
			}
		})
	}
}
