package uniform

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func floats(ids ...string) []ParamDescriptor {
	params := make([]ParamDescriptor, len(ids))
	for i, id := range ids {
		params[i] = ParamDescriptor{ID: id, Kind: ParamFloat}
	}
	return params
}

func vecs(ids ...string) []ParamDescriptor {
	params := make([]ParamDescriptor, len(ids))
	for i, id := range ids {
		params[i] = ParamDescriptor{ID: id, Kind: ParamVec3}
	}
	return params
}

func TestComputeLayoutExamples(t *testing.T) {
	tests := []struct {
		name        string
		params      []ParamDescriptor
		baseOffset  uint32
		wantOffsets map[string]uint32
		wantTotal   uint32
	}{
		{
			name:        "single float at base 48",
			params:      floats("a"),
			baseOffset:  48,
			wantOffsets: map[string]uint32{"a": 48},
			wantTotal:   64,
		},
		{
			name:        "single vec3 at base 48",
			params:      vecs("c"),
			baseOffset:  48,
			wantOffsets: map[string]uint32{"c": 48},
			wantTotal:   64,
		},
		{
			name:        "float then vec3 at base 0",
			params:      append(floats("a"), vecs("c")...),
			baseOffset:  0,
			wantOffsets: map[string]uint32{"a": 0, "c": 16},
			wantTotal:   32,
		},
		{
			name:        "empty list pads the base",
			params:      nil,
			baseOffset:  48,
			wantOffsets: map[string]uint32{},
			wantTotal:   64,
		},
		{
			name:        "empty list on aligned base still advances",
			params:      nil,
			baseOffset:  32,
			wantOffsets: map[string]uint32{},
			wantTotal:   48,
		},
		{
			name:        "empty list on unaligned base",
			params:      nil,
			baseOffset:  40,
			wantOffsets: map[string]uint32{},
			wantTotal:   48,
		},
		{
			name:        "vec3 then float reuses no slack",
			params:      append(vecs("c"), floats("a")...),
			baseOffset:  0,
			wantOffsets: map[string]uint32{"c": 0, "a": 16},
			wantTotal:   32,
		},
		{
			name:        "three floats then vec3",
			params:      append(floats("a", "b", "c"), vecs("v")...),
			baseOffset:  0,
			wantOffsets: map[string]uint32{"a": 0, "b": 4, "c": 8, "v": 16},
			wantTotal:   32,
		},
		{
			name:        "unaligned-ish base from header",
			params:      append(floats("a"), vecs("v")...),
			baseOffset:  112,
			wantOffsets: map[string]uint32{"a": 112, "v": 128},
			wantTotal:   144,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := ComputeLayout(tt.params, tt.baseOffset)
			if err != nil {
				t.Fatalf("ComputeLayout() error = %v", err)
			}
			if layout.TotalSize() != tt.wantTotal {
				t.Errorf("TotalSize() = %d, want %d", layout.TotalSize(), tt.wantTotal)
			}
			got := make(map[string]uint32, layout.Len())
			for id := range tt.wantOffsets {
				off, ok := layout.Offset(id)
				if !ok {
					t.Fatalf("Offset(%q) missing", id)
				}
				got[id] = off
			}
			if layout.Len() != len(tt.wantOffsets) {
				t.Errorf("Len() = %d, want %d", layout.Len(), len(tt.wantOffsets))
			}
			if !reflect.DeepEqual(got, tt.wantOffsets) {
				t.Errorf("offsets = %v, want %v", got, tt.wantOffsets)
			}
		})
	}
}

func TestComputeLayoutScalarRuns(t *testing.T) {
	// All-scalar lists pack at exactly 4-byte stride with a 16-rounded total.
	for _, count := range []int{1, 2, 3, 4, 5, 7, 16, 33} {
		ids := make([]string, count)
		for i := range ids {
			ids[i] = "p" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		}
		layout, err := ComputeLayout(floats(ids...), 48)
		if err != nil {
			t.Fatalf("count %d: %v", count, err)
		}

		prev := int64(-1)
		for i, id := range ids {
			off, ok := layout.Offset(id)
			if !ok {
				t.Fatalf("count %d: missing %q", count, id)
			}
			if want := uint32(48 + 4*i); off != want {
				t.Errorf("count %d: %q at %d, want %d", count, id, off, want)
			}
			if int64(off) <= prev {
				t.Errorf("count %d: offsets not strictly increasing at %q", count, id)
			}
			prev = int64(off)
		}

		raw := uint32(48 + 4*count)
		want := (raw + 15) / 16 * 16
		if layout.TotalSize() != want {
			t.Errorf("count %d: TotalSize() = %d, want %d", count, layout.TotalSize(), want)
		}
	}
}

func TestComputeLayoutVectorRuns(t *testing.T) {
	// All-vector lists land on 16-byte multiples at exactly 16-byte stride.
	ids := []string{"a", "b", "c", "d", "e"}
	layout, err := ComputeLayout(vecs(ids...), 48)
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range ids {
		off, _ := layout.Offset(id)
		if off%16 != 0 {
			t.Errorf("%q offset %d not 16-aligned", id, off)
		}
		if want := uint32(48 + 16*i); off != want {
			t.Errorf("%q at %d, want %d", id, off, want)
		}
	}
	if layout.TotalSize() != 48+16*5 {
		t.Errorf("TotalSize() = %d, want %d", layout.TotalSize(), 48+16*5)
	}
}

func TestComputeLayoutIdempotent(t *testing.T) {
	params := []ParamDescriptor{
		{ID: "glow", Kind: ParamFloat, Value: [3]float32{0.4}},
		{ID: "tint", Kind: ParamVec3, Value: [3]float32{1, 0.5, 0.25}},
		{ID: "fog", Kind: ParamFloat, Value: [3]float32{0.1}},
	}
	first, err := ComputeLayout(params, 112)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ComputeLayout(params, 112)
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalSize() != second.TotalSize() {
		t.Errorf("total sizes differ: %d vs %d", first.TotalSize(), second.TotalSize())
	}
	for _, p := range params {
		a, _ := first.Offset(p.ID)
		b, _ := second.Offset(p.ID)
		if a != b {
			t.Errorf("%q offsets differ: %d vs %d", p.ID, a, b)
		}
	}
}

func TestComputeLayoutRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		params  []ParamDescriptor
		wantErr error
	}{
		{
			name:    "duplicate id",
			params:  floats("a", "b", "a"),
			wantErr: ErrDuplicateParam,
		},
		{
			name:    "unknown kind",
			params:  []ParamDescriptor{{ID: "x", Kind: ParamKind(99)}},
			wantErr: ErrUnknownKind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLayout(tt.params, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputeLayout() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteParamsRoundTrip(t *testing.T) {
	params := []ParamDescriptor{
		{ID: "radius", Kind: ParamFloat, Value: [3]float32{1.5}},
		{ID: "albedo", Kind: ParamVec3, Value: [3]float32{0.9, 0.35, 0.1}},
		{ID: "speed", Kind: ParamFloat, Value: [3]float32{-2.25}},
		{ID: "glow_color", Kind: ParamVec3, Value: [3]float32{0.2, 0.8, 1.0}},
	}
	layout, err := ComputeLayout(params, 48)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, layout.WordCount())
	if err := WriteParams(buf, params, layout); err != nil {
		t.Fatalf("WriteParams() error = %v", err)
	}

	const tol = 1e-7
	for _, p := range params {
		off, _ := layout.Offset(p.ID)
		word := off / 4
		width := 1
		if p.Kind == ParamVec3 {
			width = 3
		}
		for i := 0; i < width; i++ {
			if got := buf[word+uint32(i)]; math.Abs(float64(got-p.Value[i])) > tol {
				t.Errorf("%q component %d = %g, want %g", p.ID, i, got, p.Value[i])
			}
		}
	}
}

func TestWriteParamsLeavesVec3PadUntouched(t *testing.T) {
	params := vecs("tint")
	layout, err := ComputeLayout(params, 0)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, layout.WordCount())
	const sentinel = float32(123.5)
	buf[3] = sentinel // fourth word of the vec3 slot is caller-owned padding

	params[0].Value = [3]float32{1, 2, 3}
	if err := WriteParams(buf, params, layout); err != nil {
		t.Fatal(err)
	}
	if buf[3] != sentinel {
		t.Errorf("pad word overwritten: got %g, want %g", buf[3], sentinel)
	}
}

func TestWriteParamsFailsLoudly(t *testing.T) {
	params := floats("a")
	layout, err := ComputeLayout(params, 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("missing param", func(t *testing.T) {
		stranger := floats("b")
		buf := make([]float32, layout.WordCount())
		if err := WriteParams(buf, stranger, layout); !errors.Is(err, ErrMissingParam) {
			t.Errorf("error = %v, want ErrMissingParam", err)
		}
	})

	t.Run("short buffer scalar", func(t *testing.T) {
		if err := WriteParams(nil, params, layout); !errors.Is(err, ErrBufferTooSmall) {
			t.Errorf("error = %v, want ErrBufferTooSmall", err)
		}
	})

	t.Run("short buffer vec3", func(t *testing.T) {
		vp := vecs("v")
		vl, err := ComputeLayout(vp, 0)
		if err != nil {
			t.Fatal(err)
		}
		buf := make([]float32, 2) // holds the offset word but not all three components
		if err := WriteParams(buf, vp, vl); !errors.Is(err, ErrBufferTooSmall) {
			t.Errorf("error = %v, want ErrBufferTooSmall", err)
		}
	})
}
