package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

const testBody = `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(u.glow, 0.0, 0.0, 1.0);
}
`

func TestNewProgramAssemblesSource(t *testing.T) {
	params := []uniform.ParamDescriptor{
		{ID: "glow", Kind: uniform.ParamFloat},
		{ID: "tint", Kind: uniform.ParamVec3},
	}
	p, err := NewProgram("test", uniform.FrameSchema(), params, testBody)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}

	src := p.Source()
	for _, want := range []string{
		"struct FrameUniforms {",
		"@group(0) @binding(0) var<uniform> u: FrameUniforms;",
		"@group(0) @binding(1) var user_tex: texture_2d<f32>;",
		"@group(0) @binding(2) var user_samp: sampler;",
		"fn vs_main",
		"fn fs_main",
		"glow: f32",
		"tint: vec3<f32>",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Source() missing %q", want)
		}
	}

	// The struct must be declared before the uniform var, which must precede both entry points.
	if strings.Index(src, "struct FrameUniforms") > strings.Index(src, "var<uniform>") {
		t.Error("uniform struct declared after the uniform var")
	}
	if strings.Index(src, "var<uniform>") > strings.Index(src, "fn vs_main") {
		t.Error("uniform var declared after the vertex stage")
	}

	if p.VertexEntryPoint() != "vs_main" || p.FragmentEntryPoint() != "fs_main" {
		t.Errorf("entry points = %q/%q", p.VertexEntryPoint(), p.FragmentEntryPoint())
	}
}

func TestNewProgramLayoutTracksSchema(t *testing.T) {
	schema := uniform.FrameSchema()
	params := []uniform.ParamDescriptor{{ID: "glow", Kind: uniform.ParamFloat}}

	p, err := NewProgram("test", schema, params, testBody)
	if err != nil {
		t.Fatal(err)
	}

	off, ok := p.Layout().Offset("glow")
	if !ok {
		t.Fatal("layout missing glow")
	}
	if off != schema.Size() {
		t.Errorf("glow offset = %d, want schema size %d", off, schema.Size())
	}

	descriptor := p.BindGroupLayoutDescriptor()
	if len(descriptor.Entries) != 3 {
		t.Fatalf("descriptor has %d entries, want 3", len(descriptor.Entries))
	}
	if got := descriptor.Entries[0].Buffer.MinBindingSize; got != uint64(p.Layout().TotalSize()) {
		t.Errorf("MinBindingSize = %d, want %d", got, p.Layout().TotalSize())
	}
}

func TestNewProgramRejectsBadInput(t *testing.T) {
	schema := uniform.FrameSchema()

	if _, err := NewProgram("no-entry", schema, nil, "fn other() {}"); err == nil {
		t.Error("NewProgram() accepted a body without fs_main")
	}
	dup := []uniform.ParamDescriptor{
		{ID: "a", Kind: uniform.ParamFloat},
		{ID: "a", Kind: uniform.ParamFloat},
	}
	if _, err := NewProgram("dup", schema, dup, testBody); err == nil {
		t.Error("NewProgram() accepted duplicate params")
	}
}
