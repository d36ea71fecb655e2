package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestInvalidateLayoutKeepsImages(t *testing.T) {
	p := NewBindGroupProvider("test provider")
	p.SetTexture(1, &wgpu.Texture{})
	p.SetTextureView(1, &wgpu.TextureView{})
	p.SetSampler(2, &wgpu.Sampler{})

	p.InvalidateLayout()

	// Buffer-side state is gone so the next InitBindGroup allocates a fresh
	// uniform buffer and layout sized to the new program.
	if p.Buffer(0) != nil {
		t.Error("Buffer(0) != nil after InvalidateLayout")
	}
	if len(p.Buffers()) != 0 {
		t.Errorf("len(Buffers()) = %d after InvalidateLayout, want 0", len(p.Buffers()))
	}
	if p.BindGroup() != nil {
		t.Error("BindGroup() != nil after InvalidateLayout")
	}
	if p.BindGroupLayout() != nil {
		t.Error("BindGroupLayout() != nil after InvalidateLayout")
	}

	// Image bindings survive a preset reload; only the bind group that
	// references them is rebuilt.
	if p.Texture(1) == nil {
		t.Error("Texture(1) = nil after InvalidateLayout, want kept")
	}
	if p.TextureView(1) == nil {
		t.Error("TextureView(1) = nil after InvalidateLayout, want kept")
	}
	if p.Sampler(2) == nil {
		t.Error("Sampler(2) = nil after InvalidateLayout, want kept")
	}
}

func TestInvalidateLayoutOnFreshProvider(t *testing.T) {
	p := NewBindGroupProvider("fresh")
	// Nothing allocated yet; repeated invalidation must not panic.
	p.InvalidateLayout()
	p.InvalidateLayout()
	if p.BindGroup() != nil || p.BindGroupLayout() != nil {
		t.Error("fresh provider reports GPU state after InvalidateLayout")
	}
}
