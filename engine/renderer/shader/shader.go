// Package shader assembles complete WGSL programs for the fullscreen raymarch
// pass. A program is built from three parts: the generated frame uniform
// struct (derived from the canonical schema plus the preset's parameter list),
// the shared fullscreen-triangle vertex stage, and the preset's fragment body.
//
// Nothing here parses WGSL. The uniform block text is generated from the same
// schema and layout the host writes through, so the shader and the packer
// cannot disagree about offsets; the fragment body is treated as an opaque
// program that reads the generated fields by name.
package shader

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
	"github.com/cogentcore/webgpu/wgpu"
)

// fullscreenVertexSource is the shared fullscreen-triangle vertex stage
// prepended to every assembled program.
//
//go:embed assets/fullscreen_vert.wgsl
var fullscreenVertexSource string

// Binding indices of the single bind group every program uses.
const (
	// BindingUniforms is the frame uniform buffer binding.
	BindingUniforms = 0

	// BindingTexture is the user texture binding (a 1x1 white fallback when
	// no texture has been uploaded).
	BindingTexture = 1

	// BindingSampler is the sampler for the user texture.
	BindingSampler = 2
)

// program is the implementation of the Program interface.
type program struct {
	// key is the unique identifier for this program, used for pipeline caching.
	key string

	// source is the fully assembled WGSL module text.
	source string

	// layout is the parameter layout computed against the schema's base offset.
	layout uniform.Layout

	// schema is the fixed header schema the program was generated from.
	schema uniform.Schema
}

// Program is a fully assembled WGSL render program: one module containing the
// vertex and fragment entry points, the generated uniform block, and the
// static bind group layout shared by every preset.
type Program interface {
	// Key retrieves the unique identifier for this program, used for pipeline
	// caching and lookups.
	//
	// Returns:
	//   - string: the program's unique key
	Key() string

	// Source retrieves the assembled WGSL module source.
	//
	// Returns:
	//   - string: the complete WGSL source text
	Source() string

	// VertexEntryPoint returns the vertex entry point name in the module.
	//
	// Returns:
	//   - string: the vertex entry point ("vs_main")
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment entry point name in the module.
	//
	// Returns:
	//   - string: the fragment entry point ("fs_main")
	FragmentEntryPoint() string

	// Layout returns the parameter layout the program was generated against.
	// The renderer sizes the uniform buffer from this layout's total size.
	//
	// Returns:
	//   - uniform.Layout: the packed parameter layout
	Layout() uniform.Layout

	// Schema returns the fixed header schema the program was generated from.
	//
	// Returns:
	//   - uniform.Schema: the frame header schema
	Schema() uniform.Schema

	// BindGroupLayoutDescriptor returns the layout descriptor for the
	// program's single bind group: the uniform buffer, the user texture, and
	// its sampler. The descriptor is built from the generated block rather
	// than parsed out of the source.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the bind group layout descriptor
	BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// Module returns the wgpu.ShaderModuleDescriptor for this program.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: descriptor holding the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Program = &program{}

// NewProgram assembles a complete WGSL program for one preset: the uniform
// block generated from schema+params, the binding declarations, the shared
// vertex stage, and the preset's fragment body.
//
// The fragment body must declare `@fragment fn fs_main` and may read any
// generated uniform field through the global `u`, and sample the user texture
// through `user_tex` / `user_samp`.
//
// Parameters:
//   - key: unique identifier for the program
//   - schema: the fixed header schema (normally uniform.FrameSchema())
//   - params: the preset's ordered parameter descriptors
//   - fragmentBody: WGSL text containing the fs_main entry point
//
// Returns:
//   - Program: the assembled program
//   - error: an error if the block cannot be generated or the body lacks fs_main
func NewProgram(key string, schema uniform.Schema, params []uniform.ParamDescriptor, fragmentBody string) (Program, error) {
	if !strings.Contains(fragmentBody, "fs_main") {
		return nil, fmt.Errorf("program %q: fragment body does not define fs_main", key)
	}

	layout, err := uniform.ComputeLayout(params, schema.Size())
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", key, err)
	}

	block, err := schema.BlockWGSL(params)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", key, err)
	}

	var b strings.Builder
	b.WriteString(block)
	b.WriteString("\n")
	fmt.Fprintf(&b, "@group(0) @binding(%d) var<uniform> u: %s;\n", BindingUniforms, schema.Name())
	fmt.Fprintf(&b, "@group(0) @binding(%d) var user_tex: texture_2d<f32>;\n", BindingTexture)
	fmt.Fprintf(&b, "@group(0) @binding(%d) var user_samp: sampler;\n\n", BindingSampler)
	b.WriteString(fullscreenVertexSource)
	b.WriteString("\n")
	b.WriteString(fragmentBody)

	return &program{
		key:    key,
		source: b.String(),
		layout: layout,
		schema: schema,
	}, nil
}

func (p *program) Key() string {
	return p.key
}

func (p *program) Source() string {
	return p.source
}

func (p *program) VertexEntryPoint() string {
	return "vs_main"
}

func (p *program) FragmentEntryPoint() string {
	return "fs_main"
}

func (p *program) Layout() uniform.Layout {
	return p.layout
}

func (p *program) Schema() uniform.Schema {
	return p.schema
}

func (p *program) BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: p.key + " Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    BindingUniforms,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(p.layout.TotalSize()),
				},
			},
			{
				Binding:    BindingTexture,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    BindingSampler,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

func (p *program) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: p.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.source,
		},
	}
}
