// Package preset ships the built-in raymarch programs of the studio. A preset
// is the declarative contract between a shader body and the rest of the tool:
// an ordered parameter descriptor list (which the layout packer consumes) and
// an opaque WGSL fragment body (which reads the generated uniform fields by
// name). Presets carry no GPU state; loading one recomputes the layout and
// rebuilds the pipeline.
package preset

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// Preset pairs a WGSL fragment body with the parameter list it exposes.
type Preset struct {
	// Name is the unique preset name shown in the UI and used for lookups.
	Name string

	// Body is the WGSL fragment stage, including the fs_main entry point.
	// Treated as an opaque program; it may reference any generated uniform
	// field plus the shared post-effect helper.
	Body string

	// Params is the ordered list of tunable parameters, with default values
	// and slider metadata. The list order fixes the packed layout.
	Params []uniform.ParamDescriptor
}

// Program assembles the preset into a complete WGSL render program against
// the canonical frame schema.
//
// Returns:
//   - shader.Program: the assembled program
//   - error: an error if the parameter list or body is invalid
func (p Preset) Program() (shader.Program, error) {
	return shader.NewProgram(p.Name, uniform.FrameSchema(), p.Params, p.Body)
}

// registry holds all registered presets by name.
var registry = map[string]Preset{}

// Register adds a preset to the registry. Registering a duplicate name or a
// preset whose parameter list fails to pack is a programming error and panics;
// built-ins register at init and a bad preset should never reach runtime.
//
// Parameters:
//   - p: the preset to register
func Register(p Preset) {
	if _, exists := registry[p.Name]; exists {
		panic(fmt.Sprintf("preset: duplicate registration of %q", p.Name))
	}
	if _, err := uniform.ComputeLayout(p.Params, uniform.FrameSchema().Size()); err != nil {
		panic(fmt.Sprintf("preset %q: %v", p.Name, err))
	}
	registry[p.Name] = p
}

// Get retrieves a registered preset by name.
//
// Parameters:
//   - name: the preset name to look up
//
// Returns:
//   - Preset: the preset, zero-valued if not found
//   - bool: true if the preset exists
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names returns the sorted names of all registered presets.
//
// Returns:
//   - []string: the registered preset names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
