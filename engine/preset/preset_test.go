package preset

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

func TestBuiltinsRegistered(t *testing.T) {
	names := Names()
	if len(names) < 3 {
		t.Fatalf("Names() = %v, want at least 3 built-ins", names)
	}
	for _, want := range []string{"mengerbox", "orb", "seastack"} {
		if _, ok := Get(want); !ok {
			t.Errorf("Get(%q) missing", want)
		}
	}
	if !strings.HasPrefix(names[0], "m") {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestBuiltinsAssemble(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, _ := Get(name)
			prog, err := p.Program()
			if err != nil {
				t.Fatalf("Program() error = %v", err)
			}

			// Every declared parameter must appear in the generated block and
			// have a packed offset past the frame header.
			header := uniform.FrameSchema().Size()
			for _, param := range p.Params {
				if !strings.Contains(prog.Source(), param.ID+":") {
					t.Errorf("source missing parameter %q", param.ID)
				}
				off, ok := prog.Layout().Offset(param.ID)
				if !ok {
					t.Fatalf("layout missing %q", param.ID)
				}
				if off < header {
					t.Errorf("%q offset %d inside header (size %d)", param.ID, off, header)
				}
			}

			// The body must reference only generated fields: vs_main, fs_main
			// and the post stage must all be present in one module.
			for _, want := range []string{"fn vs_main", "fn fs_main", "fn apply_post"} {
				if !strings.Contains(prog.Source(), want) {
					t.Errorf("source missing %q", want)
				}
			}
		})
	}
}

func TestBuiltinDefaultsWithinBounds(t *testing.T) {
	for _, name := range Names() {
		p, _ := Get(name)
		for _, param := range p.Params {
			width := 1
			if param.Kind == uniform.ParamVec3 {
				width = 3
			}
			for i := 0; i < width; i++ {
				if param.Value[i] < param.Min || param.Value[i] > param.Max {
					t.Errorf("%s/%s component %d default %g outside [%g, %g]",
						name, param.ID, i, param.Value[i], param.Min, param.Max)
				}
			}
		}
	}
}
