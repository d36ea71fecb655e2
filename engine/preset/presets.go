package preset

import (
	_ "embed"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

//go:embed assets/post_fx.wgsl
var postFXSource string

//go:embed assets/orb.wgsl
var orbSource string

//go:embed assets/mengerbox.wgsl
var mengerboxSource string

//go:embed assets/seastack.wgsl
var seastackSource string

func init() {
	Register(Preset{
		Name: "orb",
		Body: postFXSource + "\n" + orbSource,
		Params: []uniform.ParamDescriptor{
			{ID: "radius", Kind: uniform.ParamFloat, Value: [3]float32{1.2}, Min: 0.2, Max: 3.0, Step: 0.05},
			{ID: "glow", Kind: uniform.ParamFloat, Value: [3]float32{0.8}, Min: 0, Max: 2.0, Step: 0.05},
			{ID: "pulse_speed", Kind: uniform.ParamFloat, Value: [3]float32{1.5}, Min: 0, Max: 8.0, Step: 0.1},
			{ID: "base_color", Kind: uniform.ParamVec3, Value: [3]float32{0.85, 0.4, 0.25}, Min: 0, Max: 1, Step: 0.01},
			{ID: "glow_color", Kind: uniform.ParamVec3, Value: [3]float32{0.3, 0.7, 1.0}, Min: 0, Max: 1, Step: 0.01},
		},
	})

	Register(Preset{
		Name: "mengerbox",
		Body: postFXSource + "\n" + mengerboxSource,
		Params: []uniform.ParamDescriptor{
			{ID: "detail", Kind: uniform.ParamFloat, Value: [3]float32{4}, Min: 1, Max: 6, Step: 1},
			{ID: "fold_scale", Kind: uniform.ParamFloat, Value: [3]float32{3.0}, Min: 2.0, Max: 4.0, Step: 0.05},
			{ID: "fog", Kind: uniform.ParamFloat, Value: [3]float32{0.6}, Min: 0, Max: 2.0, Step: 0.05},
			{ID: "core_color", Kind: uniform.ParamVec3, Value: [3]float32{0.75, 0.7, 0.6}, Min: 0, Max: 1, Step: 0.01},
			{ID: "edge_color", Kind: uniform.ParamVec3, Value: [3]float32{0.9, 0.35, 0.15}, Min: 0, Max: 1, Step: 0.01},
		},
	})

	Register(Preset{
		Name: "seastack",
		Body: postFXSource + "\n" + seastackSource,
		Params: []uniform.ParamDescriptor{
			{ID: "wave_height", Kind: uniform.ParamFloat, Value: [3]float32{0.5}, Min: 0, Max: 2.0, Step: 0.05},
			{ID: "swell_speed", Kind: uniform.ParamFloat, Value: [3]float32{0.8}, Min: 0, Max: 4.0, Step: 0.1},
			{ID: "stack_radius", Kind: uniform.ParamFloat, Value: [3]float32{1.4}, Min: 0.3, Max: 3.0, Step: 0.05},
			{ID: "water_color", Kind: uniform.ParamVec3, Value: [3]float32{0.05, 0.25, 0.35}, Min: 0, Max: 1, Step: 0.01},
			{ID: "rock_color", Kind: uniform.ParamVec3, Value: [3]float32{0.4, 0.35, 0.3}, Min: 0, Max: 1, Step: 0.01},
		},
	})
}
