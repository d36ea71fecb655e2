// Package session holds the mutable state of one render surface: the active
// preset and its packed parameter layout, the orbit camera, pointer and scroll
// state, audio band energies, the texture transform, and the frame clock. The
// session is the only writer of the frame uniform buffer; each frame it packs
// everything into one word slice that the renderer uploads in a single
// WriteBuffer call.
package session

import (
	"github.com/Carmen-Shannon/marcher-go/engine/camera"
	"github.com/Carmen-Shannon/marcher-go/engine/preset"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/uniform"
)

// FrameInput carries the per-frame values the engine feeds into BuildFrame.
type FrameInput struct {
	// Width is the surface width in pixels.
	Width uint32

	// Height is the surface height in pixels.
	Height uint32

	// Elapsed is the wall-clock time in seconds since the session started.
	// Ignored while recording; the recording clock is frame-counted.
	Elapsed float32

	// Delta is the wall-clock time in seconds since the previous frame.
	// Ignored while recording.
	Delta float32
}

// Session owns the per-surface state behind the frame uniform buffer. All
// methods are safe for concurrent use; mutations take effect on the next
// BuildFrame call.
type Session interface {
	// LoadPreset replaces the active preset: the parameter list is copied,
	// the layout is recomputed against the frame schema, and the scratch
	// buffer is resized. The previous layout identity is discarded.
	//
	// Parameters:
	//   - p: the preset to activate
	//
	// Returns:
	//   - error: an error if the preset's parameter list fails to pack
	LoadPreset(p preset.Preset) error

	// PresetName retrieves the name of the active preset.
	//
	// Returns:
	//   - string: the active preset name, empty if none is loaded
	PresetName() string

	// SetParam replaces the value of one parameter of the active preset.
	// The layout is untouched; only the descriptor value changes.
	//
	// Parameters:
	//   - id: the parameter id to update
	//   - value: the new component values (index 0 for floats)
	//
	// Returns:
	//   - error: ErrMissingParam if the id is not in the active preset
	SetParam(id string, value [3]float32) error

	// Params retrieves a copy of the active parameter descriptors.
	//
	// Returns:
	//   - []uniform.ParamDescriptor: the copied descriptor slice
	Params() []uniform.ParamDescriptor

	// Layout retrieves the packed layout of the active parameter block.
	//
	// Returns:
	//   - uniform.Layout: the current layout
	Layout() uniform.Layout

	// Camera retrieves the session's orbit camera controller.
	//
	// Returns:
	//   - camera.Controller: the camera controller
	Camera() camera.Controller

	// SetPointer updates the normalized pointer position.
	//
	// Parameters:
	//   - x: horizontal position in [0, 1]
	//   - y: vertical position in [0, 1]
	SetPointer(x, y float32)

	// SetScrollProgress updates the scroll progress, clamped to [0, 1].
	//
	// Parameters:
	//   - progress: the normalized scroll position
	SetScrollProgress(progress float32)

	// SetScrollEffect selects the scroll-driven post effect and its shaping.
	//
	// Parameters:
	//   - effect: the effect index (0 disables)
	//   - strength: the effect strength
	//   - speed: the effect animation speed
	SetScrollEffect(effect int, strength, speed float32)

	// SetAudioBands updates the four audio band energies.
	//
	// Parameters:
	//   - bands: band energies, low to high
	SetAudioBands(bands [4]float32)

	// SetTextureTransform updates the user texture tiling and offset.
	//
	// Parameters:
	//   - tilingX: horizontal tiling factor
	//   - tilingY: vertical tiling factor
	//   - offsetX: horizontal UV offset
	//   - offsetY: vertical UV offset
	SetTextureTransform(tilingX, tilingY, offsetX, offsetY float32)

	// BeginRecording switches the clock to frame counting at the given rate.
	// The frame counter restarts at zero.
	//
	// Parameters:
	//   - fps: the recording frame rate, must be positive
	BeginRecording(fps int)

	// EndRecording switches the clock back to wall time.
	EndRecording()

	// Recording reports whether the frame-counted clock is active.
	//
	// Returns:
	//   - bool: true while recording
	Recording() bool

	// AdvanceFrame increments the recording frame counter and returns the new
	// frame index. Has no effect outside recording.
	//
	// Returns:
	//   - int: the frame index after advancing
	AdvanceFrame() int

	// BuildFrame packs the frame header and the active parameter block into
	// the session's scratch buffer and returns it. The returned slice is
	// reused across calls; the caller must upload it before the next frame.
	//
	// Parameters:
	//   - input: the per-frame surface and clock values
	//
	// Returns:
	//   - []float32: the packed uniform words, ready for queue upload
	//   - error: an error if a parameter or header field cannot be written
	BuildFrame(input FrameInput) ([]float32, error)
}
