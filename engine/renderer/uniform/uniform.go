// Package uniform implements the uniform-buffer layout engine at the heart of
// the studio: it packs an ordered list of typed shader parameters into a
// fixed-stride binary layout following WGSL uniform alignment rules, and writes
// current parameter values into a word-addressed buffer at the computed offsets.
//
// A Layout is derived data: it is recomputed from scratch whenever the
// parameter set changes (preset load, shader reload) and is never mutated in
// place. Values, by contrast, change every frame and are refreshed with
// WriteParams without touching the layout.
package uniform

import (
	"errors"
	"fmt"
)

// ParamKind identifies the shading-language type of a shader parameter.
type ParamKind int

const (
	// ParamFloat is a single 32-bit float scalar. Occupies 4 bytes at a
	// 4-byte-aligned offset.
	ParamFloat ParamKind = iota

	// ParamVec3 is a three-component vector, also used for colors. Occupies a
	// full 16-byte slot at a 16-byte-aligned offset; the fourth word of the
	// slot is padding and is never written.
	ParamVec3
)

// String returns the WGSL-facing name of the kind.
//
// Returns:
//   - string: "f32", "vec3" or "unknown"
func (k ParamKind) String() string {
	switch k {
	case ParamFloat:
		return "f32"
	case ParamVec3:
		return "vec3"
	default:
		return "unknown"
	}
}

// size returns the packed byte size of the kind, or 0 for unknown kinds.
func (k ParamKind) size() uint32 {
	switch k {
	case ParamFloat:
		return 4
	case ParamVec3:
		return 16
	default:
		return 0
	}
}

// alignment returns the required byte alignment of the kind, or 0 for unknown kinds.
func (k ParamKind) alignment() uint32 {
	switch k {
	case ParamFloat:
		return 4
	case ParamVec3:
		return 16
	default:
		return 0
	}
}

// ParamDescriptor declares one tunable shader parameter: its unique id, its
// shading-language kind, its current value, and the slider metadata the UI
// uses to expose it. Descriptors are treated as immutable within a frame;
// edits replace the descriptor slice rather than mutating entries in place.
type ParamDescriptor struct {
	// ID is the unique key of the parameter within its preset.
	ID string

	// Kind is the shading-language type of the parameter.
	Kind ParamKind

	// Value holds the current value. Floats use element 0; vec3/color
	// parameters use all three elements.
	Value [3]float32

	// Min, Max and Step describe the slider range exposed for this parameter.
	Min, Max, Step float32
}

// Layout maps parameter ids to byte offsets inside a uniform buffer and
// records the buffer's total padded size. Layouts are value types created by
// ComputeLayout; they carry no GPU state and have no independent identity.
type Layout struct {
	// totalSize is the total buffer size in bytes, rounded up to a multiple of 16.
	totalSize uint32

	// offsets maps parameter id to its byte offset from the start of the buffer.
	offsets map[string]uint32
}

// Sentinel errors returned by ComputeLayout and WriteParams. Callers can match
// them with errors.Is.
var (
	// ErrDuplicateParam indicates two parameters in a list share an id.
	ErrDuplicateParam = errors.New("duplicate parameter id")

	// ErrUnknownKind indicates a parameter declared a kind this packer does not define.
	ErrUnknownKind = errors.New("unknown parameter kind")

	// ErrMissingParam indicates a parameter id has no offset in the layout.
	ErrMissingParam = errors.New("parameter not present in layout")

	// ErrBufferTooSmall indicates a destination buffer cannot hold the layout.
	ErrBufferTooSmall = errors.New("destination buffer too small for layout")
)

// padTo returns the number of padding bytes needed to advance cursor to the
// next multiple of alignment (zero if already aligned).
func padTo(cursor, alignment uint32) uint32 {
	return (alignment - cursor%alignment) % alignment
}

// ComputeLayout assigns a byte offset to every parameter in list order,
// starting at baseOffset, inserting the minimum padding required by each
// parameter's alignment (4 for floats, 16 for vec3/color). The returned
// layout's total size is the final cursor rounded up to the next multiple of
// 16, so that fixed fields packed after the parameter block land on the
// 16-byte boundaries WGSL uniform buffers require. An empty parameter list
// still pads the base: the total is the strictly next multiple of 16 above
// baseOffset, so the buffer always reserves at least one slot past the fixed
// header.
//
// Duplicate ids and unknown kinds are rejected rather than silently
// mis-packing. The function is pure: identical inputs yield identical layouts.
//
// Parameters:
//   - params: the ordered parameter descriptors to pack
//   - baseOffset: byte size of fixed fields preceding the parameter block
//
// Returns:
//   - Layout: the computed offsets and padded total size
//   - error: ErrDuplicateParam or ErrUnknownKind (wrapped with the offending id)
func ComputeLayout(params []ParamDescriptor, baseOffset uint32) (Layout, error) {
	offsets := make(map[string]uint32, len(params))
	cursor := baseOffset

	for _, p := range params {
		if _, exists := offsets[p.ID]; exists {
			return Layout{}, fmt.Errorf("%w: %q", ErrDuplicateParam, p.ID)
		}

		align := p.Kind.alignment()
		if align == 0 {
			return Layout{}, fmt.Errorf("%w: %q has kind %d", ErrUnknownKind, p.ID, int(p.Kind))
		}

		cursor += padTo(cursor, align)
		offsets[p.ID] = cursor
		cursor += p.Kind.size()
	}

	if len(params) == 0 {
		// Padding is applied to the bare base even when it is already
		// aligned, so an empty block never collapses to zero bytes.
		cursor += 16 - cursor%16
	} else {
		cursor += padTo(cursor, 16)
	}

	return Layout{
		totalSize: cursor,
		offsets:   offsets,
	}, nil
}

// TotalSize returns the total buffer size in bytes, always a multiple of 16.
//
// Returns:
//   - uint32: the padded total size
func (l Layout) TotalSize() uint32 {
	return l.totalSize
}

// Offset returns the byte offset of the parameter with the given id.
//
// Parameters:
//   - id: the parameter id to look up
//
// Returns:
//   - uint32: the byte offset, or 0 if not present
//   - bool: true if the id is present in the layout
func (l Layout) Offset(id string) (uint32, bool) {
	off, ok := l.offsets[id]
	return off, ok
}

// Len returns the number of parameters in the layout.
//
// Returns:
//   - int: the parameter count
func (l Layout) Len() int {
	return len(l.offsets)
}

// WordCount returns the layout's total size in 4-byte words, the natural
// length for the float32 scratch buffer WriteParams targets.
//
// Returns:
//   - uint32: TotalSize / 4
func (l Layout) WordCount() uint32 {
	return l.totalSize / 4
}

// WriteParams copies every parameter's current value into dst at the word
// index derived from its layout offset (offset / 4, exact by construction).
// Floats write one word; vec3/color parameters write three consecutive words
// and leave the fourth word of their 16-byte slot untouched, so a
// zero-initialized buffer keeps zeroed padding across calls.
//
// WriteParams is called once per rendered frame: values change continuously
// while the layout stays cached between preset loads.
//
// Parameters:
//   - dst: the word-addressed destination buffer; must hold at least layout.WordCount() words
//   - params: the parameter descriptors whose values to write
//   - layout: the layout previously computed for these parameters
//
// Returns:
//   - error: ErrMissingParam if a descriptor has no offset, ErrBufferTooSmall
//     if a write would land outside dst, ErrUnknownKind for undefined kinds
func WriteParams(dst []float32, params []ParamDescriptor, layout Layout) error {
	for _, p := range params {
		offset, ok := layout.offsets[p.ID]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingParam, p.ID)
		}
		word := int(offset / 4)

		switch p.Kind {
		case ParamFloat:
			if word >= len(dst) {
				return fmt.Errorf("%w: %q at word %d, len %d", ErrBufferTooSmall, p.ID, word, len(dst))
			}
			dst[word] = p.Value[0]
		case ParamVec3:
			if word+2 >= len(dst) {
				return fmt.Errorf("%w: %q at words %d-%d, len %d", ErrBufferTooSmall, p.ID, word, word+2, len(dst))
			}
			dst[word] = p.Value[0]
			dst[word+1] = p.Value[1]
			dst[word+2] = p.Value[2]
		default:
			return fmt.Errorf("%w: %q has kind %d", ErrUnknownKind, p.ID, int(p.Kind))
		}
	}
	return nil
}
