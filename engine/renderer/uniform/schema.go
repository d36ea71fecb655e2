package uniform

import (
	"fmt"
	"strings"
)

// FieldType identifies the shading-language type of a fixed uniform field.
// Unlike ParamKind, fixed fields cover the full set of types the frame header
// needs; vec3 fields consume a full 16-byte slot (trailing pad emitted) so the
// resolver and the parameter packer share one arithmetic discipline.
type FieldType int

const (
	// FieldF32 is a 32-bit float: size 4, alignment 4.
	FieldF32 FieldType = iota

	// FieldVec2 is a two-component vector: size 8, alignment 8.
	FieldVec2

	// FieldVec3 is a three-component vector: alignment 16, consuming a full
	// 16-byte slot with an explicit trailing pad word.
	FieldVec3

	// FieldVec4 is a four-component vector: size 16, alignment 16.
	FieldVec4
)

// wgsl returns the WGSL type name for the field type.
func (t FieldType) wgsl() string {
	switch t {
	case FieldF32:
		return "f32"
	case FieldVec2:
		return "vec2<f32>"
	case FieldVec3:
		return "vec3<f32>"
	case FieldVec4:
		return "vec4<f32>"
	default:
		return "f32"
	}
}

// size returns the slot byte size of the field type (vec3 includes its pad word).
func (t FieldType) size() uint32 {
	switch t {
	case FieldF32:
		return 4
	case FieldVec2:
		return 8
	case FieldVec3, FieldVec4:
		return 16
	default:
		return 0
	}
}

// alignment returns the required byte alignment of the field type.
func (t FieldType) alignment() uint32 {
	switch t {
	case FieldF32:
		return 4
	case FieldVec2:
		return 8
	case FieldVec3, FieldVec4:
		return 16
	default:
		return 0
	}
}

// wordWidth returns how many meaningful 4-byte words the field type writes.
func (t FieldType) wordWidth() int {
	switch t {
	case FieldF32:
		return 1
	case FieldVec2:
		return 2
	case FieldVec3:
		return 3
	case FieldVec4:
		return 4
	default:
		return 0
	}
}

// Field is one named, typed entry of a fixed uniform schema.
type Field struct {
	// Name is the WGSL member name of the field.
	Name string

	// Type is the shading-language type of the field.
	Type FieldType
}

// Schema is an ordered list of fixed uniform fields with a struct name. It is
// the single source of truth for the frame uniform block: both the host-side
// byte offsets and the WGSL struct text every preset compiles against are
// derived from it, so the two cannot drift.
type Schema struct {
	// name is the WGSL struct name emitted by WGSL().
	name string

	// fields are the ordered schema entries.
	fields []Field

	// offsets maps field name to resolved byte offset.
	offsets map[string]uint32

	// size is the packed size of all fields, rounded up to a multiple of 16.
	size uint32
}

// NewSchema builds a schema from an ordered field list and resolves every
// field's byte offset using the same left-to-right minimal-padding scan as
// ComputeLayout. Field names must be unique and non-empty.
//
// Parameters:
//   - name: the WGSL struct name
//   - fields: the ordered fields of the block
//
// Returns:
//   - Schema: the resolved schema
//   - error: an error if a field name is empty or duplicated
func NewSchema(name string, fields []Field) (Schema, error) {
	offsets := make(map[string]uint32, len(fields))
	var cursor uint32

	for _, f := range fields {
		if f.Name == "" {
			return Schema{}, fmt.Errorf("schema %q: field with empty name", name)
		}
		if _, exists := offsets[f.Name]; exists {
			return Schema{}, fmt.Errorf("schema %q: %w: %q", name, ErrDuplicateParam, f.Name)
		}
		cursor += padTo(cursor, f.Type.alignment())
		offsets[f.Name] = cursor
		cursor += f.Type.size()
	}
	cursor += padTo(cursor, 16)

	return Schema{
		name:    name,
		fields:  fields,
		offsets: offsets,
		size:    cursor,
	}, nil
}

// Name returns the WGSL struct name of the schema.
//
// Returns:
//   - string: the struct name
func (s Schema) Name() string {
	return s.name
}

// Size returns the packed schema size in bytes, a multiple of 16. When the
// schema is used as a frame header, this is the baseOffset handed to
// ComputeLayout. There is no hand-written offset constant anywhere else.
//
// Returns:
//   - uint32: the padded schema size
func (s Schema) Size() uint32 {
	return s.size
}

// Offset returns the resolved byte offset of the named field.
//
// Parameters:
//   - name: the field name to look up
//
// Returns:
//   - uint32: the byte offset, or 0 if not present
//   - bool: true if the field exists
func (s Schema) Offset(name string) (uint32, bool) {
	off, ok := s.offsets[name]
	return off, ok
}

// WordOffset returns the resolved offset of the named field in 4-byte words.
// Panics if the field does not exist: schema fields are compile-time known and
// a miss is a programming error, not a runtime condition.
//
// Parameters:
//   - name: the field name to look up
//
// Returns:
//   - int: the word offset (byte offset / 4)
func (s Schema) WordOffset(name string) int {
	off, ok := s.offsets[name]
	if !ok {
		panic(fmt.Sprintf("uniform: schema %q has no field %q", s.name, name))
	}
	return int(off / 4)
}

// WriteField writes up to four words of value data at the named field's word
// offset. The number of words written is the field type's meaningful width;
// extra elements of value are ignored.
//
// Parameters:
//   - dst: the word-addressed destination buffer
//   - name: the field name to write
//   - value: the component values, in field order
//
// Returns:
//   - error: ErrMissingParam if the field is unknown, ErrBufferTooSmall if dst cannot hold it
func (s Schema) WriteField(dst []float32, name string, value ...float32) error {
	off, ok := s.offsets[name]
	if !ok {
		return fmt.Errorf("%w: schema field %q", ErrMissingParam, name)
	}
	var width int
	for _, f := range s.fields {
		if f.Name == name {
			width = f.Type.wordWidth()
			break
		}
	}
	word := int(off / 4)
	if word+width > len(dst) {
		return fmt.Errorf("%w: field %q at words %d-%d, len %d", ErrBufferTooSmall, name, word, word+width-1, len(dst))
	}
	for i := 0; i < width && i < len(value); i++ {
		dst[word+i] = value[i]
	}
	return nil
}

// WGSL emits the schema alone as a WGSL struct, with explicit pad members
// inserted wherever the resolver inserted padding, so the WGSL compiler
// reproduces the resolved offsets exactly.
//
// Returns:
//   - string: the WGSL struct source
func (s Schema) WGSL() string {
	src, _ := s.BlockWGSL(nil)
	return src
}

// BlockWGSL emits the schema followed by the given parameter descriptors as a
// single WGSL struct. Parameter members are emitted in list order at the
// offsets ComputeLayout assigns when called with baseOffset = s.Size(), with
// explicit `_padN: f32` members filling every alignment gap. The emitted
// struct is the only uniform declaration presets see; the host writes through
// the schema and layout, the shader reads through this text, and both derive
// from the same scan.
//
// Parameters:
//   - params: the dynamic parameter descriptors to append, may be nil
//
// Returns:
//   - string: the WGSL struct source
//   - error: an error if a parameter id is not a usable WGSL identifier or duplicates a field
func (s Schema) BlockWGSL(params []ParamDescriptor) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", s.name)

	pads := 0
	var cursor uint32

	emitPad := func(target uint32) {
		for cursor < target {
			fmt.Fprintf(&b, "    _pad%d: f32,\n", pads)
			pads++
			cursor += 4
		}
	}

	for _, f := range s.fields {
		emitPad(cursor + padTo(cursor, f.Type.alignment()))
		fmt.Fprintf(&b, "    %s: %s,\n", f.Name, f.Type.wgsl())
		cursor += uint32(f.Type.wordWidth()) * 4
		if f.Type == FieldVec3 {
			emitPad(cursor + 4)
		}
	}
	emitPad(s.size)

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if !isWGSLIdent(p.ID) {
			return "", fmt.Errorf("parameter id %q is not a valid WGSL identifier", p.ID)
		}
		if _, clash := s.offsets[p.ID]; clash || seen[p.ID] {
			return "", fmt.Errorf("%w: %q", ErrDuplicateParam, p.ID)
		}
		seen[p.ID] = true

		switch p.Kind {
		case ParamFloat:
			emitPad(cursor + padTo(cursor, 4))
			fmt.Fprintf(&b, "    %s: f32,\n", p.ID)
			cursor += 4
		case ParamVec3:
			emitPad(cursor + padTo(cursor, 16))
			fmt.Fprintf(&b, "    %s: vec3<f32>,\n", p.ID)
			cursor += 12
			emitPad(cursor + 4)
		default:
			return "", fmt.Errorf("%w: %q has kind %d", ErrUnknownKind, p.ID, int(p.Kind))
		}
	}
	emitPad(cursor + padTo(cursor, 16))

	b.WriteString("}\n")
	return b.String(), nil
}

// isWGSLIdent reports whether id is usable as a WGSL struct member name:
// a letter or underscore followed by letters, digits or underscores, and not
// starting with the reserved pad prefix.
func isWGSLIdent(id string) bool {
	if id == "" || strings.HasPrefix(id, "_pad") {
		return false
	}
	for i, r := range id {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Frame header field names. These are the only identifiers shared between the
// session (which writes them) and the presets (which read them); both go
// through FrameSchema so the offsets cannot disagree.
const (
	FieldResolution     = "resolution"
	FieldTime           = "time"
	FieldDeltaTime      = "delta_time"
	FieldCameraPos      = "camera_pos"
	FieldCameraTarget   = "camera_target"
	FieldPointer        = "pointer"
	FieldScrollProgress = "scroll_progress"
	FieldScrollEffect   = "scroll_effect"
	FieldScrollStrength = "scroll_strength"
	FieldScrollSpeed    = "scroll_speed"
	FieldAudioBands     = "audio_bands"
	FieldTexTiling      = "tex_tiling"
	FieldTexOffset      = "tex_offset"
)

// FrameSchema returns the canonical fixed header every preset compiles
// against: resolution, clocks, camera, pointer, scroll state, audio band
// energies and texture transform. Its Size() is the baseOffset for the
// dynamic parameter block.
//
// Returns:
//   - Schema: the canonical frame header schema
func FrameSchema() Schema {
	s, err := NewSchema("FrameUniforms", []Field{
		{Name: FieldResolution, Type: FieldVec2},
		{Name: FieldTime, Type: FieldF32},
		{Name: FieldDeltaTime, Type: FieldF32},
		{Name: FieldCameraPos, Type: FieldVec3},
		{Name: FieldCameraTarget, Type: FieldVec3},
		{Name: FieldPointer, Type: FieldVec2},
		{Name: FieldScrollProgress, Type: FieldF32},
		{Name: FieldScrollEffect, Type: FieldF32},
		{Name: FieldScrollStrength, Type: FieldF32},
		{Name: FieldScrollSpeed, Type: FieldF32},
		{Name: FieldAudioBands, Type: FieldVec4},
		{Name: FieldTexTiling, Type: FieldVec2},
		{Name: FieldTexOffset, Type: FieldVec2},
	})
	if err != nil {
		panic(fmt.Sprintf("uniform: frame schema construction failed: %v", err))
	}
	return s
}
