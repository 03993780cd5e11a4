// Package layout computes the fixed, deliberately simple struct/enum layout
// rule from the type model: enums use an 8-byte discriminant followed by a
// payload sized to the largest variant and padded to an 8-byte boundary.
// This is memory-inefficient by design (see wispc's design notes on enum
// layout) and must not be "improved" with narrower tags.
package layout

import "github.com/wisp-lang/wispc/internal/types"

// discriminantSize is the fixed width, in bytes, of every enum's tag.
const discriminantSize = 8

// alignment is the fixed payload alignment, in bytes.
const alignment = 8

// TypeSize returns the size in bytes of a value of type id: scalars by their
// width, everything else (references, aggregates, type parameters) by a
// single pointer-sized slot.
func TypeSize(in *types.Interner, id types.TypeID) int {
	t := in.Lookup(id)
	switch t.Kind {
	case types.KindI8, types.KindU8:
		return 1
	case types.KindI16, types.KindU16:
		return 2
	case types.KindI32, types.KindU32, types.KindF32:
		return 4
	case types.KindI64, types.KindU64, types.KindF64:
		return 8
	case types.KindBool:
		return 1
	case types.KindChar:
		return 4
	case types.KindUnit:
		return 0
	default:
		// Str, Ref, Struct, Enum, TypeParam: passed by a single 8-byte slot
		// in this design (fat pointers are out of scope for the core).
		return 8
	}
}

// Field describes one struct field's position within its struct.
type Field struct {
	Name   string
	Type   types.TypeID
	Offset int
}

// Struct is the layout record for a struct type: an ordered field list,
// positional and stable across the compile (§4.1).
type Struct struct {
	Name   string
	Fields []Field
}

// NewStruct computes a Struct layout from ordered (name, type) pairs,
// assigning each field's byte offset by summing preceding field sizes.
func NewStruct(in *types.Interner, name string, fields []struct {
	Name string
	Type types.TypeID
}) Struct {
	out := Struct{Name: name, Fields: make([]Field, 0, len(fields))}
	offset := 0
	for _, f := range fields {
		out.Fields = append(out.Fields, Field{Name: f.Name, Type: f.Type, Offset: offset})
		offset += TypeSize(in, f.Type)
	}
	return out
}

// Variant is one enum variant's declared payload field types.
type Variant struct {
	Name   string
	Fields []types.TypeID
}

// Enum is the layout record for an enum type.
type Enum struct {
	Name     string
	Variants []Variant
}

// DiscriminantSize is the fixed width of the enum's tag.
func (Enum) DiscriminantSize() int {
	return discriminantSize
}

// MaxPayloadSize returns the size, in bytes, of the largest variant's
// concatenated fields, unpadded.
func (e Enum) MaxPayloadSize(in *types.Interner) int {
	max := 0
	for _, v := range e.Variants {
		size := 0
		for _, f := range v.Fields {
			size += TypeSize(in, f)
		}
		if size > max {
			max = size
		}
	}
	return max
}

// PayloadOffset is where the payload begins relative to the start of the
// enum's representation; it equals the discriminant size.
func (Enum) PayloadOffset() int {
	return discriminantSize
}

// TotalSize is DiscriminantSize() + the payload, padded up to alignment.
func (e Enum) TotalSize(in *types.Interner) int {
	payload := e.MaxPayloadSize(in)
	padded := ((payload + alignment - 1) / alignment) * alignment
	return discriminantSize + padded
}
