package types

import "github.com/wisp-lang/wispc/internal/symbols"

// TypeID is a dense handle into an Interner. It is what MIR locals, places,
// and constants actually carry; the full Type is only materialized on lookup.
type TypeID uint32

// NoTypeID is never a valid type.
const NoTypeID TypeID = 0

// Kind tags the closed set of type shapes this compiler core understands.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindBool
	KindChar
	KindStr
	KindUnit
	KindRef
	KindStruct
	KindEnum
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindUnit:
		return "unit"
	case KindRef:
		return "ref"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindTypeParam:
		return "type_param"
	default:
		return "invalid"
	}
}

// Type is the closed sum from the type model. It is encoded as a kind tag
// plus all variant fields inline, rather than as an interface: only Kind
// decides which fields are meaningful, exactly like the MIR node shapes it
// feeds into.
type Type struct {
	Kind Kind

	// KindRef
	RefIsMut bool
	RefInner TypeID

	// KindStruct, KindEnum
	Def symbols.DefId

	// KindTypeParam
	ParamDef  symbols.DefId
	ParamName string
}

// Ref builds a KindRef type value (not yet interned).
func Ref(isMut bool, inner TypeID) Type {
	return Type{Kind: KindRef, RefIsMut: isMut, RefInner: inner}
}

// Struct builds a KindStruct type value (not yet interned).
func Struct(def symbols.DefId) Type {
	return Type{Kind: KindStruct, Def: def}
}

// Enum builds a KindEnum type value (not yet interned).
func Enum(def symbols.DefId) Type {
	return Type{Kind: KindEnum, Def: def}
}

// TypeParam builds a KindTypeParam type value (not yet interned).
func TypeParam(def symbols.DefId, name string) Type {
	return Type{Kind: KindTypeParam, ParamDef: def, ParamName: name}
}

// Scalar returns the fixed bit width of a scalar kind, or 0 if k is not scalar.
func (k Kind) Scalar() int {
	switch k {
	case KindI8, KindU8:
		return 8
	case KindI16, KindU16:
		return 16
	case KindI32, KindU32, KindF32:
		return 32
	case KindI64, KindU64, KindF64:
		return 64
	default:
		return 0
	}
}

func (k Kind) IsInt() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64, KindU8, KindU16, KindU32, KindU64:
		return true
	default:
		return false
	}
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	default:
		return false
	}
}

func (k Kind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}
