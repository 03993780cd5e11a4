package mir

import (
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// RValueKind enumerates the right-hand-side forms an Assign statement may
// produce.
type RValueKind uint8

const (
	RValueUse RValueKind = iota
	RValueRef
	RValueBinaryOp
	RValueUnaryOp
	RValueAggregate
	RValueDiscriminant
	RValueCast
)

// RValue is the right-hand side of an Assign statement. Its sub-parts are
// always operands, never nested expressions: lowering materializes any
// non-trivial sub-expression into a fresh local first.
type RValue struct {
	Kind RValueKind

	Use          Operand
	Ref          RefRValue
	BinaryOp     BinaryOpRValue
	UnaryOp      UnaryOpRValue
	Aggregate    AggregateRValue
	Discriminant Place
	Cast         CastRValue
}

// RefRValue produces a value of type Ref{IsMut, T} where T is Place's type.
type RefRValue struct {
	IsMut bool
	Place Place
}

type BinaryOpRValue struct {
	Op    hir.BinaryOp
	Left  Operand
	Right Operand
}

type UnaryOpRValue struct {
	Op      hir.UnaryOp
	Operand Operand
}

// AggregateKind enumerates the ways Aggregate constructs a composite value.
type AggregateKind uint8

const (
	AggregateTuple AggregateKind = iota
	AggregateArray
	AggregateStruct
	AggregateEnum
)

// AggregateRValue builds a tuple, array, struct, or enum value from a
// positional list of field operands. For AggregateEnum the operand count
// must equal the referenced variant's declared field count (§3 invariant 7).
type AggregateRValue struct {
	Kind     AggregateKind
	Operands []Operand

	StructDef symbols.DefId

	EnumDef    symbols.DefId
	VariantIdx int
	VariantDef symbols.DefId
}

// CastRValue reinterprets Operand's value as TargetType.
type CastRValue struct {
	Operand    Operand
	TargetType types.TypeID
}

func UseRValue(op Operand) RValue {
	return RValue{Kind: RValueUse, Use: op}
}

func RefOf(isMut bool, place Place) RValue {
	return RValue{Kind: RValueRef, Ref: RefRValue{IsMut: isMut, Place: place}}
}

func BinaryOpOf(op hir.BinaryOp, left, right Operand) RValue {
	return RValue{Kind: RValueBinaryOp, BinaryOp: BinaryOpRValue{Op: op, Left: left, Right: right}}
}

func UnaryOpOf(op hir.UnaryOp, operand Operand) RValue {
	return RValue{Kind: RValueUnaryOp, UnaryOp: UnaryOpRValue{Op: op, Operand: operand}}
}

func DiscriminantOf(place Place) RValue {
	return RValue{Kind: RValueDiscriminant, Discriminant: place}
}

func CastOf(operand Operand, target types.TypeID) RValue {
	return RValue{Kind: RValueCast, Cast: CastRValue{Operand: operand, TargetType: target}}
}
