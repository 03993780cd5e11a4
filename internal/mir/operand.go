package mir

import (
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// OperandKind distinguishes the three leaf-level value forms.
type OperandKind uint8

const (
	OperandCopy OperandKind = iota
	OperandMove
	OperandConstant
)

// Operand is a leaf-level value: a copy of a place, a move of a place, or a
// constant. Lowering is the single authority that decides Copy vs Move for
// a given place, based on the place's type's Copy capability
// (types.Interner.IsCopy); the checker only obeys the tag it finds here.
type Operand struct {
	Kind  OperandKind
	Type  types.TypeID
	Place Place
	Const Const
}

// ConstKind distinguishes constant forms.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
	ConstStr
	ConstUnit
	ConstFuncRef
	ConstExternStatic
	ConstGenericFuncRef
	ConstTraitMethod
)

// Const is a MIR constant operand payload.
type Const struct {
	Kind ConstKind
	Type types.TypeID

	IntValue   int64
	FloatValue float64
	BoolValue  bool
	StrValue   string

	// Def+Name identify a function pointer (ConstFuncRef), an external
	// static (ConstExternStatic), or an unresolved trait method reference
	// (ConstTraitMethod, resolved later by codegen).
	Def  symbols.DefId
	Name string

	// TypeArgs is only set for ConstGenericFuncRef: the concrete type
	// arguments of the monomorphized instantiation.
	TypeArgs []types.TypeID
}

func CopyOf(place Place, ty types.TypeID) Operand {
	return Operand{Kind: OperandCopy, Type: ty, Place: place}
}

func MoveOf(place Place, ty types.TypeID) Operand {
	return Operand{Kind: OperandMove, Type: ty, Place: place}
}

func ConstOperand(c Const) Operand {
	return Operand{Kind: OperandConstant, Type: c.Type, Const: c}
}
