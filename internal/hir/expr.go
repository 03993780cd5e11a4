package hir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIntLit
	ExprFloatLit
	ExprBoolLit
	ExprStrLit
	ExprVar
	ExprBinary
	ExprUnary
	ExprCall
	ExprField
	ExprStructLit
	ExprArrayLit
	ExprTupleLit
	ExprIf
	ExprWhile
	ExprFor
	ExprBlock
	ExprAssign
	ExprRef
	ExprDeref
	ExprMatch
	ExprIndex
	ExprCast
)

// Expr is a resolved, typed expression. As in the MIR node shapes it lowers
// into, every variant's fields live inline behind a Kind tag rather than
// behind a Go interface.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Type types.TypeID

	IntLit    *IntLitExpr
	FloatLit  *FloatLitExpr
	BoolLit   *bool
	StrLit    *string
	Var       *VarExpr
	Binary    *BinaryExpr
	Unary     *UnaryExpr
	Call      *CallExpr
	Field     *FieldExpr
	StructLit *StructLitExpr
	ArrayLit  *ArrayLitExpr
	TupleLit  *TupleLitExpr
	If        *IfExpr
	While     *WhileExpr
	For       *ForExpr
	Block     *Block
	Assign    *AssignExpr
	Ref       *RefExpr
	Deref     *DerefExpr
	Match     *MatchExpr
	Index     *IndexExpr
	Cast      *CastExpr
}

type IntLitExpr struct{ Value int64 }
type FloatLitExpr struct{ Value float64 }

// VarExpr references a previously resolved local, parameter, or function by
// DefId; Name is kept only for diagnostics and pretty-printing.
type VarExpr struct {
	DefId symbols.DefId
	Name  string
}

type BinaryOp uint8

const (
	BinInvalid BinaryOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
)

func (op BinaryOp) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinRem:
		return "%"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinAnd:
		return "&&"
	case BinOr:
		return "||"
	case BinBitAnd:
		return "&"
	case BinBitOr:
		return "|"
	case BinBitXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	default:
		return "?"
	}
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

type UnaryOp uint8

const (
	UnInvalid UnaryOp = iota
	UnNeg
	UnNot
	UnBitNot
)

type UnaryExpr struct {
	Op      UnaryOp
	Operand *Expr
}

// CallExpr is a function call. Callee is almost always an ExprVar naming a
// resolved function DefId; it is a full Expr (not a bare DefId) so that
// indirect calls through a function-pointer-typed value still fit the shape.
type CallExpr struct {
	Callee *Expr
	Args   []*Expr
}

// FieldExpr is `target.field`.
type FieldExpr struct {
	Target    *Expr
	FieldName string
	FieldDef  symbols.DefId
}

type StructLitField struct {
	Name  string
	Value *Expr
}

// StructLitExpr is `StructName{ field: value, ... }`.
type StructLitExpr struct {
	StructDef symbols.DefId
	Fields    []StructLitField
}

type ArrayLitExpr struct{ Elements []*Expr }
type TupleLitExpr struct{ Elements []*Expr }

// ElseKind distinguishes a trailing `else { block }` from `else if ...`.
type ElseKind uint8

const (
	ElseNone ElseKind = iota
	ElseBlock
	ElseIf
)

type Else struct {
	Kind  ElseKind
	Block *Block
	If    *Expr // ExprKind == ExprIf
}

type IfExpr struct {
	Cond *Expr
	Then *Block
	Else Else
}

type WhileExpr struct {
	Cond *Expr
	Body *Block
}

// ForExpr is `for binding in iter { body }`. Lowering desugars this using the
// fixed iter_has_next/iter_next intrinsic protocol (SPEC_FULL.md §4.1); HIR
// itself carries no iterator-protocol detail beyond the binding's resolved
// element type, the binding name, and the iterable expression.
type ForExpr struct {
	Binding     symbols.DefId
	BindingName string
	ElemType    types.TypeID
	Iter        *Expr
	Body        *Block
}

type AssignOp uint8

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignRem
	AssignBitAnd
	AssignBitOr
	AssignBitXor
)

// AssignExpr is `target = value` or a compound form like `target += value`.
// Target must lower to a place, never a plain operand (§4.1).
type AssignExpr struct {
	Op     AssignOp
	Target *Expr
	Value  *Expr
}

// RefExpr is `&target` / `&mut target`. Target must lower to a place.
type RefExpr struct {
	IsMut  bool
	Target *Expr
}

// DerefExpr is `*target`; it appends a Deref projection when Target lowers
// to a place, or forces Target to a place first otherwise.
type DerefExpr struct {
	Target *Expr
}

type MatchArm struct {
	Pattern *Pattern
	Guard   *Expr // nil if the arm has no guard
	Body    *Expr
	Span    source.Span
}

type MatchExpr struct {
	Scrutinee *Expr
	Arms      []MatchArm
}

type IndexExpr struct {
	Target *Expr
	Index  *Expr
}

type CastExpr struct {
	Target     *Expr
	TargetType types.TypeID
}
