package mir

import "github.com/wisp-lang/wispc/internal/hir"

// lowerAssign lowers `a = b` and compound forms like `a += b` (§4.1): the
// left-hand side always lowers to a place, never an operand; a compound
// assignment emits a BinaryOp rvalue reading the place and assigns the
// result back to it.
func (l *funcLowerer) lowerAssign(e *hir.Expr) Operand {
	target := l.lowerPlace(e.Assign.Target)
	targetTy := e.Assign.Target.Type

	if e.Assign.Op == hir.AssignPlain {
		value := l.lowerExpr(e.Assign.Value)
		l.emit(Assign(target, UseRValue(value)))
		return l.constUnit(l.prog.Types.Builtins.Unit)
	}

	left := l.operandFor(target, targetTy)
	right := l.lowerExpr(e.Assign.Value)
	tmp := l.newTemp(targetTy, "compound", e.Span)
	l.emit(Assign(Place{Local: tmp}, BinaryOpOf(binOpForAssign(e.Assign.Op), left, right)))
	l.emit(Assign(target, UseRValue(l.operandFor(Place{Local: tmp}, targetTy))))
	return l.constUnit(l.prog.Types.Builtins.Unit)
}

func binOpForAssign(op hir.AssignOp) hir.BinaryOp {
	switch op {
	case hir.AssignAdd:
		return hir.BinAdd
	case hir.AssignSub:
		return hir.BinSub
	case hir.AssignMul:
		return hir.BinMul
	case hir.AssignDiv:
		return hir.BinDiv
	case hir.AssignRem:
		return hir.BinRem
	case hir.AssignBitAnd:
		return hir.BinBitAnd
	case hir.AssignBitOr:
		return hir.BinBitOr
	case hir.AssignBitXor:
		return hir.BinBitXor
	default:
		return hir.BinInvalid
	}
}
