package mir

import (
	"fmt"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/types"
)

// blockResult is the value a lowered block or block-shaped expression
// produces: either "no value" (an empty tail, i.e. Unit) or a concrete
// operand.
type blockResult struct {
	valid bool
	op    Operand
}

// lowerBlockInto lowers every statement of b in order, then if it has a
// tail expression, writes the tail's value into dst and returns it;
// otherwise returns an invalid (Unit) result. Locals introduced by `let`
// bindings are bracketed with StorageLive/StorageDead.
func (l *funcLowerer) lowerBlockInto(b *hir.Block, dst Place) blockResult {
	var tailOp Operand
	haveTail := false
	liveLocals := make([]LocalID, 0, len(b.Stmts))

	for i := range b.Stmts {
		if l.curBlock().Terminated() {
			break
		}
		st := &b.Stmts[i]
		switch st.Kind {
		case hir.StmtLet:
			id := l.addLocal(st.Let.DefId, st.Let.Name, st.Let.Type, false, st.Span)
			l.emit(StorageLive(id))
			liveLocals = append(liveLocals, id)
			if st.Let.Init != nil {
				op := l.lowerExpr(st.Let.Init)
				l.emit(Assign(Place{Local: id}, UseRValue(op)))
			}
		case hir.StmtExpr:
			isLast := i == len(b.Stmts)-1
			if isLast {
				tailOp = l.lowerExpr(st.Expr)
				haveTail = st.Expr.Type != l.prog.Types.Builtins.Unit
			} else {
				l.lowerExpr(st.Expr)
			}
		default:
			panic(fmt.Errorf("mir: unknown statement kind %d", st.Kind))
		}
	}

	for i := len(liveLocals) - 1; i >= 0; i-- {
		if !l.curBlock().Terminated() {
			l.emit(StorageDead(liveLocals[i]))
		}
	}

	if haveTail && dst.IsValid() && !l.curBlock().Terminated() {
		l.emit(Assign(dst, UseRValue(tailOp)))
		return blockResult{valid: true, op: l.operandFor(dst, tailOp.Type)}
	}
	return blockResult{}
}

// lowerExpr lowers e to an operand, materializing any non-trivial
// sub-expression into a fresh temporary first so that rvalues only ever
// contain operands (§4.1).
func (l *funcLowerer) lowerExpr(e *hir.Expr) Operand {
	switch e.Kind {
	case hir.ExprIntLit:
		return ConstOperand(Const{Kind: ConstInt, Type: e.Type, IntValue: e.IntLit.Value})
	case hir.ExprFloatLit:
		return ConstOperand(Const{Kind: ConstFloat, Type: e.Type, FloatValue: e.FloatLit.Value})
	case hir.ExprBoolLit:
		return ConstOperand(Const{Kind: ConstBool, Type: e.Type, BoolValue: *e.BoolLit})
	case hir.ExprStrLit:
		return ConstOperand(Const{Kind: ConstStr, Type: e.Type, StrValue: *e.StrLit})

	case hir.ExprVar:
		return l.lowerVar(e)

	case hir.ExprBinary:
		left := l.lowerExpr(e.Binary.Left)
		right := l.lowerExpr(e.Binary.Right)
		tmp := l.newTemp(e.Type, "bin", e.Span)
		l.emit(Assign(Place{Local: tmp}, BinaryOpOf(e.Binary.Op, left, right)))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprUnary:
		operand := l.lowerExpr(e.Unary.Operand)
		tmp := l.newTemp(e.Type, "un", e.Span)
		l.emit(Assign(Place{Local: tmp}, UnaryOpOf(e.Unary.Op, operand)))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprCall:
		return l.lowerCall(e)

	case hir.ExprField:
		place := l.lowerPlace(e)
		return l.operandFor(place, e.Type)

	case hir.ExprIndex:
		place := l.lowerPlace(e)
		return l.operandFor(place, e.Type)

	case hir.ExprDeref:
		place := l.lowerPlace(e)
		return l.operandFor(place, e.Type)

	case hir.ExprStructLit:
		return l.lowerStructLit(e)

	case hir.ExprArrayLit:
		ops := make([]Operand, len(e.ArrayLit.Elements))
		for i, el := range e.ArrayLit.Elements {
			ops[i] = l.lowerExpr(el)
		}
		tmp := l.newTemp(e.Type, "arr", e.Span)
		l.emit(Assign(Place{Local: tmp}, RValue{Kind: RValueAggregate, Aggregate: AggregateRValue{Kind: AggregateArray, Operands: ops}}))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprTupleLit:
		ops := make([]Operand, len(e.TupleLit.Elements))
		for i, el := range e.TupleLit.Elements {
			ops[i] = l.lowerExpr(el)
		}
		tmp := l.newTemp(e.Type, "tup", e.Span)
		l.emit(Assign(Place{Local: tmp}, RValue{Kind: RValueAggregate, Aggregate: AggregateRValue{Kind: AggregateTuple, Operands: ops}}))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprRef:
		target := l.lowerPlace(e.Ref.Target)
		tmp := l.newTemp(e.Type, "ref", e.Span)
		l.emit(Assign(Place{Local: tmp}, RefOf(e.Ref.IsMut, target)))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprCast:
		operand := l.lowerExpr(e.Cast.Target)
		tmp := l.newTemp(e.Type, "cast", e.Span)
		l.emit(Assign(Place{Local: tmp}, CastOf(operand, e.Cast.TargetType)))
		return l.operandFor(Place{Local: tmp}, e.Type)

	case hir.ExprAssign:
		return l.lowerAssign(e)

	case hir.ExprBlock:
		tmp := l.newTemp(e.Type, "blk", e.Span)
		res := l.lowerBlockInto(e.Block, Place{Local: tmp})
		if !res.valid {
			return l.constUnit(e.Type)
		}
		return res.op

	case hir.ExprIf:
		return l.lowerIf(e)

	case hir.ExprWhile:
		l.lowerWhile(e)
		return l.constUnit(e.Type)

	case hir.ExprFor:
		l.lowerFor(e)
		return l.constUnit(e.Type)

	case hir.ExprMatch:
		return l.lowerMatch(e)

	default:
		panic(fmt.Errorf("mir: unknown expr kind %d", e.Kind))
	}
}

func (l *funcLowerer) constUnit(ty types.TypeID) Operand {
	return ConstOperand(Const{Kind: ConstUnit, Type: ty})
}

func (l *funcLowerer) lowerVar(e *hir.Expr) Operand {
	local := l.localFor(e.Var.DefId)
	return l.operandFor(Place{Local: local}, e.Type)
}

func (l *funcLowerer) lowerCall(e *hir.Expr) Operand {
	callee := l.lowerExpr(e.Call.Callee)
	args := make([]Operand, len(e.Call.Args))
	for i, a := range e.Call.Args {
		args[i] = l.lowerExpr(a)
	}
	dst := l.newTemp(e.Type, "call", e.Span)
	cont := l.newBlock()
	l.setTerm(Terminator{Kind: TermCall, Call: CallTerm{
		Func:        callee,
		Args:        args,
		Destination: dst,
		Target:      cont,
	}})
	l.startBlock(cont)
	return l.operandFor(Place{Local: dst}, e.Type)
}

func (l *funcLowerer) lowerStructLit(e *hir.Expr) Operand {
	ops := make([]Operand, len(e.StructLit.Fields))
	for i, f := range e.StructLit.Fields {
		ops[i] = l.lowerExpr(f.Value)
	}
	tmp := l.newTemp(e.Type, "struct", e.Span)
	l.emit(Assign(Place{Local: tmp}, RValue{
		Kind: RValueAggregate,
		Aggregate: AggregateRValue{
			Kind:      AggregateStruct,
			Operands:  ops,
			StructDef: e.StructLit.StructDef,
		},
	}))
	return l.operandFor(Place{Local: tmp}, e.Type)
}
