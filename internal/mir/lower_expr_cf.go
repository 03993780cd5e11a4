package mir

import (
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/types"
)

func (l *funcLowerer) hasResultType(ty types.TypeID) bool {
	return ty != types.NoTypeID && ty != l.prog.Types.Builtins.Unit
}

// lowerIf implements the §4.1 if-lowering exactly: the condition is
// evaluated into a temporary and the current block ends with
// SwitchInt(discr=c, targets=[(0, else_bb)], otherwise=then_bb).
func (l *funcLowerer) lowerIf(e *hir.Expr) Operand {
	hasResult := l.hasResultType(e.Type)
	dst := Place{Local: NoLocalID}
	if hasResult {
		dst = Place{Local: l.newTemp(e.Type, "if", e.Span)}
	}

	cond := l.lowerExpr(e.If.Cond)
	thenBB := l.newBlock()
	elseBB := l.newBlock()
	joinBB := l.newBlock()

	l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
		Discr:     cond,
		Targets:   []SwitchIntCase{{Value: 0, Target: elseBB}},
		Otherwise: thenBB,
	}})

	l.startBlock(thenBB)
	l.lowerBlockInto(e.If.Then, dst)
	if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBB}})
	}

	l.startBlock(elseBB)
	switch e.If.Else.Kind {
	case hir.ElseBlock:
		l.lowerBlockInto(e.If.Else.Block, dst)
	case hir.ElseIf:
		op := l.lowerExpr(e.If.Else.If)
		if hasResult {
			l.emit(Assign(dst, UseRValue(op)))
		}
	case hir.ElseNone:
	}
	if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBB}})
	}

	l.startBlock(joinBB)
	if !hasResult {
		return l.constUnit(e.Type)
	}
	return l.operandFor(dst, e.Type)
}

// lowerWhile emits a header block that evaluates the condition, a body that
// lowers and gotos back to the header, and an exit block (§4.1).
func (l *funcLowerer) lowerWhile(e *hir.Expr) {
	headerBB := l.newBlock()
	bodyBB := l.newBlock()
	exitBB := l.newBlock()

	l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})

	l.startBlock(headerBB)
	cond := l.lowerExpr(e.While.Cond)
	l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
		Discr:     cond,
		Targets:   []SwitchIntCase{{Value: 0, Target: exitBB}},
		Otherwise: bodyBB,
	}})

	l.startBlock(bodyBB)
	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exitBB, continueTarget: headerBB})
	l.lowerBlockInto(e.While.Body, Place{Local: NoLocalID})
	l.loopStack = l.loopStack[:len(l.loopStack)-1]
	if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})
	}

	l.startBlock(exitBB)
}

// lowerFor desugars `for x in iter { body }` to a while loop over a pair of
// intrinsic calls, `iter_has_next`/`iter_next`, named by convention and
// resolved by the host's standard library contract (§9 open question 2).
// This keeps MIR's Call terminator and Rvalue set exactly as specified
// instead of inventing new iterator-protocol rvalue kinds.
func (l *funcLowerer) lowerFor(e *hir.Expr) {
	iterTy := e.For.Iter.Type
	iterOp := l.lowerExpr(e.For.Iter)
	iterLocal := l.newTemp(iterTy, "iter", e.Span)
	l.emit(Assign(Place{Local: iterLocal}, UseRValue(iterOp)))
	iterPlace := Place{Local: iterLocal}

	headerBB := l.newBlock()
	bodyBB := l.newBlock()
	exitBB := l.newBlock()

	l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})

	l.startBlock(headerBB)
	boolTy := l.prog.Types.Builtins.Bool
	hasNextLocal := l.newTemp(boolTy, "has_next", e.Span)
	afterHasNext := l.newBlock()
	l.setTerm(Terminator{Kind: TermCall, Call: CallTerm{
		Func:        ConstOperand(Const{Kind: ConstFuncRef, Name: "iter_has_next"}),
		Args:        []Operand{l.operandFor(iterPlace, iterTy)},
		Destination: hasNextLocal,
		Target:      afterHasNext,
	}})
	l.startBlock(afterHasNext)
	l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
		Discr:     l.operandFor(Place{Local: hasNextLocal}, boolTy),
		Targets:   []SwitchIntCase{{Value: 0, Target: exitBB}},
		Otherwise: bodyBB,
	}})

	l.startBlock(bodyBB)
	bindingLocal := l.addLocal(e.For.Binding, e.For.BindingName, e.For.ElemType, false, e.Span)
	afterNext := l.newBlock()
	l.setTerm(Terminator{Kind: TermCall, Call: CallTerm{
		Func:        ConstOperand(Const{Kind: ConstFuncRef, Name: "iter_next"}),
		Args:        []Operand{l.operandFor(iterPlace, iterTy)},
		Destination: bindingLocal,
		Target:      afterNext,
	}})
	l.startBlock(afterNext)

	l.loopStack = append(l.loopStack, loopCtx{breakTarget: exitBB, continueTarget: headerBB})
	l.lowerBlockInto(e.For.Body, Place{Local: NoLocalID})
	l.loopStack = l.loopStack[:len(l.loopStack)-1]
	if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: headerBB}})
	}

	l.startBlock(exitBB)
}
