package mir

import (
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// lowerMatch lowers a match expression to a sequential chain of test
// blocks: each arm's pattern compiles to a condition (always-true for
// wildcard/binding, a Discriminant comparison for a variant, an equality
// check for a literal), guarded further by an optional guard expression.
// The scrutinee is lowered to a place once, up front (§4.1).
func (l *funcLowerer) lowerMatch(e *hir.Expr) Operand {
	hasResult := l.hasResultType(e.Type)
	dst := Place{Local: NoLocalID}
	if hasResult {
		dst = Place{Local: l.newTemp(e.Type, "match", e.Span)}
	}

	scrutPlace := l.lowerPlace(e.Match.Scrutinee)
	scrutTy := e.Match.Scrutinee.Type
	joinBB := l.newBlock()

	for i := range e.Match.Arms {
		arm := &e.Match.Arms[i]
		bodyBB := l.newBlock()
		nextBB := l.newBlock()

		l.testPattern(arm.Pattern, scrutPlace, scrutTy, bodyBB, nextBB)

		l.startBlock(bodyBB)
		l.bindPattern(arm.Pattern, scrutPlace, scrutTy)

		if arm.Guard != nil {
			guardCond := l.lowerExpr(arm.Guard)
			guardBodyBB := l.newBlock()
			l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
				Discr:     guardCond,
				Targets:   []SwitchIntCase{{Value: 0, Target: nextBB}},
				Otherwise: guardBodyBB,
			}})
			l.startBlock(guardBodyBB)
		}

		bodyOp := l.lowerExpr(arm.Body)
		if hasResult && !l.curBlock().Terminated() {
			l.emit(Assign(dst, UseRValue(bodyOp)))
		}
		if !l.curBlock().Terminated() {
			l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: joinBB}})
		}

		l.startBlock(nextBB)
	}

	// A proved-total match never falls through every arm; an external type
	// checker is responsible for that proof (§4.1).
	if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermUnreachable})
	}

	l.startBlock(joinBB)
	if !hasResult {
		return l.constUnit(e.Type)
	}
	return l.operandFor(dst, e.Type)
}

// testPattern emits the condition test for pattern into the current block,
// terminating it with a branch to matchBB or failBB.
func (l *funcLowerer) testPattern(pattern *hir.Pattern, scrutPlace Place, scrutTy types.TypeID, matchBB, failBB BlockID) {
	switch pattern.Kind {
	case hir.PatternWildcard, hir.PatternBinding:
		l.setTerm(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: matchBB}})

	case hir.PatternLiteral:
		litOp := l.lowerExpr(pattern.Literal)
		scrutOp := l.operandFor(scrutPlace, scrutTy)
		cond := l.newTemp(l.prog.Types.Builtins.Bool, "patcond", pattern.Span)
		l.emit(Assign(Place{Local: cond}, BinaryOpOf(hir.BinEq, scrutOp, litOp)))
		l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
			Discr:     l.operandFor(Place{Local: cond}, l.prog.Types.Builtins.Bool),
			Targets:   []SwitchIntCase{{Value: 0, Target: failBB}},
			Otherwise: matchBB,
		}})

	case hir.PatternVariant:
		idx := l.variantIndex(pattern.Variant.EnumDef, pattern.Variant.VariantDef)
		tag := l.newTemp(l.prog.Types.Builtins.I64, "tag", pattern.Span)
		l.emit(Assign(Place{Local: tag}, DiscriminantOf(scrutPlace)))
		cond := l.newTemp(l.prog.Types.Builtins.Bool, "patcond", pattern.Span)
		l.emit(Assign(Place{Local: cond}, BinaryOpOf(hir.BinEq,
			l.operandFor(Place{Local: tag}, l.prog.Types.Builtins.I64),
			ConstOperand(Const{Kind: ConstInt, Type: l.prog.Types.Builtins.I64, IntValue: int64(idx)}),
		)))
		l.setTerm(Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{
			Discr:     l.operandFor(Place{Local: cond}, l.prog.Types.Builtins.Bool),
			Targets:   []SwitchIntCase{{Value: 0, Target: failBB}},
			Otherwise: matchBB,
		}})
	}
}

// bindPattern, run inside the matched body block, binds any names the
// pattern introduces. Variant field patterns are bound one projection deep
// (§9: deeper nested partial moves are an open area).
func (l *funcLowerer) bindPattern(pattern *hir.Pattern, scrutPlace Place, scrutTy types.TypeID) {
	switch pattern.Kind {
	case hir.PatternBinding:
		op := l.operandFor(scrutPlace, scrutTy)
		id := l.addLocal(pattern.Binding.DefId, pattern.Binding.Name, scrutTy, false, pattern.Span)
		l.emit(Assign(Place{Local: id}, UseRValue(op)))

	case hir.PatternVariant:
		fieldTypes := l.variantFieldTypes(pattern.Variant.EnumDef, pattern.Variant.VariantDef)
		for i, sub := range pattern.Variant.Fields {
			if sub.Kind != hir.PatternBinding {
				continue
			}
			fieldPlace := scrutPlace.WithField(i, sub.Binding.Name)
			var fieldTy types.TypeID
			if i < len(fieldTypes) {
				fieldTy = fieldTypes[i]
			}
			op := l.operandFor(fieldPlace, fieldTy)
			id := l.addLocal(sub.Binding.DefId, sub.Binding.Name, fieldTy, false, sub.Span)
			l.emit(Assign(Place{Local: id}, UseRValue(op)))
		}

	case hir.PatternWildcard, hir.PatternLiteral:
	}
}

func (l *funcLowerer) enumDefOf(enumDef symbols.DefId) *hir.EnumDef {
	for _, ed := range l.prog.Enums {
		if ed.DefId == enumDef {
			return ed
		}
	}
	return nil
}

func (l *funcLowerer) variantIndex(enumDef, variantDef symbols.DefId) int {
	ed := l.enumDefOf(enumDef)
	if ed == nil {
		return 0
	}
	for i, v := range ed.Variants {
		if v.DefId == variantDef {
			return i
		}
	}
	return 0
}

func (l *funcLowerer) variantFieldTypes(enumDef, variantDef symbols.DefId) []types.TypeID {
	ed := l.enumDefOf(enumDef)
	if ed == nil {
		return nil
	}
	for _, v := range ed.Variants {
		if v.DefId == variantDef {
			return v.Fields
		}
	}
	return nil
}
