package mir

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of §3 of the MIR data model
// against a lowered Program: every block has a terminator whose targets
// exist, places and operands name in-range locals, exactly the parameters
// are flagged IsArg, aggregates have the right operand count, and every
// StorageDead follows a StorageLive. It does not check the result type of a
// Ref rvalue or the operand type of a Discriminant rvalue. It never stops
// at the first violation: every problem
// found is collected and returned together via errors.Join.
func Validate(prog *Program) error {
	var errs []error
	for _, f := range prog.Funcs {
		if err := validateFunc(prog, f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(prog *Program, f *Func) error {
	var errs []error

	blockIndex := make(map[BlockID]int, len(f.Blocks))
	for i, b := range f.Blocks {
		if _, dup := blockIndex[b.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate block id %d", b.ID))
		}
		blockIndex[b.ID] = i
	}

	for i := range f.Blocks {
		b := &f.Blocks[i]
		if b.Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: missing terminator", b.ID))
			continue
		}
		for _, target := range b.Term.Successors() {
			if _, ok := blockIndex[target]; !ok {
				errs = append(errs, fmt.Errorf("bb%d: terminator references nonexistent block bb%d", b.ID, target))
			}
		}
	}

	localValid := func(id LocalID) bool {
		idx := int(id)
		return idx >= 0 && idx < len(f.Locals)
	}
	checkPlace := func(where string, p Place) {
		if !localValid(p.Local) {
			errs = append(errs, fmt.Errorf("%s: place references out-of-range local %d", where, p.Local))
		}
		for _, proj := range p.Projs {
			if proj.Kind == ProjIndex && proj.IndexOperand != nil {
				checkOperandPlace(where, *proj.IndexOperand, localValid, &errs)
			}
		}
	}
	checkOperand := func(where string, op Operand) {
		checkOperandPlace(where, op, localValid, &errs)
	}

	// local 0 is the return slot; parameters occupy locals 1..ParamCount
	for i := range f.Locals {
		isParam := i >= 1 && i <= f.ParamCount
		if isParam && !f.Locals[i].IsArg {
			errs = append(errs, fmt.Errorf("local %d: parameter %d is not flagged IsArg", f.Locals[i].ID, i-1))
		}
		if !isParam && f.Locals[i].IsArg {
			errs = append(errs, fmt.Errorf("local %d: non-parameter local flagged IsArg", f.Locals[i].ID))
		}
	}

	for bi := range f.Blocks {
		b := &f.Blocks[bi]
		for si, st := range b.Statements {
			where := fmt.Sprintf("bb%d stmt%d", b.ID, si)
			switch st.Kind {
			case StmtAssign:
				checkPlace(where, st.Assign.Place)
				validateRValue(where, prog, st.Assign.RValue, checkOperand, checkPlace, &errs)
			case StmtStorageLive, StmtStorageDead:
				id := st.StorageLive
				if st.Kind == StmtStorageDead {
					id = st.StorageDead
				}
				if !localValid(id) {
					errs = append(errs, fmt.Errorf("%s: references out-of-range local %d", where, id))
				}
			}
		}
		switch b.Term.Kind {
		case TermSwitchInt:
			checkOperand(fmt.Sprintf("bb%d term", b.ID), b.Term.SwitchInt.Discr)
		case TermReturn:
			if b.Term.Return.HasValue {
				checkOperand(fmt.Sprintf("bb%d term", b.ID), b.Term.Return.Value)
			}
		case TermCall:
			checkOperand(fmt.Sprintf("bb%d term", b.ID), b.Term.Call.Func)
			for _, a := range b.Term.Call.Args {
				checkOperand(fmt.Sprintf("bb%d term", b.ID), a)
			}
			if !localValid(b.Term.Call.Destination) {
				errs = append(errs, fmt.Errorf("bb%d term: call destination out of range", b.ID))
			}
		}
	}

	errs = append(errs, validateStorageBracketing(f)...)

	return errors.Join(errs...)
}

func checkOperandPlace(where string, op Operand, localValid func(LocalID) bool, errs *[]error) {
	if op.Kind == OperandConstant {
		return
	}
	if !localValid(op.Place.Local) {
		*errs = append(*errs, fmt.Errorf("%s: operand references out-of-range local %d", where, op.Place.Local))
	}
}

func validateRValue(where string, prog *Program, rv RValue, checkOperand func(string, Operand), checkPlace func(string, Place), errs *[]error) {
	switch rv.Kind {
	case RValueUse:
		checkOperand(where, rv.Use)
	case RValueRef:
		checkPlace(where, rv.Ref.Place)
	case RValueBinaryOp:
		checkOperand(where, rv.BinaryOp.Left)
		checkOperand(where, rv.BinaryOp.Right)
	case RValueUnaryOp:
		checkOperand(where, rv.UnaryOp.Operand)
	case RValueCast:
		checkOperand(where, rv.Cast.Operand)
	case RValueDiscriminant:
		checkPlace(where, rv.Discriminant)
	case RValueAggregate:
		for _, op := range rv.Aggregate.Operands {
			checkOperand(where, op)
		}
		validateAggregateArity(where, prog, rv.Aggregate, errs)
	}
}

// validateAggregateArity is §3 invariant 7 plus its struct analogue: the
// operand count of a struct aggregate equals its field count, and of an
// enum aggregate equals the referenced variant's field count.
func validateAggregateArity(where string, prog *Program, agg AggregateRValue, errs *[]error) {
	switch agg.Kind {
	case AggregateStruct:
		sl, ok := prog.StructLayoutFor(agg.StructDef)
		if !ok {
			return
		}
		if len(agg.Operands) != len(sl.Layout.Fields) {
			*errs = append(*errs, fmt.Errorf("%s: struct %s expects %d fields, got %d operands",
				where, sl.Name, len(sl.Layout.Fields), len(agg.Operands)))
		}
	case AggregateEnum:
		el, ok := prog.EnumLayoutFor(agg.EnumDef)
		if !ok || agg.VariantIdx < 0 || agg.VariantIdx >= len(el.Layout.Variants) {
			return
		}
		want := len(el.Layout.Variants[agg.VariantIdx].Fields)
		if len(agg.Operands) != want {
			*errs = append(*errs, fmt.Errorf("%s: enum %s variant %d expects %d fields, got %d operands",
				where, el.Name, agg.VariantIdx, want, len(agg.Operands)))
		}
	}
}

// validateStorageBracketing is §3 invariant 4: every StorageDead on any
// path from entry has an earlier StorageLive with no intervening
// StorageDead. This walks the CFG depth-first; a block already visited is
// not re-explored, whatever live-set reaches it later, which is sound for the
// straight-line, non-cyclic-within-a-block shape lowering produces but
// (unlike the borrow checker's fixed point) does not re-converge a full
// may/must lattice across back-edges — adequate for a construction-time
// sanity check, not a soundness proof.
func validateStorageBracketing(f *Func) []error {
	var errs []error
	visited := make(map[BlockID]bool)
	var walk func(id BlockID, live map[LocalID]bool)
	walk = func(id BlockID, live map[LocalID]bool) {
		if visited[id] {
			return
		}
		visited[id] = true
		b := f.Block(id)
		if b == nil {
			return
		}
		cur := make(map[LocalID]bool, len(live))
		for k, v := range live {
			cur[k] = v
		}
		for si, st := range b.Statements {
			switch st.Kind {
			case StmtStorageLive:
				cur[st.StorageLive] = true
			case StmtStorageDead:
				if !cur[st.StorageDead] {
					errs = append(errs, fmt.Errorf("bb%d stmt%d: StorageDead(%d) with no preceding StorageLive on this path",
						id, si, st.StorageDead))
				}
				cur[st.StorageDead] = false
			}
		}
		for _, succ := range b.Term.Successors() {
			walk(succ, cur)
		}
	}
	walk(f.Entry, map[LocalID]bool{})
	return errs
}
