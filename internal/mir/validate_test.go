package mir_test

import (
	"strings"
	"testing"

	"github.com/wisp-lang/wispc/internal/layout"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

func emptyProgram() (*mir.Program, *types.Interner) {
	defs := symbols.NewTable()
	tys := types.NewInterner()
	return mir.NewProgram(defs, tys), tys
}

// TestValidateMissingTerminator checks §3 invariant 1: every block must end
// in exactly one terminator.
func TestValidateMissingTerminator(t *testing.T) {
	prog, _ := emptyProgram()
	f := &mir.Func{
		Name:   "bad",
		Locals: []mir.Local{{ID: 0}},
		Blocks: []mir.Block{{ID: 0}},
		Entry:  0,
	}
	prog.AddFunc(f)

	err := mir.Validate(prog)
	if err == nil {
		t.Fatalf("expected a validation error for a block with no terminator")
	}
	if !strings.Contains(err.Error(), "missing terminator") {
		t.Fatalf("expected a missing-terminator error, got: %v", err)
	}
}

// TestValidateDanglingBlockReference checks a terminator cannot reference a
// block id that does not exist in the function.
func TestValidateDanglingBlockReference(t *testing.T) {
	prog, _ := emptyProgram()
	f := &mir.Func{
		Name:   "bad",
		Locals: []mir.Local{{ID: 0}},
		Blocks: []mir.Block{{ID: 0, Term: mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: 7}}}},
		Entry:  0,
	}
	prog.AddFunc(f)

	err := mir.Validate(prog)
	if err == nil || !strings.Contains(err.Error(), "nonexistent block") {
		t.Fatalf("expected a nonexistent-block error, got: %v", err)
	}
}

// TestValidateOutOfRangeLocal checks an operand/place referencing a local
// outside the function's local table is rejected.
func TestValidateOutOfRangeLocal(t *testing.T) {
	prog, _ := emptyProgram()
	f := &mir.Func{
		Name:   "bad",
		Locals: []mir.Local{{ID: 0}},
		Blocks: []mir.Block{{
			ID: 0,
			Statements: []mir.Statement{
				mir.Assign(mir.Place{Local: 99}, mir.UseRValue(mir.ConstOperand(mir.Const{Kind: mir.ConstInt}))),
			},
			Term: mir.Terminator{Kind: mir.TermReturn},
		}},
		Entry: 0,
	}
	prog.AddFunc(f)

	err := mir.Validate(prog)
	if err == nil || !strings.Contains(err.Error(), "out-of-range local") {
		t.Fatalf("expected an out-of-range-local error, got: %v", err)
	}
}

// TestValidateStorageDeadWithoutLive checks §3 invariant 4: a StorageDead
// with no preceding StorageLive on its path is rejected.
func TestValidateStorageDeadWithoutLive(t *testing.T) {
	prog, _ := emptyProgram()
	f := &mir.Func{
		Name:   "bad",
		Locals: []mir.Local{{ID: 0}, {ID: 1}},
		Blocks: []mir.Block{{
			ID:         0,
			Statements: []mir.Statement{mir.StorageDead(1)},
			Term:       mir.Terminator{Kind: mir.TermReturn},
		}},
		Entry: 0,
	}
	prog.AddFunc(f)

	err := mir.Validate(prog)
	if err == nil || !strings.Contains(err.Error(), "no preceding StorageLive") {
		t.Fatalf("expected a storage-bracketing error, got: %v", err)
	}
}

// TestValidateAggregateArityMismatch checks §8 invariant: a struct
// aggregate's operand count must equal its declared field count.
func TestValidateAggregateArityMismatch(t *testing.T) {
	prog, tys := emptyProgram()
	defs := prog.Defs
	structDef := defs.Declare("Point", symbols.DefStruct, false)

	fieldSpecs := []struct {
		Name string
		Type types.TypeID
	}{
		{Name: "x", Type: tys.Builtins.I32},
		{Name: "y", Type: tys.Builtins.I32},
	}
	prog.Structs = append(prog.Structs, mir.StructLayout{
		DefId:  structDef,
		Name:   "Point",
		Layout: layout.NewStruct(tys, "Point", fieldSpecs),
	})

	f := &mir.Func{
		Name:   "bad",
		Locals: []mir.Local{{ID: 0}},
		Blocks: []mir.Block{{
			ID: 0,
			Statements: []mir.Statement{
				mir.Assign(mir.Place{Local: 0}, mir.RValue{
					Kind: mir.RValueAggregate,
					Aggregate: mir.AggregateRValue{
						Kind:      mir.AggregateStruct,
						StructDef: structDef,
						Operands: []mir.Operand{
							mir.ConstOperand(mir.Const{Kind: mir.ConstInt}),
							mir.ConstOperand(mir.Const{Kind: mir.ConstInt}),
							mir.ConstOperand(mir.Const{Kind: mir.ConstInt}),
						},
					},
				}),
			},
			Term: mir.Terminator{Kind: mir.TermReturn},
		}},
		Entry: 0,
	}
	prog.AddFunc(f)

	err := mir.Validate(prog)
	if err == nil || !strings.Contains(err.Error(), "expects") {
		t.Fatalf("expected a field-count mismatch error, got: %v", err)
	}
}

func TestValidateValidProgramHasNoErrors(t *testing.T) {
	prog, _ := emptyProgram()
	f := &mir.Func{
		Name:   "ok",
		Locals: []mir.Local{{ID: 0}, {ID: 1}},
		Blocks: []mir.Block{{
			ID: 0,
			Statements: []mir.Statement{
				mir.StorageLive(1),
				mir.Assign(mir.Place{Local: 1}, mir.UseRValue(mir.ConstOperand(mir.Const{Kind: mir.ConstInt, IntValue: 1}))),
				mir.StorageDead(1),
			},
			Term: mir.Terminator{Kind: mir.TermReturn},
		}},
		Entry: 0,
	}
	prog.AddFunc(f)

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("expected no validation error, got: %v", err)
	}
}
