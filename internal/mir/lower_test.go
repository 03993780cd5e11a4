package mir_test

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// TestLowerProgramSimpleFunction checks the fixed local layout (§3: local 0
// is the return slot, parameters follow in order) and that a tail
// expression becomes the function's return value.
func TestLowerProgramSimpleFunction(t *testing.T) {
	b, fn := buildFunc("add", []string{"a", "b"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		i32 := b.Types().Builtins.I32
		a := hir.Var(params[0], "a", i32, sp())
		c := hir.Var(params[1], "b", i32, sp())
		sum := hir.Binary(hir.BinAdd, a, c, i32, sp())
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(sum)}}
	})
	fn.ReturnType = b.Types().Builtins.I32

	prog := mir.LowerProgram(b.Program())
	if len(prog.Funcs) != 1 {
		t.Fatalf("expected 1 lowered function, got %d", len(prog.Funcs))
	}
	f := prog.Funcs[0]

	if f.ParamCount != 2 {
		t.Fatalf("expected ParamCount 2, got %d", f.ParamCount)
	}
	if len(f.Locals) < 3 {
		t.Fatalf("expected at least 3 locals (return slot + 2 params), got %d", len(f.Locals))
	}
	if f.Locals[0].IsArg {
		t.Fatalf("local 0 (the return slot) must not be flagged IsArg")
	}
	if !f.Locals[1].IsArg || !f.Locals[2].IsArg {
		t.Fatalf("locals 1 and 2 must be flagged IsArg")
	}

	entry := f.Block(f.Entry)
	if entry == nil {
		t.Fatalf("entry block %d not found", f.Entry)
	}
	if entry.Term.Kind != mir.TermReturn {
		t.Fatalf("expected entry block to end in a return, got %s", entry.Term.Kind)
	}
	if !entry.Term.Return.HasValue {
		t.Fatalf("expected the tail expression to produce the return value")
	}

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

// TestLowerProgramEmptyBodyReturnsVoid checks a function with no body
// statements still terminates with a valueless return.
func TestLowerProgramEmptyBodyReturnsVoid(t *testing.T) {
	b, fn := buildFunc("noop", nil, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		return &hir.Block{Stmts: nil}
	})
	fn.ReturnType = b.Types().Builtins.Unit

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]
	entry := f.Block(f.Entry)
	if entry.Term.Kind != mir.TermReturn {
		t.Fatalf("expected a return terminator, got %s", entry.Term.Kind)
	}
	if entry.Term.Return.HasValue {
		t.Fatalf("an empty body must return without a value")
	}
}

// TestOperandForSelectsCopyOrMoveByType exercises the single authority
// (types.Interner.IsCopy) the lowerer defers to for the copy/move tag.
func TestOperandForSelectsCopyOrMoveByType(t *testing.T) {
	b, fn := buildFunc("pick", []string{"a"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		i32 := b.Types().Builtins.I32
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(hir.Var(params[0], "a", i32, sp()))}}
	})
	fn.ReturnType = b.Types().Builtins.I32

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]
	entry := f.Block(f.Entry)
	if entry.Term.Kind != mir.TermReturn || !entry.Term.Return.HasValue {
		t.Fatalf("expected a value-carrying return")
	}
	op := entry.Term.Return.Value
	if op.Kind != mir.OperandCopy {
		t.Fatalf("i32 is a Copy type: expected OperandCopy, got %v", op.Kind)
	}
}
