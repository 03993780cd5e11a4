package mir_test

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// TestLowerIfMatchesSpecFormula checks the exact SwitchInt shape §4.1
// mandates for if-lowering: targets=[(0, else)], otherwise=then.
func TestLowerIfMatchesSpecFormula(t *testing.T) {
	b, fn := buildFunc("pick", []string{"cond"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		boolTy := b.Types().Builtins.Bool
		i32 := b.Types().Builtins.I32
		cond := hir.Var(params[0], "cond", boolTy, sp())
		then := &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(hir.IntLit(1, i32, sp()))}}
		els := &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(hir.IntLit(0, i32, sp()))}}
		ifExpr := hir.If(cond, then, hir.Else{Kind: hir.ElseBlock, Block: els}, i32, sp())
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(ifExpr)}}
	})
	fn.ReturnType = b.Types().Builtins.I32

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]

	var switches int
	for _, blk := range f.Blocks {
		if blk.Term.Kind != mir.TermSwitchInt {
			continue
		}
		sw := blk.Term.SwitchInt
		if len(sw.Targets) != 1 || sw.Targets[0].Value != 0 {
			t.Fatalf("expected exactly one target for discriminant value 0, got %+v", sw.Targets)
		}
		switches++
	}
	if switches == 0 {
		t.Fatalf("expected at least one SwitchInt terminator from if-lowering")
	}

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

// TestLowerWhileProducesHeaderBodyExit checks the three-block shape §4.1
// describes: a header that tests the condition, a body that loops back, and
// an exit reached when the condition is false.
func TestLowerWhileProducesHeaderBodyExit(t *testing.T) {
	b, fn := buildFunc("loop", []string{"cond"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		boolTy := b.Types().Builtins.Bool
		cond := hir.Var(params[0], "cond", boolTy, sp())
		body := &hir.Block{}
		whileExpr := &hir.Expr{Kind: hir.ExprWhile, Type: b.Types().Builtins.Unit, While: &hir.WhileExpr{Cond: cond, Body: body}}
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(whileExpr)}}
	})
	fn.ReturnType = b.Types().Builtins.Unit

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]

	var switches, backEdges int
	for i, blk := range f.Blocks {
		if blk.Term.Kind == mir.TermSwitchInt {
			switches++
		}
		for _, succ := range blk.Term.Successors() {
			if int(succ) < i {
				backEdges++
			}
		}
	}
	if switches == 0 {
		t.Fatalf("expected a header block testing the loop condition")
	}
	if backEdges == 0 {
		t.Fatalf("expected a back edge from the body to the header, forming the loop")
	}

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

// TestLowerForBindsElementType checks that the loop variable introduced by
// `for x in iter` carries the iterator's element type, not the for
// expression's own (unit) type.
func TestLowerForBindsElementType(t *testing.T) {
	b, fn := buildFunc("walk", []string{"iter"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		i32 := b.Types().Builtins.I32
		elemDef := b.DeclareLocal("x", false)
		iterVar := hir.Var(params[0], "iter", i32, sp())
		forExpr := &hir.Expr{
			Kind: hir.ExprFor,
			Type: b.Types().Builtins.Unit,
			For: &hir.ForExpr{
				Binding:     elemDef,
				BindingName: "x",
				ElemType:    i32,
				Iter:        iterVar,
				Body:        &hir.Block{},
			},
		}
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(forExpr)}}
	})
	fn.ReturnType = b.Types().Builtins.Unit

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]

	i32 := b.Types().Builtins.I32
	var found bool
	for _, l := range f.Locals {
		if l.Name == "x" {
			found = true
			if l.Type != i32 {
				t.Fatalf("loop binding must carry the element type %d, got %d", i32, l.Type)
			}
		}
	}
	if !found {
		t.Fatalf("expected a local named %q for the loop binding", "x")
	}

	var calls int
	for _, blk := range f.Blocks {
		if blk.Term.Kind == mir.TermCall {
			calls++
		}
	}
	if calls != 2 {
		t.Fatalf("expected 2 intrinsic calls (iter_has_next, iter_next), got %d", calls)
	}
}
