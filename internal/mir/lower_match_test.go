package mir_test

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// TestLowerMatchLiteralArmsChainSequentially builds `match x { 1 => ..., _
// => ... }` and checks it lowers to a sequential arm-chain rather than a
// single decision block, per §4.1's "block sequence for literal patterns"
// allowance.
func TestLowerMatchLiteralArmsChainSequentially(t *testing.T) {
	b, fn := buildFunc("classify", []string{"x"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		i32 := b.Types().Builtins.I32
		scrutinee := hir.Var(params[0], "x", i32, sp())
		oneLit := hir.IntLit(1, i32, sp())
		matchExpr := &hir.Expr{
			Kind: hir.ExprMatch,
			Type: i32,
			Match: &hir.MatchExpr{
				Scrutinee: scrutinee,
				Arms: []hir.MatchArm{
					{
						Pattern: &hir.Pattern{Kind: hir.PatternLiteral, Literal: oneLit},
						Body:    hir.IntLit(100, i32, sp()),
					},
					{
						Pattern: &hir.Pattern{Kind: hir.PatternWildcard},
						Body:    hir.IntLit(0, i32, sp()),
					},
				},
			},
		}
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(matchExpr)}}
	})
	fn.ReturnType = b.Types().Builtins.I32

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]

	var switches int
	for _, blk := range f.Blocks {
		if blk.Term.Kind == mir.TermSwitchInt {
			switches++
		}
	}
	// One SwitchInt to test the literal pattern; the wildcard arm needs none.
	if switches != 1 {
		t.Fatalf("expected exactly 1 SwitchInt for the single literal-pattern test, got %d", switches)
	}

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

// TestLowerMatchBindingArmBindsScrutinee checks a plain binding pattern
// introduces a new local holding the scrutinee's value.
func TestLowerMatchBindingArmBindsScrutinee(t *testing.T) {
	b, fn := buildFunc("echo", []string{"x"}, 0, func(b *hir.Builder, params []symbols.DefId) *hir.Block {
		i32 := b.Types().Builtins.I32
		scrutinee := hir.Var(params[0], "x", i32, sp())
		bindDef := b.DeclareLocal("y", false)
		matchExpr := &hir.Expr{
			Kind: hir.ExprMatch,
			Type: i32,
			Match: &hir.MatchExpr{
				Scrutinee: scrutinee,
				Arms: []hir.MatchArm{
					{
						Pattern: &hir.Pattern{Kind: hir.PatternBinding, Binding: &hir.BindingPattern{DefId: bindDef, Name: "y"}},
						Body:    hir.Var(bindDef, "y", i32, sp()),
					},
				},
			},
		}
		return &hir.Block{Stmts: []hir.Stmt{hir.ExprStmt(matchExpr)}}
	})
	fn.ReturnType = b.Types().Builtins.I32

	prog := mir.LowerProgram(b.Program())
	f := prog.Funcs[0]

	var found bool
	for _, l := range f.Locals {
		if l.Name == "y" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a local named %q bound by the match arm", "y")
	}

	if err := mir.Validate(prog); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
