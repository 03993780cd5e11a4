package pipeline_test

import (
	"context"
	"testing"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/pipeline"
	"github.com/wisp-lang/wispc/internal/source"
)

func sp() source.Span { return source.Span{} }

// clean builds a program with one well-behaved function; dirty adds a
// second function with a use-after-move. CheckProgram must report both in
// the right slot, independent of which goroutine finishes first.
func TestCheckProgramOrdersResultsByInput(t *testing.T) {
	b := hir.NewBuilder()
	str := b.Types().Builtins.Str

	cleanDef := b.DeclareFunction("clean")
	cleanS := b.DeclareLocal("s", false)
	cleanBody := &hir.Block{
		Stmts: []hir.Stmt{
			hir.LetBinding(cleanS, "s", false, str, hir.StrLit("ok", str, sp()), sp()),
		},
		Span: sp(),
	}
	b.AddFunction(&hir.Function{DefId: cleanDef, Name: "clean", ReturnType: b.Types().Builtins.Unit, Body: cleanBody, Span: sp()})

	dirtyDef := b.DeclareFunction("dirty")
	dirtyS := b.DeclareLocal("s", false)
	dirtyT := b.DeclareLocal("t", false)
	dirtyU := b.DeclareLocal("u", false)
	dirtyBody := &hir.Block{
		Stmts: []hir.Stmt{
			hir.LetBinding(dirtyS, "s", false, str, hir.StrLit("bad", str, sp()), sp()),
			hir.LetBinding(dirtyT, "t", false, str, hir.Var(dirtyS, "s", str, sp()), sp()),
			hir.LetBinding(dirtyU, "u", false, str, hir.Var(dirtyS, "s", str, sp()), sp()),
		},
		Span: sp(),
	}
	b.AddFunction(&hir.Function{DefId: dirtyDef, Name: "dirty", ReturnType: b.Types().Builtins.Unit, Body: dirtyBody, Span: sp()})

	results, err := pipeline.CheckProgram(context.Background(), b.Program(), 2)
	if err != nil {
		t.Fatalf("CheckProgram returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "clean" || len(results[0].Errors) != 0 {
		t.Errorf("results[0] = %+v, want clean function with no errors", results[0])
	}
	if results[1].Name != "dirty" || len(results[1].Errors) != 1 {
		t.Errorf("results[1] = %+v, want dirty function with one error", results[1])
	}
	if !pipeline.HasErrors(results) {
		t.Error("HasErrors should report true when any function has borrow errors")
	}
}

func TestCheckProgramEmpty(t *testing.T) {
	b := hir.NewBuilder()
	results, err := pipeline.CheckProgram(context.Background(), b.Program(), 0)
	if err != nil {
		t.Fatalf("CheckProgram returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for an empty program, got %d", len(results))
	}
	if pipeline.HasErrors(results) {
		t.Error("HasErrors should report false for an empty result set")
	}
}
