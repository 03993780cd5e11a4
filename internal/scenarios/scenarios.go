// Package scenarios builds the named example programs §8 of the borrow
// checker's specification names (S1-S6 plus two supplementary cases), each
// exercising at most one ErrorKind (S3 is expected to produce no error).
// internal/borrowck's own tests and the
// wispc CLI's `scenario` subcommand both build from these, so the demo
// surface and the regression tests can never silently drift apart.
package scenarios

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/types"
)

var foldCase = cases.Fold()

func sp() source.Span { return source.Span{} }

func newFuncBuilder() *hir.Builder {
	return hir.NewBuilder()
}

func finish(b *hir.Builder, body *hir.Block) *hir.Program {
	fnDef := b.DeclareFunction("f")
	b.AddFunction(&hir.Function{
		DefId:      fnDef,
		Name:       "f",
		ReturnType: b.Types().Builtins.Unit,
		Body:       body,
		Span:       sp(),
	})
	return b.Program()
}

// Scenario is one named, described example program.
type Scenario struct {
	Name        string
	Description string
	Build       func() *hir.Program
}

// S1 moves s into t, then reads s again: a whole-variable use after move.
func S1() *hir.Program {
	b := newFuncBuilder()
	str := b.Types().Builtins.Str
	s := b.DeclareLocal("s", false)
	t := b.DeclareLocal("t", false)
	u := b.DeclareLocal("u", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(s, "s", false, str, hir.StrLit("hello", str, sp()), sp()),
		hir.LetBinding(t, "t", false, str, hir.Var(s, "s", str, sp()), sp()),
		hir.LetBinding(u, "u", false, str, hir.Var(s, "s", str, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// S2 reads v while an exclusive borrow of it is still live.
func S2() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	refTy := b.Intern(types.Ref(true, i32))
	v := b.DeclareLocal("v", true)
	r := b.DeclareLocal("r", false)
	x := b.DeclareLocal("x", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", true, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r, "r", false, refTy, hir.RefOf(true, hir.Var(v, "v", i32, sp()), refTy, sp()), sp()),
		hir.LetBinding(x, "x", false, i32, hir.Var(v, "v", i32, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// S3 takes two shared borrows of the same variable; no error expected.
func S3() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	refTy := b.Intern(types.Ref(false, i32))
	v := b.DeclareLocal("v", false)
	r1 := b.DeclareLocal("r1", false)
	r2 := b.DeclareLocal("r2", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", false, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r1, "r1", false, refTy, hir.RefOf(false, hir.Var(v, "v", i32, sp()), refTy, sp()), sp()),
		hir.LetBinding(r2, "r2", false, refTy, hir.RefOf(false, hir.Var(v, "v", i32, sp()), refTy, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// S4 attempts a shared borrow while an exclusive borrow is already active.
func S4() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	mutRefTy := b.Intern(types.Ref(true, i32))
	sharedRefTy := b.Intern(types.Ref(false, i32))
	v := b.DeclareLocal("v", true)
	r1 := b.DeclareLocal("r1", false)
	r2 := b.DeclareLocal("r2", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", true, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r1, "r1", false, mutRefTy, hir.RefOf(true, hir.Var(v, "v", i32, sp()), mutRefTy, sp()), sp()),
		hir.LetBinding(r2, "r2", false, sharedRefTy, hir.RefOf(false, hir.Var(v, "v", i32, sp()), sharedRefTy, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// S5 moves one field of a struct, leaves its sibling field usable, then
// reads the whole struct: a use of a partially moved place.
func S5() *hir.Program {
	b := newFuncBuilder()
	str := b.Types().Builtins.Str
	pairDef := b.DeclareStruct("Pair")
	b.AddStruct(&hir.StructDef{
		DefId: pairDef,
		Name:  "Pair",
		Fields: []hir.FieldDef{
			{Name: "a", Type: str},
			{Name: "b", Type: str},
		},
	})
	pairTy := b.Intern(types.Struct(pairDef))
	fieldA := b.DeclareField("a")
	fieldB := b.DeclareField("b")

	p := b.DeclareLocal("p", false)
	x := b.DeclareLocal("x", false)
	y := b.DeclareLocal("y", false)
	z := b.DeclareLocal("z", false)

	structLit := &hir.Expr{
		Kind: hir.ExprStructLit,
		Type: pairTy,
		Span: sp(),
		StructLit: &hir.StructLitExpr{
			StructDef: pairDef,
			Fields: []hir.StructLitField{
				{Name: "a", Value: hir.StrLit("A", str, sp())},
				{Name: "b", Value: hir.StrLit("B", str, sp())},
			},
		},
	}
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(p, "p", false, pairTy, structLit, sp()),
		hir.LetBinding(x, "x", false, str, hir.Field(hir.Var(p, "p", pairTy, sp()), "a", fieldA, str, sp()), sp()),
		hir.LetBinding(y, "y", false, str, hir.Field(hir.Var(p, "p", pairTy, sp()), "b", fieldB, str, sp()), sp()),
		hir.LetBinding(z, "z", false, pairTy, hir.Var(p, "p", pairTy, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// S6 takes a mutable borrow of a binding that was never declared mutable.
func S6() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	refTy := b.Intern(types.Ref(true, i32))
	v := b.DeclareLocal("v", false)
	r := b.DeclareLocal("r", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", false, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r, "r", false, refTy, hir.RefOf(true, hir.Var(v, "v", i32, sp()), refTy, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// MutWhileShared takes an exclusive borrow while a shared borrow is live,
// the mirror case of S4; not one of the six numbered scenarios, but needed
// to exercise MutBorrowWhileBorrowed.
func MutWhileShared() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	sharedRefTy := b.Intern(types.Ref(false, i32))
	mutRefTy := b.Intern(types.Ref(true, i32))
	v := b.DeclareLocal("v", true)
	r1 := b.DeclareLocal("r1", false)
	r2 := b.DeclareLocal("r2", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", true, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r1, "r1", false, sharedRefTy, hir.RefOf(false, hir.Var(v, "v", i32, sp()), sharedRefTy, sp()), sp()),
		hir.LetBinding(r2, "r2", false, mutRefTy, hir.RefOf(true, hir.Var(v, "v", i32, sp()), mutRefTy, sp()), sp()),
	}, Span: sp()}
	return finish(b, body)
}

// WriteWhileBorrowed assigns to v while any loan on it is active; not one
// of the six numbered scenarios, but needed to exercise WriteWhileBorrowed.
func WriteWhileBorrowed() *hir.Program {
	b := newFuncBuilder()
	i32 := b.Types().Builtins.I32
	refTy := b.Intern(types.Ref(false, i32))
	v := b.DeclareLocal("v", true)
	r := b.DeclareLocal("r", false)
	body := &hir.Block{Stmts: []hir.Stmt{
		hir.LetBinding(v, "v", true, i32, hir.IntLit(1, i32, sp()), sp()),
		hir.LetBinding(r, "r", false, refTy, hir.RefOf(false, hir.Var(v, "v", i32, sp()), refTy, sp()), sp()),
		hir.ExprStmt(hir.Assign(hir.AssignPlain, hir.Var(v, "v", i32, sp()), hir.IntLit(2, i32, sp()), sp())),
	}, Span: sp()}
	return finish(b, body)
}

// Registry lists every named scenario in a stable order, for `wispc
// scenario --list` and for table-driven tests.
var Registry = []Scenario{
	{"s1", "use a variable after it has been moved in full", S1},
	{"s2", "read a variable while it is exclusively borrowed", S2},
	{"s3", "two simultaneous shared borrows of the same variable", S3},
	{"s4", "borrow shared while an exclusive borrow is live", S4},
	{"s5", "move one field, then use the whole struct", S5},
	{"s6", "take a mutable borrow of an immutable binding", S6},
	{"mut-while-shared", "take an exclusive borrow while a shared borrow is live", MutWhileShared},
	{"write-while-borrowed", "assign to a variable while it is borrowed", WriteWhileBorrowed},
}

// Lookup resolves a scenario by name, matching case-insensitively so a CLI
// invocation like `wispc scenario S1` works the same as `s1`.
func Lookup(name string) (Scenario, error) {
	folded := foldCase.String(name)
	for _, s := range Registry {
		if foldCase.String(s.Name) == folded {
			return s, nil
		}
	}
	names := make([]string, len(Registry))
	for i, s := range Registry {
		names[i] = s.Name
	}
	sort.Strings(names)
	return Scenario{}, fmt.Errorf("unknown scenario %q (available: %v)", name, names)
}
