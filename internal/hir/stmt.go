package hir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLet
	StmtExpr
)

// Stmt is a resolved statement: a `let` binding or a bare expression. Like
// the MIR node shapes it eventually lowers into, it is a kind tag plus all
// variant fields inline.
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Let  *LetStmt
	Expr *Expr
}

// LetStmt is `let [mut] name[: ty] = init`.
type LetStmt struct {
	DefId   symbols.DefId
	Name    string
	Mutable bool
	Type    types.TypeID
	Init    *Expr
}
