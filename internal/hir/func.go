package hir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// Function is a resolved function: a typed signature plus a typed body.
type Function struct {
	DefId      symbols.DefId
	Name       string
	TypeParams []symbols.DefId
	Params     []Param
	ReturnType types.TypeID
	Body       *Block
	Span       source.Span
}

// Param is one resolved function parameter.
type Param struct {
	DefId   symbols.DefId
	Name    string
	Mutable bool
	Type    types.TypeID
	Span    source.Span
}

// Block is a resolved `{ s1; ...; sN; tail? }`. The tail expression, if any,
// is the last Stmt and has StmtKind StmtExpr; a block with no tail still
// produces Unit when lowered.
type Block struct {
	Stmts []Stmt
	Span  source.Span
}
