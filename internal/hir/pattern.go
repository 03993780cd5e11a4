package hir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
)

type PatternKind uint8

const (
	PatternInvalid PatternKind = iota
	PatternWildcard
	PatternBinding
	PatternLiteral
	PatternVariant
)

// Pattern is a resolved match-arm pattern.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	Binding *BindingPattern
	Literal *Expr
	Variant *VariantPattern
}

// BindingPattern binds the scrutinee (or a sub-place of it) to a fresh
// local. Mutable mirrors the `let` binding it behaves like.
type BindingPattern struct {
	DefId   symbols.DefId
	Name    string
	Mutable bool
}

// VariantPattern matches a specific enum variant and destructures its
// payload fields positionally.
type VariantPattern struct {
	EnumDef    symbols.DefId
	VariantDef symbols.DefId
	Fields     []*Pattern
}
