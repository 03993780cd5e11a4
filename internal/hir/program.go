// Package hir defines the typed, name-resolved program tree that lowering
// and the rest of this compiler core consume as input. Parsing, name
// resolution, and type checking are external collaborators with a fixed
// interface (§1); this package IS that interface, expressed as plain data
// plus a small builder API (build.go) standing in for the absent front end.
package hir

import (
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// Program is a fully resolved, fully typed compilation unit: every DefId,
// name, and Type it references has already been decided by the (external)
// front end.
type Program struct {
	Defs  *symbols.Table
	Types *types.Interner

	Functions       []*Function
	ExternFunctions []*ExternFunction
	ExternStatics   []*ExternStatic
	Structs         []*StructDef
	Enums           []*EnumDef
}

// StructDef is a resolved struct declaration: an ordered, positionally
// stable field list (§4.1).
type StructDef struct {
	DefId  symbols.DefId
	Name   string
	Fields []FieldDef
}

type FieldDef struct {
	Name string
	Type types.TypeID
}

// EnumDef is a resolved enum declaration: an ordered variant list, each with
// its own DefId and ordered payload field types.
type EnumDef struct {
	DefId    symbols.DefId
	Name     string
	Variants []VariantDef
}

type VariantDef struct {
	Name   string
	DefId  symbols.DefId
	Fields []types.TypeID
}

// ExternFunction is a resolved external function declaration: a signature
// with no body, resolved by a host collaborator (native codegen, §1).
type ExternFunction struct {
	DefId      symbols.DefId
	Name       string
	Params     []types.TypeID
	ReturnType types.TypeID
}

// ExternStatic is a resolved external static declaration.
type ExternStatic struct {
	DefId symbols.DefId
	Name  string
	Type  types.TypeID
}
