package hir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// Builder assembles a Program by hand. It stands in for the absent parser,
// resolver, and type checker: tests and the CLI's scenario runner use it to
// construct already-resolved, already-typed HIR literals directly.
type Builder struct {
	defs  *symbols.Table
	types *types.Interner
	prog  *Program
}

func NewBuilder() *Builder {
	defs := symbols.NewTable()
	tys := types.NewInterner()
	return &Builder{
		defs:  defs,
		types: tys,
		prog: &Program{
			Defs:  defs,
			Types: tys,
		},
	}
}

func (b *Builder) Defs() *symbols.Table   { return b.defs }
func (b *Builder) Types() *types.Interner { return b.types }

// Program returns the Program built so far. It is the same *Program the
// builder keeps adding to, so declarations made after calling Program also
// appear in the returned value.
func (b *Builder) Program() *Program { return b.prog }

// DeclareLocal registers a new local or parameter-like binding and returns
// its DefId.
func (b *Builder) DeclareLocal(name string, mutable bool) symbols.DefId {
	return b.defs.Declare(name, symbols.DefLocal, mutable)
}

func (b *Builder) DeclareParam(name string, mutable bool) symbols.DefId {
	return b.defs.Declare(name, symbols.DefParameter, mutable)
}

func (b *Builder) DeclareFunction(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefFunction, false)
}

func (b *Builder) DeclareExternFunction(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefExternFunction, false)
}

func (b *Builder) DeclareExternStatic(name string, mutable bool) symbols.DefId {
	return b.defs.Declare(name, symbols.DefExternStatic, mutable)
}

func (b *Builder) DeclareStruct(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefStruct, false)
}

func (b *Builder) DeclareEnum(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefEnum, false)
}

func (b *Builder) DeclareEnumVariant(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefEnumVariant, false)
}

func (b *Builder) DeclareField(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefField, false)
}

func (b *Builder) DeclareTypeParam(name string) symbols.DefId {
	return b.defs.Declare(name, symbols.DefTypeParam, false)
}

// Intern interns a type and returns its TypeID.
func (b *Builder) Intern(t types.Type) types.TypeID {
	return b.types.Intern(t)
}

// AddFunction appends a fully built function to the program.
func (b *Builder) AddFunction(fn *Function) {
	b.prog.Functions = append(b.prog.Functions, fn)
}

func (b *Builder) AddExternFunction(fn *ExternFunction) {
	b.prog.ExternFunctions = append(b.prog.ExternFunctions, fn)
}

func (b *Builder) AddExternStatic(s *ExternStatic) {
	b.prog.ExternStatics = append(b.prog.ExternStatics, s)
}

func (b *Builder) AddStruct(s *StructDef) {
	b.prog.Structs = append(b.prog.Structs, s)
}

func (b *Builder) AddEnum(e *EnumDef) {
	b.prog.Enums = append(b.prog.Enums, e)
}

// Helper constructors below build common Expr/Stmt shapes inline, saving
// callers from repeating the kind-tag boilerplate for every literal.

func IntLit(v int64, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprIntLit, Span: span, Type: ty, IntLit: &IntLitExpr{Value: v}}
}

func FloatLit(v float64, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprFloatLit, Span: span, Type: ty, FloatLit: &FloatLitExpr{Value: v}}
}

func BoolLit(v bool, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprBoolLit, Span: span, Type: ty, BoolLit: &v}
}

func StrLit(v string, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprStrLit, Span: span, Type: ty, StrLit: &v}
}

func Var(id symbols.DefId, name string, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprVar, Span: span, Type: ty, Var: &VarExpr{DefId: id, Name: name}}
}

func Binary(op BinaryOp, left, right *Expr, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprBinary, Span: span, Type: ty, Binary: &BinaryExpr{Op: op, Left: left, Right: right}}
}

func Unary(op UnaryOp, operand *Expr, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprUnary, Span: span, Type: ty, Unary: &UnaryExpr{Op: op, Operand: operand}}
}

func Call(callee *Expr, args []*Expr, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprCall, Span: span, Type: ty, Call: &CallExpr{Callee: callee, Args: args}}
}

func Field(target *Expr, name string, def symbols.DefId, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprField, Span: span, Type: ty, Field: &FieldExpr{Target: target, FieldName: name, FieldDef: def}}
}

func RefOf(isMut bool, target *Expr, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprRef, Span: span, Type: ty, Ref: &RefExpr{IsMut: isMut, Target: target}}
}

func DerefOf(target *Expr, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprDeref, Span: span, Type: ty, Deref: &DerefExpr{Target: target}}
}

func Assign(op AssignOp, target, value *Expr, span source.Span) *Expr {
	return &Expr{Kind: ExprAssign, Span: span, Assign: &AssignExpr{Op: op, Target: target, Value: value}}
}

func BlockExpr(block *Block, ty types.TypeID) *Expr {
	return &Expr{Kind: ExprBlock, Span: block.Span, Type: ty, Block: block}
}

func If(cond *Expr, then *Block, els Else, ty types.TypeID, span source.Span) *Expr {
	return &Expr{Kind: ExprIf, Span: span, Type: ty, If: &IfExpr{Cond: cond, Then: then, Else: els}}
}

func ExprStmt(e *Expr) Stmt {
	return Stmt{Kind: StmtExpr, Span: e.Span, Expr: e}
}

func LetBinding(id symbols.DefId, name string, mutable bool, ty types.TypeID, init *Expr, span source.Span) Stmt {
	return Stmt{
		Kind: StmtLet,
		Span: span,
		Let:  &LetStmt{DefId: id, Name: name, Mutable: mutable, Type: ty, Init: init},
	}
}
