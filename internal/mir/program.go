package mir

import (
	"github.com/wisp-lang/wispc/internal/layout"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// ExternFunc is an external function declaration: a signature with no
// body, resolved by a host collaborator such as native codegen.
type ExternFunc struct {
	DefId      symbols.DefId
	Name       string
	Params     []types.TypeID
	ReturnType types.TypeID
}

// ExternStatic is an external static declaration.
type ExternStatic struct {
	DefId symbols.DefId
	Name  string
	Type  types.TypeID
}

// StructLayout pairs a struct's DefId with its computed field layout.
type StructLayout struct {
	DefId  symbols.DefId
	Name   string
	Layout layout.Struct
}

// EnumLayout pairs an enum's DefId with its computed discriminant/payload
// layout.
type EnumLayout struct {
	DefId  symbols.DefId
	Name   string
	Layout layout.Enum
}

// Program is the output of lowering: every free function, every external
// declaration, and the type-layout records Struct/Enum aggregates rely on.
type Program struct {
	Defs  *symbols.Table
	Types *types.Interner

	Funcs           []*Func
	FuncByDefId     map[symbols.DefId]*Func
	ExternFunctions []*ExternFunc
	ExternStatics   []*ExternStatic
	Structs         []StructLayout
	Enums           []EnumLayout
}

// NewProgram creates an empty Program bound to a shared def table and type
// interner.
func NewProgram(defs *symbols.Table, tys *types.Interner) *Program {
	return &Program{
		Defs:        defs,
		Types:       tys,
		FuncByDefId: make(map[symbols.DefId]*Func),
	}
}

// AddFunc registers a lowered function in the program.
func (p *Program) AddFunc(f *Func) {
	p.Funcs = append(p.Funcs, f)
	if f.DefId.IsValid() {
		p.FuncByDefId[f.DefId] = f
	}
}

// StructLayoutFor finds the layout record for a struct DefId, if any.
func (p *Program) StructLayoutFor(def symbols.DefId) (StructLayout, bool) {
	for _, s := range p.Structs {
		if s.DefId == def {
			return s, true
		}
	}
	return StructLayout{}, false
}

// EnumLayoutFor finds the layout record for an enum DefId, if any.
func (p *Program) EnumLayoutFor(def symbols.DefId) (EnumLayout, bool) {
	for _, e := range p.Enums {
		if e.DefId == def {
			return e, true
		}
	}
	return EnumLayout{}, false
}
