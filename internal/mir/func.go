package mir

import (
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// Local is one entry in a function's local table: a parameter, the return
// slot, a named source binding, or an anonymous temporary introduced by
// lowering.
type Local struct {
	ID LocalID
	// DefId is the source binding this local lowers from, or symbols.NoDefId
	// for an anonymous temporary. internal/borrowck uses it to recover a
	// variable's declared mutability and display name from the def table.
	DefId symbols.DefId
	Name  string
	Type  types.TypeID
	IsArg bool
	Span  source.Span
}

// Block is a maximal straight-line sequence of statements ending in exactly
// one terminator.
type Block struct {
	ID         BlockID
	Statements []Statement
	Term       Terminator
}

// Terminated reports whether the block already has a terminator.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Func is one lowered function: its typed local table and its
// control-flow graph of basic blocks.
type Func struct {
	ID         FuncID
	DefId      symbols.DefId
	Name       string
	Span       source.Span
	ReturnType types.TypeID

	// ParamCount is the number of leading entries in Locals that are
	// parameters (local 0, the return slot, is not one of them).
	ParamCount int

	Locals []Local
	Blocks []Block
	Entry  BlockID
}

// Local returns the local at id, or nil if id is out of range.
func (f *Func) Local(id LocalID) *Local {
	idx := int(id)
	if f == nil || idx < 0 || idx >= len(f.Locals) {
		return nil
	}
	return &f.Locals[idx]
}

// Block returns the block at id by linear search over Blocks (ids need not
// be dense, §3). Callers on a hot path should prefer an id→index map built
// once, as validate.go's block-reference checks do.
func (f *Func) Block(id BlockID) *Block {
	if f == nil {
		return nil
	}
	for i := range f.Blocks {
		if f.Blocks[i].ID == id {
			return &f.Blocks[i]
		}
	}
	return nil
}
