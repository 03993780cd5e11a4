// Package mir implements the control-flow-graph mid-level intermediate
// representation: typed locals, basic blocks, explicit places, rvalues,
// and operands that preserve the copy/move distinction the borrow checker
// consumes. It also implements lowering from a resolved hir.Program.
package mir

// LocalID identifies a local (parameter, named binding, or anonymous
// temporary) within a single function. By convention local 0 is the
// function's return slot; parameter locals follow, then everything else.
type LocalID int32

// BlockID identifies a basic block within a single function's block vector.
type BlockID int32

// FuncID identifies a function within a Program.
type FuncID int32

const (
	NoLocalID LocalID = -1
	NoBlockID BlockID = -1
	NoFuncID  FuncID  = -1
)
