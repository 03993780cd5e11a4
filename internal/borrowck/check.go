package borrowck

import (
	"sort"

	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// maxSweeps bounds the fixed-point iteration as a last-resort safety net.
// §4.2 argues convergence is guaranteed by the boundedness of variable
// states and the function's loan count; this cap only protects against a
// pathological CFG slipping past that argument, and is never expected to
// bind in practice.
const maxSweeps = 256

// loanSite identifies the statement a loan was created at, so repeated
// visits during the fixed-point walk assign the same LoanId to the same
// `&`/`&mut` expression instead of minting a fresh one each sweep.
type loanSite struct {
	Block mir.BlockID
	Stmt  int
}

// checker holds the state shared across the whole fixed-point walk of one
// function: the CFG's predecessor edges, stable loan identities, and the
// def table used to resolve declared mutability and display names.
type checker struct {
	f     *mir.Func
	names *symbols.Table

	order []mir.BlockID
	preds map[mir.BlockID][]mir.BlockID

	loanIDs map[loanSite]LoanId
}

// Check walks fn's control-flow graph to a dataflow fixed point and reports
// every borrow-check violation found (§6 item 2). names resolves a local's
// declared mutability and source name when its DefId is valid; it may be
// nil, in which case every local is treated as an anonymous temporary.
func Check(fn *mir.Func, names *symbols.Table) []BorrowError {
	c := &checker{
		f:       fn,
		names:   names,
		loanIDs: make(map[loanSite]LoanId),
	}
	c.order = reversePostOrder(fn)
	c.preds = predecessors(fn)

	out := make(map[mir.BlockID]*BorrowState, len(fn.Blocks))
	for _, id := range c.order {
		out[id] = newBorrowState(fn)
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		changed := false
		for _, id := range c.order {
			in := c.blockIn(id, out)
			next := c.transition(id, in, nil)
			if !next.equal(out[id]) {
				out[id] = next
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	var errs []BorrowError
	for _, id := range c.order {
		in := c.blockIn(id, out)
		c.transition(id, in, &errs)
	}

	return dedup(errs)
}

// blockIn computes a block's entry state: the function's fresh initial
// state for the entry block, or the join of every predecessor's current
// exit state otherwise. A predecessor not yet assigned an exit state (the
// first sweep has not reached it yet) is treated as the fresh initial
// state, a safe, if pessimistic, placeholder that later sweeps correct.
func (c *checker) blockIn(id mir.BlockID, out map[mir.BlockID]*BorrowState) *BorrowState {
	if id == c.f.Entry {
		return newBorrowState(c.f)
	}
	preds := c.preds[id]
	if len(preds) == 0 {
		return newBorrowState(c.f)
	}
	var joined *BorrowState
	for _, p := range preds {
		ps := out[p]
		if ps == nil {
			ps = newBorrowState(c.f)
		}
		if joined == nil {
			joined = ps.clone()
			continue
		}
		joined = join(joined, ps)
	}
	return joined
}

// transition applies one block's statements and terminator to state,
// mutating it in place and returning it as the block's exit state. When
// errs is non-nil, every violation found is appended to it; a nil errs
// runs the same transition silently, for use during the fixed-point sweep
// where the same site may be visited many times before the analysis
// settles.
func (c *checker) transition(id mir.BlockID, state *BorrowState, errs *[]BorrowError) *BorrowState {
	b := c.f.Block(id)
	if b == nil {
		return state
	}
	for si, st := range b.Statements {
		c.stepStatement(id, si, st, state, errs)
	}
	c.stepTerminator(b.Term, state, errs)
	return state
}

func (c *checker) stepStatement(block mir.BlockID, stmt int, st mir.Statement, state *BorrowState, errs *[]BorrowError) {
	switch st.Kind {
	case mir.StmtAssign:
		c.stepAssign(block, stmt, st.Assign, state, errs)
	case mir.StmtStorageLive:
		state.set(st.StorageLive, uninitState())
	case mir.StmtStorageDead:
		state.endLoansRootedAt(st.StorageDead)
		state.set(st.StorageDead, uninitState())
	case mir.StmtNop:
	}
}

func (c *checker) stepAssign(block mir.BlockID, stmt int, a mir.AssignStmt, state *BorrowState, errs *[]BorrowError) {
	place := FromMIR(a.Place)
	span := c.spanOf(place)

	switch a.RValue.Kind {
	case mir.RValueUse:
		c.walkOperand(a.RValue.Use, state, errs)
	case mir.RValueRef:
		c.stepRef(block, stmt, a.RValue.Ref, state, errs)
	case mir.RValueBinaryOp:
		c.walkOperand(a.RValue.BinaryOp.Left, state, errs)
		c.walkOperand(a.RValue.BinaryOp.Right, state, errs)
	case mir.RValueUnaryOp:
		c.walkOperand(a.RValue.UnaryOp.Operand, state, errs)
	case mir.RValueAggregate:
		for _, op := range a.RValue.Aggregate.Operands {
			c.walkOperand(op, state, errs)
		}
	case mir.RValueDiscriminant:
		dp := FromMIR(a.RValue.Discriminant)
		report(errs, state.canRead(dp, c.spanOf(dp)))
	case mir.RValueCast:
		c.walkOperand(a.RValue.Cast.Operand, state, errs)
	}

	report(errs, state.canWrite(place, span))
	c.applyWrite(state, place)
}

func (c *checker) stepRef(block mir.BlockID, stmt int, ref mir.RefRValue, state *BorrowState, errs *[]BorrowError) {
	src := FromMIR(ref.Place)
	span := c.spanOf(src)
	id := c.loanID(block, stmt)
	if ref.IsMut {
		report(errs, state.canBorrowMut(src, span, c.f, c.names))
	} else {
		report(errs, state.canBorrow(src, span))
	}
	state.createLoan(id, src, ref.IsMut, span)
}

func (c *checker) stepTerminator(t mir.Terminator, state *BorrowState, errs *[]BorrowError) {
	switch t.Kind {
	case mir.TermSwitchInt:
		c.walkOperand(t.SwitchInt.Discr, state, errs)
	case mir.TermReturn:
		if t.Return.HasValue {
			c.walkOperand(t.Return.Value, state, errs)
		}
	case mir.TermCall:
		c.walkOperand(t.Call.Func, state, errs)
		for _, a := range t.Call.Args {
			c.walkOperand(a, state, errs)
		}
		dest := PlaceOf(t.Call.Destination)
		state.endLoansOf(dest)
		state.initialize(t.Call.Destination)
	case mir.TermGoto, mir.TermUnreachable, mir.TermNone:
	}
}

// walkOperand applies §4.2's per-operand semantics: a Constant reads
// nothing, a Copy requires can_read without changing state, and a Move
// requires can_read and then transitions the moved place (its single field
// if the place projects exactly one, its whole root otherwise).
func (c *checker) walkOperand(op mir.Operand, state *BorrowState, errs *[]BorrowError) {
	if op.Kind == mir.OperandConstant {
		return
	}
	p := FromMIR(op.Place)
	span := c.spanOf(p)
	report(errs, state.canRead(p, span))
	if op.Kind != mir.OperandMove {
		return
	}
	if field, ok := p.singleFieldProjection(); ok {
		state.moveField(p.Local, field, span)
		return
	}
	state.moveWhole(p, span)
}

// applyWrite is §4.2's post-write effect: writing the whole variable
// re-initializes it to Valid; writing a single field clears that field
// from a PartiallyMoved variable's moved set; any write ends every loan
// conflicting with the written place.
func (c *checker) applyWrite(state *BorrowState, place Place) {
	state.endLoansOf(place)
	switch {
	case place.Path == "":
		state.initialize(place.Local)
	default:
		if field, ok := place.singleFieldProjection(); ok {
			state.reassignField(place.Local, field)
		}
	}
}

// spanOf approximates a place's source location with its root local's
// declaration span: MIR statements carry no span of their own (only
// locals and functions do), so the local's span is the finest-grained
// location available to cite in a diagnostic.
func (c *checker) spanOf(p Place) source.Span {
	if l := c.f.Local(p.Local); l != nil {
		return l.Span
	}
	return c.f.Span
}

func (c *checker) loanID(block mir.BlockID, stmt int) LoanId {
	key := loanSite{Block: block, Stmt: stmt}
	if id, ok := c.loanIDs[key]; ok {
		return id
	}
	id := nextLoanId(len(c.loanIDs) + 1)
	c.loanIDs[key] = id
	return id
}

func report(errs *[]BorrowError, err *BorrowError) {
	if errs == nil || err == nil {
		return
	}
	*errs = append(*errs, *err)
}

// join implements §4.2's join rule across two predecessor states: a
// variable Moved on either side stays Moved; a variable PartiallyMoved on
// either side (with Valid treated as PartiallyMoved{} for this purpose)
// becomes PartiallyMoved with the union of moved fields; Uninitialized on
// either side with Valid on the other stays Uninitialized; loans are
// unioned, since a loan live on any predecessor must be treated as live on
// entry.
func join(a, b *BorrowState) *BorrowState {
	out := &BorrowState{
		vars:  make(map[mir.LocalID]VarState, len(a.vars)),
		loans: make(map[LoanId]Loan, len(a.loans)+len(b.loans)),
	}
	locals := make(map[mir.LocalID]struct{}, len(a.vars)+len(b.vars))
	for k := range a.vars {
		locals[k] = struct{}{}
	}
	for k := range b.vars {
		locals[k] = struct{}{}
	}
	for local := range locals {
		out.vars[local] = joinVar(a.vars[local], b.vars[local])
	}
	for id, l := range a.loans {
		out.loans[id] = l
	}
	for id, l := range b.loans {
		out.loans[id] = l
	}
	return out
}

func joinVar(a, b VarState) VarState {
	if a.Kind == VarMoved {
		return a
	}
	if b.Kind == VarMoved {
		return b
	}
	if a.Kind == VarPartiallyMoved || b.Kind == VarPartiallyMoved {
		fields := make(map[string]source.Span)
		for k, v := range a.MovedFields {
			fields[k] = v
		}
		for k, v := range b.MovedFields {
			fields[k] = v
		}
		return VarState{Kind: VarPartiallyMoved, MovedFields: fields}
	}
	if a.Kind == VarUninitialized || b.Kind == VarUninitialized {
		return VarState{Kind: VarUninitialized}
	}
	return VarState{Kind: VarValid}
}

// dedup removes exact duplicate errors: the same kind at the same place
// and span (§4.3). The first occurrence of each key is kept, and the result
// is stably sorted by span start, then by kind.
func dedup(errs []BorrowError) []BorrowError {
	type key struct {
		Kind  ErrorKind
		Local mir.LocalID
		Path  string
		Span  source.Span
	}
	seen := make(map[key]bool, len(errs))
	out := make([]BorrowError, 0, len(errs))
	for _, e := range errs {
		k := key{Kind: e.Kind, Local: e.Place.Local, Path: e.Place.Path, Span: e.Span}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Span.Start != out[j].Span.Start {
			return out[i].Span.Start < out[j].Span.Start
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// reversePostOrder computes a reverse post-order over fn's CFG starting
// from its entry block, the traversal order the fixed-point walk uses so
// that, on the first sweep, almost every block is visited after its
// predecessors (every edge except a loop back-edge).
func reversePostOrder(fn *mir.Func) []mir.BlockID {
	visited := make(map[mir.BlockID]bool, len(fn.Blocks))
	var post []mir.BlockID
	var visit func(id mir.BlockID)
	visit = func(id mir.BlockID) {
		if visited[id] {
			return
		}
		visited[id] = true
		b := fn.Block(id)
		if b == nil {
			return
		}
		for _, succ := range b.Term.Successors() {
			visit(succ)
		}
		post = append(post, id)
	}
	visit(fn.Entry)
	// Any block unreachable from entry (dead code) still needs a state so
	// transition/join never index a nil map entry; append them after the
	// reachable order.
	for _, b := range fn.Blocks {
		if !visited[b.ID] {
			visited[b.ID] = true
			post = append(post, b.ID)
		}
	}
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

func predecessors(fn *mir.Func) map[mir.BlockID][]mir.BlockID {
	out := make(map[mir.BlockID][]mir.BlockID, len(fn.Blocks))
	for _, b := range fn.Blocks {
		for _, succ := range b.Term.Successors() {
			out[succ] = append(out[succ], b.ID)
		}
	}
	return out
}
