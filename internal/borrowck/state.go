package borrowck

import (
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
)

// VarStateKind enumerates the lifecycle states a local can be in (§3
// Lifecycles).
type VarStateKind uint8

const (
	// VarValid is the default state: the variable is owned and readable.
	VarValid VarStateKind = iota
	// VarMoved means the whole variable was moved out at MovedAt.
	VarMoved
	// VarPartiallyMoved means a subset of named fields were moved; the
	// variable as a whole is not usable until every moved field is
	// reassigned.
	VarPartiallyMoved
	// VarUninitialized means the local has storage but has never been
	// assigned on this path.
	VarUninitialized
)

// VarState is the borrow-check state of one local at a single program
// point.
type VarState struct {
	Kind    VarStateKind
	MovedAt source.Span
	// MovedFields records, for VarPartiallyMoved, the span of the move
	// that took each named field, so a later read can cite the original
	// move as a secondary span.
	MovedFields map[string]source.Span
}

func validState() VarState { return VarState{Kind: VarValid} }
func uninitState() VarState { return VarState{Kind: VarUninitialized} }
func movedState(at source.Span) VarState {
	return VarState{Kind: VarMoved, MovedAt: at}
}

// clone returns an independent copy safe to mutate without aliasing the
// receiver's MovedFields map.
func (s VarState) clone() VarState {
	if s.MovedFields == nil {
		return s
	}
	out := s
	out.MovedFields = make(map[string]source.Span, len(s.MovedFields))
	for k, v := range s.MovedFields {
		out.MovedFields[k] = v
	}
	return out
}

// smallestMovedField returns the moved field with the lexicographically
// smallest name and its move span, for deterministic error reporting when a
// whole-variable read must pick one of several moved fields to cite.
func smallestMovedField(fields map[string]source.Span) (string, source.Span) {
	var name string
	var span source.Span
	first := true
	for k, v := range fields {
		if first || k < name {
			name, span = k, v
			first = false
		}
	}
	return name, span
}

// Loan is a live borrow of a place.
type Loan struct {
	ID    LoanId
	Place Place
	IsMut bool
	Span  source.Span
}

// BorrowState is the full dataflow fact tracked at a single program point:
// one VarState per local plus the set of currently active loans. It is the
// lattice element the fixed-point walk in check.go joins across
// predecessors.
//
// Loan identity is assigned by the caller (check.go keys each Ref rvalue by
// its MIR position, block and statement index, not by visit order) so that LoanIds stay stable
// across the repeated visits a fixed-point iteration makes to the same
// block.
type BorrowState struct {
	vars  map[mir.LocalID]VarState
	loans map[LoanId]Loan
}

// newBorrowState builds the state for a function's entry block: every
// parameter starts Valid (callers already initialized it), every other
// local starts Uninitialized.
func newBorrowState(f *mir.Func) *BorrowState {
	bs := &BorrowState{
		vars:  make(map[mir.LocalID]VarState, len(f.Locals)),
		loans: make(map[LoanId]Loan),
	}
	for _, l := range f.Locals {
		if l.IsArg {
			bs.vars[l.ID] = validState()
		} else {
			bs.vars[l.ID] = uninitState()
		}
	}
	return bs
}

// clone returns a deep-enough independent copy: callers may mutate the
// result without affecting the receiver.
func (bs *BorrowState) clone() *BorrowState {
	out := &BorrowState{
		vars:  make(map[mir.LocalID]VarState, len(bs.vars)),
		loans: make(map[LoanId]Loan, len(bs.loans)),
	}
	for k, v := range bs.vars {
		out.vars[k] = v.clone()
	}
	for k, v := range bs.loans {
		out.loans[k] = v
	}
	return out
}

// equal reports whether bs and other represent the same dataflow fact. Used
// by the fixed-point walk in check.go to detect convergence.
func (bs *BorrowState) equal(other *BorrowState) bool {
	if len(bs.vars) != len(other.vars) || len(bs.loans) != len(other.loans) {
		return false
	}
	for k, v := range bs.vars {
		ov, ok := other.vars[k]
		if !ok || !v.equal(ov) {
			return false
		}
	}
	for k, v := range bs.loans {
		ov, ok := other.loans[k]
		if !ok || v != ov {
			return false
		}
	}
	return true
}

func (s VarState) equal(other VarState) bool {
	if s.Kind != other.Kind || s.MovedAt != other.MovedAt {
		return false
	}
	if len(s.MovedFields) != len(other.MovedFields) {
		return false
	}
	for k, v := range s.MovedFields {
		if ov, ok := other.MovedFields[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (bs *BorrowState) get(local mir.LocalID) VarState {
	return bs.vars[local]
}

func (bs *BorrowState) set(local mir.LocalID, s VarState) {
	bs.vars[local] = s
}

// initialize transitions a local to Valid, as a whole-variable assignment
// or a call's destination write does.
func (bs *BorrowState) initialize(local mir.LocalID) {
	bs.vars[local] = validState()
}

// moveWhole transitions the local's root variable to Moved.
func (bs *BorrowState) moveWhole(place Place, at source.Span) {
	bs.vars[place.Local] = movedState(at)
}

// moveField records a single field as moved without disturbing the rest of
// the variable's field set (§3 Lifecycles: Valid -> PartiallyMoved).
func (bs *BorrowState) moveField(local mir.LocalID, field string, at source.Span) {
	cur := bs.vars[local]
	if cur.Kind != VarPartiallyMoved {
		cur = VarState{Kind: VarPartiallyMoved, MovedFields: map[string]source.Span{}}
	} else {
		cur = cur.clone()
	}
	cur.MovedFields[field] = at
	bs.vars[local] = cur
}

// reassignField clears one field from a PartiallyMoved variable's moved
// set, restoring it to Valid once every moved field has been reassigned
// (§8 boundary 9).
func (bs *BorrowState) reassignField(local mir.LocalID, field string) {
	cur := bs.vars[local]
	if cur.Kind != VarPartiallyMoved {
		return
	}
	cur = cur.clone()
	delete(cur.MovedFields, field)
	if len(cur.MovedFields) == 0 {
		bs.vars[local] = validState()
		return
	}
	bs.vars[local] = cur
}

// createLoan records a loan as active under a caller-assigned, stable id
// (see BorrowState's doc comment on loan identity).
func (bs *BorrowState) createLoan(id LoanId, place Place, isMut bool, span source.Span) {
	bs.loans[id] = Loan{ID: id, Place: place, IsMut: isMut, Span: span}
}

// endLoan removes a single loan.
func (bs *BorrowState) endLoan(id LoanId) {
	delete(bs.loans, id)
}

// endLoansOf ends every active loan whose borrowed place conflicts with
// place (§4.2 loan-end policy (a): a write to a conflicting place ends the
// loans it conflicts with).
func (bs *BorrowState) endLoansOf(place Place) {
	for id, loan := range bs.loans {
		if loan.Place.Conflicts(place) {
			delete(bs.loans, id)
		}
	}
}

// endLoansRootedAt ends every loan rooted at local, for §4.2's
// StorageDead policy: the root binding's storage becoming dead ends all
// loans of any place rooted at it.
func (bs *BorrowState) endLoansRootedAt(local mir.LocalID) {
	for id, loan := range bs.loans {
		if loan.Place.Local == local {
			delete(bs.loans, id)
		}
	}
}

// conflicting returns every active loan whose place conflicts with place.
func (bs *BorrowState) conflicting(place Place) []Loan {
	var out []Loan
	for _, loan := range bs.loans {
		if loan.Place.Conflicts(place) {
			out = append(out, loan)
		}
	}
	return out
}
