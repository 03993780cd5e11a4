package borrowck

import (
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// firstConflict returns the conflicting loan the error should cite: the
// one with the smallest LoanId, so reporting is deterministic regardless
// of map iteration order.
func firstConflict(loans []Loan) Loan {
	best := loans[0]
	for _, l := range loans[1:] {
		if l.ID < best.ID {
			best = l
		}
	}
	return best
}

func firstExclusiveConflict(loans []Loan) (Loan, bool) {
	var best Loan
	found := false
	for _, l := range loans {
		if !l.IsMut {
			continue
		}
		if !found || l.ID < best.ID {
			best = l
			found = true
		}
	}
	return best, found
}

// moveConflict reports whether reading place would observe a moved value.
// A fully Moved root always conflicts. A PartiallyMoved root conflicts when
// place reads the whole variable (S5: `use(p)` after `p.a` was moved) or
// reads exactly the moved field again; reading a different, still-valid
// field does not conflict.
func moveConflict(v VarState, place Place) (source.Span, bool) {
	switch v.Kind {
	case VarMoved:
		return v.MovedAt, true
	case VarPartiallyMoved:
		if place.Path == "" {
			_, span := smallestMovedField(v.MovedFields)
			return span, true
		}
		if field, ok := place.singleFieldProjection(); ok {
			if span, moved := v.MovedFields[field]; moved {
				return span, true
			}
		}
	}
	return source.Span{}, false
}

// canRead implements §4.2's can_read: fail UseAfterMove if the root (or,
// for a partially moved root, the specific field) is moved, fail
// UseWhileMutablyBorrowed if any conflicting loan is exclusive.
func (bs *BorrowState) canRead(place Place, span source.Span) *BorrowError {
	if movedAt, conflict := moveConflict(bs.get(place.Local), place); conflict {
		err := errUseAfterMove(place, span, movedAt)
		return &err
	}
	if loan, ok := firstExclusiveConflict(bs.conflicting(place)); ok {
		err := errUseWhileMutablyBorrowed(place, span, loan)
		return &err
	}
	return nil
}

// canWrite implements §4.2's can_write: a write forbids writing through a
// borrowed place, but never rejects the write on move-state grounds alone —
// assigning a fresh value is exactly how a moved or partially moved
// variable gets restored to Valid (§8 boundaries 8 and 9), so can_write must
// let that write through rather than flag it as a use of the old value.
func (bs *BorrowState) canWrite(place Place, span source.Span) *BorrowError {
	if conflicts := bs.conflicting(place); len(conflicts) > 0 {
		err := errWriteWhileBorrowed(place, span, firstConflict(conflicts))
		return &err
	}
	return nil
}

// canBorrow implements §4.2's can_borrow (shared): fail UseAfterMove, then
// fail BorrowWhileMutablyBorrowed if any conflicting loan is exclusive.
func (bs *BorrowState) canBorrow(place Place, span source.Span) *BorrowError {
	if movedAt, conflict := moveConflict(bs.get(place.Local), place); conflict {
		err := errUseAfterMove(place, span, movedAt)
		return &err
	}
	if loan, ok := firstExclusiveConflict(bs.conflicting(place)); ok {
		err := errBorrowWhileMutablyBorrowed(place, span, loan)
		return &err
	}
	return nil
}

// canBorrowMut implements §4.2's can_borrow_mut. A new exclusive loan
// conflicts with *any* existing loan on the same place, shared or
// exclusive (aliasing-XOR-mutation forbids two simultaneous loans where
// either is exclusive, and also forbids re-borrowing exclusively over a
// live shared loan) — reported as MutBorrowWhileBorrowed, kept distinct
// from WriteWhileBorrowed, which is reserved for actual assignments
// through a place rather than new-loan creation. Only after that does it
// check that the root binding, when the place has no projections, was
// declared mutable.
func (bs *BorrowState) canBorrowMut(place Place, span source.Span, f *mir.Func, names *symbols.Table) *BorrowError {
	if movedAt, conflict := moveConflict(bs.get(place.Local), place); conflict {
		err := errUseAfterMove(place, span, movedAt)
		return &err
	}
	if conflicts := bs.conflicting(place); len(conflicts) > 0 {
		err := errMutBorrowWhileBorrowed(place, span, firstConflict(conflicts))
		return &err
	}
	if place.Path == "" && !isMutable(place.Local, f, names) {
		err := errBorrowMutOfImmutable(place, span)
		return &err
	}
	return nil
}

func isMutable(local mir.LocalID, f *mir.Func, names *symbols.Table) bool {
	l := f.Local(local)
	if l == nil {
		return false
	}
	if !l.DefId.IsValid() || names == nil {
		// Anonymous temporaries are lowering-introduced, never user-level
		// `&mut` targets reachable from surface syntax; treat them as
		// mutable so they never spuriously trip BorrowMutOfImmutable.
		return true
	}
	return names.IsMutable(l.DefId)
}
