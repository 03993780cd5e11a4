package borrowck

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
)

func testFunc(argCount, localCount int) *mir.Func {
	f := &mir.Func{ParamCount: argCount}
	for i := 0; i < argCount; i++ {
		f.Locals = append(f.Locals, mir.Local{ID: mir.LocalID(i), IsArg: true})
	}
	for i := argCount; i < localCount; i++ {
		f.Locals = append(f.Locals, mir.Local{ID: mir.LocalID(i)})
	}
	return f
}

func TestNewBorrowStateSeedsArgsValid(t *testing.T) {
	f := testFunc(1, 2)
	bs := newBorrowState(f)
	if got := bs.get(0).Kind; got != VarValid {
		t.Errorf("arg local state = %v, want VarValid", got)
	}
	if got := bs.get(1).Kind; got != VarUninitialized {
		t.Errorf("non-arg local state = %v, want VarUninitialized", got)
	}
}

func TestMoveWholeThenReinitialize(t *testing.T) {
	f := testFunc(0, 1)
	bs := newBorrowState(f)
	bs.initialize(0)
	place := PlaceOf(0)

	bs.moveWhole(place, source.Span{Start: 1, End: 2})
	if got := bs.get(0).Kind; got != VarMoved {
		t.Fatalf("after move: state = %v, want VarMoved", got)
	}

	// §8 boundary 8: reassigning a moved variable restores it to Valid.
	bs.initialize(0)
	if got := bs.get(0).Kind; got != VarValid {
		t.Errorf("after reassignment: state = %v, want VarValid", got)
	}
}

func TestPartialMoveThenReassignAllFields(t *testing.T) {
	f := testFunc(0, 1)
	bs := newBorrowState(f)
	bs.initialize(0)

	bs.moveField(0, "a", source.Span{Start: 1, End: 2})
	if got := bs.get(0).Kind; got != VarPartiallyMoved {
		t.Fatalf("after moving one field: state = %v, want VarPartiallyMoved", got)
	}
	bs.moveField(0, "b", source.Span{Start: 3, End: 4})
	if n := len(bs.get(0).MovedFields); n != 2 {
		t.Fatalf("moved field count = %d, want 2", n)
	}

	// §8 boundary 9: reassigning every moved field restores Valid.
	bs.reassignField(0, "a")
	if got := bs.get(0).Kind; got != VarPartiallyMoved {
		t.Fatalf("after reassigning one of two fields: state = %v, want VarPartiallyMoved", got)
	}
	bs.reassignField(0, "b")
	if got := bs.get(0).Kind; got != VarValid {
		t.Errorf("after reassigning every moved field: state = %v, want VarValid", got)
	}
}

func TestLoanConflictsAndEnd(t *testing.T) {
	f := testFunc(0, 1)
	bs := newBorrowState(f)
	bs.initialize(0)
	place := PlaceOf(0)

	bs.createLoan(1, place, true, source.Span{Start: 1, End: 2})
	conflicts := bs.conflicting(place.WithField("x"))
	if len(conflicts) != 1 {
		t.Fatalf("expected the whole-variable loan to conflict with a field projection, got %d conflicts", len(conflicts))
	}

	bs.endLoansOf(place)
	if len(bs.conflicting(place)) != 0 {
		t.Error("expected endLoansOf to remove the conflicting loan")
	}
}

func TestEndLoansRootedAt(t *testing.T) {
	f := testFunc(0, 1)
	bs := newBorrowState(f)
	bs.initialize(0)
	place := PlaceOf(0)

	bs.createLoan(1, place, false, source.Span{})
	bs.endLoansRootedAt(0)
	if len(bs.conflicting(place)) != 0 {
		t.Error("expected endLoansRootedAt to remove every loan rooted at the local")
	}
}

func TestBorrowStateEqual(t *testing.T) {
	f := testFunc(0, 1)
	a := newBorrowState(f)
	b := newBorrowState(f)
	if !a.equal(b) {
		t.Fatal("two freshly built states for the same function should compare equal")
	}
	a.moveWhole(PlaceOf(0), source.Span{Start: 5})
	if a.equal(b) {
		t.Error("states should differ after one of them moves a variable")
	}
}
