package mir_test

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/mir"
)

func TestPlaceConflictsSameRootNoProjections(t *testing.T) {
	a := mir.Place{Local: 1}
	b := mir.Place{Local: 1}
	if !a.Conflicts(b) {
		t.Fatalf("expected bare same-local places to conflict")
	}
}

func TestPlaceConflictsDifferentRoots(t *testing.T) {
	a := mir.Place{Local: 1}
	b := mir.Place{Local: 2}
	if a.Conflicts(b) {
		t.Fatalf("places on different locals must never conflict")
	}
}

func TestPlaceConflictsFieldVsWholeLocal(t *testing.T) {
	whole := mir.Place{Local: 1}
	field := whole.WithField(0, "x")
	if !whole.Conflicts(field) {
		t.Fatalf("a field projection must conflict with its whole-local owner")
	}
	if !field.Conflicts(whole) {
		t.Fatalf("Conflicts must be symmetric")
	}
}

func TestPlaceConflictsDisjointFields(t *testing.T) {
	base := mir.Place{Local: 1}
	fx := base.WithField(0, "x")
	fy := base.WithField(1, "y")
	if fx.Conflicts(fy) {
		t.Fatalf("distinct fields of the same struct must not conflict")
	}
}

func TestPlaceIsPrefixOf(t *testing.T) {
	base := mir.Place{Local: 1}
	nested := base.WithField(0, "x").WithDeref()
	if !base.IsPrefixOf(nested) {
		t.Fatalf("bare local must be a prefix of any of its projections")
	}
	if nested.IsPrefixOf(base) {
		t.Fatalf("a deeper place is never a prefix of a shallower one")
	}
}

func TestPlaceWithIndexConflictsRegardlessOfIndexValue(t *testing.T) {
	base := mir.Place{Local: 1}
	i0 := base.WithIndex(mir.ConstOperand(mir.Const{Kind: mir.ConstInt, IntValue: 0}))
	i1 := base.WithIndex(mir.ConstOperand(mir.Const{Kind: mir.ConstInt, IntValue: 1}))
	if !i0.Conflicts(i1) {
		t.Fatalf("two index projections on the same root are treated as potentially conflicting")
	}
}

func TestNoLocalPlaceIsInvalid(t *testing.T) {
	if (mir.Place{Local: mir.NoLocalID}).IsValid() {
		t.Fatalf("a place rooted at NoLocalID must report invalid")
	}
	if !(mir.Place{Local: 0}).IsValid() {
		t.Fatalf("a place rooted at local 0 must report valid")
	}
}
