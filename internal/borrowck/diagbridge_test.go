package borrowck

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/diag"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
)

func TestToDiagnosticUseAfterMoveHasMoveNote(t *testing.T) {
	f := &mir.Func{Locals: []mir.Local{{ID: 0, Name: "s"}}}
	e := errUseAfterMove(PlaceOf(0), source.Span{Start: 10, End: 11}, source.Span{Start: 3, End: 4})

	d := e.ToDiagnostic(f, nil)
	if d.Code != diag.SemaUseAfterMove {
		t.Errorf("Code = %v, want SemaUseAfterMove", d.Code)
	}
	if d.Severity != diag.SevError {
		t.Errorf("Severity = %v, want SevError", d.Severity)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span != e.MovedAt {
		t.Errorf("Notes = %+v, want one note at %+v", d.Notes, e.MovedAt)
	}
}

func TestToBagAddsOneDiagnosticPerError(t *testing.T) {
	f := &mir.Func{Locals: []mir.Local{{ID: 0, Name: "v"}}}
	errs := []BorrowError{
		errUseAfterMove(PlaceOf(0), source.Span{Start: 1}, source.Span{}),
		errBorrowMutOfImmutable(PlaceOf(0), source.Span{Start: 2}),
	}

	bag := diag.NewBag(10)
	ToBag(errs, f, nil, bag)
	if bag.Len() != len(errs) {
		t.Errorf("bag.Len() = %d, want %d", bag.Len(), len(errs))
	}
}
