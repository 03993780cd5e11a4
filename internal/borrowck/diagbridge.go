package borrowck

import (
	"github.com/wisp-lang/wispc/internal/diag"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// codeOf maps an ErrorKind onto the diag.Code the front end already reserved
// for borrow-check failures. Check itself never touches diag: this mapping
// exists only for callers (the CLI, snapshots) that want Diagnostic values.
func (k ErrorKind) codeOf() diag.Code {
	switch k {
	case UseAfterMove:
		return diag.SemaUseAfterMove
	case UseWhileMutablyBorrowed:
		return diag.SemaBorrowMove
	case WriteWhileBorrowed:
		return diag.SemaBorrowMutation
	case BorrowWhileMutablyBorrowed, MutBorrowWhileBorrowed:
		return diag.SemaBorrowConflict
	case BorrowMutOfImmutable:
		return diag.SemaBorrowImmutable
	default:
		return diag.SemaError
	}
}

// ToDiagnostic renders a BorrowError as a diag.Diagnostic, attaching the
// secondary move/loan span as a Note when the error kind carries one. Core
// callers keep using the raw []BorrowError from Check; this is for the CLI
// boundary and for snapshotting diagnostics alongside a compiled program.
func (e BorrowError) ToDiagnostic(f *mir.Func, names *symbols.Table) diag.Diagnostic {
	d := diag.NewError(e.Kind.codeOf(), e.Span, e.Message(f, names))
	switch e.Kind {
	case UseAfterMove:
		d = d.WithNote(e.MovedAt, "value moved here")
	case UseWhileMutablyBorrowed, WriteWhileBorrowed, BorrowWhileMutablyBorrowed, MutBorrowWhileBorrowed:
		d = d.WithNote(e.Loan.Span, "borrow occurs here")
	}
	return d
}

// ToBag renders every error in errs into bag, in order. Callers that want
// deduplication or sorting apply it afterward via Bag.Dedup/Bag.Sort.
func ToBag(errs []BorrowError, f *mir.Func, names *symbols.Table, bag *diag.Bag) {
	for _, e := range errs {
		bag.Add(e.ToDiagnostic(f, names))
	}
}
