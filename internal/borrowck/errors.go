package borrowck

import (
	"fmt"

	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// ErrorKind enumerates the exact taxonomy §7 names. The checker reports
// only these six kinds.
type ErrorKind uint8

const (
	UseAfterMove ErrorKind = iota
	UseWhileMutablyBorrowed
	WriteWhileBorrowed
	BorrowWhileMutablyBorrowed
	MutBorrowWhileBorrowed
	BorrowMutOfImmutable
)

func (k ErrorKind) String() string {
	switch k {
	case UseAfterMove:
		return "UseAfterMove"
	case UseWhileMutablyBorrowed:
		return "UseWhileMutablyBorrowed"
	case WriteWhileBorrowed:
		return "WriteWhileBorrowed"
	case BorrowWhileMutablyBorrowed:
		return "BorrowWhileMutablyBorrowed"
	case MutBorrowWhileBorrowed:
		return "MutBorrowWhileBorrowed"
	case BorrowMutOfImmutable:
		return "BorrowMutOfImmutable"
	default:
		return "unknown"
	}
}

// BorrowError is one violation the checker found. Place and Span identify
// the offending use; MovedAt and Loan are the optional secondary span §8's
// S1/S2/S4 scenarios expect ("secondary span at `let t = s`", "secondary at
// `&mut v`"). The core API returns these as plain structured data (§7); a
// renderer (internal/borrowck/diagbridge.go, the CLI) turns them into text.
type BorrowError struct {
	Kind  ErrorKind
	Place Place
	Span  source.Span

	// MovedAt is set for UseAfterMove: the span of the move that invalidated
	// the place.
	MovedAt source.Span

	// Loan is the conflicting loan for the borrow/borrow-mut/write kinds.
	// Zero for UseAfterMove and BorrowMutOfImmutable.
	Loan Loan
}

// Message renders a human-readable summary in the teacher's diagnostic
// phrasing. It is not part of the core's return-value contract (§7 keeps
// that structured); only the diag bridge and debug tooling call it.
func (e BorrowError) Message(f *mir.Func, names *symbols.Table) string {
	place := e.Place.Display(f, names)
	switch e.Kind {
	case UseAfterMove:
		return fmt.Sprintf("use of moved value: `%s`", place)
	case UseWhileMutablyBorrowed:
		return fmt.Sprintf("cannot use `%s` while mutably borrowed", place)
	case WriteWhileBorrowed:
		return fmt.Sprintf("cannot assign to `%s` while borrowed", place)
	case BorrowWhileMutablyBorrowed:
		return fmt.Sprintf("cannot borrow `%s` while mutably borrowed", place)
	case MutBorrowWhileBorrowed:
		return fmt.Sprintf("cannot borrow `%s` as mutable while also borrowed as immutable", place)
	case BorrowMutOfImmutable:
		return fmt.Sprintf("cannot borrow `%s` as mutable, as it is not declared as mutable", place)
	default:
		return fmt.Sprintf("borrow error on `%s`", place)
	}
}

func errUseAfterMove(place Place, span, movedAt source.Span) BorrowError {
	return BorrowError{Kind: UseAfterMove, Place: place, Span: span, MovedAt: movedAt}
}

func errUseWhileMutablyBorrowed(place Place, span source.Span, loan Loan) BorrowError {
	return BorrowError{Kind: UseWhileMutablyBorrowed, Place: place, Span: span, Loan: loan}
}

func errWriteWhileBorrowed(place Place, span source.Span, loan Loan) BorrowError {
	return BorrowError{Kind: WriteWhileBorrowed, Place: place, Span: span, Loan: loan}
}

func errBorrowWhileMutablyBorrowed(place Place, span source.Span, loan Loan) BorrowError {
	return BorrowError{Kind: BorrowWhileMutablyBorrowed, Place: place, Span: span, Loan: loan}
}

func errMutBorrowWhileBorrowed(place Place, span source.Span, loan Loan) BorrowError {
	return BorrowError{Kind: MutBorrowWhileBorrowed, Place: place, Span: span, Loan: loan}
}

func errBorrowMutOfImmutable(place Place, span source.Span) BorrowError {
	return BorrowError{Kind: BorrowMutOfImmutable, Place: place, Span: span}
}
