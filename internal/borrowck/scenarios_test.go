package borrowck_test

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/borrowck"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/scenarios"
)

func kindsOf(errs []borrowck.BorrowError) []borrowck.ErrorKind {
	out := make([]borrowck.ErrorKind, len(errs))
	for i, e := range errs {
		out[i] = e.Kind
	}
	return out
}

func assertKinds(t *testing.T, errs []borrowck.BorrowError, want ...borrowck.ErrorKind) {
	t.Helper()
	got := kindsOf(errs)
	if len(got) != len(want) {
		t.Fatalf("got %d errors %v, want %d errors %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error %d: got %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func runScenario(t *testing.T, name string) []borrowck.BorrowError {
	t.Helper()
	s, err := scenarios.Lookup(name)
	if err != nil {
		t.Fatalf("scenarios.Lookup(%q): %v", name, err)
	}
	prog := s.Build()
	mp := mir.LowerProgram(prog)
	if len(mp.Funcs) != 1 {
		t.Fatalf("expected exactly one lowered function, got %d", len(mp.Funcs))
	}
	return borrowck.Check(mp.Funcs[0], prog.Defs)
}

func TestScenarioUseAfterMove(t *testing.T) {
	assertKinds(t, runScenario(t, "s1"), borrowck.UseAfterMove)
}

func TestScenarioUseWhileMutablyBorrowed(t *testing.T) {
	assertKinds(t, runScenario(t, "s2"), borrowck.UseWhileMutablyBorrowed)
}

func TestScenarioTwoSharedBorrowsAllowed(t *testing.T) {
	assertKinds(t, runScenario(t, "s3"))
}

func TestScenarioBorrowWhileMutablyBorrowed(t *testing.T) {
	assertKinds(t, runScenario(t, "s4"), borrowck.BorrowWhileMutablyBorrowed)
}

func TestScenarioPartialMove(t *testing.T) {
	assertKinds(t, runScenario(t, "s5"), borrowck.UseAfterMove)
}

func TestScenarioBorrowMutOfImmutable(t *testing.T) {
	assertKinds(t, runScenario(t, "s6"), borrowck.BorrowMutOfImmutable)
}

func TestMutBorrowWhileBorrowed(t *testing.T) {
	assertKinds(t, runScenario(t, "mut-while-shared"), borrowck.MutBorrowWhileBorrowed)
}

func TestWriteWhileBorrowed(t *testing.T) {
	assertKinds(t, runScenario(t, "write-while-borrowed"), borrowck.WriteWhileBorrowed)
}

func TestLookupUnknownScenario(t *testing.T) {
	if _, err := scenarios.Lookup("s7"); err == nil {
		t.Fatal("expected an error for an unknown scenario name")
	}
}
