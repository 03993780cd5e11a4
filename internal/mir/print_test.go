package mir_test

import (
	"strings"
	"testing"

	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/types"
)

// TestPrintIsDeterministic checks two Print calls over the same function
// produce byte-identical output, as §6's golden-test oracle requires.
func TestPrintIsDeterministic(t *testing.T) {
	tys := types.NewInterner()
	f := &mir.Func{
		Name:       "add",
		ReturnType: tys.Builtins.I32,
		ParamCount: 2,
		Locals: []mir.Local{
			{ID: 0, Type: tys.Builtins.I32},
			{ID: 1, Name: "a", Type: tys.Builtins.I32, IsArg: true},
			{ID: 2, Name: "b", Type: tys.Builtins.I32, IsArg: true},
		},
		Blocks: []mir.Block{{
			ID: 0,
			Statements: []mir.Statement{
				mir.Assign(mir.Place{Local: 0}, mir.BinaryOpOf(0,
					mir.CopyOf(mir.Place{Local: 1}, tys.Builtins.I32),
					mir.CopyOf(mir.Place{Local: 2}, tys.Builtins.I32))),
			},
			Term: mir.Terminator{Kind: mir.TermReturn, Return: mir.ReturnTerm{
				HasValue: true,
				Value:    mir.CopyOf(mir.Place{Local: 0}, tys.Builtins.I32),
			}},
		}},
	}

	var first, second strings.Builder
	if err := mir.Print(&first, f, tys); err != nil {
		t.Fatalf("unexpected print error: %v", err)
	}
	if err := mir.Print(&second, f, tys); err != nil {
		t.Fatalf("unexpected print error: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical output across calls, got:\n%s\nvs\n%s", first.String(), second.String())
	}

	out := first.String()
	for _, want := range []string{"fn add(", "-> i32", "_a:", "_b:", "return copy _0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected printed output to contain %q, got:\n%s", want, out)
		}
	}
}

// TestPrintUnterminatedBlock checks a block with no terminator still prints
// without error, using the sentinel the format reserves for it.
func TestPrintUnterminatedBlock(t *testing.T) {
	tys := types.NewInterner()
	f := &mir.Func{
		Name:       "stub",
		ReturnType: tys.Builtins.Unit,
		Blocks:     []mir.Block{{ID: 0}},
	}

	var sb strings.Builder
	if err := mir.Print(&sb, f, tys); err != nil {
		t.Fatalf("unexpected print error: %v", err)
	}
	if !strings.Contains(sb.String(), "<unterminated>") {
		t.Fatalf("expected the unterminated-block sentinel in output, got:\n%s", sb.String())
	}
}
