package layout

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/types"
)

func TestEnumTotalSizePadsToAlignment(t *testing.T) {
	in := types.NewInterner()
	e := Enum{
		Name: "Either",
		Variants: []Variant{
			{Name: "Left", Fields: []types.TypeID{in.Builtins.I32}},
			{Name: "Right", Fields: []types.TypeID{in.Builtins.Bool}},
		},
	}
	if got, want := e.PayloadOffset(), 8; got != want {
		t.Fatalf("expected payload offset %d, got %d", want, got)
	}
	if got, want := e.MaxPayloadSize(in), 4; got != want {
		t.Fatalf("expected max payload 4, got %d", got)
	}
	if got, want := e.TotalSize(in), 16; got != want {
		t.Fatalf("expected total size 16 (8 disc + 8 padded payload), got %d", got)
	}
}

func TestEnumTotalSizeEmptyPayload(t *testing.T) {
	in := types.NewInterner()
	e := Enum{Variants: []Variant{{Name: "None"}}}
	if got, want := e.TotalSize(in), 8; got != want {
		t.Fatalf("expected total size 8 for a unit-only enum, got %d", got)
	}
}

func TestStructFieldOffsets(t *testing.T) {
	in := types.NewInterner()
	s := NewStruct(in, "Pair", []struct {
		Name string
		Type types.TypeID
	}{
		{Name: "a", Type: in.Builtins.I8},
		{Name: "b", Type: in.Builtins.I64},
	})
	if s.Fields[0].Offset != 0 {
		t.Fatalf("expected field a at offset 0, got %d", s.Fields[0].Offset)
	}
	if s.Fields[1].Offset != 1 {
		t.Fatalf("expected field b at offset 1, got %d", s.Fields[1].Offset)
	}
}
