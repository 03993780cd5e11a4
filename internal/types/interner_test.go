package types

import "testing"

func TestInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern(Ref(true, in.Builtins.I32))
	b := in.Intern(Ref(true, in.Builtins.I32))
	if a != b {
		t.Fatalf("expected structurally identical refs to share a TypeID, got %d and %d", a, b)
	}

	c := in.Intern(Ref(false, in.Builtins.I32))
	if a == c {
		t.Fatal("expected mutable and shared refs to intern distinctly")
	}
}

func TestIsCopyScalarsAndSharedRef(t *testing.T) {
	in := NewInterner()
	for name, id := range map[string]TypeID{
		"i32": in.Builtins.I32, "u64": in.Builtins.U64, "f64": in.Builtins.F64,
		"bool": in.Builtins.Bool, "char": in.Builtins.Char, "unit": in.Builtins.Unit,
	} {
		if !in.IsCopy(id) {
			t.Errorf("expected %s to be Copy", name)
		}
	}

	sharedRef := in.Intern(Ref(false, in.Builtins.I32))
	if !in.IsCopy(sharedRef) {
		t.Error("expected shared ref to be Copy")
	}

	mutRef := in.Intern(Ref(true, in.Builtins.I32))
	if in.IsCopy(mutRef) {
		t.Error("expected exclusive ref to not be Copy")
	}

	if in.IsCopy(in.Builtins.Str) {
		t.Error("expected str to not be Copy")
	}
}

func TestIsCopyStructDefaultsFalseUnlessMarked(t *testing.T) {
	in := NewInterner()
	structID := in.Intern(Struct(7))
	if in.IsCopy(structID) {
		t.Fatal("expected struct type to not be Copy by default")
	}
	in.MarkCopyType(structID)
	if !in.IsCopy(structID) {
		t.Fatal("expected struct type to be Copy after MarkCopyType")
	}
}
