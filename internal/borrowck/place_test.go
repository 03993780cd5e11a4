package borrowck

import (
	"testing"

	"github.com/wisp-lang/wispc/internal/mir"
)

func TestPlaceConflicts(t *testing.T) {
	v := mir.LocalID(1)
	w := mir.LocalID(2)

	whole := PlaceOf(v)
	a := whole.WithField("a")
	b := whole.WithField("b")
	aDeref := a.WithDeref()

	cases := []struct {
		name     string
		p, q     Place
		conflict bool
	}{
		{"same whole", whole, whole, true},
		{"whole vs field", whole, a, true},
		{"field vs whole", a, whole, true},
		{"field vs same field", a, a, true},
		{"field vs sibling field", a, b, false},
		{"field vs field-then-deref", a, aDeref, true},
		{"different locals", whole, PlaceOf(w), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.p.Conflicts(c.q); got != c.conflict {
				t.Errorf("Conflicts(%+v, %+v) = %v, want %v", c.p, c.q, got, c.conflict)
			}
		})
	}
}

func TestPlaceIsPrefixOf(t *testing.T) {
	v := mir.LocalID(1)
	whole := PlaceOf(v)
	a := whole.WithField("a")

	if !whole.IsPrefixOf(a) {
		t.Error("whole should be a prefix of a field projection of it")
	}
	if a.IsPrefixOf(whole) {
		t.Error("a field projection should not be a prefix of the whole place")
	}
}

func TestSingleFieldProjection(t *testing.T) {
	v := mir.LocalID(1)
	whole := PlaceOf(v)
	a := whole.WithField("a")
	aDeref := a.WithDeref()
	ab := whole.WithField("a").WithField("b")

	if name, ok := whole.singleFieldProjection(); ok {
		t.Errorf("whole place should not parse as a single field projection, got %q", name)
	}
	if name, ok := a.singleFieldProjection(); !ok || name != "a" {
		t.Errorf("a.singleFieldProjection() = %q, %v, want \"a\", true", name, ok)
	}
	if _, ok := aDeref.singleFieldProjection(); ok {
		t.Error("a field followed by a deref should not parse as a single field projection")
	}
	if _, ok := ab.singleFieldProjection(); ok {
		t.Error("two chained field projections should not parse as a single field projection")
	}
}

func TestPlaceDisplay(t *testing.T) {
	f := &mir.Func{Locals: []mir.Local{{ID: 0, Name: "%tmp0"}}}
	p := PlaceOf(0).WithField("x").WithDeref()
	got := p.Display(f, nil)
	want := "%tmp0.x.*"
	if got != want {
		t.Errorf("Display() = %q, want %q", got, want)
	}
}
