package source

import "testing"

func TestSpanEmpty(t *testing.T) {
	if !(Span{File: 0, Start: 5, End: 5}).Empty() {
		t.Fatal("expected zero-length span to be empty")
	}
	if (Span{File: 0, Start: 5, End: 6}).Empty() {
		t.Fatal("expected non-zero-length span to not be empty")
	}
}

func TestSpanLen(t *testing.T) {
	s := Span{File: 0, Start: 10, End: 17}
	if got := s.Len(); got != 7 {
		t.Fatalf("expected len 7, got %d", got)
	}
}

func TestSpanString(t *testing.T) {
	s := Span{File: 2, Start: 4, End: 9}
	if got, want := s.String(), "2:4-9"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	want := Span{File: 1, Start: 5, End: 20}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSpanCoverDifferentFilesNoop(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(b); got != a {
		t.Fatalf("expected cover across files to return original span unchanged, got %+v", got)
	}
}
