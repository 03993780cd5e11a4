package source

import "fmt"

// Span is a half-open byte range [Start, End) within a single source file.
// It is carried by every HIR/MIR node and by every BorrowError for
// diagnostics; it never participates in control flow.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span has zero length.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. If the spans
// reference different files, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
