// Package borrowck walks a lowered mir.Func and rejects programs that
// violate aliasing-XOR-mutation discipline: use after move, writes through
// a live borrow, and overlapping shared/exclusive loans.
package borrowck

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// LoanId identifies a single active borrow, allocated monotonically within
// one Check call.
type LoanId uint32

// NoLoanId is never a valid loan.
const NoLoanId LoanId = 0

// Place is a checker-level place: a root local rooted at the MIR local
// table (every local, named or anonymous temporary, is a variable the
// checker must track state for) plus a path of projections. It is
// deliberately a distinct type from mir.Place: mir.Place's Index
// projection carries a pointer to the indexing operand, which the checker
// has no use for and which would make places awkward to use as map keys.
type Place struct {
	Local mir.LocalID
	Path  string // interned projection path, comparable and hashable
}

// NoPlace is rooted at mir.NoLocalID; it never names a real local. It is not
// the zero Place, which names local 0.
var NoPlace = Place{Local: mir.NoLocalID}

// IsValid reports whether p names a real local.
func (p Place) IsValid() bool {
	return p.Local != mir.NoLocalID
}

// PlaceOf builds the whole-variable place for a local.
func PlaceOf(local mir.LocalID) Place {
	return Place{Local: local}
}

// WithField returns a new place with a Field projection appended.
func (p Place) WithField(name string) Place {
	return Place{Local: p.Local, Path: p.Path + "f:" + name + ";"}
}

// WithDeref returns a new place with a Deref projection appended.
func (p Place) WithDeref() Place {
	return Place{Local: p.Local, Path: p.Path + "d:;"}
}

// WithIndex returns a new place with an Index projection appended.
func (p Place) WithIndex() Place {
	return Place{Local: p.Local, Path: p.Path + "i:;"}
}

// IsPrefixOf reports whether p is a prefix of other: same root local, and
// p's projection path is a leading segment of other's.
func (p Place) IsPrefixOf(other Place) bool {
	if p.Local != other.Local {
		return false
	}
	return strings.HasPrefix(other.Path, p.Path)
}

// Conflicts reports whether two places conflict: they share a root and one
// is a prefix of the other. This subsumes whole-variable conflict and
// field/deref overlap (§3's Conflict definition).
func (p Place) Conflicts(other Place) bool {
	return p.IsPrefixOf(other) || other.IsPrefixOf(p)
}

// FromMIR translates a mir.Place into a checker-level Place, dropping the
// index operand mir.Proj carries but has no use here.
func FromMIR(p mir.Place) Place {
	out := Place{Local: p.Local}
	for _, proj := range p.Projs {
		switch proj.Kind {
		case mir.ProjField:
			out = out.WithField(proj.FieldName)
		case mir.ProjDeref:
			out = out.WithDeref()
		case mir.ProjIndex:
			out = out.WithIndex()
		}
	}
	return out
}

// Display renders p as a dotted path using names, the def table lowering
// populated mir.Local.DefId from, falling back to the MIR local's own
// lowering-assigned name (always present, even for temporaries) when no
// DefId backs the local.
func (p Place) Display(f *mir.Func, names *symbols.Table) string {
	base := localLabel(f, names, p.Local)
	var b strings.Builder
	b.WriteString(base)
	rest := p.Path
	for rest != "" {
		idx := strings.IndexByte(rest, ';')
		if idx < 0 {
			break
		}
		seg := rest[:idx]
		rest = rest[idx+1:]
		switch {
		case strings.HasPrefix(seg, "f:"):
			b.WriteByte('.')
			b.WriteString(seg[2:])
		case seg == "d:":
			b.WriteString(".*")
		case seg == "i:":
			b.WriteString("[_]")
		}
	}
	return b.String()
}

func localLabel(f *mir.Func, names *symbols.Table, id mir.LocalID) string {
	l := f.Local(id)
	if l == nil {
		return fmt.Sprintf("_%d", id)
	}
	if l.DefId.IsValid() && names != nil {
		if name := names.Name(l.DefId); name != "" {
			return name
		}
	}
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("_%d", id)
}

// singleFieldProjection reports whether p's path is exactly one Field
// projection and, if so, that field's name. The checker only tracks
// partial moves at this depth (§9): a place reached through a deref, an
// index, or more than one projection is treated as an access to the whole
// root variable for move-conflict purposes.
func (p Place) singleFieldProjection() (string, bool) {
	if !strings.HasPrefix(p.Path, "f:") {
		return "", false
	}
	rest := p.Path[2:]
	idx := strings.IndexByte(rest, ';')
	if idx < 0 || idx != len(rest)-1 {
		return "", false
	}
	return rest[:idx], true
}

// nextLoanId converts a monotonically increasing loan count into a LoanId,
// guarding against overflow the way every other dense id allocator in this
// module does.
func nextLoanId(count int) LoanId {
	v, err := safecast.Conv[uint32](count)
	if err != nil {
		panic(fmt.Errorf("borrowck: loan id overflow: %w", err))
	}
	return LoanId(v)
}
