package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Table is a dense DefId -> Info directory. It stands in for the resolver's
// definition table: the HIR builder populates it as it allocates DefIds, and
// the lowerer and borrow checker consult it read-only.
type Table struct {
	infos []Info // infos[0] is the NoDefId sentinel
}

// NewTable creates an empty Table with the NoDefId sentinel seeded at index 0.
func NewTable() *Table {
	return &Table{infos: []Info{{ID: NoDefId, Kind: DefInvalid}}}
}

// Declare allocates a fresh DefId for the given name/kind and records it.
func (t *Table) Declare(name string, kind DefKind, mutable bool) DefId {
	idx, err := safecast.Conv[uint32](len(t.infos))
	if err != nil {
		panic(fmt.Errorf("def id overflow: %w", err))
	}
	id := DefId(idx)
	t.infos = append(t.infos, Info{ID: id, Name: name, Kind: kind, Mutable: mutable})
	return id
}

// Get returns the Info for id, or the zero Info if id is out of range.
func (t *Table) Get(id DefId) Info {
	if int(id) < 0 || int(id) >= len(t.infos) {
		return Info{}
	}
	return t.infos[id]
}

// Name is a convenience accessor over Get.
func (t *Table) Name(id DefId) string {
	return t.Get(id).Name
}

// IsMutable reports whether id was declared mutable. Only meaningful for
// DefLocal and DefParameter; always false otherwise.
func (t *Table) IsMutable(id DefId) bool {
	return t.Get(id).Mutable
}

// Len returns the number of declarations in the table, including the sentinel.
func (t *Table) Len() int {
	return len(t.infos)
}
