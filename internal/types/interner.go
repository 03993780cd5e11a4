package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/wisp-lang/wispc/internal/symbols"
)

// Builtins holds the TypeID of every primitive type, interned once at
// Interner construction so lowering never re-interns a scalar.
type Builtins struct {
	I8, I16, I32, I64 TypeID
	U8, U16, U32, U64 TypeID
	F32, F64          TypeID
	Bool              TypeID
	Char              TypeID
	Str               TypeID
	Unit              TypeID
}

// typeKey is the structural dedup key: two Type values with the same key are
// the same type, regardless of which call site interned them first.
type typeKey struct {
	kind      Kind
	refIsMut  bool
	refInner  TypeID
	def       symbols.DefId
	paramDef  symbols.DefId
	paramName string
}

func keyOf(t Type) typeKey {
	return typeKey{
		kind:      t.Kind,
		refIsMut:  t.RefIsMut,
		refInner:  t.RefInner,
		def:       t.Def,
		paramDef:  t.ParamDef,
		paramName: t.ParamName,
	}
}

// Interner deduplicates Type values structurally and assigns each a dense
// TypeID, mirroring how the MIR program interns places, locals, and constants.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	Builtins Builtins

	// copyTypes records nominal (struct/enum) types explicitly marked Copy.
	// Nothing in this closed type model currently allows surface syntax to
	// set this, but IsCopy consults it so a future front end can widen the
	// Copy set without touching the checker.
	copyTypes map[TypeID]bool
}

// NewInterner creates an Interner with the sentinel at index 0 (KindInvalid)
// and every primitive type pre-interned into Builtins.
func NewInterner() *Interner {
	in := &Interner{
		types:     []Type{{Kind: KindInvalid}},
		index:     make(map[typeKey]TypeID),
		copyTypes: make(map[TypeID]bool),
	}
	in.index[keyOf(Type{Kind: KindInvalid})] = NoTypeID

	in.Builtins = Builtins{
		I8:   in.Intern(Type{Kind: KindI8}),
		I16:  in.Intern(Type{Kind: KindI16}),
		I32:  in.Intern(Type{Kind: KindI32}),
		I64:  in.Intern(Type{Kind: KindI64}),
		U8:   in.Intern(Type{Kind: KindU8}),
		U16:  in.Intern(Type{Kind: KindU16}),
		U32:  in.Intern(Type{Kind: KindU32}),
		U64:  in.Intern(Type{Kind: KindU64}),
		F32:  in.Intern(Type{Kind: KindF32}),
		F64:  in.Intern(Type{Kind: KindF64}),
		Bool: in.Intern(Type{Kind: KindBool}),
		Char: in.Intern(Type{Kind: KindChar}),
		Str:  in.Intern(Type{Kind: KindStr}),
		Unit: in.Intern(Type{Kind: KindUnit}),
	}
	return in
}

// Intern inserts t if not already present and returns its TypeID.
func (in *Interner) Intern(t Type) TypeID {
	key := keyOf(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	idx, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("type id overflow: %w", err))
	}
	id := TypeID(idx)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the Type for id.
func (in *Interner) Lookup(id TypeID) Type {
	return in.types[id]
}

// MarkCopyType records a nominal type as Copy despite its default classification.
func (in *Interner) MarkCopyType(id TypeID) {
	in.copyTypes[id] = true
}

// IsCopy implements the type model's copy capability predicate (§4.1): it is
// the single place the lowerer consults to choose Operand::Copy vs
// Operand::Move, and the borrow checker never re-derives it.
//
//   - Scalars, bool, and char are Copy.
//   - str is not Copy (it is a fat pointer to owned/borrowed bytes).
//   - Ref{is_mut: false} (shared reference) is Copy; Ref{is_mut: true} is not.
//   - Unit is Copy (it carries no data to alias).
//   - Struct/Enum are not Copy by default, unless explicitly marked via
//     MarkCopyType.
//   - TypeParam is conservatively not Copy: without monomorphization info the
//     lowerer cannot know the concrete type's capability.
func (in *Interner) IsCopy(id TypeID) bool {
	if in.copyTypes[id] {
		return true
	}
	t := in.Lookup(id)
	switch t.Kind {
	case KindI8, KindI16, KindI32, KindI64,
		KindU8, KindU16, KindU32, KindU64,
		KindF32, KindF64, KindBool, KindChar, KindUnit:
		return true
	case KindRef:
		return !t.RefIsMut
	default:
		return false
	}
}
