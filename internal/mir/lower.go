package mir

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/layout"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// LowerProgram lowers a fully resolved, fully typed hir.Program into MIR.
// The input is assumed well-typed by contract (§6): lowering panics on an
// internal invariant violation rather than returning a user-facing error.
func LowerProgram(prog *hir.Program) *Program {
	out := NewProgram(prog.Defs, prog.Types)

	for _, sd := range prog.Structs {
		out.Structs = append(out.Structs, StructLayout{
			DefId:  sd.DefId,
			Name:   sd.Name,
			Layout: structLayoutOf(prog.Types, sd),
		})
	}
	for _, ed := range prog.Enums {
		out.Enums = append(out.Enums, EnumLayout{
			DefId:  ed.DefId,
			Name:   ed.Name,
			Layout: enumLayoutOf(ed),
		})
	}
	for _, ef := range prog.ExternFunctions {
		out.ExternFunctions = append(out.ExternFunctions, &ExternFunc{
			DefId:      ef.DefId,
			Name:       ef.Name,
			Params:     ef.Params,
			ReturnType: ef.ReturnType,
		})
	}
	for _, es := range prog.ExternStatics {
		out.ExternStatics = append(out.ExternStatics, &ExternStatic{
			DefId: es.DefId,
			Name:  es.Name,
			Type:  es.Type,
		})
	}

	nextID := FuncID(0)
	for _, fn := range prog.Functions {
		id := nextID
		nextID++
		fl := &funcLowerer{
			prog:       prog,
			out:        out,
			defToLocal: make(map[symbols.DefId]LocalID),
		}
		out.AddFunc(fl.lowerFunc(id, fn))
	}

	return out
}

func structLayoutOf(tys *types.Interner, sd *hir.StructDef) layout.Struct {
	fields := make([]struct {
		Name string
		Type types.TypeID
	}, len(sd.Fields))
	for i, f := range sd.Fields {
		fields[i] = struct {
			Name string
			Type types.TypeID
		}{Name: f.Name, Type: f.Type}
	}
	return layout.NewStruct(tys, sd.Name, fields)
}

func enumLayoutOf(ed *hir.EnumDef) layout.Enum {
	variants := make([]layout.Variant, len(ed.Variants))
	for i, v := range ed.Variants {
		variants[i] = layout.Variant{Name: v.Name, Fields: v.Fields}
	}
	return layout.Enum{Variants: variants}
}

// loopCtx records where break/continue would jump. Surface break/continue
// are not part of the source excerpt this lowers (§9 open question 4):
// lowerWhile and lowerFor push and pop an entry for each loop, but no
// statement reads the stack.
type loopCtx struct {
	breakTarget    BlockID
	continueTarget BlockID
}

// funcLowerer holds the per-function state a single builder pass over an
// hir.Function needs: the block under construction, the def-to-local
// mapping, and the loop-context stack for nested loops.
type funcLowerer struct {
	prog *hir.Program
	out  *Program

	f   *Func
	cur BlockID

	defToLocal map[symbols.DefId]LocalID
	nextTemp   uint32
	loopStack  []loopCtx
}

func (l *funcLowerer) lowerFunc(id FuncID, fn *hir.Function) *Func {
	l.f = &Func{
		ID:         id,
		DefId:      fn.DefId,
		Name:       fn.Name,
		Span:       fn.Span,
		ReturnType: fn.ReturnType,
	}

	// Local 0 is conventionally the return slot.
	l.addLocal(symbols.NoDefId, "__ret", fn.ReturnType, false, fn.Span)

	l.f.ParamCount = len(fn.Params)
	for _, p := range fn.Params {
		id := l.addLocal(p.DefId, p.Name, p.Type, true, p.Span)
		l.defToLocal[p.DefId] = id
	}

	entry := l.newBlock()
	l.f.Entry = entry
	l.cur = entry

	if fn.Body != nil {
		result := l.lowerBlockInto(fn.Body, Place{Local: l.f.Locals[0].ID})
		if !l.curBlock().Terminated() {
			l.setTerm(Terminator{Kind: TermReturn, Return: ReturnTerm{
				HasValue: result.valid,
				Value:    result.op,
			}})
		}
	} else if !l.curBlock().Terminated() {
		l.setTerm(Terminator{Kind: TermReturn})
	}

	for i := range l.f.Blocks {
		if l.f.Blocks[i].Term.Kind == TermNone {
			l.f.Blocks[i].Term.Kind = TermUnreachable
		}
	}

	return l.f
}

func (l *funcLowerer) curBlock() *Block {
	idx := int(l.cur)
	if l.f == nil || idx < 0 || idx >= len(l.f.Blocks) {
		return nil
	}
	return &l.f.Blocks[idx]
}

func (l *funcLowerer) newBlock() BlockID {
	raw, err := safecast.Conv[int32](len(l.f.Blocks))
	if err != nil {
		panic(fmt.Errorf("mir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	l.f.Blocks = append(l.f.Blocks, Block{ID: id, Term: Terminator{Kind: TermNone}})
	return id
}

func (l *funcLowerer) startBlock(id BlockID) {
	l.cur = id
}

func (l *funcLowerer) setTerm(t Terminator) {
	b := l.curBlock()
	if b == nil || b.Terminated() {
		return
	}
	b.Term = t
}

func (l *funcLowerer) emit(st Statement) {
	b := l.curBlock()
	if b == nil || b.Terminated() {
		return
	}
	b.Statements = append(b.Statements, st)
}

func (l *funcLowerer) addLocal(def symbols.DefId, name string, ty types.TypeID, isArg bool, span source.Span) LocalID {
	raw, err := safecast.Conv[int32](len(l.f.Locals))
	if err != nil {
		panic(fmt.Errorf("mir: local id overflow: %w", err))
	}
	id := LocalID(raw)
	l.f.Locals = append(l.f.Locals, Local{ID: id, DefId: def, Name: name, Type: ty, IsArg: isArg, Span: span})
	if def.IsValid() {
		l.defToLocal[def] = id
	}
	return id
}

func (l *funcLowerer) newTemp(ty types.TypeID, hint string, span source.Span) LocalID {
	id := l.addLocal(symbols.NoDefId, fmt.Sprintf("%%%s%d", hint, l.nextTemp), ty, false, span)
	l.nextTemp++
	return id
}

func (l *funcLowerer) localFor(def symbols.DefId) LocalID {
	if id, ok := l.defToLocal[def]; ok {
		return id
	}
	return NoLocalID
}

func (l *funcLowerer) isCopy(ty types.TypeID) bool {
	return l.prog.Types.IsCopy(ty)
}

// operandFor turns a place into a Copy or Move operand per the type's
// Copy capability (§4.1): this is the single authority the checker defers
// to.
func (l *funcLowerer) operandFor(place Place, ty types.TypeID) Operand {
	if l.isCopy(ty) {
		return CopyOf(place, ty)
	}
	return MoveOf(place, ty)
}
