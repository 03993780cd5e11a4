package mir

import (
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/types"
)

// lowerPlace lowers e to a Place. &place, *expr, assignment targets, and
// field/index access all require a place per §4.1; any other expression
// shape is first materialized into a fresh local so a place always exists.
func (l *funcLowerer) lowerPlace(e *hir.Expr) Place {
	switch e.Kind {
	case hir.ExprVar:
		return Place{Local: l.localFor(e.Var.DefId)}

	case hir.ExprField:
		base := l.lowerPlace(e.Field.Target)
		idx := l.fieldIndex(e.Field.Target.Type, e.Field.FieldName)
		return base.WithField(idx, e.Field.FieldName)

	case hir.ExprIndex:
		base := l.lowerPlace(e.Index.Target)
		idxOp := l.lowerExpr(e.Index.Index)
		return base.WithIndex(idxOp)

	case hir.ExprDeref:
		base := l.lowerPlace(e.Deref.Target)
		return base.WithDeref()

	default:
		op := l.lowerExpr(e)
		tmp := l.newTemp(e.Type, "place", e.Span)
		l.emit(Assign(Place{Local: tmp}, UseRValue(op)))
		return Place{Local: tmp}
	}
}

// fieldIndex resolves a field's positional index within its struct by
// matching fieldName against the struct declaration's ordered field list.
// Field order is positional and stable across the compile (§4.1), so the
// index found here agrees with the index layout.NewStruct assigned.
func (l *funcLowerer) fieldIndex(structType types.TypeID, fieldName string) int {
	t := l.prog.Types.Lookup(structType)
	for _, sd := range l.prog.Structs {
		if sd.DefId != t.Def {
			continue
		}
		for i, f := range sd.Fields {
			if f.Name == fieldName {
				return i
			}
		}
	}
	return 0
}
