package mir

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wisp-lang/wispc/internal/types"
)

// Print writes the deterministic, stable textual form of a function that
// §6 names as part of the external contract and the test oracle for
// golden tests: `fn name(params) -> ty { locals: …; bbN: stmts; terminator }`.
func Print(w io.Writer, f *Func, tys *types.Interner) error {
	fmt.Fprintf(w, "fn %s(%s) -> %s {\n", f.Name, formatParams(f, tys), typeStr(tys, f.ReturnType))

	fmt.Fprintf(w, "  locals:\n")
	nameWidth := 0
	for _, l := range f.Locals {
		if w := runewidth.StringWidth(localName(l)); w > nameWidth {
			nameWidth = w
		}
	}
	for _, l := range f.Locals {
		name := localName(l)
		pad := strings.Repeat(" ", nameWidth-runewidth.StringWidth(name))
		arg := ""
		if l.IsArg {
			arg = " arg"
		}
		fmt.Fprintf(w, "    %s:%s %s%s\n", name, pad, typeStr(tys, l.Type), arg)
	}

	for _, b := range f.Blocks {
		fmt.Fprintf(w, "  bb%d:\n", b.ID)
		for _, st := range b.Statements {
			fmt.Fprintf(w, "    %s\n", formatStatement(f, tys, st))
		}
		fmt.Fprintf(w, "    %s\n", formatTerminator(f, tys, b.Term))
	}

	fmt.Fprintf(w, "}\n")
	return nil
}

func formatParams(f *Func, tys *types.Interner) string {
	parts := make([]string, 0, f.ParamCount)
	for i := 1; i <= f.ParamCount && i < len(f.Locals); i++ {
		l := f.Locals[i]
		parts = append(parts, fmt.Sprintf("%s: %s", localName(l), typeStr(tys, l.Type)))
	}
	return strings.Join(parts, ", ")
}

func localName(l Local) string {
	if l.Name != "" {
		return "_" + l.Name
	}
	return fmt.Sprintf("_%d", l.ID)
}

func typeStr(tys *types.Interner, id types.TypeID) string {
	if id == types.NoTypeID {
		return "<none>"
	}
	t := tys.Lookup(id)
	switch t.Kind {
	case types.KindI8:
		return "i8"
	case types.KindI16:
		return "i16"
	case types.KindI32:
		return "i32"
	case types.KindI64:
		return "i64"
	case types.KindU8:
		return "u8"
	case types.KindU16:
		return "u16"
	case types.KindU32:
		return "u32"
	case types.KindU64:
		return "u64"
	case types.KindF32:
		return "f32"
	case types.KindF64:
		return "f64"
	case types.KindBool:
		return "bool"
	case types.KindChar:
		return "char"
	case types.KindStr:
		return "str"
	case types.KindUnit:
		return "()"
	case types.KindRef:
		if t.RefIsMut {
			return "&mut " + typeStr(tys, t.RefInner)
		}
		return "&" + typeStr(tys, t.RefInner)
	case types.KindStruct:
		return fmt.Sprintf("struct#%d", t.Def)
	case types.KindEnum:
		return fmt.Sprintf("enum#%d", t.Def)
	case types.KindTypeParam:
		return t.ParamName
	default:
		return "?"
	}
}

func placeStr(p Place) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "_%d", p.Local)
	for _, proj := range p.Projs {
		switch proj.Kind {
		case ProjField:
			fmt.Fprintf(&sb, ".%s", proj.FieldName)
		case ProjDeref:
			sb.WriteString(".*")
		case ProjIndex:
			if proj.IndexOperand != nil {
				fmt.Fprintf(&sb, "[%s]", operandStr(*proj.IndexOperand))
			} else {
				sb.WriteString("[?]")
			}
		}
	}
	return sb.String()
}

func operandStr(op Operand) string {
	switch op.Kind {
	case OperandCopy:
		return "copy " + placeStr(op.Place)
	case OperandMove:
		return "move " + placeStr(op.Place)
	case OperandConstant:
		return constStr(op.Const)
	default:
		return "?"
	}
}

func constStr(c Const) string {
	switch c.Kind {
	case ConstInt:
		return fmt.Sprintf("%d", c.IntValue)
	case ConstFloat:
		return fmt.Sprintf("%g", c.FloatValue)
	case ConstBool:
		return fmt.Sprintf("%t", c.BoolValue)
	case ConstStr:
		return fmt.Sprintf("%q", c.StrValue)
	case ConstUnit:
		return "()"
	case ConstFuncRef:
		return "fn " + c.Name
	case ConstExternStatic:
		return "extern " + c.Name
	case ConstGenericFuncRef:
		return "fn " + c.Name + "<...>"
	case ConstTraitMethod:
		return "traitmethod " + c.Name
	default:
		return "?"
	}
}

func formatStatement(f *Func, tys *types.Interner, st Statement) string {
	switch st.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = %s", placeStr(st.Assign.Place), rvalueStr(st.Assign.RValue))
	case StmtStorageLive:
		return fmt.Sprintf("StorageLive(_%d)", st.StorageLive)
	case StmtStorageDead:
		return fmt.Sprintf("StorageDead(_%d)", st.StorageDead)
	case StmtNop:
		return "nop"
	default:
		return "?"
	}
}

func rvalueStr(rv RValue) string {
	switch rv.Kind {
	case RValueUse:
		return operandStr(rv.Use)
	case RValueRef:
		if rv.Ref.IsMut {
			return "&mut " + placeStr(rv.Ref.Place)
		}
		return "&" + placeStr(rv.Ref.Place)
	case RValueBinaryOp:
		return fmt.Sprintf("%s %s %s", operandStr(rv.BinaryOp.Left), rv.BinaryOp.Op, operandStr(rv.BinaryOp.Right))
	case RValueUnaryOp:
		return fmt.Sprintf("unop %s", operandStr(rv.UnaryOp.Operand))
	case RValueAggregate:
		ops := make([]string, len(rv.Aggregate.Operands))
		for i, op := range rv.Aggregate.Operands {
			ops[i] = operandStr(op)
		}
		return fmt.Sprintf("%s(%s)", aggregateKindStr(rv.Aggregate.Kind), strings.Join(ops, ", "))
	case RValueDiscriminant:
		return fmt.Sprintf("discriminant(%s)", placeStr(rv.Discriminant))
	case RValueCast:
		return fmt.Sprintf("%s as t%d", operandStr(rv.Cast.Operand), rv.Cast.TargetType)
	default:
		return "?"
	}
}

func aggregateKindStr(k AggregateKind) string {
	switch k {
	case AggregateTuple:
		return "Tuple"
	case AggregateArray:
		return "Array"
	case AggregateStruct:
		return "Struct"
	case AggregateEnum:
		return "Enum"
	default:
		return "?"
	}
}

func formatTerminator(f *Func, tys *types.Interner, t Terminator) string {
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto -> bb%d", t.Goto.Target)
	case TermSwitchInt:
		parts := make([]string, len(t.SwitchInt.Targets))
		for i, c := range t.SwitchInt.Targets {
			parts[i] = fmt.Sprintf("%d: bb%d", c.Value, c.Target)
		}
		return fmt.Sprintf("switchInt(%s) -> [%s, otherwise: bb%d]",
			operandStr(t.SwitchInt.Discr), strings.Join(parts, ", "), t.SwitchInt.Otherwise)
	case TermReturn:
		if t.Return.HasValue {
			return fmt.Sprintf("return %s", operandStr(t.Return.Value))
		}
		return "return"
	case TermCall:
		args := make([]string, len(t.Call.Args))
		for i, a := range t.Call.Args {
			args[i] = operandStr(a)
		}
		return fmt.Sprintf("_%d = call %s(%s) -> bb%d", t.Call.Destination, operandStr(t.Call.Func), strings.Join(args, ", "), t.Call.Target)
	case TermUnreachable:
		return "unreachable"
	default:
		return "<unterminated>"
	}
}
