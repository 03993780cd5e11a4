package symbols

// DefKind classifies what a DefId names.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefFunction
	DefExternFunction
	DefExternStatic
	DefParameter
	DefLocal
	DefStruct
	DefEnum
	DefEnumVariant
	DefField
	DefTypeParam
)

func (k DefKind) String() string {
	switch k {
	case DefFunction:
		return "function"
	case DefExternFunction:
		return "extern function"
	case DefExternStatic:
		return "extern static"
	case DefParameter:
		return "parameter"
	case DefLocal:
		return "local"
	case DefStruct:
		return "struct"
	case DefEnum:
		return "enum"
	case DefEnumVariant:
		return "enum variant"
	case DefField:
		return "field"
	case DefTypeParam:
		return "type parameter"
	default:
		return "invalid"
	}
}

// Info is the fixed metadata the resolver/type checker would have recorded for
// a DefId, and the only part of it the MIR lowerer and borrow checker need:
// its name, its kind, and (for locals and parameters) whether it was declared
// mutable.
type Info struct {
	ID      DefId
	Name    string
	Kind    DefKind
	Module  ModuleId
	Mutable bool
}
