package mir_test

import (
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/source"
	"github.com/wisp-lang/wispc/internal/symbols"
	"github.com/wisp-lang/wispc/internal/types"
)

// sp returns a zero-width span; none of these fixtures care about source
// positions, only about the shapes lowering produces from them.
func sp() source.Span { return source.Span{} }

// buildFunc assembles a single-function hir.Program through the builder,
// with i32 parameters named by paramNames and the given return type. body
// is called with the builder and the parameter DefIds/types already
// declared, and must return the function's body block.
func buildFunc(name string, paramNames []string, retType types.TypeID, mkBody func(b *hir.Builder, params []symbols.DefId) *hir.Block) (*hir.Builder, *hir.Function) {
	b := hir.NewBuilder()
	i32 := b.Types().Builtins.I32

	params := make([]symbols.DefId, len(paramNames))
	hirParams := make([]hir.Param, len(paramNames))
	for i, n := range paramNames {
		id := b.DeclareParam(n, false)
		params[i] = id
		hirParams[i] = hir.Param{DefId: id, Name: n, Type: i32, Span: sp()}
	}

	fnDef := b.DeclareFunction(name)
	fn := &hir.Function{
		DefId:      fnDef,
		Name:       name,
		Params:     hirParams,
		ReturnType: retType,
		Body:       mkBody(b, params),
		Span:       sp(),
	}
	b.AddFunction(fn)
	return b, fn
}
