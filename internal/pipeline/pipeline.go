// Package pipeline lowers a program once, then fans borrow-checking out
// across its functions, one goroutine per function, and collects the results back into
// input order so output stays deterministic regardless of scheduling.
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wisp-lang/wispc/internal/borrowck"
	"github.com/wisp-lang/wispc/internal/diag"
	"github.com/wisp-lang/wispc/internal/hir"
	"github.com/wisp-lang/wispc/internal/mir"
	"github.com/wisp-lang/wispc/internal/symbols"
)

// FuncResult is one function's lowering and borrow-check outcome.
type FuncResult struct {
	Name   string
	Func   *mir.Func
	Errors []borrowck.BorrowError
}

// CheckProgram lowers prog to MIR once, then borrow-checks every function
// concurrently with a worker per function (bounded by jobs). A function
// that panics during checking is not recovered here: Check is expected to
// panic only on the id-overflow conditions safecast guards against, which a
// caller should treat as fatal rather than per-function.
func CheckProgram(ctx context.Context, prog *hir.Program, jobs int) ([]FuncResult, error) {
	mp := mir.LowerProgram(prog)
	n := len(mp.Funcs)
	results := make([]FuncResult, n)
	if n == 0 {
		return results, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))

	for i, fn := range mp.Funcs {
		g.Go(func(i int, fn *mir.Func) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				errs := borrowck.Check(fn, prog.Defs)
				results[i] = FuncResult{Name: fn.Name, Func: fn, Errors: errs}
				return nil
			}
		}(i, fn))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Diagnostics flattens every function's borrow errors into one bag, sorted
// and deduplicated for stable CLI or snapshot output.
func Diagnostics(results []FuncResult, names *symbols.Table, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		borrowck.ToBag(r.Errors, r.Func, names, bag)
	}
	bag.Dedup()
	bag.Sort()
	return bag
}

// HasErrors reports whether any function in results failed borrow checking.
func HasErrors(results []FuncResult) bool {
	for _, r := range results {
		if len(r.Errors) > 0 {
			return true
		}
	}
	return false
}
