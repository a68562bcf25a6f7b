package driver

import (
	"context"
	goruntime "runtime"

	"golang.org/x/sync/errgroup"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/lower"
	"gor/interpreter-go/pkg/parser"
)

// Options configure LowerUnits.
type Options struct {
	Lowering lower.Options
	// Workers bounds concurrent units; zero means GOMAXPROCS.
	Workers int
}

// Result is the outcome for one unit. Exactly one of Module and Err is set.
type Result struct {
	Unit   Unit
	Module *ast.Module
	Err    error
}

// Diagnostic returns the unit's diagnostic when lowering failed.
func (r Result) Diagnostic() (Diagnostic, bool) {
	if r.Err == nil {
		return Diagnostic{}, false
	}
	return DiagnosticFor(r.Unit, r.Err), true
}

// LowerUnits parses and lowers units concurrently. Per-unit failures are
// reported in the matching Result; the returned error is only set when the
// pipeline itself could not run. Results keep the order of units.
func LowerUnits(ctx context.Context, units []Unit, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]Result, len(units))
	if len(units) == 0 {
		return results, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = goruntime.GOMAXPROCS(0)
	}
	workers = min(workers, len(units))
	lowerer := lower.New(opts.Lowering)

	g, ctx := errgroup.WithContext(ctx)
	next := make(chan int)
	g.Go(func() error {
		defer close(next)
		for i := range units {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case next <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			p, err := parser.NewSourceParser()
			if err != nil {
				return err
			}
			defer p.Close()
			for i := range next {
				results[i] = lowerUnit(p, lowerer, units[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LowerUnit runs the pipeline for a single unit on the calling goroutine.
func LowerUnit(unit Unit, opts lower.Options) (Result, error) {
	p, err := parser.NewSourceParser()
	if err != nil {
		return Result{}, err
	}
	defer p.Close()
	return lowerUnit(p, lower.New(opts), unit), nil
}

func lowerUnit(p *parser.SourceParser, lowerer *lower.Lowerer, unit Unit) Result {
	pairs, err := p.ParseSource(unit.Source)
	if err != nil {
		return Result{Unit: unit, Err: err}
	}
	module, err := lowerer.LowerSource(pairs)
	if err != nil {
		return Result{Unit: unit, Err: err}
	}
	return Result{Unit: unit, Module: module}
}
