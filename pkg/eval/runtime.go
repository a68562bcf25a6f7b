package eval

import (
	"context"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

// Resolver supplies values for identifiers during runtime evaluation.
// Implementations must be safe for concurrent use; *runtime.Environment
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, name ast.Name) (runtime.Value, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, name ast.Name) (runtime.Value, error)

func (f ResolverFunc) Resolve(ctx context.Context, name ast.Name) (runtime.Value, error) {
	return f(ctx, name)
}

// Evaluate reduces expr, asking resolver once for each identifier leaf it
// reaches. Arithmetic never blocks; only the resolver may.
func Evaluate(ctx context.Context, expr ast.Expression, resolver Resolver) (runtime.Value, error) {
	value, _, err := walk(expr, func(id *ast.Identifier) (runtime.Value, bool, error) {
		if resolver == nil {
			return nil, false, &Error{Kind: Unresolved, Name: id.Name, Span: id.Span()}
		}
		v, err := resolver.Resolve(ctx, id.Name)
		if err != nil {
			return nil, false, &Error{Kind: Unresolved, Name: id.Name, Span: id.Span(), Err: err}
		}
		if v == nil {
			return nil, false, &Error{Kind: Unresolved, Name: id.Name, Span: id.Span()}
		}
		return v, true, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
