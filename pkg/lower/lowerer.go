package lower

import (
	"fmt"
	"strings"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/syntax"
)

// DuplicatePolicy decides what happens when a module declares the same
// function name twice.
type DuplicatePolicy string

const (
	DuplicateLastWins  DuplicatePolicy = "last"
	DuplicateFirstWins DuplicatePolicy = "first"
	DuplicateReject    DuplicatePolicy = "error"
)

// ParseDuplicatePolicy accepts the spellings used in configuration files.
func ParseDuplicatePolicy(text string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "last", "last-wins":
		return DuplicateLastWins, nil
	case "first", "first-wins":
		return DuplicateFirstWins, nil
	case "error", "reject":
		return DuplicateReject, nil
	default:
		return "", fmt.Errorf("lower: unknown duplicate function policy %q", text)
	}
}

// Options tune lowering. The zero value matches the default behaviour.
type Options struct {
	DuplicateFunctions DuplicatePolicy
}

// Lowerer converts parse trees into AST nodes. It holds no mutable state,
// so one value may be shared across goroutines.
type Lowerer struct {
	opts Options
}

// New constructs a lowerer with the provided options.
func New(opts Options) *Lowerer {
	if opts.DuplicateFunctions == "" {
		opts.DuplicateFunctions = DuplicateLastWins
	}
	return &Lowerer{opts: opts}
}

var defaultLowerer = New(Options{})

// LowerSource lowers a complete top-level parse result with default options.
func LowerSource(pairs *syntax.Pairs) (*ast.Module, error) {
	return defaultLowerer.LowerSource(pairs)
}

// LowerModule lowers a single module pair with default options.
func LowerModule(pair *syntax.Pair) (*ast.Module, error) {
	return defaultLowerer.LowerModule(pair)
}

// LowerFunction lowers a single function declaration pair.
func LowerFunction(pair *syntax.Pair) (*ast.Function, error) {
	return defaultLowerer.LowerFunction(pair)
}

// LowerExpression lowers a top-level expression parse result.
func LowerExpression(pairs *syntax.Pairs) (ast.Expression, error) {
	return defaultLowerer.LowerExpression(pairs)
}

// LowerExpressionPair lowers a single expression pair.
func LowerExpressionPair(pair *syntax.Pair) (ast.Expression, error) {
	return defaultLowerer.LowerExpressionPair(pair)
}

// single takes exactly one pair from the cursor and rejects leftovers.
func single(pairs *syntax.Pairs, rule syntax.Rule) (*syntax.Pair, error) {
	pair := pairs.Next()
	if pair == nil {
		return nil, &Error{Kind: EmptyInput, Expected: rule}
	}
	if extra := pairs.Peek(); extra != nil {
		return nil, &Error{Kind: TrailingInput, Expected: rule, Actual: extra.Rule, Span: extra.Span}
	}
	return pair, nil
}
