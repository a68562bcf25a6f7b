package eval

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

// leafFunc produces the value of a context-dependent leaf. Returning
// ok == false with a nil error stops the walk without failing it.
type leafFunc func(id *ast.Identifier) (value runtime.Value, ok bool, err error)

// walk reduces expr following the nesting lowering already established.
// Operands are evaluated left to right and every operator goes through
// ApplyBinary or ApplyUnary.
func walk(expr ast.Expression, leaf leafFunc) (runtime.Value, bool, error) {
	if isNil(expr) {
		return nil, false, unsupported("", "nothing to evaluate")
	}
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.Int(n.Value), true, nil
	case *ast.Identifier:
		return leaf(n)
	case *ast.ParenthesizedExpression:
		return walk(n.Inner, leaf)
	case *ast.UnaryExpression:
		operand, ok, err := walk(n.Operand, leaf)
		if err != nil || !ok {
			return nil, ok, err
		}
		value, err := ApplyUnary(n.Operator, operand)
		if err != nil {
			return nil, false, at(err, n.Span())
		}
		return value, true, nil
	case *ast.BinaryExpression:
		left, ok, err := walk(n.Left, leaf)
		if err != nil || !ok {
			return nil, ok, err
		}
		right, ok, err := walk(n.Right, leaf)
		if err != nil || !ok {
			return nil, ok, err
		}
		value, err := ApplyBinary(n.Operator, left, right)
		if err != nil {
			return nil, false, at(err, n.Span())
		}
		return value, true, nil
	default:
		return nil, false, &Error{Kind: Unsupported, Span: expr.Span(), detail: "cannot evaluate " + string(expr.NodeType())}
	}
}

// isNil reports a missing node, including a typed nil pointer stored in an
// interface by hand-built trees.
func isNil(expr ast.Expression) bool {
	switch n := expr.(type) {
	case nil:
		return true
	case *ast.IntegerLiteral:
		return n == nil
	case *ast.Identifier:
		return n == nil
	case *ast.ParenthesizedExpression:
		return n == nil
	case *ast.UnaryExpression:
		return n == nil
	case *ast.BinaryExpression:
		return n == nil
	default:
		return false
	}
}
