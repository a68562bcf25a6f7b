package eval

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

// TryStatic reduces expr without any evaluation context. ok is false with a
// nil error when some leaf needs context; callers should retry with
// Evaluate. A non-nil error is final in either mode.
func TryStatic(expr ast.Expression) (value runtime.Value, ok bool, err error) {
	return walk(expr, func(*ast.Identifier) (runtime.Value, bool, error) {
		return nil, false, nil
	})
}

// IsStatic reports whether expr contains no context-dependent leaves.
func IsStatic(expr ast.Expression) bool {
	if isNil(expr) {
		return false
	}
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return true
	case *ast.ParenthesizedExpression:
		return IsStatic(n.Inner)
	case *ast.UnaryExpression:
		return IsStatic(n.Operand)
	case *ast.BinaryExpression:
		return IsStatic(n.Left) && IsStatic(n.Right)
	default:
		return false
	}
}
