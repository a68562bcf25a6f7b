package eval

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

// Fold returns a copy of expr in which every subtree that evaluates without
// context is replaced by an integer literal carrying the subtree's span.
// Subtrees that depend on identifiers keep their shape. The input is not
// modified.
func Fold(expr ast.Expression) (ast.Expression, error) {
	if isNil(expr) {
		return nil, unsupported("", "nothing to fold")
	}
	switch n := expr.(type) {
	case *ast.IntegerLiteral, *ast.Identifier:
		return n, nil
	case *ast.ParenthesizedExpression:
		inner, err := Fold(n.Inner)
		if err != nil {
			return nil, err
		}
		if lit, ok := inner.(*ast.IntegerLiteral); ok {
			return literalAt(runtime.Int(lit.Value), n.Span()), nil
		}
		out := ast.NewParenthesizedExpression(inner)
		ast.SetSpan(out, n.Span())
		return out, nil
	case *ast.UnaryExpression:
		operand, err := Fold(n.Operand)
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*ast.IntegerLiteral); ok {
			value, err := ApplyUnary(n.Operator, runtime.Int(lit.Value))
			if err != nil {
				return nil, at(err, n.Span())
			}
			return literalAt(value, n.Span()), nil
		}
		out := ast.NewUnaryExpression(n.Operator, operand)
		ast.SetSpan(out, n.Span())
		return out, nil
	case *ast.BinaryExpression:
		left, err := Fold(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Fold(n.Right)
		if err != nil {
			return nil, err
		}
		l, lok := left.(*ast.IntegerLiteral)
		r, rok := right.(*ast.IntegerLiteral)
		if lok && rok {
			value, err := ApplyBinary(n.Operator, runtime.Int(l.Value), runtime.Int(r.Value))
			if err != nil {
				return nil, at(err, n.Span())
			}
			return literalAt(value, n.Span()), nil
		}
		out := ast.NewBinaryExpression(n.Operator, left, right)
		ast.SetSpan(out, n.Span())
		return out, nil
	default:
		return expr, nil
	}
}

func literalAt(value runtime.Value, span ast.Span) ast.Expression {
	lit := ast.NewIntegerLiteral(value.(runtime.IntegerValue).Val)
	ast.SetSpan(lit, span)
	return lit
}
