package ast

import (
	"strconv"
	"strings"
)

// FormatExpression renders expr in source form. Parentheses appear only
// where the tree has a ParenthesizedExpression.
func FormatExpression(expr Expression) string {
	var b strings.Builder
	formatExpression(&b, expr)
	return b.String()
}

func formatExpression(b *strings.Builder, expr Expression) {
	switch n := expr.(type) {
	case *IntegerLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *Identifier:
		b.WriteString(n.Name.String())
	case *UnaryExpression:
		b.WriteString(string(n.Operator))
		if _, nested := n.Operand.(*UnaryExpression); nested {
			b.WriteByte(' ')
		}
		formatExpression(b, n.Operand)
	case *BinaryExpression:
		formatExpression(b, n.Left)
		b.WriteByte(' ')
		b.WriteString(string(n.Operator))
		b.WriteByte(' ')
		formatExpression(b, n.Right)
	case *ParenthesizedExpression:
		b.WriteByte('(')
		formatExpression(b, n.Inner)
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	default:
		b.WriteString(string(expr.NodeType()))
	}
}
