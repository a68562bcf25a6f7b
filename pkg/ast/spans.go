package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// ClearSpans resets the span of root and every expression beneath it, so
// trees built by hand can be compared with lowered ones.
func ClearSpans(root Node) {
	if root == nil {
		return
	}
	SetSpan(root, Span{})
	switch n := root.(type) {
	case *Module:
		for _, fn := range n.Functions {
			ClearSpans(fn)
		}
	case *Function:
		for _, param := range n.Params {
			ClearSpans(param)
		}
	case *UnaryExpression:
		ClearSpans(n.Operand)
	case *BinaryExpression:
		ClearSpans(n.Left)
		ClearSpans(n.Right)
	case *ParenthesizedExpression:
		ClearSpans(n.Inner)
	}
}
