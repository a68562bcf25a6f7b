package parser

import (
	"strconv"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"gor/interpreter-go/pkg/syntax"
)

var binaryOperatorRules = map[string]syntax.Rule{
	"+":  syntax.RuleAdd,
	"-":  syntax.RuleSubtract,
	"*":  syntax.RuleMultiply,
	"/":  syntax.RuleDivide,
	"%":  syntax.RuleModulo,
	"&":  syntax.RuleBitAnd,
	"|":  syntax.RuleBitOr,
	"^":  syntax.RuleBitXor,
	"&^": syntax.RuleBitClear,
	"<<": syntax.RuleShiftLeft,
	">>": syntax.RuleShiftRight,
}

var unaryOperatorRules = map[string]syntax.Rule{
	"-": syntax.RuleNegate,
	"+": syntax.RulePlus,
	"^": syntax.RuleComplement,
}

// converter copies tree-sitter nodes into owned pairs. base is subtracted
// from every byte offset so spans can point into a caller's buffer when the
// parsed text was wrapped.
type converter struct {
	source []byte
	base   int
}

func newConverter(source []byte, base int) *converter {
	return &converter{source: source, base: base}
}

func (c *converter) span(node *sitter.Node) syntax.Span {
	return spanForNode(node).Shift(-c.base)
}

func (c *converter) leaf(rule syntax.Rule, node *sitter.Node) *syntax.Pair {
	return syntax.NewPair(rule, c.span(node), sliceContent(node, c.source))
}

func (c *converter) branch(rule syntax.Rule, node *sitter.Node, children []*syntax.Pair) *syntax.Pair {
	return syntax.NewPair(rule, c.span(node), sliceContent(node, c.source), children...)
}

func (c *converter) module(root *sitter.Node) *syntax.Pair {
	children := make([]*syntax.Pair, 0, root.NamedChildCount()+1)
	for i := uint(0); i < root.NamedChildCount(); i++ {
		node := root.NamedChild(i)
		if node == nil || isIgnorableNode(node) {
			continue
		}
		switch node.Kind() {
		case "package_clause":
			children = append(children, c.packageClause(node))
		case "import_declaration":
			children = append(children, c.imports(node)...)
		case "function_declaration":
			children = append(children, c.function(node))
		default:
			children = append(children, c.generic(node))
		}
	}
	end := len(c.source) - c.base
	children = append(children, syntax.NewPair(syntax.RuleEOI, syntax.Span{Start: end, End: end}, ""))
	return c.branch(syntax.RuleModule, root, children)
}

func (c *converter) packageClause(node *sitter.Node) *syntax.Pair {
	var children []*syntax.Pair
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if child.Kind() == "package_identifier" {
			children = append(children, c.leaf(syntax.RuleName, child))
			continue
		}
		children = append(children, c.generic(child))
	}
	return c.branch(syntax.RulePackage, node, children)
}

// imports flattens grouped declarations into one import pair per spec.
func (c *converter) imports(node *sitter.Node) []*syntax.Pair {
	var out []*syntax.Pair
	walkNodes(node, func(n *sitter.Node) {
		if n.Kind() == "import_spec" {
			out = append(out, c.importSpec(n))
		}
	})
	return out
}

func (c *converter) importSpec(node *sitter.Node) *syntax.Pair {
	var children []*syntax.Pair
	if alias := node.ChildByFieldName("name"); alias != nil {
		children = append(children, c.leaf(syntax.RuleName, alias))
	}
	if path := node.ChildByFieldName("path"); path != nil {
		children = append(children, c.stringLiteral(path))
	}
	return c.branch(syntax.RuleImport, node, children)
}

// stringLiteral always produces a string_inner child holding the decoded
// contents; its span covers the text between the quotes.
func (c *converter) stringLiteral(node *sitter.Node) *syntax.Pair {
	text := sliceContent(node, c.source)
	outer := c.span(node)
	inner := syntax.Span{Start: outer.Start, End: outer.End}
	if outer.Len() >= 2 {
		inner = syntax.Span{Start: outer.Start + 1, End: outer.End - 1}
	}
	value, err := strconv.Unquote(text)
	if err != nil {
		value = text
		if len(text) >= 2 {
			value = text[1 : len(text)-1]
		}
	}
	return syntax.NewPair(syntax.RuleString, outer, text, syntax.NewPair(syntax.RuleStringInner, inner, value))
}

func (c *converter) function(node *sitter.Node) *syntax.Pair {
	var children []*syntax.Pair
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "identifier":
			children = append(children, c.leaf(syntax.RuleName, child))
		case "parameter_list":
			if sameNode(child, node.ChildByFieldName("parameters")) {
				children = append(children, c.params(child))
			} else {
				children = append(children, c.generic(child))
			}
		default:
			children = append(children, c.generic(child))
		}
	}
	return c.branch(syntax.RuleFunc, node, children)
}

func (c *converter) params(node *sitter.Node) *syntax.Pair {
	var children []*syntax.Pair
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		switch child.Kind() {
		case "parameter_declaration", "variadic_parameter_declaration":
			children = append(children, c.param(child))
		default:
			children = append(children, c.generic(child))
		}
	}
	return c.branch(syntax.RuleParams, node, children)
}

func (c *converter) param(node *sitter.Node) *syntax.Pair {
	var children []*syntax.Pair
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if child.Kind() == "identifier" {
			children = append(children, c.leaf(syntax.RuleName, child))
			continue
		}
		children = append(children, c.generic(child))
	}
	return c.branch(syntax.RuleParam, node, children)
}

// expression wraps node in an `expression` pair whose children are the
// flattened operand/operator sequence.
func (c *converter) expression(node *sitter.Node) *syntax.Pair {
	var seq []*syntax.Pair
	c.flatten(node, &seq)
	return c.branch(syntax.RuleExpression, node, seq)
}

func (c *converter) flatten(node *sitter.Node, seq *[]*syntax.Pair) {
	if node.Kind() != "binary_expression" {
		*seq = append(*seq, c.term(node))
		return
	}
	left := node.ChildByFieldName("left")
	operator := node.ChildByFieldName("operator")
	right := node.ChildByFieldName("right")
	if left == nil || operator == nil || right == nil {
		*seq = append(*seq, c.generic(node))
		return
	}
	c.flatten(left, seq)
	*seq = append(*seq, c.operator(binaryOperatorRules, operator))
	c.flatten(right, seq)
}

func (c *converter) operator(rules map[string]syntax.Rule, node *sitter.Node) *syntax.Pair {
	text := sliceContent(node, c.source)
	rule, ok := rules[text]
	if !ok {
		rule = syntax.Rule(text)
	}
	return c.leaf(rule, node)
}

func (c *converter) term(node *sitter.Node) *syntax.Pair {
	switch node.Kind() {
	case "int_literal":
		return c.leaf(syntax.RuleInt, node)
	case "identifier":
		return c.leaf(syntax.RuleName, node)
	case "parenthesized_expression":
		inner := firstNamedChild(node)
		if inner == nil {
			return c.branch(syntax.RuleParen, node, nil)
		}
		return c.branch(syntax.RuleParen, node, []*syntax.Pair{c.expression(inner)})
	case "unary_expression":
		operator := node.ChildByFieldName("operator")
		operand := node.ChildByFieldName("operand")
		if operator == nil || operand == nil {
			return c.generic(node)
		}
		return c.branch(syntax.RuleUnary, node, []*syntax.Pair{
			c.operator(unaryOperatorRules, operator),
			c.term(operand),
		})
	case "binary_expression":
		return c.expression(node)
	default:
		return c.generic(node)
	}
}

// generic copies a node the lowering stage treats as opaque or rejects.
// Expression nodes found inside it still get the expression shape.
func (c *converter) generic(node *sitter.Node) *syntax.Pair {
	switch node.Kind() {
	case "binary_expression":
		return c.expression(node)
	case "int_literal", "identifier", "parenthesized_expression", "unary_expression":
		return c.term(node)
	case "interpreted_string_literal", "raw_string_literal":
		return c.stringLiteral(node)
	}
	var children []*syntax.Pair
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		children = append(children, c.generic(child))
	}
	return c.branch(syntax.Rule(node.Kind()), node, children)
}
