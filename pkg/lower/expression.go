package lower

import (
	"strconv"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/syntax"
)

var binaryOperatorRules = map[syntax.Rule]ast.BinaryOperator{
	syntax.RuleAdd:        ast.BinaryAdd,
	syntax.RuleSubtract:   ast.BinarySubtract,
	syntax.RuleMultiply:   ast.BinaryMultiply,
	syntax.RuleDivide:     ast.BinaryDivide,
	syntax.RuleModulo:     ast.BinaryModulo,
	syntax.RuleBitAnd:     ast.BinaryBitAnd,
	syntax.RuleBitOr:      ast.BinaryBitOr,
	syntax.RuleBitXor:     ast.BinaryBitXor,
	syntax.RuleBitClear:   ast.BinaryBitClear,
	syntax.RuleShiftLeft:  ast.BinaryShiftLeft,
	syntax.RuleShiftRight: ast.BinaryShiftRight,
}

var unaryOperatorRules = map[syntax.Rule]ast.UnaryOperator{
	syntax.RuleNegate:     ast.UnaryNegate,
	syntax.RulePlus:       ast.UnaryPlus,
	syntax.RuleComplement: ast.UnaryComplement,
}

// LowerExpression takes exactly one expression pair from pairs.
func (l *Lowerer) LowerExpression(pairs *syntax.Pairs) (ast.Expression, error) {
	pair, err := single(pairs, syntax.RuleExpression)
	if err != nil {
		return nil, err
	}
	return l.LowerExpressionPair(pair)
}

// LowerExpressionPair lowers an `expression` pair. Its children are a flat
// `term (operator term)*` sequence; precedence and left associativity are
// established here by precedence climbing.
func (l *Lowerer) LowerExpressionPair(pair *syntax.Pair) (ast.Expression, error) {
	if err := expectRule(pair, syntax.RuleExpression); err != nil {
		return nil, err
	}
	if len(pair.Children) == 0 {
		return nil, missingField("found an expression without operands", pair)
	}
	c := &climber{lowerer: l, parent: pair, items: pair.Children}
	expr, err := c.climb(ast.PrecedenceAdditive)
	if err != nil {
		return nil, err
	}
	if next := c.peek(); next != nil {
		return nil, unexpectedRule("binary operator", next)
	}
	return expr, nil
}

type climber struct {
	lowerer *Lowerer
	parent  *syntax.Pair
	items   []*syntax.Pair
	pos     int
}

func (c *climber) done() bool { return c.pos >= len(c.items) }

func (c *climber) peek() *syntax.Pair {
	if c.done() {
		return nil
	}
	return c.items[c.pos]
}

func (c *climber) next() *syntax.Pair {
	item := c.peek()
	if !c.done() {
		c.pos++
	}
	return item
}

func (c *climber) climb(minPrec int) (ast.Expression, error) {
	operand := c.next()
	if operand == nil {
		return nil, missingField("found an empty operand slot in an expression", c.parent)
	}
	left, err := c.lowerer.lowerTerm(operand)
	if err != nil {
		return nil, err
	}
	for {
		if c.done() {
			return left, nil
		}
		opPair := c.peek()
		if opPair == nil {
			return nil, missingField("found an empty operator slot in an expression", c.parent)
		}
		op, ok := binaryOperatorRules[opPair.Rule]
		if !ok {
			return nil, unexpectedRule("binary operator", opPair)
		}
		prec := op.Precedence()
		if prec < minPrec {
			return left, nil
		}
		c.next()
		if c.done() {
			return nil, missingField("found operator "+string(op)+" without a right operand", opPair)
		}
		right, err := c.climb(prec + 1)
		if err != nil {
			return nil, err
		}
		bin := ast.NewBinaryExpression(op, left, right)
		ast.SetSpan(bin, syntax.Join(left.Span(), right.Span()))
		left = bin
	}
}

func (l *Lowerer) lowerTerm(pair *syntax.Pair) (ast.Expression, error) {
	if pair == nil {
		return nil, &Error{Kind: EmptyInput, Expected: syntax.RuleExpression}
	}
	switch pair.Rule {
	case syntax.RuleInt:
		value, err := strconv.ParseInt(pair.Text, 0, 64)
		if err != nil {
			return nil, &Error{Kind: InvalidLiteral, Context: "integer literal", Text: pair.Text, Span: pair.Span}
		}
		lit := ast.NewIntegerLiteral(value)
		ast.SetSpan(lit, pair.Span)
		return lit, nil
	case syntax.RuleName:
		id := ast.NewIdentifier(ast.Intern(pair.Text))
		ast.SetSpan(id, pair.Span)
		return id, nil
	case syntax.RuleParen:
		inner := pair.Find(syntax.RuleExpression)
		if inner == nil {
			return nil, missingField("found parentheses without an expression", pair)
		}
		expr, err := l.LowerExpressionPair(inner)
		if err != nil {
			return nil, err
		}
		paren := ast.NewParenthesizedExpression(expr)
		ast.SetSpan(paren, pair.Span)
		return paren, nil
	case syntax.RuleUnary:
		return l.lowerUnary(pair)
	case syntax.RuleExpression:
		return l.LowerExpressionPair(pair)
	default:
		return nil, unexpectedRule("expression operand", pair)
	}
}

func (l *Lowerer) lowerUnary(pair *syntax.Pair) (ast.Expression, error) {
	if len(pair.Children) < 2 {
		return nil, missingField("found a unary expression without an operand", pair)
	}
	opPair := pair.Children[0]
	if opPair == nil {
		return nil, missingField("found a unary expression without an operator", pair)
	}
	op, ok := unaryOperatorRules[opPair.Rule]
	if !ok {
		return nil, unexpectedRule("unary operator", opPair)
	}
	if len(pair.Children) > 2 {
		if pair.Children[2] == nil {
			return nil, missingField("found an empty slot in a unary expression", pair)
		}
		return nil, unexpectedRule("unary expression", pair.Children[2])
	}
	if pair.Children[1] == nil {
		return nil, missingField("found a unary expression without an operand", pair)
	}
	operand, err := l.lowerTerm(pair.Children[1])
	if err != nil {
		return nil, err
	}
	unary := ast.NewUnaryExpression(op, operand)
	ast.SetSpan(unary, pair.Span)
	return unary, nil
}
