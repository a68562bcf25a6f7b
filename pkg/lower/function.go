package lower

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/syntax"
)

// LowerFunction lowers a `func` pair into a Function. Parameters are read
// from the optional `params` child; the body block is kept as an owned copy.
func (l *Lowerer) LowerFunction(pair *syntax.Pair) (*ast.Function, error) {
	if err := expectRule(pair, syntax.RuleFunc); err != nil {
		return nil, err
	}

	name := pair.Find(syntax.RuleName)
	if name == nil {
		return nil, missingField("found a function declaration without a name", pair)
	}

	params := make([]*ast.Parameter, 0)
	if list := pair.Find(syntax.RuleParams); list != nil {
		for _, child := range list.Children {
			if child == nil {
				continue
			}
			if child.Rule != syntax.RuleParam {
				return nil, unexpectedRule("function parameters", child)
			}
			params = append(params, lowerParam(child)...)
		}
	}

	var body *syntax.Pair
	if block := pair.Find(syntax.RuleBlock); block != nil {
		body = block.Clone()
	}

	fn := ast.NewFunction(ast.Intern(name.Text), params, body)
	ast.SetSpan(fn, pair.Span)
	return fn, nil
}

// lowerParam expands one parameter group; `a, b int` declares two names and
// an unnamed `int` declares none.
func lowerParam(pair *syntax.Pair) []*ast.Parameter {
	names := pair.FindAll(syntax.RuleName)
	out := make([]*ast.Parameter, 0, len(names))
	for _, name := range names {
		param := ast.NewParameter(ast.Intern(name.Text))
		ast.SetSpan(param, name.Span)
		out = append(out, param)
	}
	return out
}
