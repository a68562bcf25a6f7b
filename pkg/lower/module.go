package lower

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/syntax"
)

// LowerSource takes exactly one module from pairs, lowers it, and requires
// nothing to follow it.
func (l *Lowerer) LowerSource(pairs *syntax.Pairs) (*ast.Module, error) {
	pair := pairs.Next()
	if pair == nil {
		return nil, &Error{Kind: EmptyInput, Expected: syntax.RuleModule}
	}
	module, err := l.LowerModule(pair)
	if err != nil {
		return nil, err
	}
	if extra := pairs.Peek(); extra != nil {
		return nil, &Error{Kind: TrailingInput, Expected: syntax.RuleModule, Actual: extra.Rule, Span: extra.Span}
	}
	return module, nil
}

// LowerModule lowers a `module` pair. The package declaration is mandatory;
// imports keep source order and functions are keyed by name.
func (l *Lowerer) LowerModule(pair *syntax.Pair) (*ast.Module, error) {
	if err := expectRule(pair, syntax.RuleModule); err != nil {
		return nil, err
	}

	var (
		pkg       ast.Name
		havePkg   bool
		imports   = make([]ast.Name, 0)
		functions = make(map[ast.Name]*ast.Function)
	)

	for _, child := range pair.Children {
		if child == nil {
			continue
		}
		switch child.Rule {
		case syntax.RulePackage:
			name, err := lowerPackage(child)
			if err != nil {
				return nil, err
			}
			if !havePkg {
				pkg, havePkg = name, true
			}
		case syntax.RuleImport:
			name, err := lowerImport(child)
			if err != nil {
				return nil, err
			}
			imports = append(imports, name)
		case syntax.RuleFunc:
			fn, err := l.LowerFunction(child)
			if err != nil {
				return nil, err
			}
			if err := l.insertFunction(functions, fn, child); err != nil {
				return nil, err
			}
		case syntax.RuleEOI:
		default:
			return nil, unexpectedRule("module contents", child)
		}
	}

	if !havePkg {
		return nil, &Error{Kind: MissingPackage, Span: pair.Span}
	}

	module := ast.NewModule(pkg, imports, functions)
	ast.SetSpan(module, pair.Span)
	return module, nil
}

func (l *Lowerer) insertFunction(table map[ast.Name]*ast.Function, fn *ast.Function, pair *syntax.Pair) error {
	if _, exists := table[fn.Name]; exists {
		switch l.opts.DuplicateFunctions {
		case DuplicateFirstWins:
			return nil
		case DuplicateReject:
			return &Error{Kind: DuplicateFunction, Text: fn.Name.String(), Span: pair.Span}
		}
	}
	table[fn.Name] = fn
	return nil
}

func lowerPackage(pair *syntax.Pair) (ast.Name, error) {
	name := pair.Find(syntax.RuleName)
	if name == nil {
		return ast.Name{}, missingField("found a package declaration without a name", pair)
	}
	return ast.Intern(name.Text), nil
}

func lowerImport(pair *syntax.Pair) (ast.Name, error) {
	str := pair.Find(syntax.RuleString)
	if str == nil {
		return ast.Name{}, missingField("found an import without a package", pair)
	}
	inner := str.Find(syntax.RuleStringInner)
	if inner == nil {
		return ast.Name{}, missingField("found an import string without an inner", str)
	}
	return ast.Intern(inner.Text), nil
}
