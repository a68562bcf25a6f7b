package ast

// Short constructors used by tests and by callers assembling trees by hand.

func ID(name string) *Identifier {
	return NewIdentifier(Intern(name))
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNegate, operand)
}

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(BinaryOperator(operator), left, right)
}

func Paren(inner Expression) *ParenthesizedExpression {
	return NewParenthesizedExpression(inner)
}

func Param(name string) *Parameter {
	return NewParameter(Intern(name))
}

func Fn(name string, params ...*Parameter) *Function {
	return NewFunction(Intern(name), params, nil)
}

// Mod builds a module; functions are keyed by their names.
func Mod(pkg string, imports []string, functions ...*Function) *Module {
	names := make([]Name, 0, len(imports))
	for _, imp := range imports {
		names = append(names, Intern(imp))
	}
	table := make(map[Name]*Function, len(functions))
	for _, fn := range functions {
		table[fn.Name] = fn
	}
	return NewModule(Intern(pkg), names, table)
}
