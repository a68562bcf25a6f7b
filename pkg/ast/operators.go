package ast

type BinaryOperator string

const (
	BinaryAdd        BinaryOperator = "+"
	BinarySubtract   BinaryOperator = "-"
	BinaryMultiply   BinaryOperator = "*"
	BinaryDivide     BinaryOperator = "/"
	BinaryModulo     BinaryOperator = "%"
	BinaryBitAnd     BinaryOperator = "&"
	BinaryBitOr      BinaryOperator = "|"
	BinaryBitXor     BinaryOperator = "^"
	BinaryBitClear   BinaryOperator = "&^"
	BinaryShiftLeft  BinaryOperator = "<<"
	BinaryShiftRight BinaryOperator = ">>"
)

// Precedence levels, highest binding first. Unary operators and parentheses
// sit above every binary level.
const (
	PrecedenceAdditive       = 1
	PrecedenceMultiplicative = 2
)

// Precedence returns the binding strength of op, or 0 if op is not a
// recognised binary operator.
func (op BinaryOperator) Precedence() int {
	switch op {
	case BinaryMultiply, BinaryDivide, BinaryModulo, BinaryShiftLeft, BinaryShiftRight, BinaryBitAnd, BinaryBitClear:
		return PrecedenceMultiplicative
	case BinaryAdd, BinarySubtract, BinaryBitOr, BinaryBitXor:
		return PrecedenceAdditive
	default:
		return 0
	}
}

type UnaryOperator string

const (
	UnaryNegate     UnaryOperator = "-"
	UnaryPlus       UnaryOperator = "+"
	UnaryComplement UnaryOperator = "^"
)
