package eval

import (
	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

// shiftMask reduces shift counts modulo the operand width.
const shiftMask = 63

// ApplyBinary applies op to two already-evaluated operands. It is the only
// implementation of binary operator semantics; both evaluators and the
// folder call it.
func ApplyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	lv, ok := left.(runtime.IntegerValue)
	if !ok {
		return nil, unsupported(string(op), "requires integer operands, got %s", kindOf(left))
	}
	rv, ok := right.(runtime.IntegerValue)
	if !ok {
		return nil, unsupported(string(op), "requires integer operands, got %s", kindOf(right))
	}
	l, r := lv.Val, rv.Val
	switch op {
	case ast.BinaryAdd:
		return runtime.Int(l + r), nil
	case ast.BinarySubtract:
		return runtime.Int(l - r), nil
	case ast.BinaryMultiply:
		return runtime.Int(l * r), nil
	case ast.BinaryDivide:
		if r == 0 {
			return nil, &Error{Kind: DivisionByZero, Operator: string(op)}
		}
		return runtime.Int(l / r), nil
	case ast.BinaryModulo:
		if r == 0 {
			return nil, &Error{Kind: ModuloByZero, Operator: string(op)}
		}
		return runtime.Int(l % r), nil
	case ast.BinaryBitAnd:
		return runtime.Int(l & r), nil
	case ast.BinaryBitOr:
		return runtime.Int(l | r), nil
	case ast.BinaryBitXor:
		return runtime.Int(l ^ r), nil
	case ast.BinaryBitClear:
		return runtime.Int(l &^ r), nil
	case ast.BinaryShiftLeft:
		return runtime.Int(l << (uint64(r) & shiftMask)), nil
	case ast.BinaryShiftRight:
		return runtime.Int(l >> (uint64(r) & shiftMask)), nil
	default:
		return nil, unsupported(string(op), "unknown binary operator")
	}
}

// ApplyUnary applies a prefix operator to an evaluated operand.
func ApplyUnary(op ast.UnaryOperator, operand runtime.Value) (runtime.Value, error) {
	v, ok := operand.(runtime.IntegerValue)
	if !ok {
		return nil, unsupported(string(op), "requires an integer operand, got %s", kindOf(operand))
	}
	switch op {
	case ast.UnaryNegate:
		return runtime.Int(-v.Val), nil
	case ast.UnaryPlus:
		return v, nil
	case ast.UnaryComplement:
		return runtime.Int(^v.Val), nil
	default:
		return nil, unsupported(string(op), "unknown unary operator")
	}
}

func kindOf(v runtime.Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}
