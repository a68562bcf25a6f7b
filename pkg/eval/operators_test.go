package eval

import (
	"errors"
	"math"
	"testing"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/runtime"
)

func TestApplyBinaryIntegerSemantics(t *testing.T) {
	cases := []struct {
		op          ast.BinaryOperator
		left, right int64
		want        int64
	}{
		{ast.BinaryAdd, 1, 2, 3},
		{ast.BinarySubtract, 1, 2, -1},
		{ast.BinaryMultiply, -3, 4, -12},
		{ast.BinaryDivide, 7, 2, 3},
		{ast.BinaryDivide, -7, 2, -3},
		{ast.BinaryModulo, 7, 3, 1},
		{ast.BinaryModulo, -7, 3, -1},
		{ast.BinaryBitAnd, 6, 3, 2},
		{ast.BinaryBitOr, 1, 2, 3},
		{ast.BinaryBitXor, 6, 10, 12},
		{ast.BinaryBitClear, 6, 10, 4},
		{ast.BinaryShiftLeft, 13, 20, 13631488},
		{ast.BinaryShiftRight, 100000, 10, 97},
		{ast.BinaryShiftRight, -8, 1, -4},
		{ast.BinaryShiftLeft, 1, 64, 1},
		{ast.BinaryShiftLeft, 1, 65, 2},
		{ast.BinaryShiftLeft, 1, -1, math.MinInt64},
		{ast.BinaryAdd, math.MaxInt64, 1, math.MinInt64},
		{ast.BinaryMultiply, math.MinInt64, -1, math.MinInt64},
		{ast.BinaryDivide, math.MinInt64, -1, math.MinInt64},
		{ast.BinaryModulo, math.MinInt64, -1, 0},
	}
	for _, tc := range cases {
		got, err := ApplyBinary(tc.op, runtime.Int(tc.left), runtime.Int(tc.right))
		if err != nil {
			t.Fatalf("%d %s %d: unexpected error %v", tc.left, tc.op, tc.right, err)
		}
		if !runtime.Equal(got, runtime.Int(tc.want)) {
			t.Fatalf("%d %s %d: got %v, want %d", tc.left, tc.op, tc.right, got, tc.want)
		}
	}
}

func TestApplyBinaryByZero(t *testing.T) {
	cases := []struct {
		op   ast.BinaryOperator
		kind ErrorKind
		msg  string
	}{
		{ast.BinaryDivide, DivisionByZero, "division by zero"},
		{ast.BinaryModulo, ModuloByZero, "modulo by zero"},
	}
	for _, tc := range cases {
		got, err := ApplyBinary(tc.op, runtime.Int(10), runtime.Int(0))
		if got != nil {
			t.Fatalf("%s: expected no value, got %v", tc.op, got)
		}
		var evalErr *Error
		if !errors.As(err, &evalErr) || evalErr.Kind != tc.kind {
			t.Fatalf("%s: expected %s, got %v", tc.op, tc.kind, err)
		}
		if err.Error() != tc.msg {
			t.Fatalf("%s: message %q, want %q", tc.op, err.Error(), tc.msg)
		}
	}
}

func TestApplyBinaryRequiresIntegers(t *testing.T) {
	cases := [][2]runtime.Value{
		{runtime.Int(1), runtime.BoolValue{Val: true}},
		{runtime.StringValue{Val: "a"}, runtime.Int(1)},
		{nil, runtime.Int(1)},
	}
	for idx, tc := range cases {
		_, err := ApplyBinary(ast.BinaryAdd, tc[0], tc[1])
		if !errors.Is(err, &Error{Kind: Unsupported}) {
			t.Fatalf("case %d: expected Unsupported, got %v", idx, err)
		}
	}
	if _, err := ApplyBinary("==", runtime.Int(1), runtime.Int(1)); !errors.Is(err, &Error{Kind: Unsupported}) {
		t.Fatalf("unknown operator: expected Unsupported, got %v", err)
	}
}

func TestApplyUnary(t *testing.T) {
	cases := []struct {
		op      ast.UnaryOperator
		operand int64
		want    int64
	}{
		{ast.UnaryNegate, 1, -1},
		{ast.UnaryNegate, -5, 5},
		{ast.UnaryNegate, math.MinInt64, math.MinInt64},
		{ast.UnaryPlus, 9, 9},
		{ast.UnaryComplement, 0, -1},
		{ast.UnaryComplement, 5, -6},
	}
	for _, tc := range cases {
		got, err := ApplyUnary(tc.op, runtime.Int(tc.operand))
		if err != nil {
			t.Fatalf("%s%d: unexpected error %v", tc.op, tc.operand, err)
		}
		if !runtime.Equal(got, runtime.Int(tc.want)) {
			t.Fatalf("%s%d: got %v, want %d", tc.op, tc.operand, got, tc.want)
		}
	}
	if _, err := ApplyUnary(ast.UnaryNegate, runtime.BoolValue{Val: true}); !errors.Is(err, &Error{Kind: Unsupported}) {
		t.Fatalf("expected Unsupported for bool operand, got %v", err)
	}
}
