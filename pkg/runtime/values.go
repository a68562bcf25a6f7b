package runtime

import (
	"fmt"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntegerValue is a fixed-width signed integer with two's-complement wrapping.
type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind     { return KindInteger }
func (v IntegerValue) String() string { return strconv.FormatInt(v.Val, 10) }

// Int is shorthand for IntegerValue{Val: v}.
func Int(v int64) IntegerValue {
	return IntegerValue{Val: v}
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind     { return KindBool }
func (v BoolValue) String() string { return strconv.FormatBool(v.Val) }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind     { return KindString }
func (v StringValue) String() string { return strconv.Quote(v.Val) }

// Equal reports structural equality. Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a == b
}

// ParseValue interprets text as an integer, then a boolean, and otherwise
// keeps it as a string. Used for bindings supplied on the command line.
func ParseValue(text string) Value {
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return IntegerValue{Val: v}
	}
	if b, err := strconv.ParseBool(text); err == nil {
		return BoolValue{Val: b}
	}
	return StringValue{Val: text}
}

// FromAny converts a decoded configuration scalar into a Value.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case int:
		return IntegerValue{Val: int64(v)}, nil
	case int64:
		return IntegerValue{Val: v}, nil
	case uint64:
		if v > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows int64", v)
		}
		return IntegerValue{Val: int64(v)}, nil
	case bool:
		return BoolValue{Val: v}, nil
	case string:
		return StringValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("unsupported binding value %v (%T)", raw, raw)
	}
}
