package lower

import (
	"fmt"

	"gor/interpreter-go/pkg/syntax"
)

// ErrorKind classifies a lowering failure.
type ErrorKind int

const (
	RuleMismatch ErrorKind = iota
	MissingField
	UnexpectedRule
	MissingPackage
	EmptyInput
	TrailingInput
	InvalidLiteral
	DuplicateFunction
)

func (k ErrorKind) String() string {
	switch k {
	case RuleMismatch:
		return "RuleMismatch"
	case MissingField:
		return "MissingField"
	case UnexpectedRule:
		return "UnexpectedRule"
	case MissingPackage:
		return "MissingPackage"
	case EmptyInput:
		return "EmptyInput"
	case TrailingInput:
		return "TrailingInput"
	case InvalidLiteral:
		return "InvalidLiteral"
	case DuplicateFunction:
		return "DuplicateFunction"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single structured error returned by every lowering entry
// point. Span points at the offending parse-tree node when there is one.
type Error struct {
	Kind     ErrorKind
	Expected syntax.Rule
	Actual   syntax.Rule
	Context  string
	Text     string
	Span     syntax.Span
}

func (e *Error) Error() string {
	switch e.Kind {
	case RuleMismatch:
		return fmt.Sprintf("lower: expected rule %s, found %s", e.Expected, e.Actual)
	case MissingField:
		return fmt.Sprintf("lower: %s", e.Context)
	case UnexpectedRule:
		return fmt.Sprintf("lower: unexpected rule %s in %s", e.Actual, e.Context)
	case MissingPackage:
		return "lower: module must have package set"
	case EmptyInput:
		return fmt.Sprintf("lower: expected %s, but found nothing to lower", e.Expected)
	case TrailingInput:
		return fmt.Sprintf("lower: expected a single %s, found trailing %s", e.Expected, e.Actual)
	case InvalidLiteral:
		return fmt.Sprintf("lower: invalid %s %q", e.Context, e.Text)
	case DuplicateFunction:
		return fmt.Sprintf("lower: function %s declared more than once", e.Text)
	default:
		return fmt.Sprintf("lower: %s", e.Kind)
	}
}

// Is matches errors of the same kind, so callers can write
// errors.Is(err, &lower.Error{Kind: lower.MissingPackage}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func ruleMismatch(expected syntax.Rule, pair *syntax.Pair) *Error {
	return &Error{Kind: RuleMismatch, Expected: expected, Actual: pair.Rule, Span: pair.Span}
}

func missingField(context string, parent *syntax.Pair) *Error {
	err := &Error{Kind: MissingField, Context: context}
	if parent != nil {
		err.Span = parent.Span
	}
	return err
}

func unexpectedRule(context string, pair *syntax.Pair) *Error {
	return &Error{Kind: UnexpectedRule, Context: context, Actual: pair.Rule, Text: pair.Text, Span: pair.Span}
}

// expectRule verifies the pair's tag before a lowering step touches it.
func expectRule(pair *syntax.Pair, rule syntax.Rule) error {
	if pair == nil {
		return &Error{Kind: EmptyInput, Expected: rule}
	}
	if pair.Rule != rule {
		return ruleMismatch(rule, pair)
	}
	return nil
}
