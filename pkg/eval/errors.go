package eval

import (
	"fmt"

	"gor/interpreter-go/pkg/ast"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind int

const (
	DivisionByZero ErrorKind = iota
	ModuloByZero
	Unresolved
	Unsupported
)

func (k ErrorKind) String() string {
	switch k {
	case DivisionByZero:
		return "DivisionByZero"
	case ModuloByZero:
		return "ModuloByZero"
	case Unresolved:
		return "Unresolved"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by both evaluators. Operator is set for operator
// failures, Name for unresolved identifiers; Err carries the resolver's
// own error when there is one.
type Error struct {
	Kind     ErrorKind
	Operator string
	Name     ast.Name
	Span     ast.Span
	Err      error
	detail   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case DivisionByZero:
		return "division by zero"
	case ModuloByZero:
		return "modulo by zero"
	case Unresolved:
		if e.Err != nil {
			return fmt.Sprintf("unresolved identifier %s: %v", e.Name, e.Err)
		}
		return fmt.Sprintf("unresolved identifier %s", e.Name)
	case Unsupported:
		if e.Operator != "" {
			return fmt.Sprintf("operator %s: %s", e.Operator, e.detail)
		}
		return e.detail
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func unsupported(operator string, format string, args ...any) *Error {
	return &Error{Kind: Unsupported, Operator: operator, detail: fmt.Sprintf(format, args...)}
}

// at fills in the span of an operator error raised before the node that
// triggered it was known.
func at(err error, span ast.Span) error {
	if evalErr, ok := err.(*Error); ok && evalErr.Span == (ast.Span{}) {
		evalErr.Span = span
	}
	return err
}
