package lower

import (
	"errors"
	"testing"

	"gor/interpreter-go/pkg/syntax"
)

// Tree builders for hand-assembled parse trees. Spans are synthetic but
// distinct so tests can check which node a diagnostic points at.

var nextOffset int

func leaf(rule syntax.Rule, text string) *syntax.Pair {
	start := nextOffset
	nextOffset += len(text) + 1
	return syntax.NewPair(rule, syntax.Span{Start: start, End: start + len(text)}, text)
}

func node(rule syntax.Rule, children ...*syntax.Pair) *syntax.Pair {
	span := syntax.Span{}
	if len(children) > 0 {
		span = syntax.Join(children[0].Span, children[len(children)-1].Span)
	}
	return syntax.NewPair(rule, span, "", children...)
}

func pkgDecl(name string) *syntax.Pair {
	return node(syntax.RulePackage, leaf(syntax.RuleName, name))
}

func importDecl(path string) *syntax.Pair {
	return node(syntax.RuleImport, node(syntax.RuleString, leaf(syntax.RuleStringInner, path)))
}

func funcDecl(name string, params ...string) *syntax.Pair {
	children := []*syntax.Pair{leaf(syntax.RuleName, name)}
	if len(params) > 0 {
		list := make([]*syntax.Pair, 0, len(params))
		for _, p := range params {
			list = append(list, node(syntax.RuleParam, leaf(syntax.RuleName, p), leaf("type_identifier", "int")))
		}
		children = append(children, node(syntax.RuleParams, list...))
	}
	children = append(children, leaf(syntax.RuleBlock, "{}"))
	return node(syntax.RuleFunc, children...)
}

func eoi() *syntax.Pair {
	return leaf(syntax.RuleEOI, "")
}

func moduleOf(children ...*syntax.Pair) *syntax.Pair {
	return node(syntax.RuleModule, children...)
}

func expr(children ...*syntax.Pair) *syntax.Pair {
	return node(syntax.RuleExpression, children...)
}

func num(text string) *syntax.Pair { return leaf(syntax.RuleInt, text) }

func op(rule syntax.Rule, text string) *syntax.Pair { return leaf(rule, text) }

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var lowerErr *Error
	if !errors.As(err, &lowerErr) {
		t.Fatalf("expected *lower.Error, got %T: %v", err, err)
	}
	if lowerErr.Kind != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, lowerErr.Kind, err)
	}
	return lowerErr
}
