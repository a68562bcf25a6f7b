package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"gor/interpreter-go/pkg/syntax"
)

const (
	expressionPrefix = "package p\nvar _ = "
	expressionSuffix = "\n"
)

// SourceParser wraps a tree-sitter parser and converts its concrete syntax
// trees into owned syntax pairs. A SourceParser is not safe for concurrent
// use; create one per goroutine.
type SourceParser struct {
	parser *sitter.Parser
}

// NewSourceParser constructs a parser with the grammar loaded.
func NewSourceParser() (*SourceParser, error) {
	lang := Language()
	if lang == nil {
		return nil, fmt.Errorf("parser: language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		p.Close()
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &SourceParser{parser: p}, nil
}

// Close releases parser resources.
func (p *SourceParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// ParseSource parses a whole source file. The result holds a single
// `module` pair whose children end with an EOI marker.
func (p *SourceParser) ParseSource(source []byte) (*syntax.Pairs, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "source_file" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, syntaxError(root)
	}

	conv := newConverter(source, 0)
	return syntax.NewPairs(conv.module(root)), nil
}

// ParseExpression parses a standalone expression. Spans in the result are
// offsets into source, and the expression must account for all of it.
func (p *SourceParser) ParseExpression(source []byte) (*syntax.Pairs, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	wrapped := make([]byte, 0, len(expressionPrefix)+len(source)+len(expressionSuffix))
	wrapped = append(wrapped, expressionPrefix...)
	wrapped = append(wrapped, source...)
	wrapped = append(wrapped, expressionSuffix...)

	tree := p.parser.Parse(wrapped, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "source_file" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		err := syntaxError(root)
		err.rebase(len(expressionPrefix), expressionPrefix)
		return nil, err
	}

	exprNode, err := wrappedExpression(root, wrapped)
	if err != nil {
		return nil, err
	}

	conv := newConverter(wrapped, len(expressionPrefix))
	return syntax.NewPairs(conv.expression(exprNode)), nil
}

// wrappedExpression digs the initializer out of `var _ = <expr>` and checks
// that nothing else was parsed alongside it.
func wrappedExpression(root *sitter.Node, source []byte) (*sitter.Node, error) {
	var decl *sitter.Node
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child == nil || isIgnorableNode(child) || child.Kind() == "package_clause" {
			continue
		}
		if decl != nil || child.Kind() != "var_declaration" {
			return nil, trailingInput(child, source)
		}
		decl = child
	}
	if decl == nil {
		return nil, &ParseError{Message: "parser: expected an expression"}
	}

	spec := firstNamedChild(decl)
	if spec == nil || spec.Kind() != "var_spec" {
		return nil, trailingInput(decl, source)
	}
	values := spec.ChildByFieldName("value")
	if values == nil {
		return nil, &ParseError{Message: "parser: expected an expression"}
	}

	var expr *sitter.Node
	for i := uint(0); i < values.NamedChildCount(); i++ {
		child := values.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		if expr != nil {
			return nil, trailingInput(child, source)
		}
		expr = child
	}
	if expr == nil {
		return nil, &ParseError{Message: "parser: expected an expression"}
	}
	return expr, nil
}

func trailingInput(node *sitter.Node, source []byte) *ParseError {
	err := &ParseError{
		Message:  "parser: unexpected input after expression",
		Location: locationForNode(node),
		Span:     spanForNode(node),
	}
	err.rebase(len(expressionPrefix), expressionPrefix)
	return err
}
