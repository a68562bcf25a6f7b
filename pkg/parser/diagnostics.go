package parser

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"gor/interpreter-go/pkg/syntax"
)

// SourceLocation captures a 1-based line/column range for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location.
type ParseError struct {
	Message  string
	Location SourceLocation
	Span     syntax.Span
}

func (e *ParseError) Error() string {
	return e.Message
}

func syntaxError(root *sitter.Node) *ParseError {
	missing := findFirstMissingNode(root)
	errorNode := missing
	if errorNode == nil {
		errorNode = findFirstErrorNode(root)
	}
	if errorNode == nil {
		errorNode = root
	}
	location := SourceLocation{}
	span := syntax.Span{}
	if errorNode != nil {
		location = locationForNode(errorNode)
		span = spanForNode(errorNode)
	}
	expected := ""
	if missing != nil {
		expected = formatExpectedKind(missing.Kind())
	}
	message := "parser: syntax error"
	if expected != "" {
		message = fmt.Sprintf("parser: syntax error: expected %s", expected)
	}
	return &ParseError{
		Message:  message,
		Location: location,
		Span:     span,
	}
}

// rebase maps a location in wrapped text back onto the caller's text,
// which started offset bytes in, right after prefix.
func (e *ParseError) rebase(offset int, prefix string) {
	lines := strings.Count(prefix, "\n")
	column := len(prefix) - (strings.LastIndex(prefix, "\n") + 1)
	e.Location.Line, e.Location.Column = rebasePosition(e.Location.Line, e.Location.Column, lines, column)
	e.Location.EndLine, e.Location.EndColumn = rebasePosition(e.Location.EndLine, e.Location.EndColumn, lines, column)
	e.Span = syntax.Span{Start: max(e.Span.Start-offset, 0), End: max(e.Span.End-offset, 0)}
}

func rebasePosition(line, col, prefixLines, prefixColumn int) (int, int) {
	if line <= prefixLines {
		return 1, 1
	}
	line -= prefixLines
	if line == 1 {
		col = max(col-prefixColumn, 1)
	}
	return line, col
}

func locationForNode(node *sitter.Node) SourceLocation {
	if node == nil {
		return SourceLocation{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return SourceLocation{
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
	}
}

func findFirstMissingNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsMissing() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func findFirstErrorNode(root *sitter.Node) *sitter.Node {
	var best *sitter.Node
	walkNodes(root, func(node *sitter.Node) {
		if node == nil || !node.IsError() {
			return
		}
		if best == nil || node.StartByte() < best.StartByte() {
			best = node
		}
	})
	return best
}

func formatExpectedKind(kind string) string {
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return "token"
	}
	isSymbol := true
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			isSymbol = false
			break
		}
	}
	if len(trimmed) == 1 || isSymbol {
		return fmt.Sprintf("'%s'", trimmed)
	}
	return strings.ReplaceAll(trimmed, "_", " ")
}
