package driver

import (
	"errors"
	"fmt"
	"strings"

	"gor/interpreter-go/pkg/eval"
	"gor/interpreter-go/pkg/lower"
	"gor/interpreter-go/pkg/parser"
	"gor/interpreter-go/pkg/syntax"
)

// DiagnosticSeverity captures diagnostic levels.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticLocation references a source span for diagnostics.
type DiagnosticLocation struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// Diagnostic is a structured, renderable failure from any pipeline stage.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Stage    string
	Message  string
	Location DiagnosticLocation
}

// DiagnosticFor converts a pipeline error into a diagnostic. Byte spans are
// mapped to 1-based lines and columns using the unit's source.
func DiagnosticFor(unit Unit, err error) Diagnostic {
	diag := Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
		Location: DiagnosticLocation{Path: unit.Path},
	}

	var (
		parseErr *parser.ParseError
		lowerErr *lower.Error
		evalErr  *eval.Error
	)
	switch {
	case errors.As(err, &parseErr):
		diag.Stage = "parser"
		diag.Location.Line = parseErr.Location.Line
		diag.Location.Column = parseErr.Location.Column
		diag.Location.EndLine = parseErr.Location.EndLine
		diag.Location.EndColumn = parseErr.Location.EndColumn
	case errors.As(err, &lowerErr):
		diag.Stage = "lower"
		diag.Location = locate(unit, lowerErr.Span)
	case errors.As(err, &evalErr):
		diag.Stage = "eval"
		diag.Location = locate(unit, evalErr.Span)
	}
	if diag.Stage != "" {
		diag.Message = strings.TrimSpace(strings.TrimPrefix(diag.Message, diag.Stage+":"))
	}
	return diag
}

// DescribeDiagnostic formats a diagnostic for CLI output.
func DescribeDiagnostic(diag Diagnostic) string {
	message := strings.TrimSpace(diag.Message)
	location := formatDiagnosticLocation(diag.Location)
	prefix := ""
	if diag.Stage != "" {
		prefix = diag.Stage + ": "
	}
	if diag.Severity == SeverityWarning {
		prefix = "warning: " + prefix
	}
	if location != "" {
		return fmt.Sprintf("%s%s %s", prefix, location, message)
	}
	return fmt.Sprintf("%s%s", prefix, message)
}

func formatDiagnosticLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	line := loc.Line
	column := loc.Column
	switch {
	case path != "" && line > 0 && column > 0:
		return fmt.Sprintf("%s:%d:%d", path, line, column)
	case path != "" && line > 0:
		return fmt.Sprintf("%s:%d", path, line)
	case path != "":
		return path
	case line > 0 && column > 0:
		return fmt.Sprintf("line %d, column %d", line, column)
	case line > 0:
		return fmt.Sprintf("line %d", line)
	default:
		return ""
	}
}

func locate(unit Unit, span syntax.Span) DiagnosticLocation {
	loc := DiagnosticLocation{Path: unit.Path}
	if span == (syntax.Span{}) {
		return loc
	}
	loc.Line, loc.Column = lineColumn(unit.Source, span.Start)
	loc.EndLine, loc.EndColumn = lineColumn(unit.Source, span.End)
	return loc
}

// lineColumn maps a byte offset to a 1-based line and byte column.
func lineColumn(source []byte, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line, column := 1, 1
	for _, b := range source[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
