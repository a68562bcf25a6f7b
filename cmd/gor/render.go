package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"gor/interpreter-go/pkg/config"
	"gor/interpreter-go/pkg/driver"
)

var (
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	successColorFG = pterm.FgLightGreen
	gutterColorFG  = pterm.FgGray
)

var logLevels = map[string]pterm.LogLevel{
	"trace":    pterm.LogLevelTrace,
	"debug":    pterm.LogLevelDebug,
	"info":     pterm.LogLevelInfo,
	"warn":     pterm.LogLevelWarn,
	"error":    pterm.LogLevelError,
	"disabled": pterm.LogLevelDisabled,
}

func parseLogLevel(text string) (pterm.LogLevel, error) {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return pterm.LogLevelDisabled, fmt.Errorf("unknown log level %q", text)
	}
	return level, nil
}

func newLogger(w io.Writer, level pterm.LogLevel, json bool) *pterm.Logger {
	logger := pterm.DefaultLogger.WithWriter(w).WithLevel(level)
	if json {
		logger = logger.WithFormatter(pterm.LogFormatterJSON)
	}
	return logger
}

// colorEnabled resolves the configured mode against the output writer.
func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// renderer prints diagnostics the way the terminal allows.
type renderer struct {
	w     io.Writer
	color bool
}

func newRenderer(w io.Writer, mode config.ColorMode) *renderer {
	return &renderer{w: w, color: colorEnabled(mode, w)}
}

func (r *renderer) style(style *pterm.Style, text string) string {
	if !r.color {
		return text
	}
	return style.Sprint(text)
}

func (r *renderer) paint(color pterm.Color, text string) string {
	if !r.color {
		return text
	}
	return color.Sprint(text)
}

// diagnostic prints a banner line and, when the location is known, the
// offending source line with a caret under the column.
func (r *renderer) diagnostic(diag driver.Diagnostic, source []byte) {
	tag, color := r.style(errorStyleBG, " error "), errorColorFG
	if diag.Severity == driver.SeverityWarning {
		tag, color = r.style(warnStyleBG, " warning "), warnColorFG
	}
	fmt.Fprintf(r.w, "%s %s\n", tag, r.paint(color, driver.DescribeDiagnostic(diag)))

	line, ok := sourceLine(source, diag.Location.Line)
	if !ok || diag.Location.Column <= 0 {
		return
	}
	gutter := fmt.Sprintf("%4d | ", diag.Location.Line)
	fmt.Fprintf(r.w, "%s%s\n", r.paint(gutterColorFG, gutter), line)
	indent := strings.Repeat(" ", len(gutter)+min(diag.Location.Column-1, len(line)))
	fmt.Fprintf(r.w, "%s%s\n", indent, r.paint(color, "^"))
}

func (r *renderer) success(text string) string {
	return r.paint(successColorFG, text)
}

func sourceLine(source []byte, line int) (string, bool) {
	if line <= 0 || len(source) == 0 {
		return "", false
	}
	lines := bytes.Split(source, []byte("\n"))
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[line-1]), "\r"), true
}
