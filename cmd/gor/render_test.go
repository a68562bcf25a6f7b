package main

import (
	"bytes"
	"strings"
	"testing"

	"gor/interpreter-go/pkg/config"
	"gor/interpreter-go/pkg/driver"
)

func TestRenderersKeepTheirOwnColorSetting(t *testing.T) {
	var plainOut, colorOut bytes.Buffer
	plain := newRenderer(&plainOut, config.ColorNever)
	colored := newRenderer(&colorOut, config.ColorAlways)
	if plain.color || !colored.color {
		t.Fatalf("color flags: plain=%v colored=%v", plain.color, colored.color)
	}

	diag := driver.Diagnostic{
		Severity: driver.SeverityError,
		Stage:    "lower",
		Message:  "function f declared more than once",
		Location: driver.DiagnosticLocation{Path: "a.go", Line: 1, Column: 6},
	}
	source := []byte("func f() {}\n")
	colored.diagnostic(diag, source)
	plain.diagnostic(diag, source)

	got := plainOut.String()
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("plain renderer emitted escape codes after a colored one was created: %q", got)
	}
	want := " error  lower: a.go:1:6 function f declared more than once\n" +
		"   1 | func f() {}\n" +
		"            ^\n"
	if got != want {
		t.Fatalf("plain output:\ngot  %q\nwant %q", got, want)
	}
}
