package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"gor/interpreter-go/pkg/driver"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const sampleModule = `
package sample

import (
	"fmt"
	"os"
)

func main() {}

func add(a, b int) int {
	return a + b
}
`

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || strings.TrimSpace(out) != cliToolVersion {
		t.Fatalf("version: code %d, output %q", code, out)
	}
	code, out, _ = runCLI(t, "help")
	if code != 0 || !strings.Contains(out, "gor lower") {
		t.Fatalf("help: code %d, output %q", code, out)
	}
	if code, _, errOut := runCLI(t); code != 1 || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("no args: code %d, stderr %q", code, errOut)
	}
	if code, _, errOut := runCLI(t, "frobnicate"); code != 1 || !strings.Contains(errOut, "unknown command") {
		t.Fatalf("unknown command: code %d, stderr %q", code, errOut)
	}
}

func TestLowerYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, sampleModule)

	code, out, errOut := runCLI(t, "lower", path)
	if code != 0 {
		t.Fatalf("lower exit %d: %s", code, errOut)
	}
	var summary driver.ModuleSummary
	if err := yaml.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if summary.Package != "sample" {
		t.Fatalf("package: got %q", summary.Package)
	}
	if strings.Join(summary.Imports, ",") != "fmt,os" {
		t.Fatalf("imports: got %v", summary.Imports)
	}
	if len(summary.Functions) != 2 || summary.Functions[0].Name != "add" || strings.Join(summary.Functions[0].Params, ",") != "a,b" {
		t.Fatalf("functions: got %+v", summary.Functions)
	}
}

func TestLowerText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, sampleModule)

	code, out, errOut := runCLI(t, "lower", "-format", "text", path)
	if code != 0 {
		t.Fatalf("lower exit %d: %s", code, errOut)
	}
	want := "package sample\nimport \"fmt\"\nimport \"os\"\nfunc add(a, b)\nfunc main()\n"
	if out != want {
		t.Fatalf("text output:\n got %q\nwant %q", out, want)
	}
}

func TestLowerReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.go")
	writeFile(t, path, "package bad\n\nvar x = 1")

	code, out, errOut := runCLI(t, "lower", path)
	if code != 1 || out != "" {
		t.Fatalf("expected failure, got code %d, stdout %q", code, out)
	}
	if !strings.Contains(errOut, "bad.go:3:1") || !strings.Contains(errOut, "unexpected rule var_declaration") {
		t.Fatalf("diagnostic missing location or message: %q", errOut)
	}
	if !strings.Contains(errOut, "   3 | var x = 1") || !strings.Contains(errOut, "^") {
		t.Fatalf("diagnostic missing source excerpt: %q", errOut)
	}
}

func TestLowerUsesConfiguredDuplicatePolicy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gor.yml"), "lowering:\n  duplicate_functions: error\n")
	path := filepath.Join(dir, "dup.go")
	writeFile(t, path, "package dup\n\nfunc f() {}\n\nfunc f() {}")

	code, _, errOut := runCLI(t, "lower", path)
	if code != 1 || !strings.Contains(errOut, "function f declared more than once") {
		t.Fatalf("expected duplicate failure, got code %d: %q", code, errOut)
	}

	code, _, errOut = runCLI(t, "lower", "-config", filepath.Join(dir, "missing.yml"), path)
	if code != 1 || !strings.Contains(errOut, "missing.yml") {
		t.Fatalf("expected config error, got code %d: %q", code, errOut)
	}
}

func TestLowerFromRevision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	writeFile(t, path, "package committed")

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add("main.go"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "gor", Email: "gor@example.com", When: time.Now()},
	}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	writeFile(t, path, "package working")

	code, out, errOut := runCLI(t, "lower", "-format", "text", "-rev", "HEAD", path)
	if code != 0 {
		t.Fatalf("lower exit %d: %s", code, errOut)
	}
	if out != "package committed\n" {
		t.Fatalf("output: %q", out)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "package a\n\nfunc A() {}")
	writeFile(t, filepath.Join(dir, "nested", "b.go"), "package b\n\nimport \"a\"")

	code, out, errOut := runCLI(t, "check", "-workers", "2", dir)
	if code != 0 {
		t.Fatalf("check exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != "ok: 2 files lowered" {
		t.Fatalf("output: %q", out)
	}

	writeFile(t, filepath.Join(dir, "nested", "c.go"), "func orphan() {}")
	code, out, errOut = runCLI(t, "check", dir)
	if code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
	if strings.TrimSpace(out) != "1 of 3 files failed" {
		t.Fatalf("output: %q", out)
	}
	if !strings.Contains(errOut, "module must have package set") {
		t.Fatalf("stderr: %q", errOut)
	}
}

func TestEvalStatic(t *testing.T) {
	cases := map[string]string{
		"1 + 2":        "3",
		"2 + 3 * 4":    "14",
		"(1 + 2) * 3":  "9",
		"6 &^ 10":      "4",
		"13 << 20":     "13631488",
		"100000 >> 10": "97",
	}
	for expr, want := range cases {
		code, out, errOut := runCLI(t, "eval", expr)
		if code != 0 {
			t.Fatalf("eval %q exit %d: %s", expr, code, errOut)
		}
		if strings.TrimSpace(out) != want {
			t.Fatalf("eval %q: got %q, want %q", expr, out, want)
		}
	}
	if code, out, _ := runCLI(t, "eval", "--", "-1"); code != 0 || strings.TrimSpace(out) != "-1" {
		t.Fatalf("eval -1: code %d, output %q", code, out)
	}
}

func TestEvalRuntimeBindings(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gor.yml")
	writeFile(t, cfgPath, "bindings:\n  base: 10\n")

	code, out, errOut := runCLI(t, "eval", "-config", cfgPath, "-D", "x=0x2", "base * x + 1")
	if code != 0 {
		t.Fatalf("eval exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != "21" {
		t.Fatalf("output: %q", out)
	}

	code, out, errOut = runCLI(t, "eval", "-config", cfgPath, "-D", "base=1", "base + 1")
	if code != 0 || strings.TrimSpace(out) != "2" {
		t.Fatalf("flag binding should shadow config: code %d, output %q, stderr %q", code, out, errOut)
	}

	code, out, errOut = runCLI(t, "eval", "-config", cfgPath, "-D", "x=1", "-D", "x=2", "x")
	if code != 0 || strings.TrimSpace(out) != "2" {
		t.Fatalf("repeated binding: code %d, output %q", code, out)
	}
	if !strings.Contains(errOut, "more than once") {
		t.Fatalf("expected a warning for the repeated binding, got %q", errOut)
	}

	code, _, errOut = runCLI(t, "eval", "-config", cfgPath, "base + missing")
	if code != 1 || !strings.Contains(errOut, "unresolved identifier missing") {
		t.Fatalf("expected unresolved failure, got code %d: %q", code, errOut)
	}
}

func TestEvalLeadingMinus(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "-1"}, "-1"},
		{[]string{"eval", "-(2 * 3) + 1"}, "-5"},
		{[]string{"eval", "-D", "x=4", "-2", "*", "x"}, "-8"},
		{[]string{"eval", "-log-level", "error", "-7"}, "-7"},
		{[]string{"eval", "-fold", "-(2 * 3)"}, "-6"},
		{[]string{"eval", "-D", "x=3", "--", "-x"}, "-3"},
	}
	for _, tc := range cases {
		code, out, errOut := runCLI(t, tc.args...)
		if code != 0 {
			t.Fatalf("%v exit %d: %s", tc.args, code, errOut)
		}
		if strings.TrimSpace(out) != tc.want {
			t.Fatalf("%v: got %q, want %q", tc.args, out, tc.want)
		}
	}
}

func TestSplitExpressionArgs(t *testing.T) {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.String("config", "", "")
	fs.Bool("fold", false, "")
	cases := []struct {
		args  []string
		flags []string
		expr  []string
	}{
		{[]string{"-1"}, []string{}, []string{"-1"}},
		{[]string{"-fold", "-(1)"}, []string{"-fold"}, []string{"-(1)"}},
		{[]string{"-config", "-1", "2"}, []string{"-config", "-1", "2"}, nil},
		{[]string{"-config=a.yml", "-3"}, []string{"-config=a.yml"}, []string{"-3"}},
		{[]string{"--", "-x"}, []string{"--", "-x"}, nil},
		{[]string{"-x"}, []string{"-x"}, nil},
	}
	for _, tc := range cases {
		flags, expr := splitExpressionArgs(fs, tc.args)
		if !reflect.DeepEqual(flags, tc.flags) || !reflect.DeepEqual(expr, tc.expr) {
			t.Fatalf("%v: got flags %q expr %q, want %q %q", tc.args, flags, expr, tc.flags, tc.expr)
		}
	}
}

func TestEvalFold(t *testing.T) {
	code, out, errOut := runCLI(t, "eval", "-fold", "x + (2 * 3) - -1")
	if code != 0 {
		t.Fatalf("eval exit %d: %s", code, errOut)
	}
	if strings.TrimSpace(out) != "x + 6 - -1" {
		t.Fatalf("output: %q", out)
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "1 / 0"}, "division by zero"},
		{[]string{"eval", "7 % (1 - 1)"}, "modulo by zero"},
		{[]string{"eval", "1 +"}, "syntax error"},
		{[]string{"eval", "1 == 1"}, "unexpected rule =="},
		{[]string{"eval", "-D", "broken", "1"}, "expected name=value"},
		{[]string{"eval", "-log-level", "loud", "1"}, "unknown log level"},
	}
	for _, tc := range cases {
		code, _, errOut := runCLI(t, tc.args...)
		if code == 0 {
			t.Fatalf("%v: expected failure", tc.args)
		}
		if !strings.Contains(errOut, tc.want) {
			t.Fatalf("%v: stderr %q does not mention %q", tc.args, errOut, tc.want)
		}
	}
}

func TestBindingFlags(t *testing.T) {
	var b bindingFlags
	if err := b.Set("a=1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := b.Set(" b = two "); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if got := b.String(); got != "a=1,b=two" {
		t.Fatalf("String: got %q", got)
	}
	if err := b.Set("=1"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestSourceLine(t *testing.T) {
	src := []byte("one\r\ntwo\nthree")
	if line, ok := sourceLine(src, 1); !ok || line != "one" {
		t.Fatalf("line 1: %q %v", line, ok)
	}
	if line, ok := sourceLine(src, 3); !ok || line != "three" {
		t.Fatalf("line 3: %q %v", line, ok)
	}
	if _, ok := sourceLine(src, 4); ok {
		t.Fatalf("line 4 should not exist")
	}
}
