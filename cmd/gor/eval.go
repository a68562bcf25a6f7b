package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"gor/interpreter-go/pkg/ast"
	"gor/interpreter-go/pkg/driver"
	"gor/interpreter-go/pkg/eval"
	"gor/interpreter-go/pkg/lower"
	"gor/interpreter-go/pkg/parser"
	"gor/interpreter-go/pkg/runtime"
)

const exprPath = "<expr>"

func runEval(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("eval", stderr)
	var bindings bindingFlags
	fs.Var(&bindings, "D", "name=value binding")
	fold := fs.Bool("fold", false, "print the folded expression")
	flagArgs, exprArgs := splitExpressionArgs(fs, args)
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}
	exprArgs = append(fs.Args(), exprArgs...)
	if len(exprArgs) == 0 {
		fmt.Fprintln(stderr, "eval requires an expression; put -- before one like -x")
		return 2
	}
	text := strings.Join(exprArgs, " ")
	unit := driver.Unit{Path: exprPath, Source: []byte(text)}

	sess, err := common.open(".", stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	expr, err := parseExpression(unit.Source, sess.cfg.LowerOptions())
	if err != nil {
		sess.render.diagnostic(driver.DiagnosticFor(unit, err), unit.Source)
		return 1
	}

	if *fold {
		folded, err := eval.Fold(expr)
		if err != nil {
			sess.render.diagnostic(driver.DiagnosticFor(unit, err), unit.Source)
			return 1
		}
		fmt.Fprintln(stdout, ast.FormatExpression(folded))
		return 0
	}

	value, ok, err := eval.TryStatic(expr)
	if err != nil {
		sess.render.diagnostic(driver.DiagnosticFor(unit, err), unit.Source)
		return 1
	}
	if !ok {
		sess.logger.Debug("expression needs bindings, evaluating at runtime")
		value, err = eval.Evaluate(context.Background(), expr, evalScope(sess, bindings))
		if err != nil {
			sess.render.diagnostic(driver.DiagnosticFor(unit, err), unit.Source)
			return 1
		}
	}
	fmt.Fprintln(stdout, value.String())
	return 0
}

// evalScope layers -D bindings in a child scope over the configured ones.
func evalScope(sess *session, bindings bindingFlags) *runtime.Environment {
	base := sess.cfg.Environment()
	scope := base.Extend()
	for _, b := range bindings {
		name := ast.Intern(b.name)
		switch {
		case scope.HasInCurrentScope(name):
			sess.logger.Warn("binding given more than once, last value wins", sess.logger.Args("name", b.name))
		case base.Has(name):
			sess.logger.Debug("binding overrides configuration", sess.logger.Args("name", b.name))
		}
		scope.Define(name, runtime.ParseValue(b.value))
	}
	sess.logger.Debug("runtime bindings", sess.logger.Args("config", scope.Parent().Keys(), "flags", scope.Keys()))
	return scope
}

// splitExpressionArgs ends flag parsing at the first argument that reads as
// a negative or otherwise operator-led expression, such as -1 or -(2*3).
// Values of non-boolean flags are never treated as expressions.
func splitExpressionArgs(fs *flag.FlagSet, args []string) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args, nil
		}
		if startsExpression(arg) {
			return args[:i], args[i:]
		}
		if takesValue(fs, arg) {
			i++
		}
	}
	return args, nil
}

func startsExpression(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	switch c := arg[1]; {
	case c >= '0' && c <= '9':
		return true
	case c == '(' || c == '+' || c == '^' || c == ' ':
		return true
	default:
		return false
	}
}

func takesValue(fs *flag.FlagSet, arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return false
	}
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

func parseExpression(src []byte, opts lower.Options) (ast.Expression, error) {
	p, err := parser.NewSourceParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	pairs, err := p.ParseExpression(src)
	if err != nil {
		return nil, err
	}
	return lower.New(opts).LowerExpression(pairs)
}
