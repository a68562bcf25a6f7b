package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  gor lower [flags] FILE        lower a source file and print its module summary
  gor check [flags] PATH...     lower files and directories, reporting diagnostics
  gor eval [flags] EXPR         evaluate an integer expression
  gor version                   print the tool version
  gor help                      show this message

Common flags:
  -config FILE      configuration file (default: nearest gor.yml)
  -log-level LEVEL  trace, debug, info, warn, error or disabled (default warn)
  -log-json         emit log lines as JSON

lower flags:
  -rev REV          read FILE as of a git revision
  -repo DIR         repository to read the revision from (default: FILE's directory)
  -format FORMAT    yaml or text (default yaml)

check flags:
  -workers N        concurrent workers (default: config, then GOMAXPROCS)

eval flags:
  -D name=value     bind a name for runtime evaluation (repeatable)
  -fold             print the constant-folded expression instead of its value

  A leading minus on a literal (gor eval -1) is read as the expression.
  Put -- before an expression such as -x: gor eval -D x=3 -- -x
`)
}
