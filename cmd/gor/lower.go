package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gor/interpreter-go/pkg/driver"
	"gor/interpreter-go/pkg/source"
)

func runLower(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("lower", stderr)
	rev := fs.String("rev", "", "git revision")
	repo := fs.String("repo", "", "git repository directory")
	format := fs.String("format", "yaml", "output format")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "lower requires exactly one source file")
		return 2
	}
	path := fs.Arg(0)
	if *format != "yaml" && *format != "text" {
		fmt.Fprintf(stderr, "unknown format %q (want yaml or text)\n", *format)
		return 2
	}

	sess, err := common.open(filepath.Dir(path), stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var file *source.File
	if *rev != "" {
		file, err = source.ReadRevision(*repo, *rev, path)
	} else {
		file, err = source.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if file.Revision != "" {
		sess.logger.Debug("read source from revision", sess.logger.Args("path", path, "commit", file.Revision))
	}

	unit := driver.Unit{Path: path, Source: file.Source}
	res, err := driver.LowerUnit(unit, sess.cfg.LowerOptions())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if diag, failed := res.Diagnostic(); failed {
		sess.render.diagnostic(diag, unit.Source)
		return 1
	}

	summary := driver.Summarize(path, res.Module)
	if *format == "text" {
		writeSummaryText(stdout, summary)
		return 0
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := enc.Close(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func writeSummaryText(w io.Writer, summary driver.ModuleSummary) {
	fmt.Fprintf(w, "package %s\n", summary.Package)
	for _, imp := range summary.Imports {
		fmt.Fprintf(w, "import %q\n", imp)
	}
	for _, fn := range summary.Functions {
		fmt.Fprintf(w, "func %s(%s)\n", fn.Name, strings.Join(fn.Params, ", "))
	}
}
