package main

import (
	"context"
	"fmt"
	"io"

	"gor/interpreter-go/pkg/driver"
)

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs, common := newFlagSet("check", stderr)
	workers := fs.Int("workers", 0, "concurrent workers")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "check requires at least one file or directory")
		return 2
	}
	if *workers < 0 {
		fmt.Fprintln(stderr, "-workers must not be negative")
		return 2
	}

	sess, err := common.open(fs.Arg(0), stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	units, err := driver.CollectUnits(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	opts := driver.Options{Lowering: sess.cfg.LowerOptions(), Workers: sess.cfg.Workers}
	if *workers > 0 {
		opts.Workers = *workers
	}
	sess.logger.Debug("lowering units", sess.logger.Args("units", len(units), "workers", opts.Workers))

	results, err := driver.LowerUnits(context.Background(), units, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	failed := 0
	for _, res := range results {
		if diag, ok := res.Diagnostic(); ok {
			failed++
			sess.render.diagnostic(diag, res.Unit.Source)
		}
	}
	if failed > 0 {
		fmt.Fprintf(stdout, "%d of %d files failed\n", failed, len(results))
		return 1
	}
	fmt.Fprintln(stdout, sess.render.success(fmt.Sprintf("ok: %d files lowered", len(results))))
	return 0
}
