package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gor/interpreter-go/pkg/parser"
	"gor/interpreter-go/pkg/syntax"
)

func main() {
	exprFlag := flag.Bool("expr", false, "Parse stdin as a single expression")
	flag.Parse()

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read source: %v", err)
	}

	out, err := dumpPairs(source, *exprFlag)
	if err != nil {
		exitErr("%v", err)
	}

	if _, err := os.Stdout.Write(out); err != nil {
		exitErr("write output: %v", err)
	}
}

// dumpPairs renders the rule-tagged pairs produced for source as JSON.
func dumpPairs(source []byte, expression bool) ([]byte, error) {
	p, err := parser.NewSourceParser()
	if err != nil {
		return nil, fmt.Errorf("init parser: %w", err)
	}
	defer p.Close()

	var pairs *syntax.Pairs
	if expression {
		pairs, err = p.ParseExpression(source)
	} else {
		pairs, err = p.ParseSource(source)
	}
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	out, err := json.Marshal(pairs.Rest())
	if err != nil {
		return nil, fmt.Errorf("encode pairs: %w", err)
	}
	return append(out, '\n'), nil
}

func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
