package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

// Language returns the tree-sitter grammar used for source files.
func Language() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_go.Language())
}
