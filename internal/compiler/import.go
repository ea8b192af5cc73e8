package compiler

import (
	"fmt"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/parser"
)

// parseImported lexes and parses an imported file's source into a fresh AST,
// per the compiler's import-inlining contract in spec.md §4.6.
func parseImported(src string) (*ast.Node, error) {
	bag := diag.NewBag(100)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		return nil, fmt.Errorf("%d parse error(s) in imported file", bag.Len())
	}
	return root, nil
}
