// Package compiler lowers an AST into a bytecode Chunk for the stack VM, per
// spec.md §4.6.
package compiler

import (
	"fmt"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/symbols"
	"github.com/simondevenish/EmberScript/internal/value"
)

// Compiler is a one-pass recursive walker that emits into a Chunk using a
// shared symbol table.
type Compiler struct {
	chunk   *chunk.Chunk
	symbols *symbols.Table
	// Importer resolves an import path to source text. Left nil, import
	// statements fail to compile; the driver wires a real filesystem
	// resolver.
	Importer func(path string) (string, error)
	visited  map[string]bool
}

// New creates a compiler emitting into c using the given symbol table.
func New(c *chunk.Chunk, symbolTable *symbols.Table) *Compiler {
	return &Compiler{chunk: c, symbols: symbolTable, visited: map[string]bool{}}
}

// Compile compiles the root AST node (always a block) into the chunk,
// finishing with an EOF instruction, and asserts that every jump placeholder
// was patched.
func Compile(root *ast.Node, c *chunk.Chunk, symbolTable *symbols.Table) error {
	comp := New(c, symbolTable)
	return comp.CompileRoot(root)
}

// CompileRoot compiles root and emits the trailing EOF.
func (c *Compiler) CompileRoot(root *ast.Node) error {
	if err := c.compileStatement(root); err != nil {
		return err
	}
	c.chunk.EmitOp(chunk.OpEOF)
	return c.chunk.NoPlaceholdersRemain()
}

func (c *Compiler) compileStatement(n *ast.Node) error {
	switch n.Kind {
	case ast.KindBlock:
		for _, stmt := range n.Statements {
			if err := c.compileStatement(stmt); err != nil {
				return err
			}
		}
		return nil
	case ast.KindVariableDecl:
		return c.compileVariableDecl(n)
	case ast.KindIf:
		return c.compileIf(n)
	case ast.KindWhile:
		return c.compileWhile(n)
	case ast.KindFor:
		return c.compileFor(n)
	case ast.KindFunctionDef:
		// No executable code is emitted; the name is reserved in the symbol
		// table so slot numbering stays stable. Only the evaluator backend
		// runs user functions (spec.md §9).
		_, err := c.symbols.GetOrAdd(n.Name, true)
		return err
	case ast.KindImport:
		return c.compileImport(n)
	case ast.KindSwitch:
		// Reserved per spec.md §9: the parser never builds this node, and no
		// code is emitted for it.
		return nil
	case ast.KindAssignment:
		if err := c.compileExpr(n); err != nil {
			return err
		}
		return nil // STORE_VAR already leaves the stack neutral
	case ast.KindFunctionCall:
		// PRINT and CALL both fully consume their pushed arguments and
		// leave nothing behind, so a call-as-statement needs no trailing
		// POP (unlike every other expression kind below).
		return c.compileExpr(n)
	default:
		// Expression used as a statement: compile it, then POP its result
		// so the net stack effect is 0 (spec.md §8 invariant 2).
		if err := c.compileExpr(n); err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpPop)
		return nil
	}
}

func (c *Compiler) compileVariableDecl(n *ast.Node) error {
	if n.Init != nil {
		if err := c.compileExpr(n.Init); err != nil {
			return err
		}
	} else {
		idx, err := c.chunk.AddConstant(value.Null)
		if err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpLoadConst)
		c.chunk.EmitByte(idx)
	}
	slot, err := c.symbols.GetOrAdd(n.Name, false)
	if err != nil {
		return err
	}
	c.chunk.EmitOp(chunk.OpStoreVar)
	c.chunk.EmitByte(byte(slot))
	return nil
}

func (c *Compiler) compileImport(n *ast.Node) error {
	if c.Importer == nil {
		return fmt.Errorf("import %q: no importer configured", n.Path)
	}
	if c.visited[n.Path] {
		return nil // not required to detect cycles per spec.md §9, but avoid infinite recursion
	}
	c.visited[n.Path] = true

	src, err := c.Importer(n.Path)
	if err != nil {
		return fmt.Errorf("import %q: %w", n.Path, err)
	}
	imported, diagErr := parseImported(src)
	if diagErr != nil {
		return fmt.Errorf("import %q: %w", n.Path, diagErr)
	}
	return c.compileStatement(imported)
}
