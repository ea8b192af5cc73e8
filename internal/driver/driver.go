// Package driver wires the lexer, parser, compiler, VM, and evaluator
// together into the operations the ember/emberc CLIs expose, and adds
// batch-level concurrency across independent scripts.
package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/cache"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/compiler"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/eval"
	"github.com/simondevenish/EmberScript/internal/parser"
	"github.com/simondevenish/EmberScript/internal/symbols"
	"github.com/simondevenish/EmberScript/internal/vm"
)

// fileImporter resolves an import path by reading it straight off disk,
// relative to the process's working directory. It backs both the VM and
// evaluator backends' Importer hook.
func fileImporter(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Backend selects which execution engine Run uses.
type Backend int

const (
	// BackendVM compiles to bytecode and runs it on the stack VM.
	// User-defined function calls are a no-op on this backend.
	BackendVM Backend = iota
	// BackendEval walks the AST directly, supporting user-defined
	// functions.
	BackendEval
)

// MaxDiagnostics is the default diagnostic-bag cap, mirroring the teacher's
// --max-diagnostics flag default.
const MaxDiagnostics = 100

// Result carries a run's collected diagnostics and output, and — for the
// VM backend only — the compiled chunk, so callers can cache or serialize
// it.
type Result struct {
	Bag    *diag.Bag
	Output []string
	Chunk  *chunk.Chunk
}

// Run lexes, parses, and executes src on the selected backend. A lex/parse
// failure is reported in Result.Bag without attempting compilation or
// execution.
func Run(src string, backend Backend) (*Result, error) {
	bag := diag.NewBag(MaxDiagnostics)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		return &Result{Bag: bag}, nil
	}

	switch backend {
	case BackendEval:
		return runEval(root, bag)
	default:
		return runVM(root, bag)
	}
}

// SourceHash is the cache key RunCached looks up compiled chunks under: a
// hex-encoded sha256 of the exact source bytes.
func SourceHash(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// RunCached behaves like Run, but for the VM backend it first asks c for a
// chunk already compiled from identical source, skipping lex/parse/compile
// entirely on a hit, and stores a freshly compiled chunk on a miss. c may
// be nil, in which case RunCached is exactly Run — callers without a
// warmed cache pay no extra cost for this path.
func RunCached(src string, backend Backend, c *cache.Disk) (*Result, error) {
	if backend != BackendVM || c == nil {
		return Run(src, backend)
	}

	hash := SourceHash(src)
	if cached, ok, err := c.Lookup(hash); err == nil && ok {
		if ch, err := chunk.Read(cached.Chunk); err == nil {
			var output []string
			m := vm.New(ch)
			bag := diag.NewBag(MaxDiagnostics)
			if err := m.Run(func(s string) { output = append(output, s) }); err != nil {
				return &Result{Bag: bag, Output: output, Chunk: ch}, fmt.Errorf("runtime error: %w", err)
			}
			return &Result{Bag: bag, Output: output, Chunk: ch}, nil
		}
	}

	result, err := Run(src, backend)
	if result.Chunk != nil && !result.Bag.HasErrors() {
		if encoded, encErr := chunk.Write(result.Chunk); encErr == nil {
			_ = c.Store(hash, &cache.CachedChunk{SourceHash: hash, Chunk: encoded})
		}
	}
	return result, err
}

func runVM(root *ast.Node, bag *diag.Bag) (*Result, error) {
	c, err := compileVM(root, bag)
	if err != nil || c == nil {
		return &Result{Bag: bag}, err
	}
	return RunChunk(c, bag)
}

// compileVM lowers root to bytecode without executing it, recording a
// compile failure in bag rather than returning an error.
func compileVM(root *ast.Node, bag *diag.Bag) (*chunk.Chunk, error) {
	c := chunk.New()
	comp := compiler.New(c, symbols.New())
	comp.Importer = fileImporter
	if err := comp.CompileRoot(root); err != nil {
		bag.Errorf(diag.CodeParseError, diag.Pos{}, "compile error: %v", err)
		return nil, nil
	}
	return c, nil
}

// RunChunk executes an already-compiled chunk on a fresh VM, tagging any
// runtime failure the same way Run does. Exported so callers that already
// hold a compiled chunk can run it without a second compile through Run.
// The VM is created internally, so no hook such as Trace can be attached.
func RunChunk(c *chunk.Chunk, bag *diag.Bag) (*Result, error) {
	if bag == nil {
		bag = diag.NewBag(MaxDiagnostics)
	}
	var output []string
	m := vm.New(c)
	if err := m.Run(func(s string) { output = append(output, s) }); err != nil {
		return &Result{Bag: bag, Output: output, Chunk: c}, fmt.Errorf("runtime error: %w", err)
	}
	return &Result{Bag: bag, Output: output, Chunk: c}, nil
}

// CompileChunk lexes, parses, and compiles src to bytecode without
// executing it. Used by ember's --trace path, which needs the chunk to
// attach a trace hook to its own VM.
func CompileChunk(src string) (*Result, error) {
	bag := diag.NewBag(MaxDiagnostics)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		return &Result{Bag: bag}, nil
	}
	c, err := compileVM(root, bag)
	if err != nil || c == nil {
		return &Result{Bag: bag}, err
	}
	return &Result{Bag: bag, Chunk: c}, nil
}

func runEval(root *ast.Node, bag *diag.Bag) (*Result, error) {
	var output []string
	e := eval.New(func(s string) { output = append(output, s) })
	e.Importer = fileImporter
	if _, err := e.Eval(root, env.NewRoot()); err != nil {
		return &Result{Bag: bag, Output: output}, fmt.Errorf("runtime error: %w", err)
	}
	return &Result{Bag: bag, Output: output}, nil
}
