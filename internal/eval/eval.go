// Package eval implements the tree-walking evaluator backend, per spec.md
// §4.4. Unlike the bytecode/VM backend, it executes the AST directly and
// supports the full built-in surface, including user-defined functions.
package eval

import (
	"strconv"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/value"
)

// Evaluator walks an AST against a chained Environment, writing `print`
// output through Out.
type Evaluator struct {
	Out      func(string)
	builtins map[string]value.Builtin
	// Importer resolves an import path to source text, mirroring the
	// compiler backend's Importer contract.
	Importer func(path string) (string, error)
	visited  map[string]bool
}

// New creates an Evaluator with the standard built-in surface registered.
func New(out func(string)) *Evaluator {
	e := &Evaluator{Out: out, visited: map[string]bool{}}
	e.builtins = standardBuiltins(e)
	return e
}

// Eval evaluates root (always a block) against env and returns the last
// statement's value, discarding intermediate ones per spec.md §4.4's
// block rule.
func (e *Evaluator) Eval(n *ast.Node, scope *env.Environment) (value.Value, error) {
	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}

	switch n.Kind {
	case ast.KindBlock:
		result := value.Null
		for _, stmt := range n.Statements {
			v, err := e.Eval(stmt, scope)
			if err != nil {
				return value.Null, err
			}
			result = v
		}
		return result, nil

	case ast.KindLiteral:
		return literalValue(n)

	case ast.KindVariable:
		v, ok := scope.Get(n.Name)
		if !ok {
			return value.Null, diag.Errorf(diag.CodeUndefinedVariable, pos, "undefined variable %q", n.Name)
		}
		return v, nil

	case ast.KindAssignment:
		v, err := e.Eval(n.Right, scope)
		if err != nil {
			return value.Null, err
		}
		scope.Set(n.Name, v)
		return v, nil

	case ast.KindVariableDecl:
		v := value.Null
		if n.Init != nil {
			var err error
			v, err = e.Eval(n.Init, scope)
			if err != nil {
				return value.Null, err
			}
		}
		scope.Set(n.Name, v)
		return value.Null, nil

	case ast.KindUnaryOp:
		return e.evalUnaryOp(n, scope)
	case ast.KindBinaryOp:
		return e.evalBinaryOp(n, scope)

	case ast.KindIf:
		cond, err := e.Eval(n.Cond, scope)
		if err != nil {
			return value.Null, err
		}
		if cond.Kind != value.KindBoolean {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "if condition must be boolean, got %s", cond.Kind)
		}
		if cond.Bool {
			return e.Eval(n.Then, env.NewChild(scope))
		}
		if n.Else != nil {
			return e.Eval(n.Else, env.NewChild(scope))
		}
		return value.Null, nil

	case ast.KindWhile:
		for {
			cond, err := e.Eval(n.Cond, scope)
			if err != nil {
				return value.Null, err
			}
			if cond.Kind != value.KindBoolean {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "while condition must be boolean, got %s", cond.Kind)
			}
			if !cond.Bool {
				return value.Null, nil
			}
			if _, err := e.Eval(n.Then, env.NewChild(scope)); err != nil {
				return value.Null, err
			}
		}

	case ast.KindFor:
		forScope := env.NewChild(scope)
		if n.Init != nil {
			if _, err := e.Eval(n.Init, forScope); err != nil {
				return value.Null, err
			}
		}
		for {
			if n.Cond != nil {
				cond, err := e.Eval(n.Cond, forScope)
				if err != nil {
					return value.Null, err
				}
				if cond.Kind != value.KindBoolean {
					return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "for condition must be boolean, got %s", cond.Kind)
				}
				if !cond.Bool {
					break
				}
			}
			if _, err := e.Eval(n.Then, env.NewChild(forScope)); err != nil {
				return value.Null, err
			}
			if n.Incr != nil {
				if _, err := e.Eval(n.Incr, forScope); err != nil {
					return value.Null, err
				}
			}
		}
		return value.Null, nil

	case ast.KindFunctionDef:
		fn := &value.UserFunction{Name: n.Name, Params: n.Params, Body: n.Body}
		scope.Set(n.Name, value.UserFunctionValue(fn))
		return value.Null, nil

	case ast.KindFunctionCall:
		return e.evalFunctionCall(n, scope)

	case ast.KindArrayLiteral:
		elements := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.Eval(el, scope)
			if err != nil {
				return value.Null, err
			}
			elements[i] = v
		}
		return value.Array(elements), nil

	case ast.KindIndexAccess:
		arr, err := e.Eval(n.Array, scope)
		if err != nil {
			return value.Null, err
		}
		if arr.Kind != value.KindArray {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "cannot index into %s", arr.Kind)
		}
		idx, err := e.Eval(n.Index, scope)
		if err != nil {
			return value.Null, err
		}
		if idx.Kind != value.KindNumber {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "array index must be a number, got %s", idx.Kind)
		}
		i := int(idx.Number)
		if i < 0 || i >= len(arr.Elements) {
			return value.Null, diag.Errorf(diag.CodeIndexOutOfBounds, pos, "index %d out of range for array of length %d", i, len(arr.Elements))
		}
		return arr.Elements[i].Clone(), nil

	case ast.KindImport:
		return e.evalImport(n, scope)

	case ast.KindSwitch:
		// Never built by the parser and never executed: neither backend runs switch/case
		// bodies, so evaluating one is a type-mismatch-flavored error
		// rather than a silent no-op.
		return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "switch statements are not supported")

	default:
		return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "cannot evaluate node kind %v", n.Kind)
	}
}

func literalValue(n *ast.Node) (value.Value, error) {
	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}
	switch n.LiteralKind {
	case ast.LiteralNumber:
		f, err := strconv.ParseFloat(n.Lexeme, 64)
		if err != nil {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "malformed number literal %q: %v", n.Lexeme, err)
		}
		return value.Number(f), nil
	case ast.LiteralString:
		return value.String(n.Lexeme), nil
	case ast.LiteralBoolean:
		return value.Bool(n.Lexeme == "true"), nil
	case ast.LiteralNull:
		return value.Null, nil
	default:
		return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "unknown literal kind")
	}
}
