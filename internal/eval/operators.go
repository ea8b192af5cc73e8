package eval

import (
	"math"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/value"
)

func (e *Evaluator) evalUnaryOp(n *ast.Node, scope *env.Environment) (value.Value, error) {
	v, err := e.Eval(n.Left, scope)
	if err != nil {
		return value.Null, err
	}
	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}
	switch n.Op {
	case "-":
		if v.Kind != value.KindNumber {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "unary '-' requires a number, got %s", v.Kind)
		}
		return value.Number(-v.Number), nil
	case "!":
		return value.Bool(!v.Truthy()), nil
	default:
		return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "unsupported unary operator %q", n.Op)
	}
}

func (e *Evaluator) evalBinaryOp(n *ast.Node, scope *env.Environment) (value.Value, error) {
	// && and || are evaluator-only (spec.md §4.7's opcode table has no
	// logical operator, so the bytecode backend cannot express them).
	if n.Op == "&&" || n.Op == "||" {
		return e.evalLogicalOp(n, scope)
	}

	left, err := e.Eval(n.Left, scope)
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Right, scope)
	if err != nil {
		return value.Null, err
	}

	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}
	switch n.Op {
	case "+":
		if left.Kind == value.KindNumber && right.Kind == value.KindNumber {
			return value.Number(left.Number + right.Number), nil
		}
		// String-coerce both sides using the %.2f formatter, matching the
		// reference runtime's value-to-string conversion for `+`, not the
		// %g formatter `print` uses.
		return value.String(left.ToStringHelper() + right.ToStringHelper()), nil
	case "-", "*", "/", "%":
		if left.Kind != value.KindNumber || right.Kind != value.KindNumber {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "operator %q requires numeric operands, got %s and %s", n.Op, left.Kind, right.Kind)
		}
		switch n.Op {
		case "-":
			return value.Number(left.Number - right.Number), nil
		case "*":
			return value.Number(left.Number * right.Number), nil
		case "/":
			if right.Number == 0 {
				return value.Null, diag.Errorf(diag.CodeDivideByZero, pos, "division by zero")
			}
			return value.Number(left.Number / right.Number), nil
		case "%":
			if right.Number == 0 {
				return value.Null, diag.Errorf(diag.CodeDivideByZero, pos, "modulo by zero")
			}
			return value.Number(math.Mod(left.Number, right.Number)), nil
		}
	case "==":
		return value.Bool(left.Equal(right)), nil
	case "!=":
		return value.Bool(!left.Equal(right)), nil
	case "<", ">", "<=", ">=":
		if left.Kind != value.KindNumber || right.Kind != value.KindNumber {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "operator %q requires numeric operands, got %s and %s", n.Op, left.Kind, right.Kind)
		}
		switch n.Op {
		case "<":
			return value.Bool(left.Number < right.Number), nil
		case ">":
			return value.Bool(left.Number > right.Number), nil
		case "<=":
			return value.Bool(left.Number <= right.Number), nil
		case ">=":
			return value.Bool(left.Number >= right.Number), nil
		}
	}
	return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "unsupported binary operator %q", n.Op)
}

// evalLogicalOp implements §4.4's "both sides must be boolean; otherwise
// type error" rule. Short-circuit evaluation is not required by the spec,
// so both sides are always evaluated.
func (e *Evaluator) evalLogicalOp(n *ast.Node, scope *env.Environment) (value.Value, error) {
	left, err := e.Eval(n.Left, scope)
	if err != nil {
		return value.Null, err
	}
	right, err := e.Eval(n.Right, scope)
	if err != nil {
		return value.Null, err
	}
	if left.Kind != value.KindBoolean || right.Kind != value.KindBoolean {
		pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}
		return value.Null, diag.Errorf(diag.CodeTypeMismatch, pos, "operator %q requires boolean operands, got %s and %s", n.Op, left.Kind, right.Kind)
	}
	if n.Op == "&&" {
		return value.Bool(left.Bool && right.Bool), nil
	}
	return value.Bool(left.Bool || right.Bool), nil
}
