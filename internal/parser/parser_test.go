package parser_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	bag := diag.NewBag(0)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %+v", src, bag.Items())
	}
	return root
}

func TestPrecedenceAdditionBeforeMultiplication(t *testing.T) {
	root := mustParse(t, "a + b * c;")
	expr := root.Statements[0]
	if expr.Kind != ast.KindBinaryOp || expr.Op != "+" {
		t.Fatalf("expected top-level +, got %+v", expr)
	}
	if expr.Right.Kind != ast.KindBinaryOp || expr.Right.Op != "*" {
		t.Fatalf("expected right side to be a*, got %+v", expr.Right)
	}
}

func TestPrecedenceEqualityBeforeAnd(t *testing.T) {
	root := mustParse(t, "a == b && c == d;")
	expr := root.Statements[0]
	if expr.Kind != ast.KindBinaryOp || expr.Op != "&&" {
		t.Fatalf("expected top-level &&, got %+v", expr)
	}
	if expr.Left.Op != "==" || expr.Right.Op != "==" {
		t.Fatalf("expected both sides to be ==, got left=%+v right=%+v", expr.Left, expr.Right)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// `x = y = 1` nests right-to-left: the outer assignment's value is the
	// inner assignment to y.
	root := mustParse(t, "x = y = 1;")
	stmt := root.Statements[0]
	if stmt.Kind != ast.KindAssignment || stmt.Name != "x" {
		t.Fatalf("got %+v", stmt)
	}
	if stmt.Right == nil || stmt.Right.Kind != ast.KindAssignment || stmt.Right.Name != "y" {
		t.Fatalf("expected inner assignment to y, got %+v", stmt.Right)
	}
}

func TestNestedIndexAccessComposesLeftToRight(t *testing.T) {
	root := mustParse(t, "a[0][1];")
	expr := root.Statements[0]
	if expr.Kind != ast.KindIndexAccess {
		t.Fatalf("got %+v", expr)
	}
	inner := expr.Array
	if inner.Kind != ast.KindIndexAccess || inner.Array.Name != "a" {
		t.Fatalf("expected nested index access over variable a, got %+v", inner)
	}
}

func TestIfElseIfChain(t *testing.T) {
	root := mustParse(t, `
		if (n == 0) { print("zero"); }
		else if (n < 5) { print("small"); }
		else { print("big"); }
	`)
	ifNode := root.Statements[0]
	if ifNode.Kind != ast.KindIf {
		t.Fatalf("got %+v", ifNode)
	}
	if ifNode.Else == nil || ifNode.Else.Kind != ast.KindIf {
		t.Fatalf("expected chained if in else branch, got %+v", ifNode.Else)
	}
}

func TestForHeaderHasNoTerminatingSemicolonOnInit(t *testing.T) {
	root := mustParse(t, "for (var i = 0; i < 3; i = i + 1) { print(i); }")
	forNode := root.Statements[0]
	if forNode.Kind != ast.KindFor {
		t.Fatalf("got %+v", forNode)
	}
	if forNode.Init == nil || forNode.Init.Kind != ast.KindVariableDecl {
		t.Fatalf("expected var-decl init, got %+v", forNode.Init)
	}
	if forNode.Cond == nil || forNode.Incr == nil {
		t.Fatalf("expected cond and incr to be present")
	}
}

func TestFunctionDefEmptyParams(t *testing.T) {
	root := mustParse(t, "function f() { }")
	fn := root.Statements[0]
	if fn.Kind != ast.KindFunctionDef || len(fn.Params) != 0 {
		t.Fatalf("got %+v", fn)
	}
}

func TestArrayLiteralTrailingCommaAndEmpty(t *testing.T) {
	root := mustParse(t, "var a = [1, 2, 3,]; var b = [];")
	a := root.Statements[0]
	if len(a.Init.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(a.Init.Elements))
	}
	b := root.Statements[1]
	if len(b.Init.Elements) != 0 {
		t.Fatalf("expected 0 elements, got %d", len(b.Init.Elements))
	}
}

func TestParseErrorRecoveryContinuesAtNextStatement(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript("var x = ; var y = 2;", bag)
	if !bag.HasErrors() {
		t.Fatalf("expected a parse error")
	}
	if len(root.Statements) == 0 {
		t.Fatalf("expected parsing to continue after recovery")
	}
}
