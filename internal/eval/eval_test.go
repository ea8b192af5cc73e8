package eval_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/eval"
	"github.com/simondevenish/EmberScript/internal/parser"
)

func run(t *testing.T, src string) []string {
	t.Helper()
	bag := diag.NewBag(0)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	var lines []string
	e := eval.New(func(s string) { lines = append(lines, s) })
	if _, err := e.Eval(root, env.NewRoot()); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return lines
}

func TestArithmeticAndPrint(t *testing.T) {
	got := run(t, `var x = 2; var y = 3; print(x + y * 4);`)
	want := []string{"14"}
	assertEqual(t, got, want)
}

func TestStringConcatenation(t *testing.T) {
	got := run(t, `var n = "world"; print("Hello, " + n + "!");`)
	want := []string{"Hello, world!"}
	assertEqual(t, got, want)
}

func TestWhileLoopSum(t *testing.T) {
	got := run(t, `var s = 0; var i = 1; while (i <= 5) { s = s + i; i = i + 1; } print(s);`)
	want := []string{"15"}
	assertEqual(t, got, want)
}

func TestForLoopArrayIndex(t *testing.T) {
	got := run(t, `var a = [10, 20, 30]; for (var i = 0; i < 3; i = i + 1) { print(a[i]); }`)
	want := []string{"10", "20", "30"}
	assertEqual(t, got, want)
}

func TestIfElseIfChain(t *testing.T) {
	got := run(t, `
		var n = 7;
		if (n == 0) { print("zero"); } else if (n < 5) { print("small"); } else { print("big"); }
	`)
	want := []string{"big"}
	assertEqual(t, got, want)
}

func TestUserFunctionCall(t *testing.T) {
	// spec.md §8 S6 — evaluator backend only.
	got := run(t, `
		function inc(x) { x = x + 1; print(x); }
		inc(41);
	`)
	want := []string{"42"}
	assertEqual(t, got, want)
}

func TestForLoopHeaderVariableNotVisibleAfterLoop(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`for (var i = 0; i < 3; i = i + 1) { }  print(i);`, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	e := eval.New(func(string) {})
	if _, err := e.Eval(root, env.NewRoot()); err == nil {
		t.Fatalf("expected undefined-variable error after the for loop's scope closed")
	}
}

func TestFunctionParameterNotVisibleToCaller(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`function f(x) { } f(1); print(x);`, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	e := eval.New(func(string) {})
	if _, err := e.Eval(root, env.NewRoot()); err == nil {
		t.Fatalf("expected undefined-variable error: parameter must not leak to the caller's scope")
	}
}

func TestMissingArgumentsBindToNull(t *testing.T) {
	got := run(t, `function f(x, y) { print(x); print(y); } f(1);`)
	want := []string{"1", "null"}
	assertEqual(t, got, want)
}

func TestExtraArgumentsDiscarded(t *testing.T) {
	got := run(t, `function f(x) { print(x); } f(1, 2, 3);`)
	want := []string{"1"}
	assertEqual(t, got, want)
}

func TestLogicalOperatorsRequireBooleans(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`print(1 && 2);`, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	e := eval.New(func(string) {})
	if _, err := e.Eval(root, env.NewRoot()); err == nil {
		t.Fatalf("expected type error for non-boolean && operands")
	}
}

func assertEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
