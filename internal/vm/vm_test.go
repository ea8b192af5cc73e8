package vm_test

import (
	"errors"
	"testing"

	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/compiler"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/parser"
	"github.com/simondevenish/EmberScript/internal/symbols"
	"github.com/simondevenish/EmberScript/internal/vm"
)

// run compiles src and executes it on a fresh VM, returning each PRINT's
// stringified argument as one slice entry, mirroring spec.md §8's
// line-by-line expected output.
func run(t *testing.T, src string) []string {
	t.Helper()
	bag := diag.NewBag(0)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Items())
	}
	c := chunk.New()
	if err := compiler.Compile(root, c, symbols.New()); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	var lines []string
	m := vm.New(c)
	if err := m.Run(func(s string) { lines = append(lines, s) }); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return lines
}

func TestArithmeticAndPrint(t *testing.T) {
	// spec.md §8 S1
	got := run(t, `var x = 2; var y = 3; print(x + y * 4);`)
	want := []string{"14"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestStringConcatenation(t *testing.T) {
	// spec.md §8 S2
	got := run(t, `var n = "world"; print("Hello, " + n + "!");`)
	want := []string{"Hello, world!"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWhileLoopSum(t *testing.T) {
	// spec.md §8 S3
	got := run(t, `var s = 0; var i = 1; while (i <= 5) { s = s + i; i = i + 1; } print(s);`)
	want := []string{"15"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestForLoopArrayIndex(t *testing.T) {
	// spec.md §8 S4
	got := run(t, `var a = [10, 20, 30]; for (var i = 0; i < 3; i = i + 1) { print(a[i]); }`)
	want := []string{"10", "20", "30"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestIfElseIfChain(t *testing.T) {
	// spec.md §8 S5
	got := run(t, `
		var n = 7;
		if (n == 0) { print("zero"); } else if (n < 5) { print("small"); } else { print("big"); }
	`)
	want := []string{"big"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDivisionByZeroFails(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`print(1 / 0);`, bag)
	c := chunk.New()
	if err := compiler.Compile(root, c, symbols.New()); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	m := vm.New(c)
	err := m.Run(func(string) {})
	if err == nil {
		t.Fatalf("expected a divide-by-zero error, got nil")
	}
	var d diag.Diagnostic
	if !errors.As(err, &d) || d.Code != diag.CodeDivideByZero {
		t.Fatalf("got %v, want a diag.CodeDivideByZero diagnostic", err)
	}
}

func TestModuloByZeroFails(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`print(1 % 0);`, bag)
	c := chunk.New()
	if err := compiler.Compile(root, c, symbols.New()); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	m := vm.New(c)
	err := m.Run(func(string) {})
	if err == nil {
		t.Fatalf("expected a divide-by-zero error, got nil")
	}
	var d diag.Diagnostic
	if !errors.As(err, &d) || d.Code != diag.CodeDivideByZero {
		t.Fatalf("got %v, want a diag.CodeDivideByZero diagnostic", err)
	}
}

func TestOutOfRangeIndexFails(t *testing.T) {
	bag := diag.NewBag(0)
	root := parser.ParseScript(`var a = [1, 2]; print(a[5]);`, bag)
	c := chunk.New()
	if err := compiler.Compile(root, c, symbols.New()); err != nil {
		t.Fatalf("compile error: %v", err)
	}
	m := vm.New(c)
	if err := m.Run(func(string) {}); err == nil {
		t.Fatalf("expected an out-of-range error, got nil")
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
