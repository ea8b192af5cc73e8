package driver_test

import (
	"context"
	"testing"

	"github.com/simondevenish/EmberScript/internal/driver"
)

func TestRunVMBackendArithmeticAndPrint(t *testing.T) {
	res, err := driver.Run(`var x = 2; var y = 3; print(x + y * 4);`, driver.BackendVM)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	want := []string{"14"}
	assertEqual(t, res.Output, want)
	if res.Chunk == nil {
		t.Fatalf("expected a compiled chunk for the VM backend")
	}
}

func TestRunEvalBackendUserFunction(t *testing.T) {
	res, err := driver.Run(`
		function inc(x) { x = x + 1; print(x); }
		inc(41);
	`, driver.BackendEval)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	assertEqual(t, res.Output, []string{"42"})
	if res.Chunk != nil {
		t.Fatalf("evaluator backend should not produce a chunk")
	}
}

func TestRunReportsParseErrorsWithoutExecuting(t *testing.T) {
	res, err := driver.Run(`var x = ;`, driver.BackendVM)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a parse diagnostic for malformed source")
	}
	if len(res.Output) != 0 {
		t.Fatalf("expected no output after a parse failure, got %v", res.Output)
	}
}

func TestRunBatchRunsEachScriptIndependently(t *testing.T) {
	sources := map[string]string{
		"a.ember": `print(1 + 1);`,
		"b.ember": `print("ok");`,
	}
	results := driver.RunBatch(context.Background(), sources, driver.BackendVM, 0)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	byPath := map[string]driver.BatchResult{}
	for _, r := range results {
		byPath[r.Path] = r
	}
	if byPath["a.ember"].Err != nil || byPath["a.ember"].Result.Output[0] != "2" {
		t.Fatalf("a.ember: got %+v", byPath["a.ember"])
	}
	if byPath["b.ember"].Err != nil || byPath["b.ember"].Result.Output[0] != "ok" {
		t.Fatalf("b.ember: got %+v", byPath["b.ember"])
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
