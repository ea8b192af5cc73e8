package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/driver"
)

func TestCompileProducesLoadableChunk(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "hello.ember")
	if err := os.WriteFile(scriptPath, []byte(`print(1 + 2);`), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := driver.Run(`print(1 + 2);`, driver.BackendVM)
	if err != nil {
		t.Fatalf("driver.Run: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}

	encoded, err := chunk.Write(result.Chunk)
	if err != nil {
		t.Fatalf("chunk.Write: %v", err)
	}

	outPath := filepath.Join(dir, "hello.embc")
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		t.Fatal(err)
	}

	roundTripped, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := chunk.Read(roundTripped)
	if err != nil {
		t.Fatalf("chunk.Read: %v", err)
	}
	if len(c2.Code) != len(result.Chunk.Code) {
		t.Errorf("round-tripped code length = %d, want %d", len(c2.Code), len(result.Chunk.Code))
	}

	listing := chunk.Disassemble(c2)
	if listing == "" {
		t.Error("expected a non-empty disassembly listing")
	}
}
