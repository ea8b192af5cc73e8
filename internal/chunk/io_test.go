package chunk_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/value"
)

func TestSerializationRoundTrip(t *testing.T) {
	c := chunk.New()
	c.EmitOp(chunk.OpLoadConst)
	c.EmitByte(0)
	c.EmitOp(chunk.OpPrint)
	c.EmitOp(chunk.OpEOF)

	if _, err := c.AddConstant(value.Number(3.5)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddConstant(value.String("hello")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddConstant(value.Bool(true)); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddConstant(value.Null); err != nil {
		t.Fatal(err)
	}

	encoded, err := chunk.Write(c)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	decoded, err := chunk.Read(encoded)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	reEncoded, err := chunk.Write(decoded)
	if err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if string(encoded) != string(reEncoded) {
		t.Fatalf("round trip not byte-identical:\n got %x\nwant %x", reEncoded, encoded)
	}

	if len(decoded.Code) != len(c.Code) {
		t.Fatalf("code length mismatch: got %d, want %d", len(decoded.Code), len(c.Code))
	}
	if len(decoded.Constants) != 4 {
		t.Fatalf("got %d constants, want 4", len(decoded.Constants))
	}
	if decoded.Constants[0].Number != 3.5 {
		t.Errorf("constant 0: got %v, want 3.5", decoded.Constants[0].Number)
	}
	if decoded.Constants[1].Str != "hello" {
		t.Errorf("constant 1: got %q, want hello", decoded.Constants[1].Str)
	}
	if decoded.Constants[2].Bool != true {
		t.Errorf("constant 2: got %v, want true", decoded.Constants[2].Bool)
	}
	if decoded.Constants[3].Kind != value.KindNull {
		t.Errorf("constant 3: got %v, want null", decoded.Constants[3].Kind)
	}
}

func TestWriteRejectsUnserializableConstants(t *testing.T) {
	c := chunk.New()
	if _, err := c.AddConstant(value.Array(nil)); err != nil {
		t.Fatal(err)
	}
	if _, err := chunk.Write(c); err == nil {
		t.Fatalf("expected Write to reject an array constant")
	}
}

func TestNoPlaceholdersRemainDetectsUnpatchedJump(t *testing.T) {
	c := chunk.New()
	c.EmitOp(chunk.OpJumpIfFalse)
	c.EmitUint16(0xFFFF)
	if err := c.NoPlaceholdersRemain(); err == nil {
		t.Fatalf("expected unpatched placeholder to be detected")
	}

	c.PatchUint16(1, 3)
	if err := c.NoPlaceholdersRemain(); err != nil {
		t.Fatalf("unexpected error after patching: %v", err)
	}
}
