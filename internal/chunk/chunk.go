package chunk

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/simondevenish/EmberScript/internal/value"
)

// maxConstants is the 8-bit operand width LOAD_CONST's index must fit in.
const maxConstants = 256

// Chunk is a self-contained unit of bytecode: an instruction/operand byte
// stream plus an indexed constant pool. Code and constants grow
// monotonically during compilation; once an index is handed out it remains
// valid for the chunk's lifetime.
type Chunk struct {
	Code      []byte
	Constants []value.Value
}

// New creates an empty chunk.
func New() *Chunk {
	return &Chunk{}
}

// EmitByte appends a single raw byte (an opcode or an 8-bit operand).
func (c *Chunk) EmitByte(b byte) int {
	c.Code = append(c.Code, b)
	return len(c.Code) - 1
}

// EmitOp appends an opcode byte.
func (c *Chunk) EmitOp(op Op) int {
	return c.EmitByte(byte(op))
}

// EmitUint16 appends a 16-bit big-endian value, used for jump offsets.
func (c *Chunk) EmitUint16(v uint16) int {
	at := len(c.Code)
	c.Code = append(c.Code, byte(v>>8), byte(v))
	return at
}

// PatchUint16 overwrites the 16-bit big-endian value at byte offset at.
func (c *Chunk) PatchUint16(at int, v uint16) {
	c.Code[at] = byte(v >> 8)
	c.Code[at+1] = byte(v)
}

// AddConstant appends v to the constant pool and returns its index. Fails
// once a 257th constant would exceed the 8-bit operand width; constants are
// not de-duplicated, so every call adds one.
func (c *Chunk) AddConstant(v value.Value) (byte, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("constant pool overflow: cannot address more than %d constants", maxConstants)
	}
	idx := len(c.Constants)
	c.Constants = append(c.Constants, v)
	b, err := safecast.Conv[byte](idx)
	if err != nil {
		return 0, fmt.Errorf("constant index overflow: %w", err)
	}
	return b, nil
}

// Len returns the current instruction-stream length, used as the base for
// computing jump/loop offsets during compilation.
func (c *Chunk) Len() int { return len(c.Code) }

// NoPlaceholdersRemain asserts that every emitted jump offset has been
// patched: no 0xFF 0xFF placeholder pair may remain once compilation
// finishes (spec.md §3's jump-patching invariant).
func (c *Chunk) NoPlaceholdersRemain() error {
	i := 0
	for i < len(c.Code) {
		op := Op(c.Code[i])
		switch op {
		case OpJump, OpJumpIfFalse, OpLoop:
			if i+2 >= len(c.Code) {
				return fmt.Errorf("truncated jump operand at offset %d", i)
			}
			if c.Code[i+1] == 0xFF && c.Code[i+2] == 0xFF {
				return fmt.Errorf("unpatched jump placeholder at offset %d", i)
			}
			i += 3
		case OpLoadConst, OpLoadVar, OpStoreVar:
			i += 2
		case OpCall:
			i += 3
		default:
			i++
		}
	}
	return nil
}
