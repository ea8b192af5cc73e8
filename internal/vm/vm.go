// Package vm executes a compiled chunk.Chunk on a stack machine, per
// spec.md §4.7.
package vm

import (
	"math"

	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/value"
)

// runtimeErrorf builds a diag.Diagnostic runtime error. The VM has no
// source-position tracking of its own (bytecode carries no line table), so
// every VM diagnostic reports Pos{} and relies on Code/Message alone.
func runtimeErrorf(code diag.Code, format string, args ...any) error {
	return diag.Errorf(code, diag.Pos{}, format, args...)
}

// stackCapacity bounds the operand stack; exceeding it is a VM-level error
// rather than a panic, so a runaway script fails cleanly.
const stackCapacity = 256

// globalSlots is the number of addressable global-variable slots, matching
// the 8-bit operand width STORE_VAR/LOAD_VAR use to index them. Unlike the
// reference implementation's single process-wide global table, each VM owns
// its own array so that concurrent VM instances never share mutable state
// (spec.md §9).
const globalSlots = 256

// VM is a stack machine over a single Chunk.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack   [stackCapacity]value.Value
	sp      int
	globals [globalSlots]value.Value

	// Trace, when set, is called with the address and mnemonic of every
	// opcode immediately before it executes. Used by `ember --trace`.
	Trace func(addr int, op chunk.Op)
}

// New creates a VM ready to run c. Every global slot starts Null.
func New(c *chunk.Chunk) *VM {
	return &VM{chunk: c}
}

// NewFromBytes deserializes a chunk written by chunk.Write, for the
// standalone executables embed.Stub generates and for `emberc run`.
func NewFromBytes(data []byte) (*chunk.Chunk, error) {
	return chunk.Read(data)
}

// Run executes the chunk from offset 0 until EOF and returns the final error,
// if any. Output from PRINT is written to out.
func (m *VM) Run(out func(string)) error {
	for {
		if m.ip >= len(m.chunk.Code) {
			return runtimeErrorf(diag.CodeUnknownOpcode, "ip ran off the end of the chunk without an EOF instruction")
		}
		addr := m.ip
		op := chunk.Op(m.chunk.Code[m.ip])
		m.ip++
		if m.Trace != nil {
			m.Trace(addr, op)
		}

		switch op {
		case chunk.OpEOF:
			return nil
		case chunk.OpNoop:
			// no-op

		case chunk.OpPop:
			if _, err := m.pop(); err != nil {
				return err
			}
		case chunk.OpDup:
			v, err := m.peek()
			if err != nil {
				return err
			}
			if err := m.push(v); err != nil {
				return err
			}
		case chunk.OpSwap:
			if m.sp < 2 {
				return runtimeErrorf(diag.CodeStackUnderflow, "SWAP: stack underflow")
			}
			m.stack[m.sp-1], m.stack[m.sp-2] = m.stack[m.sp-2], m.stack[m.sp-1]

		case chunk.OpLoadConst:
			idx := m.readByte()
			if int(idx) >= len(m.chunk.Constants) {
				return runtimeErrorf(diag.CodeUnknownOpcode, "LOAD_CONST: constant index %d out of range", idx)
			}
			if err := m.push(m.chunk.Constants[idx]); err != nil {
				return err
			}
		case chunk.OpLoadVar:
			slot := m.readByte()
			if err := m.push(m.globals[slot].Clone()); err != nil {
				return err
			}
		case chunk.OpStoreVar:
			slot := m.readByte()
			v, err := m.pop()
			if err != nil {
				return err
			}
			m.globals[slot] = v

		case chunk.OpAdd:
			if err := m.binaryAdd(); err != nil {
				return err
			}
		case chunk.OpSub:
			if err := m.binaryNumeric(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case chunk.OpMul:
			if err := m.binaryNumeric(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case chunk.OpDiv:
			if err := m.binaryDiv(); err != nil {
				return err
			}
		case chunk.OpMod:
			if err := m.binaryMod(); err != nil {
				return err
			}
		case chunk.OpNeg:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if v.Kind != value.KindNumber {
				return runtimeErrorf(diag.CodeTypeMismatch, "NEG: operand must be a number, got %s", v.Kind)
			}
			if err := m.push(value.Number(-v.Number)); err != nil {
				return err
			}
		case chunk.OpNot:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if err := m.push(value.Bool(!v.Truthy())); err != nil {
				return err
			}

		case chunk.OpEq:
			if err := m.binaryCompare(func(v, o value.Value) bool { return v.Equal(o) }); err != nil {
				return err
			}
		case chunk.OpNeq:
			if err := m.binaryCompare(func(v, o value.Value) bool { return !v.Equal(o) }); err != nil {
				return err
			}
		case chunk.OpLt:
			if err := m.binaryOrdering(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}
		case chunk.OpGt:
			if err := m.binaryOrdering(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case chunk.OpLte:
			if err := m.binaryOrdering(func(a, b float64) bool { return a <= b }); err != nil {
				return err
			}
		case chunk.OpGte:
			if err := m.binaryOrdering(func(a, b float64) bool { return a >= b }); err != nil {
				return err
			}

		case chunk.OpJump:
			dist := m.readUint16()
			m.ip += int(dist)
		case chunk.OpJumpIfFalse:
			dist := m.readUint16()
			v, err := m.pop()
			if err != nil {
				return err
			}
			if !v.Truthy() {
				m.ip += int(dist)
			}
		case chunk.OpLoop:
			dist := m.readUint16()
			m.ip -= int(dist)

		case chunk.OpCall:
			// Reserved per spec.md §9: the VM backend does not execute
			// user-defined functions, only the evaluator does. CALL
			// discards its arguments so the stack stays balanced.
			_ = m.readByte() // function slot, unused
			argc := m.readByte()
			for i := byte(0); i < argc; i++ {
				if _, err := m.pop(); err != nil {
					return err
				}
			}
		case chunk.OpReturn:
			// Reserved; no call frames exist in this backend.

		case chunk.OpNewArray:
			if err := m.push(value.Array(nil)); err != nil {
				return err
			}
		case chunk.OpArrayPush:
			elem, err := m.pop()
			if err != nil {
				return err
			}
			arr, err := m.pop()
			if err != nil {
				return err
			}
			if arr.Kind != value.KindArray {
				return runtimeErrorf(diag.CodeTypeMismatch, "ARRAY_PUSH: target is not an array, got %s", arr.Kind)
			}
			arr.Elements = append(arr.Elements, elem)
			if err := m.push(arr); err != nil {
				return err
			}
		case chunk.OpGetIndex:
			idx, err := m.pop()
			if err != nil {
				return err
			}
			arr, err := m.pop()
			if err != nil {
				return err
			}
			if arr.Kind != value.KindArray {
				return runtimeErrorf(diag.CodeTypeMismatch, "GET_INDEX: target is not an array, got %s", arr.Kind)
			}
			if idx.Kind != value.KindNumber {
				return runtimeErrorf(diag.CodeTypeMismatch, "GET_INDEX: index must be a number, got %s", idx.Kind)
			}
			i := int(idx.Number)
			if i < 0 || i >= len(arr.Elements) {
				return runtimeErrorf(diag.CodeIndexOutOfBounds, "GET_INDEX: index %d out of range for array of length %d", i, len(arr.Elements))
			}
			if err := m.push(arr.Elements[i].Clone()); err != nil {
				return err
			}

		case chunk.OpPrint:
			v, err := m.pop()
			if err != nil {
				return err
			}
			if out != nil {
				out(v.PrintString())
			}

		default:
			return runtimeErrorf(diag.CodeUnknownOpcode, "unknown opcode %d at offset %d", op, m.ip-1)
		}
	}
}

func (m *VM) readByte() byte {
	b := m.chunk.Code[m.ip]
	m.ip++
	return b
}

func (m *VM) readUint16() uint16 {
	hi, lo := m.chunk.Code[m.ip], m.chunk.Code[m.ip+1]
	m.ip += 2
	return uint16(hi)<<8 | uint16(lo)
}

func (m *VM) push(v value.Value) error {
	if m.sp >= stackCapacity {
		return runtimeErrorf(diag.CodeStackOverflow, "stack overflow: capacity %d exceeded", stackCapacity)
	}
	m.stack[m.sp] = v
	m.sp++
	return nil
}

func (m *VM) pop() (value.Value, error) {
	if m.sp == 0 {
		return value.Null, runtimeErrorf(diag.CodeStackUnderflow, "stack underflow")
	}
	m.sp--
	return m.stack[m.sp], nil
}

func (m *VM) peek() (value.Value, error) {
	if m.sp == 0 {
		return value.Null, runtimeErrorf(diag.CodeStackUnderflow, "stack underflow")
	}
	return m.stack[m.sp-1], nil
}

// binaryAdd implements ADD's dual overload: numeric addition when both
// operands are numbers, otherwise string concatenation using the %.2f
// coercion the reference implementation's runtime_value_to_string applies
// (not the %g formatter `print` uses).
func (m *VM) binaryAdd() error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Kind == value.KindNumber && b.Kind == value.KindNumber {
		return m.push(value.Number(a.Number + b.Number))
	}
	return m.push(value.String(a.ToStringHelper() + b.ToStringHelper()))
}

func (m *VM) binaryNumeric(f func(a, b float64) float64) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		return runtimeErrorf(diag.CodeTypeMismatch, "arithmetic operator requires numeric operands, got %s and %s", a.Kind, b.Kind)
	}
	return m.push(value.Number(f(a.Number, b.Number)))
}

func (m *VM) binaryDiv() error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		return runtimeErrorf(diag.CodeTypeMismatch, "/ requires numeric operands, got %s and %s", a.Kind, b.Kind)
	}
	if b.Number == 0 {
		return runtimeErrorf(diag.CodeDivideByZero, "/ by zero")
	}
	return m.push(value.Number(a.Number / b.Number))
}

func (m *VM) binaryMod() error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		return runtimeErrorf(diag.CodeTypeMismatch, "%% requires numeric operands, got %s and %s", a.Kind, b.Kind)
	}
	if b.Number == 0 {
		return runtimeErrorf(diag.CodeDivideByZero, "%% by zero")
	}
	return m.push(value.Number(math.Mod(a.Number, b.Number)))
}

func (m *VM) binaryCompare(f func(a, b value.Value) bool) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	return m.push(value.Bool(f(a, b)))
}

func (m *VM) binaryOrdering(f func(a, b float64) bool) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	if a.Kind != value.KindNumber || b.Kind != value.KindNumber {
		return runtimeErrorf(diag.CodeTypeMismatch, "ordering operator requires numeric operands, got %s and %s", a.Kind, b.Kind)
	}
	return m.push(value.Bool(f(a.Number, b.Number)))
}
