package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"fortio.org/safecast"

	"github.com/simondevenish/EmberScript/internal/value"
)

// constant pool type tags for the serializable subset: number, string,
// boolean, null. The on-disk numbering is its own and differs from value.Kind's.
const (
	tagNumber byte = iota
	tagString
	tagBoolean
	tagNull
)

// Write serializes the chunk to the byte layout in spec.md §4.8:
//
//	u32le code_count
//	u32le constants_count
//	code_count bytes of raw instruction stream
//	per constant: 1-byte type tag, then its payload
//
// Constants holding arrays, objects, or functions are rejected — only
// number, string, boolean, and null constants are serializable.
func Write(c *Chunk) ([]byte, error) {
	var buf bytes.Buffer

	codeCount, err := safecast.Conv[uint32](len(c.Code))
	if err != nil {
		return nil, fmt.Errorf("code too large to serialize: %w", err)
	}
	constCount, err := safecast.Conv[uint32](len(c.Constants))
	if err != nil {
		return nil, fmt.Errorf("too many constants to serialize: %w", err)
	}

	if err := binary.Write(&buf, binary.LittleEndian, codeCount); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, constCount); err != nil {
		return nil, err
	}
	buf.Write(c.Code)

	for i, cst := range c.Constants {
		switch cst.Kind {
		case value.KindNumber:
			buf.WriteByte(tagNumber)
			var bits [8]byte
			binary.LittleEndian.PutUint64(bits[:], math.Float64bits(cst.Number))
			buf.Write(bits[:])
		case value.KindString:
			buf.WriteByte(tagString)
			strLen, err := safecast.Conv[uint32](len(cst.Str))
			if err != nil {
				return nil, fmt.Errorf("constant %d: string too large: %w", i, err)
			}
			if err := binary.Write(&buf, binary.LittleEndian, strLen); err != nil {
				return nil, err
			}
			buf.WriteString(cst.Str)
		case value.KindBoolean:
			buf.WriteByte(tagBoolean)
			if cst.Bool {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		case value.KindNull:
			buf.WriteByte(tagNull)
		default:
			return nil, fmt.Errorf("constant %d: values of kind %s are not serializable", i, cst.Kind)
		}
	}

	return buf.Bytes(), nil
}

// Read deserializes a chunk written by Write. Reader and writer are exact
// inverses.
func Read(data []byte) (*Chunk, error) {
	r := bytes.NewReader(data)

	var codeCount, constCount uint32
	if err := binary.Read(r, binary.LittleEndian, &codeCount); err != nil {
		return nil, fmt.Errorf("reading code_count: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &constCount); err != nil {
		return nil, fmt.Errorf("reading constants_count: %w", err)
	}

	code := make([]byte, codeCount)
	if _, err := r.Read(code); err != nil && codeCount > 0 {
		return nil, fmt.Errorf("reading code: %w", err)
	}

	constants := make([]value.Value, 0, constCount)
	for i := uint32(0); i < constCount; i++ {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("constant %d: reading tag: %w", i, err)
		}
		switch tag {
		case tagNumber:
			var bits [8]byte
			if _, err := r.Read(bits[:]); err != nil {
				return nil, fmt.Errorf("constant %d: reading number: %w", i, err)
			}
			constants = append(constants, value.Number(math.Float64frombits(binary.LittleEndian.Uint64(bits[:]))))
		case tagString:
			var strLen uint32
			if err := binary.Read(r, binary.LittleEndian, &strLen); err != nil {
				return nil, fmt.Errorf("constant %d: reading string length: %w", i, err)
			}
			strBytes := make([]byte, strLen)
			if _, err := r.Read(strBytes); err != nil && strLen > 0 {
				return nil, fmt.Errorf("constant %d: reading string: %w", i, err)
			}
			constants = append(constants, value.String(string(strBytes)))
		case tagBoolean:
			b, err := r.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("constant %d: reading boolean: %w", i, err)
			}
			constants = append(constants, value.Bool(b != 0))
		case tagNull:
			constants = append(constants, value.Null)
		default:
			return nil, fmt.Errorf("constant %d: unknown type tag %d", i, tag)
		}
	}

	return &Chunk{Code: code, Constants: constants}, nil
}
