package compiler

import (
	"fmt"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/value"
)

const placeholder = 0xFFFF

// emitJump writes a jump opcode followed by a 0xFFFF placeholder and returns
// the byte offset of the placeholder, for later patching.
func (c *Compiler) emitJump(op chunk.Op) int {
	c.chunk.EmitOp(op)
	return c.chunk.EmitUint16(placeholder)
}

// patchJump computes the forward distance from immediately after the
// placeholder to the chunk's current end and writes it in place.
func (c *Compiler) patchJump(placeholderAt int) error {
	distance := c.chunk.Len() - (placeholderAt + 2)
	if distance < 0 || distance > 0xFFFF {
		return fmt.Errorf("jump distance %d out of range", distance)
	}
	c.chunk.PatchUint16(placeholderAt, uint16(distance))
	return nil
}

func (c *Compiler) compileIf(n *ast.Node) error {
	if err := c.compileExpr(n.Cond); err != nil {
		return err
	}
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	if err := c.compileStatement(n.Then); err != nil {
		return err
	}
	endJump := c.emitJump(chunk.OpJump)
	if err := c.patchJump(elseJump); err != nil {
		return err
	}
	if n.Else != nil {
		if err := c.compileStatement(n.Else); err != nil {
			return err
		}
	}
	return c.patchJump(endJump)
}

func (c *Compiler) compileWhile(n *ast.Node) error {
	loopStart := c.chunk.Len()
	if err := c.compileExpr(n.Cond); err != nil {
		return err
	}
	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	if err := c.compileStatement(n.Then); err != nil {
		return err
	}
	if err := c.emitLoop(loopStart); err != nil {
		return err
	}
	return c.patchJump(exitJump)
}

func (c *Compiler) compileFor(n *ast.Node) error {
	if n.Init != nil {
		if err := c.compileStatement(n.Init); err != nil {
			return err
		}
	}

	loopStart := c.chunk.Len()
	if n.Cond != nil {
		if err := c.compileExpr(n.Cond); err != nil {
			return err
		}
	} else {
		idx, err := c.chunk.AddConstant(value.Bool(true))
		if err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpLoadConst)
		c.chunk.EmitByte(idx)
	}
	exitJump := c.emitJump(chunk.OpJumpIfFalse)

	if err := c.compileStatement(n.Then); err != nil {
		return err
	}

	if n.Incr != nil {
		if err := c.compileStatement(n.Incr); err != nil {
			return err
		}
	}

	if err := c.emitLoop(loopStart); err != nil {
		return err
	}
	return c.patchJump(exitJump)
}

// emitLoop emits LOOP with a 16-bit backward distance = (code_count -
// loopStart + 2), inclusive of LOOP's own two operand bytes, per spec.md
// §4.6.
func (c *Compiler) emitLoop(loopStart int) error {
	c.chunk.EmitOp(chunk.OpLoop)
	distance := c.chunk.Len() - loopStart + 2
	if distance < 0 || distance > 0xFFFF {
		return fmt.Errorf("loop distance %d out of range", distance)
	}
	c.chunk.EmitUint16(uint16(distance))
	return nil
}
