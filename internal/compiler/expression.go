package compiler

import (
	"fmt"
	"strconv"

	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/value"
)

var binaryOpcode = map[string]chunk.Op{
	"+": chunk.OpAdd, "-": chunk.OpSub, "*": chunk.OpMul, "/": chunk.OpDiv, "%": chunk.OpMod,
	"==": chunk.OpEq, "!=": chunk.OpNeq, "<": chunk.OpLt, ">": chunk.OpGt, "<=": chunk.OpLte, ">=": chunk.OpGte,
}

// compileExpr compiles an expression node so that exactly its declared
// result is left on the stack.
func (c *Compiler) compileExpr(n *ast.Node) error {
	switch n.Kind {
	case ast.KindLiteral:
		return c.compileLiteral(n)
	case ast.KindVariable:
		slot, ok := c.symbols.Lookup(n.Name)
		if !ok {
			return fmt.Errorf("%d:%d: use of undeclared variable %q", n.Pos.Line, n.Pos.Column, n.Name)
		}
		c.chunk.EmitOp(chunk.OpLoadVar)
		c.chunk.EmitByte(byte(slot))
		return nil
	case ast.KindAssignment:
		if err := c.compileExpr(n.Right); err != nil {
			return err
		}
		slot, err := c.symbols.GetOrAdd(n.Name, false)
		if err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpStoreVar)
		c.chunk.EmitByte(byte(slot))
		return nil
	case ast.KindBinaryOp:
		return c.compileBinaryOp(n)
	case ast.KindUnaryOp:
		if err := c.compileExpr(n.Left); err != nil {
			return err
		}
		if n.Op == "-" {
			c.chunk.EmitOp(chunk.OpNeg)
		} else {
			c.chunk.EmitOp(chunk.OpNot)
		}
		return nil
	case ast.KindArrayLiteral:
		return c.compileArrayLiteral(n)
	case ast.KindIndexAccess:
		if err := c.compileExpr(n.Array); err != nil {
			return err
		}
		if err := c.compileExpr(n.Index); err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpGetIndex)
		return nil
	case ast.KindFunctionCall:
		return c.compileFunctionCall(n)
	default:
		return fmt.Errorf("%d:%d: cannot compile node kind %v as an expression", n.Pos.Line, n.Pos.Column, n.Kind)
	}
}

func (c *Compiler) compileLiteral(n *ast.Node) error {
	var v value.Value
	switch n.LiteralKind {
	case ast.LiteralNumber:
		f, err := strconv.ParseFloat(n.Lexeme, 64)
		if err != nil {
			return fmt.Errorf("%d:%d: malformed number literal %q: %w", n.Pos.Line, n.Pos.Column, n.Lexeme, err)
		}
		v = value.Number(f)
	case ast.LiteralString:
		v = value.String(n.Lexeme)
	case ast.LiteralBoolean:
		v = value.Bool(n.Lexeme == "true")
	case ast.LiteralNull:
		v = value.Null
	}
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		return err
	}
	c.chunk.EmitOp(chunk.OpLoadConst)
	c.chunk.EmitByte(idx)
	return nil
}

func (c *Compiler) compileBinaryOp(n *ast.Node) error {
	if err := c.compileExpr(n.Left); err != nil {
		return err
	}
	if err := c.compileExpr(n.Right); err != nil {
		return err
	}
	op, ok := binaryOpcode[n.Op]
	if !ok {
		return fmt.Errorf("%d:%d: unsupported binary operator %q", n.Pos.Line, n.Pos.Column, n.Op)
	}
	c.chunk.EmitOp(op)
	return nil
}

func (c *Compiler) compileArrayLiteral(n *ast.Node) error {
	c.chunk.EmitOp(chunk.OpNewArray)
	for _, el := range n.Elements {
		c.chunk.EmitOp(chunk.OpDup)
		if err := c.compileExpr(el); err != nil {
			return err
		}
		c.chunk.EmitOp(chunk.OpArrayPush)
	}
	return nil
}

func (c *Compiler) compileFunctionCall(n *ast.Node) error {
	if n.Callee == "print" {
		// PRINT pops exactly one value (spec.md §4.7's stack-effect table).
		// Multiple arguments are folded into one value with the same ADD
		// opcode string-concatenation overload used for `+`: argc pushes and
		// argc-1 ADDs leave one value for PRINT, so a print call's net stack
		// effect is 0.
		if len(n.Args) == 0 {
			idx, err := c.chunk.AddConstant(value.String(""))
			if err != nil {
				return err
			}
			c.chunk.EmitOp(chunk.OpLoadConst)
			c.chunk.EmitByte(idx)
		} else {
			if err := c.compileExpr(n.Args[0]); err != nil {
				return err
			}
			for _, arg := range n.Args[1:] {
				if err := c.compileExpr(arg); err != nil {
					return err
				}
				c.chunk.EmitOp(chunk.OpAdd)
			}
		}
		c.chunk.EmitOp(chunk.OpPrint)
		return nil
	}

	for _, arg := range n.Args {
		if err := c.compileExpr(arg); err != nil {
			return err
		}
	}
	slot, err := c.symbols.GetOrAdd(n.Callee, true)
	if err != nil {
		return err
	}
	argCount, err := toByteCount(len(n.Args), "argument")
	if err != nil {
		return err
	}
	c.chunk.EmitOp(chunk.OpCall)
	c.chunk.EmitByte(byte(slot))
	c.chunk.EmitByte(argCount)
	return nil
}

func toByteCount(n int, what string) (byte, error) {
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("too many %ss: %d", what, n)
	}
	return byte(n), nil
}
