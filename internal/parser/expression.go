package parser

import (
	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/token"
)

// precedence levels, lowest to highest, per spec.md §4.2. `=` is handled
// separately by parseAssignmentExpr since it is right-associative and only
// legal when the left side is a bare variable reference.
var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

// parseExpression is the expression entry point: assignment-as-expression at
// the lowest precedence, falling through to the binary precedence climb.
func (p *Parser) parseExpression() *ast.Node {
	return p.parseAssignmentExpr()
}

func (p *Parser) parseAssignmentExpr() *ast.Node {
	left := p.parseBinary(1)
	if p.atOp("=") {
		pos := p.pos()
		if left.Kind != ast.KindVariable {
			p.errorf("left-hand side of assignment must be a variable")
			p.advance()
			return p.parseAssignmentExpr()
		}
		p.advance()
		value := p.parseAssignmentExpr() // right-associative
		return &ast.Node{Kind: ast.KindAssignment, Pos: pos, Name: left.Name, Right: value}
	}
	return left
}

// parseBinary implements precedence climbing: it only consumes an operator
// whose precedence is >= minPrec, recursing with that operator's precedence
// plus one on the right-hand side so that same-precedence operators associate
// left-to-right.
func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	for {
		if p.cur.Kind != token.Operator {
			return left
		}
		prec, ok := binaryPrecedence[p.cur.Lexeme]
		if !ok || prec < minPrec {
			return left
		}
		op := p.cur.Lexeme
		pos := p.pos()
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.Node{Kind: ast.KindBinaryOp, Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() *ast.Node {
	if p.atOp("-") || p.atOp("!") {
		pos := p.pos()
		op := p.cur.Lexeme
		p.advance()
		operand := p.parseUnary()
		return &ast.Node{Kind: ast.KindUnaryOp, Pos: pos, Op: op, Left: operand}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by zero or more `[expr]`
// index suffixes, composing left-to-right for nested indexing.
func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parsePrimary()
	for p.atPunct("[") {
		pos := p.pos()
		p.advance()
		idx := p.parseExpression()
		if _, ok := p.expect(token.Punctuation, "]", "']'"); !ok {
			p.recover()
		}
		expr = &ast.Node{Kind: ast.KindIndexAccess, Pos: pos, Array: expr, Index: idx}
	}
	return expr
}

func (p *Parser) parsePrimary() *ast.Node {
	pos := p.pos()
	switch {
	case p.at(token.Number):
		lexeme := p.advance().Lexeme
		return &ast.Node{Kind: ast.KindLiteral, Pos: pos, LiteralKind: ast.LiteralNumber, Lexeme: lexeme}
	case p.at(token.String):
		lexeme := p.advance().Lexeme
		return &ast.Node{Kind: ast.KindLiteral, Pos: pos, LiteralKind: ast.LiteralString, Lexeme: lexeme}
	case p.at(token.Boolean):
		lexeme := p.advance().Lexeme
		return &ast.Node{Kind: ast.KindLiteral, Pos: pos, LiteralKind: ast.LiteralBoolean, Lexeme: lexeme}
	case p.at(token.Null):
		p.advance()
		return &ast.Node{Kind: ast.KindLiteral, Pos: pos, LiteralKind: ast.LiteralNull}
	case p.atPunct("("):
		p.advance()
		inner := p.parseExpression()
		if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
			p.recover()
		}
		return inner
	case p.atPunct("["):
		return p.parseArrayLiteral()
	case p.at(token.Ident):
		return p.parseIdentOrCall()
	default:
		p.errorf("unexpected token %q in expression", p.cur.Lexeme)
		p.advance()
		return &ast.Node{Kind: ast.KindLiteral, Pos: pos, LiteralKind: ast.LiteralNull}
	}
}

func (p *Parser) parseIdentOrCall() *ast.Node {
	pos := p.pos()
	name := p.advance().Lexeme
	if p.atPunct("(") {
		p.advance()
		var args []*ast.Node
		if !p.atPunct(")") {
			for {
				args = append(args, p.parseExpression())
				if !p.match(token.Punctuation, ",") {
					break
				}
			}
		}
		if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
			p.recover()
		}
		return &ast.Node{Kind: ast.KindFunctionCall, Pos: pos, Callee: name, Args: args}
	}
	return &ast.Node{Kind: ast.KindVariable, Pos: pos, Name: name}
}

func (p *Parser) parseArrayLiteral() *ast.Node {
	pos := p.pos()
	p.advance() // '['
	node := &ast.Node{Kind: ast.KindArrayLiteral, Pos: pos}
	if !p.atPunct("]") {
		for {
			node.Elements = append(node.Elements, p.parseExpression())
			if !p.match(token.Punctuation, ",") {
				break
			}
			if p.atPunct("]") {
				break // trailing comma allowed
			}
		}
	}
	if _, ok := p.expect(token.Punctuation, "]", "']'"); !ok {
		p.recover()
	}
	return node
}
