package parser

import (
	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/token"
)

// parseStatement dispatches on the current token per spec.md §4.2's
// top-level recognition rules, reporting and recovering from a parse
// failure rather than propagating it.
func (p *Parser) parseStatement() *ast.Node {
	switch {
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("function"):
		return p.parseFunctionDef()
	case p.atPunct("{"):
		return p.parseBlock()
	case p.atKeyword("var") || p.atKeyword("let") || p.atKeyword("const"):
		return p.parseVariableDecl(false)
	case p.isImportStart():
		return p.parseImport()
	case p.isAssignmentStart():
		return p.parseAssignmentStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// isAssignmentStart peeks one token ahead (without consuming) to see whether
// the current identifier is immediately followed by `=`.
func (p *Parser) isAssignmentStart() bool {
	if p.cur.Kind != token.Ident {
		return false
	}
	save := *p.lx
	savedCur := p.cur
	p.advance()
	isAssign := p.atOp("=")
	*p.lx = save
	p.cur = savedCur
	return isAssign
}

// isImportStart peeks one token ahead to recognize `import "path"` without
// reserving `import` as a lexer keyword: it is an identifier whose statement
// form is distinguished by a following string literal.
func (p *Parser) isImportStart() bool {
	if p.cur.Kind != token.Ident || p.cur.Lexeme != "import" {
		return false
	}
	save := *p.lx
	savedCur := p.cur
	p.advance()
	isImport := p.at(token.String)
	*p.lx = save
	p.cur = savedCur
	return isImport
}

func (p *Parser) parseImport() *ast.Node {
	pos := p.pos()
	p.advance() // 'import'
	pathTok, ok := p.expect(token.String, "", "import path")
	if !ok {
		p.recover()
		return nil
	}
	if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
		p.recover()
	}
	return &ast.Node{Kind: ast.KindImport, Pos: pos, Path: pathTok.Lexeme}
}

func (p *Parser) parseBlock() *ast.Node {
	pos := p.pos()
	if _, ok := p.expect(token.Punctuation, "{", "'{'"); !ok {
		p.recover()
	}
	block := &ast.Node{Kind: ast.KindBlock, Pos: pos}
	for !p.atPunct("}") && !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	if _, ok := p.expect(token.Punctuation, "}", "'}'"); !ok {
		p.recover()
	}
	return block
}

// parseVariableDecl parses `var|let|const name [= expr]`. When forHeader is
// true, no terminating `;` is consumed (the `for` parser owns it).
func (p *Parser) parseVariableDecl(forHeader bool) *ast.Node {
	pos := p.pos()
	p.advance() // var | let | const
	nameTok, ok := p.expect(token.Ident, "", "identifier")
	if !ok {
		p.recover()
		return nil
	}
	decl := &ast.Node{Kind: ast.KindVariableDecl, Pos: pos, Name: nameTok.Lexeme}
	if p.match(token.Operator, "=") {
		decl.Init = p.parseExpression()
	}
	if !forHeader {
		if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
			p.recover()
		}
	}
	return decl
}

func (p *Parser) parseAssignmentStatement() *ast.Node {
	pos := p.pos()
	nameTok := p.advance()
	p.advance() // '='
	assign := &ast.Node{Kind: ast.KindAssignment, Pos: pos, Name: nameTok.Lexeme, Right: p.parseExpression()}
	if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
		p.recover()
	}
	return assign
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	expr := p.parseExpression()
	if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
		p.recover()
	}
	return expr
}

func (p *Parser) parseIf() *ast.Node {
	pos := p.pos()
	p.advance() // if
	if _, ok := p.expect(token.Punctuation, "(", "'('"); !ok {
		p.recover()
	}
	cond := p.parseExpression()
	if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
		p.recover()
	}
	thenBlock := p.parseBlock()
	node := &ast.Node{Kind: ast.KindIf, Pos: pos, Cond: cond, Then: thenBlock}
	if p.atKeyword("else") {
		p.advance()
		if p.atKeyword("if") {
			node.Else = p.parseIf()
		} else {
			node.Else = p.parseBlock()
		}
	}
	return node
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.pos()
	p.advance() // while
	if _, ok := p.expect(token.Punctuation, "(", "'('"); !ok {
		p.recover()
	}
	cond := p.parseExpression()
	if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
		p.recover()
	}
	body := p.parseBlock()
	return &ast.Node{Kind: ast.KindWhile, Pos: pos, Cond: cond, Then: body}
}

func (p *Parser) parseFor() *ast.Node {
	pos := p.pos()
	p.advance() // for
	if _, ok := p.expect(token.Punctuation, "(", "'('"); !ok {
		p.recover()
	}

	node := &ast.Node{Kind: ast.KindFor, Pos: pos}

	if !p.atPunct(";") {
		switch {
		case p.atKeyword("var") || p.atKeyword("let") || p.atKeyword("const"):
			node.Init = p.parseVariableDecl(true)
		default:
			node.Init = p.parseExpression()
		}
	}
	if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
		p.recover()
	}

	if !p.atPunct(";") {
		node.Cond = p.parseExpression()
	}
	if _, ok := p.expect(token.Punctuation, ";", "';'"); !ok {
		p.recover()
	}

	if !p.atPunct(")") {
		node.Incr = p.parseExpression()
	}
	if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
		p.recover()
	}

	node.Then = p.parseBlock()
	return node
}

func (p *Parser) parseFunctionDef() *ast.Node {
	pos := p.pos()
	p.advance() // function
	nameTok, ok := p.expect(token.Ident, "", "function name")
	if !ok {
		p.recover()
		return nil
	}
	if _, ok := p.expect(token.Punctuation, "(", "'('"); !ok {
		p.recover()
	}
	var params []string
	if !p.atPunct(")") {
		for {
			paramTok, ok := p.expect(token.Ident, "", "parameter name")
			if !ok {
				break
			}
			params = append(params, paramTok.Lexeme)
			if !p.match(token.Punctuation, ",") {
				break
			}
		}
	}
	if _, ok := p.expect(token.Punctuation, ")", "')'"); !ok {
		p.recover()
	}
	body := p.parseBlock()
	return &ast.Node{Kind: ast.KindFunctionDef, Pos: pos, Name: nameTok.Lexeme, Params: params, Body: body}
}
