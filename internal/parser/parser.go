// Package parser builds an AST from a token stream with a single-token
// lookahead, using precedence-climbing for expressions.
package parser

import (
	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/lexer"
	"github.com/simondevenish/EmberScript/internal/token"
)

// Parser holds a lexer and a single-token lookahead. Progress is made by
// advance (consume current, request next from the lexer) and match
// (consume-and-advance if the current token matches, reporting whether it
// did).
type Parser struct {
	lx   *lexer.Lexer
	cur  token.Token
	bag  *diag.Bag
}

// New creates a parser over source text, reporting diagnostics into bag.
func New(source string, bag *diag.Bag) *Parser {
	p := &Parser{lx: lexer.New(source), bag: bag}
	p.advance()
	return p
}

func (p *Parser) pos() ast.Pos { return ast.Pos{Line: p.cur.Line, Column: p.cur.Column} }

func (p *Parser) advance() token.Token {
	prev := p.cur
	p.cur = p.lx.Next()
	return prev
}

// match consumes and advances past the current token if it has kind k (and,
// when lexeme is non-empty, the given lexeme too), reporting whether it did.
func (p *Parser) match(k token.Kind, lexeme string) bool {
	if p.cur.Kind != k {
		return false
	}
	if lexeme != "" && p.cur.Lexeme != lexeme {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) atKeyword(word string) bool {
	return p.cur.Kind == token.Keyword && p.cur.Lexeme == word
}

func (p *Parser) atOp(op string) bool {
	return p.cur.Kind == token.Operator && p.cur.Lexeme == op
}

func (p *Parser) atPunct(ch string) bool {
	return p.cur.Kind == token.Punctuation && p.cur.Lexeme == ch
}

// expect consumes the current token if it matches, or reports a ParseError
// diagnostic and returns ok=false without advancing past a clearly
// unrelated token (advance happens only on success, so callers retain the
// bad token for recovery).
func (p *Parser) expect(k token.Kind, lexeme, what string) (token.Token, bool) {
	if p.cur.Kind == k && (lexeme == "" || p.cur.Lexeme == lexeme) {
		return p.advance(), true
	}
	p.errorf("expected %s, got %q", what, p.cur.Lexeme)
	return token.Token{}, false
}

func (p *Parser) errorf(format string, args ...any) {
	pos := p.pos()
	p.bag.Errorf(diag.CodeParseError, diag.Pos{Line: pos.Line, Column: pos.Column}, format, args...)
}

// recover advances tokens until it sees `;`, `}`, or EOF, then stops so the
// caller can resume parsing after a failure.
func (p *Parser) recover() {
	for {
		if p.atPunct(";") {
			p.advance()
			return
		}
		if p.atPunct("}") || p.at(token.EOF) {
			return
		}
		p.advance()
	}
}

// ParseScript parses the whole token stream and returns the root AST node,
// always a *ast.Node of KindBlock.
func ParseScript(source string, bag *diag.Bag) *ast.Node {
	p := New(source, bag)
	return p.parseStatementsUntilEOF()
}

func (p *Parser) parseStatementsUntilEOF() *ast.Node {
	block := &ast.Node{Kind: ast.KindBlock, Pos: p.pos()}
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	return block
}
