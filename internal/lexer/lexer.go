// Package lexer turns ember source text into a stream of tokens.
package lexer

import (
	"strings"

	"github.com/simondevenish/EmberScript/internal/token"
)

// Lexer scans a read-only source string into tokens one at a time.
type Lexer struct {
	src    string
	pos    int // byte offset of the next unread character
	line   int
	column int
}

// New binds the lexer to source text, positioned at line 1, column 1.
func New(source string) *Lexer {
	return &Lexer{src: source, pos: 0, line: 1, column: 1}
}

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return b
}

func (l *Lexer) skipTrivia() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekAt(1) == '/' {
				for !l.eof() && l.peek() != '\n' {
					l.advance()
				}
				continue
			}
			if l.peekAt(1) == '*' {
				l.advance()
				l.advance()
				for !l.eof() && !(l.peek() == '*' && l.peekAt(1) == '/') {
					l.advance()
				}
				if !l.eof() {
					l.advance()
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func isLetter(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Next returns the next token in the stream. Once the source is exhausted
// it returns an EOF token forever.
func (l *Lexer) Next() token.Token {
	l.skipTrivia()
	if l.eof() {
		return token.Token{Kind: token.EOF, Line: l.line, Column: l.column}
	}

	startLine, startColumn := l.line, l.column
	b := l.peek()

	switch {
	case isLetter(b):
		return l.scanIdent(startLine, startColumn)
	case isDigit(b):
		return l.scanNumber(startLine, startColumn)
	case b == '"':
		return l.scanString(startLine, startColumn)
	}

	if tok, ok := l.scanOperator(startLine, startColumn); ok {
		return tok
	}
	if tok, ok := l.scanPunctuation(startLine, startColumn); ok {
		return tok
	}

	l.advance()
	return token.Token{Kind: token.Error, Lexeme: string(b), Line: startLine, Column: startColumn}
}

func (l *Lexer) scanIdent(line, column int) token.Token {
	var sb strings.Builder
	for !l.eof() && (isLetter(l.peek()) || isDigit(l.peek())) {
		sb.WriteByte(l.advance())
	}
	lexeme := sb.String()
	return token.Token{Kind: token.ClassifyIdent(lexeme), Lexeme: lexeme, Line: line, Column: column}
}
