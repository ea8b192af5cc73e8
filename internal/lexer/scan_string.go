package lexer

import (
	"strings"

	"github.com/simondevenish/EmberScript/internal/token"
)

// scanString consumes a double-quoted string literal, decoding the four
// supported escapes (\n \t \\ \") as it goes. Any other \X escape, or an
// unterminated string, yields an Error token.
func (l *Lexer) scanString(line, column int) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.eof() {
			return token.Token{Kind: token.Error, Lexeme: sb.String(), Line: line, Column: column}
		}
		b := l.peek()
		if b == '"' {
			l.advance()
			return token.Token{Kind: token.String, Lexeme: sb.String(), Line: line, Column: column}
		}
		if b == '\n' {
			return token.Token{Kind: token.Error, Lexeme: sb.String(), Line: line, Column: column}
		}
		if b == '\\' {
			l.advance()
			if l.eof() {
				return token.Token{Kind: token.Error, Lexeme: sb.String(), Line: line, Column: column}
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return token.Token{Kind: token.Error, Lexeme: sb.String(), Line: line, Column: column}
			}
			continue
		}
		sb.WriteByte(l.advance())
	}
}
