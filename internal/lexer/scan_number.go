package lexer

import (
	"strings"

	"github.com/simondevenish/EmberScript/internal/token"
)

// scanNumber consumes one-or-more digits with at most one decimal point.
func (l *Lexer) scanNumber(line, column int) token.Token {
	var sb strings.Builder
	sawDot := false
	for !l.eof() {
		b := l.peek()
		if isDigit(b) {
			sb.WriteByte(l.advance())
			continue
		}
		if b == '.' && !sawDot && isDigit(l.peekAt(1)) {
			sawDot = true
			sb.WriteByte(l.advance())
			continue
		}
		break
	}
	return token.Token{Kind: token.Number, Lexeme: sb.String(), Line: line, Column: column}
}
