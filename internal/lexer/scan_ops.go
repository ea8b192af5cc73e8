package lexer

import "github.com/simondevenish/EmberScript/internal/token"

// twoCharOps lists the multi-character operators that must be recognized
// before their single-char prefixes.
var twoCharOps = []string{"==", "!=", "<=", ">=", "&&", "||"}

// scanOperator recognizes the arithmetic/comparison/logical/assignment
// operator set, preferring two-character operators over their prefixes.
func (l *Lexer) scanOperator(line, column int) (token.Token, bool) {
	b := l.peek()
	c := l.peekAt(1)
	two := string([]byte{b, c})
	for _, op := range twoCharOps {
		if two == op {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Operator, Lexeme: op, Line: line, Column: column}, true
		}
	}
	switch b {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!':
		l.advance()
		return token.Token{Kind: token.Operator, Lexeme: string(b), Line: line, Column: column}, true
	}
	return token.Token{}, false
}

// scanPunctuation recognizes the single-character structural delimiters.
func (l *Lexer) scanPunctuation(line, column int) (token.Token, bool) {
	switch l.peek() {
	case '(', ')', '{', '}', '[', ']', ',', ';', '.':
		b := l.advance()
		return token.Token{Kind: token.Punctuation, Lexeme: string(b), Line: line, Column: column}, true
	}
	return token.Token{}, false
}
