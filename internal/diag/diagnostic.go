// Package diag carries diagnostics produced by every phase of the ember
// pipeline (lexer, parser, compiler, evaluator, VM) through one shared
// data model instead of ad hoc error strings.
package diag

import "fmt"

// Pos is a 1-based line/column source position.
type Pos struct {
	Line   int
	Column int
}

// Code is a short, stable identifier for a class of diagnostic, e.g.
// "lex/unterminated-string" or "eval/undefined-variable".
type Code string

// Diagnostic is one reported lex/parse/compile/runtime condition.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Pos
}

// Error lets a Diagnostic be returned directly as a Go error, so evaluator
// and VM failure sites can construct a coded diagnostic at the point of
// failure instead of a bare fmt.Errorf string.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %d:%d: %s", d.Severity, d.Code, d.Pos.Line, d.Pos.Column, d.Message)
}

// Errorf builds an Error-severity Diagnostic and returns it as an error.
func Errorf(code Code, pos Pos, format string, args ...any) error {
	return Diagnostic{Severity: SevError, Code: code, Message: sprintf(format, args...), Pos: pos}
}

// Well-known diagnostic codes, one per failure kind in the error taxonomy.
const (
	CodeLexError          Code = "lex/error"
	CodeParseError        Code = "parse/error"
	CodeTypeMismatch      Code = "eval/type-mismatch"
	CodeDivideByZero      Code = "eval/divide-by-zero"
	CodeUndefinedVariable Code = "eval/undefined-variable"
	CodeUndefinedFunction Code = "eval/undefined-function"
	CodeIndexOutOfBounds  Code = "eval/index-out-of-bounds"
	CodeStackOverflow     Code = "vm/stack-overflow"
	CodeStackUnderflow    Code = "vm/stack-underflow"
	CodeUnknownOpcode     Code = "vm/unknown-opcode"
	CodeIoError           Code = "io/error"
)
