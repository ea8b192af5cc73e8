package eval

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// standardBuiltins builds the evaluator's built-in table (looked up before
// the scope chain, not bound in any Environment): print, the numeric
// library, and the string library. Each
// fails with a CodeTypeMismatch diagnostic when arity or kinds are wrong.
// Builtins have no source position of their own, so every diagnostic here
// reports diag.Pos{}, the same way the VM backend's position-less
// diagnostics do.
func standardBuiltins(e *Evaluator) map[string]value.Builtin {
	return map[string]value.Builtin{
		"print": func(args []value.Value) (value.Value, error) {
			var sb strings.Builder
			for _, a := range args {
				sb.WriteString(a.PrintString())
			}
			if e.Out != nil {
				e.Out(sb.String())
			}
			return value.Null, nil
		},
		"to_string": func(args []value.Value) (value.Value, error) {
			if len(args) != 1 {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "to_string: expected 1 argument, got %d", len(args))
			}
			return value.String(args[0].ToStringHelper()), nil
		},

		"floor": numericUnary("floor", math.Floor),
		"ceil":  numericUnary("ceil", math.Ceil),
		"sqrt":  numericUnary("sqrt", math.Sqrt),
		"sin":   numericUnary("sin", math.Sin),
		"cos":   numericUnary("cos", math.Cos),
		"tan":   numericUnary("tan", math.Tan),
		"log":   numericUnary("log", math.Log),
		"round": numericUnary("round", math.Round),
		"pow": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindNumber || args[1].Kind != value.KindNumber {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "pow: expected 2 numeric arguments")
			}
			return value.Number(math.Pow(args[0].Number, args[1].Number)), nil
		},

		"concat": func(args []value.Value) (value.Value, error) {
			var sb strings.Builder
			for _, a := range args {
				if a.Kind != value.KindString {
					return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "concat: all arguments must be strings, got %s", a.Kind)
				}
				sb.WriteString(a.Str)
			}
			return value.String(sb.String()), nil
		},
		"substring": func(args []value.Value) (value.Value, error) {
			if len(args) != 3 || args[0].Kind != value.KindString || args[1].Kind != value.KindNumber || args[2].Kind != value.KindNumber {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "substring: expected (string, number, number)")
			}
			s := args[0].Str
			start, end := int(args[1].Number), int(args[2].Number)
			if start < 0 || end > len(s) || start > end {
				return value.Null, diag.Errorf(diag.CodeIndexOutOfBounds, diag.Pos{}, "substring: range [%d:%d] out of bounds for length %d", start, end, len(s))
			}
			return value.String(s[start:end]), nil
		},
		"to_upper": stringUnary("to_upper", upperCaser.String),
		"to_lower": stringUnary("to_lower", lowerCaser.String),
		"index_of": func(args []value.Value) (value.Value, error) {
			if len(args) != 2 || args[0].Kind != value.KindString || args[1].Kind != value.KindString {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "index_of: expected 2 string arguments")
			}
			return value.Number(float64(strings.Index(args[0].Str, args[1].Str))), nil
		},
		"replace": func(args []value.Value) (value.Value, error) {
			if len(args) != 3 || args[0].Kind != value.KindString || args[1].Kind != value.KindString || args[2].Kind != value.KindString {
				return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "replace: expected 3 string arguments")
			}
			return value.String(strings.ReplaceAll(args[0].Str, args[1].Str, args[2].Str)), nil
		},
	}
}

func numericUnary(name string, f func(float64) float64) value.Builtin {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindNumber {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "%s: expected 1 numeric argument", name)
		}
		return value.Number(f(args[0].Number)), nil
	}
}

func stringUnary(name string, f func(string) string) value.Builtin {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 || args[0].Kind != value.KindString {
			return value.Null, diag.Errorf(diag.CodeTypeMismatch, diag.Pos{}, "%s: expected 1 string argument", name)
		}
		return value.String(f(args[0].Str)), nil
	}
}
