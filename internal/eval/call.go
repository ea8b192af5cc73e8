package eval

import (
	"github.com/simondevenish/EmberScript/internal/ast"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/env"
	"github.com/simondevenish/EmberScript/internal/parser"
	"github.com/simondevenish/EmberScript/internal/value"
)

// evalFunctionCall implements spec.md §4.4's function-call rule: built-ins
// are looked up first (they are not shadowable bindings), then the scope
// chain is searched for a user-defined function value.
func (e *Evaluator) evalFunctionCall(n *ast.Node, scope *env.Environment) (value.Value, error) {
	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(a, scope)
		if err != nil {
			return value.Null, err
		}
		args[i] = v
	}

	if builtin, ok := e.builtins[n.Callee]; ok {
		return builtin(args)
	}

	fnValue, ok := scope.Get(n.Callee)
	if !ok || fnValue.Kind != value.KindFunction {
		return value.Null, diag.Errorf(diag.CodeUndefinedFunction, pos, "%q is not a function", n.Callee)
	}
	if fnValue.Fn.Kind == value.FunctionBuiltin {
		return fnValue.Fn.Builtin(args)
	}
	return e.callUserFunction(fnValue.Fn.User, args, scope)
}

// callUserFunction binds parameters in a fresh child scope of the caller's
// scope, runs the body, and always returns null: return statements are not
// modeled, so a call's value is whatever falling off the end produces.
func (e *Evaluator) callUserFunction(fn *value.UserFunction, args []value.Value, caller *env.Environment) (value.Value, error) {
	body, ok := fn.Body.(*ast.Node)
	if !ok {
		return value.Null, diag.Errorf(diag.CodeUndefinedFunction, diag.Pos{}, "function %q has no body", fn.Name)
	}
	callScope := env.NewChild(caller)
	for i, param := range fn.Params {
		if i < len(args) {
			callScope.Set(param, args[i])
		} else {
			callScope.Set(param, value.Null) // missing arguments bind to null
		}
	}
	// extra arguments beyond len(fn.Params) are silently discarded
	if _, err := e.Eval(body, callScope); err != nil {
		return value.Null, err
	}
	return value.Null, nil
}

func (e *Evaluator) evalImport(n *ast.Node, scope *env.Environment) (value.Value, error) {
	pos := diag.Pos{Line: n.Pos.Line, Column: n.Pos.Column}

	if e.Importer == nil {
		return value.Null, diag.Errorf(diag.CodeIoError, pos, "import %q: no importer configured", n.Path)
	}
	if e.visited[n.Path] {
		return value.Null, nil
	}
	e.visited[n.Path] = true

	src, err := e.Importer(n.Path)
	if err != nil {
		return value.Null, diag.Errorf(diag.CodeIoError, pos, "import %q: %v", n.Path, err)
	}
	bag := diag.NewBag(100)
	root := parser.ParseScript(src, bag)
	if bag.HasErrors() {
		return value.Null, diag.Errorf(diag.CodeParseError, pos, "import %q: %d parse error(s)", n.Path, bag.Len())
	}
	return e.Eval(root, scope)
}
