// Package env implements the chained name-to-value scopes used by the
// tree-walking evaluator.
package env

import "github.com/simondevenish/EmberScript/internal/value"

// binding is one name/value pair in a scope's flat list.
type binding struct {
	name  string
	value value.Value
}

// Environment is a single scope in the chain: a flat list of bindings plus
// an optional link to the enclosing scope. A new Environment is created per
// function call and per `for` header.
type Environment struct {
	bindings []binding
	parent   *Environment
}

// NewRoot creates an empty global scope with no parent.
func NewRoot() *Environment {
	return &Environment{}
}

// NewChild creates an empty scope whose parent is the given environment.
func NewChild(parent *Environment) *Environment {
	return &Environment{parent: parent}
}

// Set walks outward from the current scope looking for an existing binding
// with the same name. If found, it is overwritten with a deep copy of value.
// If no binding exists anywhere in the chain, a new one is appended to the
// current (innermost) scope.
func (e *Environment) Set(name string, v value.Value) {
	for scope := e; scope != nil; scope = scope.parent {
		for i := range scope.bindings {
			if scope.bindings[i].name == name {
				scope.bindings[i].value = v.Clone()
				return
			}
		}
	}
	e.bindings = append(e.bindings, binding{name: name, value: v.Clone()})
}

// Get walks outward from the current scope and returns a deep copy of the
// first matching binding's value, or ok=false if the name is unbound
// anywhere in the chain.
func (e *Environment) Get(name string) (value.Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		for i := range scope.bindings {
			if scope.bindings[i].name == name {
				return scope.bindings[i].value.Clone(), true
			}
		}
	}
	return value.Null, false
}
