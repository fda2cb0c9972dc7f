package object

import "github.com/cmdneo/loxgo/ast"

// LoxFunction is a user-defined function or method: its declaration plus
// the environment it closed over at definition time. Generalized from
// cmdneo/tree_lox's object/function.go Function type (Declaration,
// Enclosing, IsInit fields) onto the new Environment shape.
type LoxFunction struct {
	Declaration   ast.Function
	Closure       *Environment
	IsInitializer bool
}

func NewLoxFunction(decl ast.Function, closure *Environment, isInitializer bool) *LoxFunction {
	return &LoxFunction{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *LoxFunction) Arity() int {
	return len(f.Declaration.Params)
}

func (f *LoxFunction) String() string {
	return "<fn " + f.Declaration.Name.Lexeme + ">"
}

// Bind returns a copy of f whose closure has "this" bound to instance, one
// scope out from the function's own parameters (spec.md §4.4 method
// binding).
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return NewLoxFunction(f.Declaration, env, f.IsInitializer)
}
