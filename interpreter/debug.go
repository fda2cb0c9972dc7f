package interpreter

import (
	"strings"

	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/object"
)

// Print renders expr as a fully-parenthesized Lisp-ish string, e.g.
// "(+ 1 (* 2 3))". Adapted from cmdneo/tree_lox's interpreter/debug.go
// ExprPrinter, a visitor over the old tree; this version is a plain
// function over the type-switch Expr set, used by the parser's tests to
// assert on parse-tree shape without comparing struct literals field by
// field.
func Print(expr ast.Expr) string {
	switch e := expr.(type) {
	case ast.Assign:
		return parens("=", e.Name.Lexeme, Print(e.Value))
	case ast.Binary:
		return parens(e.Operator.Lexeme, Print(e.Left), Print(e.Right))
	case ast.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = Print(a)
		}
		return parens("call", append([]string{Print(e.Callee)}, args...)...)
	case ast.Get:
		return parens(".", Print(e.Object), e.Name.Lexeme)
	case ast.Grouping:
		return parens("group", Print(e.Inner))
	case ast.Literal:
		return object.Stringify(e.Value)
	case ast.Logical:
		return parens(e.Operator.Lexeme, Print(e.Left), Print(e.Right))
	case ast.Set:
		return parens("=", Print(e.Object)+"."+e.Name.Lexeme, Print(e.Value))
	case ast.Super:
		return "super." + e.Method.Lexeme
	case ast.This:
		return "this"
	case ast.Unary:
		return parens(e.Operator.Lexeme, Print(e.Right))
	case ast.Variable:
		return e.Name.Lexeme
	default:
		panic("interpreter: unhandled expression type in Print")
	}
}

func parens(head string, rest ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, r := range rest {
		b.WriteByte(' ')
		b.WriteString(r)
	}
	b.WriteByte(')')
	return b.String()
}
