// Package ast defines the expression and statement tree produced by the
// parser and walked by the resolver and interpreter.
//
// Expr and Stmt are closed tagged variants dispatched by type switch in
// their consumers, rather than the visitor double-dispatch pattern: Go's
// type switches give the same exhaustiveness a visitor buys without a
// second interface per tree, and keep the evaluator's cases next to each
// other instead of spread across one method per node type.
package ast

import "github.com/cmdneo/loxgo/token"

// nextID is a monotonically increasing counter assigned at construction
// time. Two expression nodes built from textually identical source are
// still distinct values, which is what lets the resolver's depth map key
// on identity rather than structure.
var nextID int

func newID() int {
	nextID++
	return nextID
}

// Expr is any expression node. ID returns its parse-time identity, used as
// the resolver depth map's key.
type Expr interface {
	ID() int
}

type Assign struct {
	NodeID int
	Name   token.Token
	Value  Expr
}

type Binary struct {
	NodeID   int
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Call struct {
	NodeID int
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

type Get struct {
	NodeID int
	Object Expr
	Name   token.Token
}

type Grouping struct {
	NodeID int
	Inner  Expr
}

type Literal struct {
	NodeID int
	Value  any
}

type Logical struct {
	NodeID   int
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Set struct {
	NodeID int
	Object Expr
	Name   token.Token
	Value  Expr
}

type Super struct {
	NodeID  int
	Keyword token.Token
	Method  token.Token
}

type This struct {
	NodeID  int
	Keyword token.Token
}

type Unary struct {
	NodeID   int
	Operator token.Token
	Right    Expr
}

type Variable struct {
	NodeID int
	Name   token.Token
}

func (e Assign) ID() int   { return e.NodeID }
func (e Binary) ID() int   { return e.NodeID }
func (e Call) ID() int     { return e.NodeID }
func (e Get) ID() int      { return e.NodeID }
func (e Grouping) ID() int { return e.NodeID }
func (e Literal) ID() int  { return e.NodeID }
func (e Logical) ID() int  { return e.NodeID }
func (e Set) ID() int      { return e.NodeID }
func (e Super) ID() int    { return e.NodeID }
func (e This) ID() int     { return e.NodeID }
func (e Unary) ID() int    { return e.NodeID }
func (e Variable) ID() int { return e.NodeID }

func NewAssign(name token.Token, value Expr) Assign {
	return Assign{NodeID: newID(), Name: name, Value: value}
}

func NewBinary(left Expr, op token.Token, right Expr) Binary {
	return Binary{NodeID: newID(), Left: left, Operator: op, Right: right}
}

func NewCall(callee Expr, paren token.Token, args []Expr) Call {
	return Call{NodeID: newID(), Callee: callee, Paren: paren, Args: args}
}

func NewGet(object Expr, name token.Token) Get {
	return Get{NodeID: newID(), Object: object, Name: name}
}

func NewGrouping(inner Expr) Grouping {
	return Grouping{NodeID: newID(), Inner: inner}
}

func NewLiteral(value any) Literal {
	return Literal{NodeID: newID(), Value: value}
}

func NewLogical(left Expr, op token.Token, right Expr) Logical {
	return Logical{NodeID: newID(), Left: left, Operator: op, Right: right}
}

func NewSet(object Expr, name token.Token, value Expr) Set {
	return Set{NodeID: newID(), Object: object, Name: name, Value: value}
}

func NewSuper(keyword, method token.Token) Super {
	return Super{NodeID: newID(), Keyword: keyword, Method: method}
}

func NewThis(keyword token.Token) This {
	return This{NodeID: newID(), Keyword: keyword}
}

func NewUnary(op token.Token, right Expr) Unary {
	return Unary{NodeID: newID(), Operator: op, Right: right}
}

func NewVariable(name token.Token) Variable {
	return Variable{NodeID: newID(), Name: name}
}
