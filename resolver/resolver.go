// Package resolver implements the static pass described in spec.md §4.3:
// it walks the full statement tree once, tracking a stack of lexical
// scopes, and for every Variable/Assign expression records how many scope
// hops separate its use from its declaration. The interpreter consumes
// that depth map instead of re-deriving scope structure at eval time.
//
// The scope-stack shape (map[string]bool per scope, declare/define as two
// phases) is the teacher's own design (cmdneo/tree_lox/parser/locals.go),
// generalized from slot-indexed locals embedded in the parser into a
// free-standing pass that keys on ast.Expr identity, matching spec.md §3's
// "Resolver depth map" and §9's "Identity-keyed depth map" design note.
package resolver

import (
	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/token"
)

type functionType uint8

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType uint8

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Depths maps an Expr's identity (ast.Expr.ID()) to its resolved scope
// hop-distance. Absence means "resolve against globals" (spec.md §3).
type Depths map[int]int

// Resolver performs the single static pass over a parsed program.
type Resolver struct {
	scopes       []map[string]bool
	depths       Depths
	currentFn    functionType
	currentClass classType
	reporter     report.Reporter
}

func New(r report.Reporter) *Resolver {
	return &Resolver{depths: Depths{}, reporter: r}
}

// Resolve walks stmts and returns the completed depth map. Errors are
// reported through the Reporter as they're found; resolution continues
// afterward so as many diagnostics as possible surface in one pass
// (spec.md §7).
func (r *Resolver) Resolve(stmts []ast.Stmt) Depths {
	r.resolveStmts(stmts)
	return r.depths
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case ast.Class:
		r.resolveClass(s)

	case ast.Expression:
		r.resolveExpr(s.Expr)

	case ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case ast.Print:
		r.resolveExpr(s.Expr)

	case ast.Return:
		if r.currentFn == fnNone {
			r.reporter.Static(s.Keyword.Line, report.AtToken(s.Keyword),
				"Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFn == fnInitializer {
				r.reporter.Static(s.Keyword.Line, report.AtToken(s.Keyword),
					"Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case ast.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s ast.Class) {
	r.declare(s.Name)
	r.define(s.Name)

	enclosingClass := r.currentClass
	r.currentClass = classClass

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.Static(s.Name.Line, report.AtToken(s.Name),
				"A class can't inherit from itself.")
		} else {
			r.currentClass = classSubclass
			r.resolveExpr(*s.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		fnType := fnMethod
		if method.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn ast.Function, fnType functionType) {
	enclosingFn := r.currentFn
	r.currentFn = fnType

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case ast.Get:
		r.resolveExpr(e.Object)

	case ast.Grouping:
		r.resolveExpr(e.Inner)

	case ast.Literal:
		// nothing to resolve

	case ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case ast.Super:
		if r.currentClass == classNone {
			r.reporter.Static(e.Keyword.Line, report.AtToken(e.Keyword),
				"Can't use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.reporter.Static(e.Keyword.Line, report.AtToken(e.Keyword),
				"Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	case ast.This:
		if r.currentClass == classNone {
			r.reporter.Static(e.Keyword.Line, report.AtToken(e.Keyword),
				"Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e, e.Keyword)

	case ast.Unary:
		r.resolveExpr(e.Right)

	case ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.reporter.Static(e.Name.Line, report.AtToken(e.Name),
					"Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	default:
		panic("resolver: unhandled expression type")
	}
}

// resolveLocal walks the scope stack top-down; on a hit it records the
// hop-distance (0 = innermost) for expr's identity. A miss leaves expr
// unrecorded, which the interpreter treats as a global reference.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.Static(name.Line, report.AtToken(name),
			"Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
