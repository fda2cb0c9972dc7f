package parser

import (
	"bytes"
	"testing"

	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/interpreter"
	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/scanner"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *report.Std) {
	t.Helper()
	rep := report.NewStd(&bytes.Buffer{})
	toks := scanner.New(src, rep).ScanTokens()
	stmts, ok := New(toks, rep).Parse()
	if !ok {
		t.Fatalf("parse reported an error for %q", src)
	}
	return stmts, rep
}

func TestParseExpressionPrecedence(t *testing.T) {
	stmts, _ := parse(t, "1 + 2 * 3;")
	expr := stmts[0].(ast.Expression).Expr
	if got, want := interpreter.Print(expr), "(+ 1 (* 2 3))"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseGroupingOverridesPrecedence(t *testing.T) {
	stmts, _ := parse(t, "(1 + 2) * 3;")
	expr := stmts[0].(ast.Expression).Expr
	if got, want := interpreter.Print(expr), "(* (group (+ 1 2)) 3)"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, _ := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	block, ok := stmts[0].(ast.Block)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("expected a desugared block with init+while, got %#v", stmts[0])
	}
	if _, ok := block.Statements[0].(ast.Var); !ok {
		t.Fatalf("first statement should be the initializer, got %#v", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(ast.While)
	if !ok {
		t.Fatalf("second statement should be the desugared while, got %#v", block.Statements[1])
	}
	body, ok := whileStmt.Body.(ast.Block)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("while body should be {print i; i = i + 1;}, got %#v", whileStmt.Body)
	}
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts, _ := parse(t, `
		class Animal {
			speak() { return "..."; }
		}
		class Dog < Animal {
			speak() { return "Woof"; }
		}
	`)
	dog := stmts[1].(ast.Class)
	if dog.Superclass == nil || dog.Superclass.Name.Lexeme != "Animal" {
		t.Fatalf("expected Dog < Animal, got %#v", dog.Superclass)
	}
	if len(dog.Methods) != 1 || dog.Methods[0].Name.Lexeme != "speak" {
		t.Fatalf("got methods %#v", dog.Methods)
	}
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	rep := report.NewStd(&bytes.Buffer{})
	toks := scanner.New("1 + 2 = 3;", rep).ScanTokens()
	_, ok := New(toks, rep).Parse()
	if ok {
		t.Fatalf("expected a parse error for an invalid assignment target")
	}
}

func TestParseMissingSemicolonReportsAndSynchronizes(t *testing.T) {
	rep := report.NewStd(&bytes.Buffer{})
	toks := scanner.New("var a = 1\nvar b = 2;", rep).ScanTokens()
	stmts, ok := New(toks, rep).Parse()
	if ok {
		t.Fatalf("expected a parse error for the missing semicolon")
	}
	// synchronize should still recover the second declaration.
	if len(stmts) != 1 {
		t.Fatalf("expected synchronize to recover one statement, got %d", len(stmts))
	}
}
