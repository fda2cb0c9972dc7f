package resolver

import (
	"bytes"
	"testing"

	"github.com/cmdneo/loxgo/parser"
	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/scanner"
)

func resolveSource(t *testing.T, src string) (*report.Std, Depths) {
	t.Helper()
	rep := report.NewStd(&bytes.Buffer{})
	toks := scanner.New(src, rep).ScanTokens()
	stmts, ok := parser.New(toks, rep).Parse()
	if !ok {
		t.Fatalf("parse failed for %q", src)
	}
	depths := New(rep).Resolve(stmts)
	return rep, depths
}

func TestResolveClosureGetsNonzeroDepth(t *testing.T) {
	rep, depths := resolveSource(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
	`)
	if rep.HadStaticError() {
		t.Fatalf("unexpected static error")
	}
	if len(depths) == 0 {
		t.Fatalf("expected at least one resolved local reference")
	}
	nonzero := false
	for _, d := range depths {
		if d > 0 {
			nonzero = true
		}
	}
	if !nonzero {
		t.Fatalf("expected the captured 'count' references to resolve at a nonzero depth, got %v", depths)
	}
}

func TestResolveTopLevelReturnIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, "return 1;")
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for a top-level return")
	}
}

func TestResolveReadingLocalInOwnInitializerIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, "var a = 1; { var a = a; }")
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for reading a local in its own initializer")
	}
}

func TestResolveRedeclarationInSameScopeIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, "{ var a = 1; var a = 2; }")
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for redeclaring a local in the same scope")
	}
}

func TestResolveClassInheritingFromItselfIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, "class Oops < Oops {}")
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for a class inheriting from itself")
	}
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, "print this;")
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for 'this' outside a class")
	}
}

func TestResolveSuperWithoutSuperclassIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, `
		class Animal {
			speak() { return super.speak(); }
		}
	`)
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for 'super' with no superclass")
	}
}

func TestResolveInitializerReturningValueIsAnError(t *testing.T) {
	rep, _ := resolveSource(t, `
		class Box {
			init() { return 1; }
		}
	`)
	if !rep.HadStaticError() {
		t.Fatalf("expected an error for a value-returning initializer")
	}
}
