package object

import (
	"testing"

	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/token"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0.0, true},
		{"", true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{nil, nil, true},
		{nil, false, false},
		{1.0, 1.0, true},
		{1.0, 2.0, false},
		{"a", "a", true},
		{"a", "b", false},
		{true, true, true},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("Equal(%#v, %#v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestStringifyNumberStripsTrailingZero(t *testing.T) {
	if got, want := Stringify(5.0), "5"; got != want {
		t.Errorf("Stringify(5.0) = %q, want %q", got, want)
	}
	if got, want := Stringify(5.5), "5.5"; got != want {
		t.Errorf("Stringify(5.5) = %q, want %q", got, want)
	}
}

func TestEnvironmentChainAndShadowing(t *testing.T) {
	globals := NewEnvironment(nil)
	globals.Define("x", 1.0)

	inner := NewEnvironment(globals)
	inner.Define("x", 2.0)

	if v, _ := inner.Get("x"); v != 2.0 {
		t.Fatalf("inner x = %v, want 2", v)
	}
	if v, _ := globals.Get("x"); v != 1.0 {
		t.Fatalf("global x = %v, want 1", v)
	}

	inner.AssignAt(1, "x", 99.0)
	if v, _ := globals.Get("x"); v != 99.0 {
		t.Fatalf("AssignAt(1, ...) should write the global frame, got %v", v)
	}
}

func TestLoxClassFindMethodWalksSuperclass(t *testing.T) {
	speak := ast.Function{Name: token.Token{Lexeme: "speak"}}
	base := NewLoxClass("Animal", nil, map[string]*LoxFunction{
		"speak": NewLoxFunction(speak, nil, false),
	})
	sub := NewLoxClass("Dog", base, map[string]*LoxFunction{})

	m, ok := sub.FindMethod("speak")
	if !ok || m == nil {
		t.Fatalf("expected Dog to inherit 'speak' from Animal")
	}
}
