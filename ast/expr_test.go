package ast

import (
	"testing"

	"github.com/cmdneo/loxgo/token"
)

func TestNodeIDsAreUniquePerConstruction(t *testing.T) {
	a := NewLiteral(1.0)
	b := NewLiteral(1.0)
	if a.ID() == b.ID() {
		t.Fatalf("two distinct Literal nodes built from the same value got the same id: %d", a.ID())
	}
}

func TestNodeIDIsStableAcrossCopies(t *testing.T) {
	a := NewVariable(token.Token{Kind: token.IDENTIFIER, Lexeme: "x"})
	copyOfA := a
	if a.ID() != copyOfA.ID() {
		t.Fatalf("copying a node by value changed its id: %d != %d", a.ID(), copyOfA.ID())
	}
}
