package object

import (
	"fmt"

	"github.com/cmdneo/loxgo/token"
)

// LoxInstance is a class instance: a back-reference to its class plus its
// own field map. Generalized from cmdneo/tree_lox's object/instance.go
// Instance type.
type LoxInstance struct {
	Class  *LoxClass
	Fields map[string]Value
}

func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{Class: class, Fields: map[string]Value{}}
}

// Get resolves a property access: fields shadow methods, and a matching
// method is bound to this instance before it's returned (spec.md §4.4).
func (i *LoxInstance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, fmt.Errorf("Undefined property '%s'.", name.Lexeme)
}

// Set always writes a field, even when it shadows a method; Lox has no
// declared-field list to check against (spec.md §4.4).
func (i *LoxInstance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}

func (i *LoxInstance) String() string {
	return i.Class.Name + " instance"
}
