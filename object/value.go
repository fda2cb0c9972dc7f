// Package object implements spec.md §3's dynamic value model: Nil, Bool,
// Number, String, Callable and Instance, plus the Environment chain
// (environment.go), LoxFunction (function.go), LoxClass (class.go),
// LoxInstance (instance.go) and the native clock() (native.go).
//
// Truthiness, equality and stringify logic follow
// cmdneo/tree_lox/value/value.go and object/object.go, generalized from
// their typed-wrapper (value.Number, value.String, ...) representation to
// plain Go primitives boxed in `any`: nil, bool, float64 and string, which
// is what ast.Literal.Value already holds straight out of the scanner, so
// no boxing/unboxing step sits between literal and runtime value.
package object

import (
	"fmt"
	"strconv"
)

// Value is any Lox runtime value: nil, bool, float64, string, a Callable
// (LoxFunction, LoxClass or a native function) or *LoxInstance. Only
// Callable and *LoxInstance carry reference identity; the rest are
// ordinary Go value types.
type Value = any

// Callable is the shared protocol LoxFunction, LoxClass and native
// functions implement so the interpreter can dispatch Call expressions
// uniformly (spec.md §4.4 "Callable protocol"). The interpreter, not this
// package, knows how to run a LoxFunction's body or construct a
// LoxInstance — Call lives on the interpreter as a type switch over
// Callable's concrete types, since invoking Lox code needs the
// interpreter's own environment/globals state. NativeFunction is the one
// implementation that can run itself, since clock() needs nothing but its
// arguments.
type Callable interface {
	Arity() int
	String() string
}

// Truthy reports Lox truthiness: only nil and false are falsey
// (spec.md §4.4).
func Truthy(v Value) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	default:
		return true
	}
}

// Equal implements spec.md §4.4's equality: nil equals only nil; numbers,
// strings and bools compare by Go's native ==; Callables and *LoxInstance
// compare by reference identity, which Go's == already gives for
// interface values holding the same pointer.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	return a == b
}

// Stringify renders v the way Lox's print statement and string
// concatenation via + do (spec.md §4.4).
func Stringify(v Value) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	case Callable:
		return t.String()
	case *LoxInstance:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
