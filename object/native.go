package object

import "time"

// NativeFunction wraps a Go function as a Callable, used for the single
// native Lox ships with (spec.md §4.4 Non-goals: "no standard library
// beyond a single built-in clock()"). Trimmed from cmdneo/tree_lox's
// NativeFunctionsList, which also defined string(), getattr(), setattr(),
// delattr() and isinstance() — those belong to a richer stdlib this
// implementation deliberately doesn't carry.
type NativeFunction struct {
	NameStr string
	ArityN  int
	Fn      func(args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.ArityN }

func (n *NativeFunction) String() string { return "<native fn>" }

func (n *NativeFunction) Call(args []Value) (Value, error) {
	return n.Fn(args)
}

// Clock returns a NativeFunction binding for "clock", which takes no
// arguments and returns the number of seconds since the Unix epoch as a
// float (spec.md §4.4).
func Clock() *NativeFunction {
	return &NativeFunction{
		NameStr: "clock",
		ArityN:  0,
		Fn: func(args []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	}
}
