package object

// LoxClass is a class declaration's runtime value: it is itself Callable,
// since calling a class constructs an instance (spec.md §4.4). Generalized
// from cmdneo/tree_lox's object/class.go Class type, whose Get/findMethod
// recursion into Superclass this keeps unchanged.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func NewLoxClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name on the class itself, then walks up the
// superclass chain.
func (c *LoxClass) FindMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of "init" when the class defines one, else 0: calling
// a class with no initializer takes no arguments (spec.md §4.4).
func (c *LoxClass) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) String() string {
	return c.Name
}
