// Package interpreter walks the resolved statement tree and evaluates it.
//
// cmdneo/tree_lox's interpreter/interpreter.go threads control flow
// (break/continue/return) and runtime errors both through panic/recover,
// using a single runtimeError sentinel type to tell the two apart in the
// deferred recover. That conflates two different things a propagating
// panic crossing call boundaries can mean. This version separates them:
// a runtime error is a plain Go error returned up the call stack, and a
// function "return" is represented by a distinct returnSignal error value
// that executeBlock's caller unwraps — never a panic, and never crossing
// the interpreter's own package boundary.
package interpreter

import (
	"fmt"
	"io"

	"github.com/cmdneo/loxgo/ast"
	"github.com/cmdneo/loxgo/object"
	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/resolver"
	"github.com/cmdneo/loxgo/token"
)

// Interpreter walks a resolved program and executes it against a chain of
// object.Environment frames rooted at globals.
type Interpreter struct {
	globals  *object.Environment
	env      *object.Environment
	depths   resolver.Depths
	reporter report.Reporter
	out      io.Writer
}

// New creates an Interpreter whose print statements write to out and
// whose runtime errors are reported through r. The global scope is seeded
// with clock() (spec.md §4.4).
func New(r report.Reporter, out io.Writer) *Interpreter {
	globals := object.NewEnvironment(nil)
	globals.Define("clock", object.Clock())
	return &Interpreter{globals: globals, env: globals, reporter: r, out: out}
}

// runtimeError is a Lox-level runtime fault: an operator or call applied
// to the wrong kind of value, an undefined name, and so on. tok is the
// token whose line the Reporter attributes the error to.
type runtimeError struct {
	tok token.Token
	msg string
}

func (e *runtimeError) Error() string { return e.msg }

func (i *Interpreter) fault(tok token.Token, format string, args ...any) error {
	return &runtimeError{tok: tok, msg: fmt.Sprintf(format, args...)}
}

// returnSignal carries a function's "return" value back out through
// execute/executeBlock's ordinary error channel. callFunction is the only
// place that unwraps it; anywhere else it propagates like any other error,
// which is what makes a return inside nested blocks and loops unwind
// correctly without a panic.
type returnSignal struct {
	value object.Value
}

func (r *returnSignal) Error() string { return "return" }

// Interpret runs stmts to completion, reporting the first runtime error
// (if any) through the Interpreter's Reporter and stopping there
// (spec.md §7: a runtime error aborts the remaining program).
//
// depths is merged into, not swapped for, the Interpreter's running depth
// map: the REPL resolves and interprets one line at a time, and a
// function closed over on an earlier line still needs that line's depth
// entries when it's finally called on a later one.
func (i *Interpreter) Interpret(stmts []ast.Stmt, depths resolver.Depths) {
	if i.depths == nil {
		i.depths = resolver.Depths{}
	}
	for id, d := range depths {
		i.depths[id] = d
	}

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			i.reportError(err)
			return
		}
	}
}

func (i *Interpreter) reportError(err error) {
	if rt, ok := err.(*runtimeError); ok {
		i.reporter.Runtime(rt.tok, rt.msg)
		return
	}
	i.reporter.Runtime(token.Token{}, err.Error())
}

// Statement execution
// --------------------------------------------------------

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case ast.Block:
		return i.executeBlock(s.Statements, object.NewEnvironment(i.env))

	case ast.Class:
		return i.executeClass(s)

	case ast.Expression:
		_, err := i.evaluate(s.Expr)
		return err

	case ast.Function:
		fn := object.NewLoxFunction(s, i.env, false)
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case ast.If:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if object.Truthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return nil

	case ast.Print:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, object.Stringify(v))
		return nil

	case ast.Return:
		var v object.Value
		if s.Value != nil {
			var err error
			v, err = i.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: v}

	case ast.Var:
		var v object.Value
		if s.Init != nil {
			var err error
			v, err = i.evaluate(s.Init)
			if err != nil {
				return err
			}
		}
		i.env.Define(s.Name.Lexeme, v)
		return nil

	case ast.While:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !object.Truthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	default:
		panic("interpreter: unhandled statement type")
	}
}

func (i *Interpreter) executeClass(s ast.Class) error {
	var superclass *object.LoxClass
	if s.Superclass != nil {
		v, err := i.evaluate(*s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*object.LoxClass)
		if !ok {
			return i.fault(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, nil)

	methodEnv := i.env
	if superclass != nil {
		methodEnv = object.NewEnvironment(i.env)
		methodEnv.Define("super", superclass)
	}

	methods := map[string]*object.LoxFunction{}
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = object.NewLoxFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := object.NewLoxClass(s.Name.Lexeme, superclass, methods)
	i.env.Assign(s.Name.Lexeme, class)
	return nil
}

// executeBlock runs stmts against env, restoring the interpreter's
// previous environment on every exit path, including one unwound by a
// returnSignal or runtime error.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *object.Environment) error {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// Expression evaluation
// --------------------------------------------------------

func (i *Interpreter) evaluate(expr ast.Expr) (object.Value, error) {
	switch e := expr.(type) {
	case ast.Assign:
		return i.evalAssign(e)
	case ast.Binary:
		return i.evalBinary(e)
	case ast.Call:
		return i.evalCall(e)
	case ast.Get:
		return i.evalGet(e)
	case ast.Grouping:
		return i.evaluate(e.Inner)
	case ast.Literal:
		return e.Value, nil
	case ast.Logical:
		return i.evalLogical(e)
	case ast.Set:
		return i.evalSet(e)
	case ast.Super:
		return i.evalSuper(e)
	case ast.This:
		return i.env.GetAt(i.depths[e.ID()], "this"), nil
	case ast.Unary:
		return i.evalUnary(e)
	case ast.Variable:
		return i.lookupVariable(e)
	default:
		panic("interpreter: unhandled expression type")
	}
}

func (i *Interpreter) evalAssign(e ast.Assign) (object.Value, error) {
	v, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if depth, ok := i.depths[e.ID()]; ok {
		i.env.AssignAt(depth, e.Name.Lexeme, v)
		return v, nil
	}
	if !i.globals.Assign(e.Name.Lexeme, v) {
		return nil, i.fault(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
	}
	return v, nil
}

func (i *Interpreter) evalLogical(e ast.Logical) (object.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Kind == token.OR {
		if object.Truthy(left) {
			return left, nil
		}
	} else {
		if !object.Truthy(left) {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) evalBinary(e ast.Binary) (object.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	nums := func() (float64, float64, bool) {
		l, lok := left.(float64)
		r, rok := right.(float64)
		return l, r, lok && rok
	}

	switch e.Operator.Kind {
	case token.PLUS:
		if l, r, ok := nums(); ok {
			return l + r, nil
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, i.fault(e.Operator, "Operands must be two numbers or two strings.")

	case token.MINUS:
		if l, r, ok := nums(); ok {
			return l - r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.STAR:
		if l, r, ok := nums(); ok {
			return l * r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.SLASH:
		if l, r, ok := nums(); ok {
			if r == 0 {
				return nil, i.fault(e.Operator, "Division by zero.")
			}
			return l / r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.GREATER:
		if l, r, ok := nums(); ok {
			return l > r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.GREATER_EQUAL:
		if l, r, ok := nums(); ok {
			return l >= r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.LESS:
		if l, r, ok := nums(); ok {
			return l < r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.LESS_EQUAL:
		if l, r, ok := nums(); ok {
			return l <= r, nil
		}
		return nil, i.fault(e.Operator, "Operands must be numbers.")

	case token.EQUAL_EQUAL:
		return object.Equal(left, right), nil

	case token.BANG_EQUAL:
		return !object.Equal(left, right), nil

	default:
		panic("interpreter: unhandled binary operator")
	}
}

func (i *Interpreter) evalUnary(e ast.Unary) (object.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.BANG:
		return !object.Truthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, i.fault(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("interpreter: unhandled unary operator")
	}
}

func (i *Interpreter) evalCall(e ast.Call) (object.Value, error) {
	calleeVal, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callee, ok := calleeVal.(object.Callable)
	if !ok {
		return nil, i.fault(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callee.Arity() {
		return nil, i.fault(e.Paren, "Expected %d arguments but got %d.", callee.Arity(), len(args))
	}

	switch fn := callee.(type) {
	case *object.LoxFunction:
		return i.callFunction(fn, args)
	case *object.LoxClass:
		return i.callClass(fn, args)
	case *object.NativeFunction:
		return fn.Call(args)
	default:
		return nil, i.fault(e.Paren, "Can only call functions and classes.")
	}
}

func (i *Interpreter) callFunction(fn *object.LoxFunction, args []object.Value) (object.Value, error) {
	env := object.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(fn.Declaration.Body, env)
	ret, isReturn := err.(*returnSignal)

	if fn.IsInitializer {
		if err != nil && !isReturn {
			return nil, err
		}
		return fn.Closure.GetAt(0, "this"), nil
	}
	if isReturn {
		return ret.value, nil
	}
	return nil, err
}

func (i *Interpreter) callClass(cls *object.LoxClass, args []object.Value) (object.Value, error) {
	instance := object.NewLoxInstance(cls)
	if init, ok := cls.FindMethod("init"); ok {
		if _, err := i.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (i *Interpreter) evalGet(e ast.Get) (object.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*object.LoxInstance)
	if !ok {
		return nil, i.fault(e.Name, "Only instances have properties.")
	}
	v, err := inst.Get(e.Name)
	if err != nil {
		return nil, i.fault(e.Name, err.Error())
	}
	return v, nil
}

func (i *Interpreter) evalSet(e ast.Set) (object.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*object.LoxInstance)
	if !ok {
		return nil, i.fault(e.Name, "Only instances have fields.")
	}

	v, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

func (i *Interpreter) evalSuper(e ast.Super) (object.Value, error) {
	depth := i.depths[e.ID()]
	superclass, _ := i.env.GetAt(depth, "super").(*object.LoxClass)
	instance, _ := i.env.GetAt(depth-1, "this").(*object.LoxInstance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, i.fault(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (i *Interpreter) lookupVariable(e ast.Variable) (object.Value, error) {
	if depth, ok := i.depths[e.ID()]; ok {
		return i.env.GetAt(depth, e.Name.Lexeme), nil
	}
	if v, ok := i.globals.Get(e.Name.Lexeme); ok {
		return v, nil
	}
	return nil, i.fault(e.Name, "Undefined variable '%s'.", e.Name.Lexeme)
}
