package internal

import (
	"reflect"
	"runtime"
	"strconv"
)

// An Fn is a statically compiled function which can be called from Lisp code.
// Arguments are already evaluated. When an Fn fails, it returns a non-nil
// error along with the fallback value the caller should use in lenient mode,
// typically Nil, or False for predicates.
type Fn func(vm *VM, args []Value) (Value, error)

// A Builtin is a Lisp value wrapping an Fn.
type Builtin struct {
	// Name is the symbol the builtin is installed under.
	Name string
	// Func is the name of the Go function, for debugging.
	Func string
	Fn   Fn
}

// NewBuiltin creates a new Builtin wrapping f.
func NewBuiltin(name string, f Fn) *Builtin {
	u := reflect.ValueOf(f).Pointer()
	return &Builtin{
		Name: name,
		Func: runtime.FuncForPC(u).Name(),
		Fn:   f,
	}
}

// Call calls the builtin's function.
func (b *Builtin) Call(vm *VM, args []Value) (Value, error) {
	return b.Fn(vm, args)
}

// Builtins is a table of builtins to install, keyed by name.
type Builtins map[string]Fn

// CheckArity returns an ArityError if len(args) is less than min or, when max
// is not negative, greater than max.
func CheckArity(name string, args []Value, min, max int) error {
	n := len(args)
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	var want string
	switch {
	case max < 0:
		want = "at least " + strconv.Itoa(min)
	case min == max:
		want = strconv.Itoa(min)
	default:
		want = strconv.Itoa(min) + " to " + strconv.Itoa(max)
	}
	return &ArityError{Name: name, Want: want, Have: n}
}

// NumberArgAt returns the nth argument as a Number. If the argument is not a
// Number, the result is a TypeError.
func NumberArgAt(name string, args []Value, n int) (Number, error) {
	if n >= len(args) {
		return 0, &ArityError{Name: name, Want: "at least " + strconv.Itoa(n+1), Have: len(args)}
	}
	x, ok := args[n].(Number)
	if !ok {
		return 0, &TypeError{Name: name, N: n, Want: "number", Have: args[n]}
	}
	return x, nil
}

// StringArgAt returns the nth argument as a String. If the argument is not a
// String, the result is a TypeError.
func StringArgAt(name string, args []Value, n int) (String, error) {
	if n >= len(args) {
		return "", &ArityError{Name: name, Want: "at least " + strconv.Itoa(n+1), Have: len(args)}
	}
	x, ok := args[n].(String)
	if !ok {
		return "", &TypeError{Name: name, N: n, Want: "string", Have: args[n]}
	}
	return x, nil
}

// AtomArgAt returns the nth argument as an *Atom. If the argument is not an
// Atom, the result is a TypeError.
func AtomArgAt(name string, args []Value, n int) (*Atom, error) {
	if n >= len(args) {
		return nil, &ArityError{Name: name, Want: "at least " + strconv.Itoa(n+1), Have: len(args)}
	}
	x, ok := args[n].(*Atom)
	if !ok {
		return nil, &TypeError{Name: name, N: n, Want: "atom", Have: args[n]}
	}
	return x, nil
}

// SeqArgAt returns the elements of the nth argument, which must be a List or
// Vector. Otherwise the result is a TypeError.
func SeqArgAt(name string, args []Value, n int) ([]Value, error) {
	if n >= len(args) {
		return nil, &ArityError{Name: name, Want: "at least " + strconv.Itoa(n+1), Have: len(args)}
	}
	x, ok := Seq(args[n])
	if !ok {
		return nil, &TypeError{Name: name, N: n, Want: "list or vector", Have: args[n]}
	}
	return x, nil
}

// FunctionArgAt returns the nth argument if it is a Closure or Builtin.
// Otherwise the result is a TypeError.
func FunctionArgAt(name string, args []Value, n int) (Value, error) {
	if n >= len(args) {
		return nil, &ArityError{Name: name, Want: "at least " + strconv.Itoa(n+1), Have: len(args)}
	}
	if !IsFunction(stripMeta(args[n])) {
		return nil, &TypeError{Name: name, N: n, Want: "function", Have: args[n]}
	}
	return args[n], nil
}
