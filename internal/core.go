package internal

import (
	"errors"
	"fmt"
	"strconv"
)

// initCore installs the core builtins into the root environment.
func (vm *VM) initCore() {
	vm.Install(Builtins{
		"+": CoreAdd,
		"-": CoreSub,
		"*": CoreMul,
		"/": CoreDiv,

		"pr-str":  CorePrStr,
		"str":     CoreStr,
		"prn":     CorePrn,
		"println": CorePrintln,

		"read-string": CoreReadString,
		"slurp":       CoreSlurp,

		"list":        CoreList,
		"list?":       CoreIsList,
		"vector":      CoreVector,
		"vector?":     CoreIsVector,
		"sequential?": CoreIsSequential,
		"empty?":      CoreIsEmpty,
		"count":       CoreCount,
		"vec":         CoreVec,
		"cons":        CoreCons,
		"concat":      CoreConcat,
		"nth":         CoreNth,
		"first":       CoreFirst,
		"rest":        CoreRest,

		"=":  CoreEqual,
		"<":  CoreLess,
		"<=": CoreLessEqual,
		">":  CoreGreater,
		">=": CoreGreaterEqual,

		"atom":   CoreAtom,
		"atom?":  CoreIsAtom,
		"deref":  CoreDeref,
		"reset!": CoreReset,
		"swap!":  CoreSwap,

		"nil?":    CoreIsNil,
		"true?":   CoreIsTrue,
		"false?":  CoreIsFalse,
		"number?": CoreIsNumber,
		"string?": CoreIsString,
		"symbol?": CoreIsSymbol,
		"fn?":     CoreIsFn,
		"symbol":  CoreSymbol,

		"meta":      CoreMeta,
		"with-meta": CoreWithMeta,
	})
}

// numberFold left-folds op over args, which must all be Numbers. With no
// arguments, the result is Nil.
func numberFold(name string, args []Value, op func(acc, x Number) (Number, error)) (Value, error) {
	if len(args) == 0 {
		return Nil, nil
	}
	acc, err := NumberArgAt(name, args, 0)
	if err != nil {
		return Nil, err
	}
	for i := 1; i < len(args); i++ {
		x, err := NumberArgAt(name, args, i)
		if err != nil {
			return Nil, err
		}
		if acc, err = op(acc, x); err != nil {
			return Nil, err
		}
	}
	return acc, nil
}

// CoreAdd is a builtin.
//
// + sums its arguments.
func CoreAdd(vm *VM, args []Value) (Value, error) {
	return numberFold("+", args, func(acc, x Number) (Number, error) { return acc + x, nil })
}

// CoreSub is a builtin.
//
// - subtracts each argument after the first from the first.
func CoreSub(vm *VM, args []Value) (Value, error) {
	return numberFold("-", args, func(acc, x Number) (Number, error) { return acc - x, nil })
}

// CoreMul is a builtin.
//
// * multiplies its arguments.
func CoreMul(vm *VM, args []Value) (Value, error) {
	return numberFold("*", args, func(acc, x Number) (Number, error) { return acc * x, nil })
}

// CoreDiv is a builtin.
//
// / divides the first argument by each following argument in turn, truncating
// toward zero.
func CoreDiv(vm *VM, args []Value) (Value, error) {
	return numberFold("/", args, func(acc, x Number) (Number, error) {
		if x == 0 {
			return 0, &ArithmeticError{Name: "/", Msg: "division by zero"}
		}
		return acc / x, nil
	})
}

// CorePrStr is a builtin.
//
// pr-str prints its arguments readably, separated by spaces.
func CorePrStr(vm *VM, args []Value) (Value, error) {
	return String(PrintSeq(args, true, " ")), nil
}

// CoreStr is a builtin.
//
// str concatenates the non-readable printed forms of its arguments.
func CoreStr(vm *VM, args []Value) (Value, error) {
	return String(PrintSeq(args, false, "")), nil
}

// CorePrn is a builtin.
//
// prn writes its arguments readably to standard output, separated by spaces
// and followed by a newline.
func CorePrn(vm *VM, args []Value) (Value, error) {
	fmt.Fprintln(vm.Stdout, PrintSeq(args, true, " "))
	return Nil, nil
}

// CorePrintln is a builtin.
//
// println writes its arguments non-readably to standard output, separated by
// spaces and followed by a newline.
func CorePrintln(vm *VM, args []Value) (Value, error) {
	fmt.Fprintln(vm.Stdout, PrintSeq(args, false, " "))
	return Nil, nil
}

// CoreReadString is a builtin.
//
// read-string reads the first form in a string without evaluating it. A
// string containing no forms reads as nil.
func CoreReadString(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("read-string", args, 1, 1); err != nil {
		return Nil, err
	}
	s, err := StringArgAt("read-string", args, 0)
	if err != nil {
		return Nil, err
	}
	v, err := Read(string(s))
	if err != nil {
		if errors.Is(err, ErrNoForm) {
			return Nil, nil
		}
		return Nil, err
	}
	return v, nil
}

// CoreSlurp is a builtin.
//
// slurp returns the contents of the named file as a string.
func CoreSlurp(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("slurp", args, 1, 1); err != nil {
		return Nil, err
	}
	name, err := StringArgAt("slurp", args, 0)
	if err != nil {
		return Nil, err
	}
	text, err := vm.Files.ReadFile(string(name))
	if err != nil {
		return Nil, &FileError{Op: "read", Name: string(name), Err: err}
	}
	return String(text), nil
}

// CoreList is a builtin.
//
// list returns its arguments as a list.
func CoreList(vm *VM, args []Value) (Value, error) {
	return append(List{}, args...), nil
}

// CoreIsList is a builtin.
//
// list? returns true if its argument is a list.
func CoreIsList(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("list?", args, 1, 1); err != nil {
		return False, err
	}
	_, ok := args[0].(List)
	return NewBool(ok), nil
}

// CoreVector is a builtin.
//
// vector returns its arguments as a vector.
func CoreVector(vm *VM, args []Value) (Value, error) {
	return append(Vector{}, args...), nil
}

// CoreIsVector is a builtin.
//
// vector? returns true if its argument is a vector.
func CoreIsVector(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("vector?", args, 1, 1); err != nil {
		return False, err
	}
	_, ok := args[0].(Vector)
	return NewBool(ok), nil
}

// CoreIsSequential is a builtin.
//
// sequential? returns true if its argument is a list or vector.
func CoreIsSequential(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("sequential?", args, 1, 1); err != nil {
		return False, err
	}
	_, ok := Seq(args[0])
	return NewBool(ok), nil
}

// CoreIsEmpty is a builtin.
//
// empty? returns true if its argument is a list or vector with no elements.
// Anything that is not a list or vector counts as empty.
func CoreIsEmpty(vm *VM, args []Value) (Value, error) {
	if len(args) == 0 {
		return True, nil
	}
	s, _ := Seq(args[0])
	return NewBool(len(s) == 0), nil
}

// CoreCount is a builtin.
//
// count returns the number of elements in a list or vector. Anything else has
// count 0.
func CoreCount(vm *VM, args []Value) (Value, error) {
	if len(args) == 0 {
		return Number(0), nil
	}
	s, _ := Seq(args[0])
	return Number(len(s)), nil
}

// CoreVec is a builtin.
//
// vec converts a list or vector to a vector. Any other single argument becomes
// a vector of one element. With any other number of arguments, the result is
// an empty vector.
func CoreVec(vm *VM, args []Value) (Value, error) {
	if len(args) != 1 {
		return Vector{}, nil
	}
	if s, ok := Seq(args[0]); ok {
		return append(Vector{}, s...), nil
	}
	return Vector{args[0]}, nil
}

// CoreCons is a builtin.
//
// cons returns a new list with its first argument prepended to the list or
// vector in its second.
func CoreCons(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("cons", args, 2, 2); err != nil {
		return Nil, err
	}
	s, err := SeqArgAt("cons", args, 1)
	if err != nil {
		return Nil, err
	}
	r := make(List, 0, len(s)+1)
	r = append(r, args[0])
	return append(r, s...), nil
}

// CoreConcat is a builtin.
//
// concat returns a list of the elements of each of its arguments, all of
// which must be lists or vectors.
func CoreConcat(vm *VM, args []Value) (Value, error) {
	r := List{}
	for i := range args {
		s, err := SeqArgAt("concat", args, i)
		if err != nil {
			return Nil, err
		}
		r = append(r, s...)
	}
	return r, nil
}

// CoreNth is a builtin.
//
// nth returns the element of a list or vector at a zero-based index.
func CoreNth(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("nth", args, 2, 2); err != nil {
		return Nil, err
	}
	s, err := SeqArgAt("nth", args, 0)
	if err != nil {
		return Nil, err
	}
	n, err := NumberArgAt("nth", args, 1)
	if err != nil {
		return Nil, err
	}
	if n < 0 || n >= Number(len(s)) {
		return Nil, &ArithmeticError{Name: "nth", Msg: "index " + strconv.FormatInt(int64(n), 10) + " out of range"}
	}
	return s[n], nil
}

// CoreFirst is a builtin.
//
// first returns the first element of a list or vector, or nil if it is empty
// or nil.
func CoreFirst(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("first", args, 1, 1); err != nil {
		return Nil, err
	}
	if _, ok := args[0].(NilValue); ok {
		return Nil, nil
	}
	s, err := SeqArgAt("first", args, 0)
	if err != nil || len(s) == 0 {
		return Nil, err
	}
	return s[0], nil
}

// CoreRest is a builtin.
//
// rest returns a list of all but the first element of a list or vector. The
// rest of nil or an empty sequence is the empty list.
func CoreRest(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("rest", args, 1, 1); err != nil {
		return Nil, err
	}
	if _, ok := args[0].(NilValue); ok {
		return List{}, nil
	}
	s, err := SeqArgAt("rest", args, 0)
	if err != nil {
		return Nil, err
	}
	if len(s) == 0 {
		return List{}, nil
	}
	return append(List{}, s[1:]...), nil
}

// CoreEqual is a builtin.
//
// = returns true if its two arguments are structurally equal.
func CoreEqual(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("=", args, 2, 2); err != nil {
		return False, err
	}
	return NewBool(Equal(args[0], args[1])), nil
}

// numberCompare compares exactly two Numbers.
func numberCompare(name string, args []Value, cmp func(a, b Number) bool) (Value, error) {
	if err := CheckArity(name, args, 2, 2); err != nil {
		return False, err
	}
	a, err := NumberArgAt(name, args, 0)
	if err != nil {
		return False, err
	}
	b, err := NumberArgAt(name, args, 1)
	if err != nil {
		return False, err
	}
	return NewBool(cmp(a, b)), nil
}

// CoreLess is a builtin.
//
// < returns true if its first argument is less than its second.
func CoreLess(vm *VM, args []Value) (Value, error) {
	return numberCompare("<", args, func(a, b Number) bool { return a < b })
}

// CoreLessEqual is a builtin.
//
// <= returns true if its first argument is less than or equal to its second.
func CoreLessEqual(vm *VM, args []Value) (Value, error) {
	return numberCompare("<=", args, func(a, b Number) bool { return a <= b })
}

// CoreGreater is a builtin.
//
// > returns true if its first argument is greater than its second.
func CoreGreater(vm *VM, args []Value) (Value, error) {
	return numberCompare(">", args, func(a, b Number) bool { return a > b })
}

// CoreGreaterEqual is a builtin.
//
// >= returns true if its first argument is greater than or equal to its
// second.
func CoreGreaterEqual(vm *VM, args []Value) (Value, error) {
	return numberCompare(">=", args, func(a, b Number) bool { return a >= b })
}

// CoreAtom is a builtin.
//
// atom creates a new atom holding its argument.
func CoreAtom(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("atom", args, 1, 1); err != nil {
		return Nil, err
	}
	return &Atom{Value: args[0]}, nil
}

// CoreIsAtom is a builtin.
//
// atom? returns true if its argument is an atom.
func CoreIsAtom(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("atom?", args, 1, 1); err != nil {
		return False, err
	}
	_, ok := args[0].(*Atom)
	return NewBool(ok), nil
}

// CoreDeref is a builtin.
//
// deref returns the value held by an atom.
func CoreDeref(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("deref", args, 1, 1); err != nil {
		return Nil, err
	}
	a, err := AtomArgAt("deref", args, 0)
	if err != nil {
		return Nil, err
	}
	return a.Value, nil
}

// CoreReset is a builtin.
//
// reset! replaces the value held by an atom and returns the new value.
func CoreReset(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("reset!", args, 2, 2); err != nil {
		return Nil, err
	}
	a, err := AtomArgAt("reset!", args, 0)
	if err != nil {
		return Nil, err
	}
	a.Value = args[1]
	return a.Value, nil
}

// CoreSwap is a builtin.
//
// swap! calls a function with an atom's value followed by any additional
// arguments, stores the result in the atom, and returns it.
func CoreSwap(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("swap!", args, 2, -1); err != nil {
		return Nil, err
	}
	a, err := AtomArgAt("swap!", args, 0)
	if err != nil {
		return Nil, err
	}
	f, err := FunctionArgAt("swap!", args, 1)
	if err != nil {
		return Nil, err
	}
	fargs := make([]Value, 0, len(args)-1)
	fargs = append(fargs, a.Value)
	fargs = append(fargs, args[2:]...)
	r, err := vm.Apply(f, fargs)
	if err != nil {
		return Nil, err
	}
	a.Value = r
	return r, nil
}

// tagPredicate creates a predicate builtin reporting whether its argument
// has the given tag.
func tagPredicate(name string, tag Tag) Fn {
	return func(vm *VM, args []Value) (Value, error) {
		if err := CheckArity(name, args, 1, 1); err != nil {
			return False, err
		}
		return NewBool(args[0].Tag() == tag), nil
	}
}

// CoreIsNil is a builtin.
//
// nil? returns true if its argument is nil.
var CoreIsNil = tagPredicate("nil?", NilTag)

// CoreIsTrue is a builtin.
//
// true? returns true if its argument is true.
var CoreIsTrue = tagPredicate("true?", TrueTag)

// CoreIsFalse is a builtin.
//
// false? returns true if its argument is false.
var CoreIsFalse = tagPredicate("false?", FalseTag)

// CoreIsNumber is a builtin.
//
// number? returns true if its argument is a number.
var CoreIsNumber = tagPredicate("number?", NumberTag)

// CoreIsString is a builtin.
//
// string? returns true if its argument is a string.
var CoreIsString = tagPredicate("string?", StringTag)

// CoreIsSymbol is a builtin.
//
// symbol? returns true if its argument is a symbol.
var CoreIsSymbol = tagPredicate("symbol?", SymbolTag)

// CoreIsFn is a builtin.
//
// fn? returns true if its argument can be called.
func CoreIsFn(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("fn?", args, 1, 1); err != nil {
		return False, err
	}
	return NewBool(IsFunction(stripMeta(args[0]))), nil
}

// CoreSymbol is a builtin.
//
// symbol converts a string to a symbol.
func CoreSymbol(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("symbol", args, 1, 1); err != nil {
		return Nil, err
	}
	s, err := StringArgAt("symbol", args, 0)
	if err != nil {
		return Nil, err
	}
	return Symbol(s), nil
}

// CoreMeta is a builtin.
//
// meta returns the metadata attached to a value by with-meta or ^, or nil if
// there is none.
func CoreMeta(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("meta", args, 1, 1); err != nil {
		return Nil, err
	}
	if w, ok := args[0].(WithMeta); ok {
		return w.Meta, nil
	}
	return Nil, nil
}

// CoreWithMeta is a builtin.
//
// with-meta returns its first argument with its second attached as metadata,
// replacing any existing metadata.
func CoreWithMeta(vm *VM, args []Value) (Value, error) {
	if err := CheckArity("with-meta", args, 2, 2); err != nil {
		return Nil, err
	}
	return WithMeta{Value: stripMeta(args[0]), Meta: args[1]}, nil
}

// stripMeta returns the value inside any metadata wrapper.
func stripMeta(v Value) Value {
	if w, ok := v.(WithMeta); ok {
		return w.Value
	}
	return v
}
