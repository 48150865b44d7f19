/*
Package mal implements an interpreter for MAL, a small Lisp.

The interpreter can easily be embedded in another program. To start, use the
NewVM function to create and initialize the interpreter, then evaluate source
text with its DoString or Rep methods. Go functions can be made available to
Lisp code by installing them into the VM's root environment with Install.

MAL Primer

Programs are made of lists, vectors, maps, numbers, strings, and symbols:

	(def! square (fn* (x) (* x x)))
	(square 12)
	; => 144

A list evaluates by applying its first element to the rest, unless the first
element names a special form: def!, let*, do, if, fn*, quote, quasiquote,
quasiquoteexpand, or eval. Calls in tail position do not grow the stack, so
loops are written as recursion:

	(def! sum-to (fn* (n acc) (if (= n 0) acc (sum-to (- n 1) (+ acc n)))))
	(sum-to 100000 0)
	; => 5000050000

Quasiquote builds code or data from a template:

	(def! xs (list 3 4))
	`(1 ~(+ 1 1) ~@xs)
	; => (1 2 3 4)

Atoms are mutable cells:

	(def! counter (atom 0))
	(swap! counter + 1)
	@counter
	; => 1

Failure Modes

By default, a VM is lenient: a failed builtin, a call to something that is not
a function, or a malformed special form writes a line beginning with "Error:"
to the VM's Stderr and evaluates to nil (or false, for predicates). Lookups of
unbound symbols evaluate to the symbol itself. A VM whose Mode is Strict
instead stops evaluation and returns the failure as an error, and unbound
symbols are failures. Errors from reading source text are always returned.
*/
package mal

import (
	"github.com/zephyrtronium/mal/internal"
)

// A VM interprets MAL programs.
type VM = internal.VM

// Value is any MAL datum.
type Value = internal.Value

// Tag identifies the variant of a Value.
type Tag = internal.Tag

// Value variants.
type (
	List          = internal.List
	Vector        = internal.Vector
	Map           = internal.Map
	Number        = internal.Number
	String        = internal.String
	Symbol        = internal.Symbol
	Bool          = internal.Bool
	NilValue      = internal.NilValue
	Closure       = internal.Closure
	Builtin       = internal.Builtin
	Atom          = internal.Atom
	Quote         = internal.Quote
	Quasiquote    = internal.Quasiquote
	Unquote       = internal.Unquote
	SpliceUnquote = internal.SpliceUnquote
	WithMeta      = internal.WithMeta
)

// Env is a lexical scope.
type Env = internal.Env

// An Fn is a statically compiled function which can be called from MAL code.
type Fn = internal.Fn

// Builtins is a table of Fns keyed by the names to bind them to.
type Builtins = internal.Builtins

// Mode selects whether failures are diagnostics or errors.
type Mode = internal.Mode

// FileReader supplies file contents to slurp and load-file.
type FileReader = internal.FileReader

// OSFiles is the default FileReader, reading from the operating system.
type OSFiles = internal.OSFiles

// MapFiles is a FileReader serving files from memory.
type MapFiles = internal.MapFiles

// Error types.
type (
	SyntaxError     = internal.SyntaxError
	ArityError      = internal.ArityError
	TypeError       = internal.TypeError
	UnboundError    = internal.UnboundError
	ApplyError      = internal.ApplyError
	ArithmeticError = internal.ArithmeticError
	FormError       = internal.FormError
	FileError       = internal.FileError
)

// Evaluation modes.
const (
	Lenient = internal.Lenient
	Strict  = internal.Strict
)

// Boolean singletons.
const (
	True  = internal.True
	False = internal.False
)

// Nil is the nil value.
var Nil = internal.Nil

// ErrNoForm is wrapped by the error from reading text with no forms.
var ErrNoForm = internal.ErrNoForm

// NewVM prepares a new VM to interpret MAL code. String arguments are bound
// as a list of strings to *ARGV*.
func NewVM(args ...string) *VM {
	return internal.NewVM(args...)
}

// Read reads the first form in text.
func Read(text string) (Value, error) {
	return internal.Read(text)
}

// ReadAll reads every form in text.
func ReadAll(text string) ([]Value, error) {
	return internal.ReadAll(text)
}

// Print renders v as text. When readable is true, strings are quoted and
// escaped.
func Print(v Value, readable bool) string {
	return internal.Print(v, readable)
}

// Equal reports whether two values are structurally equal.
func Equal(a, b Value) bool {
	return internal.Equal(a, b)
}

// ParseMode converts a mode name, "lenient" or "strict", to a Mode.
func ParseMode(name string) (Mode, error) {
	return internal.ParseMode(name)
}

// NewBuiltin wraps a Go function as a callable MAL value.
func NewBuiltin(name string, f Fn) *Builtin {
	return internal.NewBuiltin(name, f)
}

// CheckArity returns an ArityError if args has fewer than min or more than max
// elements. A negative max means no upper bound.
func CheckArity(name string, args []Value, min, max int) error {
	return internal.CheckArity(name, args, min, max)
}

// StringArgAt returns the nth argument as a String, or a TypeError.
func StringArgAt(name string, args []Value, n int) (String, error) {
	return internal.StringArgAt(name, args, n)
}
