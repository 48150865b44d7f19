package internal

import "fmt"

// Value is any datum the interpreter can read, evaluate, or print. The set of
// implementations is closed; every Value is one of the types in this file.
type Value interface {
	// Tag returns the variant of the value.
	Tag() Tag
	value()
}

// Tag identifies the variant of a Value.
type Tag int

// Value variants.
const (
	ListTag Tag = iota
	VectorTag
	MapTag
	NumberTag
	StringTag
	SymbolTag
	TrueTag
	FalseTag
	NilTag
	ClosureTag
	BuiltinTag
	AtomTag
	QuoteTag
	QuasiquoteTag
	UnquoteTag
	SpliceUnquoteTag
	WithMetaTag
)

var tagNames = [...]string{
	"list", "vector", "map", "number", "string", "symbol", "true", "false",
	"nil", "function", "function", "atom", "quote", "quasiquote", "unquote",
	"splice-unquote", "with-meta",
}

// String returns the name of the variant as it is reported in diagnostics.
func (t Tag) String() string {
	if t < ListTag || t > WithMetaTag {
		return fmt.Sprintf("Tag(%d)", t)
	}
	return tagNames[t]
}

// List is an ordered sequence of values which evaluates as an application or
// special form.
type List []Value

// Vector is an ordered sequence of values which evaluates each element.
type Vector []Value

// Map is a sequence of alternating keys and values. Its length is always
// even.
type Map []Value

// Number is a fixed-width integer.
type Number int64

// String is a text value.
type String string

// Symbol is an identifier.
type Symbol string

// Bool is the type of the True and False singletons.
type Bool bool

// NilValue is the type of the Nil singleton.
type NilValue struct{}

// Boolean and nil singletons.
const (
	True  Bool = true
	False Bool = false
)

// Nil is the nil value.
var Nil = NilValue{}

// EvalFn is the evaluator entry point a Closure uses to run its body.
type EvalFn func(ast Value, env *Env) (Value, error)

// Closure is a user-defined function created by fn*. It shares its captured
// environment with every other holder of that environment.
type Closure struct {
	Params Value
	Body   Value
	Env    *Env
	// Eval runs the body when the closure is called through VM.Apply, as
	// builtins like swap! do. Applications inside VM.Eval rebind the body and
	// environment in the evaluation loop instead, so tail calls stay in
	// constant stack; Eval is not consulted there. A nil Eval means VM.Eval.
	Eval EvalFn
}

// Atom is a mutable cell. Every holder of an *Atom observes changes made
// through any other holder.
type Atom struct {
	Value Value
}

// Quote is the reader form of 'x.
type Quote struct{ Value Value }

// Quasiquote is the reader form of `x.
type Quasiquote struct{ Value Value }

// Unquote is the reader form of ~x.
type Unquote struct{ Value Value }

// SpliceUnquote is the reader form of ~@x.
type SpliceUnquote struct{ Value Value }

// WithMeta pairs a value with arbitrary metadata.
type WithMeta struct {
	Value Value
	Meta  Value
}

func (List) Tag() Tag          { return ListTag }
func (Vector) Tag() Tag        { return VectorTag }
func (Map) Tag() Tag           { return MapTag }
func (Number) Tag() Tag        { return NumberTag }
func (String) Tag() Tag        { return StringTag }
func (Symbol) Tag() Tag        { return SymbolTag }
func (NilValue) Tag() Tag      { return NilTag }
func (*Closure) Tag() Tag      { return ClosureTag }
func (*Builtin) Tag() Tag      { return BuiltinTag }
func (*Atom) Tag() Tag         { return AtomTag }
func (Quote) Tag() Tag         { return QuoteTag }
func (Quasiquote) Tag() Tag    { return QuasiquoteTag }
func (Unquote) Tag() Tag       { return UnquoteTag }
func (SpliceUnquote) Tag() Tag { return SpliceUnquoteTag }
func (WithMeta) Tag() Tag      { return WithMetaTag }

// Tag returns TrueTag or FalseTag.
func (b Bool) Tag() Tag {
	if b {
		return TrueTag
	}
	return FalseTag
}

func (List) value()          {}
func (Vector) value()        {}
func (Map) value()           {}
func (Number) value()        {}
func (String) value()        {}
func (Symbol) value()        {}
func (Bool) value()          {}
func (NilValue) value()      {}
func (*Closure) value()      {}
func (*Builtin) value()      {}
func (*Atom) value()         {}
func (Quote) value()         {}
func (Quasiquote) value()    {}
func (Unquote) value()       {}
func (SpliceUnquote) value() {}
func (WithMeta) value()      {}

// NewMap creates a Map from alternating keys and values. It returns an error
// if the number of items is odd.
func NewMap(items ...Value) (Map, error) {
	if len(items)%2 != 0 {
		return nil, fmt.Errorf("map literal must contain an even number of forms, have %d", len(items))
	}
	return Map(items), nil
}

// NewBool converts a Go bool to True or False.
func NewBool(b bool) Bool {
	return Bool(b)
}

// IsTruthy reports whether v counts as true in a condition. Only False and Nil
// are falsy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case NilValue, nil:
		return false
	}
	return true
}

// Seq returns the elements of a List or Vector.
func Seq(v Value) ([]Value, bool) {
	switch v := v.(type) {
	case List:
		return v, true
	case Vector:
		return v, true
	}
	return nil, false
}

// IsFunction reports whether v can be applied.
func IsFunction(v Value) bool {
	switch v.(type) {
	case *Closure, *Builtin:
		return true
	}
	return false
}

// TypeName returns the name of v's variant for diagnostics.
func TypeName(v Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Tag().String()
}

// Equal reports whether a and b are structurally equal. Lists and vectors
// compare equal to each other when their elements do; maps compare only to
// maps. Atoms are never equal to anything, including themselves, since an
// atom's identity rather than its content is what matters.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case List, Vector:
		as, _ := Seq(a)
		bs, ok := Seq(b)
		return ok && equalSeq(as, bs)
	case Map:
		b, ok := b.(Map)
		return ok && equalSeq(a, b)
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case Symbol:
		b, ok := b.(Symbol)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case *Closure:
		b, ok := b.(*Closure)
		return ok && a == b
	case Quote:
		b, ok := b.(Quote)
		return ok && Equal(a.Value, b.Value)
	case Quasiquote:
		b, ok := b.(Quasiquote)
		return ok && Equal(a.Value, b.Value)
	case Unquote:
		b, ok := b.(Unquote)
		return ok && Equal(a.Value, b.Value)
	case SpliceUnquote:
		b, ok := b.(SpliceUnquote)
		return ok && Equal(a.Value, b.Value)
	case WithMeta:
		b, ok := b.(WithMeta)
		return ok && Equal(a.Value, b.Value) && Equal(a.Meta, b.Meta)
	}
	// Builtins and atoms.
	return false
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
