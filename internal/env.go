package internal

import "sort"

// Env is one scope in a chain of lexical scopes. Bindings are only ever added
// to a scope's own table, never to an outer scope's.
type Env struct {
	vars  map[string]Value
	outer *Env
}

// NewEnv creates an empty scope whose lookups fall back to outer, which may
// be nil.
func NewEnv(outer *Env) *Env {
	return &Env{vars: make(map[string]Value), outer: outer}
}

// Outer returns the enclosing scope, or nil for a root scope.
func (e *Env) Outer() *Env {
	return e.outer
}

// Outermost returns the root of e's chain.
func (e *Env) Outermost() *Env {
	for e.outer != nil {
		e = e.outer
	}
	return e
}

// Set binds name to v in e itself.
func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

// Find returns the innermost scope in e's chain which binds name, or nil if
// there is none.
func (e *Env) Find(name string) *Env {
	for ; e != nil; e = e.outer {
		if _, ok := e.vars[name]; ok {
			return e
		}
	}
	return nil
}

// Get returns the value bound to name in the innermost scope which binds it.
func (e *Env) Get(name string) (Value, bool) {
	s := e.Find(name)
	if s == nil {
		return nil, false
	}
	return s.vars[name], true
}

// Names returns the sorted names bound in e itself.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind creates a child scope of outer and binds the symbols in params, a List
// or Vector, to args by position. The symbol & binds the remaining args as a
// List to the symbol after it and ends binding. If args run out first, the
// remaining params are left unbound; there is no arity check.
func Bind(outer *Env, params Value, args []Value) *Env {
	env := NewEnv(outer)
	names, _ := Seq(params)
	for i := 0; i < len(names); i++ {
		name, _ := names[i].(Symbol)
		if name == "&" {
			if i+1 < len(names) {
				if rest, ok := names[i+1].(Symbol); ok {
					env.Set(string(rest), List(append([]Value{}, args...)))
				}
			}
			break
		}
		if len(args) == 0 {
			break
		}
		// Non-symbol parameters still consume their argument.
		if name != "" {
			env.Set(string(name), args[0])
		}
		args = args[1:]
	}
	return env
}
