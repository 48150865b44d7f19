package internal

// Eval evaluates ast in env. Forms in tail position, i.e. the branches of if,
// the last form of do, the body of let*, the result of quasiquote and eval,
// and the body of an applied closure, are evaluated by rebinding ast and env
// and looping rather than by recursion, so tail calls in Lisp code do not
// grow the Go stack.
//
// In lenient mode the error is always nil. In strict mode the first failure
// aborts evaluation and is returned.
func (vm *VM) Eval(ast Value, env *Env) (Value, error) {
	for {
		switch v := ast.(type) {
		case Quote, Quasiquote, Unquote, SpliceUnquote:
			ast, _ = readerForm(v)
			continue
		case Symbol:
			if x, ok := env.Get(string(v)); ok {
				return x, nil
			}
			if vm.Mode == Strict {
				return v, &UnboundError{Name: string(v)}
			}
			return v, nil
		case Vector:
			items, err := vm.evalEach(v, env)
			if err != nil {
				return Nil, err
			}
			return Vector(items), nil
		case Map:
			items, err := vm.evalEach(v, env)
			if err != nil {
				return Nil, err
			}
			return Map(items), nil
		case List:
			if len(v) == 0 {
				return v, nil
			}
			if head, ok := v[0].(Symbol); ok {
				switch head {
				case "quote":
					if err := checkForm(v, 2, 2); err != nil {
						return vm.fail(err, Nil)
					}
					return v[1], nil

				case "quasiquoteexpand":
					if err := checkForm(v, 2, 2); err != nil {
						return vm.fail(err, Nil)
					}
					return QuasiquoteExpand(v[1]), nil

				case "quasiquote":
					if err := checkForm(v, 2, 2); err != nil {
						return vm.fail(err, Nil)
					}
					ast = QuasiquoteExpand(v[1])
					continue

				case "eval":
					if err := checkForm(v, 2, 2); err != nil {
						return vm.fail(err, Nil)
					}
					x, err := vm.Eval(v[1], env)
					if err != nil {
						return Nil, err
					}
					ast, env = x, env.Outermost()
					continue

				case "def!":
					if err := checkForm(v, 3, 3); err != nil {
						return vm.fail(err, Nil)
					}
					name, ok := v[1].(Symbol)
					if !ok {
						return vm.fail(&FormError{Form: "def!", Msg: "name must be a symbol, not " + TypeName(v[1])}, Nil)
					}
					x, err := vm.Eval(v[2], env)
					if err != nil {
						return Nil, err
					}
					// Defining nil is treated as a failed definition.
					if _, ok := x.(NilValue); ok {
						return Nil, nil
					}
					env.Set(string(name), x)
					return x, nil

				case "let*":
					if err := checkForm(v, 3, 3); err != nil {
						return vm.fail(err, Nil)
					}
					bindings, ok := Seq(v[1])
					if !ok {
						return vm.fail(&FormError{Form: "let*", Msg: "bindings must be a list or vector, not " + TypeName(v[1])}, Nil)
					}
					if len(bindings)%2 != 0 {
						return vm.fail(&FormError{Form: "let*", Msg: "bindings must have an even number of forms"}, Nil)
					}
					child := NewEnv(env)
					for i := 0; i < len(bindings); i += 2 {
						name, ok := bindings[i].(Symbol)
						if !ok {
							return vm.fail(&FormError{Form: "let*", Msg: "binding name must be a symbol, not " + TypeName(bindings[i])}, Nil)
						}
						x, err := vm.Eval(bindings[i+1], child)
						if err != nil {
							return Nil, err
						}
						child.Set(string(name), x)
					}
					ast, env = v[2], child
					continue

				case "do":
					if len(v) == 1 {
						return Nil, nil
					}
					for _, x := range v[1 : len(v)-1] {
						if _, err := vm.Eval(x, env); err != nil {
							return Nil, err
						}
					}
					ast = v[len(v)-1]
					continue

				case "if":
					if err := checkForm(v, 3, 4); err != nil {
						return vm.fail(err, Nil)
					}
					cond, err := vm.Eval(v[1], env)
					if err != nil {
						return Nil, err
					}
					switch {
					case IsTruthy(cond):
						ast = v[2]
					case len(v) == 4:
						ast = v[3]
					default:
						return Nil, nil
					}
					continue

				case "fn*":
					if err := checkForm(v, 3, 3); err != nil {
						return vm.fail(err, Nil)
					}
					if _, ok := Seq(v[1]); !ok {
						return vm.fail(&FormError{Form: "fn*", Msg: "parameters must be a list or vector, not " + TypeName(v[1])}, Nil)
					}
					return &Closure{Params: v[1], Body: v[2], Env: env, Eval: vm.Eval}, nil
				}
			}

			items, err := vm.evalEach(v, env)
			if err != nil {
				return Nil, err
			}
			switch f := stripMeta(items[0]).(type) {
			case *Builtin:
				r, err := f.Fn(vm, items[1:])
				if err != nil {
					return vm.fail(err, r)
				}
				return r, nil
			case *Closure:
				ast, env = f.Body, Bind(f.Env, f.Params, items[1:])
				continue
			default:
				return vm.fail(&ApplyError{Have: f}, Nil)
			}
		default:
			return ast, nil
		}
	}
}

// evalEach evaluates every element of vs in order.
func (vm *VM) evalEach(vs []Value, env *Env) ([]Value, error) {
	r := make([]Value, len(vs))
	for i, x := range vs {
		v, err := vm.Eval(x, env)
		if err != nil {
			return nil, err
		}
		r[i] = v
	}
	return r, nil
}

// Apply calls a Closure or Builtin, possibly carrying metadata, with already
// evaluated arguments.
func (vm *VM) Apply(f Value, args []Value) (Value, error) {
	switch f := stripMeta(f).(type) {
	case *Builtin:
		r, err := f.Fn(vm, args)
		if err != nil {
			return vm.fail(err, r)
		}
		return r, nil
	case *Closure:
		eval := f.Eval
		if eval == nil {
			eval = vm.Eval
		}
		return eval(f.Body, Bind(f.Env, f.Params, args))
	}
	return vm.fail(&ApplyError{Have: f}, Nil)
}

// checkForm checks that a special form has between min and max elements,
// counting the head.
func checkForm(form List, min, max int) error {
	if len(form) >= min && len(form) <= max {
		return nil
	}
	name := Print(form[0], false)
	if min == max {
		return &FormError{Form: name, Msg: "expected " + Print(Number(min-1), false) + " operands, got " + Print(Number(len(form)-1), false)}
	}
	return &FormError{Form: name, Msg: "expected " + Print(Number(min-1), false) + " to " + Print(Number(max-1), false) + " operands, got " + Print(Number(len(form)-1), false)}
}

// readerForm converts a reader macro wrapper into the list it abbreviates.
func readerForm(v Value) (List, bool) {
	switch v := v.(type) {
	case Quote:
		return List{Symbol("quote"), v.Value}, true
	case Quasiquote:
		return List{Symbol("quasiquote"), v.Value}, true
	case Unquote:
		return List{Symbol("unquote"), v.Value}, true
	case SpliceUnquote:
		return List{Symbol("splice-unquote"), v.Value}, true
	}
	return nil, false
}

// QuasiquoteExpand transforms a quasiquote template into code which builds
// the described structure. It does not evaluate anything.
func QuasiquoteExpand(ast Value) Value {
	if l, ok := readerForm(ast); ok {
		ast = l
	}
	switch v := ast.(type) {
	case List:
		if len(v) >= 2 && v[0] == Symbol("unquote") {
			return v[1]
		}
		return quasiquoteFold(v)
	case Vector:
		return List{Symbol("vec"), quasiquoteFold(v)}
	case Symbol, Map:
		return List{Symbol("quote"), v}
	}
	return ast
}

// quasiquoteFold builds a list from the right, splicing splice-unquote
// elements with concat and adding the others with cons.
func quasiquoteFold(items []Value) List {
	acc := List{}
	for i := len(items) - 1; i >= 0; i-- {
		elem := items[i]
		if l, ok := readerForm(elem); ok {
			elem = l
		}
		if l, ok := elem.(List); ok && len(l) >= 2 && l[0] == Symbol("splice-unquote") {
			acc = List{Symbol("concat"), l[1], acc}
		} else {
			acc = List{Symbol("cons"), QuasiquoteExpand(elem), acc}
		}
	}
	return acc
}
