package internal_test

import (
	"runtime/debug"
	"testing"

	"github.com/zephyrtronium/mal"
	"github.com/zephyrtronium/mal/internal"
	"github.com/zephyrtronium/mal/testutils"
)

// TestEval tests evaluation of special forms and applications.
func TestEval(t *testing.T) {
	cases := map[string]map[string]testutils.SourceTestCase{
		"SelfEvaluating": {
			"number":  {Source: "7", Pass: testutils.PassPrinted("7")},
			"string":  {Source: `"s"`, Pass: testutils.PassPrinted(`"s"`)},
			"nil":     {Source: "nil", Pass: testutils.PassNil()},
			"empty":   {Source: "()", Pass: testutils.PassPrinted("()")},
			"vector":  {Source: "[1 (+ 1 1)]", Pass: testutils.PassPrinted("[1 2]")},
			"map":     {Source: `{"a" (+ 1 1)}`, Pass: testutils.PassPrinted(`{"a" 2}`)},
			"meta":    {Source: "^{} [1]", Pass: testutils.PassPrinted("(with-meta [1] {})")},
			"unbound": {Source: "no-such-symbol", Pass: testutils.PassEqual(mal.Symbol("no-such-symbol"))},
		},
		"Quote": {
			"list":    {Source: "(quote (a b))", Pass: testutils.PassPrinted("(a b)")},
			"reader":  {Source: "'(a b)", Pass: testutils.PassPrinted("(a b)")},
			"nested":  {Source: "''a", Pass: testutils.PassPrinted("(quote a)")},
			"symbol":  {Source: "'a", Pass: testutils.PassEqual(mal.Symbol("a"))},
			"missing": {Source: "(quote)", Pass: testutils.PassDiag("nil", "bad quote form")},
		},
		"Def": {
			"value":    {Source: "(def! d1 (+ 1 2)) d1", Pass: testutils.PassPrinted("3")},
			"returns":  {Source: "(def! d2 5)", Pass: testutils.PassPrinted("5")},
			"redefine": {Source: "(def! d3 1) (def! d3 2) d3", Pass: testutils.PassPrinted("2")},
			"nil":      {Source: "(def! d4 nil) d4", Pass: testutils.PassEqual(mal.Symbol("d4"))},
			"nonsym":   {Source: "(def! 1 2)", Pass: testutils.PassDiag("nil", "must be a symbol")},
			"arity":    {Source: "(def! d5)", Pass: testutils.PassDiag("nil", "bad def! form")},
			"local":    {Source: "(let* (x 1) (def! d6 x)) d6", Pass: testutils.PassEqual(mal.Symbol("d6"))},
		},
		"Let": {
			"sequential": {Source: "(let* (a 1 b (+ a 1)) (+ a b))", Pass: testutils.PassPrinted("3")},
			"vector":     {Source: "(let* [a 1 b 2] [a b])", Pass: testutils.PassPrinted("[1 2]")},
			"shadow":     {Source: "(def! l1 1) (let* (l1 2) l1)", Pass: testutils.PassPrinted("2")},
			"scoped":     {Source: "(def! l2 1) (let* (l2 2) l2) l2", Pass: testutils.PassPrinted("1")},
			"empty":      {Source: "(let* () 4)", Pass: testutils.PassPrinted("4")},
			"odd":        {Source: "(let* (a) a)", Pass: testutils.PassDiag("nil", "even number")},
			"nonseq":     {Source: "(let* 1 2)", Pass: testutils.PassDiag("nil", "bindings must be")},
			"nonsym":     {Source: "(let* (1 2) 3)", Pass: testutils.PassDiag("nil", "binding name")},
		},
		"Do": {
			"last":    {Source: "(do 1 2 3)", Pass: testutils.PassPrinted("3")},
			"effects": {Source: "(do (def! do1 1) (def! do1 (+ do1 1))) do1", Pass: testutils.PassPrinted("2")},
			"empty":   {Source: "(do)", Pass: testutils.PassNil()},
		},
		"If": {
			"true":      {Source: "(if true 1 2)", Pass: testutils.PassPrinted("1")},
			"false":     {Source: "(if false 1 2)", Pass: testutils.PassPrinted("2")},
			"nil":       {Source: "(if nil 1 2)", Pass: testutils.PassPrinted("2")},
			"zero":      {Source: "(if 0 1 2)", Pass: testutils.PassPrinted("1")},
			"empty":     {Source: `(if "" 1 2)`, Pass: testutils.PassPrinted("1")},
			"list":      {Source: "(if () 1 2)", Pass: testutils.PassPrinted("1")},
			"no-else":   {Source: "(if false 1)", Pass: testutils.PassNil()},
			"lazy":      {Source: "(if true 1 (def! if1 2)) if1", Pass: testutils.PassEqual(mal.Symbol("if1"))},
			"too-short": {Source: "(if true)", Pass: testutils.PassDiag("nil", "bad if form")},
		},
		"Fn": {
			"apply":     {Source: "((fn* (a b) (+ a b)) 1 2)", Pass: testutils.PassPrinted("3")},
			"vector":    {Source: "((fn* [a] a) 5)", Pass: testutils.PassPrinted("5")},
			"closure":   {Source: "(def! adder (fn* (n) (fn* (x) (+ x n)))) ((adder 3) 4)", Pass: testutils.PassPrinted("7")},
			"variadic":  {Source: "(def! f (fn* (a & more) more)) (f 1 2 3)", Pass: testutils.PassPrinted("(2 3)")},
			"rest-none": {Source: "((fn* (a & more) more) 1)", Pass: testutils.PassPrinted("()")},
			"under":     {Source: "((fn* (a b) b) 1)", Pass: testutils.PassEqual(mal.Symbol("b"))},
			"recursive": {Source: "(def! fact (fn* (n) (if (<= n 1) 1 (* n (fact (- n 1)))))) (fact 10)", Pass: testutils.PassPrinted("3628800")},
			"shared": {
				Source: "(def! counter (let* (c (atom 0)) (fn* () (swap! c + 1)))) (counter) (counter)",
				Pass:   testutils.PassPrinted("2"),
			},
			"params":    {Source: "(fn* a a)", Pass: testutils.PassDiag("nil", "parameters must be")},
			"non-fn":    {Source: "(1 2 3)", Pass: testutils.PassDiag("nil", "not a function")},
			"with-meta": {Source: "((with-meta (fn* (a) (* a 2)) {}) 4)", Pass: testutils.PassPrinted("8")},
		},
		"Eval": {
			"list":   {Source: "(eval (list + 1 2))", Pass: testutils.PassPrinted("3")},
			"quoted": {Source: "(eval '(+ 1 2))", Pass: testutils.PassPrinted("3")},
			"read":   {Source: `(eval (read-string "(* 2 3)"))`, Pass: testutils.PassPrinted("6")},
			"outer": {
				Source: "(def! ev1 1) (let* (ev1 2) (eval 'ev1))",
				Pass:   testutils.PassPrinted("1"),
			},
			"defines": {Source: "(let* (x 9) (eval '(def! ev2 3))) ev2", Pass: testutils.PassPrinted("3")},
		},
		"Quasiquote": {
			"splice":      {Source: "`(1 ~(+ 1 1) ~@(list 3 4))", Pass: testutils.PassPrinted("(1 2 3 4)")},
			"plain":       {Source: "`(a b)", Pass: testutils.PassPrinted("(a b)")},
			"symbol":      {Source: "`a", Pass: testutils.PassPrinted("a")},
			"number":      {Source: "`7", Pass: testutils.PassPrinted("7")},
			"unquote":     {Source: "(def! qq1 5) `~qq1", Pass: testutils.PassPrinted("5")},
			"vector":      {Source: "`[1 ~(+ 1 1)]", Pass: testutils.PassPrinted("[1 2]")},
			"nested":      {Source: "`(1 (2 ~(+ 1 2)))", Pass: testutils.PassPrinted("(1 (2 3))")},
			"splice-vec":  {Source: "`(0 ~@[1 2] 3)", Pass: testutils.PassPrinted("(0 1 2 3)")},
			"splice-none": {Source: "`(~@())", Pass: testutils.PassPrinted("()")},
			"map":         {Source: "`{\"a\" b}", Pass: testutils.PassPrinted(`{"a" b}`)},
			"long-form":   {Source: "(quasiquote (1 (unquote (+ 1 1)) (splice-unquote (list 3))))", Pass: testutils.PassPrinted("(1 2 3)")},
			"expand":      {Source: "(quasiquoteexpand (a ~b))", Pass: testutils.PassPrinted("(cons (quote a) (cons b ()))")},
			"expand-vec":  {Source: "(quasiquoteexpand [~@c])", Pass: testutils.PassPrinted("(vec (concat c ()))")},
			"expand-unq":  {Source: "(quasiquoteexpand ~x)", Pass: testutils.PassPrinted("x")},
		},
		"Bootstrap": {
			"not-true":  {Source: "(not true)", Pass: testutils.PassPrinted("false")},
			"not-nil":   {Source: "(not nil)", Pass: testutils.PassPrinted("true")},
			"not-false": {Source: "(not false)", Pass: testutils.PassPrinted("true")},
			"not-zero":  {Source: "(not 0)", Pass: testutils.PassPrinted("false")},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for name, s := range c {
				t.Run(name, s.TestFunc(name))
			}
		})
	}
}

// TestTailCalls tests that deep tail recursion runs in constant stack. The
// stack is capped at 1 MiB, far less than a million nested evaluations would
// need; exceeding the cap crashes the test binary rather than failing the
// test, so only tail calls are exercised here.
func TestTailCalls(t *testing.T) {
	defer debug.SetMaxStack(debug.SetMaxStack(1 << 20))
	cases := map[string]testutils.SourceTestCase{
		"if": {
			Source: "(def! count-down (fn* (n) (if (= n 0) 0 (count-down (- n 1))))) (count-down 1000000)",
			Pass:   testutils.PassPrinted("0"),
		},
		"do": {
			Source: "(def! sum-to (fn* (n acc) (if (= n 0) acc (do (sum-to (- n 1) (+ acc n)))))) (sum-to 1000000 0)",
			Pass:   testutils.PassPrinted("500000500000"),
		},
		"let": {
			Source: "(def! loop-let (fn* (n) (let* (m (- n 1)) (if (< m 0) n (loop-let m))))) (loop-let 1000000)",
			Pass:   testutils.PassPrinted("0"),
		},
		"mutual": {
			Source: "(def! ev? (fn* (n) (if (= n 0) true (od? (- n 1))))) (def! od? (fn* (n) (if (= n 0) false (ev? (- n 1))))) (ev? 1000001)",
			Pass:   testutils.PassPrinted("false"),
		},
		"eval": {
			Source: "(def! count-eval (fn* (n) (if (= n 0) 0 (eval (list 'count-eval (- n 1)))))) (count-eval 1000000)",
			Pass:   testutils.PassPrinted("0"),
		},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestQuasiquoteExpand tests the quasiquote transform directly.
func TestQuasiquoteExpand(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"symbol":  {"a", "(quote a)"},
		"number":  {"1", "1"},
		"string":  {`"s"`, `"s"`},
		"nil":     {"nil", "nil"},
		"map":     {"{}", "(quote {})"},
		"empty":   {"()", "()"},
		"list":    {"(a 1)", "(cons (quote a) (cons 1 ()))"},
		"unquote": {"(unquote x)", "x"},
		"wrapped": {"~x", "x"},
		"splice":  {"(a ~@b)", "(cons (quote a) (concat b ()))"},
		"vector":  {"[a]", "(vec (cons (quote a) ()))"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := internal.Read(c.in)
			if err != nil {
				t.Fatal(err)
			}
			r := internal.QuasiquoteExpand(v)
			if s := internal.Print(r, true); s != c.want {
				t.Errorf("%s expanded wrong: wanted %s, got %s", c.in, c.want, s)
			}
		})
	}
}

// TestApply tests applying functions from Go.
func TestApply(t *testing.T) {
	vm := testutils.TestingVM()
	f := vm.MustDoString("(fn* (a b) (- a b))")
	r, err := vm.Apply(f, []internal.Value{internal.Number(10), internal.Number(4)})
	if err != nil {
		t.Fatal(err)
	}
	if !internal.Equal(r, internal.Number(6)) {
		t.Errorf("wrong closure result %s", internal.Print(r, true))
	}
	plus, _ := vm.Root.Get("+")
	r, err = vm.Apply(plus, []internal.Value{internal.Number(1), internal.Number(2)})
	if err != nil {
		t.Fatal(err)
	}
	if !internal.Equal(r, internal.Number(3)) {
		t.Errorf("wrong builtin result %s", internal.Print(r, true))
	}
}

// TestApplyClosureEval tests that Apply runs a closure's body through its
// evaluator entry point, falling back to the VM's.
func TestApplyClosureEval(t *testing.T) {
	vm := testutils.TestingVM()
	var calls int
	f := &internal.Closure{
		Params: internal.List{internal.Symbol("a")},
		Body:   internal.Symbol("a"),
		Env:    vm.Root,
		Eval: func(ast internal.Value, env *internal.Env) (internal.Value, error) {
			calls++
			return vm.Eval(ast, env)
		},
	}
	r, err := vm.Apply(f, []internal.Value{internal.Number(7)})
	if err != nil {
		t.Fatal(err)
	}
	if !internal.Equal(r, internal.Number(7)) || calls != 1 {
		t.Errorf("wrong result %s after %d calls", internal.Print(r, true), calls)
	}
	f.Eval = nil
	r, err = vm.Apply(f, []internal.Value{internal.Number(8)})
	if err != nil {
		t.Fatal(err)
	}
	if !internal.Equal(r, internal.Number(8)) || calls != 1 {
		t.Errorf("nil Eval gave %s after %d calls", internal.Print(r, true), calls)
	}
}
