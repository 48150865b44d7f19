package internal_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/mal"
	"github.com/zephyrtronium/mal/internal"
	"github.com/zephyrtronium/mal/testutils"
)

// TestNewVM tests that NewVM creates a VM.
func TestNewVM(t *testing.T) {
	// We can use the testing VM to test NewVM.
	if testutils.TestingVM() == nil {
		t.Fatal("testing VM is nil")
	}
}

// TestNewVMAttrs tests that a new VM has the attributes we expect.
func TestNewVMAttrs(t *testing.T) {
	vm := testutils.TestingVM()
	attrs := []string{"Root", "Stdout", "Stderr", "Files"}
	v := reflect.ValueOf(vm).Elem()
	for _, attr := range attrs {
		t.Run("Attr"+attr, func(t *testing.T) {
			e := v.FieldByName(attr)
			if !e.IsValid() {
				t.Fatal("no VM attribute", attr)
			}
			if e.IsNil() {
				t.Fatal("VM attribute", attr, "is nil")
			}
		})
	}
	t.Run("AttrStartTime", func(t *testing.T) {
		if vm.StartTime.IsZero() {
			t.Fatal("VM attribute StartTime is zero")
		}
	})
	t.Run("AttrMode", func(t *testing.T) {
		if vm.Mode != mal.Lenient {
			t.Errorf("new VM has mode %v", vm.Mode)
		}
	})
}

// TestRootNames tests that a new VM's root environment has the bindings we
// expect.
func TestRootNames(t *testing.T) {
	vm := testutils.TestingVM()
	names := []string{
		"+", "-", "*", "/",
		"pr-str", "str", "prn", "println",
		"read-string", "slurp",
		"list", "list?", "vector", "vector?", "sequential?", "empty?", "count",
		"vec", "cons", "concat", "nth", "first", "rest",
		"=", "<", "<=", ">", ">=",
		"atom", "atom?", "deref", "reset!", "swap!",
		"nil?", "true?", "false?", "number?", "string?", "symbol?", "fn?",
		"symbol", "meta", "with-meta",
		"not", "load-file", "*ARGV*",
	}
	testutils.CheckNames(t, vm.Root, names)
}

// TestArgv tests that NewVM binds its arguments to *ARGV*.
func TestArgv(t *testing.T) {
	vm := internal.NewVM("a", "b c")
	v, ok := vm.Root.Get("*ARGV*")
	if !ok {
		t.Fatal("*ARGV* not bound")
	}
	want := internal.List{internal.String("a"), internal.String("b c")}
	if !internal.Equal(v, want) {
		t.Errorf("wrong *ARGV*: wanted %s, got %s", internal.Print(want, true), internal.Print(v, true))
	}
	if _, ok := v.(internal.List); !ok {
		t.Errorf("*ARGV* is a %s, not a list", internal.TypeName(v))
	}
	vm = internal.NewVM()
	if v, _ := vm.Root.Get("*ARGV*"); internal.Print(v, true) != "()" {
		t.Errorf("empty *ARGV* prints as %s", internal.Print(v, true))
	}
}

// defineExt returns a core extension binding name to n. Every extension it
// returns shares the same code.
//go:noinline
func defineExt(name string, n int) func(*internal.VM) {
	return func(vm *internal.VM) {
		vm.Define(name, internal.Number(n))
	}
}

// extOrder records the order in which extensions registered by this package
// run.
var extOrder []string

func init() {
	internal.Register(defineExt("ext-first", 1))
	internal.Register(defineExt("ext-second", 2))
	internal.Register(func(vm *internal.VM) { extOrder = append(extOrder, "a") })
	internal.Register(func(vm *internal.VM) { extOrder = append(extOrder, "b") })
}

// TestRegister tests that every registered extension runs on each new VM in
// registration order, including extensions made by the same function.
func TestRegister(t *testing.T) {
	extOrder = nil
	vm := internal.NewVM()
	for name, want := range map[string]internal.Value{"ext-first": internal.Number(1), "ext-second": internal.Number(2)} {
		v, ok := vm.Root.Get(name)
		if !ok {
			t.Errorf("extension did not bind %s", name)
			continue
		}
		if !internal.Equal(v, want) {
			t.Errorf("wrong value for %s: wanted %s, got %s", name, internal.Print(want, true), internal.Print(v, true))
		}
	}
	if !reflect.DeepEqual(extOrder, []string{"a", "b"}) {
		t.Errorf("extensions ran in wrong order: %q", extOrder)
	}
}

// TestRegisterAfterNewVM tests that registering an extension after a VM
// exists panics.
func TestRegisterAfterNewVM(t *testing.T) {
	testutils.TestingVM()
	defer func() {
		if recover() == nil {
			t.Error("Register did not panic")
		}
	}()
	internal.Register(func(*internal.VM) {})
}

// TestRep tests the read-eval-print cycle.
func TestRep(t *testing.T) {
	vm := internal.NewVM()
	var diag bytes.Buffer
	vm.Stderr = &diag
	cases := []struct {
		in, out string
	}{
		{"(+ 1 2)", "3"},
		{`(str "a" 1)`, `"a1"`},
		{"(def! x [1 2])", "[1 2]"},
		{"x", "[1 2]"},
		{"(not nil)", "true"},
		{"(not 0)", "false"},
		{"(fn* (a) a)", "#<function>"},
		{"undefined-thing", "undefined-thing"},
	}
	for _, c := range cases {
		out, err := vm.Rep(c.in)
		if err != nil {
			t.Errorf("%q gave error %v", c.in, err)
			continue
		}
		if out != c.out {
			t.Errorf("%q wrong: wanted %s, got %s", c.in, c.out, out)
		}
	}
	if diag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", diag.String())
	}
	if _, err := vm.Rep("  ; nothing"); !errors.Is(err, internal.ErrNoForm) {
		t.Errorf("blank line gave wrong error: %v", err)
	}
	var serr *internal.SyntaxError
	if _, err := vm.Rep("(1 2"); !errors.As(err, &serr) {
		t.Errorf("unbalanced line gave wrong error: %v", err)
	}
}

// TestLenientDiagnostics tests that lenient failures write diagnostics and
// evaluation continues.
func TestLenientDiagnostics(t *testing.T) {
	vm := internal.NewVM()
	var diag bytes.Buffer
	vm.Stderr = &diag
	r, err := vm.DoString(`(+ 1 "a") (1 2) (+ 2 3)`)
	if err != nil {
		t.Fatalf("lenient evaluation returned error %v", err)
	}
	if !internal.Equal(r, internal.Number(5)) {
		t.Errorf("wrong result %s", internal.Print(r, true))
	}
	lines := strings.Split(strings.TrimSpace(diag.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrong number of diagnostics: %q", diag.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "Error: ") {
			t.Errorf("diagnostic %q lacks prefix", line)
		}
	}
}

// TestStrict tests that strict mode returns failures as errors.
func TestStrict(t *testing.T) {
	vm := internal.NewVM()
	var diag bytes.Buffer
	vm.Stderr = &diag
	vm.Mode = internal.Strict
	cases := map[string]struct {
		src    string
		target interface{}
	}{
		"Type":       {`(+ 1 "a")`, new(*internal.TypeError)},
		"Arity":      {"(atom)", new(*internal.ArityError)},
		"Apply":      {"(1 2)", new(*internal.ApplyError)},
		"Unbound":    {"(nope 1)", new(*internal.UnboundError)},
		"Form":       {"(let* (a) a)", new(*internal.FormError)},
		"Arithmetic": {"(/ 1 0)", new(*internal.ArithmeticError)},
		"File":       {`(slurp "/definitely/not/a/file")`, new(*internal.FileError)},
		"Nested":     {"(do 1 (list (+ nil 1)) 3)", new(*internal.TypeError)},
		"Swap":       {"(swap! (atom 1) + nil)", new(*internal.TypeError)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := vm.DoString(c.src)
			if err == nil {
				t.Fatalf("%q gave no error", c.src)
			}
			if !errors.As(err, c.target) {
				t.Errorf("%q gave wrong error %T: %v", c.src, err, err)
			}
		})
	}
	if diag.Len() != 0 {
		t.Errorf("strict mode wrote diagnostics: %s", diag.String())
	}
}

// TestMustDoString tests that MustDoString panics on failure.
func TestMustDoString(t *testing.T) {
	vm := internal.NewVM()
	if r := vm.MustDoString("(* 6 7)"); !internal.Equal(r, internal.Number(42)) {
		t.Errorf("wrong result %s", internal.Print(r, true))
	}
	defer func() {
		if recover() == nil {
			t.Error("MustDoString did not panic")
		}
	}()
	vm.MustDoString("(")
}

// TestInstall tests installing Go functions as builtins.
func TestInstall(t *testing.T) {
	vm := internal.NewVM()
	vm.Install(internal.Builtins{
		"twice": func(vm *internal.VM, args []internal.Value) (internal.Value, error) {
			n, err := internal.NumberArgAt("twice", args, 0)
			if err != nil {
				return internal.Nil, err
			}
			return 2 * n, nil
		},
	})
	r, err := vm.DoString("(twice 21)")
	if err != nil {
		t.Fatal(err)
	}
	if !internal.Equal(r, internal.Number(42)) {
		t.Errorf("wrong result %s", internal.Print(r, true))
	}
	v, _ := vm.Root.Get("twice")
	b, ok := v.(*internal.Builtin)
	if !ok {
		t.Fatalf("twice is %T", v)
	}
	if b.Name != "twice" || b.Func == "" {
		t.Errorf("wrong builtin names %q %q", b.Name, b.Func)
	}
}
