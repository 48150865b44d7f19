package internal

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Version is the interpreter version, used for the *mal-version* binding.
const Version = "1"

// VM is an interpreter for MAL programs.
type VM struct {
	// Root is the outermost environment, holding the builtins and every
	// top-level definition.
	Root *Env
	// Mode determines whether failures are reported as diagnostics or
	// returned as errors.
	Mode Mode

	// Stdout receives output from prn and println.
	Stdout io.Writer
	// Stderr receives diagnostics in lenient mode.
	Stderr io.Writer
	// Files is the source of file contents for slurp and load-file.
	Files FileReader

	// Args holds the arguments bound to *ARGV*.
	Args []string

	// StartTime is the time at which VM initialization began.
	StartTime time.Time
}

// NewVM prepares a new VM to interpret MAL code. String arguments are bound
// as a list to *ARGV*, typically the command-line arguments after the script
// name.
func NewVM(args ...string) *VM {
	haveVM = true

	vm := VM{
		Root:      NewEnv(nil),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Files:     OSFiles{},
		Args:      args,
		StartTime: time.Now(),
	}

	// Builtins must exist before the bootstrap definitions can be evaluated,
	// and extensions may expect the bootstrap definitions.
	vm.initCore()
	vm.initArgs(args)

	vm.finalInit()

	return &vm
}

// initArgs binds *ARGV*.
func (vm *VM) initArgs(args []string) {
	argv := make(List, len(args))
	for i, arg := range args {
		argv[i] = String(arg)
	}
	vm.Root.Set("*ARGV*", argv)
}

// finalInit evaluates bootstrap definitions once the VM can execute code,
// then runs the registered core extensions in order.
func (vm *VM) finalInit() {
	Bootstrap(vm, coreMal, coreMalNames)
	for _, ext := range coreExt {
		ext(vm)
	}
}

// Bootstrap evaluates initialization code in vm's root environment. Panics on
// any error, regardless of vm.Mode.
func Bootstrap(vm *VM, src, names []string) {
	mode := vm.Mode
	vm.Mode = Strict
	defer func() { vm.Mode = mode }()
	for i, text := range src {
		name := names[i]
		forms, err := ReadAll(text)
		if err != nil {
			panic(fmt.Errorf("mal: error reading initialization code from %s: %w", name, err))
		}
		for _, form := range forms {
			if _, err := vm.Eval(form, vm.Root); err != nil {
				panic(fmt.Errorf("mal: error executing initialization code from %s: %w", name, err))
			}
		}
	}
}

// Install binds each builtin in b in the root environment.
func (vm *VM) Install(b Builtins) {
	for name, f := range b {
		vm.Root.Set(name, NewBuiltin(name, f))
	}
}

// Define binds name to v in the root environment.
func (vm *VM) Define(name string, v Value) {
	vm.Root.Set(name, v)
}

// Diagnose writes err to the VM's Stderr as a diagnostic line.
func (vm *VM) Diagnose(err error) {
	fmt.Fprintf(vm.Stderr, "Error: %v\n", err)
}

// Rep reads the first form in text, evaluates it in the root environment,
// and prints the result readably. Read errors are always returned, including
// the SyntaxError wrapping ErrNoForm for text with no forms.
func (vm *VM) Rep(text string) (string, error) {
	v, err := Read(text)
	if err != nil {
		return "", err
	}
	r, err := vm.Eval(v, vm.Root)
	if err != nil {
		return "", err
	}
	return Print(r, true), nil
}

// DoString evaluates every form in text in the root environment and returns
// the value of the last. Text with no forms evaluates to Nil.
func (vm *VM) DoString(text string) (Value, error) {
	forms, err := ReadAll(text)
	if err != nil {
		return Nil, err
	}
	var r Value = Nil
	for _, form := range forms {
		if r, err = vm.Eval(form, vm.Root); err != nil {
			return Nil, err
		}
	}
	return r, nil
}

// MustDoString evaluates text and returns the result, panicking on any error.
func (vm *VM) MustDoString(text string) Value {
	r, err := vm.DoString(text)
	if err != nil {
		panic(fmt.Errorf("mal: MustDoString: %w", err))
	}
	return r
}

// Register registers a core extension. Each function is called in the order it
// is registered; extensions that depend on other extensions need only import
// them. Register should be called from within init funcs. Panics if NewVM has
// been called.
func Register(f func(*VM)) {
	if haveVM {
		panic("mal/internal: Register must be called before any VM is created")
	}
	coreExt = append(coreExt, f)
}

// coreExt is a list of core extensions that have been registered.
var coreExt = make([]func(*VM), 0, 4)

// haveVM becomes true once NewVM has been called.
var haveVM = false
