// Package system provides bindings describing the host running the
// interpreter.
//
// Importing this package binds *host-language*, *host-platform*,
// *host-platform-version*, and *mal-version*, and installs the getenv builtin.
package system

import (
	"os"
	"runtime"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initSystem)
}

func initSystem(vm *internal.VM) {
	vm.Define("*host-language*", internal.String("go"))
	vm.Define("*host-platform*", internal.String(runtime.GOOS))
	vm.Define("*host-platform-version*", internal.String(platformVersion()))
	vm.Define("*mal-version*", internal.String(internal.Version))
	vm.Install(internal.Builtins{
		"getenv": Getenv,
	})
}

// Getenv is a builtin.
//
// getenv returns the value of an environment variable, or nil if it is not
// set.
func Getenv(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("getenv", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	name, err := internal.StringArgAt("getenv", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	v, ok := os.LookupEnv(string(name))
	if !ok {
		return internal.Nil, nil
	}
	return internal.String(v), nil
}
