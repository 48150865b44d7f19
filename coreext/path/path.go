// Package path provides builtins for manipulating file paths. Paths passed to
// and returned from these builtins always use forward slashes.
package path

import (
	"path/filepath"
	"runtime"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initPath)
}

func initPath(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"path-abs":  Absolute,
		"path-abs?": IsAbsolute,
		"path-join": Join,
		"path-base": Base,
		"path-dir":  Dir,
	})
	vm.Define("*path-separator*", internal.String(filepath.Separator))
	vm.Define("*path-list-separator*", internal.String(filepath.ListSeparator))
	vm.Define("*path-drive-letters*", internal.NewBool(runtime.GOOS == "windows"))
	internal.Bootstrap(vm, coreMal, coreMalNames)
}

// pathArgAt returns the nth argument as an OS path.
func pathArgAt(name string, args []internal.Value, n int) (string, error) {
	s, err := internal.StringArgAt(name, args, n)
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(string(s)), nil
}

// Absolute is a builtin.
//
// path-abs returns an absolute version of the argument path.
func Absolute(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("path-abs", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := pathArgAt("path-abs", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return internal.Nil, &internal.FileError{Op: "resolve", Name: s, Err: err}
	}
	return internal.String(filepath.ToSlash(abs)), nil
}

// IsAbsolute is a builtin.
//
// path-abs? returns whether the argument is an absolute path.
func IsAbsolute(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("path-abs?", args, 1, 1); err != nil {
		return internal.False, err
	}
	s, err := pathArgAt("path-abs?", args, 0)
	if err != nil {
		return internal.False, err
	}
	return internal.NewBool(filepath.IsAbs(s)), nil
}

// Join is a builtin.
//
// path-join joins any number of path elements with separators and cleans the
// result. With no arguments, the result is the empty string.
func Join(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	elems := make([]string, len(args))
	for i := range args {
		s, err := pathArgAt("path-join", args, i)
		if err != nil {
			return internal.Nil, err
		}
		elems[i] = s
	}
	return internal.String(filepath.ToSlash(filepath.Join(elems...))), nil
}

// Base is a builtin.
//
// path-base returns the last element of a path.
func Base(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("path-base", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := pathArgAt("path-base", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	return internal.String(filepath.ToSlash(filepath.Base(s))), nil
}

// Dir is a builtin.
//
// path-dir returns all but the last element of a path.
func Dir(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("path-dir", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := pathArgAt("path-dir", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	return internal.String(filepath.ToSlash(filepath.Dir(s))), nil
}
