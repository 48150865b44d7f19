// Package directory provides builtins for listing and creating directories.
package directory

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initDirectory)
}

func initDirectory(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"list-dir": Items,
		"make-dir": Create,
		"cwd":      CurrentWorkingDirectory,
		"cd":       SetCurrentWorkingDirectory,
	})
}

// Items is a builtin.
//
// list-dir returns a list of the names of the files and directories within a
// directory, sorted by name. Directory names end with a slash.
func Items(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("list-dir", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := internal.StringArgAt("list-dir", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	d := filepath.FromSlash(string(s))
	fis, err := ioutil.ReadDir(d)
	if err != nil {
		return internal.Nil, &internal.FileError{Op: "list", Name: d, Err: err}
	}
	l := make(internal.List, len(fis))
	for i, fi := range fis {
		name := fi.Name()
		if fi.IsDir() {
			name += "/"
		}
		l[i] = internal.String(name)
	}
	return l, nil
}

// Create is a builtin.
//
// make-dir creates a directory along with any missing parents and returns
// nil. It is not an error if the directory already exists.
func Create(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("make-dir", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := internal.StringArgAt("make-dir", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	d := filepath.FromSlash(string(s))
	if err := os.MkdirAll(d, 0777); err != nil {
		return internal.Nil, &internal.FileError{Op: "create", Name: d, Err: err}
	}
	return internal.Nil, nil
}

// CurrentWorkingDirectory is a builtin.
//
// cwd returns the path of the current working directory, or "." if it cannot
// be determined.
func CurrentWorkingDirectory(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("cwd", args, 0, 0); err != nil {
		return internal.Nil, err
	}
	d, err := os.Getwd()
	if err != nil {
		return internal.String("."), nil
	}
	return internal.String(filepath.ToSlash(d)), nil
}

// SetCurrentWorkingDirectory is a builtin.
//
// cd sets the program's current working directory. Returns true if it
// succeeded and false otherwise.
func SetCurrentWorkingDirectory(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("cd", args, 1, 1); err != nil {
		return internal.False, err
	}
	s, err := internal.StringArgAt("cd", args, 0)
	if err != nil {
		return internal.False, err
	}
	return internal.NewBool(os.Chdir(filepath.FromSlash(string(s))) == nil), nil
}
