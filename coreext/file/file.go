// Package file provides builtins for inspecting and writing files.
//
// Importing this package installs spit, file-exists?, directory?, file-size,
// and delete-file. Reading files is handled by the core slurp builtin.
package file

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initFile)
}

func initFile(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"spit":         Spit,
		"file-exists?": Exists,
		"directory?":   IsDirectory,
		"file-size":    Size,
		"delete-file":  Remove,
	})
}

// pathArg returns the first argument as an OS path.
func pathArg(name string, args []internal.Value, max int) (string, error) {
	if err := internal.CheckArity(name, args, 1, max); err != nil {
		return "", err
	}
	s, err := internal.StringArgAt(name, args, 0)
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(string(s)), nil
}

// Spit is a builtin.
//
// spit writes a string to a file, replacing its contents, and returns nil.
func Spit(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	path, err := pathArg("spit", args, 2)
	if err != nil {
		return internal.Nil, err
	}
	s, err := internal.StringArgAt("spit", args, 1)
	if err != nil {
		return internal.Nil, err
	}
	if err := ioutil.WriteFile(path, []byte(s), 0666); err != nil {
		return internal.Nil, &internal.FileError{Op: "write", Name: path, Err: err}
	}
	return internal.Nil, nil
}

// Exists is a builtin.
//
// file-exists? returns whether a file with the given path exists.
func Exists(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	path, err := pathArg("file-exists?", args, 1)
	if err != nil {
		return internal.False, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return internal.True, nil
	}
	if os.IsNotExist(err) {
		return internal.False, nil
	}
	return internal.False, &internal.FileError{Op: "stat", Name: path, Err: err}
}

// IsDirectory is a builtin.
//
// directory? returns true if the path is a directory.
func IsDirectory(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	path, err := pathArg("directory?", args, 1)
	if err != nil {
		return internal.False, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return internal.False, &internal.FileError{Op: "stat", Name: path, Err: err}
	}
	return internal.NewBool(fi.IsDir()), nil
}

// Size is a builtin.
//
// file-size returns the size of a file in bytes.
func Size(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	path, err := pathArg("file-size", args, 1)
	if err != nil {
		return internal.Nil, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return internal.Nil, &internal.FileError{Op: "stat", Name: path, Err: err}
	}
	return internal.Number(fi.Size()), nil
}

// Remove is a builtin.
//
// delete-file removes a file. It is not an error if the file does not exist.
func Remove(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	path, err := pathArg("delete-file", args, 1)
	if err != nil {
		return internal.Nil, err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return internal.Nil, &internal.FileError{Op: "remove", Name: path, Err: err}
	}
	return internal.Nil, nil
}
