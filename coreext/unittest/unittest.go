// Package unittest provides a small testing framework written in MAL.
//
// assert= compares an expected value with an actual one, printing a failure
// and counting it if they differ. run-tests loads every file in a directory
// and returns the number of failures recorded since the last reset.
package unittest

import (
	"github.com/zephyrtronium/mal/internal"

	// importing for side effects
	_ "github.com/zephyrtronium/mal/coreext/directory"
	_ "github.com/zephyrtronium/mal/coreext/file"
	_ "github.com/zephyrtronium/mal/coreext/path"
)

func init() {
	internal.Register(initUnitTest)
}

func initUnitTest(vm *internal.VM) {
	internal.Bootstrap(vm, coreMal, coreMalNames)
}
