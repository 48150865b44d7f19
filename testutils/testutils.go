// Package testutils provides utilities for testing MAL code in Go.
package testutils

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/mal"
)

// testVM is the VM used for all tests.
var testVM *mal.VM

var testVMInit sync.Once

// stdout and stderr collect the testing VM's output.
var stdout, stderr bytes.Buffer

// TestingVM returns a VM for testing MAL. The VM is shared by all tests that
// use this package. Its output and diagnostics are captured rather than
// written to the process's standard streams.
func TestingVM() *mal.VM {
	testVMInit.Do(ResetTestingVM)
	return testVM
}

// ResetTestingVM reinitializes the VM returned by TestingVM. It is not safe to
// call this in parallel tests.
func ResetTestingVM() {
	testVM = mal.NewVM()
	stdout.Reset()
	stderr.Reset()
	testVM.Stdout = &stdout
	testVM.Stderr = &stderr
}

// Output returns what the testing VM has written to its Stdout since the last
// call to ResetOutput.
func Output() string {
	return stdout.String()
}

// Diagnostics returns what the testing VM has written to its Stderr since the
// last call to ResetOutput.
func Diagnostics() string {
	return stderr.String()
}

// ResetOutput discards the testing VM's captured output and diagnostics.
func ResetOutput() {
	stdout.Reset()
	stderr.Reset()
}

// A SourceTestCase is a test case containing MAL source code and a predicate
// to check the result.
type SourceTestCase struct {
	// Source is the MAL source code to execute. Every form in it is evaluated
	// in the testing VM's root environment.
	Source string
	// Pass is a predicate taking the value of the last form in Source and the
	// error from evaluating it. If Pass returns false, then the test fails.
	Pass func(result mal.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses TestingVM to
// read and evaluate the code. Output and diagnostics are reset beforehand, so
// Pass may inspect those produced by Source alone.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm := TestingVM()
		ResetOutput()
		r, err := vm.DoString(c.Source)
		if !c.Pass(r, err) {
			var w strings.Builder
			w.WriteString(name)
			w.WriteString(": ")
			w.WriteString(c.Source)
			w.WriteString(" produced wrong result; got ")
			if r != nil {
				w.WriteString(mal.Print(r, true))
			} else {
				w.WriteString("no value")
			}
			if err != nil {
				w.WriteString(" with error: ")
				w.WriteString(err.Error())
			}
			if d := Diagnostics(); d != "" {
				w.WriteString("\ndiagnostics:\n")
				w.WriteString(d)
			}
			t.Error(w.String())
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// structural equality with want. If there is an error, the predicate returns
// false.
func PassEqual(want mal.Value) func(mal.Value, error) bool {
	return func(result mal.Value, err error) bool {
		if err != nil {
			return false
		}
		return mal.Equal(want, result)
	}
}

// PassPrinted returns a Pass function for a SourceTestCase that predicates on
// the readable printed form of the result. If there is an error, the predicate
// returns false.
func PassPrinted(want string) func(mal.Value, error) bool {
	return func(result mal.Value, err error) bool {
		if err != nil {
			return false
		}
		return mal.Print(result, true) == want
	}
}

// PassNil returns a Pass function for a SourceTestCase that returns true iff
// the result is nil with no error and no diagnostics.
func PassNil() func(mal.Value, error) bool {
	return func(result mal.Value, err error) bool {
		if err != nil || Diagnostics() != "" {
			return false
		}
		_, ok := result.(mal.NilValue)
		return ok
	}
}

// PassDiag returns a Pass function for a SourceTestCase that returns true iff
// evaluation produced a diagnostic containing substr, and the result prints
// as want. If there is an error, the predicate returns false.
func PassDiag(want, substr string) func(mal.Value, error) bool {
	return func(result mal.Value, err error) bool {
		if err != nil {
			return false
		}
		d := Diagnostics()
		if !strings.HasPrefix(d, "Error: ") || !strings.Contains(d, substr) {
			return false
		}
		return mal.Print(result, true) == want
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff evaluation returned an error.
func PassFailure() func(mal.Value, error) bool {
	return func(result mal.Value, err error) bool {
		return err != nil
	}
}

// CheckNames is a testing helper to check that every name in names is bound
// in env.
func CheckNames(t *testing.T, env *mal.Env, names []string) {
	t.Helper()
	for _, name := range names {
		t.Run("Have_"+name, func(t *testing.T) {
			v, ok := env.Get(name)
			if !ok {
				t.Fatal("no binding", name)
			}
			if v == nil {
				t.Fatal("binding", name, "is nil")
			}
		})
	}
}
