package internal

import "fmt"

// Mode selects how the VM reports failures during evaluation.
type Mode int

// Evaluation modes.
const (
	// Lenient reports every failure as a diagnostic on the VM's Stderr and
	// continues with a fallback value, usually nil. This is what the REPL
	// uses so that bad input never ends the session.
	Lenient Mode = iota
	// Strict returns failures from Eval as errors, aborting evaluation of the
	// whole top-level form. Unbound symbols are failures in this mode.
	Strict
)

var modeNames = [...]string{"lenient", "strict"}

// String returns a string representation of the Mode.
func (m Mode) String() string {
	if m < Lenient || m > Strict {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return modeNames[m]
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, s := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return Lenient, fmt.Errorf("unknown mode %q", name)
}

// fail applies the VM's mode to a failure. In lenient mode, err is written as
// a diagnostic and fallback is returned with a nil error. In strict mode, both
// are returned unchanged.
func (vm *VM) fail(err error, fallback Value) (Value, error) {
	if fallback == nil {
		fallback = Nil
	}
	if vm.Mode == Strict {
		return fallback, err
	}
	vm.Diagnose(err)
	return fallback, nil
}
