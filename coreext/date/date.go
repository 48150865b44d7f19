// Package date provides builtins for reading and formatting the time.
//
// Importing this package installs time-ms, time-str, and clock.
package date

import (
	"time"

	"github.com/zephyrtronium/mal/internal"

	"gitlab.com/variadico/lctime"
)

// DefaultFormat is the strftime format time-str uses when none is given.
const DefaultFormat = "%Y-%m-%d %H:%M:%S %Z"

func init() {
	internal.Register(initDate)
}

func initDate(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"time-ms":  TimeMS,
		"time-str": TimeStr,
		"clock":    Clock,
	})
}

// Millis converts a time to a Number of milliseconds since the Unix epoch.
func Millis(t time.Time) internal.Number {
	return internal.Number(t.UnixNano() / int64(time.Millisecond))
}

// FromMillis converts milliseconds since the Unix epoch to a local time.
func FromMillis(ms internal.Number) time.Time {
	return time.Unix(0, int64(ms)*int64(time.Millisecond))
}

// TimeMS is a builtin.
//
// time-ms returns the current time as milliseconds since the Unix epoch.
func TimeMS(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	return Millis(time.Now()), nil
}

// TimeStr is a builtin.
//
// time-str formats a time using strftime directives. With no arguments, it
// formats the current time as e.g. "2006-01-02 15:04:05 MST". The optional
// first argument is the format, and the optional second is the time to format
// in milliseconds since the Unix epoch, as from time-ms. See
// https://godoc.org/github.com/variadico/lctime for the full list of
// supported directives.
func TimeStr(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("time-str", args, 0, 2); err != nil {
		return internal.Nil, err
	}
	format := DefaultFormat
	if len(args) > 0 {
		s, err := internal.StringArgAt("time-str", args, 0)
		if err != nil {
			return internal.Nil, err
		}
		format = string(s)
	}
	t := time.Now()
	if len(args) > 1 {
		ms, err := internal.NumberArgAt("time-str", args, 1)
		if err != nil {
			return internal.Nil, err
		}
		t = FromMillis(ms)
	}
	return internal.String(lctime.Strftime(format, t)), nil
}

// Clock is a builtin.
//
// clock returns the number of milliseconds since the interpreter started.
func Clock(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	return internal.Number(time.Since(vm.StartTime) / time.Millisecond), nil
}
