// Package duration provides builtins for durations measured in milliseconds,
// the unit of time-ms and clock.
package duration

import (
	"time"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initDuration)
}

func initDuration(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"duration-str":   AsString,
		"parse-duration": FromString,
		"sleep":          Sleep,
	})
}

// ArgAt returns the nth argument as a duration in milliseconds.
func ArgAt(name string, args []internal.Value, n int) (time.Duration, error) {
	ms, err := internal.NumberArgAt(name, args, n)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// AsString is a builtin.
//
// duration-str formats a number of milliseconds as a duration, like "1h2m3s".
func AsString(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("duration-str", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	d, err := ArgAt("duration-str", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	return internal.String(d.String()), nil
}

// FromString is a builtin.
//
// parse-duration converts a duration string like "1h2m3s" or "250ms" to a
// number of milliseconds, truncating any fraction.
func FromString(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("parse-duration", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	s, err := internal.StringArgAt("parse-duration", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	d, err := time.ParseDuration(string(s))
	if err != nil {
		return internal.Nil, err
	}
	return internal.Number(d / time.Millisecond), nil
}

// Sleep is a builtin.
//
// sleep pauses for a number of milliseconds and returns nil.
func Sleep(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	if err := internal.CheckArity("sleep", args, 1, 1); err != nil {
		return internal.Nil, err
	}
	d, err := ArgAt("sleep", args, 0)
	if err != nil {
		return internal.Nil, err
	}
	time.Sleep(d)
	return internal.Nil, nil
}
