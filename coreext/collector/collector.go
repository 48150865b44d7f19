// Package collector provides builtins for inspecting and driving the Go
// garbage collector, which manages all MAL values.
package collector

import (
	"fmt"
	"runtime"
	"time"

	"github.com/zephyrtronium/mal/internal"
)

func init() {
	internal.Register(initCollector)
}

func initCollector(vm *internal.VM) {
	vm.Install(internal.Builtins{
		"gc":         Collect,
		"gc-stats":   ShowStats,
		"gc-time-ms": TimeUsed,
	})
}

// Collect is a builtin.
//
// gc triggers a garbage collection cycle and returns the number of objects
// collected program-wide, not only those belonging to the VM.
func Collect(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	old := stats.Frees
	runtime.GC()
	runtime.ReadMemStats(&stats)
	return internal.Number(stats.Frees - old), nil
}

// ShowStats is a builtin.
//
// gc-stats prints detailed garbage collector information to standard output
// and returns nil.
func ShowStats(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	var s runtime.MemStats
	runtime.ReadMemStats(&s)
	if s.NumGC > 0 {
		last := time.Unix(0, int64(s.LastGC))
		fmt.Fprintf(vm.Stdout, "Last GC at %v (%v ago)", last, time.Since(last))
	} else {
		fmt.Fprint(vm.Stdout, "GC has not run")
	}
	fmt.Fprintf(vm.Stdout, showStatsFormat,
		s.TotalAlloc, s.Mallocs,
		s.HeapAlloc, float64(s.HeapAlloc)/float64(s.TotalAlloc)*100, s.Mallocs-s.Frees,
		s.NextGC,
		s.Frees,
		s.NumGC,
		s.GCCPUFraction*100,
		s.HeapIdle,
		s.HeapInuse,
		s.StackInuse,
		s.MSpanInuse,
		s.GCSys)
	return internal.Nil, nil
}

// TimeUsed is a builtin.
//
// gc-time-ms reports the number of milliseconds spent in stop-the-world
// garbage collection.
func TimeUsed(vm *internal.VM, args []internal.Value) (internal.Value, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return internal.Number(stats.PauseTotalNs / uint64(time.Millisecond)), nil
}

const showStatsFormat = `
Lifetime allocated: %d B (%d objects)
Owned allocated: %d B (%.2f%%, %d objects)
Next GC target: %d B
Freed objects: %d
Completed cycles: %d
GC CPU usage: %.6f%%
Idle heap: %d B
In-use heap spans: %d B
Stack spans: %d B
In-use mspans: %d B
GC metadata: %d B
`
