package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/golang/glog"
	"github.com/peterh/liner"

	"github.com/zephyrtronium/mal"
	// import for side effects
	_ "github.com/zephyrtronium/mal/coreext"
)

func main() {
	var (
		config = flag.String("config", defaultConfigPath(), "YAML file of REPL settings")
		strict = flag.Bool("strict", false, "stop at the first failure instead of printing diagnostics")
	)
	flag.Parse()
	cfg, err := loadConfig(*config)
	if err != nil {
		glog.Warningf("using default settings: %v", err)
	}
	vm, err := setup(cfg, *strict, flag.Args())
	if err != nil {
		vm.Diagnose(err)
		glog.Flush()
		os.Exit(1)
	}
	repl(vm, cfg)
	glog.Flush()
}

// setup creates a VM for the command line. If args names a file, it is loaded
// before returning. The VM is returned even if loading fails.
func setup(cfg Config, strict bool, args []string) (*mal.VM, error) {
	mode, _ := mal.ParseMode(cfg.Mode)
	if strict {
		mode = mal.Strict
	}
	var script string
	if len(args) > 0 {
		script, args = args[0], args[1:]
	}
	vm := mal.NewVM(args...)
	vm.Mode = mode
	vm.Install(mal.Builtins{"profiled": profiled})
	if script != "" {
		glog.V(1).Infof("loading %s", script)
		src := fmt.Sprintf("(load-file %s)", mal.Print(mal.String(script), true))
		if _, err := vm.DoString(src); err != nil {
			return vm, err
		}
	}
	return vm, nil
}

// repl reads lines until end of input, printing the result of each.
func repl(vm *mal.VM, cfg Config) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				glog.Warningf("reading history from %s: %v", cfg.History, err)
			}
			f.Close()
		}
		defer saveHistory(ln, cfg.History)
	}

	vm.MustDoString(`(println (str "Mal [" *host-language* "]"))`)
	for {
		line, err := ln.Prompt(cfg.Prompt)
		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return
		default:
			glog.Errorf("reading input: %v", err)
			return
		}
		r, err := vm.Rep(line)
		if errors.Is(err, mal.ErrNoForm) {
			continue
		}
		ln.AppendHistory(line)
		if err != nil {
			vm.Diagnose(err)
			continue
		}
		fmt.Fprintln(vm.Stdout, r)
	}
}

func saveHistory(ln *liner.State, name string) {
	f, err := os.Create(name)
	if err != nil {
		glog.Warningf("saving history: %v", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		glog.Warningf("saving history to %s: %v", name, err)
	}
}

// profiled is a builtin.
//
// profiled calls a function of no arguments while writing a CPU profile to the
// file named by its first argument, then writes a heap profile to the file
// named by its second argument.
func profiled(vm *mal.VM, args []mal.Value) (mal.Value, error) {
	if err := mal.CheckArity("profiled", args, 3, 3); err != nil {
		return mal.Nil, err
	}
	cpu, err := mal.StringArgAt("profiled", args, 0)
	if err != nil {
		return mal.Nil, err
	}
	mem, err := mal.StringArgAt("profiled", args, 1)
	if err != nil {
		return mal.Nil, err
	}
	cf, err := os.Create(string(cpu))
	if err != nil {
		return mal.Nil, &mal.FileError{Op: "create", Name: string(cpu), Err: err}
	}
	defer cf.Close()
	mf, err := os.Create(string(mem))
	if err != nil {
		return mal.Nil, &mal.FileError{Op: "create", Name: string(mem), Err: err}
	}
	defer mf.Close()
	if err := pprof.StartCPUProfile(cf); err != nil {
		return mal.Nil, err
	}
	v, err := vm.Apply(args[2], nil)
	pprof.StopCPUProfile()
	if err != nil {
		return mal.Nil, err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(mf); err != nil {
		return mal.Nil, &mal.FileError{Op: "write", Name: string(mem), Err: err}
	}
	return v, nil
}
