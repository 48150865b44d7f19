// Command malfn lists the functions in Go packages that can serve as MAL
// builtins, formatted as entries of a Builtins table.
package main

import (
	"flag"
	"fmt"
	"go/token"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore string
	var internal string
	flag.StringVar(&match, "match", "^Core", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&internal, "internal", "github.com/zephyrtronium/mal/internal", "import path of the package defining Fn")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	fset := token.NewFileSet()
	config := packages.Config{Mode: packages.NeedTypes | packages.NeedImports, Fset: fset}
	pkgs, err := packages.Load(&config, append([]string{internal}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	fn, rest := getFn(pkgs)
	if len(rest) == 0 {
		// With no other packages, list the builtins of the defining package.
		rest = pkgs[:1]
	}
	var results []string
	for _, pkg := range rest {
		results = append(results, find(pkg.Types.Scope(), fn, mre, ire)...)
	}
	sort.Strings(results)
	for _, name := range results {
		fmt.Printf("\t%q: %s,\n", builtinName(name, mre), name)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func getFn(pkgs []*packages.Package) (types.Type, []*packages.Package) {
	pkg := pkgs[0].Types
	r := pkg.Scope().Lookup("Fn")
	if r == nil {
		fail(pkg.Name(), "has no definition of Fn")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name(), "has incorrect definition of Fn:", r)
	}
	return t.Type(), pkgs[1:]
}

// find returns the exported names in scope whose types are assignable to fn.
func find(scope *types.Scope, fn types.Type, mre, ire *regexp.Regexp) []string {
	var r []string
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() || !mre.MatchString(name) || ire.MatchString(name) {
			continue
		}
		if types.AssignableTo(obj.Type(), fn) {
			r = append(r, name)
		}
	}
	return r
}

// builtinName converts a Go function name to the conventional MAL spelling:
// the match is trimmed, words are lowercased and joined with hyphens, and a
// leading Is becomes a trailing question mark.
func builtinName(name string, mre *regexp.Regexp) string {
	if k := mre.FindStringIndex(name); k != nil && k[0] == 0 {
		name = name[k[1]:]
	}
	pred := false
	if strings.HasPrefix(name, "Is") && len(name) > 2 {
		name, pred = name[2:], true
	}
	var b strings.Builder
	for i, c := range name {
		if 'A' <= c && c <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			c += 'a' - 'A'
		}
		b.WriteRune(c)
	}
	if pred {
		b.WriteByte('?')
	}
	return b.String()
}
