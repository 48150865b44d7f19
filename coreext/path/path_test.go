package path_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/zephyrtronium/mal"
	_ "github.com/zephyrtronium/mal/coreext/path" // side effects
	"github.com/zephyrtronium/mal/testutils"
)

func TestRegister(t *testing.T) {
	names := []string{
		"path-abs", "path-abs?", "path-join", "path-base", "path-dir",
		"*path-separator*", "*path-list-separator*", "*path-drive-letters*",
		"load-file-from",
	}
	testutils.CheckNames(t, testutils.TestingVM().Root, names)
}

func TestPath(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"join":      {Source: `(path-join "a" "b" "../c")`, Pass: testutils.PassEqual(mal.String("a/c"))},
		"join-none": {Source: `(path-join)`, Pass: testutils.PassEqual(mal.String(""))},
		"join-bad":  {Source: `(path-join "a" 1)`, Pass: testutils.PassDiag("nil", "must be string")},
		"base":      {Source: `(path-base "a/b/c.mal")`, Pass: testutils.PassEqual(mal.String("c.mal"))},
		"dir":       {Source: `(path-dir "a/b/c.mal")`, Pass: testutils.PassEqual(mal.String("a/b"))},
		"abs":       {Source: `(path-abs? (path-abs "x"))`, Pass: testutils.PassEqual(mal.True)},
		"relative":  {Source: `(path-abs? "x")`, Pass: testutils.PassEqual(mal.False)},
		"arity":     {Source: `(path-base)`, Pass: testutils.PassDiag("nil", "path-base")},
		"separator": {Source: `*path-separator*`, Pass: testutils.PassEqual(mal.String(filepath.Separator))},
		"drive":     {Source: `*path-drive-letters*`, Pass: testutils.PassEqual(mal.Bool(runtime.GOOS == "windows"))},
		"list-sep":  {Source: `(count *path-list-separator*)`, Pass: testutils.PassPrinted("1")},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

func TestLoadFileFrom(t *testing.T) {
	dir, err := ioutil.TempDir("", "malpath")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	if err := ioutil.WriteFile(filepath.Join(dir, "def.mal"), []byte("(def! path-test-loaded 42)"), 0644); err != nil {
		t.Fatal(err)
	}
	src := "(do (load-file-from " + strconv.Quote(filepath.ToSlash(dir)) + ` "def.mal") path-test-loaded)`
	c := testutils.SourceTestCase{Source: src, Pass: testutils.PassPrinted("42")}
	t.Run("load", c.TestFunc("load"))
}
