package main

import (
	"regexp"
	"testing"
)

// TestBuiltinName tests converting Go names to MAL names.
func TestBuiltinName(t *testing.T) {
	core := regexp.MustCompile("^Core")
	cases := map[string]struct {
		name string
		mre  *regexp.Regexp
		want string
	}{
		"Simple":    {"CoreCount", core, "count"},
		"Words":     {"CoreReadString", core, "read-string"},
		"Predicate": {"CoreIsNil", core, "nil?"},
		"Is":        {"CoreIs", core, "is"},
		"Unmatched": {"Count", core, "count"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := builtinName(c.name, c.mre); got != c.want {
				t.Errorf("wrong name for %s: wanted %q, got %q", c.name, c.want, got)
			}
		})
	}
}
