// Package coreext imports every core extension for its side effects. Programs
// which want the full set of builtins import this package and create their VMs
// afterward.
package coreext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/mal/coreext/collector"
	_ "github.com/zephyrtronium/mal/coreext/date"
	_ "github.com/zephyrtronium/mal/coreext/directory"
	_ "github.com/zephyrtronium/mal/coreext/duration"
	_ "github.com/zephyrtronium/mal/coreext/file"
	_ "github.com/zephyrtronium/mal/coreext/path"
	_ "github.com/zephyrtronium/mal/coreext/system"
	_ "github.com/zephyrtronium/mal/coreext/unittest"
)
