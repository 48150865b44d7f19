// +build nounsafe

package internal

import "reflect"

// The default implementation of UniqueID uses unsafe.Pointer. If you can't use
// packages importing unsafe, you can build with -tags=nounsafe to select this
// implementation instead.

// UniqueID returns the atom's address.
func (a *Atom) UniqueID() uintptr {
	return reflect.ValueOf(a).Pointer()
}
