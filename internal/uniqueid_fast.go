// +build !nounsafe

package internal

import "unsafe"

// Using unsafe to retrieve the atom's address avoids the reflect call on each
// identity check.

// UniqueID returns the atom's address.
func (a *Atom) UniqueID() uintptr {
	return uintptr(unsafe.Pointer(a))
}
