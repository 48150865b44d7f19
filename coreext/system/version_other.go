// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris,!windows

package system

// platformVersion is unknown on this platform.
func platformVersion() string {
	return ""
}
