// Package term reports whether a file descriptor refers to a terminal.
//
// The grep front end uses it to resolve --color=auto.
package term

import "os"

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isTerminal(fd)
}

// IsTerminalFile reports whether f is a terminal. It is false for a nil file.
func IsTerminalFile(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f.Fd())
}
