//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package term

// Without termios support nothing is treated as a terminal, so
// --color=auto never colors.
func isTerminal(fd uintptr) bool {
	return false
}
