// Command grep searches its inputs for lines matching a backtracking regular
// expression.
//
// Usage:
//
//	grep [-o] [-v] [-r] [-n] [-H|-h] [-A N] [-B N] [-C N] [-c] [-q]
//	     [--color=always|never|auto] [--max-steps N] -E PATTERN [FILE]...
//
// With no FILE, standard input is read; with -r and no FILE, the current
// directory is searched. The exit status is 0 if any line was selected and 1
// otherwise.
package main

import (
	"os"

	"github.com/coregx/backre/internal/grep"
)

func main() {
	os.Exit(grep.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
