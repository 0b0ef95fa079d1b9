// Package grep implements the line-search command on top of the backre
// engine: option parsing, source resolution, the per-line loop, output
// formatting and the exit status.
package grep

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/coregx/backre"
	"github.com/coregx/backre/internal/term"
)

// Exit statuses.
const (
	ExitSelected    = 0
	ExitNotSelected = 1
)

// debugEnv enables debug tracing on stderr when set to "1".
const debugEnv = "BACKRE_DEBUG"

// Run executes the command with args (without the program name) and returns
// the exit status: ExitSelected if any line was selected in any source,
// ExitNotSelected otherwise, including usage and pattern errors.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	diag := log.New(stderr, "grep: ", 0)
	debug := log.New(io.Discard, "grep: debug: ", 0)
	if os.Getenv(debugEnv) == "1" {
		debug.SetOutput(stderr)
	}

	opts, err := ParseArgs(args)
	if err != nil {
		diag.Print(err)
		return ExitNotSelected
	}

	config := backre.DefaultConfig()
	config.MaxSteps = opts.MaxSteps
	re, err := backre.CompileWithConfig(opts.Pattern, config)
	if err != nil {
		diag.Print(err)
		return ExitNotSelected
	}
	debug.Printf("pattern %q: %d groups, strategy %s", re.String(), re.NumSubexp(), re.Strategy())

	sources := resolveSources(opts, diag)
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	s := &searcher{
		opts:     opts,
		re:       re,
		out:      out,
		diag:     diag,
		debug:    debug,
		color:    useColor(opts.Color, stdout),
		showName: showFilename(opts, len(sources)),
	}

	total := 0
	for _, src := range sources {
		n, stop := s.searchSource(src, stdin)
		total += n
		if stop {
			break
		}
	}

	stats := re.Stats()
	debug.Printf("attempts=%d prefilter hits=%d misses=%d step limit hits=%d",
		stats.Attempts, stats.PrefilterHits, stats.PrefilterMisses, stats.StepLimitHits)

	if total > 0 {
		return ExitSelected
	}
	return ExitNotSelected
}

// searchSource searches one source, reporting read errors on the
// diagnostic logger.
func (s *searcher) searchSource(src source, stdin io.Reader) (int, bool) {
	s.debug.Printf("searching %s", src.name)
	r, err := src.open(stdin)
	if err != nil {
		s.out.Flush()
		s.diag.Printf("%s: %v", src.name, pathError(err))
		return 0, false
	}
	defer r.Close()

	n, stop, err := s.search(src.name, r)
	if err != nil {
		s.out.Flush()
		s.diag.Printf("%s: %v", src.name, pathError(err))
	}
	return n, stop
}

func useColor(mode ColorMode, stdout io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorAuto:
		f, ok := stdout.(*os.File)
		return ok && term.IsTerminalFile(f)
	}
	return false
}

func showFilename(opts Options, sources int) bool {
	switch opts.Filename {
	case FilenameAlways:
		return true
	case FilenameNever:
		return false
	}
	return opts.Recursive || sources > 1
}
