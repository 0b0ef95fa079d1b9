package grep

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// errUsage is reported when no pattern was given.
var errUsage = errors.New("usage: grep [OPTION]... -E PATTERN [FILE]...")

// ColorMode selects when matches are highlighted.
type ColorMode int

const (
	ColorNever ColorMode = iota
	ColorAlways
	ColorAuto
)

// String returns the flag spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorNever:
		return "never"
	case ColorAlways:
		return "always"
	case ColorAuto:
		return "auto"
	}
	return "unknown"
}

// Set implements flag.Value. A bare --color means auto.
func (m *ColorMode) Set(s string) error {
	switch s {
	case "never":
		*m = ColorNever
	case "always":
		*m = ColorAlways
	case "auto", "true":
		*m = ColorAuto
	default:
		return fmt.Errorf("invalid color mode %q (want always, never or auto)", s)
	}
	return nil
}

// IsBoolFlag lets --color appear without a value.
func (m *ColorMode) IsBoolFlag() bool {
	return true
}

// FilenameMode selects whether output lines carry the source name.
type FilenameMode int

const (
	// FilenameAuto shows names when searching several sources or recursively.
	FilenameAuto FilenameMode = iota
	FilenameAlways
	FilenameNever
)

// Options is a parsed command line.
type Options struct {
	Pattern      string
	OnlyMatching bool
	Invert       bool
	Recursive    bool
	LineNumber   bool
	Filename     FilenameMode
	After        int
	Before       int
	Count        bool
	Quiet        bool
	Color        ColorMode
	MaxSteps     int
	Paths        []string
}

// contextEnabled reports whether context lines and group separators are
// printed.
func (o Options) contextEnabled() bool {
	return (o.After > 0 || o.Before > 0) && !o.OnlyMatching && !o.Count && !o.Quiet
}

// ParseArgs parses command-line arguments (without the program name).
// Flags and paths may be interleaved; "--" ends flag parsing.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	var withName, noName bool
	var contextLines int

	fs := flag.NewFlagSet("grep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.Pattern, "E", "", "extended regular expression")
	fs.BoolVar(&opts.OnlyMatching, "o", false, "print only the matched parts of lines")
	fs.BoolVar(&opts.Invert, "v", false, "select non-matching lines")
	fs.BoolVar(&opts.Recursive, "r", false, "search directories recursively")
	fs.BoolVar(&opts.LineNumber, "n", false, "prefix output with line numbers")
	fs.BoolVar(&withName, "H", false, "always print file names")
	fs.BoolVar(&noName, "h", false, "never print file names")
	fs.IntVar(&opts.After, "A", 0, "print `NUM` lines of trailing context")
	fs.IntVar(&opts.Before, "B", 0, "print `NUM` lines of leading context")
	fs.IntVar(&contextLines, "C", 0, "print `NUM` lines of context")
	fs.BoolVar(&opts.Count, "c", false, "print only a count of selected lines")
	fs.BoolVar(&opts.Quiet, "q", false, "suppress output, exit status only")
	fs.Var(&opts.Color, "color", "highlight matches: always, never or auto")
	fs.IntVar(&opts.MaxSteps, "max-steps", 0, "backtracking step budget per start offset (0 = unlimited)")

	for {
		if err := fs.Parse(args); err != nil {
			return Options{}, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		if endsWithTerminator(fs, args[:len(args)-len(rest)]) {
			opts.Paths = append(opts.Paths, rest...)
			break
		}
		opts.Paths = append(opts.Paths, rest[0])
		args = rest[1:]
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["E"] {
		return Options{}, errUsage
	}
	if opts.After < 0 || opts.Before < 0 || contextLines < 0 {
		return Options{}, errors.New("context length must not be negative")
	}
	if opts.MaxSteps < 0 {
		return Options{}, errors.New("max-steps must not be negative")
	}

	if !set["A"] {
		opts.After = contextLines
	}
	if !set["B"] {
		opts.Before = contextLines
	}

	switch {
	case noName:
		opts.Filename = FilenameNever
	case withName:
		opts.Filename = FilenameAlways
	}
	return opts, nil
}

// endsWithTerminator reports whether the flags in args stopped at a "--"
// terminator. A "--" that was the value of a flag such as -E does not count.
func endsWithTerminator(fs *flag.FlagSet, args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return true
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		i++ // skip the value
	}
	return false
}
