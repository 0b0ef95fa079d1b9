// Package backre provides a backtracking regular-expression engine with
// capture groups and backreferences.
//
// backre matches the dialect of classic line-search tools:
//   - Literals, '.', character classes [a-z] [^abc] and shorthands \d \w \s
//   - Anchors ^ and $ bound to the start and end of the searched line
//   - Capturing groups (...) numbered by their opening parenthesis
//   - Backreferences \1 through \9
//   - Greedy quantifiers *, +, ?, {n}, {n,} and {n,m}
//   - Alternation |
//
// Basic usage:
//
//	re, err := backre.Compile(`(cat|dog) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(re.MatchString("cat and cat")) // true
//	fmt.Println(re.MatchString("cat and dog")) // false
//
// Matching is leftmost-first: start offsets are tried left to right and at
// each offset alternatives and repetition counts are tried in priority
// order. Offsets are byte offsets.
//
// Backtracking is exponential in the worst case. A step budget bounds the
// work per start offset:
//
//	config := backre.DefaultConfig()
//	config.MaxSteps = 1_000_000
//	re, err := backre.CompileWithConfig(`(a|aa)*b`, config)
//	spans, err := re.FindAllSpans(line) // err is backtrack.ErrStepLimit when exceeded
//
// Recursion depth is always capped (backtrack.DefaultMaxDepth unless
// Config.MaxDepth says otherwise); an attempt that reaches the cap fails
// with backtrack.ErrDepthLimit.
package backre

import (
	"github.com/coregx/backre/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := backre.MustCompile(`hello`)
//	if re.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile compiles a regular expression pattern.
//
// Returns a *syntax.Error if the pattern is invalid; errors.Is(err,
// syntax.ErrInvalidPattern) holds for every syntax error.
//
// Example:
//
//	re, err := backre.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// Example:
//
//	var dateRegex = backre.MustCompile(`\d{4}-\d{2}-\d{2}`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("backre: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := backre.DefaultConfig()
//	config.UnboundBackref = backtrack.BackrefEmpty
//	re, err := backre.CompileWithConfig(`(a)?\1b`, config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := backre.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// FindAllSpans returns the ordered, non-overlapping matches in line.
//
// This is the line scanner used by the grep front end. The error is non-nil
// only when an attempt ran out of its step budget or recursion depth; the
// spans found before that point are returned with it.
//
// Example:
//
//	re := backre.MustCompile(`\d+`)
//	spans, _ := re.FindAllSpans("a1b22")
//	// spans: {1 2 "1"} {3 5 "22"}
func (r *Regex) FindAllSpans(line string) ([]meta.Span, error) {
	return r.engine.FindAll(line, -1)
}

// Match reports whether the byte slice b contains any match of the pattern.
//
// Attempts that exceed the step budget count as no match.
func (r *Regex) Match(b []byte) bool {
	return r.MatchString(string(b))
}

// MatchString reports whether the string s contains any match of the pattern.
//
// Example:
//
//	re := backre.MustCompile(`^(\w+) \1$`)
//	re.MatchString("bye bye") // true
func (r *Regex) MatchString(s string) bool {
	ok, err := r.engine.IsMatch(s)
	return ok && err == nil
}

// Find returns a slice holding the text of the leftmost match in b.
// Returns nil if no match is found.
func (r *Regex) Find(b []byte) []byte {
	loc := r.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindString returns a string holding the text of the leftmost match in s.
// Returns empty string if no match is found.
func (r *Regex) FindString(s string) string {
	span, ok, err := r.engine.Find(s)
	if !ok || err != nil {
		return ""
	}
	return span.Text
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost match in b. Returns nil if no match is found.
func (r *Regex) FindIndex(b []byte) []int {
	return r.FindStringIndex(string(b))
}

// FindStringIndex returns a two-element slice of integers defining the location
// of the leftmost match in s. Returns nil if no match is found.
//
// Example:
//
//	re := backre.MustCompile(`\d+`)
//	loc := re.FindStringIndex("age: 42")
//	// loc = [5, 7]
func (r *Regex) FindStringIndex(s string) []int {
	span, ok, err := r.engine.Find(s)
	if !ok || err != nil {
		return nil
	}
	return []int{span.Start, span.End}
}

// FindAll returns a slice of all successive matches of the pattern in b.
// If n >= 0, it returns at most n matches.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	locs := r.FindAllStringIndex(string(b), n)
	if locs == nil {
		return nil
	}
	out := make([][]byte, len(locs))
	for i, loc := range locs {
		out[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return out
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n >= 0, it returns at most n matches.
//
// Example:
//
//	re := backre.MustCompile(`a*`)
//	re.FindAllString("baaa", -1) // ["", "aaa"]
func (r *Regex) FindAllString(s string, n int) []string {
	spans, err := r.engine.FindAll(s, n)
	if err != nil || len(spans) == 0 {
		return nil
	}
	out := make([]string, len(spans))
	for i, span := range spans {
		out[i] = span.Text
	}
	return out
}

// FindAllStringIndex returns the locations of all successive matches in s.
// If n >= 0, it returns at most n locations.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	spans, err := r.engine.FindAll(s, n)
	if err != nil || len(spans) == 0 {
		return nil
	}
	out := make([][]int, len(spans))
	for i, span := range spans {
		out[i] = []int{span.Start, span.End}
	}
	return out
}

// FindStringSubmatch returns the text of the leftmost match and of its
// groups. Groups that did not participate in the match are "".
// Returns nil if no match is found.
//
// Example:
//
//	re := backre.MustCompile(`(\w+)@(\w+)\.com`)
//	re.FindStringSubmatch("user@example.com") // ["user@example.com", "user", "example"]
func (r *Regex) FindStringSubmatch(s string) []string {
	loc := r.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil
	}
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

// FindStringSubmatchIndex returns index pairs for the leftmost match and its
// groups; groups that did not participate are -1, -1.
// Returns nil if no match is found.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	loc, err := r.engine.FindSubmatchIndex(s)
	if err != nil {
		return nil
	}
	return loc
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of parenthesized subexpressions (capture groups).
func (r *Regex) NumSubexp() int {
	return r.engine.NumGroups()
}

// Strategy returns the scanning strategy selected for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns the engine's scanning statistics.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}
