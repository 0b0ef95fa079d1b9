// Package prefilter finds candidate match offsets in a line before the
// backtracking matcher runs.
//
// A prefilter scans for the literals every match must start with and
// rejects every offset where none of them occurs. The matcher then only
// runs at the candidates.
//
// The builder selects a strategy from the extracted prefixes:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	tree := syntax.MustParse(`(cat|dog) and \1`)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(tree)
//
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pos := pf.Find([]byte("the dog and dog"), 0)
//	// pos == 4
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/backre/literal"
)

// Prefilter finds candidate offsets where a match may start.
type Prefilter interface {
	// Find returns the first candidate offset at or after start, or -1.
	//
	// A candidate is an offset where one of the prefix literals occurs.
	// It does not guarantee a match: the caller verifies it with the
	// matcher unless IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is itself an entire match.
	// This holds only for patterns that are a plain literal, like `hello`.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true,
	// and 0 otherwise.
	LiteralLen() int
}

// Builder constructs a prefilter from extracted prefix literals.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a builder for prefixes. prefixes may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the prefilter for the builder's literals, or nil when there
// are no literals to search for.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchr(lit.Bytes[0], lit.Complete)
		}
		return newMemmem(lit.Bytes, lit.Complete)
	}

	if pf := newAhoCorasick(seq); pf != nil {
		return pf
	}

	// Automaton construction failed: fall back to the shared prefix
	if lcp := seq.LongestCommonPrefix(); len(lcp) > 0 {
		if len(lcp) == 1 {
			return newMemchr(lcp[0], false)
		}
		return newMemmem(lcp, false)
	}
	return nil
}

// memchr searches for a single byte.
//
// Example patterns:
//
//	/a.*/   → 'a'
//	/x\d+/  → 'x'
type memchr struct {
	needle   byte
	complete bool
}

func newMemchr(needle byte, complete bool) *memchr {
	return &memchr{needle: needle, complete: complete}
}

func (p *memchr) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchr) IsComplete() bool {
	return p.complete
}

func (p *memchr) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// memmem searches for a single substring.
//
// Example patterns:
//
//	/hello/        → "hello"
//	/foo|foobar/   → "foo" after minimization
//	/error: \w+/   → "error: "
type memmem struct {
	needle   []byte
	complete bool
}

func newMemmem(needle []byte, complete bool) *memmem {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)
	return &memmem{needle: needleCopy, complete: complete}
}

func (p *memmem) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmem) IsComplete() bool {
	return p.complete
}

func (p *memmem) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// ahoCorasick searches for several literals at once.
//
// Example patterns:
//
//	/(cat|dog) and \1/ → "cat and ", "dog and "
//	/\d+/              → "0" ... "9"
//
// The literals have different lengths in general, so the prefilter never
// reports complete matches.
type ahoCorasick struct {
	automaton *ahocorasick.Automaton
}

// newAhoCorasick builds the automaton, or returns nil if construction fails.
func newAhoCorasick(seq *literal.Seq) *ahoCorasick {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasick{automaton: auto}
}

func (p *ahoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasick) IsComplete() bool {
	return false
}

func (p *ahoCorasick) LiteralLen() int {
	return 0
}
