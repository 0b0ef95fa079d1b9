package literal

import (
	"unicode/utf8"

	"github.com/coregx/backre/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction cheap on patterns like (a|b|c|...)(d|e|f|...):
//   - MaxLiterals: caps the size of the cross product of sequence elements
//   - MaxLiteralLen: longer prefixes are truncated (and marked incomplete)
//   - MaxClassSize: classes with more members are not expanded
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in a result. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal in bytes. Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the number of runes of a class that is expanded
	// into single-rune literals. [0-9] and \d qualify, [a-z] does not.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literals from pattern trees.
type Extractor struct {
	config ExtractorConfig
}

// New creates an Extractor.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// maxDepth bounds recursion on deeply nested groups.
const maxDepth = 100

// ExtractPrefixes returns a set of literals such that every match of tree
// starts with one of them. The result is empty when no such set exists
// within the configured limits, for example when the pattern can match the
// empty string or starts with '.'.
//
// Examples:
//
//	`hello`            → ["hello"]
//	`(cat|dog) and \1` → ["cat and ", "dog and "]
//	`[ab]x+`           → ["ax", "bx"]
//	`\d+`              → ["0", "1", ..., "9"]
//	`a*b`              → []
func (e *Extractor) ExtractPrefixes(tree *syntax.Tree) *Seq {
	lits, ok := e.prefixes(tree.Root, 0)
	if !ok {
		return NewSeq()
	}
	for _, lit := range lits {
		if len(lit.Bytes) == 0 {
			return NewSeq()
		}
	}
	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// prefixes returns the literal prefixes of n. ok is false when some match
// of n may start with text not covered by a finite literal set.
func (e *Extractor) prefixes(n syntax.Node, depth int) ([]Literal, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch n := n.(type) {
	case *syntax.Literal:
		return []Literal{NewLiteral([]byte(n.Text), true)}, true

	case *syntax.CharClass:
		if n.Negated || n.Size() == 0 || n.Size() > e.config.MaxClassSize {
			return nil, false
		}
		// U+FFFD also matches every undecodable input byte
		if n.Matches(utf8.RuneError) {
			return nil, false
		}
		var lits []Literal
		for _, r := range n.Ranges() {
			for c := r.Lo; c <= r.Hi; c++ {
				if !utf8.ValidRune(c) {
					continue
				}
				lits = append(lits, NewLiteral(utf8.AppendRune(nil, c), true))
			}
		}
		return lits, len(lits) > 0

	case *syntax.Shorthand:
		var lits []Literal
		for c := rune(0); c < utf8.RuneSelf; c++ {
			if n.Kind.Contains(c) {
				lits = append(lits, NewLiteral([]byte{byte(c)}, true))
			}
		}
		if len(lits) > e.config.MaxClassSize {
			return nil, false
		}
		return lits, true

	case *syntax.AnchorStart, *syntax.AnchorEnd:
		// zero-width, but the match is not just the empty string
		return []Literal{NewLiteral(nil, false)}, true

	case *syntax.Group:
		return e.prefixes(n.Inner, depth+1)

	case *syntax.Alternation:
		left, ok := e.prefixes(n.Left, depth+1)
		if !ok {
			return nil, false
		}
		right, ok := e.prefixes(n.Right, depth+1)
		if !ok || len(left)+len(right) > e.config.MaxLiterals {
			return nil, false
		}
		return append(left, right...), true

	case *syntax.Sequence:
		return e.sequencePrefixes(n.Elements, depth)

	case *syntax.Quantifier:
		if n.Min == 0 {
			return nil, false
		}
		lits, ok := e.prefixes(n.Inner, depth+1)
		if !ok {
			return nil, false
		}
		if n.Min != 1 || n.Max != 1 {
			lits = markIncomplete(lits)
		}
		return lits, true
	}

	// Dot, Backref: anything can follow
	return nil, false
}

// sequencePrefixes extends the accumulated prefixes element by element as
// long as every accumulated literal is still complete.
func (e *Extractor) sequencePrefixes(elems []syntax.Node, depth int) ([]Literal, bool) {
	acc := []Literal{NewLiteral(nil, true)}
	for _, el := range elems {
		if !anyComplete(acc) {
			break
		}
		sub, ok := e.prefixes(el, depth+1)
		if !ok {
			acc = markIncomplete(acc)
			break
		}

		next := make([]Literal, 0, len(acc)*len(sub))
		for _, a := range acc {
			if !a.Complete {
				next = append(next, a)
				continue
			}
			for _, s := range sub {
				b := make([]byte, 0, len(a.Bytes)+len(s.Bytes))
				b = append(append(b, a.Bytes...), s.Bytes...)
				complete := s.Complete
				if len(b) > e.config.MaxLiteralLen {
					b = b[:e.config.MaxLiteralLen]
					complete = false
				}
				next = append(next, NewLiteral(b, complete))
			}
		}
		if len(next) > e.config.MaxLiterals {
			acc = markIncomplete(acc)
			break
		}
		acc = next
	}
	return acc, true
}

func anyComplete(lits []Literal) bool {
	for _, l := range lits {
		if l.Complete {
			return true
		}
	}
	return false
}

func markIncomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, l := range lits {
		out[i] = NewLiteral(l.Bytes, false)
	}
	return out
}
