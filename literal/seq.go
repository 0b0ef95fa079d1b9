// Package literal extracts the literal text that every match of a pattern
// must start with.
//
// The engine uses these prefixes to skip offsets where no match can begin:
// for `(cat|dog) and \1` only the offsets where "cat" or "dog" occurs are
// worth an attempt.
//
// Key concepts:
//   - A Literal is a concrete byte sequence a match may start with
//   - A Seq is a set of alternative literals; every match starts with one of them
//   - Minimize and LongestCommonPrefix shrink a Seq before a prefilter is built
package literal

import (
	"bytes"
	"sort"
)

// Literal is a byte sequence extracted from a pattern. Complete reports
// whether the literal is the entire text of a match rather than a prefix.
//
// Example:
//   - Pattern `hello` → Literal{"hello", true}
//   - Pattern `hello.*` → Literal{"hello", false}
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a Literal.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation: literal{bytes, complete=...}.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals.
//
// An empty Seq carries no information: it means the pattern may match text
// that starts with anything, including the empty string.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence from the given literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("cat"), true),
//	    literal.NewLiteral([]byte("dog"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
// Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// AllComplete reports whether every literal is an entire match.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Minimize removes literals that another literal in the set is a prefix
// of, and exact duplicates. Any offset where "foobar" starts is also an
// offset where "foo" starts, so ["foo", "foobar"] minimizes to ["foo"].
//
// A literal that absorbs a longer one loses its Complete flag unless both
// were complete and equal.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for j := range kept {
			if bytes.HasPrefix(cur.Bytes, kept[j].Bytes) {
				if !cur.Complete || len(cur.Bytes) != len(kept[j].Bytes) {
					kept[j].Complete = false
				}
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by all literals,
// or an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: hel
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}
	out := make([]byte, len(prefix))
	copy(out, prefix)
	return out
}

// Bytes returns the literal byte slices in order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, s.Len())
	for i := range out {
		out[i] = s.literals[i].Bytes
	}
	return out
}

// String returns a debugging representation of the set.
func (s *Seq) String() string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i := 0; i < s.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.literals[i].String())
	}
	b.WriteByte(']')
	return b.String()
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
