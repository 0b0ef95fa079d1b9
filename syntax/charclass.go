package syntax

import (
	"sort"
	"strings"
)

// RuneRange is an inclusive range of runes.
type RuneRange struct {
	Lo, Hi rune
}

// CharClass matches one rune whose membership in the class differs from
// Negated. The member set is fixed when the class is built.
type CharClass struct {
	ranges  []RuneRange // sorted, non-overlapping, non-adjacent
	Negated bool
}

// NewCharClass builds a class from possibly overlapping ranges.
func NewCharClass(ranges []RuneRange, negated bool) *CharClass {
	return &CharClass{ranges: normalizeRanges(ranges), Negated: negated}
}

// Matches reports whether the class accepts r, taking Negated into account.
func (c *CharClass) Matches(r rune) bool {
	return c.contains(r) != c.Negated
}

// contains reports raw membership of r, ignoring Negated.
func (c *CharClass) contains(r rune) bool {
	i := sort.Search(len(c.ranges), func(i int) bool {
		return c.ranges[i].Hi >= r
	})
	return i < len(c.ranges) && c.ranges[i].Lo <= r
}

// Ranges returns a copy of the member ranges, ignoring Negated.
func (c *CharClass) Ranges() []RuneRange {
	out := make([]RuneRange, len(c.ranges))
	copy(out, c.ranges)
	return out
}

// Size returns the number of member runes, ignoring Negated.
func (c *CharClass) Size() int {
	n := 0
	for _, r := range c.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// String returns the class in bracket notation.
func (c *CharClass) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for _, r := range c.ranges {
		b.WriteRune(r.Lo)
		if r.Hi != r.Lo {
			b.WriteByte('-')
			b.WriteRune(r.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func normalizeRanges(in []RuneRange) []RuneRange {
	if len(in) == 0 {
		return nil
	}
	rs := make([]RuneRange, len(in))
	copy(rs, in)
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })

	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
