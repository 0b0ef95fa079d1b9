package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Tree(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "(seq)"},
		{"a", "(lit a)"},
		{"abc", "(seq (lit a) (lit b) (lit c))"},
		{".", "(dot)"},
		{"a|b|c", "(alt (lit a) (alt (lit b) (lit c)))"},
		{"a||b", "(alt (lit a) (alt (seq) (lit b)))"},
		{"(a(b))", "(group 1 (seq (lit a) (group 2 (lit b))))"},
		{"((a)(b))", "(group 1 (seq (group 2 (lit a)) (group 3 (lit b))))"},
		{"a*", "(rep 0 inf (lit a))"},
		{"a+", "(rep 1 inf (lit a))"},
		{"a?", "(rep 0 1 (lit a))"},
		{"a{2}", "(rep 2 2 (lit a))"},
		{"a{2,}", "(rep 2 inf (lit a))"},
		{"a{2,3}", "(rep 2 3 (lit a))"},
		{"a+?", "(rep 0 1 (rep 1 inf (lit a)))"},
		{`\d\w\s`, `(seq (short \d) (short \w) (short \s))`},
		{`\.`, "(lit .)"},
		{`\(`, "(lit ()"},
		{"^abc$", "(seq (bol) (lit a) (lit b) (lit c) (eol))"},
		{"[a-c]", "(class [a-c])"},
		{`[a-c\d]`, "(class [0-9a-c])"},
		{"[^xyz]", "(class [^x-z])"},
		{"[a-]", "(class [-a])"},
		{`[a\-z]`, "(class [-az])"},
		{"[]", "(class [])"},
		{"[]a]", "(seq (class []) (lit a) (lit ]))"},
		{"a{", "(seq (lit a) (lit {))"},
		{"*a", "(seq (lit *) (lit a))"},
		{`(a)\1`, "(seq (group 1 (lit a)) (backref 1))"},
		{"é+", "(rep 1 inf (lit é))"},
		{"a\xe9", "(seq (lit a) (lit \xe9))"},
		{"\\\xe9", "(lit \xe9)"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree, err := Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Dump(tree.Root))
		})
	}
}

func TestParse_GroupNumbering(t *testing.T) {
	tests := []struct {
		pattern string
		groups  int
	}{
		{"abc", 0},
		{"(cat|dog) and \\1", 1},
		{"((a)|(b))(c)", 4},
		{"(((x)))", 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree := MustParse(tt.pattern)
			if tree.NumGroups != tt.groups {
				t.Errorf("NumGroups = %d, want %d", tree.NumGroups, tt.groups)
			}
			seen := map[int]bool{}
			collectGroups(tree.Root, seen)
			for i := 1; i <= tt.groups; i++ {
				if !seen[i] {
					t.Errorf("group %d missing from tree", i)
				}
			}
			if len(seen) != tt.groups {
				t.Errorf("tree has %d distinct groups, want %d", len(seen), tt.groups)
			}
		})
	}
}

func collectGroups(n Node, seen map[int]bool) {
	switch n := n.(type) {
	case *Group:
		seen[n.Number] = true
		collectGroups(n.Inner, seen)
	case *Alternation:
		collectGroups(n.Left, seen)
		collectGroups(n.Right, seen)
	case *Sequence:
		for _, e := range n.Elements {
			collectGroups(e, seen)
		}
	case *Quantifier:
		collectGroups(n.Inner, seen)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
		offset  int
	}{
		{"(abc", ErrMissingParen, 0},
		{"a(b(c)", ErrMissingParen, 1},
		{"abc)", ErrUnexpectedParen, 3},
		{"[abc", ErrMissingBracket, 0},
		{`x[a\]`, ErrMissingBracket, 1},
		{"a{x}", ErrInvalidRepeat, 1},
		{"a{}", ErrInvalidRepeat, 1},
		{"a{,3}", ErrInvalidRepeat, 1},
		{"a{1,2,3}", ErrInvalidRepeat, 1},
		{"a{ 1}", ErrInvalidRepeat, 1},
		{"a{3,2}", ErrRepeatRange, 1},
		{"a{1001}", ErrRepeatTooLarge, 1},
		{`abc\`, ErrTrailingBackslash, 3},
		{`(a)\2`, ErrInvalidBackref, 3},
		{"[z-a]", ErrInvalidClassRange, 0},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidPattern)

			var serr *Error
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.pattern, serr.Pattern)
			assert.Equal(t, tt.offset, serr.Offset)
		})
	}
}

func TestTree_Anchors(t *testing.T) {
	tests := []struct {
		pattern        string
		leading, trail bool
	}{
		{"^abc$", true, true},
		{"^abc", true, false},
		{"abc$", false, true},
		{"^", true, false},
		{"a^b", false, false},
		{"(^a)", false, false},
		{"^a|b$", false, false},
		{`\^a\$`, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree := MustParse(tt.pattern)
			assert.Equal(t, tt.leading, tree.LeadingAnchor(), "LeadingAnchor")
			assert.Equal(t, tt.trail, tree.TrailingAnchor(), "TrailingAnchor")
		})
	}
}

func TestCharClass_Matches(t *testing.T) {
	cc := MustParse(`[a-f\s_]`).Root.(*CharClass)
	for _, r := range "abcdef \t_" {
		assert.True(t, cc.Matches(r), "%q", r)
	}
	for _, r := range "gzA0-" {
		assert.False(t, cc.Matches(r), "%q", r)
	}
	assert.Equal(t, 6+6+1, cc.Size())

	neg := MustParse(`[^0-9]`).Root.(*CharClass)
	assert.True(t, neg.Matches('x'))
	assert.False(t, neg.Matches('5'))
	assert.Equal(t, 10, neg.Size())

	empty := MustParse(`[]`).Root.(*CharClass)
	assert.False(t, empty.Matches('a'))
	assert.Equal(t, 0, empty.Size())
}

func TestShorthandKind_Contains(t *testing.T) {
	tests := []struct {
		kind ShorthandKind
		in   string
		out  string
	}{
		{Digit, "0123456789", "a /"},
		{Word, "azAZ09_", " -.é"},
		{Space, " \t\n\r\f\v", "a_0"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			for _, r := range tt.in {
				if !tt.kind.Contains(r) {
					t.Errorf("%v should contain %q", tt.kind, r)
				}
			}
			for _, r := range tt.out {
				if tt.kind.Contains(r) {
					t.Errorf("%v should not contain %q", tt.kind, r)
				}
			}
		})
	}
}
