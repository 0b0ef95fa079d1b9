package meta

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/backre/backtrack"
	"github.com/coregx/backre/syntax"
)

func sp(start, end int, text string) Span {
	return Span{Start: start, End: end, Text: text}
}

func TestEngine_FindAll(t *testing.T) {
	tests := []struct {
		pattern string
		line    string
		want    []Span
	}{
		// literals
		{"abc", "abcxabcabc", []Span{sp(0, 3, "abc"), sp(4, 7, "abc"), sp(7, 10, "abc")}},
		{"aa", "aaaaa", []Span{sp(0, 2, "aa"), sp(2, 4, "aa")}},
		{"abc", "xyz", nil},
		{"é", "café é", []Span{sp(3, 5, "é"), sp(6, 8, "é")}},

		// empty matches
		{"a*", "baa", []Span{sp(0, 0, ""), sp(1, 3, "aa")}},
		{"a*", "aa", []Span{sp(0, 2, "aa")}},
		{"a*", "", []Span{sp(0, 0, "")}},
		{"a*", "b", []Span{sp(0, 0, ""), sp(1, 1, "")}},
		{"x*", "é", []Span{sp(0, 0, ""), sp(2, 2, "")}},

		// greedy quantifiers and backtracking
		{"a+a", "aaa", []Span{sp(0, 3, "aaa")}},
		{"a{2,3}", "aaaa", []Span{sp(0, 3, "aaa")}},
		{"(a|ab)c", "abc", []Span{sp(0, 3, "abc")}},
		{`\d+`, "foo123", []Span{sp(3, 6, "123")}},
		{`\d+`, "a1b22c333", []Span{sp(1, 2, "1"), sp(3, 5, "22"), sp(6, 9, "333")}},

		// backreferences
		{`(cat|dog) and \1`, "cat and cat", []Span{sp(0, 11, "cat and cat")}},
		{`(cat|dog) and \1`, "cat and dog", nil},
		{`(cat|dog) and \1`, "cat and dog, dog and dog", []Span{sp(13, 24, "dog and dog")}},

		// anchors
		{"^abc$", "abc", []Span{sp(0, 3, "abc")}},
		{"^abc$", "xabc", nil},
		{"^abc$", "abcx", nil},
		{"^a", "aaa", []Span{sp(0, 1, "a")}},
		{"a$", "aaa", []Span{sp(2, 3, "a")}},
		{"(^a)", "ba", nil},
		{"^$", "", []Span{sp(0, 0, "")}},
		{"^$", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.line, func(t *testing.T) {
			e, err := Compile(tt.pattern)
			require.NoError(t, err)

			got, err := e.FindAll(tt.line, -1)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAll(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

// Scanning with and without the prefilter must agree.
func TestEngine_FindAllPrefilterEquivalence(t *testing.T) {
	patterns := []string{
		"hello", "(hello)", "foo|foobar", `(cat|dog) and \1`, `\d+`, "[ab]x+", "abc$", "é+",
		"caf\xe9", "caf\uFFFD", "\xe9+", "[\xe9a]b",
	}
	lines := []string{
		"", "hello", "say hello hellohello", "foobar foo", "dog and dog, cat and cat",
		"a1b22c333", "axx bx ab", "xabc abc", "ééé é",
		"caf\xe9 au lait", "caf\uFFFD caf\xe9", "\xe9\xe9b \uFFFDb",
	}

	noPrefilter := DefaultConfig()
	noPrefilter.EnablePrefilter = false

	for _, pattern := range patterns {
		fast, err := Compile(pattern)
		require.NoError(t, err)
		slow, err := CompileWithConfig(pattern, noPrefilter)
		require.NoError(t, err)
		require.Equal(t, UseBacktrack, slow.Strategy())

		for _, line := range lines {
			want, err := slow.FindAll(line, -1)
			require.NoError(t, err)
			got, err := fast.FindAll(line, -1)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%q on %q: prefilter changed results (-want +got):\n%s", pattern, line, diff)
			}
		}
	}
}

// A metacharacter-free pattern finds exactly the non-overlapping occurrences
// of itself.
func TestEngine_FindAllLiteralOccurrences(t *testing.T) {
	tests := []struct {
		pattern string
		line    string
	}{
		{"ab", "abababxab"},
		{"aaa", "aaaaaaaa"},
		{"needle", "haystack needle hay needleneedle"},
		{"x", "xxyxx"},
	}

	for _, tt := range tests {
		var want []Span
		for i := 0; ; {
			idx := strings.Index(tt.line[i:], tt.pattern)
			if idx < 0 {
				break
			}
			start := i + idx
			want = append(want, sp(start, start+len(tt.pattern), tt.pattern))
			i = start + len(tt.pattern)
		}

		e, err := Compile(tt.pattern)
		require.NoError(t, err)
		got, err := e.FindAll(tt.line, -1)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q on %q (-want +got):\n%s", tt.pattern, tt.line, diff)
		}
	}
}

func TestEngine_FindAllLimit(t *testing.T) {
	e, err := Compile("a")
	require.NoError(t, err)

	spans, err := e.FindAll("aaaa", 2)
	require.NoError(t, err)
	assert.Len(t, spans, 2)

	spans, err = e.FindAll("aaaa", 0)
	require.NoError(t, err)
	assert.Nil(t, spans)
}

func TestEngine_Find(t *testing.T) {
	e, err := Compile(`\d+`)
	require.NoError(t, err)

	span, ok, err := e.Find("abc 42 7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sp(4, 6, "42"), span)

	_, ok, err = e.Find("none")
	require.NoError(t, err)
	assert.False(t, ok)

	matched, err := e.IsMatch("x9")
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestEngine_FindSubmatchIndex(t *testing.T) {
	tests := []struct {
		pattern string
		line    string
		want    []int
	}{
		{`(\d+)-(\d+)`, "call 555-1234 now", []int{5, 13, 5, 8, 9, 13}},
		{"(x)?y", "zy", []int{1, 2, -1, -1}},
		{"hello", "say hello", []int{4, 9}},
		{"(a|ab)(c|bcd)(d*)", "abcd", []int{0, 4, 0, 1, 1, 4, 4, 4}},
		{"(a+)+b", "aaa", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			e, err := Compile(tt.pattern)
			require.NoError(t, err)
			got, err := e.FindSubmatchIndex(tt.line)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindSubmatchIndex(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestEngine_UnboundBackref(t *testing.T) {
	strict, err := Compile(`(a)?\1b`)
	require.NoError(t, err)
	spans, err := strict.FindAll("b", -1)
	require.NoError(t, err)
	assert.Empty(t, spans)

	config := DefaultConfig()
	config.UnboundBackref = backtrack.BackrefEmpty
	lenient, err := CompileWithConfig(`(a)?\1b`, config)
	require.NoError(t, err)
	spans, err = lenient.FindAll("b", -1)
	require.NoError(t, err)
	assert.Equal(t, []Span{sp(0, 1, "b")}, spans)
}

func TestEngine_StepLimit(t *testing.T) {
	config := DefaultConfig()
	config.MaxSteps = 1000
	e, err := CompileWithConfig("(a|aa)*c", config)
	require.NoError(t, err)

	_, err = e.FindAll(strings.Repeat("a", 40), -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, backtrack.ErrStepLimit))
	assert.Equal(t, uint64(1), e.Stats().StepLimitHits)

	spans, err := e.FindAll("aac", -1)
	require.NoError(t, err)
	assert.Equal(t, []Span{sp(0, 3, "aac")}, spans)
}

func TestEngine_FindAllInvalidUTF8(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		line    string
		want    []Span
	}{
		{"latin-1 literal", "caf\xe9", "caf\xe9 au lait", []Span{sp(0, 4, "caf\xe9")}},
		{"byte does not match U+FFFD", "caf\xe9", "caf\uFFFD", nil},
		{"U+FFFD does not match a byte", "caf\uFFFD", "caf\xe9", nil},
		{"dot takes one byte", "a.b", "a\xe9b", []Span{sp(0, 3, "a\xe9b")}},
		{"repeated byte", "\xe9+", "x\xe9\xe9y\xe9", []Span{sp(1, 3, "\xe9\xe9"), sp(4, 5, "\xe9")}},
	}

	noPrefilter := DefaultConfig()
	noPrefilter.EnablePrefilter = false

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, config := range []Config{DefaultConfig(), noPrefilter} {
				e, err := CompileWithConfig(tt.pattern, config)
				require.NoError(t, err)
				got, err := e.FindAll(tt.line, -1)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got, "strategy %s", e.Strategy())
			}
		})
	}
}

func TestEngine_LongLine(t *testing.T) {
	line := strings.Repeat("ab", 1<<19) + "c"

	e, err := Compile("(ab)*c")
	require.NoError(t, err)
	spans, err := e.FindAll(line, -1)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, len(line), spans[0].End)

	e, err = Compile("(a|b)*c")
	require.NoError(t, err)
	_, err = e.FindAll(line, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, backtrack.ErrDepthLimit))
	assert.Equal(t, uint64(1), e.Stats().StepLimitHits)
}

func TestEngine_CompileError(t *testing.T) {
	_, err := Compile("(abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, syntax.ErrMissingParen))

	var syntaxErr *syntax.Error
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, "(abc", syntaxErr.Pattern)
}

func TestEngine_Stats(t *testing.T) {
	e, err := Compile(`\d+`)
	require.NoError(t, err)
	_, err = e.FindAll("a1b2", -1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Attempts: 2, PrefilterHits: 2}, e.Stats())

	e, err = Compile(`(cat|dog) and \1`)
	require.NoError(t, err)
	_, err = e.FindAll("cat and dog", -1)
	require.NoError(t, err)
	assert.Equal(t, Stats{Attempts: 1, PrefilterHits: 1, PrefilterMisses: 1}, e.Stats())

	e.ResetStats()
	assert.Equal(t, Stats{}, e.Stats())
}

func TestEngine_Concurrent(t *testing.T) {
	e, err := Compile(`(\w+) and \1`)
	require.NoError(t, err)

	lines := []string{"cat and cat", "dog and cat", "x and x and x", ""}
	want := make([][]Span, len(lines))
	for i, line := range lines {
		want[i], err = e.FindAll(line, -1)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < 50; iter++ {
				for i, line := range lines {
					got, err := e.FindAll(line, -1)
					if err != nil || !cmp.Equal(want[i], got) {
						select {
						case errs <- line:
						default:
						}
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for line := range errs {
		t.Errorf("concurrent FindAll(%q) disagreed with sequential result", line)
	}
}
