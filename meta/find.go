package meta

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/backre/backtrack"
)

// FindAll returns the leftmost-first, non-overlapping matches in line, in
// order. If n >= 0 at most n spans are returned.
//
// After a non-empty match the scan resumes at its end. After an empty match
// it resumes one rune later. An empty match at the end of the line is not
// reported when the previous span already ends there, so `a*` on "aa" yields
// only [0,2).
//
// The error is backtrack.ErrStepLimit or backtrack.ErrDepthLimit when an
// attempt was abandoned; the spans found before it are returned along with
// it.
func (e *Engine) FindAll(line string, n int) ([]Span, error) {
	if n == 0 {
		return nil, nil
	}

	s := e.newScan(line)
	var spans []Span
	for at := 0; at <= len(line); {
		start, res, ok, err := s.next(at)
		if err != nil {
			return spans, err
		}
		if !ok {
			break
		}

		end := start + res.Consumed
		if end > start {
			spans = append(spans, newSpan(line, start, end))
			at = end
		} else {
			if start < len(line) || len(spans) == 0 || spans[len(spans)-1].End != start {
				spans = append(spans, newSpan(line, start, end))
			}
			at = start + runeWidth(line, start)
		}

		if n > 0 && len(spans) >= n {
			break
		}
	}
	return spans, nil
}

// Find returns the leftmost-first match in line.
func (e *Engine) Find(line string) (Span, bool, error) {
	s := e.newScan(line)
	start, res, ok, err := s.next(0)
	if err != nil || !ok {
		return Span{}, false, err
	}
	return newSpan(line, start, start+res.Consumed), true, nil
}

// IsMatch reports whether line contains any match.
func (e *Engine) IsMatch(line string) (bool, error) {
	_, ok, err := e.Find(line)
	return ok, err
}

// FindSubmatchIndex returns the offsets of the leftmost-first match and its
// groups: pairs [start, end] for the whole match followed by one pair per
// group, -1 for groups that did not participate. Returns nil if there is no
// match.
func (e *Engine) FindSubmatchIndex(line string) ([]int, error) {
	s := e.newScan(line)
	s.needCaptures = true
	start, res, ok, err := s.next(0)
	if err != nil || !ok {
		return nil, err
	}

	slots := res.Captures.Slots()
	slots[0], slots[1] = start, start+res.Consumed
	return slots, nil
}

// scan is the state of one line scan.
type scan struct {
	e        *Engine
	line     string
	haystack []byte
	accept   func(end int) bool

	// needCaptures disables the literal strategy, which skips the matcher.
	needCaptures bool
}

func (e *Engine) newScan(line string) *scan {
	s := &scan{e: e, line: line}
	if e.prefilter != nil {
		s.haystack = []byte(line)
	}
	if e.anchorEnd {
		s.accept = func(end int) bool { return end == len(line) }
	}
	return s
}

// next returns the first match starting at or after at.
func (s *scan) next(at int) (int, backtrack.Result, bool, error) {
	e := s.e
	for at <= len(s.line) {
		if e.strategy == UseAnchored && at > 0 {
			break
		}

		if e.prefilter != nil {
			cand := e.prefilter.Find(s.haystack, at)
			if cand < 0 {
				break
			}
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
			at = cand
			if e.strategy == UseLiteral && !s.needCaptures {
				return at, backtrack.Result{Consumed: e.prefilter.LiteralLen()}, true, nil
			}
		}

		atomic.AddUint64(&e.stats.Attempts, 1)
		res, ok, err := e.matcher.Match(s.line, at, s.accept)
		if err != nil {
			atomic.AddUint64(&e.stats.StepLimitHits, 1)
			return 0, backtrack.Result{}, false, err
		}
		if ok {
			return at, res, true, nil
		}
		if e.prefilter != nil {
			atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		}
		at += runeWidth(s.line, at)
	}
	return 0, backtrack.Result{}, false, nil
}

// runeWidth returns the width of the rune at offset i, or 1 at the end of
// the line.
func runeWidth(line string, i int) int {
	if i >= len(line) {
		return 1
	}
	_, w := utf8.DecodeRuneInString(line[i:])
	return w
}
