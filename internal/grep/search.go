package grep

import (
	"bufio"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/coregx/backre"
	"github.com/coregx/backre/meta"
)

const (
	highlightStart = "\x1b[1;31m"
	highlightEnd   = "\x1b[0m"
)

// Separators between the prefix fields and the line text.
const (
	selectedSep = ':'
	contextSep  = '-'
	groupSep    = "--"
)

// searcher applies one compiled pattern to a sequence of sources and writes
// the results to out.
type searcher struct {
	opts     Options
	re       *backre.Regex
	out      *bufio.Writer
	diag     *log.Logger
	debug    *log.Logger
	color    bool
	showName bool

	// printedAny is set once any line has been written, so the next
	// non-adjacent context group gets a separator even across sources.
	printedAny bool
}

// contextLine is a line held back as potential leading context.
type contextLine struct {
	num  int
	text string
}

// fileState is the per-source part of a search.
type fileState struct {
	name        string
	lastPrinted int // line number of the last written line, 0 if none
	afterLeft   int // trailing context lines still to print
	before      []contextLine
}

// search scans r line by line. It returns the number of selected lines and
// whether the whole run can stop (quiet mode found a line).
func (s *searcher) search(name string, r io.Reader) (int, bool, error) {
	st := &fileState{name: name}
	br := bufio.NewReader(r)
	selected := 0

	for num := 1; ; num++ {
		text, err := br.ReadString('\n')
		if len(text) > 0 {
			text = strings.TrimSuffix(text, "\n")
			if s.line(st, num, text) {
				selected++
				if s.opts.Quiet {
					return selected, true, nil
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return selected, false, err
		}
	}

	if s.opts.Count {
		if s.showName {
			s.out.WriteString(name)
			s.out.WriteByte(selectedSep)
		}
		s.out.WriteString(strconv.Itoa(selected))
		s.out.WriteByte('\n')
	}
	return selected, false, nil
}

// line processes one input line and reports whether it was selected.
func (s *searcher) line(st *fileState, num int, text string) bool {
	spans, err := s.re.FindAllSpans(text)
	if err != nil {
		// the matcher gave up on this line; count it as not matching
		s.diag.Printf("%s:%d: %v", st.name, num, err)
		spans = nil
	}

	if (len(spans) > 0) == s.opts.Invert {
		s.skip(st, num, text)
		return false
	}

	switch {
	case s.opts.Quiet, s.opts.Count:
	case s.opts.OnlyMatching:
		if !s.opts.Invert {
			s.writeMatches(st, num, spans)
		}
	default:
		s.flushBefore(st)
		if s.opts.Invert {
			spans = nil
		}
		s.writeLine(st, num, selectedSep, text, spans)
		st.afterLeft = s.opts.After
	}
	return true
}

// skip handles a line that was not selected: it is printed as trailing
// context or kept as potential leading context.
func (s *searcher) skip(st *fileState, num int, text string) {
	if !s.opts.contextEnabled() {
		return
	}
	if st.afterLeft > 0 {
		st.afterLeft--
		s.writeLine(st, num, contextSep, text, nil)
		return
	}
	if s.opts.Before == 0 {
		return
	}
	if len(st.before) == s.opts.Before {
		st.before = st.before[1:]
	}
	st.before = append(st.before, contextLine{num: num, text: text})
}

func (s *searcher) flushBefore(st *fileState) {
	for _, cl := range st.before {
		s.writeLine(st, cl.num, contextSep, cl.text, nil)
	}
	st.before = st.before[:0]
}

// writeMatches prints each non-empty match on its own line.
func (s *searcher) writeMatches(st *fileState, num int, spans []meta.Span) {
	for _, span := range spans {
		if span.IsEmpty() {
			continue
		}
		s.writePrefix(st, num, selectedSep)
		s.writeHighlighted(span.Text)
		s.out.WriteByte('\n')
	}
}

// writeLine prints a whole line, highlighting spans when color is on.
func (s *searcher) writeLine(st *fileState, num int, sep byte, text string, spans []meta.Span) {
	if s.opts.contextEnabled() {
		if (st.lastPrinted == 0 && s.printedAny) || (st.lastPrinted > 0 && num > st.lastPrinted+1) {
			s.out.WriteString(groupSep)
			s.out.WriteByte('\n')
		}
	}
	st.lastPrinted = num
	s.printedAny = true

	s.writePrefix(st, num, sep)
	if !s.color {
		s.out.WriteString(text)
		s.out.WriteByte('\n')
		return
	}

	last := 0
	for _, span := range spans {
		if span.IsEmpty() {
			continue
		}
		s.out.WriteString(text[last:span.Start])
		s.writeHighlighted(span.Text)
		last = span.End
	}
	s.out.WriteString(text[last:])
	s.out.WriteByte('\n')
}

func (s *searcher) writePrefix(st *fileState, num int, sep byte) {
	if s.showName {
		s.out.WriteString(st.name)
		s.out.WriteByte(sep)
	}
	if s.opts.LineNumber {
		s.out.WriteString(strconv.Itoa(num))
		s.out.WriteByte(sep)
	}
}

func (s *searcher) writeHighlighted(text string) {
	if !s.color {
		s.out.WriteString(text)
		return
	}
	s.out.WriteString(highlightStart)
	s.out.WriteString(text)
	s.out.WriteString(highlightEnd)
}
