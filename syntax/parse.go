package syntax

import (
	"strings"
	"unicode/utf8"
)

// Parse compiles pattern into a Tree.
//
// Parse never looks at input text; the returned tree is purely a function
// of the pattern. All failures are *Error values that satisfy
// errors.Is(err, ErrInvalidPattern).
func Parse(pattern string) (*Tree, error) {
	p := &parser{pattern: pattern}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.pattern) {
		// parseSequence only stops early at ')'.
		return nil, p.errorAt(p.pos, ErrUnexpectedParen)
	}
	for _, ref := range p.backrefs {
		if ref.number > p.numGroups {
			return nil, p.errorAt(ref.offset, ErrInvalidBackref)
		}
	}
	return &Tree{Pattern: pattern, Root: root, NumGroups: p.numGroups}, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func MustParse(pattern string) *Tree {
	t, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

type backrefUse struct {
	number int
	offset int
}

// parser holds the read cursor and the group counter for one Parse call.
type parser struct {
	pattern   string
	pos       int
	numGroups int
	backrefs  []backrefUse
}

func (p *parser) errorAt(offset int, err error) *Error {
	return &Error{Pattern: p.pattern, Offset: offset, Err: err}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.pattern) {
		return 0, false
	}
	return p.pattern[p.pos], true
}

// parseAlternation parses seq ('|' alternation)?.
func (p *parser) parseAlternation() (Node, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if c, ok := p.peek(); !ok || c != '|' {
		return left, nil
	}
	p.pos++
	right, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	return &Alternation{Left: left, Right: right}, nil
}

// parseSequence parses atoms up to end of pattern, '|' or ')'.
func (p *parser) parseSequence() (Node, error) {
	var elems []Node
	for {
		c, ok := p.peek()
		if !ok || c == '|' || c == ')' {
			break
		}
		n, err := p.parseRepeat()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &Sequence{Elements: elems}, nil
}

// parseRepeat parses an atom followed by any number of quantifiers.
func (p *parser) parseRepeat() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		c, ok := p.peek()
		if !ok {
			return atom, nil
		}
		switch c {
		case '*':
			atom = &Quantifier{Inner: atom, Min: 0, Max: Unbounded}
		case '+':
			atom = &Quantifier{Inner: atom, Min: 1, Max: Unbounded}
		case '?':
			atom = &Quantifier{Inner: atom, Min: 0, Max: 1}
		case '{':
			end := strings.IndexByte(p.pattern[p.pos+1:], '}')
			if end < 0 {
				// unterminated brace: the '{' is an ordinary character
				return atom, nil
			}
			lo, hi, err := parseRepeatBody(p.pattern[p.pos+1 : p.pos+1+end])
			if err != nil {
				return nil, p.errorAt(p.pos, err)
			}
			atom = &Quantifier{Inner: atom, Min: lo, Max: hi}
			p.pos += end + 1
		default:
			return atom, nil
		}
		p.pos++
	}
}

func (p *parser) parseAtom() (Node, error) {
	start := p.pos
	switch p.pattern[p.pos] {
	case '(':
		p.pos++
		p.numGroups++
		number := p.numGroups
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return nil, p.errorAt(start, ErrMissingParen)
		}
		p.pos++
		return &Group{Number: number, Inner: inner}, nil
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &Dot{}, nil
	case '^':
		p.pos++
		return &AnchorStart{}, nil
	case '$':
		p.pos++
		return &AnchorEnd{}, nil
	case '\\':
		return p.parseEscape()
	}
	_, size := utf8.DecodeRuneInString(p.pattern[p.pos:])
	p.pos += size
	return &Literal{Text: p.pattern[start:p.pos]}, nil
}

func (p *parser) parseEscape() (Node, error) {
	start := p.pos
	p.pos++
	if p.pos >= len(p.pattern) {
		return nil, p.errorAt(start, ErrTrailingBackslash)
	}
	c := p.pattern[p.pos]
	if '1' <= c && c <= '9' {
		p.pos++
		n := int(c - '0')
		p.backrefs = append(p.backrefs, backrefUse{number: n, offset: start})
		return &Backref{Number: n}, nil
	}
	if k, ok := shorthandKind(c); ok {
		p.pos++
		return &Shorthand{Kind: k}, nil
	}
	_, size := utf8.DecodeRuneInString(p.pattern[p.pos:])
	p.pos += size
	return &Literal{Text: p.pattern[p.pos-size : p.pos]}, nil
}

// parseClass parses a bracket expression. The body runs to the first
// unescaped ']', so "[]" is an empty class.
func (p *parser) parseClass() (Node, error) {
	start := p.pos
	i := p.pos + 1
	for i < len(p.pattern) && p.pattern[i] != ']' {
		if p.pattern[i] == '\\' {
			i++
		}
		i++
	}
	if i >= len(p.pattern) {
		return nil, p.errorAt(start, ErrMissingBracket)
	}
	body := p.pattern[p.pos+1 : i]
	p.pos = i + 1

	negated := strings.HasPrefix(body, "^")
	if negated {
		body = body[1:]
	}
	ranges, err := classRanges(body)
	if err != nil {
		return nil, p.errorAt(start, err)
	}
	return NewCharClass(ranges, negated), nil
}

// classItem is one element of a bracket body: a single rune or a
// shorthand class.
type classItem struct {
	r         rune
	escaped   bool
	shorthand *ShorthandKind
}

func classRanges(body string) ([]RuneRange, error) {
	var items []classItem
	for i := 0; i < len(body); {
		escaped := false
		if body[i] == '\\' && i+1 < len(body) {
			i++
			escaped = true
			if k, ok := shorthandKind(body[i]); ok {
				items = append(items, classItem{shorthand: &k})
				i++
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(body[i:])
		items = append(items, classItem{r: r, escaped: escaped})
		i += size
	}

	var ranges []RuneRange
	for i := 0; i < len(items); i++ {
		it := items[i]
		if it.shorthand != nil {
			ranges = append(ranges, it.shorthand.ranges()...)
			continue
		}
		// a-z, unless '-' is the last item or an endpoint is a shorthand
		if i+2 < len(items) && items[i+1].shorthand == nil && items[i+1].r == '-' && !items[i+1].escaped && items[i+2].shorthand == nil {
			hi := items[i+2].r
			if hi < it.r {
				return nil, ErrInvalidClassRange
			}
			ranges = append(ranges, RuneRange{it.r, hi})
			i += 2
			continue
		}
		ranges = append(ranges, RuneRange{it.r, it.r})
	}
	return ranges, nil
}

func shorthandKind(c byte) (ShorthandKind, bool) {
	switch c {
	case 'd':
		return Digit, true
	case 'w':
		return Word, true
	case 's':
		return Space, true
	}
	return 0, false
}
