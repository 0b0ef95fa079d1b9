// Package syntax compiles pattern strings into an abstract syntax tree.
//
// The dialect is the one accepted by classic line-search tools in extended
// mode: literals, '.', bracket classes with ranges, the shorthand classes
// \d \w \s, capturing groups, backreferences \1 through \9, alternation,
// the anchors '^' and '$', and the greedy quantifiers '*', '+', '?' and
// {n}, {n,}, {n,m}.
//
// Parsing is a single left-to-right recursive descent over the pattern.
// Capture groups are numbered by the order of their opening parenthesis,
// starting at 1. Group 0 is the implicit whole match and never appears in
// the tree.
//
// Example:
//
//	tree, err := syntax.Parse(`(cat|dog) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tree.NumGroups) // 1
package syntax

// Unbounded is the Max of a Quantifier without an upper repetition bound.
const Unbounded = -1

// Node is a node of the pattern tree.
//
// The concrete types are *Literal, *Dot, *CharClass, *Shorthand,
// *AnchorStart, *AnchorEnd, *Group, *Backref, *Alternation, *Sequence and
// *Quantifier. Trees are read-only once Parse returns and may be shared
// between goroutines.
type Node interface {
	node()
}

// Literal matches one pattern character. Text holds its source bytes: the
// UTF-8 encoding of a rune, or a single byte where the pattern is not valid
// UTF-8. Input is compared byte for byte, so an undecodable pattern byte
// matches only the same byte.
type Literal struct {
	Text string
}

// Dot matches any one rune except '\n'.
type Dot struct{}

// ShorthandKind names a built-in character class.
type ShorthandKind uint8

const (
	// Digit is \d: [0-9].
	Digit ShorthandKind = iota
	// Word is \w: [A-Za-z0-9_].
	Word
	// Space is \s: [ \t\n\r\f\v].
	Space
)

// String returns the escape sequence for the class.
func (k ShorthandKind) String() string {
	switch k {
	case Digit:
		return `\d`
	case Word:
		return `\w`
	case Space:
		return `\s`
	}
	return `\?`
}

// Contains reports whether r belongs to the class.
func (k ShorthandKind) Contains(r rune) bool {
	switch k {
	case Digit:
		return '0' <= r && r <= '9'
	case Word:
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_'
	case Space:
		return r == ' ' || '\t' <= r && r <= '\r'
	}
	return false
}

// ranges returns the class members as sorted inclusive ranges.
func (k ShorthandKind) ranges() []RuneRange {
	switch k {
	case Digit:
		return []RuneRange{{'0', '9'}}
	case Word:
		return []RuneRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	case Space:
		return []RuneRange{{'\t', '\r'}, {' ', ' '}}
	}
	return nil
}

// Shorthand matches one rune belonging to a built-in class.
type Shorthand struct {
	Kind ShorthandKind
}

// AnchorStart matches the empty string at offset 0 of the line.
type AnchorStart struct{}

// AnchorEnd matches the empty string at the end of the line.
type AnchorEnd struct{}

// Group is a capturing group.
type Group struct {
	// Number is the 1-based position of the group's opening parenthesis
	// among all groups of the pattern.
	Number int
	Inner  Node
}

// Backref matches the text most recently captured by group Number in the
// same match attempt.
type Backref struct {
	Number int
}

// Alternation matches Left or, failing that, Right.
type Alternation struct {
	Left  Node
	Right Node
}

// Sequence matches its elements one after another. An empty Sequence
// matches the empty string.
type Sequence struct {
	Elements []Node
}

// Quantifier matches between Min and Max repetitions of Inner, preferring
// more. Max is Unbounded when there is no upper bound.
type Quantifier struct {
	Inner Node
	Min   int
	Max   int
}

func (*Literal) node()     {}
func (*Dot) node()         {}
func (*CharClass) node()   {}
func (*Shorthand) node()   {}
func (*AnchorStart) node() {}
func (*AnchorEnd) node()   {}
func (*Group) node()       {}
func (*Backref) node()     {}
func (*Alternation) node() {}
func (*Sequence) node()    {}
func (*Quantifier) node()  {}

// Tree is a compiled pattern.
type Tree struct {
	// Pattern is the source text passed to Parse.
	Pattern string

	// Root is the top-level node.
	Root Node

	// NumGroups is the number of capturing groups. Group numbers in the tree
	// cover 1..NumGroups exactly once.
	NumGroups int
}

// IsSingle reports whether n always consumes exactly one rune when it
// matches and binds no captures.
func IsSingle(n Node) bool {
	switch n.(type) {
	case *Literal, *Dot, *CharClass, *Shorthand:
		return true
	}
	return false
}

// Elements returns the top-level elements of the tree: the elements of
// Root if it is a Sequence, otherwise Root alone.
func (t *Tree) Elements() []Node {
	if seq, ok := t.Root.(*Sequence); ok {
		return seq.Elements
	}
	return []Node{t.Root}
}

// LeadingAnchor reports whether the first top-level element is '^'.
func (t *Tree) LeadingAnchor() bool {
	els := t.Elements()
	if len(els) == 0 {
		return false
	}
	_, ok := els[0].(*AnchorStart)
	return ok
}

// TrailingAnchor reports whether the last top-level element is '$'.
func (t *Tree) TrailingAnchor() bool {
	els := t.Elements()
	if len(els) == 0 {
		return false
	}
	_, ok := els[len(els)-1].(*AnchorEnd)
	return ok
}
