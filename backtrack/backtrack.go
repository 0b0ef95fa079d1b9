// Package backtrack executes pattern trees against input text by recursive
// backtracking.
//
// The matcher walks the remaining node list head first. Every choice point
// (alternation branch, repetition count) is tried in priority order, and a
// failure anywhere later in the pattern resumes the most recent untried
// choice:
//   - Alternation tries the left branch, then the right branch.
//   - Quantifiers are greedy: the highest repetition count is tried first,
//     then one fewer, down to the minimum.
//   - A repetition that consumes no input ends the greedy extension.
//
// Offsets are byte offsets into the input. Anchors test the absolute
// boundaries of the input, never the boundaries of an enclosing group.
//
// Matching is exponential in the worst case. Config.MaxSteps lets a caller
// bound the work of one attempt, and Config.MaxDepth bounds how deeply the
// matcher may recurse before the attempt is abandoned.
package backtrack

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/backre/syntax"
)

// Result is a successful match attempt.
type Result struct {
	// Consumed is the length in bytes of the matched text.
	Consumed int
	// Captures holds group bindings; group 0 is not set by the matcher.
	Captures Captures
}

// Matcher runs one compiled tree. A Matcher holds no per-attempt state and
// is safe for concurrent use.
type Matcher struct {
	tree   *syntax.Tree
	config Config
}

// New creates a matcher for tree.
func New(tree *syntax.Tree, config Config) *Matcher {
	return &Matcher{tree: tree, config: config}
}

// Tree returns the tree the matcher executes.
func (m *Matcher) Tree() *syntax.Tree {
	return m.tree
}

// Match attempts the whole tree at offset with fresh captures.
//
// If accept is non-nil it is consulted for every candidate end offset in
// priority order; a rejected candidate makes the matcher keep backtracking.
// The error is ErrStepLimit when the step budget ran out and ErrDepthLimit
// when the recursion depth cap was reached, nil otherwise.
func (m *Matcher) Match(input string, offset int, accept func(end int) bool) (Result, bool, error) {
	caps := NewCaptures(m.tree.NumGroups)
	return m.run([]syntax.Node{m.tree.Root}, input, offset, caps, accept)
}

// MatchSequence attempts nodes in order at offset, starting from caps.
func (m *Matcher) MatchSequence(nodes []syntax.Node, input string, offset int, caps Captures) (Result, bool, error) {
	return m.run(nodes, input, offset, caps, nil)
}

func (m *Matcher) run(nodes []syntax.Node, input string, offset int, caps Captures, accept func(int) bool) (Result, bool, error) {
	a := &attempt{input: input, config: m.config, maxDepth: m.config.depthLimit()}
	var res Result
	ok := a.nodes(nodes, offset, caps, func(end int, c Captures) bool {
		if accept != nil && !accept(end) {
			return false
		}
		res = Result{Consumed: end - offset, Captures: c}
		return true
	})
	if a.err != nil {
		return Result{}, false, a.err
	}
	return res, ok, nil
}

// cont is the rest of the match: it is called with the offset and bindings
// reached so far and reports whether the whole match succeeded.
type cont func(pos int, caps Captures) bool

// attempt is the state of one Match call.
type attempt struct {
	input    string
	config   Config
	steps    int
	depth    int
	maxDepth int

	// err aborts the attempt once set.
	err error
}

func (a *attempt) step() bool {
	if a.err != nil {
		return false
	}
	a.steps++
	if a.config.MaxSteps > 0 && a.steps > a.config.MaxSteps {
		a.err = ErrStepLimit
		return false
	}
	return true
}

// nodes matches ns[0], then ns[1:], then k.
func (a *attempt) nodes(ns []syntax.Node, pos int, caps Captures, k cont) bool {
	if len(ns) == 0 {
		return k(pos, caps)
	}
	head, tail := ns[0], ns[1:]
	if len(tail) == 0 {
		return a.node(head, pos, caps, k)
	}
	return a.node(head, pos, caps, func(p int, c Captures) bool {
		return a.nodes(tail, p, c, k)
	})
}

func (a *attempt) node(n syntax.Node, pos int, caps Captures, k cont) bool {
	if !a.step() {
		return false
	}
	if a.depth >= a.maxDepth {
		a.err = ErrDepthLimit
		return false
	}
	a.depth++
	ok := a.visit(n, pos, caps, k)
	a.depth--
	return ok
}

func (a *attempt) visit(n syntax.Node, pos int, caps Captures, k cont) bool {
	switch n := n.(type) {
	case *syntax.Sequence:
		return a.nodes(n.Elements, pos, caps, k)

	case *syntax.Alternation:
		if a.node(n.Left, pos, caps, k) {
			return true
		}
		return a.node(n.Right, pos, caps, k)

	case *syntax.Group:
		return a.node(n.Inner, pos, caps, func(end int, c Captures) bool {
			return k(end, c.Bind(n.Number, pos, end))
		})

	case *syntax.Quantifier:
		switch {
		case syntax.IsSingle(n.Inner):
			return a.repeatSingle(n, pos, caps, k)
		case choiceFree(n.Inner):
			return a.repeatChoiceFree(n, pos, caps, k)
		}
		return a.repeat(n, 0, pos, caps, k)

	case *syntax.Backref:
		start, end, ok := caps.Span(n.Number)
		if !ok {
			if a.config.UnboundBackref == BackrefEmpty {
				return k(pos, caps)
			}
			return false
		}
		text := a.input[start:end]
		if !strings.HasPrefix(a.input[pos:], text) {
			return false
		}
		return k(pos+len(text), caps)

	case *syntax.AnchorStart:
		return pos == 0 && k(pos, caps)

	case *syntax.AnchorEnd:
		return pos == len(a.input) && k(pos, caps)
	}

	w := a.single(n, pos)
	return w > 0 && k(pos+w, caps)
}

// single matches a one-character node at pos and returns its width in
// bytes, or 0.
func (a *attempt) single(n syntax.Node, pos int) int {
	if pos >= len(a.input) {
		return 0
	}
	if lit, ok := n.(*syntax.Literal); ok {
		if lit.Text != "" && strings.HasPrefix(a.input[pos:], lit.Text) {
			return len(lit.Text)
		}
		return 0
	}

	r, w := utf8.DecodeRuneInString(a.input[pos:])
	var ok bool
	switch n := n.(type) {
	case *syntax.Dot:
		ok = r != '\n'
	case *syntax.CharClass:
		ok = n.Matches(r)
	case *syntax.Shorthand:
		ok = n.Kind.Contains(r)
	}
	if !ok {
		return 0
	}
	return w
}

// repeatSingle handles a quantifier over a one-rune node without recursing
// per repetition: it records the end offset after each repetition from Min
// up to the greedy maximum, then offers them to k from longest to shortest.
func (a *attempt) repeatSingle(q *syntax.Quantifier, pos int, caps Captures, k cont) bool {
	count := 0
	for ; count < q.Min; count++ {
		w := a.single(q.Inner, pos)
		if w == 0 {
			return false
		}
		pos += w
	}

	ends := []int{pos}
	for q.Max == syntax.Unbounded || count < q.Max {
		w := a.single(q.Inner, pos)
		if w == 0 {
			break
		}
		pos += w
		count++
		ends = append(ends, pos)
	}

	for i := len(ends) - 1; i >= 0; i-- {
		if !a.step() {
			return false
		}
		if k(ends[i], caps) {
			return true
		}
	}
	return false
}

// repeatChoiceFree handles a quantifier over a composite node that has at
// most one way to match at a given offset, such as `(ab)*`. Repetitions are
// matched in a loop instead of nesting one continuation per repetition, and
// the states after each count are offered to k from the greedy maximum down
// to Min.
func (a *attempt) repeatChoiceFree(q *syntax.Quantifier, pos int, caps Captures, k cont) bool {
	type state struct {
		pos  int
		caps Captures
	}
	states := []state{{pos: pos, caps: caps}}
	for q.Max == syntax.Unbounded || len(states)-1 < q.Max {
		count := len(states) - 1
		cur := states[count]
		var next state
		matched := a.node(q.Inner, cur.pos, cur.caps, func(end int, c Captures) bool {
			next = state{pos: end, caps: c}
			return true
		})
		if !matched || (next.pos == cur.pos && count >= q.Min) {
			break
		}
		states = append(states, next)
	}
	if a.err != nil {
		return false
	}

	for i := len(states) - 1; i >= q.Min; i-- {
		if !a.step() {
			return false
		}
		if k(states[i].pos, states[i].caps) {
			return true
		}
	}
	return false
}

// choiceFree reports whether n has no choice points: no alternation and no
// quantifier with a variable count. Such a node matches at most one way at
// any offset.
func choiceFree(n syntax.Node) bool {
	switch n := n.(type) {
	case *syntax.Alternation:
		return false
	case *syntax.Quantifier:
		return n.Min == n.Max && choiceFree(n.Inner)
	case *syntax.Group:
		return choiceFree(n.Inner)
	case *syntax.Sequence:
		for _, el := range n.Elements {
			if !choiceFree(el) {
				return false
			}
		}
	}
	return true
}

// repeat handles a quantifier over a composite node. count is the number of
// repetitions matched so far. Each repetition may backtrack into Inner's own
// choices before fewer repetitions are tried.
func (a *attempt) repeat(q *syntax.Quantifier, count, pos int, caps Captures, k cont) bool {
	if !a.step() {
		return false
	}
	if q.Max == syntax.Unbounded || count < q.Max {
		more := a.node(q.Inner, pos, caps, func(end int, c Captures) bool {
			if end == pos && count >= q.Min {
				// empty repetition past the minimum cannot make progress
				return false
			}
			return a.repeat(q, count+1, end, c, k)
		})
		if more {
			return true
		}
	}
	return count >= q.Min && k(pos, caps)
}
