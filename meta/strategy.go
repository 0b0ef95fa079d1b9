package meta

import (
	"github.com/coregx/backre/prefilter"
	"github.com/coregx/backre/syntax"
)

// Strategy is how the scanner chooses start offsets and verifies them.
type Strategy int

const (
	// UseBacktrack runs the matcher at every start offset.
	UseBacktrack Strategy = iota

	// UseAnchored runs the matcher once, at offset 0. Selected for patterns
	// that begin with '^'.
	UseAnchored

	// UsePrefilter runs the matcher only at offsets where a prefix literal
	// occurs.
	UsePrefilter

	// UseLiteral reports prefilter candidates as matches without running
	// the matcher. Selected for plain literal patterns without groups.
	UseLiteral
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "Backtrack"
	case UseAnchored:
		return "Anchored"
	case UsePrefilter:
		return "Prefilter"
	case UseLiteral:
		return "Literal"
	}
	return "Unknown"
}

// selectStrategy picks the strategy for tree given the prefilter built from
// its prefixes (nil if none).
func selectStrategy(tree *syntax.Tree, pf prefilter.Prefilter) Strategy {
	if tree.LeadingAnchor() {
		return UseAnchored
	}
	if pf == nil {
		return UseBacktrack
	}
	if pf.IsComplete() && tree.NumGroups == 0 {
		return UseLiteral
	}
	return UsePrefilter
}
