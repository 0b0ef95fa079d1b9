package backtrack

import "errors"

// ErrStepLimit is returned when a match attempt exceeds Config.MaxSteps.
var ErrStepLimit = errors.New("backtracking step limit exceeded")

// ErrDepthLimit is returned when a match attempt nests deeper than
// Config.MaxDepth.
var ErrDepthLimit = errors.New("backtracking recursion depth exceeded")

// DefaultMaxDepth is the recursion cap used when Config.MaxDepth is zero.
// It keeps the goroutine stack far below the runtime's maximum.
const DefaultMaxDepth = 100_000

// BackrefPolicy decides how a backreference to a group that has not been
// bound in the current attempt behaves.
type BackrefPolicy uint8

const (
	// BackrefFail makes an unbound backreference fail. Under a quantifier
	// with a zero minimum the zero-repetition path still succeeds, so
	// `(a)?\1?` can match the empty string.
	BackrefFail BackrefPolicy = iota

	// BackrefEmpty makes an unbound backreference match the empty string
	// wherever it appears.
	BackrefEmpty
)

// String returns the policy name.
func (p BackrefPolicy) String() string {
	switch p {
	case BackrefFail:
		return "fail"
	case BackrefEmpty:
		return "empty"
	}
	return "unknown"
}

// Config controls matcher behavior.
type Config struct {
	// UnboundBackref selects the behavior of backreferences to unbound groups.
	// Default: BackrefFail
	UnboundBackref BackrefPolicy

	// MaxSteps caps the node visits of a single Match call.
	// Zero means no limit.
	// Default: 0
	MaxSteps int

	// MaxDepth caps the nesting of node visits within one Match call.
	// Repetitions of bodies that contain alternation nest once per
	// repetition, so long inputs can reach it.
	// Zero means DefaultMaxDepth.
	// Default: 0
	MaxDepth int
}

// DefaultConfig returns the default matcher configuration.
func DefaultConfig() Config {
	return Config{
		UnboundBackref: BackrefFail,
		MaxSteps:       0,
		MaxDepth:       0,
	}
}

func (c Config) depthLimit() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}
