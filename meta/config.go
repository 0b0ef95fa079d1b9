// Package meta implements the line scanner: it compiles a pattern, selects a
// prefilter and drives the backtracking matcher across the start offsets of
// one line.
//
// The engine coordinates three pieces:
//   - Prefilter: literal-based candidate finding (optional)
//   - Backtracking matcher: verifies a candidate and computes captures
//   - Scanner loop: leftmost-first, non-overlapping spans with anchor handling
//
// The engine provides the matching layer behind the public API, hiding
// offset bookkeeping from users.
package meta

import "github.com/coregx/backre/backtrack"

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MaxSteps = 1_000_000 // bound the work of pathological patterns
//	engine, err := meta.CompileWithConfig(`(a|aa)*b`, config)
type Config struct {
	// UnboundBackref selects the behavior of a backreference to a group that
	// has not been bound in the current attempt.
	// Default: backtrack.BackrefFail
	UnboundBackref backtrack.BackrefPolicy

	// MaxSteps caps the matcher's node visits per start offset.
	// Zero means no limit.
	// Default: 0
	MaxSteps int

	// MaxDepth caps the matcher's recursion depth per start offset.
	// Zero means backtrack.DefaultMaxDepth.
	// Default: 0
	MaxDepth int

	// EnablePrefilter enables literal-based prefiltering.
	// When false, the matcher runs at every start offset.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of prefix literals extracted for the
	// prefilter. Patterns with more alternatives run without a prefilter.
	// Default: 64
	MaxLiterals int
}

// DefaultConfig returns a configuration with the default policy and no step
// budget.
func DefaultConfig() Config {
	return Config{
		UnboundBackref:  backtrack.BackrefFail,
		MaxSteps:        0,
		MaxDepth:        0,
		EnablePrefilter: true,
		MaxLiterals:     64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - UnboundBackref: BackrefFail or BackrefEmpty
//   - MaxSteps: >= 0
//   - MaxDepth: >= 0
//   - MaxLiterals: 1 to 1,000 (when the prefilter is enabled)
func (c Config) Validate() error {
	if c.UnboundBackref != backtrack.BackrefFail && c.UnboundBackref != backtrack.BackrefEmpty {
		return &ConfigError{
			Field:   "UnboundBackref",
			Message: "unknown policy " + c.UnboundBackref.String(),
		}
	}

	if c.MaxSteps < 0 {
		return &ConfigError{
			Field:   "MaxSteps",
			Message: "must not be negative",
		}
	}

	if c.MaxDepth < 0 {
		return &ConfigError{
			Field:   "MaxDepth",
			Message: "must not be negative",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	return nil
}

func (c Config) matcherConfig() backtrack.Config {
	return backtrack.Config{
		UnboundBackref: c.UnboundBackref,
		MaxSteps:       c.MaxSteps,
		MaxDepth:       c.MaxDepth,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "backre: invalid config: " + e.Field + ": " + e.Message
}
