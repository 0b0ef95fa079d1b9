package meta

import (
	"sync/atomic"

	"github.com/coregx/backre/backtrack"
	"github.com/coregx/backre/literal"
	"github.com/coregx/backre/prefilter"
	"github.com/coregx/backre/syntax"
)

// Engine is a compiled pattern together with its scanning strategy.
//
// The Engine:
//  1. Parses the pattern into a tree
//  2. Extracts prefix literals and builds a prefilter (if any)
//  3. Selects the strategy
//  4. Scans lines with the backtracking matcher
//
// An Engine holds no per-scan state apart from statistics counters, which
// are updated atomically, so it is safe for concurrent use.
//
// Example:
//
//	engine, err := meta.Compile(`(\d+)-(\d+)`)
//	if err != nil {
//	    return err
//	}
//	spans, err := engine.FindAll("call 555-1234 now", -1)
type Engine struct {
	tree      *syntax.Tree
	matcher   *backtrack.Matcher
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config

	// anchorEnd is set for patterns whose last top-level element is '$'.
	// Only attempts that end exactly at the end of the line are accepted.
	anchorEnd bool

	stats Stats
}

// Stats tracks scanning statistics for debugging and tuning.
type Stats struct {
	// Attempts counts matcher runs, one per tried start offset.
	Attempts uint64

	// PrefilterHits counts candidate offsets reported by the prefilter.
	PrefilterHits uint64

	// PrefilterMisses counts candidates the matcher rejected.
	PrefilterMisses uint64

	// StepLimitHits counts attempts aborted by Config.MaxSteps or
	// Config.MaxDepth.
	StepLimitHits uint64
}

// Compile compiles a pattern with the default configuration.
//
// Returns a *syntax.Error if the pattern is malformed.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.UnboundBackref = backtrack.BackrefEmpty
//	engine, err := meta.CompileWithConfig(`(a)?\1b`, config)
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return NewEngine(tree, config), nil
}

// NewEngine builds an engine for an already parsed tree. config must be
// valid.
func NewEngine(tree *syntax.Tree, config Config) *Engine {
	var pf prefilter.Prefilter
	if config.EnablePrefilter && !tree.LeadingAnchor() {
		extractorConfig := literal.DefaultConfig()
		extractorConfig.MaxLiterals = config.MaxLiterals
		prefixes := literal.New(extractorConfig).ExtractPrefixes(tree)
		pf = prefilter.NewBuilder(prefixes).Build()
	}

	return &Engine{
		tree:      tree,
		matcher:   backtrack.New(tree, config.matcherConfig()),
		prefilter: pf,
		strategy:  selectStrategy(tree, pf),
		config:    config,
		anchorEnd: tree.TrailingAnchor(),
	}
}

// Pattern returns the source text of the compiled pattern.
func (e *Engine) Pattern() string {
	return e.tree.Pattern
}

// Tree returns the parsed pattern.
func (e *Engine) Tree() *syntax.Tree {
	return e.tree
}

// NumGroups returns the number of capture groups in the pattern.
func (e *Engine) NumGroups() int {
	return e.tree.NumGroups
}

// Strategy returns the scanning strategy selected at compile time.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns a snapshot of the scanning statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Attempts:        atomic.LoadUint64(&e.stats.Attempts),
		PrefilterHits:   atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses: atomic.LoadUint64(&e.stats.PrefilterMisses),
		StepLimitHits:   atomic.LoadUint64(&e.stats.StepLimitHits),
	}
}

// ResetStats resets scanning statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Attempts, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.StepLimitHits, 0)
}
