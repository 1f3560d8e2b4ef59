// Package rulebased implements ai.Engine with the weighted-scoring
// leading strategy, scenario-routed following strategy, kitty-swap
// selector, and trump-declaration evaluator spec.md §4.7-§4.10
// describe. It generalizes the teacher's rule_based.AI
// (internal/ai/rule_based/*.go) — which only ever had to pick one card
// per decision — into combo-aware strategies over the full Tractor
// decision surface.
package rulebased

import (
	"os"

	"github.com/charmbracelet/log"
)

// Weights tunes the leading-strategy scoring function (spec.md §4.7).
// Defaults are calibrated by hand the way the teacher's
// BiddingEvaluator.threshold is a single tunable constant; tests can
// override individual weights to isolate one scoring factor.
type Weights struct {
	ComboTypeBonus      float64 // per combo-type step: single < pair < tractor
	RankBonus           float64 // per rank step above Two
	BiggestRemaining    float64
	PointCardPenalty    float64
	SuitLengthBonus     float64 // per card held in the led group
	VoidForcingBonus    float64
	JokerConservation   float64 // penalty for leading a joker, scaled by cards remaining
	TrumpLowConservation float64
	MultiComboBonus     float64
}

// DefaultWeights match the relative emphasis spec.md §4.7 describes:
// intrinsic strength and biggest-remaining dominate, conservation and
// point-card penalties are secondary nudges.
func DefaultWeights() Weights {
	return Weights{
		ComboTypeBonus:       12,
		RankBonus:            1.5,
		BiggestRemaining:     15,
		PointCardPenalty:     8,
		SuitLengthBonus:      2,
		VoidForcingBonus:     10,
		JokerConservation:    20,
		TrumpLowConservation: 4,
		MultiComboBonus:      18,
	}
}

// Config configures an Engine, generalizing the teacher's
// ai.Difficulty enum and BiddingEvaluator{threshold} constructor
// pattern into one struct passed to New.
type Config struct {
	// EnableMemoryCache turns on keying Memory.Build results by
	// (round ID, completed-trick count, current-trick length), per
	// spec.md §4.5's caching note; the trick contents are not hashed. Off by default since full recompute is always
	// correct and this repo has no long-running session to amortize
	// the cache over in tests.
	EnableMemoryCache bool
	Weights           Weights
	// AssumedInitialTrumpCount seeds memory.TrumpExhaustionLevel's
	// denominator; a double Tractor deck typically deals each seat
	// around 6-8 trump cards pre-kitty-swap.
	AssumedInitialTrumpCount int
}

// DefaultConfig returns sane defaults for production use.
func DefaultConfig() Config {
	return Config{
		EnableMemoryCache:        false,
		Weights:                  DefaultWeights(),
		AssumedInitialTrumpCount: 8,
	}
}

// Engine implements ai.Engine over the rule-based strategies in this
// package. Unlike the teacher's package-global logger pattern (there
// isn't one — the teacher's TUI owns all output), Logger is injected so
// multiple Engines in the same process don't fight over global state, matching spec.md §5's per-session
// component requirement.
type Engine struct {
	Config Config
	Logger *log.Logger

	cache map[cacheKey]cachedMemory
}

// New builds an Engine. A nil logger falls back to a stderr logger at
// the package's default options, the way the teacher's
// createLogger(logFile) constructs one per process (internal/ai has no
// package-global logger to fall back to, since the teacher's TUI owns
// all output instead).
func New(cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{})
	}
	return &Engine{Config: cfg, Logger: logger, cache: make(map[cacheKey]cachedMemory)}
}
