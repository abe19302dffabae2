package montecarlo

import (
	"fmt"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim"
)

// SimulationConfig is the immutable input of one run.
type SimulationConfig struct {
	Iterations int
	Turns      int
	HandSize   int
	// Seed fixes the random stream; identical config, deck and seed
	// produce identical results. Zero picks a time-based seed.
	Seed      int64
	Commander bool
	Mulligan  sim.MulliganConfig
	// KeyCards names the spells tracked for playability statistics.
	KeyCards []string
	// ExcludedCategories demotes matching cards to inert spells for the
	// run without changing deck size.
	ExcludedCategories map[deck.Category]bool
	FetchWeights       sim.FetchWeights
	FloodThreshold     int
	ShockPayTurn       int
	// ExampleGames is how many full action logs to keep in the results.
	ExampleGames int
	// ProgressInterval is the completed-iteration cadence of progress
	// callbacks.
	ProgressInterval int
}

func (c SimulationConfig) withDefaults() SimulationConfig {
	if c.HandSize <= 0 {
		c.HandSize = 7
	}
	if c.ExampleGames <= 0 {
		c.ExampleGames = 3
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = 250
	}
	return c
}

// Validate rejects configurations that would produce degenerate
// statistics. It runs once, before the first iteration.
func (c SimulationConfig) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Turns <= 0 {
		return fmt.Errorf("turns must be positive, got %d", c.Turns)
	}
	if c.HandSize < 0 {
		return fmt.Errorf("hand size must not be negative, got %d", c.HandSize)
	}
	for cat := range c.ExcludedCategories {
		if !cat.Valid() {
			return fmt.Errorf("unknown excluded category %q", cat)
		}
	}
	return nil
}
