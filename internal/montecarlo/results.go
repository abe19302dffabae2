package montecarlo

import (
	"time"

	"github.com/manacurve/manasim/internal/sim/mana"
)

// TurnSeries is a per-turn statistic: index 0 is turn 1.
type TurnSeries struct {
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"stdDev"`
}

// Playability is the per-turn castability of one key card, in percent.
// Sustained counts only mana from permanents; WithBurst also counts
// one-shot mana produced that turn.
type Playability struct {
	Sustained []float64 `json:"sustained"`
	WithBurst []float64 `json:"withBurst"`
}

// SimulationResults aggregates a complete run.
type SimulationResults struct {
	DeckName   string `json:"deckName"`
	Iterations int    `json:"iterations"`
	Turns      int    `json:"turns"`
	Seed       int64  `json:"seed"`

	Lands         TurnSeries                `json:"lands"`
	UntappedLands TurnSeries                `json:"untappedLands"`
	ManaTotal     TurnSeries                `json:"manaTotal"`
	ManaByColor   map[mana.Color]TurnSeries `json:"manaByColor"`
	LifeLoss      TurnSeries                `json:"lifeLoss"`
	CardsDrawn    TurnSeries                `json:"cardsDrawn"`
	Treasures     TurnSeries                `json:"treasures"`

	KeyCards map[string]Playability `json:"keyCards"`

	Mulligans int `json:"mulligans"`
	HandsKept int `json:"handsKept"`

	// ExampleGames holds the action logs of the first few games as
	// illustrative play sequences.
	ExampleGames [][]string `json:"exampleGames"`

	Elapsed time.Duration `json:"elapsed"`
}

// ComparisonResults pairs the outcomes of a two-deck comparison run.
type ComparisonResults struct {
	A *SimulationResults `json:"a"`
	B *SimulationResults `json:"b"`
}
