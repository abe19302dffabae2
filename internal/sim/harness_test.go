package sim

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// Record constructors shared by the sim tests. Names follow real cards so
// failures read like game states.

func basicLand(name string, color mana.Color) *deck.CardRecord {
	return &deck.CardRecord{
		Name:     name,
		Category: deck.CategoryLand,
		Produces: []mana.Color{color},
		Land:     &deck.LandSpec{Cycle: deck.CycleBasic, BasicTypes: []mana.Color{color}},
	}
}

func landOfCycle(name string, cycle deck.LandCycle, colors ...mana.Color) *deck.CardRecord {
	return &deck.CardRecord{
		Name:     name,
		Category: deck.CategoryLand,
		Produces: colors,
		Land:     &deck.LandSpec{Cycle: cycle},
	}
}

func fetchLand(name string, cost int) *deck.CardRecord {
	return &deck.CardRecord{
		Name:     name,
		Category: deck.CategoryLand,
		Land:     &deck.LandSpec{Cycle: deck.CycleFetch, FetchCost: cost},
	}
}

func manaRock(name, costStr string, base int, colors ...mana.Color) *deck.CardRecord {
	cost, err := mana.ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return &deck.CardRecord{
		Name:     name,
		Category: deck.CategoryArtifact,
		Cost:     cost,
		Produces: colors,
		Producer: &deck.ProducerSpec{Base: base},
	}
}

func spell(name, costStr string) *deck.CardRecord {
	cost, err := mana.ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return &deck.CardRecord{Name: name, Category: deck.CategorySpell, Cost: cost}
}

func testEngine(params Params) *Engine {
	return NewEngine(params, zap.NewNop())
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// gameOnTurn builds a game mid-progress with the given zones, bypassing
// the opening hand machinery.
func gameOnTurn(e *Engine, turn int, hand, battlefield, library []*deck.CardRecord) *Game {
	g := newGame(nil, e.params, testRNG())
	g.Turn = turn
	for _, rec := range hand {
		g.Hand = append(g.Hand, newCard(rec))
	}
	for _, rec := range battlefield {
		c := newCard(rec)
		c.EnteredOn = 1
		g.Battlefield = append(g.Battlefield, c)
	}
	for _, rec := range library {
		g.Library = append(g.Library, newCard(rec))
	}
	return g
}
