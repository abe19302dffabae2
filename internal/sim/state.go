package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// Card is a per-game mutable instance of a CardRecord. Instances are owned
// by exactly one game and never shared across iterations.
type Card struct {
	Rec       *deck.CardRecord
	EnteredOn int  // turn the card entered the battlefield; immutable once set
	Tapped    bool // entered tapped this turn, or already used its activation
}

func newCard(rec *deck.CardRecord) *Card {
	return &Card{Rec: rec}
}

// Name returns the underlying record name.
func (c *Card) Name() string {
	return c.Rec.Name
}

// Game holds the full mutable state of one simulated game.
type Game struct {
	ID          string
	Library     []*Card // ordered; index 0 is the top
	Hand        []*Card
	Battlefield []*Card
	Graveyard   []*Card
	Turn        int
	LifeLoss    int
	Log         []string
	Mulligans   int

	rng    *rand.Rand
	params Params

	// per-turn scratch, reset at untap
	burst             *mana.Pool
	reserved          int // mana committed to upkeep untap costs
	drawnThisTurn     int
	treasuresThisTurn int
}

func newGame(cards []*deck.CardRecord, params Params, rng *rand.Rand) *Game {
	g := &Game{
		ID:     uuid.NewString(),
		rng:    rng,
		params: params,
		burst:  mana.NewPool(),
	}
	g.Library = make([]*Card, 0, len(cards))
	for _, rec := range cards {
		g.Library = append(g.Library, newCard(rec))
	}
	return g
}

func (g *Game) logf(format string, args ...any) {
	g.Log = append(g.Log, fmt.Sprintf(format, args...))
}

func (g *Game) shuffle() {
	g.rng.Shuffle(len(g.Library), func(i, j int) {
		g.Library[i], g.Library[j] = g.Library[j], g.Library[i]
	})
}

// draw moves up to n cards from the top of the library to the hand and
// returns how many were actually drawn.
func (g *Game) draw(n int) int {
	drawn := 0
	for i := 0; i < n && len(g.Library) > 0; i++ {
		card := g.Library[0]
		g.Library = g.Library[1:]
		g.Hand = append(g.Hand, card)
		drawn++
	}
	return drawn
}

// removeCard removes the first occurrence of c from the slice.
func removeCard(cards []*Card, c *Card) []*Card {
	for i, v := range cards {
		if v == c {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}

func (g *Game) removeFromHand(c *Card) {
	g.Hand = removeCard(g.Hand, c)
}

func (g *Game) removeFromLibrary(c *Card) {
	g.Library = removeCard(g.Library, c)
}

func (g *Game) removeFromBattlefield(c *Card) {
	g.Battlefield = removeCard(g.Battlefield, c)
}

// enterBattlefield places a card onto the battlefield on the current turn.
func (g *Game) enterBattlefield(c *Card, tapped bool) {
	c.EnteredOn = g.Turn
	c.Tapped = tapped
	g.Battlefield = append(g.Battlefield, c)
}

func (g *Game) discard(c *Card) {
	g.removeFromHand(c)
	g.Graveyard = append(g.Graveyard, c)
}

func (g *Game) landsInHand() int {
	n := 0
	for _, c := range g.Hand {
		if c.Rec.IsLand() {
			n++
		}
	}
	return n
}

func (g *Game) landsInPlay() int {
	n := 0
	for _, c := range g.Battlefield {
		if c.Rec.IsLand() {
			n++
		}
	}
	return n
}

func (g *Game) untappedLandsInPlay() int {
	n := 0
	for _, c := range g.Battlefield {
		if c.Rec.IsLand() && !c.Tapped {
			n++
		}
	}
	return n
}

func (g *Game) basicsInPlay() int {
	n := 0
	for _, c := range g.Battlefield {
		if c.Rec.IsBasic() {
			n++
		}
	}
	return n
}

// basicTypeInPlay reports whether a battlefield land carries one of the
// given basic subtypes.
func (g *Game) basicTypeInPlay(types []mana.Color) bool {
	for _, c := range g.Battlefield {
		if c.Rec.Land == nil {
			continue
		}
		for _, bt := range c.Rec.Land.BasicTypes {
			if mana.ContainsColor(types, bt) {
				return true
			}
		}
	}
	return false
}

// boardProduces reports whether any battlefield permanent can produce the
// given color.
func (g *Game) boardProduces(color mana.Color) bool {
	for _, c := range g.Battlefield {
		if mana.ContainsColor(c.Rec.Produces, color) {
			return true
		}
	}
	return false
}

// sources flattens the battlefield into availability sources for the given
// turn. Lands tap regardless of when they entered; other producers wait a
// turn unless flagged with haste.
func (g *Game) sources() []mana.Source {
	out := make([]mana.Source, 0, len(g.Battlefield))
	for _, c := range g.Battlefield {
		rec := c.Rec
		switch {
		case rec.IsLand():
			out = append(out, mana.Source{
				Colors:    rec.Produces,
				Base:      1,
				EnteredOn: c.EnteredOn,
				Ready:     !c.Tapped,
				Filter:    rec.Land.Cycle == deck.CycleFilter,
			})
		case rec.Producer != nil:
			ready := !c.Tapped && (rec.Producer.Haste || c.EnteredOn < g.Turn)
			out = append(out, mana.Source{
				Colors:    rec.Produces,
				Base:      rec.Producer.Base,
				Growth:    rec.Producer.Growth,
				EnteredOn: c.EnteredOn,
				Ready:     ready,
			})
		}
	}
	return out
}

// availability computes the sustained mana pool for the current turn,
// minus any mana reserved during upkeep.
func (g *Game) availability() *mana.Pool {
	pool := mana.Compute(g.sources(), g.Turn)
	if g.reserved > 0 {
		pool.Spend(g.reserved)
	}
	return pool
}
