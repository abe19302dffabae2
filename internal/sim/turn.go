package sim

import (
	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// Step represents the fixed per-turn sequence. A turn runs these strictly
// in order with no reentry.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepLandDrop
	StepCasting
	StepExtraLands
	StepFetch
	StepLifeLoss
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:      "UNTAP",
	StepUpkeep:     "UPKEEP",
	StepDraw:       "DRAW",
	StepLandDrop:   "LAND_DROP",
	StepCasting:    "CASTING",
	StepExtraLands: "EXTRA_LANDS",
	StepFetch:      "FETCH",
	StepLifeLoss:   "LIFE_LOSS",
	StepCleanup:    "CLEANUP",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// TurnSnapshot captures the statistics of one completed turn.
type TurnSnapshot struct {
	Turn          int
	Lands         int
	UntappedLands int
	ManaTotal     int
	ManaByColor   map[mana.Color]int
	LifeLoss      int // cumulative
	CardsDrawn    int
	Treasures     int
	// per tracked key card, in params order
	KeyCastable      []bool // with sustained mana only
	KeyCastableBurst []bool // with sustained plus burst mana
}

// Trajectory is the full output of one simulated game.
type Trajectory struct {
	GameID    string
	Snapshots []TurnSnapshot
	Log       []string
	Mulligans int
}

// playTurn advances the game through one full turn and returns its
// snapshot.
func (e *Engine) playTurn(g *Game) TurnSnapshot {
	g.Turn++
	g.burst = mana.NewPool()
	g.reserved = 0
	g.drawnThisTurn = 0
	g.treasuresThisTurn = 0

	e.untapStep(g)
	e.upkeepStep(g)
	e.drawStep(g)

	pool := g.availability()
	e.landDropStep(g, pool)
	e.castingPhases(g, pool)
	e.extraLandSteps(g, pool)
	e.fetchPass(g, pool)
	e.lifeLossStep(g)
	e.cleanupStep(g)

	return e.snapshot(g)
}

func (e *Engine) untapStep(g *Game) {
	for _, c := range g.Battlefield {
		if c.Rec.Producer != nil && c.Rec.Producer.UntapCost > 0 && c.Tapped {
			// stays tapped; the upkeep step decides whether to pay
			continue
		}
		c.Tapped = false
	}
}

// upkeepStep resolves recurring triggers: per-turn draws, per-turn
// treasures, and conditional untaps that cost mana.
func (e *Engine) upkeepStep(g *Game) {
	pool := g.availability()
	for _, c := range g.Battlefield {
		rec := c.Rec
		if rec.Draw != nil && rec.Draw.PerTurn && c.EnteredOn < g.Turn {
			drawn := g.draw(rec.Draw.Count)
			g.drawnThisTurn += drawn
			if drawn > 0 {
				g.logf("turn %d: %s draws %d", g.Turn, c.Name(), drawn)
			}
		}
		if rec.Treasure != nil && rec.Treasure.PerTurn && c.EnteredOn < g.Turn {
			g.addTreasures(rec.Treasure.Count)
		}
		if rec.Producer != nil && rec.Producer.UntapCost > 0 && c.Tapped {
			cost := rec.Producer.UntapCost
			if pool.Total-g.reserved >= cost {
				g.reserved += cost
				c.Tapped = false
				g.logf("turn %d: pay %d to untap %s", g.Turn, cost, c.Name())
			}
		}
	}
}

func (e *Engine) drawStep(g *Game) {
	if g.Turn == 1 && !e.params.Commander {
		return
	}
	drawn := g.draw(1)
	g.drawnThisTurn += drawn
	if drawn == 0 {
		g.logf("turn %d: library empty, no draw", g.Turn)
	}
}

func (e *Engine) landDropStep(g *Game, pool *mana.Pool) {
	c := e.chooseLand(g, pool.Total)
	if c == nil {
		g.logf("turn %d: no land to play", g.Turn)
		return
	}
	e.playLand(g, c)
	if !c.Tapped && c.Rec.Land.Cycle != deck.CycleFilter {
		pool.Add(1, c.Rec.Produces)
	}
}

// extraLandSteps plays additional lands granted by exploration effects in
// play, after the casting phases so a freshly cast effect counts.
func (e *Engine) extraLandSteps(g *Game, pool *mana.Pool) {
	extra := 0
	for _, c := range g.Battlefield {
		if c.Rec.Exploration != nil {
			extra += c.Rec.Exploration.ExtraLands
		}
	}
	for i := 0; i < extra; i++ {
		c := e.chooseLand(g, pool.Total)
		if c == nil {
			return
		}
		e.playLand(g, c)
		if !c.Tapped && c.Rec.Land.Cycle != deck.CycleFilter {
			pool.Add(1, c.Rec.Produces)
		}
	}
}

// lifeLossStep accounts recurring damage from battlefield permanents.
// Shock payments were already added at placement. Probabilistic sources
// roll once per upkeep.
func (e *Engine) lifeLossStep(g *Game) {
	for _, c := range g.Battlefield {
		spec := c.Rec.Upkeep
		if spec == nil {
			continue
		}
		amount := spec.Damage
		if spec.Growth > 0 && g.Turn > c.EnteredOn {
			amount += spec.Growth * (g.Turn - c.EnteredOn)
		}
		if amount <= 0 {
			continue
		}
		if spec.Chance < 1 && g.rng.Float64() >= spec.Chance {
			continue
		}
		g.LifeLoss += amount
		g.logf("turn %d: %s deals %d", g.Turn, c.Name(), amount)
	}
}

// cleanupStep enforces the maximum hand size: lands are discarded first
// when the hand is flooded, otherwise the most expensive spells go.
func (e *Engine) cleanupStep(g *Game) {
	max := e.params.HandSize
	for len(g.Hand) > max {
		victim := e.cleanupDiscard(g)
		if victim == nil {
			return
		}
		g.discard(victim)
		g.logf("turn %d: discard %s to hand size", g.Turn, victim.Name())
	}
}

func (e *Engine) cleanupDiscard(g *Game) *Card {
	if g.landsInHand() > e.params.FloodThreshold {
		for _, c := range g.Hand {
			if c.Rec.IsLand() {
				return c
			}
		}
	}
	var best *Card
	bestValue := -1
	for _, c := range g.Hand {
		if c.Rec.IsLand() {
			continue
		}
		if mv := c.Rec.ManaValue(); mv > bestValue {
			best = c
			bestValue = mv
		}
	}
	if best != nil {
		return best
	}
	if len(g.Hand) > 0 {
		return g.Hand[0]
	}
	return nil
}

// snapshot recomputes availability from the end-of-turn battlefield and
// evaluates key-card castability against it. Key cards are measured
// against the full pool, not the leftovers after casting: the question is
// whether the card could have been cast this turn.
func (e *Engine) snapshot(g *Game) TurnSnapshot {
	pool := g.availability()
	rs := g.reductions()

	snap := TurnSnapshot{
		Turn:          g.Turn,
		Lands:         g.landsInPlay(),
		UntappedLands: g.untappedLandsInPlay(),
		ManaTotal:     pool.Total,
		ManaByColor:   make(map[mana.Color]int, len(mana.AllColors)),
		LifeLoss:      g.LifeLoss,
		CardsDrawn:    g.drawnThisTurn,
		Treasures:     g.treasuresThisTurn,
	}
	for _, c := range mana.AllColors {
		snap.ManaByColor[c] = pool.Of(c)
	}

	withBurst := pool.Copy()
	withBurst.Merge(g.burst)
	for _, key := range e.params.KeyCards {
		discount := rs.DiscountFor(string(key.Category), key.Cost)
		snap.KeyCastable = append(snap.KeyCastable, pool.CanPay(key.Cost, discount))
		snap.KeyCastableBurst = append(snap.KeyCastableBurst, withBurst.CanPay(key.Cost, discount))
	}
	return snap
}
