package sim

import (
	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// castPhase identifies one of the scheduler's five ordered phases.
type castPhase int

const (
	phaseReducers castPhase = iota // cost reducers first so discounts apply all turn
	phaseProducers
	phaseRamp
	phaseDraw
	phaseTreasure
)

var castPhaseNames = map[castPhase]string{
	phaseReducers:  "REDUCERS",
	phaseProducers: "PRODUCERS",
	phaseRamp:      "RAMP",
	phaseDraw:      "DRAW",
	phaseTreasure:  "TREASURE",
}

func (p castPhase) String() string {
	if name, ok := castPhaseNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// categories each phase considers. Rituals resolve with treasures: both
// yield burst mana, the lowest casting priority.
var phaseCategories = map[castPhase][]deck.Category{
	phaseReducers:  {deck.CategoryCostReducer},
	phaseProducers: {deck.CategoryArtifact, deck.CategoryCreature},
	phaseRamp:      {deck.CategoryRampSpell, deck.CategoryExploration},
	phaseDraw:      {deck.CategoryDrawSpell},
	phaseTreasure:  {deck.CategoryTreasure, deck.CategoryRitual},
}

// castingPhases runs the five phases in order, each looping "cast cheapest
// affordable, repeat" to a fixed point. The pool is spent down as spells
// resolve; burst mana accumulates separately on the game.
func (e *Engine) castingPhases(g *Game, pool *mana.Pool) {
	for ph := phaseReducers; ph <= phaseTreasure; ph++ {
		for {
			rs := g.reductions()
			c := e.cheapestCastable(g, pool, rs, ph)
			if c == nil {
				break
			}
			e.castSpell(g, pool, c, rs.DiscountFor(string(c.Rec.Category), c.Rec.Cost))
		}
	}
}

// reductions collects the cost reductions active on the battlefield.
func (g *Game) reductions() *mana.ReductionSet {
	rs := mana.NewReductionSet()
	for _, c := range g.Battlefield {
		spec := c.Rec.Reducer
		if spec == nil {
			continue
		}
		colors := spec.Colors
		categories := spec.Categories
		rs.Add(&mana.Reduction{
			ID:     c.Name(),
			Amount: spec.Amount,
			AppliesTo: func(category string, cost mana.Cost) bool {
				if len(colors) > 0 {
					match := false
					for _, color := range colors {
						if cost.Pips[color] > 0 {
							match = true
							break
						}
					}
					if !match {
						return false
					}
				}
				if len(categories) > 0 {
					match := false
					for _, cat := range categories {
						if string(cat) == category {
							match = true
							break
						}
					}
					if !match {
						return false
					}
				}
				return true
			},
		})
	}
	return rs
}

// cheapestCastable returns the affordable hand card with the lowest
// effective cost for the phase, ties broken by hand order. Ramp spells with
// no matching library land are skipped entirely.
func (e *Engine) cheapestCastable(g *Game, pool *mana.Pool, rs *mana.ReductionSet, ph castPhase) *Card {
	var best *Card
	bestCost := 0
	for _, c := range g.Hand {
		if !phaseMatches(ph, c.Rec.Category) {
			continue
		}
		discount := rs.DiscountFor(string(c.Rec.Category), c.Rec.Cost)
		if !pool.CanPay(c.Rec.Cost, discount) {
			continue
		}
		if c.Rec.Ramp != nil && len(e.fetchCandidates(g, c.Rec.Ramp.BasicsOnly)) == 0 {
			continue
		}
		eff := mana.EffectiveCost(c.Rec.Cost, discount)
		if best == nil || eff < bestCost {
			best = c
			bestCost = eff
		}
	}
	return best
}

func phaseMatches(ph castPhase, cat deck.Category) bool {
	for _, c := range phaseCategories[ph] {
		if c == cat {
			return true
		}
	}
	return false
}

// castSpell pays for and resolves one spell from hand.
func (e *Engine) castSpell(g *Game, pool *mana.Pool, c *Card, discount int) {
	eff := mana.EffectiveCost(c.Rec.Cost, discount)
	pool.Spend(eff)
	g.removeFromHand(c)
	g.logf("turn %d: cast %s for %d", g.Turn, c.Name(), eff)

	rec := c.Rec
	switch rec.Category {
	case deck.CategoryCostReducer, deck.CategoryExploration:
		g.enterBattlefield(c, false)

	case deck.CategoryArtifact, deck.CategoryCreature:
		if rec.Producer != nil {
			e.payETB(g, rec.Producer.ETB, c)
			g.enterBattlefield(c, rec.Producer.EntersTapped)
			if rec.Producer.Haste && !rec.Producer.EntersTapped {
				pool.Add(rec.Producer.Base, rec.Produces)
			}
		} else {
			g.enterBattlefield(c, false)
		}

	case deck.CategoryRampSpell:
		e.resolveRamp(g, c)
		g.Graveyard = append(g.Graveyard, c)

	case deck.CategoryDrawSpell:
		if rec.Draw != nil && rec.Draw.PerTurn {
			g.enterBattlefield(c, false)
			break
		}
		count := 1
		if rec.Draw != nil {
			count = rec.Draw.Count
		}
		drawn := g.draw(count)
		g.drawnThisTurn += drawn
		g.Graveyard = append(g.Graveyard, c)
		g.logf("turn %d: %s draws %d", g.Turn, c.Name(), drawn)

	case deck.CategoryTreasure:
		if rec.Treasure != nil && rec.Treasure.PerTurn {
			g.enterBattlefield(c, false)
			break
		}
		count := 1
		if rec.Treasure != nil {
			count = rec.Treasure.Count
		}
		g.addTreasures(count)
		g.Graveyard = append(g.Graveyard, c)

	case deck.CategoryRitual:
		amount := 0
		if rec.Ritual != nil {
			amount = rec.Ritual.Amount
		}
		g.burst.Add(amount, rec.Produces)
		g.Graveyard = append(g.Graveyard, c)
		g.logf("turn %d: %s adds %d burst mana", g.Turn, c.Name(), amount)

	default:
		g.Graveyard = append(g.Graveyard, c)
	}
}

// addTreasures creates treasure tokens: burst mana of any color.
func (g *Game) addTreasures(count int) {
	if count <= 0 {
		return
	}
	g.burst.Add(count, mana.AllColors)
	g.treasuresThisTurn += count
	g.logf("turn %d: create %d treasure(s)", g.Turn, count)
}

// payETB resolves an enters-the-battlefield cost before the permanent is
// placed. Dead-ends (nothing to discard or sacrifice) resolve as no-ops.
func (e *Engine) payETB(g *Game, etb deck.ETBCost, entering *Card) {
	switch etb {
	case deck.ETBDiscard:
		if victim := e.discardChoice(g); victim != nil {
			g.discard(victim)
			g.logf("turn %d: %s discards %s", g.Turn, entering.Name(), victim.Name())
		}
	case deck.ETBImprint:
		if victim := e.discardChoice(g); victim != nil {
			g.discard(victim)
			g.logf("turn %d: %s imprints %s", g.Turn, entering.Name(), victim.Name())
		}
	case deck.ETBSacrificeLand:
		if sac := e.chooseSacrificeLand(g); sac != nil {
			g.removeFromBattlefield(sac)
			g.Graveyard = append(g.Graveyard, sac)
			g.logf("turn %d: %s sacrifices %s", g.Turn, entering.Name(), sac.Name())
		}
	case deck.ETBDiscardHand:
		n := len(g.Hand)
		for len(g.Hand) > 0 {
			g.discard(g.Hand[0])
		}
		if n > 0 {
			g.logf("turn %d: %s discards hand (%d)", g.Turn, entering.Name(), n)
		}
	}
}

// discardChoice picks the card to pitch: prefer non-key-cards, then lowest
// mana value, then hand order.
func (e *Engine) discardChoice(g *Game) *Card {
	keyNames := make(map[string]bool, len(e.params.KeyCards))
	for _, k := range e.params.KeyCards {
		keyNames[k.Name] = true
	}

	var best *Card
	bestKey := true
	bestValue := 0
	for _, c := range g.Hand {
		isKey := keyNames[c.Name()]
		mv := c.Rec.ManaValue()
		better := false
		switch {
		case best == nil:
			better = true
		case !isKey && bestKey:
			better = true
		case isKey == bestKey && mv < bestValue:
			better = true
		}
		if better {
			best = c
			bestKey = isKey
			bestValue = mv
		}
	}
	return best
}

// chooseSacrificeLand prefers basics, then non-bounce nonbasics, then
// bounce lands; ties by battlefield order.
func (e *Engine) chooseSacrificeLand(g *Game) *Card {
	var nonBounce, bounce *Card
	for _, c := range g.Battlefield {
		if !c.Rec.IsLand() {
			continue
		}
		if c.Rec.IsBasic() {
			return c
		}
		if c.Rec.IsBounce() {
			if bounce == nil {
				bounce = c
			}
			continue
		}
		if nonBounce == nil {
			nonBounce = c
		}
	}
	if nonBounce != nil {
		return nonBounce
	}
	return bounce
}

// resolveRamp puts lands from the library onto the battlefield per the ramp
// spell's data, paying any sacrifice first.
func (e *Engine) resolveRamp(g *Game, c *Card) {
	spec := c.Rec.Ramp
	if spec == nil {
		return
	}
	if spec.SacrificeLand {
		if sac := e.chooseSacrificeLand(g); sac != nil {
			g.removeFromBattlefield(sac)
			g.Graveyard = append(g.Graveyard, sac)
			g.logf("turn %d: %s sacrifices %s", g.Turn, c.Name(), sac.Name())
		}
	}
	for i := 0; i < spec.Count; i++ {
		target := e.bestFetchTarget(g, e.fetchCandidates(g, spec.BasicsOnly))
		if target == nil {
			g.logf("turn %d: %s finds no land", g.Turn, c.Name())
			return
		}
		g.removeFromLibrary(target)
		g.enterBattlefield(target, spec.EntersTapped)
		g.logf("turn %d: %s puts %s onto the battlefield", g.Turn, c.Name(), target.Name())
	}
}
