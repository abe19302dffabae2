package sim

// MulliganRule selects how redraws shrink (or don't) across mulligans.
type MulliganRule string

const (
	// RuleFreeRedraw always redraws a full hand and bottoms one card per
	// mulligan taken once the hand is kept.
	RuleFreeRedraw MulliganRule = "FREE_REDRAW"
	// RuleShrink draws one fewer card per mulligan taken.
	RuleShrink MulliganRule = "SHRINK"
)

// MulliganStrategy selects how freshly drawn hands are judged.
type MulliganStrategy string

const (
	StrategyNever      MulliganStrategy = "NEVER"
	StrategyLandCount  MulliganStrategy = "LAND_COUNT"
	StrategyEarlyPlay  MulliganStrategy = "EARLY_PLAY"
	StrategyAggressive MulliganStrategy = "AGGRESSIVE"
)

// MulliganConfig configures the pre-game keep/mulligan loop.
type MulliganConfig struct {
	Rule     MulliganRule
	Strategy MulliganStrategy
	MinLands int
	MaxLands int
}

func (c MulliganConfig) withDefaults() MulliganConfig {
	if c.Rule == "" {
		c.Rule = RuleFreeRedraw
	}
	if c.Strategy == "" {
		c.Strategy = StrategyNever
	}
	if c.MinLands == 0 {
		c.MinLands = 2
	}
	if c.MaxLands == 0 {
		c.MaxLands = 5
	}
	return c
}

// openingHand draws and settles the opening hand, looping until a hand is
// kept. The loop is bounded by the starting hand size: a player cannot
// mulligan below zero cards, so every game keeps a hand.
func (e *Engine) openingHand(g *Game) {
	cfg := e.params.Mulligan.withDefaults()
	size := e.params.HandSize

	g.draw(size)
	for g.Mulligans < size {
		if e.keepHand(g.Hand, cfg) {
			break
		}
		g.Mulligans++
		e.redraw(g, cfg)
	}

	if cfg.Rule == RuleFreeRedraw && g.Mulligans > 0 {
		e.bottomCards(g, cfg, g.Mulligans)
	}
	g.logf("kept hand of %d after %d mulligan(s)", len(g.Hand), g.Mulligans)
}

// redraw shuffles the hand back and draws the next hand per the rule.
func (e *Engine) redraw(g *Game, cfg MulliganConfig) {
	g.Library = append(g.Library, g.Hand...)
	g.Hand = nil
	g.shuffle()

	next := e.params.HandSize
	if cfg.Rule == RuleShrink {
		next -= g.Mulligans
		if next < 0 {
			next = 0
		}
	}
	g.draw(next)
	g.logf("mulligan %d: draw %d", g.Mulligans, next)
}

// keepHand applies the configured strategy to a freshly drawn hand.
func (e *Engine) keepHand(hand []*Card, cfg MulliganConfig) bool {
	lands := 0
	cheapest := -1
	for _, c := range hand {
		if c.Rec.IsLand() {
			lands++
			continue
		}
		if mv := c.Rec.ManaValue(); cheapest == -1 || mv < cheapest {
			cheapest = mv
		}
	}

	switch cfg.Strategy {
	case StrategyLandCount:
		return lands >= cfg.MinLands && lands <= cfg.MaxLands
	case StrategyEarlyPlay:
		// land bounds plus something castable in the first few turns
		return lands >= cfg.MinLands && lands <= cfg.MaxLands &&
			cheapest >= 0 && cheapest <= 3
	case StrategyAggressive:
		// demands a play by turn 2
		return lands >= cfg.MinLands && lands <= cfg.MaxLands &&
			cheapest >= 0 && cheapest <= 2
	default:
		return true
	}
}

// bottomCards puts n cards from the kept hand on the bottom of the
// library, deterministically: keep lands when short of the minimum, shed
// lands when over the maximum, otherwise shed the most expensive spells.
func (e *Engine) bottomCards(g *Game, cfg MulliganConfig, n int) {
	for i := 0; i < n && len(g.Hand) > 0; i++ {
		victim := e.bottomChoice(g, cfg)
		g.removeFromHand(victim)
		g.Library = append(g.Library, victim)
		g.logf("bottom %s", victim.Name())
	}
}

func (e *Engine) bottomChoice(g *Game, cfg MulliganConfig) *Card {
	lands := g.landsInHand()

	if lands > cfg.MaxLands {
		for _, c := range g.Hand {
			if c.Rec.IsLand() {
				return c
			}
		}
	}

	// highest mana value spell, hand-order ties; lands only as a last
	// resort unless we are over the minimum anyway
	var spell *Card
	spellValue := -1
	for _, c := range g.Hand {
		if c.Rec.IsLand() {
			continue
		}
		if mv := c.Rec.ManaValue(); mv > spellValue {
			spell = c
			spellValue = mv
		}
	}
	if spell != nil {
		return spell
	}
	return g.Hand[0]
}
