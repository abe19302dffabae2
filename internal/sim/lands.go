package sim

import (
	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// FetchWeights parameterizes fetch-target scoring. The defaults are tuned
// heuristics, not derived values; callers may substitute their own.
type FetchWeights struct {
	MissingKeyColor int // land covers a color a key card needs that the board lacks
	EarlyDual       int // dual land fetched on turn 1-2
	MultiColor      int // land produces two or more colors
	PerMissingColor int // per additional deck color covered that the board lacks
	LateShock       int // shock land fetched on turn 6+ (negative)
}

// DefaultFetchWeights returns the standard scoring weights.
func DefaultFetchWeights() FetchWeights {
	return FetchWeights{
		MissingKeyColor: 300,
		EarlyDual:       1000,
		MultiColor:      100,
		PerMissingColor: 250,
		LateShock:       -100,
	}
}

// chooseLand picks the land to play from hand, or nil if the hand has none.
// Priority: fetch lands whose activation the remaining untapped mana can
// pay, untapped non-bounce lands, bounce lands with a return target, then
// anything. Ties break by hand order.
func (e *Engine) chooseLand(g *Game, untappedRemaining int) *Card {
	var firstLand *Card
	var bounce *Card
	hasNonBounceInPlay := false
	for _, c := range g.Battlefield {
		if c.Rec.IsLand() && !c.Rec.IsBounce() {
			hasNonBounceInPlay = true
			break
		}
	}

	for _, c := range g.Hand {
		if !c.Rec.IsLand() {
			continue
		}
		if firstLand == nil {
			firstLand = c
		}
		if c.Rec.IsFetch() && untappedRemaining >= c.Rec.Land.FetchCost {
			return c
		}
	}

	for _, c := range g.Hand {
		if !c.Rec.IsLand() || c.Rec.IsFetch() || c.Rec.IsBounce() {
			continue
		}
		if tapped, _ := e.entersTapped(g, c.Rec); !tapped {
			return c
		}
	}

	for _, c := range g.Hand {
		if c.Rec.IsBounce() {
			if bounce == nil {
				bounce = c
			}
			if hasNonBounceInPlay {
				return c
			}
		}
	}

	return firstLand
}

// entersTapped evaluates a land's tapped-entry rule against the current
// battlefield. It is computed at placement time and never cached, since the
// answer changes as the board grows. The second return reports a shock land
// entering untapped by paying 2 life.
func (e *Engine) entersTapped(g *Game, rec *deck.CardRecord) (tapped, shockPaid bool) {
	switch rec.Land.Cycle {
	case deck.CycleTapped:
		return true, false
	case deck.CycleShock:
		if g.Turn <= e.params.ShockPayTurn {
			return false, true
		}
		return true, false
	case deck.CycleCheck:
		return !g.basicTypeInPlay(rec.Produces), false
	case deck.CycleFast:
		return g.landsInPlay() > 2, false
	case deck.CycleBattle:
		return g.basicsInPlay() < 2, false
	case deck.CycleBounce:
		return true, false
	case deck.CycleCrowd:
		return !e.params.Commander, false
	default:
		return false, false
	}
}

// playLand resolves a land drop from hand: bounce returns, tapped-entry
// evaluation, and shock life payment.
func (e *Engine) playLand(g *Game, c *Card) {
	g.removeFromHand(c)

	if c.Rec.IsBounce() {
		if returned := e.chooseBounceReturn(g); returned != nil {
			g.removeFromBattlefield(returned)
			returned.Tapped = false
			g.Hand = append(g.Hand, returned)
			g.logf("turn %d: %s returns %s to hand", g.Turn, c.Name(), returned.Name())
		}
	}

	tapped, shockPaid := e.entersTapped(g, c.Rec)
	if shockPaid {
		g.LifeLoss += 2
		g.logf("turn %d: pay 2 life for %s to enter untapped", g.Turn, c.Name())
	}
	g.enterBattlefield(c, tapped)
	if tapped {
		g.logf("turn %d: play %s (tapped)", g.Turn, c.Name())
	} else {
		g.logf("turn %d: play %s", g.Turn, c.Name())
	}
}

// chooseBounceReturn picks the land a bounce land returns to hand: a basic
// if one is in play, otherwise the first non-bounce land, otherwise any.
func (e *Engine) chooseBounceReturn(g *Game) *Card {
	var nonBounce, any *Card
	for _, c := range g.Battlefield {
		if !c.Rec.IsLand() {
			continue
		}
		if any == nil {
			any = c
		}
		if c.Rec.IsBasic() {
			return c
		}
		if nonBounce == nil && !c.Rec.IsBounce() {
			nonBounce = c
		}
	}
	if nonBounce != nil {
		return nonBounce
	}
	return any
}

// fetchPass activates battlefield fetch lands whose cost the remaining pool
// covers. Each activation sacrifices the fetch before scoring targets so
// the snapshot reflects the post-fetch board.
func (e *Engine) fetchPass(g *Game, pool *mana.Pool) {
	for {
		var fetch *Card
		for _, c := range g.Battlefield {
			if c.Rec.IsFetch() && !c.Tapped && pool.Total >= c.Rec.Land.FetchCost {
				fetch = c
				break
			}
		}
		if fetch == nil {
			return
		}

		pool.Spend(fetch.Rec.Land.FetchCost)
		g.removeFromBattlefield(fetch)
		g.Graveyard = append(g.Graveyard, fetch)

		target := e.bestFetchTarget(g, e.fetchCandidates(g, fetch.Rec.Land.FetchBasicsOnly))
		if target == nil {
			g.logf("turn %d: %s finds no target", g.Turn, fetch.Name())
			continue
		}

		g.removeFromLibrary(target)
		tapped, shockPaid := e.entersTapped(g, target.Rec)
		if shockPaid {
			g.LifeLoss += 2
			g.logf("turn %d: pay 2 life for %s to enter untapped", g.Turn, target.Name())
		}
		g.enterBattlefield(target, tapped)
		g.logf("turn %d: %s fetches %s", g.Turn, fetch.Name(), target.Name())
	}
}

// fetchCandidates returns the library lands a fetch may retrieve, in
// library order.
func (e *Engine) fetchCandidates(g *Game, basicsOnly bool) []*Card {
	var out []*Card
	for _, c := range g.Library {
		if !c.Rec.IsLand() || c.Rec.IsFetch() {
			continue
		}
		if basicsOnly && !c.Rec.IsBasic() {
			continue
		}
		out = append(out, c)
	}
	return out
}

// bestFetchTarget scores eligible library lands and returns the highest,
// ties broken by library order.
func (e *Engine) bestFetchTarget(g *Game, candidates []*Card) *Card {
	var best *Card
	bestScore := 0
	for _, c := range candidates {
		score := e.scoreFetchTarget(g, c.Rec)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// scoreFetchTarget applies the fetch weights to one candidate land against
// the current (post-sacrifice) battlefield.
func (e *Engine) scoreFetchTarget(g *Game, rec *deck.CardRecord) int {
	w := e.params.Weights
	score := 0

	for _, key := range e.params.KeyCards {
		covered := false
		for _, need := range key.Cost.Colors() {
			if !g.boardProduces(need) && mana.ContainsColor(rec.Produces, need) {
				covered = true
				break
			}
		}
		if covered {
			score += w.MissingKeyColor
			break
		}
	}

	if len(rec.Produces) >= 2 {
		score += w.MultiColor
		if g.Turn <= 2 {
			score += w.EarlyDual
		}
	}

	for _, need := range e.params.DeckColors {
		if !g.boardProduces(need) && mana.ContainsColor(rec.Produces, need) {
			score += w.PerMissingColor
		}
	}

	if rec.Land.Cycle == deck.CycleShock && g.Turn >= 6 {
		score += w.LateShock
	}

	return score
}
