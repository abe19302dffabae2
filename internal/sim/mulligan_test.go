package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

func mixedDeck(lands, spells int) []*deck.CardRecord {
	cards := make([]*deck.CardRecord, 0, lands+spells)
	forest := basicLand("Forest", mana.Green)
	for i := 0; i < lands; i++ {
		cards = append(cards, forest)
	}
	bolt := spell("Lightning Bolt", "{R}")
	for i := 0; i < spells; i++ {
		cards = append(cards, bolt)
	}
	return cards
}

func TestKeepHand_Strategies(t *testing.T) {
	cfg := MulliganConfig{MinLands: 2, MaxLands: 5}
	forest := basicLand("Forest", mana.Green)

	hand := func(recs ...*deck.CardRecord) []*Card {
		out := make([]*Card, 0, len(recs))
		for _, r := range recs {
			out = append(out, newCard(r))
		}
		return out
	}

	e := testEngine(Params{})

	twoLandsBolt := hand(forest, forest, spell("Lightning Bolt", "{R}"))
	noLands := hand(spell("Lightning Bolt", "{R}"))
	allLands := hand(forest, forest, forest, forest, forest, forest)
	twoLandsBigSpell := hand(forest, forest, spell("Expropriate", "{7}{U}{U}"))

	cfg.Strategy = StrategyNever
	assert.True(t, e.keepHand(noLands, cfg))
	assert.True(t, e.keepHand(allLands, cfg))

	cfg.Strategy = StrategyLandCount
	assert.True(t, e.keepHand(twoLandsBolt, cfg))
	assert.False(t, e.keepHand(noLands, cfg))
	assert.False(t, e.keepHand(allLands, cfg))

	cfg.Strategy = StrategyEarlyPlay
	assert.True(t, e.keepHand(twoLandsBolt, cfg))
	assert.False(t, e.keepHand(twoLandsBigSpell, cfg))

	cfg.Strategy = StrategyAggressive
	assert.True(t, e.keepHand(twoLandsBolt, cfg))
	assert.False(t, e.keepHand(twoLandsBigSpell, cfg))
}

func TestOpeningHand_NeverStrategyKeepsFirst(t *testing.T) {
	e := testEngine(Params{HandSize: 7, Mulligan: MulliganConfig{Strategy: StrategyNever}})
	g := newGame(mixedDeck(24, 36), e.params, testRNG())
	g.shuffle()

	e.openingHand(g)
	assert.Equal(t, 7, len(g.Hand))
	assert.Equal(t, 0, g.Mulligans)
}

func TestOpeningHand_FreeRedrawBottoms(t *testing.T) {
	e := testEngine(Params{
		HandSize: 7,
		Mulligan: MulliganConfig{Rule: RuleFreeRedraw, Strategy: StrategyLandCount, MinLands: 2, MaxLands: 5},
	})

	// An all-spell deck never satisfies the land minimum: the loop runs
	// out of mulligans, keeps, and bottoms one card per mulligan taken.
	g := newGame(mixedDeck(0, 60), e.params, testRNG())
	g.shuffle()
	e.openingHand(g)

	assert.Equal(t, 7, g.Mulligans)
	assert.Equal(t, 0, len(g.Hand))
	assert.Equal(t, 60, len(g.Library))
}

func TestOpeningHand_ShrinkRule(t *testing.T) {
	e := testEngine(Params{
		HandSize: 7,
		Mulligan: MulliganConfig{Rule: RuleShrink, Strategy: StrategyLandCount, MinLands: 2, MaxLands: 5},
	})

	g := newGame(mixedDeck(0, 60), e.params, testRNG())
	g.shuffle()
	e.openingHand(g)

	// Each mulligan shrinks the redraw; the loop bottoms nothing.
	assert.Equal(t, 7, g.Mulligans)
	assert.Equal(t, 0, len(g.Hand))
	assert.Equal(t, 60, len(g.Library))
}

func TestOpeningHand_KeepsReasonableHand(t *testing.T) {
	e := testEngine(Params{
		HandSize: 7,
		Mulligan: MulliganConfig{Rule: RuleFreeRedraw, Strategy: StrategyLandCount, MinLands: 2, MaxLands: 5},
	})

	g := newGame(mixedDeck(24, 36), e.params, testRNG())
	g.shuffle()
	e.openingHand(g)

	require.Equal(t, 7-g.Mulligans, len(g.Hand))
	lands := g.landsInHand()
	if g.Mulligans < 7 {
		assert.GreaterOrEqual(t, lands, 0)
	}
	// Zone conservation: hand + library account for the whole deck.
	assert.Equal(t, 60, len(g.Hand)+len(g.Library))
}

func TestBottomChoice_OverMaxShedsLands(t *testing.T) {
	e := testEngine(Params{HandSize: 7})
	cfg := MulliganConfig{MinLands: 2, MaxLands: 3}

	g := gameOnTurn(e, 0, []*deck.CardRecord{
		basicLand("Forest", mana.Green), basicLand("Forest", mana.Green),
		basicLand("Forest", mana.Green), basicLand("Forest", mana.Green),
		spell("Lightning Bolt", "{R}"),
	}, nil, nil)

	assert.Equal(t, "Forest", e.bottomChoice(g, cfg).Name())
}

func TestBottomChoice_UnderMinKeepsLands(t *testing.T) {
	e := testEngine(Params{HandSize: 7})
	cfg := MulliganConfig{MinLands: 2, MaxLands: 5}

	g := gameOnTurn(e, 0, []*deck.CardRecord{
		basicLand("Forest", mana.Green),
		spell("Lightning Bolt", "{R}"),
		spell("Expropriate", "{7}{U}{U}"),
	}, nil, nil)

	assert.Equal(t, "Expropriate", e.bottomChoice(g, cfg).Name())
}
