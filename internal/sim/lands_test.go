package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

func TestEntersTapped_Cycles(t *testing.T) {
	e := testEngine(Params{})

	tests := []struct {
		name        string
		rec         *deck.CardRecord
		turn        int
		battlefield []*deck.CardRecord
		commander   bool
		wantTapped  bool
		wantShock   bool
	}{
		{name: "basic untapped", rec: basicLand("Forest", mana.Green), turn: 1},
		{name: "tapland", rec: landOfCycle("Rugged Highlands", deck.CycleTapped, mana.Red, mana.Green), turn: 1, wantTapped: true},
		{name: "shock early pays life", rec: landOfCycle("Stomping Ground", deck.CycleShock, mana.Red, mana.Green), turn: 3, wantShock: true},
		{name: "shock late tapped", rec: landOfCycle("Stomping Ground", deck.CycleShock, mana.Red, mana.Green), turn: 7, wantTapped: true},
		{
			name: "check without subtype", rec: func() *deck.CardRecord {
				r := landOfCycle("Rootbound Crag", deck.CycleCheck, mana.Red, mana.Green)
				return r
			}(), turn: 2, wantTapped: true,
		},
		{
			name: "check with subtype",
			rec:  landOfCycle("Rootbound Crag", deck.CycleCheck, mana.Red, mana.Green),
			turn: 2, battlefield: []*deck.CardRecord{basicLand("Forest", mana.Green)},
		},
		{
			name: "fast under three lands",
			rec:  landOfCycle("Copperline Gorge", deck.CycleFast, mana.Red, mana.Green),
			turn: 2, battlefield: []*deck.CardRecord{basicLand("Forest", mana.Green)},
		},
		{
			name: "fast at four lands",
			rec:  landOfCycle("Copperline Gorge", deck.CycleFast, mana.Red, mana.Green),
			turn: 4,
			battlefield: []*deck.CardRecord{
				basicLand("Forest", mana.Green), basicLand("Forest", mana.Green), basicLand("Forest", mana.Green),
			},
			wantTapped: true,
		},
		{
			name: "battle needs two basics",
			rec:  landOfCycle("Cinder Glade", deck.CycleBattle, mana.Red, mana.Green),
			turn: 3, battlefield: []*deck.CardRecord{basicLand("Forest", mana.Green)},
			wantTapped: true,
		},
		{
			name: "battle with two basics",
			rec:  landOfCycle("Cinder Glade", deck.CycleBattle, mana.Red, mana.Green),
			turn: 3,
			battlefield: []*deck.CardRecord{
				basicLand("Forest", mana.Green), basicLand("Mountain", mana.Red),
			},
		},
		{name: "bounce always tapped", rec: landOfCycle("Gruul Turf", deck.CycleBounce, mana.Red, mana.Green), turn: 5, wantTapped: true},
		{name: "crowd without commander", rec: landOfCycle("Spire Garden", deck.CycleCrowd, mana.Green), turn: 2, wantTapped: true},
		{name: "crowd in commander", rec: landOfCycle("Spire Garden", deck.CycleCrowd, mana.Green), turn: 2, commander: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := e
			if tt.commander {
				eng = testEngine(Params{Commander: true})
			}
			g := gameOnTurn(eng, tt.turn, nil, tt.battlefield, nil)
			tapped, shockPaid := eng.entersTapped(g, tt.rec)
			assert.Equal(t, tt.wantTapped, tapped, "tapped")
			assert.Equal(t, tt.wantShock, shockPaid, "shock payment")
		})
	}
}

func TestChooseLand_Priority(t *testing.T) {
	e := testEngine(Params{})

	tapland := landOfCycle("Rugged Highlands", deck.CycleTapped, mana.Red, mana.Green)
	forest := basicLand("Forest", mana.Green)
	fetch := fetchLand("Evolving Wilds", 0)
	bounce := landOfCycle("Gruul Turf", deck.CycleBounce, mana.Red, mana.Green)

	// Fetch wins when its activation is payable.
	g := gameOnTurn(e, 2, []*deck.CardRecord{tapland, forest, fetch}, nil, nil)
	got := e.chooseLand(g, 1)
	require.NotNil(t, got)
	assert.Equal(t, "Evolving Wilds", got.Name())

	// Untapped non-bounce beats taplands and bounce lands.
	g = gameOnTurn(e, 2, []*deck.CardRecord{bounce, tapland, forest}, nil, nil)
	got = e.chooseLand(g, 0)
	require.NotNil(t, got)
	assert.Equal(t, "Forest", got.Name())

	// Bounce only with a non-bounce land to return.
	g = gameOnTurn(e, 2, []*deck.CardRecord{bounce}, []*deck.CardRecord{forest}, nil)
	got = e.chooseLand(g, 0)
	require.NotNil(t, got)
	assert.Equal(t, "Gruul Turf", got.Name())

	// Without a return target any remaining land is played.
	g = gameOnTurn(e, 1, []*deck.CardRecord{bounce, tapland}, nil, nil)
	got = e.chooseLand(g, 0)
	require.NotNil(t, got)
	assert.Equal(t, "Rugged Highlands", got.Name())
}

func TestPlayLand_BounceReturnsLand(t *testing.T) {
	e := testEngine(Params{})
	bounce := landOfCycle("Gruul Turf", deck.CycleBounce, mana.Red, mana.Green)
	g := gameOnTurn(e, 3, []*deck.CardRecord{bounce}, []*deck.CardRecord{basicLand("Forest", mana.Green)}, nil)

	e.playLand(g, g.Hand[0])

	require.Equal(t, 1, len(g.Battlefield))
	assert.Equal(t, "Gruul Turf", g.Battlefield[0].Name())
	assert.True(t, g.Battlefield[0].Tapped)
	require.Equal(t, 1, len(g.Hand))
	assert.Equal(t, "Forest", g.Hand[0].Name())
}

func TestPlayLand_ShockLife(t *testing.T) {
	e := testEngine(Params{})
	shock := landOfCycle("Stomping Ground", deck.CycleShock, mana.Red, mana.Green)
	g := gameOnTurn(e, 2, []*deck.CardRecord{shock}, nil, nil)

	e.playLand(g, g.Hand[0])

	assert.Equal(t, 2, g.LifeLoss)
	assert.False(t, g.Battlefield[0].Tapped)
}

func TestFetchPass(t *testing.T) {
	e := testEngine(Params{})
	fetch := fetchLand("Evolving Wilds", 0)
	g := gameOnTurn(e, 2, nil,
		[]*deck.CardRecord{fetch},
		[]*deck.CardRecord{spell("Shock", "{R}"), basicLand("Mountain", mana.Red)})
	g.Battlefield[0].Tapped = false

	pool := mana.NewPool()
	e.fetchPass(g, pool)

	// Fetch sacrificed, mountain fetched.
	require.Equal(t, 1, len(g.Battlefield))
	assert.Equal(t, "Mountain", g.Battlefield[0].Name())
	assert.Equal(t, 1, len(g.Graveyard))
	assert.Equal(t, 1, len(g.Library))
}

func TestFetchPass_NoTargetIsNoOp(t *testing.T) {
	e := testEngine(Params{})
	fetch := fetchLand("Evolving Wilds", 0)
	g := gameOnTurn(e, 2, nil, []*deck.CardRecord{fetch}, []*deck.CardRecord{spell("Shock", "{R}")})

	e.fetchPass(g, mana.NewPool())

	// The fetch still sacrifices itself; the game goes on.
	assert.Equal(t, 0, len(g.Battlefield))
	assert.Equal(t, 1, len(g.Graveyard))
}

func TestScoreFetchTarget(t *testing.T) {
	keyCost, _ := mana.ParseCost("{1}{U}")
	e := testEngine(Params{
		KeyCards:   []*deck.CardRecord{{Name: "Counterspell", Category: deck.CategorySpell, Cost: keyCost}},
		DeckColors: []mana.Color{mana.Blue, mana.Red},
	})

	island := basicLand("Island", mana.Blue)
	mountain := basicLand("Mountain", mana.Red)
	steamVents := landOfCycle("Steam Vents", deck.CycleShock, mana.Blue, mana.Red)

	// Early game, empty board: the dual dominates.
	g := gameOnTurn(e, 1, nil, nil, nil)
	dualScore := e.scoreFetchTarget(g, steamVents)
	islandScore := e.scoreFetchTarget(g, island)
	assert.Greater(t, dualScore, islandScore)
	// dual: key color 300 + multicolor 100 + early 1000 + two missing colors 500
	assert.Equal(t, 1900, dualScore)
	// island: key color 300 + one missing color 250
	assert.Equal(t, 550, islandScore)

	// Late game with blue covered, the shock is penalized.
	g = gameOnTurn(e, 7, nil, []*deck.CardRecord{island}, nil)
	assert.Equal(t, 100+250-100, e.scoreFetchTarget(g, steamVents))
	assert.Equal(t, 250, e.scoreFetchTarget(g, mountain))
}

func TestBestFetchTarget_TiesByLibraryOrder(t *testing.T) {
	e := testEngine(Params{DeckColors: []mana.Color{mana.Green}})
	a := basicLand("Forest", mana.Green)
	b := basicLand("Forest", mana.Green)
	g := gameOnTurn(e, 3, nil, nil, nil)
	first := newCard(a)
	second := newCard(b)
	g.Library = []*Card{first, second}

	got := e.bestFetchTarget(g, e.fetchCandidates(g, false))
	assert.Same(t, first, got)
}
