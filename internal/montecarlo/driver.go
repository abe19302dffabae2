package montecarlo

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// ProgressFunc reports completed iterations out of the total. Calls are
// fire-and-forget: the driver never waits on the consumer.
type ProgressFunc func(completed, total int)

// Driver runs Monte Carlo simulations. Iterations run strictly
// sequentially on the calling goroutine; each one builds and discards its
// own game state, so nothing is shared between them.
type Driver struct {
	logger *zap.Logger
}

// NewDriver creates a driver.
func NewDriver(logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{logger: logger}
}

// Run simulates the deck and aggregates per-turn statistics. Configuration
// errors surface before the first iteration; per-iteration heuristic
// dead-ends never abort the run.
func (d *Driver) Run(cfg SimulationConfig, dk *deck.Deck, progress ProgressFunc) (*SimulationResults, error) {
	return d.run(cfg, dk, progress, 0, cfg.Iterations)
}

// RunComparison simulates two decks under the same configuration. The two
// sub-runs are sequential; the split exists only so progress reporting
// covers both as one range.
func (d *Driver) RunComparison(cfg SimulationConfig, a, b *deck.Deck, progress ProgressFunc) (*ComparisonResults, error) {
	total := 2 * cfg.Iterations
	resA, err := d.run(cfg, a, progress, 0, total)
	if err != nil {
		return nil, err
	}
	resB, err := d.run(cfg, b, progress, cfg.Iterations, total)
	if err != nil {
		return nil, err
	}
	return &ComparisonResults{A: resA, B: resB}, nil
}

func (d *Driver) run(cfg SimulationConfig, dk *deck.Deck, progress ProgressFunc, offset, total int) (*SimulationResults, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dk == nil || dk.Size() == 0 {
		return nil, fmt.Errorf("deck is empty")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	simDeck := dk.Demote(cfg.ExcludedCategories)
	keys := d.resolveKeyCards(cfg.KeyCards, simDeck)

	engine := sim.NewEngine(sim.Params{
		Turns:          cfg.Turns,
		HandSize:       cfg.HandSize,
		Commander:      cfg.Commander,
		KeyCards:       keys,
		DeckColors:     simDeck.SpellColors(),
		Weights:        cfg.FetchWeights,
		Mulligan:       cfg.Mulligan,
		FloodThreshold: cfg.FloodThreshold,
		ShockPayTurn:   cfg.ShockPayTurn,
	}, d.logger)

	d.logger.Info("simulation starting",
		zap.String("deck", dk.Name),
		zap.Int("deck_size", dk.Size()),
		zap.Int("iterations", cfg.Iterations),
		zap.Int("turns", cfg.Turns),
		zap.Int64("seed", seed),
	)
	started := time.Now()

	acc := newAccumulator(cfg.Turns, keys)
	for i := 0; i < cfg.Iterations; i++ {
		traj := engine.Run(simDeck.Cards, rng)
		acc.observe(traj, cfg.ExampleGames)

		completed := i + 1
		if progress != nil && (completed%cfg.ProgressInterval == 0 || completed == cfg.Iterations) {
			progress(offset+completed, total)
		}
	}

	results := acc.finalize(cfg.Iterations)
	results.DeckName = dk.Name
	results.Turns = cfg.Turns
	results.Seed = seed
	results.Elapsed = time.Since(started)

	d.logger.Info("simulation finished",
		zap.String("deck", dk.Name),
		zap.Int("iterations", cfg.Iterations),
		zap.Duration("elapsed", results.Elapsed),
	)
	return results, nil
}

// resolveKeyCards maps tracked names to their deck records. A name missing
// from the deck gets a zero-cost stub so the result shape stays complete.
func (d *Driver) resolveKeyCards(names []string, dk *deck.Deck) []*deck.CardRecord {
	keys := make([]*deck.CardRecord, 0, len(names))
	for _, name := range names {
		if rec := dk.Find(name); rec != nil {
			keys = append(keys, rec)
			continue
		}
		d.logger.Warn("key card not in deck, substituting stub", zap.String("card", name))
		keys = append(keys, deck.StubKeyCard(name))
	}
	return keys
}

// accumulator collects per-iteration trajectories into running sums.
type accumulator struct {
	keys []*deck.CardRecord

	lands         *series
	untappedLands *series
	manaTotal     *series
	manaByColor   map[mana.Color]*series
	lifeLoss      *series
	cardsDrawn    *series
	treasures     *series

	keySustained []*counter
	keyBurst     []*counter

	mulligans    int
	handsKept    int
	exampleGames [][]string
}

func newAccumulator(turns int, keys []*deck.CardRecord) *accumulator {
	acc := &accumulator{
		keys:          keys,
		lands:         newSeries(turns),
		untappedLands: newSeries(turns),
		manaTotal:     newSeries(turns),
		manaByColor:   make(map[mana.Color]*series, len(mana.AllColors)),
		lifeLoss:      newSeries(turns),
		cardsDrawn:    newSeries(turns),
		treasures:     newSeries(turns),
	}
	for _, c := range mana.AllColors {
		acc.manaByColor[c] = newSeries(turns)
	}
	for range keys {
		acc.keySustained = append(acc.keySustained, newCounter(turns))
		acc.keyBurst = append(acc.keyBurst, newCounter(turns))
	}
	return acc
}

func (acc *accumulator) observe(traj sim.Trajectory, exampleGames int) {
	for i, snap := range traj.Snapshots {
		acc.lands.observe(i, float64(snap.Lands))
		acc.untappedLands.observe(i, float64(snap.UntappedLands))
		acc.manaTotal.observe(i, float64(snap.ManaTotal))
		acc.lifeLoss.observe(i, float64(snap.LifeLoss))
		acc.cardsDrawn.observe(i, float64(snap.CardsDrawn))
		acc.treasures.observe(i, float64(snap.Treasures))
		for _, c := range mana.AllColors {
			acc.manaByColor[c].observe(i, float64(snap.ManaByColor[c]))
		}
		for k := range acc.keys {
			acc.keySustained[k].observe(i, snap.KeyCastable[k])
			acc.keyBurst[k].observe(i, snap.KeyCastableBurst[k])
		}
	}
	acc.mulligans += traj.Mulligans
	acc.handsKept++
	if len(acc.exampleGames) < exampleGames {
		acc.exampleGames = append(acc.exampleGames, traj.Log)
	}
}

func (acc *accumulator) finalize(n int) *SimulationResults {
	res := &SimulationResults{
		Iterations:    n,
		Lands:         acc.lands.finalize(n),
		UntappedLands: acc.untappedLands.finalize(n),
		ManaTotal:     acc.manaTotal.finalize(n),
		ManaByColor:   make(map[mana.Color]TurnSeries, len(acc.manaByColor)),
		LifeLoss:      acc.lifeLoss.finalize(n),
		CardsDrawn:    acc.cardsDrawn.finalize(n),
		Treasures:     acc.treasures.finalize(n),
		KeyCards:      make(map[string]Playability, len(acc.keys)),
		Mulligans:     acc.mulligans,
		HandsKept:     acc.handsKept,
		ExampleGames:  acc.exampleGames,
	}
	for c, s := range acc.manaByColor {
		res.ManaByColor[c] = s.finalize(n)
	}
	for k, key := range acc.keys {
		res.KeyCards[key.Name] = Playability{
			Sustained: acc.keySustained[k].percentages(n),
			WithBurst: acc.keyBurst[k].percentages(n),
		}
	}
	return res
}
