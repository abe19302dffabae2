package sim

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// Params configures the single-game engine. One Params value is shared
// read-only by every iteration of a run.
type Params struct {
	Turns          int
	HandSize       int
	Commander      bool
	KeyCards       []*deck.CardRecord
	DeckColors     []mana.Color
	Weights        FetchWeights
	Mulligan       MulliganConfig
	FloodThreshold int // lands in hand above this are discarded first
	ShockPayTurn   int // pay 2 life for shock lands through this turn
}

func (p Params) withDefaults() Params {
	if p.Turns <= 0 {
		p.Turns = 10
	}
	if p.HandSize <= 0 {
		p.HandSize = 7
	}
	if p.FloodThreshold <= 0 {
		p.FloodThreshold = 3
	}
	if p.ShockPayTurn <= 0 {
		p.ShockPayTurn = 6
	}
	zero := FetchWeights{}
	if p.Weights == zero {
		p.Weights = DefaultFetchWeights()
	}
	return p
}

// Engine plays out single games. It is stateless between games; all
// mutable state lives on the Game it creates per call.
type Engine struct {
	params Params
	logger *zap.Logger
}

// NewEngine creates an engine for the given parameters.
func NewEngine(params Params, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{params: params.withDefaults(), logger: logger}
}

// Params returns the engine's effective parameters after defaulting.
func (e *Engine) Params() Params {
	return e.params
}

// Run plays one complete game from the given deck and returns its
// trajectory. The deck records are shared templates; all mutation happens
// on per-game card instances.
func (e *Engine) Run(cards []*deck.CardRecord, rng *rand.Rand) Trajectory {
	g := newGame(cards, e.params, rng)
	g.shuffle()
	e.openingHand(g)

	traj := Trajectory{
		GameID:    g.ID,
		Snapshots: make([]TurnSnapshot, 0, e.params.Turns),
		Mulligans: g.Mulligans,
	}
	for t := 0; t < e.params.Turns; t++ {
		traj.Snapshots = append(traj.Snapshots, e.playTurn(g))
	}
	traj.Log = g.Log

	e.logger.Debug("game complete",
		zap.String("game_id", g.ID),
		zap.Int("turns", g.Turn),
		zap.Int("lands", g.landsInPlay()),
		zap.Int("life_loss", g.LifeLoss),
	)
	return traj
}
