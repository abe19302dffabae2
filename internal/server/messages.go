package server

import (
	"encoding/json"
	"fmt"

	"github.com/manacurve/manasim/internal/config"
	"github.com/manacurve/manasim/internal/deck"
	"github.com/manacurve/manasim/internal/montecarlo"
	"github.com/manacurve/manasim/internal/sim"
	"github.com/manacurve/manasim/internal/sim/mana"
)

// Message types exchanged over the WebSocket boundary.
const (
	MessageRun      = "run"
	MessageProgress = "progress"
	MessageResult   = "result"
	MessageError    = "error"
)

// Envelope frames every message in both directions. Payload holds the
// type-specific body.
type Envelope struct {
	Type    string          `json:"type"`
	RunID   string          `json:"run_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RunRequest is the payload of a "run" message. DeckB, when present,
// requests a comparison run of both decks under the same configuration.
type RunRequest struct {
	Config WireConfig `json:"config"`
	Deck   WireDeck   `json:"deck"`
	DeckB  *WireDeck  `json:"deck_b,omitempty"`
}

// ProgressPayload reports completed iterations during a run.
type ProgressPayload struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ErrorPayload carries a human-readable failure reason.
type ErrorPayload struct {
	Message string `json:"message"`
}

// WireConfig is the JSON form of a simulation configuration.
type WireConfig struct {
	Iterations         int           `json:"iterations"`
	Turns              int           `json:"turns"`
	HandSize           int           `json:"hand_size,omitempty"`
	Seed               int64         `json:"seed,omitempty"`
	Commander          bool          `json:"commander,omitempty"`
	KeyCards           []string      `json:"key_cards,omitempty"`
	ExcludedCategories []string      `json:"excluded_categories,omitempty"`
	Mulligan           *WireMulligan `json:"mulligan,omitempty"`
	FetchWeights       *WireWeights  `json:"fetch_weights,omitempty"`
	FloodThreshold     int           `json:"flood_threshold,omitempty"`
	ShockPayTurn       int           `json:"shock_pay_turn,omitempty"`
	ExampleGames       int           `json:"example_games,omitempty"`
}

// WireMulligan is the JSON form of a mulligan policy.
type WireMulligan struct {
	Rule     string `json:"rule,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	MinLands int    `json:"min_lands,omitempty"`
	MaxLands int    `json:"max_lands,omitempty"`
}

// WireWeights is the JSON form of fetch-target scoring weights.
type WireWeights struct {
	MissingKeyColor int `json:"missing_key_color"`
	EarlyDual       int `json:"early_dual"`
	MultiColor      int `json:"multi_color"`
	PerMissingColor int `json:"per_missing_color"`
	LateShock       int `json:"late_shock"`
}

// WireDeck is the JSON form of a deck list.
type WireDeck struct {
	Name  string      `json:"name"`
	Cards []WireEntry `json:"cards"`
}

// WireEntry is one deck-list line.
type WireEntry struct {
	Card   WireCard `json:"card"`
	Copies int      `json:"copies"`
}

// WireCard is the JSON form of a card record. Cost uses brace notation
// ("{1}{G}"); colors are single-letter symbols.
type WireCard struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Cost     string   `json:"cost,omitempty"`
	Produces []string `json:"produces,omitempty"`

	Land        *WireLand        `json:"land,omitempty"`
	Producer    *WireProducer    `json:"producer,omitempty"`
	Ramp        *WireRamp        `json:"ramp,omitempty"`
	Ritual      *WireRitual      `json:"ritual,omitempty"`
	Reducer     *WireReducer     `json:"reducer,omitempty"`
	Draw        *WireDraw        `json:"draw,omitempty"`
	Treasure    *WireTreasure    `json:"treasure,omitempty"`
	Exploration *WireExploration `json:"exploration,omitempty"`
	Upkeep      *WireUpkeep      `json:"upkeep,omitempty"`
}

type WireLand struct {
	Cycle           string   `json:"cycle"`
	BasicTypes      []string `json:"basic_types,omitempty"`
	FetchCost       int      `json:"fetch_cost,omitempty"`
	FetchBasicsOnly bool     `json:"fetch_basics_only,omitempty"`
}

type WireProducer struct {
	Base         int    `json:"base"`
	Growth       int    `json:"growth,omitempty"`
	Haste        bool   `json:"haste,omitempty"`
	EntersTapped bool   `json:"enters_tapped,omitempty"`
	UntapCost    int    `json:"untap_cost,omitempty"`
	ETB          string `json:"etb,omitempty"`
}

type WireRamp struct {
	Count         int  `json:"count"`
	EntersTapped  bool `json:"enters_tapped,omitempty"`
	BasicsOnly    bool `json:"basics_only,omitempty"`
	SacrificeLand bool `json:"sacrifice_land,omitempty"`
}

type WireRitual struct {
	Amount int `json:"amount"`
}

type WireReducer struct {
	Amount     int      `json:"amount"`
	Colors     []string `json:"colors,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

type WireDraw struct {
	Count   int  `json:"count"`
	PerTurn bool `json:"per_turn,omitempty"`
}

type WireTreasure struct {
	Count   int  `json:"count"`
	PerTurn bool `json:"per_turn,omitempty"`
}

type WireExploration struct {
	ExtraLands int `json:"extra_lands"`
}

type WireUpkeep struct {
	Damage int     `json:"damage"`
	Growth int     `json:"growth,omitempty"`
	Chance float64 `json:"chance"`
}

// applyDefaults fills in fields the client omitted from the server's
// configured simulation defaults. Explicit values always win.
func (w WireConfig) applyDefaults(d config.SimulationConfig) WireConfig {
	if w.Iterations <= 0 && d.Iterations > 0 {
		w.Iterations = d.Iterations
	}
	if w.Turns <= 0 && d.Turns > 0 {
		w.Turns = d.Turns
	}
	if w.HandSize <= 0 && d.HandSize > 0 {
		w.HandSize = d.HandSize
	}
	if w.ExampleGames <= 0 && d.ExampleGames > 0 {
		w.ExampleGames = d.ExampleGames
	}
	return w
}

// ToConfig converts the wire form into a validated simulation
// configuration.
func (w WireConfig) ToConfig() (montecarlo.SimulationConfig, error) {
	cfg := montecarlo.SimulationConfig{
		Iterations:     w.Iterations,
		Turns:          w.Turns,
		HandSize:       w.HandSize,
		Seed:           w.Seed,
		Commander:      w.Commander,
		KeyCards:       w.KeyCards,
		FloodThreshold: w.FloodThreshold,
		ShockPayTurn:   w.ShockPayTurn,
		ExampleGames:   w.ExampleGames,
	}
	if len(w.ExcludedCategories) > 0 {
		cfg.ExcludedCategories = make(map[deck.Category]bool, len(w.ExcludedCategories))
		for _, c := range w.ExcludedCategories {
			cfg.ExcludedCategories[deck.Category(c)] = true
		}
	}
	if w.Mulligan != nil {
		cfg.Mulligan = sim.MulliganConfig{
			Rule:     sim.MulliganRule(w.Mulligan.Rule),
			Strategy: sim.MulliganStrategy(w.Mulligan.Strategy),
			MinLands: w.Mulligan.MinLands,
			MaxLands: w.Mulligan.MaxLands,
		}
	}
	if w.FetchWeights != nil {
		cfg.FetchWeights = sim.FetchWeights{
			MissingKeyColor: w.FetchWeights.MissingKeyColor,
			EarlyDual:       w.FetchWeights.EarlyDual,
			MultiColor:      w.FetchWeights.MultiColor,
			PerMissingColor: w.FetchWeights.PerMissingColor,
			LateShock:       w.FetchWeights.LateShock,
		}
	}
	if err := cfg.Validate(); err != nil {
		return montecarlo.SimulationConfig{}, err
	}
	return cfg, nil
}

// ToDeck converts the wire form into an assembled, validated deck.
func (w WireDeck) ToDeck() (*deck.Deck, error) {
	if len(w.Cards) == 0 {
		return nil, fmt.Errorf("deck %q has no cards", w.Name)
	}
	entries := make([]deck.Entry, 0, len(w.Cards))
	for i, e := range w.Cards {
		rec, err := e.Card.ToRecord()
		if err != nil {
			return nil, fmt.Errorf("deck entry %d: %w", i, err)
		}
		copies := e.Copies
		if copies <= 0 {
			copies = 1
		}
		entries = append(entries, deck.Entry{Record: rec, Copies: copies})
	}
	return deck.Assemble(w.Name, entries)
}

// ToRecord converts the wire form into a validated card record.
func (w WireCard) ToRecord() (*deck.CardRecord, error) {
	cost, err := mana.ParseCost(w.Cost)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", w.Name, err)
	}
	rec := &deck.CardRecord{
		Name:     w.Name,
		Category: deck.Category(w.Category),
		Cost:     cost,
		Produces: toColors(w.Produces),
	}
	if w.Land != nil {
		rec.Land = &deck.LandSpec{
			Cycle:           deck.LandCycle(w.Land.Cycle),
			BasicTypes:      toColors(w.Land.BasicTypes),
			FetchCost:       w.Land.FetchCost,
			FetchBasicsOnly: w.Land.FetchBasicsOnly,
		}
	}
	if w.Producer != nil {
		rec.Producer = &deck.ProducerSpec{
			Base:         w.Producer.Base,
			Growth:       w.Producer.Growth,
			Haste:        w.Producer.Haste,
			EntersTapped: w.Producer.EntersTapped,
			UntapCost:    w.Producer.UntapCost,
			ETB:          deck.ETBCost(w.Producer.ETB),
		}
	}
	if w.Ramp != nil {
		rec.Ramp = &deck.RampSpec{
			Count:         w.Ramp.Count,
			EntersTapped:  w.Ramp.EntersTapped,
			BasicsOnly:    w.Ramp.BasicsOnly,
			SacrificeLand: w.Ramp.SacrificeLand,
		}
	}
	if w.Ritual != nil {
		rec.Ritual = &deck.RitualSpec{Amount: w.Ritual.Amount}
	}
	if w.Reducer != nil {
		cats := make([]deck.Category, 0, len(w.Reducer.Categories))
		for _, c := range w.Reducer.Categories {
			cats = append(cats, deck.Category(c))
		}
		rec.Reducer = &deck.ReducerSpec{
			Amount:     w.Reducer.Amount,
			Colors:     toColors(w.Reducer.Colors),
			Categories: cats,
		}
	}
	if w.Draw != nil {
		rec.Draw = &deck.DrawSpec{Count: w.Draw.Count, PerTurn: w.Draw.PerTurn}
	}
	if w.Treasure != nil {
		rec.Treasure = &deck.TreasureSpec{Count: w.Treasure.Count, PerTurn: w.Treasure.PerTurn}
	}
	if w.Exploration != nil {
		rec.Exploration = &deck.ExplorationSpec{ExtraLands: w.Exploration.ExtraLands}
	}
	if w.Upkeep != nil {
		rec.Upkeep = &deck.UpkeepSpec{Damage: w.Upkeep.Damage, Growth: w.Upkeep.Growth, Chance: w.Upkeep.Chance}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func toColors(symbols []string) []mana.Color {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]mana.Color, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, mana.Color(s))
	}
	return out
}

func marshalEnvelope(typ, runID string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: typ, RunID: runID, Payload: body})
}
