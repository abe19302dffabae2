package deck

import (
	"fmt"

	"github.com/manacurve/manasim/internal/sim/mana"
)

// Category classifies a card record for the casting scheduler.
type Category string

const (
	CategoryLand        Category = "LAND"
	CategoryArtifact    Category = "ARTIFACT"
	CategoryCreature    Category = "CREATURE"
	CategoryRampSpell   Category = "RAMP_SPELL"
	CategoryRitual      Category = "RITUAL"
	CategoryCostReducer Category = "COST_REDUCER"
	CategoryDrawSpell   Category = "DRAW_SPELL"
	CategoryTreasure    Category = "TREASURE"
	CategoryExploration Category = "EXPLORATION"
	CategorySpell       Category = "SPELL"
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryLand,
	CategoryArtifact,
	CategoryCreature,
	CategoryRampSpell,
	CategoryRitual,
	CategoryCostReducer,
	CategoryDrawSpell,
	CategoryTreasure,
	CategoryExploration,
	CategorySpell,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Permanent reports whether cards of this category stay on the battlefield
// once resolved. One-shot draw and treasure spells override this per record.
func (c Category) Permanent() bool {
	switch c {
	case CategoryLand, CategoryArtifact, CategoryCreature, CategoryCostReducer, CategoryExploration:
		return true
	default:
		return false
	}
}

// LandCycle identifies the tapped-entry behavior of a land.
type LandCycle string

const (
	CycleBasic    LandCycle = "BASIC"
	CycleUntapped LandCycle = "UNTAPPED" // unconditional untapped nonbasic
	CycleTapped   LandCycle = "TAPPED"   // unconditional tapland
	CycleShock    LandCycle = "SHOCK"
	CycleCheck    LandCycle = "CHECK"
	CycleFast     LandCycle = "FAST"
	CycleBattle   LandCycle = "BATTLE"
	CycleBounce   LandCycle = "BOUNCE"
	CycleCrowd    LandCycle = "CROWD"
	CycleFilter   LandCycle = "FILTER"
	CycleFetch    LandCycle = "FETCH"
)

// ETBCost identifies an additional cost paid when a permanent enters.
type ETBCost string

const (
	ETBNone          ETBCost = ""
	ETBDiscard       ETBCost = "DISCARD"
	ETBImprint       ETBCost = "IMPRINT"
	ETBSacrificeLand ETBCost = "SACRIFICE_LAND"
	ETBDiscardHand   ETBCost = "DISCARD_HAND"
)

// CardRecord is the immutable template for one card. Category-specific
// behavior lives in the variant field matching the category; the rest stay
// nil. Records are built by the classification step and never mutated
// during simulation.
type CardRecord struct {
	Name     string
	Category Category
	Cost     mana.Cost
	Produces []mana.Color // colors the card can produce, if any

	Land        *LandSpec
	Producer    *ProducerSpec
	Ramp        *RampSpec
	Ritual      *RitualSpec
	Reducer     *ReducerSpec
	Draw        *DrawSpec
	Treasure    *TreasureSpec
	Exploration *ExplorationSpec
	Upkeep      *UpkeepSpec // life-loss rider, valid on any permanent
}

// LandSpec carries land-only parameters.
type LandSpec struct {
	Cycle      LandCycle
	BasicTypes []mana.Color // basic land subtypes carried (check/battle conditions)
	FetchCost  int          // activation cost for fetch lands
	FetchBasicsOnly bool    // fetch restricted to basic-cycle targets
}

// ProducerSpec carries parameters for mana-producing artifacts/creatures.
type ProducerSpec struct {
	Base         int
	Growth       int  // extra production per full turn on the battlefield
	Haste        bool // taps the turn it enters
	EntersTapped bool
	UntapCost    int // untaps in upkeep only if this much mana is spendable
	ETB          ETBCost
}

// RampSpec carries parameters for land-ramp spells.
type RampSpec struct {
	Count         int // lands put onto the battlefield
	EntersTapped  bool
	BasicsOnly    bool
	SacrificeLand bool
}

// RitualSpec carries parameters for one-shot mana spells.
type RitualSpec struct {
	Amount int
}

// ReducerSpec scopes a cost-reducing permanent.
type ReducerSpec struct {
	Amount     int
	Colors     []mana.Color // empty means any color
	Categories []Category   // empty means any category
}

// DrawSpec carries parameters for draw spells and permanents.
type DrawSpec struct {
	Count   int
	PerTurn bool // permanent drawing each upkeep rather than once
}

// TreasureSpec carries parameters for treasure generators.
type TreasureSpec struct {
	Count   int
	PerTurn bool // permanent producing treasures each upkeep
}

// ExplorationSpec grants additional land drops while on the battlefield.
type ExplorationSpec struct {
	ExtraLands int
}

// UpkeepSpec models recurring life loss from a permanent. Growth adds to
// the damage for each full turn the source has been on the battlefield.
type UpkeepSpec struct {
	Damage int
	Growth int
	Chance float64 // probability the damage triggers each upkeep; 1 is always
}

// ManaValue returns the record's converted mana cost. Lands are always 0.
func (r *CardRecord) ManaValue() int {
	if r.Category == CategoryLand {
		return 0
	}
	return r.Cost.ManaValue()
}

// IsLand reports whether the record is a land.
func (r *CardRecord) IsLand() bool {
	return r.Category == CategoryLand
}

// IsFetch reports whether the record is a fetch land.
func (r *CardRecord) IsFetch() bool {
	return r.Land != nil && r.Land.Cycle == CycleFetch
}

// IsBounce reports whether the record is a bounce land.
func (r *CardRecord) IsBounce() bool {
	return r.Land != nil && r.Land.Cycle == CycleBounce
}

// IsBasic reports whether the record is a basic land.
func (r *CardRecord) IsBasic() bool {
	return r.Land != nil && r.Land.Cycle == CycleBasic
}

// Validate checks structural consistency of a record.
func (r *CardRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("card record missing name")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("card %q: unknown category %q", r.Name, r.Category)
	}
	if r.Category == CategoryLand && r.Land == nil {
		return fmt.Errorf("card %q: land without land spec", r.Name)
	}
	if r.Land != nil && r.Category != CategoryLand {
		return fmt.Errorf("card %q: land spec on %s", r.Name, r.Category)
	}
	if r.Upkeep != nil && (r.Upkeep.Chance < 0 || r.Upkeep.Chance > 1) {
		return fmt.Errorf("card %q: upkeep chance %f out of range", r.Name, r.Upkeep.Chance)
	}
	return nil
}

// StubKeyCard builds a zero-cost, always-castable stand-in for a tracked
// key card that is not part of the assembled deck (a commander kept outside
// the draw deck, for example). Substituting a stub keeps the result shape
// complete instead of failing the run.
func StubKeyCard(name string) *CardRecord {
	return &CardRecord{
		Name:     name,
		Category: CategorySpell,
	}
}
