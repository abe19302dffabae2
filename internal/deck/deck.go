package deck

import (
	"fmt"

	"github.com/manacurve/manasim/internal/sim/mana"
)

// Deck is the flattened "complete deck": one entry per owned copy, with any
// user overrides already applied.
type Deck struct {
	Name  string
	Cards []*CardRecord
}

// Entry pairs a record with a copy count and optional user overrides, the
// form a deck arrives in before assembly.
type Entry struct {
	Record    *CardRecord
	Copies    int
	Overrides *Overrides
}

// Overrides carries per-card numeric tweaks a user may apply without
// reclassifying the card. Nil fields leave the record value untouched.
type Overrides struct {
	ProducerBase   *int
	ProducerGrowth *int
	DrawCount      *int
	TreasureCount  *int
	RampCount      *int
	ReducerAmount  *int
}

// Assemble expands entries into a flattened deck. Overrides are applied as
// a pipeline of pure transforms over copies of the record, so the input
// records stay untouched.
func Assemble(name string, entries []Entry) (*Deck, error) {
	d := &Deck{Name: name}
	for _, e := range entries {
		if e.Record == nil {
			return nil, fmt.Errorf("deck %q: entry without record", name)
		}
		if err := e.Record.Validate(); err != nil {
			return nil, fmt.Errorf("deck %q: %w", name, err)
		}
		if e.Copies <= 0 {
			return nil, fmt.Errorf("deck %q: card %q has %d copies", name, e.Record.Name, e.Copies)
		}
		rec := applyOverrides(e.Record, e.Overrides)
		for i := 0; i < e.Copies; i++ {
			d.Cards = append(d.Cards, rec)
		}
	}
	if len(d.Cards) == 0 {
		return nil, fmt.Errorf("deck %q is empty", name)
	}
	return d, nil
}

// applyOverrides returns the record itself when there is nothing to change,
// otherwise a copied record with the overridden fields replaced.
func applyOverrides(rec *CardRecord, ov *Overrides) *CardRecord {
	if ov == nil {
		return rec
	}
	out := *rec
	if ov.ProducerBase != nil || ov.ProducerGrowth != nil {
		if out.Producer != nil {
			p := *out.Producer
			if ov.ProducerBase != nil {
				p.Base = *ov.ProducerBase
			}
			if ov.ProducerGrowth != nil {
				p.Growth = *ov.ProducerGrowth
			}
			out.Producer = &p
		}
	}
	if ov.DrawCount != nil && out.Draw != nil {
		d := *out.Draw
		d.Count = *ov.DrawCount
		out.Draw = &d
	}
	if ov.TreasureCount != nil && out.Treasure != nil {
		t := *out.Treasure
		t.Count = *ov.TreasureCount
		out.Treasure = &t
	}
	if ov.RampCount != nil && out.Ramp != nil {
		r := *out.Ramp
		r.Count = *ov.RampCount
		out.Ramp = &r
	}
	if ov.ReducerAmount != nil && out.Reducer != nil {
		r := *out.Reducer
		r.Amount = *ov.ReducerAmount
		out.Reducer = &r
	}
	return &out
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// Find returns the first record with the given name, or nil.
func (d *Deck) Find(name string) *CardRecord {
	for _, c := range d.Cards {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SpellColors returns the colors appearing in the pips of the deck's
// nonland cards, in WUBRG order. The fetch heuristic uses this as the set
// of colors the deck wants on the battlefield.
func (d *Deck) SpellColors() []mana.Color {
	seen := make(map[mana.Color]bool)
	for _, c := range d.Cards {
		if c.IsLand() {
			continue
		}
		for _, color := range c.Cost.Colors() {
			seen[color] = true
		}
	}
	var colors []mana.Color
	for _, color := range mana.AllColors {
		if seen[color] {
			colors = append(colors, color)
		}
	}
	return colors
}

// Demote returns a copy of the deck where every card in one of the given
// categories is treated as an inert spell: same name and cost, no special
// behavior. Deck size is preserved so consistency statistics stay
// comparable when a category is excluded from a run.
func (d *Deck) Demote(categories map[Category]bool) *Deck {
	if len(categories) == 0 {
		return d
	}
	out := &Deck{Name: d.Name, Cards: make([]*CardRecord, 0, len(d.Cards))}
	for _, c := range d.Cards {
		if c.Category != CategoryLand && categories[c.Category] {
			out.Cards = append(out.Cards, &CardRecord{
				Name:     c.Name,
				Category: CategorySpell,
				Cost:     c.Cost.Copy(),
			})
			continue
		}
		out.Cards = append(out.Cards, c)
	}
	return out
}
