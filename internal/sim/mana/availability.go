package mana

// Pool tracks mana available in a single turn. Total counts every source
// once; ByColor counts a source under each color it can produce, so a dual
// land contributes 1 to Total and 1 to each of its two colors. Pip checks
// are therefore optimistic: each pip requirement is tested independently.
type Pool struct {
	Total   int
	ByColor map[Color]int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{ByColor: make(map[Color]int)}
}

// Add records amount mana producible in any of the given colors.
// An empty color list is colorless production: it raises Total only.
func (p *Pool) Add(amount int, colors []Color) {
	if amount <= 0 {
		return
	}
	p.Total += amount
	for _, c := range colors {
		p.ByColor[c] += amount
	}
}

// Of returns the amount producible in the given color.
func (p *Pool) Of(c Color) int {
	return p.ByColor[c]
}

// Merge adds the contents of other into p.
func (p *Pool) Merge(other *Pool) {
	if other == nil {
		return
	}
	p.Total += other.Total
	for c, n := range other.ByColor {
		p.ByColor[c] += n
	}
}

// Spend removes amount from Total and from every color bucket. The pool
// does not track which source paid, so color buckets are reduced uniformly;
// they never go below zero or above the new total.
func (p *Pool) Spend(amount int) {
	if amount <= 0 {
		return
	}
	p.Total -= amount
	if p.Total < 0 {
		p.Total = 0
	}
	for c, n := range p.ByColor {
		n -= amount
		if n < 0 {
			n = 0
		}
		if n > p.Total {
			n = p.Total
		}
		p.ByColor[c] = n
	}
}

// CanPay reports whether the pool covers a cost after a generic discount.
// Each colored pip must be independently satisfiable and is never
// discounted; the discount applies only to the generic portion, so the
// total required is never less than the pip count. This is a deliberate
// simplification of real payment semantics: pips are assumed fully paid
// before any discount applies.
func (p *Pool) CanPay(cost Cost, discount int) bool {
	for c, n := range cost.Pips {
		if p.ByColor[c] < n {
			return false
		}
	}
	need := cost.ManaValue() - discount
	if need < 0 {
		need = 0
	}
	if pips := cost.PipCount(); need < pips {
		need = pips
	}
	return p.Total >= need
}

// EffectiveCost returns max(0, manaValue − discount), floored at the pip
// count since pips are never discounted.
func EffectiveCost(cost Cost, discount int) int {
	need := cost.ManaValue() - discount
	if need < 0 {
		need = 0
	}
	if pips := cost.PipCount(); need < pips {
		need = pips
	}
	return need
}

// Copy returns an independent copy of the pool.
func (p *Pool) Copy() *Pool {
	out := NewPool()
	out.Total = p.Total
	for c, n := range p.ByColor {
		out.ByColor[c] = n
	}
	return out
}

// Source describes one battlefield permanent for availability purposes.
// The simulation layer flattens its card instances into Sources so the
// calculator stays independent of zone bookkeeping.
type Source struct {
	Colors    []Color // producible colors; empty means colorless production
	Base      int     // amount produced per activation
	Growth    int     // extra amount per full turn on the battlefield
	EnteredOn int     // turn the permanent entered
	Ready     bool    // untapped and past summoning sickness
	Filter    bool    // converts mana rather than producing it outright
}

// Amount returns the source's production on the given turn, applying the
// scaling rule base + growth × max(0, turn − enteredOn).
func (s Source) Amount(turn int) int {
	amount := s.Base
	if s.Growth > 0 {
		age := turn - s.EnteredOn
		if age > 0 {
			amount += s.Growth * age
		}
	}
	return amount
}

// Compute returns the mana available from a battlefield snapshot on the
// given turn. Filter sources are resolved in a second pass: they count only
// if some non-filter source already supplies one of their colors, and
// contribute nothing when the condition is unmet.
func Compute(sources []Source, turn int) *Pool {
	pool := NewPool()

	var filters []Source
	for _, src := range sources {
		if !src.Ready {
			continue
		}
		if src.Filter {
			filters = append(filters, src)
			continue
		}
		pool.Add(src.Amount(turn), src.Colors)
	}

	for _, src := range filters {
		fed := false
		for _, c := range src.Colors {
			if pool.ByColor[c] > 0 {
				fed = true
				break
			}
		}
		if !fed {
			continue
		}
		pool.Add(src.Amount(turn), src.Colors)
	}

	return pool
}
