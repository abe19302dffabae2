package mana

// Reduction represents one active cost reduction effect. The category is an
// opaque discriminator supplied by the caller so reductions can be scoped by
// spell type as well as by cost.
type Reduction struct {
	ID        string
	Amount    int
	AppliesTo func(category string, cost Cost) bool // nil means the reduction applies to everything
}

// ReductionSet aggregates the reductions currently on the battlefield.
type ReductionSet struct {
	reductions []*Reduction
}

// NewReductionSet creates an empty reduction set.
func NewReductionSet() *ReductionSet {
	return &ReductionSet{reductions: make([]*Reduction, 0)}
}

// Add registers a reduction effect.
func (rs *ReductionSet) Add(r *Reduction) {
	if r == nil {
		return
	}
	rs.reductions = append(rs.reductions, r)
}

// Remove unregisters a reduction effect by ID.
func (rs *ReductionSet) Remove(id string) {
	for i, r := range rs.reductions {
		if r.ID == id {
			rs.reductions = append(rs.reductions[:i], rs.reductions[i+1:]...)
			return
		}
	}
}

// DiscountFor sums the reductions that apply to the given spell. The result
// only ever shrinks the generic portion of a cost; colored pips are paid in
// full regardless of the discount.
func (rs *ReductionSet) DiscountFor(category string, cost Cost) int {
	total := 0
	for _, r := range rs.reductions {
		if r.AppliesTo == nil || r.AppliesTo(category, cost) {
			total += r.Amount
		}
	}
	return total
}

// Len returns the number of active reductions.
func (rs *ReductionSet) Len() int {
	return len(rs.reductions)
}
