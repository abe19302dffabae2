package mana

import (
	"testing"
)

func TestReductionSet_DiscountFor(t *testing.T) {
	rs := NewReductionSet()
	rs.Add(&Reduction{ID: "a", Amount: 1})
	rs.Add(&Reduction{
		ID:     "b",
		Amount: 2,
		AppliesTo: func(category string, cost Cost) bool {
			return cost.Pips[Red] > 0
		},
	})

	redCost, _ := ParseCost("{2}{R}")
	if got := rs.DiscountFor("SPELL", redCost); got != 3 {
		t.Errorf("Expected discount 3 for red spell, got %d", got)
	}

	blueCost, _ := ParseCost("{2}{U}")
	if got := rs.DiscountFor("SPELL", blueCost); got != 1 {
		t.Errorf("Expected discount 1 for blue spell, got %d", got)
	}
}

func TestReductionSet_CategoryScope(t *testing.T) {
	rs := NewReductionSet()
	rs.Add(&Reduction{
		ID:     "foundry",
		Amount: 2,
		AppliesTo: func(category string, cost Cost) bool {
			return category == "ARTIFACT"
		},
	})

	cost, _ := ParseCost("{3}")
	if got := rs.DiscountFor("ARTIFACT", cost); got != 2 {
		t.Errorf("Expected discount 2 for artifact, got %d", got)
	}
	if got := rs.DiscountFor("CREATURE", cost); got != 0 {
		t.Errorf("Expected no discount for creature, got %d", got)
	}
}

func TestReductionSet_Remove(t *testing.T) {
	rs := NewReductionSet()
	rs.Add(&Reduction{ID: "a", Amount: 1})
	rs.Add(&Reduction{ID: "b", Amount: 2})

	rs.Remove("a")
	if rs.Len() != 1 {
		t.Errorf("Expected 1 reduction after remove, got %d", rs.Len())
	}

	cost, _ := ParseCost("{3}")
	if got := rs.DiscountFor("SPELL", cost); got != 2 {
		t.Errorf("Expected discount 2, got %d", got)
	}
}
