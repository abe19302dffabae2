package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacurve/manasim/internal/sim/mana"
)

func TestCardRecord_Validate(t *testing.T) {
	rec := &CardRecord{
		Name:     "Forest",
		Category: CategoryLand,
		Produces: []mana.Color{mana.Green},
		Land:     &LandSpec{Cycle: CycleBasic, BasicTypes: []mana.Color{mana.Green}},
	}
	require.NoError(t, rec.Validate())

	noName := &CardRecord{Category: CategorySpell}
	assert.Error(t, noName.Validate())

	badCategory := &CardRecord{Name: "x", Category: Category("NOPE")}
	assert.Error(t, badCategory.Validate())

	landWithoutSpec := &CardRecord{Name: "x", Category: CategoryLand}
	assert.Error(t, landWithoutSpec.Validate())

	specOnSpell := &CardRecord{Name: "x", Category: CategorySpell, Land: &LandSpec{Cycle: CycleBasic}}
	assert.Error(t, specOnSpell.Validate())
}

func TestCardRecord_ManaValue(t *testing.T) {
	cost, err := mana.ParseCost("{2}{G}")
	require.NoError(t, err)

	spell := &CardRecord{Name: "Borderland Ranger", Category: CategoryCreature, Cost: cost}
	assert.Equal(t, 3, spell.ManaValue())

	land := &CardRecord{
		Name:     "Evolving Wilds",
		Category: CategoryLand,
		Cost:     cost, // lands never have a cost, but even a bad record reads as 0
		Land:     &LandSpec{Cycle: CycleFetch},
	}
	assert.Equal(t, 0, land.ManaValue())
}

func TestStubKeyCard(t *testing.T) {
	stub := StubKeyCard("Missing Commander")
	require.NoError(t, stub.Validate())
	assert.Equal(t, "Missing Commander", stub.Name)
	assert.True(t, stub.Cost.Free())
	assert.Equal(t, CategorySpell, stub.Category)
}

func TestCategoryPermanent(t *testing.T) {
	assert.True(t, CategoryLand.Permanent())
	assert.True(t, CategoryCostReducer.Permanent())
	assert.False(t, CategoryRitual.Permanent())
	assert.False(t, CategoryRampSpell.Permanent())
}
