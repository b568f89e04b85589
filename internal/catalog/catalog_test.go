package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()
	require.NotNil(t, c)

	for _, r := range entities.Rarities {
		assert.GreaterOrEqual(t, len(c.CharmsByRarity(r)), 4, "rarity %s", r)
	}
	for _, cat := range entities.ConsumableCategories {
		assert.NotEmpty(t, c.ConsumablesByCategory(cat), "category %s", cat)
	}

	def, ok := c.Charm("flopShield")
	require.True(t, ok)
	assert.Equal(t, entities.RarityCommon, def.Rarity)
	assert.Equal(t, 3.0, def.Param("charges", 0))
	assert.Equal(t, 7.0, def.Param("missing", 7))

	charm := def.NewCharm()
	assert.True(t, charm.Active)
	assert.Equal(t, "flopShield", charm.ID)

	up, ok := c.Consumable("upgradeStraight")
	require.True(t, ok)
	assert.Equal(t, "straight", up.Combination)
	assert.Equal(t, 1, up.NewConsumable().Uses)

	pip, ok := c.Consumable("moneyPip")
	require.True(t, ok)
	assert.Equal(t, entities.PipMoney, pip.Pip)
}

func TestPrerequisite(t *testing.T) {
	c := catalog.Default()

	t1, ok := c.Blessing("merchant1")
	require.True(t, ok)
	_, ok = c.Prerequisite(t1)
	assert.False(t, ok)

	t3, ok := c.Blessing("merchant3")
	require.True(t, ok)
	prev, ok := c.Prerequisite(t3)
	require.True(t, ok)
	assert.Equal(t, "merchant2", prev.ID)
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	doc := `
charms:
  - {id: lucky, name: Lucky, rarity: common}
  - {id: lucky, name: Lucky Again, rarity: rare}
consumables:
  - {id: chisel, name: Chisel, category: whim}
blessings: []
`
	_, err := catalog.Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), `duplicate id "lucky"`)
}

func TestLoad_RejectsDuplicateAcrossLists(t *testing.T) {
	_, err := catalog.New(
		[]catalog.CharmDefinition{{ID: "echo", Rarity: entities.RarityCommon}},
		[]catalog.ConsumableDefinition{{ID: "echo", Category: entities.CategoryWhim}},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate id "echo"`)
}

func TestLoad_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		message string
	}{
		{
			name:    "unknown rarity",
			doc:     "charms:\n  - {id: a, rarity: mythic}\n",
			message: "unknown rarity",
		},
		{
			name:    "upgrade without combination",
			doc:     "consumables:\n  - {id: up, category: combinationUpgrade}\n",
			message: "names no combination",
		},
		{
			name:    "tier gap",
			doc:     "blessings:\n  - {id: b2, family: f, tier: 2, effect: {type: charmSlots, amount: 1}}\n",
			message: "tier 2 without tier 1",
		},
		{
			name:    "unknown field",
			doc:     "charms:\n  - {id: a, rarity: common, colour: red}\n",
			message: "failed to decode catalog",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := catalog.Default()
	charms := c.Charms()
	charms[0].ID = "tampered"

	_, ok := c.Charm("tampered")
	assert.False(t, ok)
	assert.NotEqual(t, "tampered", c.Charms()[0].ID)
}
