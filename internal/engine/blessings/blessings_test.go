package blessings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

func blessing(t *testing.T, id string) entities.Blessing {
	t.Helper()
	def, ok := catalog.Default().Blessing(id)
	require.True(t, ok, "missing blessing %s", id)
	return def.NewBlessing()
}

func TestEveryCatalogEffectHasAnActivation(t *testing.T) {
	for _, def := range catalog.Default().Blessings() {
		_, _, ok := blessings.ActivationOf(def.Effect.Type)
		assert.True(t, ok, "effect %s of %s has no activation", def.Effect.Type, def.ID)
	}
}

func TestApplyPurchase(t *testing.T) {
	t.Run("static effect folded once", func(t *testing.T) {
		game := entities.NewGameState(entities.DifficultyPlastic)

		out, err := blessings.ApplyPurchase(game, blessing(t, "charmSlots1"))
		require.Nil(t, err)
		assert.Equal(t, 5, out.CharmSlots)
		assert.Equal(t, 4, game.CharmSlots)
		assert.True(t, out.HasBlessing("charmSlots1"))

		out, err = blessings.ApplyPurchase(out, blessing(t, "charmSlots2"))
		require.Nil(t, err)
		assert.Equal(t, 6, out.CharmSlots)
	})

	t.Run("base rerolls and banks", func(t *testing.T) {
		game := entities.NewGameState(entities.DifficultyPlastic)
		out, err := blessings.ApplyPurchase(game, blessing(t, "rerolls1"))
		require.Nil(t, err)
		out, err = blessings.ApplyPurchase(out, blessing(t, "banks1"))
		require.Nil(t, err)
		assert.Equal(t, 4, out.BaseRerolls)
		assert.Equal(t, 4, out.BaseBanks)
		assert.Equal(t, 3, out.Rerolls)
	})

	t.Run("dynamic effect not applied at purchase", func(t *testing.T) {
		game := entities.NewGameState(entities.DifficultyPlastic)
		out, err := blessings.ApplyPurchase(game, blessing(t, "rerolls1"))
		require.Nil(t, err)
		out, err = blessings.ApplyPurchase(out, blessing(t, "rerolls2"))
		require.Nil(t, err)
		assert.Equal(t, game.Rerolls, out.Rerolls)
	})

	t.Run("tier gating", func(t *testing.T) {
		game := entities.NewGameState(entities.DifficultyPlastic)
		out, err := blessings.ApplyPurchase(game, blessing(t, "merchant2"))
		require.NotNil(t, err)
		assert.Equal(t, errors.CodeFailedPrecondition, err.Code)
		assert.Same(t, game, out)

		withTier1, err := blessings.ApplyPurchase(game, blessing(t, "merchant1"))
		require.Nil(t, err)
		_, err = blessings.ApplyPurchase(withTier1, blessing(t, "merchant3"))
		require.NotNil(t, err)
		assert.Equal(t, errors.CodeFailedPrecondition, err.Code)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		game := entities.NewGameState(entities.DifficultyPlastic)
		out, err := blessings.ApplyPurchase(game, blessing(t, "bazaar1"))
		require.Nil(t, err)
		again, err := blessings.ApplyPurchase(out, blessing(t, "bazaar1"))
		require.NotNil(t, err)
		assert.Equal(t, errors.CodeAlreadyOwned, err.Code)
		assert.Same(t, out, again)
	})
}

func TestApplyDynamicEffects(t *testing.T) {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Blessings = []entities.Blessing{
		blessing(t, "rerolls2"),
		blessing(t, "rerolls3"),
		blessing(t, "banks2"),
		blessing(t, "banks3"),
		blessing(t, "charmSlots1"),
	}

	tests := []struct {
		trigger     blessings.Trigger
		wantRerolls int
		wantMoney   int
	}{
		{blessings.TriggerBank, 4, 10},
		{blessings.TriggerFlop, 4, 10},
		{blessings.TriggerRerollUsed, 3, 11},
		{blessings.TriggerLevelEnd, 3, 15},
	}
	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			out := blessings.ApplyDynamicEffects(game, tt.trigger)
			assert.Equal(t, tt.wantRerolls, out.Rerolls)
			assert.Equal(t, tt.wantMoney, out.Money)
			assert.Equal(t, 4, out.CharmSlots)
		})
	}
	assert.Equal(t, 3, game.Rerolls)
	assert.Equal(t, 10, game.Money)
}

func TestPassiveEffects(t *testing.T) {
	game := entities.NewGameState(entities.DifficultyPlastic)
	assert.Zero(t, blessings.DiscountPercent(game))
	assert.Zero(t, blessings.BonusShopSlots(game))
	assert.False(t, blessings.SellsAtPurchasePrice(game))

	game.Blessings = []entities.Blessing{
		blessing(t, "merchant1"),
		blessing(t, "merchant2"),
		blessing(t, "merchant3"),
		blessing(t, "bazaar1"),
		blessing(t, "bazaar2"),
		blessing(t, "bazaar3"),
	}
	assert.Equal(t, 35, blessings.DiscountPercent(game))
	assert.Equal(t, 2, blessings.BonusShopSlots(game))
	assert.True(t, blessings.SellsAtPurchasePrice(game))
}
