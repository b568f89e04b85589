// Package blessings applies permanent blessing effects. Each effect tag has a
// fixed activation: folded in at purchase, read by the shop, or dispatched on
// a gameplay trigger.
package blessings

import (
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// Activation is when a blessing effect takes hold
type Activation int

// Activations
const (
	// ActivationStatic effects are folded into a numeric field once, at purchase
	ActivationStatic Activation = iota + 1
	// ActivationPassive effects are read by the shop while owned
	ActivationPassive
	// ActivationDynamic effects fire on their trigger
	ActivationDynamic
)

// Trigger is a gameplay moment dynamic effects react to
type Trigger string

// Triggers
const (
	TriggerBank       Trigger = "bank"
	TriggerFlop       Trigger = "flop"
	TriggerRerollUsed Trigger = "rerollUsed"
	TriggerLevelEnd   Trigger = "levelEnd"
)

// IsValid reports whether t is a known trigger
func (t Trigger) IsValid() bool {
	switch t {
	case TriggerBank, TriggerFlop, TriggerRerollUsed, TriggerLevelEnd:
		return true
	}
	return false
}

type activation struct {
	kind    Activation
	trigger Trigger
}

// activations is the closed table of effect tags. A tag missing here does
// nothing.
var activations = map[entities.BlessingEffectType]activation{
	entities.EffectCharmSlots:          {kind: ActivationStatic},
	entities.EffectConsumableSlots:     {kind: ActivationStatic},
	entities.EffectBaseRerolls:         {kind: ActivationStatic},
	entities.EffectBaseBanks:           {kind: ActivationStatic},
	entities.EffectShopDiscount:        {kind: ActivationPassive},
	entities.EffectShopItemsAvailable:  {kind: ActivationPassive},
	entities.EffectSellAtPurchasePrice: {kind: ActivationPassive},
	entities.EffectRerollOnBank:        {kind: ActivationDynamic, trigger: TriggerBank},
	entities.EffectRerollOnFlop:        {kind: ActivationDynamic, trigger: TriggerFlop},
	entities.EffectMoneyPerReroll:      {kind: ActivationDynamic, trigger: TriggerRerollUsed},
	entities.EffectMoneyOnLevelEnd:     {kind: ActivationDynamic, trigger: TriggerLevelEnd},
}

// ActivationOf returns the activation of an effect tag and, for dynamic
// effects, its trigger.
func ActivationOf(t entities.BlessingEffectType) (Activation, Trigger, bool) {
	a, ok := activations[t]
	return a.kind, a.trigger, ok
}

// CheckPrerequisite verifies b can be acquired: not already owned, and tier
// N-1 of its family owned for N > 1.
func CheckPrerequisite(game *entities.GameState, b entities.Blessing) *errors.Error {
	if game.HasBlessing(b.ID) {
		return errors.AlreadyOwned("Blessing already owned")
	}
	if b.Tier <= 1 {
		return nil
	}
	if !ownsTier(game, b.Family, b.Tier-1) {
		return errors.FailedPrecondition("Requires the previous tier of this blessing")
	}
	return nil
}

func ownsTier(game *entities.GameState, family string, tier int) bool {
	for _, owned := range game.Blessings {
		if owned.Family == family && owned.Tier == tier {
			return true
		}
	}
	return false
}

// ApplyPurchase adds b to a copy of game and folds in its static effect.
// On error game is returned as is.
func ApplyPurchase(game *entities.GameState, b entities.Blessing) (*entities.GameState, *errors.Error) {
	if err := CheckPrerequisite(game, b); err != nil {
		return game, err
	}
	out := game.Clone()
	out.Blessings = append(out.Blessings, b)

	if a, ok := activations[b.Effect.Type]; !ok || a.kind != ActivationStatic {
		return out, nil
	}
	switch b.Effect.Type {
	case entities.EffectCharmSlots:
		out.CharmSlots += b.Effect.Amount
	case entities.EffectConsumableSlots:
		out.ConsumableSlots += b.Effect.Amount
	case entities.EffectBaseRerolls:
		out.BaseRerolls += b.Effect.Amount
	case entities.EffectBaseBanks:
		out.BaseBanks += b.Effect.Amount
	}
	return out, nil
}

// ApplyDynamicEffects folds every owned blessing matching trigger into a copy
// of game. Blessings that do not react to trigger are left alone.
func ApplyDynamicEffects(game *entities.GameState, trigger Trigger) *entities.GameState {
	out := game.Clone()
	for _, b := range game.Blessings {
		a, ok := activations[b.Effect.Type]
		if !ok || a.kind != ActivationDynamic || a.trigger != trigger {
			continue
		}
		switch b.Effect.Type {
		case entities.EffectRerollOnBank, entities.EffectRerollOnFlop:
			out.Rerolls += b.Effect.Amount
		case entities.EffectMoneyPerReroll, entities.EffectMoneyOnLevelEnd:
			out.Money += b.Effect.Amount
		}
	}
	return out
}

// DiscountPercent sums every owned shopDiscount, capped at 100
func DiscountPercent(game *entities.GameState) int {
	return min(sumPassive(game, entities.EffectShopDiscount), 100)
}

// BonusShopSlots returns the extra shop items granted by owned blessings
func BonusShopSlots(game *entities.GameState) int {
	return sumPassive(game, entities.EffectShopItemsAvailable)
}

// SellsAtPurchasePrice reports whether a sellAtPurchasePrice blessing is owned
func SellsAtPurchasePrice(game *entities.GameState) bool {
	for _, b := range game.Blessings {
		if b.Effect.Type == entities.EffectSellAtPurchasePrice {
			return true
		}
	}
	return false
}

func sumPassive(game *entities.GameState, t entities.BlessingEffectType) int {
	total := 0
	for _, b := range game.Blessings {
		if b.Effect.Type == t {
			total += b.Effect.Amount
		}
	}
	return max(total, 0)
}
