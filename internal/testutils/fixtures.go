package testutils

import (
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
)

// TestRunID is the default run id for test fixtures
const TestRunID = "run_test_001"

// CreateTestHand puts the first len(values) starting dice in hand showing
// values. At most six values.
func CreateTestHand(values ...int) *entities.RoundState {
	dice := entities.StartingDice()[:len(values)]
	for i, v := range values {
		dice[i].RolledValue = v
	}
	return &entities.RoundState{DiceHand: dice}
}

// CreateTestShop builds a shop holding the given items, all unsold
func CreateTestShop(charms []entities.Charm, consumables []entities.Consumable, blessings []entities.Blessing) *entities.ShopState {
	shop := &entities.ShopState{
		AvailableCharms:      make([]*entities.Charm, len(charms)),
		AvailableConsumables: make([]*entities.Consumable, len(consumables)),
		AvailableBlessings:   make([]*entities.Blessing, len(blessings)),
	}
	for i := range charms {
		shop.AvailableCharms[i] = &charms[i]
	}
	for i := range consumables {
		shop.AvailableConsumables[i] = &consumables[i]
	}
	for i := range blessings {
		shop.AvailableBlessings[i] = &blessings[i]
	}
	return shop
}
