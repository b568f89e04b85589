package builders

import (
	"fmt"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
)

// GameStateBuilder provides a fluent interface for building test GameState
// instances. Item ids are resolved against the default catalog and unknown
// ids panic.
type GameStateBuilder struct {
	game    *entities.GameState
	catalog *catalog.Catalog
}

// NewGameStateBuilder starts from the opening state of a plastic run
func NewGameStateBuilder() *GameStateBuilder {
	return &GameStateBuilder{
		game:    entities.NewGameState(entities.DifficultyPlastic),
		catalog: catalog.Default(),
	}
}

// WithDifficulty sets the difficulty
func (b *GameStateBuilder) WithDifficulty(d entities.Difficulty) *GameStateBuilder {
	b.game.Difficulty = d
	return b
}

// WithMoney sets the money
func (b *GameStateBuilder) WithMoney(money int) *GameStateBuilder {
	b.game.Money = money
	return b
}

// WithCharms appends active charms in order
func (b *GameStateBuilder) WithCharms(ids ...string) *GameStateBuilder {
	for _, id := range ids {
		def, ok := b.catalog.Charm(id)
		if !ok {
			panic(fmt.Sprintf("unknown charm %q", id))
		}
		b.game.Charms = append(b.game.Charms, def.NewCharm())
	}
	return b
}

// WithConsumables appends consumables in order
func (b *GameStateBuilder) WithConsumables(ids ...string) *GameStateBuilder {
	for _, id := range ids {
		def, ok := b.catalog.Consumable(id)
		if !ok {
			panic(fmt.Sprintf("unknown consumable %q", id))
		}
		b.game.Consumables = append(b.game.Consumables, def.NewConsumable())
	}
	return b
}

// WithBlessings appends blessings as owned, without applying their effects
func (b *GameStateBuilder) WithBlessings(ids ...string) *GameStateBuilder {
	for _, id := range ids {
		def, ok := b.catalog.Blessing(id)
		if !ok {
			panic(fmt.Sprintf("unknown blessing %q", id))
		}
		b.game.Blessings = append(b.game.Blessings, def.NewBlessing())
	}
	return b
}

// WithSlots sets charm and consumable capacity
func (b *GameStateBuilder) WithSlots(charmSlots, consumableSlots int) *GameStateBuilder {
	b.game.CharmSlots = charmSlots
	b.game.ConsumableSlots = consumableSlots
	return b
}

// WithVouchers sets the shop vouchers
func (b *GameStateBuilder) WithVouchers(n int) *GameStateBuilder {
	b.game.ShopVouchers = n
	return b
}

// Build returns a copy of the built state
func (b *GameStateBuilder) Build() *entities.GameState {
	return b.game.Clone()
}
