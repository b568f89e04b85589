package shop

import (
	"math"

	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
)

// Base prices
const (
	BlessingBasePrice = 5
	RefreshBaseCost   = 5
	RefreshGrowth     = 1.25
)

var charmBasePrices = map[entities.Rarity]int{
	entities.RarityCommon:    4,
	entities.RarityUncommon:  6,
	entities.RarityRare:      8,
	entities.RarityLegendary: 10,
}

var consumableBasePrices = map[entities.ConsumableCategory]int{
	entities.CategoryWhim:               3,
	entities.CategoryWish:               6,
	entities.CategoryCombinationUpgrade: 4,
}

// CharmBasePrice returns the undiscounted price of a rarity
func CharmBasePrice(r entities.Rarity) int {
	if p, ok := charmBasePrices[r]; ok {
		return p
	}
	return charmBasePrices[entities.RarityCommon]
}

// ConsumableBasePrice returns the undiscounted price of a category
func ConsumableBasePrice(c entities.ConsumableCategory) int {
	if p, ok := consumableBasePrices[c]; ok {
		return p
	}
	return consumableBasePrices[entities.CategoryWhim]
}

// ceil rounds up, ignoring float noise below 1e-9
func ceil(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// Price applies the difficulty modifier and the summed blessing discount
// to a base price, rounding up.
func Price(game *entities.GameState, base int) int {
	discount := blessings.DiscountPercent(game)
	return ceil(float64(base) * game.Difficulty.PriceModifier() * float64(100-discount) / 100)
}

// SellValue is half the base price rounded down, or the full undiscounted
// purchase price with a sellAtPurchasePrice blessing.
func SellValue(game *entities.GameState, base int) int {
	if blessings.SellsAtPurchasePrice(game) {
		return ceil(float64(base) * game.Difficulty.PriceModifier())
	}
	return base / 2
}

// CharmPrice returns what buying c costs right now
func CharmPrice(game *entities.GameState, c entities.Charm) int {
	return Price(game, CharmBasePrice(c.Rarity))
}

// ConsumablePrice returns what buying c costs right now
func ConsumablePrice(game *entities.GameState, c entities.Consumable) int {
	return Price(game, ConsumableBasePrice(c.Category))
}

// BlessingPrice returns what buying a blessing costs right now
func BlessingPrice(game *entities.GameState) int {
	return Price(game, BlessingBasePrice)
}

// RefreshCost compounds with each refresh in the same visit
func RefreshCost(game *entities.GameState, refreshCount int) int {
	return ceil(RefreshBaseCost * math.Pow(RefreshGrowth, float64(refreshCount)) * game.Difficulty.PriceModifier())
}
