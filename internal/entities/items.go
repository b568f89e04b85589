package entities

// Rarity is a charm tier
type Rarity string

// Charm rarities, lowest first
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every rarity in shop-threshold order
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}

// IsValid reports whether r is a known rarity
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityLegendary:
		return true
	}
	return false
}

// ConsumableCategory groups consumables for shop weighting and pricing
type ConsumableCategory string

// Consumable categories
const (
	CategoryWish               ConsumableCategory = "wish"
	CategoryWhim               ConsumableCategory = "whim"
	CategoryCombinationUpgrade ConsumableCategory = "combinationUpgrade"
)

// ConsumableCategories lists every category in shop-threshold order
var ConsumableCategories = []ConsumableCategory{CategoryWish, CategoryWhim, CategoryCombinationUpgrade}

// IsValid reports whether c is a known category
func (c ConsumableCategory) IsValid() bool {
	switch c {
	case CategoryWish, CategoryWhim, CategoryCombinationUpgrade:
		return true
	}
	return false
}

// Charm is a persistent owned item. Only Active changes after acquisition.
type Charm struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rarity Rarity `json:"rarity"`
	Active bool   `json:"active"`
}

// Consumable is a single-use owned item
type Consumable struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Uses     int                `json:"uses"`
	Category ConsumableCategory `json:"category"`
}

// BlessingEffectType tags what a blessing does. The activation moment of each
// tag is fixed by the blessings package, never inferred from the name.
type BlessingEffectType string

// Blessing effect tags
const (
	EffectCharmSlots          BlessingEffectType = "charmSlots"
	EffectConsumableSlots     BlessingEffectType = "consumableSlots"
	EffectBaseRerolls         BlessingEffectType = "baseRerolls"
	EffectBaseBanks           BlessingEffectType = "baseBanks"
	EffectShopDiscount        BlessingEffectType = "shopDiscount"
	EffectShopItemsAvailable  BlessingEffectType = "shopItemsAvailable"
	EffectSellAtPurchasePrice BlessingEffectType = "sellAtPurchasePrice"
	EffectRerollOnBank        BlessingEffectType = "rerollOnBank"
	EffectRerollOnFlop        BlessingEffectType = "rerollOnFlop"
	EffectMoneyPerReroll      BlessingEffectType = "moneyPerReroll"
	EffectMoneyOnLevelEnd     BlessingEffectType = "moneyOnLevelEnd"
)

// BlessingEffect is the tagged effect payload of a blessing
type BlessingEffect struct {
	Type   BlessingEffectType `json:"type"`
	Amount int                `json:"amount"`
}

// Blessing is a permanent tiered upgrade. Tiers of one family share Family.
type Blessing struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Family string         `json:"family"`
	Tier   int            `json:"tier"`
	Effect BlessingEffect `json:"effect"`
}

// MaxBlessingTier is the highest tier in every family
const MaxBlessingTier = 3
