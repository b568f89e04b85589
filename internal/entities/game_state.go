package entities

import (
	"maps"
	"slices"
)

// Difficulty selects the run's price modifier
type Difficulty string

// Difficulties, easiest first
const (
	DifficultyPlastic  Difficulty = "plastic"
	DifficultyCopper   Difficulty = "copper"
	DifficultySilver   Difficulty = "silver"
	DifficultyGold     Difficulty = "gold"
	DifficultyPlatinum Difficulty = "platinum"
	DifficultyDiamond  Difficulty = "diamond"
)

var difficultyPriceModifiers = map[Difficulty]float64{
	DifficultyPlastic:  1.0,
	DifficultyCopper:   1.0,
	DifficultySilver:   1.1,
	DifficultyGold:     1.2,
	DifficultyPlatinum: 1.3,
	DifficultyDiamond:  1.5,
}

// Difficulties lists every difficulty name
func Difficulties() []string {
	return []string{
		string(DifficultyPlastic), string(DifficultyCopper), string(DifficultySilver),
		string(DifficultyGold), string(DifficultyPlatinum), string(DifficultyDiamond),
	}
}

// PriceModifier returns the shop price multiplier. Unknown difficulties price
// like plastic.
func (d Difficulty) PriceModifier() float64 {
	if m, ok := difficultyPriceModifiers[d]; ok {
		return m
	}
	return 1.0
}

// History is the free-form tracker bag read by specific charms and effects
type History struct {
	Counters           map[string]int  `json:"counters"`
	ConsumableUsage    map[string]int  `json:"consumableUsage"`
	LastConsumableUsed *Consumable     `json:"lastConsumableUsed,omitempty"`
	Unlocked           map[string]bool `json:"unlocked"`
}

// Clone returns a deep copy
func (h History) Clone() History {
	out := History{
		Counters:        maps.Clone(h.Counters),
		ConsumableUsage: maps.Clone(h.ConsumableUsage),
		Unlocked:        maps.Clone(h.Unlocked),
	}
	if h.LastConsumableUsed != nil {
		last := *h.LastConsumableUsed
		out.LastConsumableUsed = &last
	}
	return out
}

// Counter returns a named counter, zero when unset
func (h History) Counter(key string) int {
	return h.Counters[key]
}

// AddCounter adds delta to a named counter
func (h *History) AddCounter(key string, delta int) {
	if h.Counters == nil {
		h.Counters = make(map[string]int)
	}
	h.Counters[key] += delta
}

// GameState is the whole owned state of a run. Engine operations never
// mutate one in place; they Clone and return the copy.
type GameState struct {
	Money             int            `json:"money"`
	Charms            []Charm        `json:"charms"`
	Consumables       []Consumable   `json:"consumables"`
	Blessings         []Blessing     `json:"blessings"`
	CharmSlots        int            `json:"charmSlots"`
	ConsumableSlots   int            `json:"consumableSlots"`
	DiceSet           []Die          `json:"diceSet"`
	MaxDice           int            `json:"maxDice"`
	ShopVouchers      int            `json:"shopVouchers"`
	Difficulty        Difficulty     `json:"difficulty"`
	BaseRerolls       int            `json:"baseRerolls"`
	BaseBanks         int            `json:"baseBanks"`
	Rerolls           int            `json:"rerolls"`
	Banks             int            `json:"banks"`
	CombinationLevels map[string]int `json:"combinationLevels"`
	History           History        `json:"history"`
}

// Starting values for a new run
const (
	StartingMoney           = 10
	StartingCharmSlots      = 4
	StartingConsumableSlots = 2
	StartingRerolls         = 3
	StartingBanks           = 3
	DefaultMaxDice          = 10
)

// NewGameState creates the opening state of a run
func NewGameState(difficulty Difficulty) *GameState {
	if difficulty == "" {
		difficulty = DifficultyPlastic
	}
	return &GameState{
		Money:             StartingMoney,
		Charms:            []Charm{},
		Consumables:       []Consumable{},
		Blessings:         []Blessing{},
		CharmSlots:        StartingCharmSlots,
		ConsumableSlots:   StartingConsumableSlots,
		DiceSet:           StartingDice(),
		MaxDice:           DefaultMaxDice,
		Difficulty:        difficulty,
		BaseRerolls:       StartingRerolls,
		BaseBanks:         StartingBanks,
		Rerolls:           StartingRerolls,
		Banks:             StartingBanks,
		CombinationLevels: map[string]int{},
		History: History{
			Counters:        map[string]int{},
			ConsumableUsage: map[string]int{},
			Unlocked:        map[string]bool{},
		},
	}
}

// Clone returns a deep copy with no aliasing
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	out := *g
	out.Charms = slices.Clone(g.Charms)
	out.Consumables = slices.Clone(g.Consumables)
	out.Blessings = slices.Clone(g.Blessings)
	out.DiceSet = cloneDice(g.DiceSet)
	out.CombinationLevels = maps.Clone(g.CombinationLevels)
	out.History = g.History.Clone()
	return &out
}

// HasCharm reports whether a charm with id is owned
func (g *GameState) HasCharm(id string) bool {
	return slices.ContainsFunc(g.Charms, func(c Charm) bool { return c.ID == id })
}

// HasConsumable reports whether a consumable with id is owned
func (g *GameState) HasConsumable(id string) bool {
	return slices.ContainsFunc(g.Consumables, func(c Consumable) bool { return c.ID == id })
}

// HasBlessing reports whether a blessing with id is owned
func (g *GameState) HasBlessing(id string) bool {
	return slices.ContainsFunc(g.Blessings, func(b Blessing) bool { return b.ID == id })
}

// HasActiveCharm reports whether an active charm with id is owned
func (g *GameState) HasActiveCharm(id string) bool {
	return slices.ContainsFunc(g.Charms, func(c Charm) bool { return c.ID == id && c.Active })
}

// FreeCharmSlots returns how many more charms fit
func (g *GameState) FreeCharmSlots() int {
	return max(g.CharmSlots-len(g.Charms), 0)
}

// FreeConsumableSlots returns how many more consumables fit
func (g *GameState) FreeConsumableSlots() int {
	return max(g.ConsumableSlots-len(g.Consumables), 0)
}

// DieIndex returns the index of the die with id in the dice set, or -1
func (g *GameState) DieIndex(id string) int {
	return slices.IndexFunc(g.DiceSet, func(d Die) bool { return d.ID == id })
}

// CombinationLevel returns the upgrade level of a combination, minimum 1
func (g *GameState) CombinationLevel(combination string) int {
	if lvl := g.CombinationLevels[combination]; lvl > 1 {
		return lvl
	}
	return 1
}

// RoundState is scoped to one scoring round
type RoundState struct {
	DiceHand        []Die `json:"diceHand"`
	RoundPoints     int   `json:"roundPoints"`
	ForfeitedPoints int   `json:"forfeitedPoints"`
	HotDiceCount    int   `json:"hotDiceCount"`
}

// Clone returns a deep copy
func (r *RoundState) Clone() *RoundState {
	if r == nil {
		return nil
	}
	out := *r
	out.DiceHand = cloneDice(r.DiceHand)
	return &out
}
