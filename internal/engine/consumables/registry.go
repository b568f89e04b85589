package consumables

import (
	"fmt"
	"sort"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// EchoID is the consumable whose use never updates the last-used tracker
const EchoID = "echo"

// Registry maps consumable ids to effects
type Registry struct {
	effects map[string]Effect
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{effects: make(map[string]Effect)}
}

// Register binds an effect to id. An id may be registered once.
func (r *Registry) Register(id string, e Effect) error {
	if id == "" || e == nil {
		return errors.InvalidArgument("effect must have an id")
	}
	if _, dup := r.effects[id]; dup {
		return errors.AlreadyExists(fmt.Sprintf("consumable effect %q already registered", id))
	}
	r.effects[id] = e
	return nil
}

// Lookup returns the effect for id
func (r *Registry) Lookup(id string) (Effect, bool) {
	e, ok := r.effects[id]
	return e, ok
}

// IDs returns the registered ids, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.effects))
	for id := range r.effects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry binds every shipped consumable. Combination upgrades and
// pip brands are bound from their catalog definitions.
func DefaultRegistry(cat *catalog.Catalog) (*Registry, error) {
	p := func(id, key string, def float64) float64 {
		d, ok := cat.Consumable(id)
		if !ok {
			return def
		}
		return d.Param(key, def)
	}

	r := NewRegistry()
	fixed := map[string]Effect{
		"moneyDoubler":    &MoneyDoubler{Cap: int(p("moneyDoubler", "cap", 20))},
		"extraRerolls":    &ExtraRerolls{Amount: int(p("extraRerolls", "amount", 2))},
		"extraBanks":      &ExtraBanks{Amount: int(p("extraBanks", "amount", 1))},
		"chisel":          &Chisel{},
		"potteryWheel":    &PotteryWheel{},
		"forfeitRecovery": &ForfeitRecovery{},
		"materialCopy":    &MaterialCopy{},
		"charmGenerator":  &CharmGrant{Rarities: []entities.Rarity{entities.RarityCommon, entities.RarityUncommon, entities.RarityRare}},
		"whimGenerator":   &ConsumableGrant{Category: entities.CategoryWhim},
		"addDie":          &AddDie{Sides: int(p("addDie", "sides", 6))},
		"voucher":         &Voucher{Amount: int(p("voucher", "amount", 1))},
		EchoID:            &Echo{},
		"legendaryCharm":  &CharmGrant{Rarities: []entities.Rarity{entities.RarityRare, entities.RarityLegendary}},
		"slotExpansion":   &SlotExpansion{Amount: int(p("slotExpansion", "amount", 1))},
		"wishGenerator":   &ConsumableGrant{Category: entities.CategoryWish},
	}
	for id, e := range fixed {
		if err := r.Register(id, e); err != nil {
			return nil, err
		}
	}

	for _, def := range cat.Consumables() {
		var e Effect
		switch {
		case def.Category == entities.CategoryCombinationUpgrade:
			e = &CombinationUpgrade{Combination: def.Combination}
		case def.Pip != "":
			e = &PipBrand{Pip: def.Pip}
		default:
			continue
		}
		if err := r.Register(def.ID, e); err != nil {
			return nil, err
		}
	}
	return r, nil
}
