// Package shop generates weighted shop inventories and prices, buys, sells
// and refreshes them. Every operation returns new states and leaves its
// inputs alone.
package shop

import (
	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// Inventory sizes before blessing bonuses
const (
	BaseCharmCount      = 4
	BaseConsumableCount = 2
	BaseBlessingCount   = 1
)

const errRandomRequired = "Random source is required"

type tier[K comparable] struct {
	key       K
	threshold float64
}

// charmThresholds maps a draw onto a rarity, cumulative
var charmThresholds = []tier[entities.Rarity]{
	{entities.RarityCommon, 0.60},
	{entities.RarityUncommon, 0.90},
	{entities.RarityRare, 0.99},
	{entities.RarityLegendary, 1.00},
}

var consumableThresholds = []tier[entities.ConsumableCategory]{
	{entities.CategoryWish, 0.10},
	{entities.CategoryWhim, 0.60},
	{entities.CategoryCombinationUpgrade, 1.00},
}

// CharmRarityWeights returns the draw probability of each rarity
func CharmRarityWeights() map[entities.Rarity]float64 {
	return weights(charmThresholds)
}

// ConsumableCategoryWeights returns the draw probability of each category
func ConsumableCategoryWeights() map[entities.ConsumableCategory]float64 {
	return weights(consumableThresholds)
}

func weights[K comparable](tiers []tier[K]) map[K]float64 {
	out := make(map[K]float64, len(tiers))
	prev := 0.0
	for _, t := range tiers {
		out[t.key] = t.threshold - prev
		prev = t.threshold
	}
	return out
}

// Config holds the dependencies for a shop
type Config struct {
	Catalog  *catalog.Catalog
	Notifier notify.Notifier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// Shop generates inventories from a catalog
type Shop struct {
	catalog  *catalog.Catalog
	notifier notify.Notifier
}

// New creates a shop
func New(cfg *Config) (*Shop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Shop{
		catalog:  cfg.Catalog,
		notifier: notify.OrNop(cfg.Notifier),
	}, nil
}

// Generate draws a fresh inventory for game. Draw order is charms, then
// consumables, then blessings.
func (s *Shop) Generate(game *entities.GameState, src random.Source) (*entities.ShopState, error) {
	if game == nil {
		return nil, errors.InvalidArgument("Game state is required")
	}
	if src == nil {
		return nil, errors.InvalidArgument(errRandomRequired)
	}

	bonus := blessings.BonusShopSlots(game)

	charmBuckets := make(map[entities.Rarity][]entities.Charm)
	for _, def := range s.catalog.Charms() {
		if !game.HasCharm(def.ID) {
			charmBuckets[def.Rarity] = append(charmBuckets[def.Rarity], def.NewCharm())
		}
	}
	consumableBuckets := make(map[entities.ConsumableCategory][]entities.Consumable)
	for _, def := range s.catalog.Consumables() {
		if !game.HasConsumable(def.ID) {
			consumableBuckets[def.Category] = append(consumableBuckets[def.Category], def.NewConsumable())
		}
	}

	out := &entities.ShopState{
		AvailableCharms:      toPtrs(drawWeighted(src, charmThresholds, charmBuckets, BaseCharmCount+bonus)),
		AvailableConsumables: toPtrs(drawWeighted(src, consumableThresholds, consumableBuckets, BaseConsumableCount+bonus)),
		AvailableBlessings:   toPtrs(drawUniform(src, s.blessingCandidates(game), BaseBlessingCount)),
	}

	for _, c := range out.AvailableCharms {
		s.notifyGenerated("charm", c.ID)
	}
	for _, c := range out.AvailableConsumables {
		s.notifyGenerated("consumable", c.ID)
	}
	for _, b := range out.AvailableBlessings {
		s.notifyGenerated("blessing", b.ID)
	}
	s.notifier.Notify(notify.EventShopGenerated, map[string]any{
		"charms":      len(out.AvailableCharms),
		"consumables": len(out.AvailableConsumables),
		"blessings":   len(out.AvailableBlessings),
	})
	return out, nil
}

func (s *Shop) notifyGenerated(kind, id string) {
	s.notifier.Notify(notify.EventItemGenerated, map[string]any{"kind": kind, "id": id})
}

// blessingCandidates are unowned blessings whose previous tier is owned.
// Tier 1 needs nothing.
func (s *Shop) blessingCandidates(game *entities.GameState) []entities.Blessing {
	var out []entities.Blessing
	for _, def := range s.catalog.Blessings() {
		b := def.NewBlessing()
		if blessings.CheckPrerequisite(game, b) == nil {
			out = append(out, b)
		}
	}
	return out
}

// drawWeighted fills up to count items. Each item costs one draw for the
// tier, one more when that tier is empty, and one to pick inside the bucket.
// Picked items leave their bucket, so one pass never repeats an item.
func drawWeighted[K comparable, T any](src random.Source, tiers []tier[K], buckets map[K][]T, count int) []T {
	out := make([]T, 0, count)
	for len(out) < count {
		var nonEmpty []K
		for _, t := range tiers {
			if len(buckets[t.key]) > 0 {
				nonEmpty = append(nonEmpty, t.key)
			}
		}
		if len(nonEmpty) == 0 {
			break
		}

		r := src.Float64()
		key := tiers[len(tiers)-1].key
		for _, t := range tiers {
			if r <= t.threshold {
				key = t.key
				break
			}
		}
		if len(buckets[key]) == 0 {
			key = nonEmpty[random.IntN(src, len(nonEmpty))]
		}

		bucket := buckets[key]
		i := random.IntN(src, len(bucket))
		out = append(out, bucket[i])
		buckets[key] = append(bucket[:i:i], bucket[i+1:]...)
	}
	return out
}

func drawUniform[T any](src random.Source, pool []T, count int) []T {
	out := make([]T, 0, count)
	for len(out) < count && len(pool) > 0 {
		i := random.IntN(src, len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i:i], pool[i+1:]...)
	}
	return out
}

func toPtrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		v := items[i]
		out[i] = &v
	}
	return out
}
