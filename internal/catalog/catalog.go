// Package catalog holds the static, read-only definitions of every charm,
// consumable and blessing.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

//go:embed data/catalog.yaml
var defaultData []byte

// CharmDefinition describes one charm
type CharmDefinition struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Rarity      entities.Rarity    `yaml:"rarity"`
	Params      map[string]float64 `yaml:"params"`
}

// Param returns a numeric parameter or def when absent
func (d CharmDefinition) Param(key string, def float64) float64 {
	return param(d.Params, key, def)
}

// NewCharm creates an owned, active instance
func (d CharmDefinition) NewCharm() entities.Charm {
	return entities.Charm{ID: d.ID, Name: d.Name, Rarity: d.Rarity, Active: true}
}

// ConsumableDefinition describes one consumable
type ConsumableDefinition struct {
	ID          string                      `yaml:"id"`
	Name        string                      `yaml:"name"`
	Description string                      `yaml:"description"`
	Category    entities.ConsumableCategory `yaml:"category"`
	Params      map[string]float64          `yaml:"params"`
	Combination string                      `yaml:"combination,omitempty"`
	Pip         entities.PipEffect          `yaml:"pip,omitempty"`
}

// Param returns a numeric parameter or def when absent
func (d ConsumableDefinition) Param(key string, def float64) float64 {
	return param(d.Params, key, def)
}

// NewConsumable creates a single-use instance
func (d ConsumableDefinition) NewConsumable() entities.Consumable {
	return entities.Consumable{ID: d.ID, Name: d.Name, Uses: 1, Category: d.Category}
}

// BlessingDefinition describes one tier of a blessing family
type BlessingDefinition struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Family      string                  `yaml:"family"`
	Tier        int                     `yaml:"tier"`
	Effect      entities.BlessingEffect `yaml:"effect"`
}

// NewBlessing creates an owned instance
func (d BlessingDefinition) NewBlessing() entities.Blessing {
	return entities.Blessing{ID: d.ID, Name: d.Name, Family: d.Family, Tier: d.Tier, Effect: d.Effect}
}

func param(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

type document struct {
	Charms      []CharmDefinition      `yaml:"charms"`
	Consumables []ConsumableDefinition `yaml:"consumables"`
	Blessings   []BlessingDefinition   `yaml:"blessings"`
}

// Catalog is an immutable set of item definitions. Lookups never expose the
// backing slices.
type Catalog struct {
	charms      []CharmDefinition
	consumables []ConsumableDefinition
	blessings   []BlessingDefinition

	charmIndex      map[string]int
	consumableIndex map[string]int
	blessingIndex   map[string]int
	// family -> tier -> blessing index
	tiers map[string]map[int]int
}

// New builds a catalog from definitions. Ids must be unique across all
// three lists; a duplicate is rejected rather than resolved.
func New(charms []CharmDefinition, consumables []ConsumableDefinition, blessings []BlessingDefinition) (*Catalog, error) {
	c := &Catalog{
		charms:          slices.Clone(charms),
		consumables:     slices.Clone(consumables),
		blessings:       slices.Clone(blessings),
		charmIndex:      make(map[string]int, len(charms)),
		consumableIndex: make(map[string]int, len(consumables)),
		blessingIndex:   make(map[string]int, len(blessings)),
		tiers:           make(map[string]map[int]int),
	}

	var errs []error
	seen := make(map[string]string)
	claim := func(kind, id string) bool {
		if id == "" {
			errs = append(errs, errors.InvalidArgumentf("%s with empty id", kind))
			return false
		}
		if prev, ok := seen[id]; ok {
			errs = append(errs, errors.AlreadyExists(fmt.Sprintf("duplicate id %q (%s and %s)", id, prev, kind)))
			return false
		}
		seen[id] = kind
		return true
	}

	for i, d := range c.charms {
		if !claim("charm", d.ID) {
			continue
		}
		if !d.Rarity.IsValid() {
			errs = append(errs, errors.InvalidArgumentf("charm %q has unknown rarity %q", d.ID, d.Rarity))
		}
		c.charmIndex[d.ID] = i
	}

	for i, d := range c.consumables {
		if !claim("consumable", d.ID) {
			continue
		}
		if !d.Category.IsValid() {
			errs = append(errs, errors.InvalidArgumentf("consumable %q has unknown category %q", d.ID, d.Category))
		}
		if d.Category == entities.CategoryCombinationUpgrade && d.Combination == "" {
			errs = append(errs, errors.InvalidArgumentf("combination upgrade %q names no combination", d.ID))
		}
		if d.Pip != "" && !d.Pip.IsValid() {
			errs = append(errs, errors.InvalidArgumentf("consumable %q has unknown pip %q", d.ID, d.Pip))
		}
		c.consumableIndex[d.ID] = i
	}

	for i, d := range c.blessings {
		if !claim("blessing", d.ID) {
			continue
		}
		if d.Family == "" {
			errs = append(errs, errors.InvalidArgumentf("blessing %q has no family", d.ID))
			continue
		}
		if d.Tier < 1 || d.Tier > entities.MaxBlessingTier {
			errs = append(errs, errors.InvalidArgumentf("blessing %q has tier %d", d.ID, d.Tier))
			continue
		}
		if c.tiers[d.Family] == nil {
			c.tiers[d.Family] = make(map[int]int)
		}
		if _, dup := c.tiers[d.Family][d.Tier]; dup {
			errs = append(errs, errors.AlreadyExists(fmt.Sprintf("blessing family %q defines tier %d twice", d.Family, d.Tier)))
			continue
		}
		c.tiers[d.Family][d.Tier] = i
		c.blessingIndex[d.ID] = i
	}

	for family, tiers := range c.tiers {
		for tier := range tiers {
			if tier > 1 {
				if _, ok := tiers[tier-1]; !ok {
					errs = append(errs, errors.InvalidArgumentf("blessing family %q has tier %d without tier %d", family, tier, tier-1))
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.WrapWithCode(errors.Join(errs...), errors.CodeInvalidArgument, "invalid catalog")
	}
	return c, nil
}

// Load decodes a YAML catalog document. Unknown fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode catalog")
	}
	return New(doc.Charms, doc.Consumables, doc.Blessings)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded game catalog. The embedded data is validated
// by tests, so a failure here is a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(defaultData))
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Charms returns every charm definition in catalog order
func (c *Catalog) Charms() []CharmDefinition {
	return slices.Clone(c.charms)
}

// Consumables returns every consumable definition in catalog order
func (c *Catalog) Consumables() []ConsumableDefinition {
	return slices.Clone(c.consumables)
}

// Blessings returns every blessing definition in catalog order
func (c *Catalog) Blessings() []BlessingDefinition {
	return slices.Clone(c.blessings)
}

// Charm looks up a charm definition
func (c *Catalog) Charm(id string) (CharmDefinition, bool) {
	i, ok := c.charmIndex[id]
	if !ok {
		return CharmDefinition{}, false
	}
	return c.charms[i], true
}

// Consumable looks up a consumable definition
func (c *Catalog) Consumable(id string) (ConsumableDefinition, bool) {
	i, ok := c.consumableIndex[id]
	if !ok {
		return ConsumableDefinition{}, false
	}
	return c.consumables[i], true
}

// Blessing looks up a blessing definition
func (c *Catalog) Blessing(id string) (BlessingDefinition, bool) {
	i, ok := c.blessingIndex[id]
	if !ok {
		return BlessingDefinition{}, false
	}
	return c.blessings[i], true
}

// Prerequisite returns the tier below def in its family. Tier 1 has none.
func (c *Catalog) Prerequisite(def BlessingDefinition) (BlessingDefinition, bool) {
	if def.Tier <= 1 {
		return BlessingDefinition{}, false
	}
	i, ok := c.tiers[def.Family][def.Tier-1]
	if !ok {
		return BlessingDefinition{}, false
	}
	return c.blessings[i], true
}

// CharmsByRarity returns the charm definitions of one rarity
func (c *Catalog) CharmsByRarity(r entities.Rarity) []CharmDefinition {
	var out []CharmDefinition
	for _, d := range c.charms {
		if d.Rarity == r {
			out = append(out, d)
		}
	}
	return out
}

// ConsumablesByCategory returns the consumable definitions of one category
func (c *Catalog) ConsumablesByCategory(cat entities.ConsumableCategory) []ConsumableDefinition {
	var out []ConsumableDefinition
	for _, d := range c.consumables {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}
