// Package consumables resolves one consumable use at a time. Targeted
// effects are two-phase: a call without input only describes the targeting
// needed, and a later call with input performs the effect.
package consumables

import (
	"slices"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/charms"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// Config holds the dependencies for a resolver
type Config struct {
	Catalog  *catalog.Catalog
	Effects  *Registry
	Charms   *charms.Registry
	Notifier notify.Notifier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Effects == nil {
		vb.RequiredField("Effects")
	}
	if c.Charms == nil {
		vb.RequiredField("Charms")
	}
	return vb.Build()
}

// Resolver applies consumable effects
type Resolver struct {
	catalog  *catalog.Catalog
	effects  *Registry
	charms   *charms.Registry
	notifier notify.Notifier
}

// NewResolver creates a resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Resolver{
		catalog:  cfg.Catalog,
		effects:  cfg.Effects,
		charms:   cfg.Charms,
		notifier: notify.OrNop(cfg.Notifier),
	}, nil
}

// ApplyInput selects the consumable to use
type ApplyInput struct {
	Index int
	Game  *entities.GameState
	Round *entities.RoundState
	// Input is nil on the first phase of a targeted effect
	Input  *TargetInput
	Random random.Source
}

// Unlock is reported the first time a consumable id is used in a run
type Unlock struct {
	ID   string
	Name string
}

// Result is the outcome of one Apply call. Game and Round are the inputs,
// untouched, unless Success is set and RequiresInput is nil.
type Result struct {
	Success bool
	// ShouldRemove is set when the consumable was consumed
	ShouldRemove  bool
	Message       string
	Code          errors.Code
	RequiresInput *RequiresInput
	Game          *entities.GameState
	Round         *entities.RoundState
	Consumable    entities.Consumable
	Unlock        *Unlock
	// Prevented is set when a charm kept the consumable from being consumed
	Prevented bool
	// Bonus is an extra consumable granted by a charm
	Bonus *entities.Consumable
}

func (r *Resolver) reject(in *ApplyInput, c entities.Consumable, err *errors.Error) *Result {
	return &Result{
		Message:    err.Message,
		Code:       err.Code,
		Game:       in.Game,
		Round:      in.Round,
		Consumable: c,
	}
}

// Apply uses the consumable at in.Index.
//
// Random draws happen in a fixed order: the effect's own draws, then one
// draw for consumption prevention, then one for the bonus item. The last
// two are only drawn when an active charm grants the chance. Drawing
// effects are rejected without a Random source; the charm chances are
// skipped.
func (r *Resolver) Apply(in *ApplyInput) *Result {
	if in.Game == nil {
		return &Result{Message: "Game state is required", Code: errors.CodeInvalidArgument}
	}
	if in.Index < 0 || in.Index >= len(in.Game.Consumables) {
		return r.reject(in, entities.Consumable{}, errors.InvalidIndex("Invalid consumable index"))
	}
	item := in.Game.Consumables[in.Index]
	effect, ok := r.effects.Lookup(item.ID)
	if !ok {
		return r.reject(in, item, errors.NotFoundf("Unknown consumable %q", item.ID))
	}

	if t, ok := effect.(Targeted); ok {
		req := t.Target(in.Game, in.Round)
		if len(req.EligibleDice) == 0 {
			return r.reject(in, item, errors.InvalidTarget("No eligible dice"))
		}
		if in.Input == nil {
			return &Result{
				Success:       true,
				Message:       req.Description,
				RequiresInput: req,
				Game:          in.Game,
				Round:         in.Round,
				Consumable:    item,
			}
		}
		if err := validateInput(req, in.Input, in.Game, in.Round); err != nil {
			return r.reject(in, item, err)
		}
	}

	if d, ok := effect.(Drawing); ok && d.UsesRandom() && in.Random == nil {
		return r.reject(in, item, errors.InvalidArgument("Random source is required"))
	}

	ctx := &EffectContext{
		Consumable: item,
		Game:       in.Game.Clone(),
		Round:      in.Round.Clone(),
		Input:      in.Input,
		Random:     in.Random,
		Catalog:    r.catalog,
	}
	ctx.Game.Consumables = slices.Delete(ctx.Game.Consumables, in.Index, in.Index+1)

	msg, err := effect.Apply(ctx)
	if err != nil {
		return r.reject(in, item, err)
	}

	res := &Result{
		Success:      true,
		ShouldRemove: true,
		Message:      msg,
		Game:         ctx.Game,
		Round:        ctx.Round,
		Consumable:   item,
	}
	r.track(res, item)
	r.rollCharmChances(in, res, item)

	for _, s := range ctx.signals {
		r.notifier.Notify(s.Event, s.Payload)
	}
	r.notifier.Notify(notify.EventConsumableUsed, map[string]any{
		"consumable_id": item.ID,
		"removed":       res.ShouldRemove,
	})
	return res
}

// track records usage. Echo never becomes the last used consumable.
func (r *Resolver) track(res *Result, item entities.Consumable) {
	h := &res.Game.History
	if h.ConsumableUsage == nil {
		h.ConsumableUsage = map[string]int{}
	}
	h.ConsumableUsage[item.ID]++
	if item.ID != EchoID {
		last := item
		h.LastConsumableUsed = &last
	}
	if !h.Unlocked[item.ID] {
		if h.Unlocked == nil {
			h.Unlocked = map[string]bool{}
		}
		h.Unlocked[item.ID] = true
		res.Unlock = &Unlock{ID: item.ID, Name: item.Name}
	}
}

// rollCharmChances draws for consumption prevention and then for a bonus
// whim, each only when an active charm offers the chance. The bonus item is
// picked from the same draw that won it.
func (r *Resolver) rollCharmChances(in *ApplyInput, res *Result, item entities.Consumable) {
	if in.Random == nil {
		return
	}

	if chance := r.charms.SaveChance(in.Game, item); chance > 0 {
		if in.Random.Float64() < chance && res.Game.FreeConsumableSlots() > 0 {
			at := min(in.Index, len(res.Game.Consumables))
			res.Game.Consumables = slices.Insert(res.Game.Consumables, at, item)
			res.ShouldRemove = false
			res.Prevented = true
			r.notifier.Notify(notify.EventConsumableSaved, map[string]any{"consumable_id": item.ID})
		}
	}

	if chance := r.charms.BonusChance(in.Game, item); chance > 0 {
		draw := in.Random.Float64()
		if draw >= chance {
			return
		}
		bonus, err := grantConsumable(res.Game, r.catalog, entities.CategoryWhim, "", func(n int) int {
			return min(int(draw/chance*float64(n)), n-1)
		})
		if err != nil {
			return
		}
		res.Bonus = &bonus
		r.notifier.Notify(notify.EventItemGenerated, map[string]any{"kind": "consumable", "id": bonus.ID, "bonus": true})
	}
}
