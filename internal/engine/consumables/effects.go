package consumables

import (
	"fmt"
	"slices"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// EffectContext is what an effect runs against. Game and Round are private
// copies the effect may change freely; the consumable being used has
// already been taken out of Game.Consumables.
type EffectContext struct {
	Consumable entities.Consumable
	Game       *entities.GameState
	Round      *entities.RoundState
	// Input is validated against the effect's RequiresInput before Apply
	Input   *TargetInput
	Random  random.Source
	Catalog *catalog.Catalog

	signals []notify.Signal
}

// Notify queues a signal, sent only if the use succeeds
func (c *EffectContext) Notify(event string, payload map[string]any) {
	c.signals = append(c.signals, notify.Signal{Event: event, Payload: payload})
}

// Effect is one consumable's behaviour. It returns a player-facing message.
// A returned error discards every change made to the context.
type Effect interface {
	Apply(ctx *EffectContext) (string, *errors.Error)
}

// Targeted effects need player input. Target must be pure.
type Targeted interface {
	Effect
	Target(game *entities.GameState, round *entities.RoundState) *RequiresInput
}

// Drawing effects take draws from the random source when applied
type Drawing interface {
	Effect
	UsesRandom() bool
}

// MoneyDoubler doubles money, gaining at most Cap
type MoneyDoubler struct {
	Cap int
}

func (e *MoneyDoubler) Apply(ctx *EffectContext) (string, *errors.Error) {
	gain := min(ctx.Game.Money, e.Cap)
	ctx.Game.Money += gain
	return fmt.Sprintf("Gained %d money", gain), nil
}

// ExtraRerolls adds rerolls for this level
type ExtraRerolls struct {
	Amount int
}

func (e *ExtraRerolls) Apply(ctx *EffectContext) (string, *errors.Error) {
	ctx.Game.Rerolls += e.Amount
	return fmt.Sprintf("+%d rerolls", e.Amount), nil
}

// ExtraBanks adds banks for this level
type ExtraBanks struct {
	Amount int
}

func (e *ExtraBanks) Apply(ctx *EffectContext) (string, *errors.Error) {
	ctx.Game.Banks += e.Amount
	return fmt.Sprintf("+%d banks", e.Amount), nil
}

// Chisel lowers one rolled die to its next lower face
type Chisel struct{}

func (e *Chisel) Target(_ *entities.GameState, round *entities.RoundState) *RequiresInput {
	return &RequiresInput{
		Kind:         KindDieSelection,
		Scope:        ScopeHand,
		EligibleDice: eligible(handDice(round), hasLowerFace),
		Description:  "Select a rolled die to lower by one",
	}
}

func (e *Chisel) Apply(ctx *EffectContext) (string, *errors.Error) {
	die := &ctx.Round.DiceHand[ctx.Input.DieIndices[0]]
	v, _ := lowerFace(*die)
	die.RolledValue = v
	return fmt.Sprintf("Die %s now shows %d", die.ID, v), nil
}

// PotteryWheel raises one rolled die to its next higher face
type PotteryWheel struct{}

func (e *PotteryWheel) Target(_ *entities.GameState, round *entities.RoundState) *RequiresInput {
	return &RequiresInput{
		Kind:         KindDieSelection,
		Scope:        ScopeHand,
		EligibleDice: eligible(handDice(round), hasHigherFace),
		Description:  "Select a rolled die to raise by one",
	}
}

func (e *PotteryWheel) Apply(ctx *EffectContext) (string, *errors.Error) {
	die := &ctx.Round.DiceHand[ctx.Input.DieIndices[0]]
	v, _ := higherFace(*die)
	die.RolledValue = v
	return fmt.Sprintf("Die %s now shows %d", die.ID, v), nil
}

func handDice(round *entities.RoundState) []entities.Die {
	if round == nil {
		return nil
	}
	return round.DiceHand
}

func lowerFace(d entities.Die) (int, bool) {
	best, ok := 0, false
	for _, v := range d.AllowedValues {
		if d.RolledValue > 0 && v < d.RolledValue && (!ok || v > best) {
			best, ok = v, true
		}
	}
	return best, ok
}

func hasLowerFace(d entities.Die) bool {
	_, ok := lowerFace(d)
	return ok
}

func hasHigherFace(d entities.Die) bool {
	_, ok := higherFace(d)
	return ok
}

func higherFace(d entities.Die) (int, bool) {
	best, ok := 0, false
	for _, v := range d.AllowedValues {
		if d.RolledValue > 0 && v > d.RolledValue && (!ok || v < best) {
			best, ok = v, true
		}
	}
	return best, ok
}

// ForfeitRecovery restores the points lost on the last flop
type ForfeitRecovery struct{}

func (e *ForfeitRecovery) Apply(ctx *EffectContext) (string, *errors.Error) {
	if ctx.Round == nil || ctx.Round.ForfeitedPoints <= 0 {
		return "", errors.FailedPrecondition("No forfeited points to recover")
	}
	pts := ctx.Round.ForfeitedPoints
	ctx.Round.RoundPoints += pts
	ctx.Round.ForfeitedPoints = 0
	return fmt.Sprintf("Recovered %d points", pts), nil
}

// MaterialCopy copies the material of the first selected die onto the second
type MaterialCopy struct{}

func (e *MaterialCopy) Target(game *entities.GameState, _ *entities.RoundState) *RequiresInput {
	return &RequiresInput{
		Kind:         KindTwoDieSelection,
		Scope:        ScopeDiceSet,
		EligibleDice: eligible(game.DiceSet, func(entities.Die) bool { return true }),
		Description:  "Select a source die, then the die to receive its material",
	}
}

func (e *MaterialCopy) Apply(ctx *EffectContext) (string, *errors.Error) {
	src := ctx.Game.DiceSet[ctx.Input.DieIndices[0]]
	dst := &ctx.Game.DiceSet[ctx.Input.DieIndices[1]]
	if src.Material == dst.Material {
		return "", errors.InvalidTarget("Dice already share a material")
	}
	dst.Material = src.Material
	syncHand(ctx.Round, *dst)
	ctx.Notify(notify.EventMaterialChanged, map[string]any{"die_id": dst.ID, "material": string(dst.Material)})
	return fmt.Sprintf("Die %s is now %s", dst.ID, dst.Material), nil
}

// PipBrand brands one face of a die with a pip effect
type PipBrand struct {
	Pip entities.PipEffect
}

func (e *PipBrand) Target(game *entities.GameState, _ *entities.RoundState) *RequiresInput {
	return &RequiresInput{
		Kind:         KindDieSideSelection,
		Scope:        ScopeDiceSet,
		EligibleDice: eligible(game.DiceSet, func(d entities.Die) bool { return len(d.AllowedValues) > 0 }),
		Description:  fmt.Sprintf("Select a die and a face to brand with %s", e.Pip),
	}
}

func (e *PipBrand) Apply(ctx *EffectContext) (string, *errors.Error) {
	die := &ctx.Game.DiceSet[ctx.Input.DieIndices[0]]
	side := ctx.Input.SideValue
	if die.PipEffects[side] == e.Pip {
		return "", errors.InvalidTargetf("Face %d already carries %s", side, e.Pip)
	}
	if die.PipEffects == nil {
		die.PipEffects = map[int]entities.PipEffect{}
	}
	die.PipEffects[side] = e.Pip
	syncHand(ctx.Round, *die)
	ctx.Notify(notify.EventPipBranded, map[string]any{"die_id": die.ID, "side": side, "pip": string(e.Pip)})
	return fmt.Sprintf("Face %d of die %s now carries %s", side, die.ID, e.Pip), nil
}

// syncHand mirrors a dice set change onto the same die in hand, keeping
// the rolled value
func syncHand(round *entities.RoundState, d entities.Die) {
	if round == nil {
		return
	}
	for i := range round.DiceHand {
		if round.DiceHand[i].ID == d.ID {
			rolled := round.DiceHand[i].RolledValue
			round.DiceHand[i] = d.Clone()
			round.DiceHand[i].RolledValue = rolled
		}
	}
}

// CharmGrant gives a random unowned charm of one of Rarities
type CharmGrant struct {
	Rarities []entities.Rarity
}

func (e *CharmGrant) UsesRandom() bool { return true }

func (e *CharmGrant) Apply(ctx *EffectContext) (string, *errors.Error) {
	if ctx.Game.FreeCharmSlots() == 0 {
		return "", errors.InsufficientResources("No charm slots available")
	}
	var pool []catalog.CharmDefinition
	for _, def := range ctx.Catalog.Charms() {
		if slices.Contains(e.Rarities, def.Rarity) && !ctx.Game.HasCharm(def.ID) {
			pool = append(pool, def)
		}
	}
	if len(pool) == 0 {
		return "", errors.NoEligibleCandidates("No charms left to grant")
	}
	def := pool[random.IntN(ctx.Random, len(pool))]
	ctx.Game.Charms = append(ctx.Game.Charms, def.NewCharm())
	ctx.Notify(notify.EventItemGenerated, map[string]any{"kind": "charm", "id": def.ID})
	return "Gained " + def.Name, nil
}

// ConsumableGrant gives a random unowned consumable of Category. The
// consumable being used never grants itself.
type ConsumableGrant struct {
	Category entities.ConsumableCategory
}

func (e *ConsumableGrant) UsesRandom() bool { return true }

func (e *ConsumableGrant) Apply(ctx *EffectContext) (string, *errors.Error) {
	c, err := grantConsumable(ctx.Game, ctx.Catalog, e.Category, ctx.Consumable.ID, func(n int) int {
		return random.IntN(ctx.Random, n)
	})
	if err != nil {
		return "", err
	}
	ctx.Notify(notify.EventItemGenerated, map[string]any{"kind": "consumable", "id": c.ID})
	return "Gained " + c.Name, nil
}

// grantConsumable appends one unowned consumable of category to game. pick
// chooses an index into the candidate pool.
func grantConsumable(game *entities.GameState, cat *catalog.Catalog, category entities.ConsumableCategory, exclude string, pick func(n int) int) (entities.Consumable, *errors.Error) {
	if game.FreeConsumableSlots() == 0 {
		return entities.Consumable{}, errors.InsufficientResources("No consumable slots available")
	}
	var pool []catalog.ConsumableDefinition
	for _, def := range cat.ConsumablesByCategory(category) {
		if def.ID != exclude && !game.HasConsumable(def.ID) {
			pool = append(pool, def)
		}
	}
	if len(pool) == 0 {
		return entities.Consumable{}, errors.NoEligibleCandidates("No consumables left to grant")
	}
	c := pool[pick(len(pool))].NewConsumable()
	game.Consumables = append(game.Consumables, c)
	return c, nil
}

// AddDie adds a plain die to the dice set
type AddDie struct {
	Sides int
}

func (e *AddDie) Apply(ctx *EffectContext) (string, *errors.Error) {
	if len(ctx.Game.DiceSet) >= ctx.Game.MaxDice {
		return "", errors.InsufficientResources("Dice set is full")
	}
	id := ""
	for n := len(ctx.Game.DiceSet) + 1; ; n++ {
		id = fmt.Sprintf("d%d", n)
		if ctx.Game.DieIndex(id) < 0 {
			break
		}
	}
	ctx.Game.DiceSet = append(ctx.Game.DiceSet, entities.NewStandardDie(id, e.Sides))
	ctx.Notify(notify.EventDieAdded, map[string]any{"die_id": id, "sides": e.Sides})
	return fmt.Sprintf("Added a d%d", e.Sides), nil
}

// Voucher grants free shop refreshes
type Voucher struct {
	Amount int
}

func (e *Voucher) Apply(ctx *EffectContext) (string, *errors.Error) {
	ctx.Game.ShopVouchers += e.Amount
	return fmt.Sprintf("+%d shop voucher", e.Amount), nil
}

// Echo gives a copy of the last consumable successfully used. Its own use
// is never recorded as the last one.
type Echo struct{}

func (e *Echo) Apply(ctx *EffectContext) (string, *errors.Error) {
	last := ctx.Game.History.LastConsumableUsed
	if last == nil {
		return "", errors.NoEligibleCandidates("No consumable has been used yet")
	}
	if ctx.Game.FreeConsumableSlots() == 0 {
		return "", errors.InsufficientResources("No consumable slots available")
	}
	if ctx.Game.HasConsumable(last.ID) {
		return "", errors.NoEligibleCandidates(last.Name + " is already held")
	}
	c := *last
	c.Uses = max(c.Uses, 1)
	ctx.Game.Consumables = append(ctx.Game.Consumables, c)
	ctx.Notify(notify.EventItemGenerated, map[string]any{"kind": "consumable", "id": c.ID})
	return "Echoed " + c.Name, nil
}

// SlotExpansion adds charm slots
type SlotExpansion struct {
	Amount int
}

func (e *SlotExpansion) Apply(ctx *EffectContext) (string, *errors.Error) {
	ctx.Game.CharmSlots += e.Amount
	return fmt.Sprintf("+%d charm slot", e.Amount), nil
}

// CombinationUpgrade levels up one scoring combination
type CombinationUpgrade struct {
	Combination string
}

func (e *CombinationUpgrade) Apply(ctx *EffectContext) (string, *errors.Error) {
	lvl := ctx.Game.CombinationLevel(e.Combination) + 1
	if ctx.Game.CombinationLevels == nil {
		ctx.Game.CombinationLevels = map[string]int{}
	}
	ctx.Game.CombinationLevels[e.Combination] = lvl
	return fmt.Sprintf("%s is now level %d", e.Combination, lvl), nil
}
