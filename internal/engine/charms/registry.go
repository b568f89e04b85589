// Package charms hosts the charm hook registry and the scoring pipeline that
// folds charm contributions in owned order.
package charms

import (
	"fmt"
	"sort"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// Event is a lifecycle moment charms can hook
type Event string

// Charm events
const (
	EventScoring    Event = "scoring"
	EventBank       Event = "bank"
	EventFlop       Event = "flop"
	EventRoundStart Event = "roundStart"
)

// IsValid reports whether e is a known event
func (e Event) IsValid() bool {
	switch e {
	case EventScoring, EventBank, EventFlop, EventRoundStart:
		return true
	}
	return false
}

// Context is the read-only snapshot a hook sees. Hooks must not modify
// anything reachable from it.
type Context struct {
	Event        Event
	Game         *entities.GameState
	Round        *entities.RoundState
	SelectedDice []entities.Die
	Combinations []string
	// Score is the running score before this charm (scoring only)
	Score float64
	// FlopPrevented is set once an earlier charm saved this flop
	FlopPrevented bool
	Charm         entities.Charm
	Random        random.Source
}

// HasCombination reports whether the scored combinations include name
func (c *Context) HasCombination(name string) bool {
	for _, combo := range c.Combinations {
		if combo == name {
			return true
		}
	}
	return false
}

// HotDice reports whether every die in hand is being scored
func (c *Context) HotDice() bool {
	return c.Round != nil && len(c.Round.DiceHand) > 0 && len(c.SelectedDice) == len(c.Round.DiceHand)
}

// Contribution is what one hook returns. Multiplier zero means unchanged.
type Contribution struct {
	Points      int
	Multiplier  float64
	Money       int
	Rerolls     int
	Banks       int
	PreventFlop bool
	Counters    map[string]int
	Message     string
}

// IsZero reports whether the contribution changes nothing
func (c Contribution) IsZero() bool {
	return c.Points == 0 && (c.Multiplier == 0 || c.Multiplier == 1) && c.Money == 0 &&
		c.Rerolls == 0 && c.Banks == 0 && !c.PreventFlop && len(c.Counters) == 0
}

// Handler is the behaviour bound to one charm id. It implements any subset
// of the hook interfaces below.
type Handler interface {
	ID() string
}

// ScoringHook runs when dice are scored
type ScoringHook interface {
	OnScoring(ctx *Context) Contribution
}

// BankHook runs when the player banks
type BankHook interface {
	OnBank(ctx *Context) Contribution
}

// FlopHook runs when the player flops
type FlopHook interface {
	OnFlop(ctx *Context) Contribution
}

// RoundStartHook runs when a round starts
type RoundStartHook interface {
	OnRoundStart(ctx *Context) Contribution
}

// ConsumableSaver gives a chance that a used consumable is not consumed
type ConsumableSaver interface {
	SaveChance(c entities.Consumable) float64
}

// BonusGranter gives a chance of a bonus item after a consumable is used
type BonusGranter interface {
	BonusChance(c entities.Consumable) float64
}

// Registry maps charm ids to handlers. Ids without a handler are no-ops.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler. A handler must implement at least one hook and
// an id may be registered once.
func (r *Registry) Register(h Handler) error {
	if h == nil || h.ID() == "" {
		return errors.InvalidArgument("handler must have an id")
	}
	if _, dup := r.handlers[h.ID()]; dup {
		return errors.AlreadyExists(fmt.Sprintf("charm handler %q already registered", h.ID()))
	}
	if !implementsAnyHook(h) {
		return errors.InvalidArgumentf("charm handler %q implements no hook", h.ID())
	}
	r.handlers[h.ID()] = h
	return nil
}

// MustRegister is Register for static setup
func (r *Registry) MustRegister(hs ...Handler) *Registry {
	for _, h := range hs {
		if err := r.Register(h); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the handler for id
func (r *Registry) Lookup(id string) (Handler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}

// IDs returns the registered ids, sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SaveChance sums the save chances of the active charms, capped at 1
func (r *Registry) SaveChance(game *entities.GameState, c entities.Consumable) float64 {
	total := 0.0
	for _, charm := range game.Charms {
		if !charm.Active {
			continue
		}
		if h, ok := r.handlers[charm.ID].(ConsumableSaver); ok {
			total += h.SaveChance(c)
		}
	}
	return min(total, 1)
}

// BonusChance sums the bonus chances of the active charms, capped at 1
func (r *Registry) BonusChance(game *entities.GameState, c entities.Consumable) float64 {
	total := 0.0
	for _, charm := range game.Charms {
		if !charm.Active {
			continue
		}
		if h, ok := r.handlers[charm.ID].(BonusGranter); ok {
			total += h.BonusChance(c)
		}
	}
	return min(total, 1)
}

func implementsAnyHook(h Handler) bool {
	switch h.(type) {
	case ScoringHook, BankHook, FlopHook, RoundStartHook, ConsumableSaver, BonusGranter:
		return true
	}
	return false
}

// DefaultRegistry binds every shipped charm to its handler, reading the
// numbers from the catalog definitions.
func DefaultRegistry(cat *catalog.Catalog) *Registry {
	p := func(id, key string, def float64) float64 {
		d, ok := cat.Charm(id)
		if !ok {
			return def
		}
		return d.Param(key, def)
	}

	return NewRegistry().MustRegister(
		&FlopShield{Charges: int(p("flopShield", "charges", 3))},
		&OddOdyssey{PointsPerDie: int(p("oddOdyssey", "pointsPerDie", 25))},
		&EvenSteven{PointsPerDie: int(p("evenSteven", "pointsPerDie", 25))},
		&PiggyBank{Money: int(p("piggyBank", "money", 2))},
		&HeadStart{Rerolls: int(p("headStart", "rerolls", 1))},
		&BigHand{MinDice: int(p("bigHand", "minDice", 5)), Points: int(p("bigHand", "points", 150))},
		&ScoreMultiplier{Multiplier: p("scoreMultiplier", "multiplier", 1.25)},
		&RerollRecovery{Rerolls: int(p("rerollRecovery", "rerolls", 1))},
		&Interest{Per: int(p("interestCharm", "per", 5)), Cap: int(p("interestCharm", "cap", 5))},
		&GhostWhisperer{PointsPerDie: int(p("ghostWhisperer", "pointsPerDie", 100))},
		&WhimWhisperer{Chance: p("whimWhisperer", "preventChance", 0.15)},
		&FourOfAKindBooster{Multiplier: p("fourOfAKindBooster", "multiplier", 2)},
		&HotPocket{Multiplier: p("hotPocket", "multiplier", 1.5)},
		&BankersBonus{MoneyPerBank: int(p("bankersBonus", "moneyPerBank", 1))},
		&GenerousGenie{Chance: p("generousGenie", "bonusChance", 0.10)},
		&LuckyLeprechaun{Chance: p("luckyLeprechaun", "chance", 0.20), Multiplier: p("luckyLeprechaun", "multiplier", 3)},
		&GoldenGoose{Per: int(p("goldenGoose", "per", 1000)), Cap: int(p("goldenGoose", "cap", 10))},
		&CrystalClear{Multiplier: p("crystalClear", "multiplier", 1.5)},
		&SecondWind{Rerolls: int(p("secondWind", "rerolls", 2))},
	)
}
