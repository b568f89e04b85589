package charms

import (
	"fmt"
	"maps"
	"math"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// Pip effect values applied before charms
const (
	PipPointsBonus     = 50
	PipMultiplierBonus = 1.5
)

// Config holds the dependencies for the pipeline
type Config struct {
	Registry *Registry
	Notifier notify.Notifier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	return vb.Build()
}

// Pipeline runs charm hooks for one event and folds their contributions
type Pipeline struct {
	registry *Registry
	notifier notify.Notifier
}

// NewPipeline creates a pipeline
func NewPipeline(cfg *Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Pipeline{
		registry: cfg.Registry,
		notifier: notify.OrNop(cfg.Notifier),
	}, nil
}

// Input describes one event to resolve
type Input struct {
	Event Event
	Game  *entities.GameState
	Round *entities.RoundState
	// SelectedDice indexes Round.DiceHand (scoring only)
	SelectedDice []int
	Combinations []string
	Random       random.Source
}

// EffectLog records one non-zero contribution. Source is a charm id or
// "pip:<die id>".
type EffectLog struct {
	Source       string
	Contribution Contribution
}

// Result is the folded outcome of an event. Apply turns it into new states.
type Result struct {
	Success bool
	Message string
	Code    errors.Code

	Event       Event
	BaseScore   int
	ScoreDelta  int
	MoneyDelta  int
	RerollDelta int
	BankDelta   int
	PreventFlop bool
	HotDice     bool
	Counters    map[string]int
	Effects     []EffectLog
}

func failed(event Event, err *errors.Error) *Result {
	return &Result{Event: event, Message: err.Message, Code: err.Code}
}

// RunHooks invokes every active charm's hook for in.Event in charm order.
// Hooks only read the snapshot; nothing is applied until Result.Apply.
func (p *Pipeline) RunHooks(in *Input) *Result {
	if !in.Event.IsValid() {
		return failed(in.Event, errors.InvalidArgumentf("Unknown event %q", in.Event))
	}
	if in.Game == nil {
		return failed(in.Event, errors.InvalidArgument("Game state is required"))
	}

	res := &Result{Success: true, Event: in.Event, Counters: map[string]int{}}
	ctx := &Context{
		Event:        in.Event,
		Game:         in.Game,
		Round:        in.Round,
		Combinations: in.Combinations,
		Random:       in.Random,
	}

	score := 0.0
	if in.Event == EventScoring {
		selected, err := selectDice(in.Round, in.SelectedDice)
		if err != nil {
			return failed(in.Event, err)
		}
		if err := MatchCombinations(selected, in.Combinations); err != nil {
			return failed(in.Event, err)
		}
		base, baseErr := BaseScore(in.Game, in.Combinations)
		if baseErr != nil {
			return failed(in.Event, errors.InvalidTarget(errors.GetMessage(baseErr)))
		}
		ctx.SelectedDice = selected
		res.BaseScore = base
		res.HotDice = ctx.HotDice()
		score = float64(base)
		score = p.applyPips(res, selected, score)
	}

	for _, charm := range in.Game.Charms {
		if !charm.Active {
			continue
		}
		h, ok := p.registry.Lookup(charm.ID)
		if !ok {
			continue
		}
		ctx.Charm = charm
		ctx.Score = score

		var c Contribution
		switch in.Event {
		case EventScoring:
			hook, ok := h.(ScoringHook)
			if !ok {
				continue
			}
			c = hook.OnScoring(ctx)
		case EventBank:
			hook, ok := h.(BankHook)
			if !ok {
				continue
			}
			c = hook.OnBank(ctx)
		case EventFlop:
			hook, ok := h.(FlopHook)
			if !ok {
				continue
			}
			c = hook.OnFlop(ctx)
		case EventRoundStart:
			hook, ok := h.(RoundStartHook)
			if !ok {
				continue
			}
			c = hook.OnRoundStart(ctx)
		}

		if c.IsZero() {
			continue
		}
		score = fold(score, c)
		res.add(c)
		if c.PreventFlop {
			ctx.FlopPrevented = true
		}
		res.Effects = append(res.Effects, EffectLog{Source: charm.ID, Contribution: c})
		p.notifier.Notify(notify.EventCharmTriggered, map[string]any{
			"charm_id": charm.ID,
			"event":    string(in.Event),
			"message":  c.Message,
		})
	}

	if in.Event == EventScoring {
		res.ScoreDelta = int(math.Floor(score))
	}
	return res
}

func (p *Pipeline) applyPips(res *Result, dice []entities.Die, score float64) float64 {
	for _, d := range dice {
		pip, ok := d.RolledPip()
		if !ok {
			continue
		}
		var c Contribution
		switch pip {
		case entities.PipMoney:
			c = Contribution{Money: 1}
		case entities.PipReroll:
			c = Contribution{Rerolls: 1}
		case entities.PipPoints:
			c = Contribution{Points: PipPointsBonus}
		case entities.PipMultiplier:
			c = Contribution{Multiplier: PipMultiplierBonus}
		default:
			continue
		}
		score = fold(score, c)
		res.add(c)
		res.Effects = append(res.Effects, EffectLog{Source: "pip:" + d.ID, Contribution: c})
	}
	return score
}

// fold applies one contribution to the running score: add, then multiply
func fold(score float64, c Contribution) float64 {
	score += float64(c.Points)
	if c.Multiplier > 0 {
		score *= c.Multiplier
	}
	return score
}

func (r *Result) add(c Contribution) {
	r.MoneyDelta += c.Money
	r.RerollDelta += c.Rerolls
	r.BankDelta += c.Banks
	r.PreventFlop = r.PreventFlop || c.PreventFlop
	for k, v := range c.Counters {
		r.Counters[k] += v
	}
}

func selectDice(round *entities.RoundState, indices []int) ([]entities.Die, *errors.Error) {
	if len(indices) == 0 {
		return nil, errors.InvalidTarget("No dice selected")
	}
	if round == nil {
		return nil, errors.InvalidTarget("No dice in hand")
	}
	seen := make(map[int]bool, len(indices))
	out := make([]entities.Die, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(round.DiceHand) {
			return nil, errors.InvalidTargetf("Die %d is not in hand", i)
		}
		if seen[i] {
			return nil, errors.InvalidTargetf("Die %d selected twice", i)
		}
		seen[i] = true
		out = append(out, round.DiceHand[i].Clone())
	}
	return out, nil
}

// Apply folds the result into copies of the states. A failed result returns
// the inputs untouched.
//
// scoring adds ScoreDelta to the round (and counts hot dice); flop forfeits
// the round points unless a charm prevented it.
func (r *Result) Apply(game *entities.GameState, round *entities.RoundState) (*entities.GameState, *entities.RoundState) {
	if !r.Success {
		return game, round
	}
	g := game.Clone()
	g.Money = max(g.Money+r.MoneyDelta, 0)
	g.Rerolls = max(g.Rerolls+r.RerollDelta, 0)
	g.Banks = max(g.Banks+r.BankDelta, 0)
	for k, v := range r.Counters {
		g.History.AddCounter(k, v)
	}

	rd := round.Clone()
	if rd == nil {
		return g, nil
	}
	switch r.Event {
	case EventScoring:
		rd.RoundPoints += r.ScoreDelta
		if r.HotDice {
			rd.HotDiceCount++
		}
	case EventFlop:
		if !r.PreventFlop {
			rd.ForfeitedPoints = rd.RoundPoints
			rd.RoundPoints = 0
		}
	}
	return g, rd
}

// Summary renders the effect log for display
func (r *Result) Summary() []string {
	out := make([]string, 0, len(r.Effects))
	for _, e := range r.Effects {
		line := e.Source
		if e.Contribution.Message != "" {
			line = fmt.Sprintf("%s: %s", e.Source, e.Contribution.Message)
		}
		out = append(out, line)
	}
	return out
}

// CountersSnapshot returns a copy of the counter deltas
func (r *Result) CountersSnapshot() map[string]int {
	return maps.Clone(r.Counters)
}
