// Package run implements the run orchestrator. It loads a persisted run,
// restores its seeded random source, calls the pure engines and stores the
// new state when the engine accepts the action.
package run

//go:generate mockgen -destination=mock/mock_service.go -package=runmock github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run Service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/charms"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/consumables"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/idgen"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
	runsession "github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session"
)

const (
	errRunIDRequired = "run ID is required"
	errShopNotOpen   = "shop is not open"
)

// Service defines the interface for run operations
type Service interface {
	// Lifecycle
	StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error)
	GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error)
	EndRun(ctx context.Context, input *EndRunInput) (*EndRunOutput, error)

	// Shop
	EnterShop(ctx context.Context, input *EnterShopInput) (*EnterShopOutput, error)
	RefreshShop(ctx context.Context, input *RefreshShopInput) (*ShopOutput, error)
	PurchaseCharm(ctx context.Context, input *PurchaseInput) (*ShopOutput, error)
	PurchaseConsumable(ctx context.Context, input *PurchaseInput) (*ShopOutput, error)
	PurchaseBlessing(ctx context.Context, input *PurchaseInput) (*ShopOutput, error)
	SellCharm(ctx context.Context, input *SellInput) (*ShopOutput, error)
	SellConsumable(ctx context.Context, input *SellInput) (*ShopOutput, error)

	// Play
	UseConsumable(ctx context.Context, input *UseConsumableInput) (*UseConsumableOutput, error)
	RollHand(ctx context.Context, input *RollHandInput) (*HooksOutput, error)
	ResolveScoring(ctx context.Context, input *ResolveScoringInput) (*HooksOutput, error)
	TriggerBlessings(ctx context.Context, input *TriggerBlessingsInput) (*TriggerBlessingsOutput, error)
	ReorderCharms(ctx context.Context, input *ReorderCharmsInput) (*ReorderCharmsOutput, error)
}

// Config holds the dependencies for the run orchestrator
type Config struct {
	RunSessionRepo runsession.Repository
	IDGenerator    idgen.Generator
	Catalog        *catalog.Catalog

	// Optional collaborators
	Notifier      notify.Notifier
	EventBus      events.EventBus      // Engine signals are republished here per run
	MeterProvider metric.MeterProvider // Defaults to the global provider
	SessionTTL    time.Duration        // Zero uses the repository default
	SeedSource    func() uint64        // Defaults to math/rand/v2
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RunSessionRepo == nil {
		vb.RequiredField("RunSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     runsession.Repository
	idGen    idgen.Generator
	catalog  *catalog.Catalog
	charms   *charms.Registry
	effects  *consumables.Registry
	notifier notify.Notifier
	bus      events.EventBus
	metrics  *Metrics
	ttl      time.Duration
	seed     func() uint64
}

// NewOrchestrator creates a new run orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	effects, err := consumables.DefaultRegistry(cfg.Catalog)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build consumable registry")
	}

	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	met, err := NewMetrics(mp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create metrics")
	}

	seed := cfg.SeedSource
	if seed == nil {
		seed = rand.Uint64
	}

	return &orchestrator{
		repo:     cfg.RunSessionRepo,
		idGen:    cfg.IDGenerator,
		catalog:  cfg.Catalog,
		charms:   charms.DefaultRegistry(cfg.Catalog),
		effects:  effects,
		notifier: cfg.Notifier,
		bus:      cfg.EventBus,
		metrics:  met,
		ttl:      cfg.SessionTTL,
		seed:     seed,
	}, nil
}

// runNotifier sends a run's engine signals to the configured notifier and,
// when a bus is set, to the bus with the run as source
func (o *orchestrator) runNotifier(runID string) notify.Notifier {
	fan := notify.Fanout{o.notifier}
	if o.bus != nil {
		fan = append(fan, notify.NewBusNotifier(o.bus, runID))
	}
	return fan
}

func (o *orchestrator) newShop(runID string) (*shop.Shop, error) {
	return shop.New(&shop.Config{
		Catalog:  o.catalog,
		Notifier: o.runNotifier(runID),
	})
}

func (o *orchestrator) newPipeline(runID string) (*charms.Pipeline, error) {
	return charms.NewPipeline(&charms.Config{
		Registry: o.charms,
		Notifier: o.runNotifier(runID),
	})
}

func (o *orchestrator) newResolver(runID string) (*consumables.Resolver, error) {
	return consumables.NewResolver(&consumables.Config{
		Catalog:  o.catalog,
		Effects:  o.effects,
		Charms:   o.charms,
		Notifier: o.runNotifier(runID),
	})
}

// load fetches a session and restores its random source
func (o *orchestrator) load(ctx context.Context, runID string) (*runsession.Session, *random.Seeded, error) {
	if runID == "" {
		return nil, nil, errors.InvalidArgument(errRunIDRequired)
	}

	out, err := o.repo.Get(ctx, runsession.GetInput{ID: runID})
	if err != nil {
		return nil, nil, err
	}

	src, err := random.RestoreSeeded(out.Session.RandomState)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to restore random source for run %s", runID)
	}

	return out.Session, src, nil
}

// save stores the session together with the random source position
func (o *orchestrator) save(ctx context.Context, session *runsession.Session, src *random.Seeded) error {
	state, err := src.State()
	if err != nil {
		return err
	}
	session.RandomState = state

	if err := o.repo.Update(ctx, session); err != nil {
		return errors.Wrapf(err, "failed to save run %s", session.ID)
	}
	return nil
}

func (o *orchestrator) rejected(ctx context.Context, runID, action string, code errors.Code, message string) {
	o.metrics.reject(ctx, action, code.String())
	slog.Info("Engine rejected action",
		"run_id", runID,
		"action", action,
		"code", code,
		"message", message,
	)
}

// StartRun creates a run with a fresh game state and a seeded random source
func (o *orchestrator) StartRun(ctx context.Context, input *StartRunInput) (*StartRunOutput, error) {
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = entities.DifficultyPlastic
	}
	if !slices.Contains(entities.Difficulties(), string(difficulty)) {
		return nil, errors.InvalidArgumentf("unknown difficulty %q", difficulty)
	}

	seed := input.Seed
	if seed == 0 {
		seed = o.seed()
	}
	src := random.NewSeeded(seed)
	state, err := src.State()
	if err != nil {
		return nil, err
	}

	session := &runsession.Session{
		ID:          o.idGen.Generate(),
		Seed:        seed,
		RandomState: state,
		Game:        entities.NewGameState(difficulty),
	}

	out, err := o.repo.Create(ctx, runsession.CreateInput{
		Session: session,
		TTL:     o.ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create run session")
	}

	o.metrics.RunsStarted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("difficulty", string(difficulty)),
	))
	slog.Info("Run started",
		"run_id", out.Session.ID,
		"difficulty", difficulty,
		"seed", seed,
	)

	return &StartRunOutput{Session: out.Session}, nil
}

// GetRun loads a run
func (o *orchestrator) GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDRequired)
	}

	out, err := o.repo.Get(ctx, runsession.GetInput{ID: input.RunID})
	if err != nil {
		return nil, err
	}

	return &GetRunOutput{Session: out.Session}, nil
}

// EndRun deletes a run
func (o *orchestrator) EndRun(ctx context.Context, input *EndRunInput) (*EndRunOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDRequired)
	}

	out, err := o.repo.Delete(ctx, runsession.DeleteInput{ID: input.RunID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to end run %s", input.RunID)
	}

	slog.Info("Run ended", "run_id", input.RunID, "deleted", out.Deleted)

	return &EndRunOutput{Ended: out.Deleted}, nil
}

// EnterShop opens a shop visit with a freshly generated inventory
func (o *orchestrator) EnterShop(ctx context.Context, input *EnterShopInput) (*EnterShopOutput, error) {
	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	s, err := o.newShop(session.ID)
	if err != nil {
		return nil, err
	}
	inv, err := s.Generate(session.Game, src)
	if err != nil {
		return nil, err
	}
	session.Shop = inv

	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	o.metrics.ShopsGenerated.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "enter")))
	slog.Info("Shop opened",
		"run_id", session.ID,
		"charms", len(session.Shop.AvailableCharms),
		"consumables", len(session.Shop.AvailableConsumables),
		"blessings", len(session.Shop.AvailableBlessings),
	)

	return &EnterShopOutput{Session: session, Shop: session.Shop}, nil
}

// shopAction runs one shop transaction against a loaded run and stores the
// outcome when the engine accepts it
func (o *orchestrator) shopAction(
	ctx context.Context,
	runID, action string,
	requireShop bool,
	apply func(s *shop.Shop, session *runsession.Session, src random.Source) *shop.Result,
) (*ShopOutput, error) {
	session, src, err := o.load(ctx, runID)
	if err != nil {
		return nil, err
	}
	if requireShop && session.Shop == nil {
		return nil, errors.FailedPrecondition(errShopNotOpen).WithMeta("run_id", runID)
	}

	s, err := o.newShop(session.ID)
	if err != nil {
		return nil, err
	}

	res := apply(s, session, src)
	if !res.Success {
		o.rejected(ctx, session.ID, action, res.Code, res.Message)
		return &ShopOutput{Session: session, Result: res}, nil
	}

	session.Game = res.Game
	session.Shop = res.Shop
	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	slog.Info("Shop action completed",
		"run_id", session.ID,
		"action", action,
		"amount", res.Amount,
		"money", session.Game.Money,
	)

	return &ShopOutput{Session: session, Result: res}, nil
}

// RefreshShop replaces the open shop's inventory
func (o *orchestrator) RefreshShop(ctx context.Context, input *RefreshShopInput) (*ShopOutput, error) {
	out, err := o.shopAction(ctx, input.RunID, "refresh", true,
		func(s *shop.Shop, session *runsession.Session, src random.Source) *shop.Result {
			return s.Refresh(session.Game, session.Shop, src)
		})
	if err != nil {
		return nil, err
	}
	if out.Result.Success {
		o.metrics.ShopsGenerated.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "refresh")))
	}
	return out, nil
}

func (o *orchestrator) purchase(
	ctx context.Context,
	input *PurchaseInput,
	kind string,
	buy func(s *shop.Shop, game *entities.GameState, sh *entities.ShopState, index int) *shop.Result,
) (*ShopOutput, error) {
	out, err := o.shopAction(ctx, input.RunID, "purchase_"+kind, true,
		func(s *shop.Shop, session *runsession.Session, _ random.Source) *shop.Result {
			return buy(s, session.Game, session.Shop, input.Index)
		})
	if err != nil {
		return nil, err
	}
	if out.Result.Success {
		o.metrics.Purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
	return out, nil
}

// PurchaseCharm buys a charm from the open shop
func (o *orchestrator) PurchaseCharm(ctx context.Context, input *PurchaseInput) (*ShopOutput, error) {
	return o.purchase(ctx, input, "charm", (*shop.Shop).PurchaseCharm)
}

// PurchaseConsumable buys a consumable from the open shop
func (o *orchestrator) PurchaseConsumable(ctx context.Context, input *PurchaseInput) (*ShopOutput, error) {
	return o.purchase(ctx, input, "consumable", (*shop.Shop).PurchaseConsumable)
}

// PurchaseBlessing buys a blessing from the open shop
func (o *orchestrator) PurchaseBlessing(ctx context.Context, input *PurchaseInput) (*ShopOutput, error) {
	return o.purchase(ctx, input, "blessing", (*shop.Shop).PurchaseBlessing)
}

func (o *orchestrator) sell(
	ctx context.Context,
	input *SellInput,
	kind string,
	sell func(s *shop.Shop, game *entities.GameState, sh *entities.ShopState, index int) *shop.Result,
) (*ShopOutput, error) {
	out, err := o.shopAction(ctx, input.RunID, "sell_"+kind, false,
		func(s *shop.Shop, session *runsession.Session, _ random.Source) *shop.Result {
			return sell(s, session.Game, session.Shop, input.Index)
		})
	if err != nil {
		return nil, err
	}
	if out.Result.Success {
		o.metrics.Sales.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
	return out, nil
}

// SellCharm sells an owned charm
func (o *orchestrator) SellCharm(ctx context.Context, input *SellInput) (*ShopOutput, error) {
	return o.sell(ctx, input, "charm", (*shop.Shop).SellCharm)
}

// SellConsumable sells an owned consumable
func (o *orchestrator) SellConsumable(ctx context.Context, input *SellInput) (*ShopOutput, error) {
	return o.sell(ctx, input, "consumable", (*shop.Shop).SellConsumable)
}

// UseConsumable resolves one consumable. A targeted consumable called
// without a target returns the targeting descriptor and stores nothing.
func (o *orchestrator) UseConsumable(ctx context.Context, input *UseConsumableInput) (*UseConsumableOutput, error) {
	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	resolver, err := o.newResolver(session.ID)
	if err != nil {
		return nil, err
	}

	res := resolver.Apply(&consumables.ApplyInput{
		Index:  input.Index,
		Game:   session.Game,
		Round:  session.Round,
		Input:  input.Target,
		Random: src,
	})
	if !res.Success {
		o.rejected(ctx, session.ID, "use_consumable", res.Code, res.Message)
		return &UseConsumableOutput{Session: session, Result: res}, nil
	}
	if res.RequiresInput != nil {
		return &UseConsumableOutput{Session: session, Result: res}, nil
	}

	session.Game = res.Game
	session.Round = res.Round
	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	o.metrics.ConsumablesUsed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("consumable_id", res.Consumable.ID),
		attribute.Bool("prevented", res.Prevented),
	))
	slog.Info("Consumable used",
		"run_id", session.ID,
		"consumable_id", res.Consumable.ID,
		"prevented", res.Prevented,
		"bonus", res.Bonus != nil,
	)

	return &UseConsumableOutput{Session: session, Result: res}, nil
}

// RollHand rolls every die in the dice set into a new round and runs the
// round start hooks
func (o *orchestrator) RollHand(ctx context.Context, input *RollHandInput) (*HooksOutput, error) {
	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	hand := make([]entities.Die, len(session.Game.DiceSet))
	for i, d := range session.Game.DiceSet {
		die := d.Clone()
		if n := len(die.AllowedValues); n > 0 {
			die.RolledValue = die.AllowedValues[random.IntN(src, n)]
		}
		hand[i] = die
	}
	round := &entities.RoundState{DiceHand: hand}

	return o.runHooks(ctx, session, src, &charms.Input{
		Event:  charms.EventRoundStart,
		Game:   session.Game,
		Round:  round,
		Random: src,
	})
}

// ResolveScoring runs the charm hooks for an event against the current round
func (o *orchestrator) ResolveScoring(ctx context.Context, input *ResolveScoringInput) (*HooksOutput, error) {
	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	event := input.Event
	if event == "" {
		event = charms.EventScoring
	}

	return o.runHooks(ctx, session, src, &charms.Input{
		Event:        event,
		Game:         session.Game,
		Round:        session.Round,
		SelectedDice: input.SelectedDice,
		Combinations: input.Combinations,
		Random:       src,
	})
}

func (o *orchestrator) runHooks(ctx context.Context, session *runsession.Session, src *random.Seeded, in *charms.Input) (*HooksOutput, error) {
	pipeline, err := o.newPipeline(session.ID)
	if err != nil {
		return nil, err
	}

	res := pipeline.RunHooks(in)
	if !res.Success {
		o.rejected(ctx, session.ID, string(in.Event), res.Code, res.Message)
		return &HooksOutput{Session: session, Result: res}, nil
	}

	session.Game, session.Round = res.Apply(in.Game, in.Round)
	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	slog.Info("Charm hooks resolved",
		"run_id", session.ID,
		"event", in.Event,
		"score_delta", res.ScoreDelta,
		"money_delta", res.MoneyDelta,
		"effects", len(res.Effects),
	)

	return &HooksOutput{Session: session, Result: res}, nil
}

// TriggerBlessings applies the dynamic blessings bound to a trigger
func (o *orchestrator) TriggerBlessings(ctx context.Context, input *TriggerBlessingsInput) (*TriggerBlessingsOutput, error) {
	if !input.Trigger.IsValid() {
		return nil, errors.InvalidArgumentf("unknown blessing trigger %q", input.Trigger)
	}

	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	before := session.Game
	session.Game = blessings.ApplyDynamicEffects(before, input.Trigger)
	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	out := &TriggerBlessingsOutput{
		Session:     session,
		MoneyDelta:  session.Game.Money - before.Money,
		RerollDelta: session.Game.Rerolls - before.Rerolls,
	}
	slog.Info("Blessings triggered",
		"run_id", session.ID,
		"trigger", input.Trigger,
		"money_delta", out.MoneyDelta,
		"reroll_delta", out.RerollDelta,
	)

	return out, nil
}

// ReorderCharms changes the order charms fire in
func (o *orchestrator) ReorderCharms(ctx context.Context, input *ReorderCharmsInput) (*ReorderCharmsOutput, error) {
	session, src, err := o.load(ctx, input.RunID)
	if err != nil {
		return nil, err
	}

	charmList := session.Game.Charms
	if len(input.Order) != len(charmList) {
		return nil, errors.InvalidArgumentf("order must list all %d charms", len(charmList))
	}
	seen := make([]bool, len(charmList))
	reordered := make([]entities.Charm, 0, len(charmList))
	for _, i := range input.Order {
		if i < 0 || i >= len(charmList) || seen[i] {
			return nil, errors.InvalidArgument("invalid charm order").WithMeta("index", i)
		}
		seen[i] = true
		reordered = append(reordered, charmList[i])
	}

	g := session.Game.Clone()
	g.Charms = reordered
	session.Game = g
	if err := o.save(ctx, session, src); err != nil {
		return nil, err
	}

	slog.Info("Charms reordered", "run_id", session.ID, "order", input.Order)

	return &ReorderCharmsOutput{Session: session}, nil
}
