package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/config"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/clock"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/idgen"
	"github.com/bbeaudet-dev/rollio-sub001/internal/redis"
	runsession "github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session"
)

const pingTimeout = 5 * time.Second

// serviceFactory builds the run service and returns a cleanup func
type serviceFactory func(ctx context.Context, cfg *config.Config) (run.Service, func(), error)

// loggedEvents are the engine signals echoed at debug level
var loggedEvents = []string{
	notify.EventItemGenerated,
	notify.EventConsumableUsed,
	notify.EventConsumableSaved,
	notify.EventMaterialChanged,
	notify.EventPipBranded,
	notify.EventDieAdded,
	notify.EventShopGenerated,
	notify.EventItemPurchased,
	notify.EventItemSold,
	notify.EventCharmTriggered,
}

// newRedisService wires the orchestrator to Redis and an event bus that
// logs every engine signal
func newRedisService(ctx context.Context, cfg *config.Config) (run.Service, func(), error) {
	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{UseTLS: cfg.RedisTLS})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create redis client")
	}
	cleanup := func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := redis.Ping(pingCtx, client); err != nil {
		cleanup()
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable at "+cfg.RedisAddr)
	}

	repo, err := runsession.NewRedisRepository(&runsession.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	var seed func() uint64
	if cfg.Seed != 0 {
		seed = func() uint64 { return cfg.Seed }
	}

	svc, err := run.NewOrchestrator(&run.Config{
		RunSessionRepo: repo,
		IDGenerator:    idgen.NewUUID("run"),
		Catalog:        catalog.Default(),
		EventBus:       newLoggingBus(),
		SessionTTL:     cfg.SessionTTL,
		SeedSource:     seed,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return svc, cleanup, nil
}

func newLoggingBus() events.EventBus {
	bus := events.NewBus()
	for _, name := range loggedEvents {
		bus.SubscribeFunc(name, 0, func(ctx context.Context, e events.Event) error {
			slog.DebugContext(ctx, "Engine signal",
				"event", e.Type(),
				"run_id", e.Source().GetID(),
			)
			return nil
		})
	}
	return bus
}
