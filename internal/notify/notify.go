// Package notify carries cosmetic engine signals ("item generated",
// "material changed") to whoever listens. Engine correctness never depends
// on a notification being observed.
package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/bbeaudet-dev/rollio-sub001/internal/notify Notifier

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event names emitted by the engine
const (
	EventItemGenerated   = "item.generated"
	EventConsumableUsed  = "consumable.used"
	EventConsumableSaved = "consumable.saved"
	EventMaterialChanged = "die.material_changed"
	EventPipBranded      = "die.pip_branded"
	EventDieAdded        = "die.added"
	EventShopGenerated   = "shop.generated"
	EventItemPurchased   = "shop.item_purchased"
	EventItemSold        = "shop.item_sold"
	EventCharmTriggered  = "charm.triggered"
)

// Notifier receives engine signals
type Notifier interface {
	Notify(event string, payload map[string]any)
}

// Nop discards every signal
type Nop struct{}

// Notify does nothing
func (Nop) Notify(string, map[string]any) {}

// OrNop returns n, or Nop when n is nil
func OrNop(n Notifier) Notifier {
	if n == nil {
		return Nop{}
	}
	return n
}

// Fanout forwards every signal to each notifier in order
type Fanout []Notifier

// Notify forwards the signal. Nil entries are skipped.
func (f Fanout) Notify(event string, payload map[string]any) {
	for _, n := range f {
		if n != nil {
			n.Notify(event, payload)
		}
	}
}

// Signal is one recorded notification
type Signal struct {
	Event   string
	Payload map[string]any
}

// Recorder keeps every signal in order
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

// Notify records the signal
func (r *Recorder) Notify(event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, Signal{Event: event, Payload: maps.Clone(payload)})
}

// Signals returns a copy of everything recorded
func (r *Recorder) Signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Events returns the recorded event names in order
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.signals))
	for i, s := range r.signals {
		out[i] = s.Event
	}
	return out
}

// RunEntity identifies a run as the source of toolkit events
type RunEntity struct {
	ID string
}

// GetID returns the run id
func (e *RunEntity) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *RunEntity) GetType() string {
	return "run"
}

var _ core.Entity = (*RunEntity)(nil)

// BusNotifier republishes signals on an rpg-toolkit event bus. Payload keys
// are copied into the event context.
type BusNotifier struct {
	bus    events.EventBus
	source core.Entity
}

// NewBusNotifier creates a notifier publishing on bus with runID as source
func NewBusNotifier(bus events.EventBus, runID string) *BusNotifier {
	return &BusNotifier{bus: bus, source: &RunEntity{ID: runID}}
}

// Notify publishes the signal. Publish failures are logged and dropped.
func (n *BusNotifier) Notify(event string, payload map[string]any) {
	e := events.NewGameEvent(event, n.source, nil)
	for k, v := range payload {
		e.Context().Set(k, v)
	}
	if err := n.bus.Publish(context.Background(), e); err != nil {
		slog.Warn("Failed to publish engine notification",
			"event", event,
			"source", n.source.GetID(),
			"error", err,
		)
	}
}
