package run

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope for run metrics
const meterName = "github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run"

// Metrics holds the run counters. All instruments are safe for concurrent use.
type Metrics struct {
	// RunsStarted counts new runs. Attribute: difficulty
	RunsStarted metric.Int64Counter

	// ConsumablesUsed counts consumed items. Attributes: consumable_id, prevented
	ConsumablesUsed metric.Int64Counter

	// Purchases counts shop buys. Attribute: kind
	Purchases metric.Int64Counter

	// Sales counts items sold back. Attribute: kind
	Sales metric.Int64Counter

	// ShopsGenerated counts fresh inventories. Attribute: reason (enter, refresh)
	ShopsGenerated metric.Int64Counter

	// Rejections counts engine failures. Attributes: action, code
	Rejections metric.Int64Counter
}

// NewMetrics creates the run instruments on mp
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.RunsStarted, err = m.Int64Counter("rollio.runs.started",
		metric.WithDescription("Total runs started by difficulty."),
	); err != nil {
		return nil, err
	}
	if met.ConsumablesUsed, err = m.Int64Counter("rollio.consumables.used",
		metric.WithDescription("Total consumables used by id."),
	); err != nil {
		return nil, err
	}
	if met.Purchases, err = m.Int64Counter("rollio.shop.purchases",
		metric.WithDescription("Total shop purchases by kind."),
	); err != nil {
		return nil, err
	}
	if met.Sales, err = m.Int64Counter("rollio.shop.sales",
		metric.WithDescription("Total items sold by kind."),
	); err != nil {
		return nil, err
	}
	if met.ShopsGenerated, err = m.Int64Counter("rollio.shop.generated",
		metric.WithDescription("Total shop inventories generated."),
	); err != nil {
		return nil, err
	}
	if met.Rejections, err = m.Int64Counter("rollio.engine.rejections",
		metric.WithDescription("Total engine rejections by action and code."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

func (m *Metrics) reject(ctx context.Context, action, code string) {
	m.Rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("code", code),
	))
}
