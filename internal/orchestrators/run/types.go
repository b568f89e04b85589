package run

import (
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/charms"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/consumables"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	runsession "github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session"
)

// StartRunInput defines the request for starting a run
type StartRunInput struct {
	Difficulty entities.Difficulty // Empty selects plastic
	Seed       uint64              // Zero draws a seed from the configured source
}

// StartRunOutput defines the response for starting a run
type StartRunOutput struct {
	Session *runsession.Session
}

// GetRunInput defines the request for loading a run
type GetRunInput struct {
	RunID string
}

// GetRunOutput defines the response for loading a run
type GetRunOutput struct {
	Session *runsession.Session
}

// EndRunInput defines the request for ending a run
type EndRunInput struct {
	RunID string
}

// EndRunOutput defines the response for ending a run
type EndRunOutput struct {
	Ended bool
}

// EnterShopInput defines the request for opening a shop visit
type EnterShopInput struct {
	RunID string
}

// EnterShopOutput defines the response for opening a shop visit
type EnterShopOutput struct {
	Session *runsession.Session
	Shop    *entities.ShopState
}

// RefreshShopInput defines the request for rerolling the open shop
type RefreshShopInput struct {
	RunID string
}

// ShopOutput carries the engine result of a shop action. Session reflects
// the stored state; it is unchanged when Result.Success is false.
type ShopOutput struct {
	Session *runsession.Session
	Result  *shop.Result
}

// PurchaseInput selects a slot of the open shop
type PurchaseInput struct {
	RunID string
	Index int
}

// SellInput selects an owned charm or consumable
type SellInput struct {
	RunID string
	Index int
}

// UseConsumableInput defines the request for using a consumable. Target is
// nil on the first call of a targeted consumable.
type UseConsumableInput struct {
	RunID  string
	Index  int
	Target *consumables.TargetInput
}

// UseConsumableOutput defines the response for using a consumable
type UseConsumableOutput struct {
	Session *runsession.Session
	Result  *consumables.Result
}

// RollHandInput defines the request for starting a round
type RollHandInput struct {
	RunID string
}

// ResolveScoringInput defines the request for running charm hooks. Event
// defaults to scoring; SelectedDice and Combinations only apply to scoring.
type ResolveScoringInput struct {
	RunID        string
	Event        charms.Event
	SelectedDice []int
	Combinations []string
}

// HooksOutput carries the folded charm result for an event
type HooksOutput struct {
	Session *runsession.Session
	Result  *charms.Result
}

// TriggerBlessingsInput defines the request for firing dynamic blessings
type TriggerBlessingsInput struct {
	RunID   string
	Trigger blessings.Trigger
}

// TriggerBlessingsOutput defines the response for firing dynamic blessings
type TriggerBlessingsOutput struct {
	Session *runsession.Session
	// MoneyDelta and RerollDelta are what the blessings added
	MoneyDelta  int
	RerollDelta int
}

// ReorderCharmsInput defines the request for reordering owned charms.
// Order lists the current charm indices in their new order.
type ReorderCharmsInput struct {
	RunID string
	Order []int
}

// ReorderCharmsOutput defines the response for reordering owned charms
type ReorderCharmsOutput struct {
	Session *runsession.Session
}
