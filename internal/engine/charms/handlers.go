package charms

import (
	"fmt"
	"math"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
)

// FlopShieldCounter tracks spent flop shield charges in History.Counters
const FlopShieldCounter = "flopShield.used"

// FlopShield prevents a flop while charges remain
type FlopShield struct {
	Charges int
}

func (h *FlopShield) ID() string { return "flopShield" }

func (h *FlopShield) OnFlop(ctx *Context) Contribution {
	if ctx.FlopPrevented {
		return Contribution{}
	}
	used := ctx.Game.History.Counter(FlopShieldCounter)
	if used >= h.Charges {
		return Contribution{}
	}
	return Contribution{
		PreventFlop: true,
		Counters:    map[string]int{FlopShieldCounter: 1},
		Message:     fmt.Sprintf("Flop prevented (%d charges left)", h.Charges-used-1),
	}
}

// OddOdyssey adds points per odd die scored
type OddOdyssey struct {
	PointsPerDie int
}

func (h *OddOdyssey) ID() string { return "oddOdyssey" }

func (h *OddOdyssey) OnScoring(ctx *Context) Contribution {
	n := countDice(ctx.SelectedDice, func(d entities.Die) bool { return d.RolledValue%2 == 1 })
	return Contribution{Points: n * h.PointsPerDie}
}

// EvenSteven adds points per even die scored
type EvenSteven struct {
	PointsPerDie int
}

func (h *EvenSteven) ID() string { return "evenSteven" }

func (h *EvenSteven) OnScoring(ctx *Context) Contribution {
	n := countDice(ctx.SelectedDice, func(d entities.Die) bool { return d.RolledValue > 0 && d.RolledValue%2 == 0 })
	return Contribution{Points: n * h.PointsPerDie}
}

// PiggyBank pays money on bank
type PiggyBank struct {
	Money int
}

func (h *PiggyBank) ID() string { return "piggyBank" }

func (h *PiggyBank) OnBank(*Context) Contribution {
	return Contribution{Money: h.Money}
}

// HeadStart grants rerolls at round start
type HeadStart struct {
	Rerolls int
}

func (h *HeadStart) ID() string { return "headStart" }

func (h *HeadStart) OnRoundStart(*Context) Contribution {
	return Contribution{Rerolls: h.Rerolls}
}

// BigHand rewards scoring many dice at once
type BigHand struct {
	MinDice int
	Points  int
}

func (h *BigHand) ID() string { return "bigHand" }

func (h *BigHand) OnScoring(ctx *Context) Contribution {
	if len(ctx.SelectedDice) < h.MinDice {
		return Contribution{}
	}
	return Contribution{Points: h.Points}
}

// ScoreMultiplier multiplies every scoring
type ScoreMultiplier struct {
	Multiplier float64
}

func (h *ScoreMultiplier) ID() string { return "scoreMultiplier" }

func (h *ScoreMultiplier) OnScoring(*Context) Contribution {
	return Contribution{Multiplier: h.Multiplier}
}

// RerollRecovery grants rerolls on flop
type RerollRecovery struct {
	Rerolls int
}

func (h *RerollRecovery) ID() string { return "rerollRecovery" }

func (h *RerollRecovery) OnFlop(*Context) Contribution {
	return Contribution{Rerolls: h.Rerolls}
}

// Interest pays one money per Per held when banking, up to Cap
type Interest struct {
	Per int
	Cap int
}

func (h *Interest) ID() string { return "interestCharm" }

func (h *Interest) OnBank(ctx *Context) Contribution {
	if h.Per <= 0 {
		return Contribution{}
	}
	return Contribution{Money: min(ctx.Game.Money/h.Per, h.Cap)}
}

// GhostWhisperer adds points per ghost die scored
type GhostWhisperer struct {
	PointsPerDie int
}

func (h *GhostWhisperer) ID() string { return "ghostWhisperer" }

func (h *GhostWhisperer) OnScoring(ctx *Context) Contribution {
	n := countDice(ctx.SelectedDice, func(d entities.Die) bool { return d.Material == entities.MaterialGhost })
	return Contribution{Points: n * h.PointsPerDie}
}

// WhimWhisperer may save a used whim from being consumed
type WhimWhisperer struct {
	Chance float64
}

func (h *WhimWhisperer) ID() string { return "whimWhisperer" }

func (h *WhimWhisperer) SaveChance(c entities.Consumable) float64 {
	if c.Category != entities.CategoryWhim {
		return 0
	}
	return h.Chance
}

// FourOfAKindBooster multiplies scorings that include four of a kind
type FourOfAKindBooster struct {
	Multiplier float64
}

func (h *FourOfAKindBooster) ID() string { return "fourOfAKindBooster" }

func (h *FourOfAKindBooster) OnScoring(ctx *Context) Contribution {
	if !ctx.HasCombination(CombinationFourOfAKind) {
		return Contribution{}
	}
	return Contribution{Multiplier: h.Multiplier}
}

// HotPocket multiplies a scoring that uses every die in hand
type HotPocket struct {
	Multiplier float64
}

func (h *HotPocket) ID() string { return "hotPocket" }

func (h *HotPocket) OnScoring(ctx *Context) Contribution {
	if !ctx.HotDice() {
		return Contribution{}
	}
	return Contribution{Multiplier: h.Multiplier, Message: "Hot dice!"}
}

// BankersBonus pays per bank left when banking
type BankersBonus struct {
	MoneyPerBank int
}

func (h *BankersBonus) ID() string { return "bankersBonus" }

func (h *BankersBonus) OnBank(ctx *Context) Contribution {
	return Contribution{Money: max(ctx.Game.Banks, 0) * h.MoneyPerBank}
}

// GenerousGenie may grant a bonus whim after a consumable is used
type GenerousGenie struct {
	Chance float64
}

func (h *GenerousGenie) ID() string { return "generousGenie" }

func (h *GenerousGenie) BonusChance(entities.Consumable) float64 {
	return h.Chance
}

// LuckyLeprechaun may multiply a scoring. It draws once per scoring.
type LuckyLeprechaun struct {
	Chance     float64
	Multiplier float64
}

func (h *LuckyLeprechaun) ID() string { return "luckyLeprechaun" }

func (h *LuckyLeprechaun) OnScoring(ctx *Context) Contribution {
	if ctx.Random == nil || ctx.Random.Float64() >= h.Chance {
		return Contribution{}
	}
	return Contribution{Multiplier: h.Multiplier, Message: "Lucky!"}
}

// GoldenGoose pays per Per round points when banking, up to Cap
type GoldenGoose struct {
	Per int
	Cap int
}

func (h *GoldenGoose) ID() string { return "goldenGoose" }

func (h *GoldenGoose) OnBank(ctx *Context) Contribution {
	if h.Per <= 0 || ctx.Round == nil {
		return Contribution{}
	}
	return Contribution{Money: min(ctx.Round.RoundPoints/h.Per, h.Cap)}
}

// CrystalClear multiplies once per crystal die scored
type CrystalClear struct {
	Multiplier float64
}

func (h *CrystalClear) ID() string { return "crystalClear" }

func (h *CrystalClear) OnScoring(ctx *Context) Contribution {
	n := countDice(ctx.SelectedDice, func(d entities.Die) bool { return d.Material == entities.MaterialCrystal })
	if n == 0 {
		return Contribution{}
	}
	return Contribution{Multiplier: math.Pow(h.Multiplier, float64(n))}
}

// SecondWind grants rerolls on flop
type SecondWind struct {
	Rerolls int
}

func (h *SecondWind) ID() string { return "secondWind" }

func (h *SecondWind) OnFlop(*Context) Contribution {
	return Contribution{Rerolls: h.Rerolls}
}

func countDice(dice []entities.Die, match func(entities.Die) bool) int {
	n := 0
	for _, d := range dice {
		if match(d) {
			n++
		}
	}
	return n
}
