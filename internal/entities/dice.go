package entities

import (
	"fmt"
	"maps"
	"slices"
)

// Material is a die material tag
type Material string

// Die materials
const (
	MaterialPlain   Material = "plain"
	MaterialCrystal Material = "crystal"
	MaterialGolden  Material = "golden"
	MaterialGhost   Material = "ghost"
	MaterialLead    Material = "lead"
	MaterialRainbow Material = "rainbow"
	MaterialMirror  Material = "mirror"
	MaterialVolcano Material = "volcano"
)

// PipEffect is a special tag on a single die face
type PipEffect string

// Pip effects
const (
	PipMoney      PipEffect = "money"
	PipReroll     PipEffect = "reroll"
	PipPoints     PipEffect = "points"
	PipMultiplier PipEffect = "multiplier"
)

// IsValid reports whether p is a known pip effect
func (p PipEffect) IsValid() bool {
	switch p {
	case PipMoney, PipReroll, PipPoints, PipMultiplier:
		return true
	}
	return false
}

// Die is one die of the player's set. In a RoundState hand RolledValue holds
// the face showing; zero means not rolled.
type Die struct {
	ID            string            `json:"id"`
	Sides         int               `json:"sides"`
	AllowedValues []int             `json:"allowedValues"`
	Material      Material          `json:"material"`
	PipEffects    map[int]PipEffect `json:"pipEffects"`
	RolledValue   int               `json:"rolledValue,omitempty"`
}

// NewStandardDie creates a plain die with faces 1..sides
func NewStandardDie(id string, sides int) Die {
	values := make([]int, sides)
	for i := range values {
		values[i] = i + 1
	}
	return Die{
		ID:            id,
		Sides:         sides,
		AllowedValues: values,
		Material:      MaterialPlain,
		PipEffects:    map[int]PipEffect{},
	}
}

// Clone returns a deep copy
func (d Die) Clone() Die {
	d.AllowedValues = slices.Clone(d.AllowedValues)
	d.PipEffects = maps.Clone(d.PipEffects)
	return d
}

// AllowsValue reports whether v is one of the die's faces
func (d Die) AllowsValue(v int) bool {
	return slices.Contains(d.AllowedValues, v)
}

// MinValue returns the lowest face
func (d Die) MinValue() int {
	if len(d.AllowedValues) == 0 {
		return 0
	}
	return slices.Min(d.AllowedValues)
}

// MaxValue returns the highest face
func (d Die) MaxValue() int {
	if len(d.AllowedValues) == 0 {
		return 0
	}
	return slices.Max(d.AllowedValues)
}

// RolledPip returns the pip effect on the face currently showing
func (d Die) RolledPip() (PipEffect, bool) {
	if d.RolledValue == 0 {
		return "", false
	}
	p, ok := d.PipEffects[d.RolledValue]
	return p, ok
}

func cloneDice(dice []Die) []Die {
	if dice == nil {
		return nil
	}
	out := make([]Die, len(dice))
	for i, d := range dice {
		out[i] = d.Clone()
	}
	return out
}

// StartingDice returns the default six plain d6
func StartingDice() []Die {
	dice := make([]Die, 6)
	for i := range dice {
		dice[i] = NewStandardDie(fmt.Sprintf("d%d", i+1), 6)
	}
	return dice
}
