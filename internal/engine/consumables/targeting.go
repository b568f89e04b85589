package consumables

import (
	"slices"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// InputKind names the shape of the targeting data an effect needs
type InputKind string

// Input kinds
const (
	KindDieSelection     InputKind = "dieSelection"
	KindTwoDieSelection  InputKind = "twoDieSelection"
	KindDieSideSelection InputKind = "dieSideSelection"
)

// Scope says which dice the indices of a TargetInput refer to
type Scope string

// Scopes
const (
	// ScopeHand indexes RoundState.DiceHand
	ScopeHand Scope = "hand"
	// ScopeDiceSet indexes GameState.DiceSet
	ScopeDiceSet Scope = "diceSet"
)

// RequiresInput describes the targeting data the caller must supply
type RequiresInput struct {
	Kind         InputKind
	Scope        Scope
	EligibleDice []int
	Description  string
}

// TargetInput is the player's selection. SideValue is used by
// dieSideSelection only.
type TargetInput struct {
	DieIndices []int
	SideValue  int
}

func scopeDice(scope Scope, game *entities.GameState, round *entities.RoundState) []entities.Die {
	if scope == ScopeDiceSet {
		return game.DiceSet
	}
	if round == nil {
		return nil
	}
	return round.DiceHand
}

// eligible returns the indices of dice matching keep
func eligible(dice []entities.Die, keep func(entities.Die) bool) []int {
	out := []int{}
	for i, d := range dice {
		if keep(d) {
			out = append(out, i)
		}
	}
	return out
}

// validateInput applies the count rule of req.Kind and checks every index
// against the eligible set.
func validateInput(req *RequiresInput, in *TargetInput, game *entities.GameState, round *entities.RoundState) *errors.Error {
	want := 1
	if req.Kind == KindTwoDieSelection {
		want = 2
	}
	if len(in.DieIndices) != want {
		return errors.InvalidTargetf("Select exactly %d %s", want, plural(want, "die", "dice"))
	}
	if want == 2 && in.DieIndices[0] == in.DieIndices[1] {
		return errors.InvalidTarget("Select two different dice")
	}
	for _, i := range in.DieIndices {
		if !slices.Contains(req.EligibleDice, i) {
			return errors.InvalidTargetf("Die %d is not a valid target", i)
		}
	}
	if req.Kind == KindDieSideSelection {
		die := scopeDice(req.Scope, game, round)[in.DieIndices[0]]
		if !die.AllowsValue(in.SideValue) {
			return errors.InvalidTargetf("Face %d is not on die %s", in.SideValue, die.ID)
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
