package charms

import (
	"slices"

	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// Combination names
const (
	CombinationSingleOne    = "singleOne"
	CombinationSingleFive   = "singleFive"
	CombinationThreeOfAKind = "threeOfAKind"
	CombinationFourOfAKind  = "fourOfAKind"
	CombinationFiveOfAKind  = "fiveOfAKind"
	CombinationSixOfAKind   = "sixOfAKind"
	CombinationStraight     = "straight"
	CombinationThreePairs   = "threePairs"
	CombinationTwoTriplets  = "twoTriplets"
	CombinationFourAndAPair = "fourOfAKindPlusPair"
)

// combinationPoints is the level-1 value of each combination
var combinationPoints = map[string]int{
	CombinationSingleOne:    100,
	CombinationSingleFive:   50,
	CombinationThreeOfAKind: 300,
	CombinationFourOfAKind:  1000,
	CombinationFiveOfAKind:  2000,
	CombinationSixOfAKind:   3000,
	CombinationStraight:     1500,
	CombinationThreePairs:   1500,
	CombinationTwoTriplets:  2500,
	CombinationFourAndAPair: 1500,
}

// group is n dice showing one face. Face 0 matches any face.
type group struct {
	n    int
	face int
}

// combinationShapes lists the dice each combination consumes
var combinationShapes = map[string][]group{
	CombinationSingleOne:    {{1, 1}},
	CombinationSingleFive:   {{1, 5}},
	CombinationThreeOfAKind: {{3, 0}},
	CombinationFourOfAKind:  {{4, 0}},
	CombinationFiveOfAKind:  {{5, 0}},
	CombinationSixOfAKind:   {{6, 0}},
	CombinationStraight:     {{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}},
	CombinationThreePairs:   {{2, 0}, {2, 0}, {2, 0}},
	CombinationTwoTriplets:  {{3, 0}, {3, 0}},
	CombinationFourAndAPair: {{4, 0}, {2, 0}},
}

// CombinationPoints returns the level-1 value of a combination
func CombinationPoints(name string) (int, bool) {
	p, ok := combinationPoints[name]
	return p, ok
}

// BaseScore sums the value of each combination scaled by its upgrade level
func BaseScore(game *entities.GameState, combinations []string) (int, error) {
	total := 0
	for _, name := range combinations {
		p, ok := combinationPoints[name]
		if !ok {
			return 0, errors.InvalidTargetf("Unknown combination %q", name)
		}
		total += p * game.CombinationLevel(name)
	}
	return total, nil
}

// MatchCombinations checks that the claimed combinations split the dice
// exactly: every die belongs to one claim and every claim is formed.
func MatchCombinations(dice []entities.Die, combinations []string) *errors.Error {
	for _, name := range combinations {
		if _, ok := combinationShapes[name]; !ok {
			return errors.InvalidTargetf("Unknown combination %q", name)
		}
	}

	counts := make(map[int]int, len(dice))
	for _, d := range dice {
		counts[d.RolledValue]++
	}
	faces := make([]int, 0, len(counts))
	for f := range counts {
		faces = append(faces, f)
	}
	slices.Sort(faces)

	var groups []group
	for _, name := range combinations {
		groups = append(groups, combinationShapes[name]...)
	}
	if !consume(counts, faces, groups) {
		return errors.InvalidTarget("Selected dice do not form the claimed combinations")
	}
	return nil
}

// consume takes each group from counts in turn, backtracking over the faces
// an any-face group could use. It succeeds when every die is taken.
func consume(counts map[int]int, faces []int, groups []group) bool {
	if len(groups) == 0 {
		for _, n := range counts {
			if n != 0 {
				return false
			}
		}
		return true
	}

	g := groups[0]
	candidates := faces
	if g.face != 0 {
		candidates = []int{g.face}
	}
	for _, f := range candidates {
		if counts[f] < g.n {
			continue
		}
		counts[f] -= g.n
		ok := consume(counts, faces, groups[1:])
		counts[f] += g.n
		if ok {
			return true
		}
	}
	return false
}
