package charms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/charms"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

type PipelineTestSuite struct {
	suite.Suite
	pipeline *charms.Pipeline
	recorder *notify.Recorder
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (s *PipelineTestSuite) SetupTest() {
	s.recorder = &notify.Recorder{}
	p, err := charms.NewPipeline(&charms.Config{
		Registry: charms.DefaultRegistry(catalog.Default()),
		Notifier: s.recorder,
	})
	s.Require().NoError(err)
	s.pipeline = p
}

func withCharms(ids ...string) *entities.GameState {
	g := entities.NewGameState(entities.DifficultyPlastic)
	for _, id := range ids {
		g.Charms = append(g.Charms, entities.Charm{ID: id, Name: id, Active: true})
	}
	return g
}

// hand rolls the first two starting dice to the given faces
func hand(a, b int) *entities.RoundState {
	dice := entities.StartingDice()[:2]
	dice[0].RolledValue = a
	dice[1].RolledValue = b
	return &entities.RoundState{DiceHand: dice}
}

func (s *PipelineTestSuite) scoreSingleOne(game *entities.GameState, src random.Source) *charms.Result {
	return s.pipeline.RunHooks(&charms.Input{
		Event:        charms.EventScoring,
		Game:         game,
		Round:        hand(1, 3),
		SelectedDice: []int{0},
		Combinations: []string{charms.CombinationSingleOne},
		Random:       src,
	})
}

func (s *PipelineTestSuite) TestNoCharmsScoresBase() {
	res := s.scoreSingleOne(withCharms(), nil)
	s.Require().True(res.Success)
	s.Equal(100, res.BaseScore)
	s.Equal(100, res.ScoreDelta)
	s.Empty(res.Effects)
}

func (s *PipelineTestSuite) TestCharmOrderMatters() {
	additiveFirst := s.scoreSingleOne(withCharms("oddOdyssey", "scoreMultiplier"), nil)
	s.Require().True(additiveFirst.Success)
	s.Equal(156, additiveFirst.ScoreDelta) // (100+25)*1.25 floored

	multiplierFirst := s.scoreSingleOne(withCharms("scoreMultiplier", "oddOdyssey"), nil)
	s.Require().True(multiplierFirst.Success)
	s.Equal(150, multiplierFirst.ScoreDelta)

	s.Equal([]string{"charm.triggered", "charm.triggered", "charm.triggered", "charm.triggered"}, s.recorder.Events())
}

func (s *PipelineTestSuite) TestUnknownAndInactiveCharmsAreSkipped() {
	g := withCharms("mysteryCharm", "scoreMultiplier")
	g.Charms[1].Active = false

	res := s.scoreSingleOne(g, nil)
	s.Require().True(res.Success)
	s.Equal(100, res.ScoreDelta)
	s.Empty(s.recorder.Signals())
}

func (s *PipelineTestSuite) TestLuckyLeprechaunDrawsOnce() {
	s.Run("inside window", func() {
		seq := random.NewSequence(0.1)
		res := s.scoreSingleOne(withCharms("luckyLeprechaun"), seq)
		s.Equal(300, res.ScoreDelta)
		s.Equal(1, seq.Drawn())
	})
	s.Run("outside window", func() {
		seq := random.NewSequence(0.5)
		res := s.scoreSingleOne(withCharms("luckyLeprechaun"), seq)
		s.Equal(100, res.ScoreDelta)
		s.Equal(1, seq.Drawn())
	})
}

func (s *PipelineTestSuite) TestPipEffects() {
	round := hand(1, 5)
	round.DiceHand[0].PipEffects[1] = entities.PipMoney
	round.DiceHand[1].PipEffects[5] = entities.PipMultiplier

	res := s.pipeline.RunHooks(&charms.Input{
		Event:        charms.EventScoring,
		Game:         withCharms(),
		Round:        round,
		SelectedDice: []int{0, 1},
		Combinations: []string{charms.CombinationSingleOne, charms.CombinationSingleFive},
	})
	s.Require().True(res.Success)
	s.True(res.HotDice)
	s.Equal(1, res.MoneyDelta)
	s.Equal(225, res.ScoreDelta) // 150 * 1.5
	s.Require().Len(res.Effects, 2)
	s.Equal("pip:d1", res.Effects[0].Source)
}

func (s *PipelineTestSuite) TestInvalidSelection() {
	game := withCharms("scoreMultiplier")
	round := hand(1, 3)

	for name, sel := range map[string][]int{
		"out of range": {5},
		"negative":     {-1},
		"duplicate":    {0, 0},
		"empty":        {},
	} {
		s.Run(name, func() {
			res := s.pipeline.RunHooks(&charms.Input{
				Event:        charms.EventScoring,
				Game:         game,
				Round:        round,
				SelectedDice: sel,
				Combinations: []string{charms.CombinationSingleOne},
			})
			s.False(res.Success)
			s.Equal(errors.CodeInvalidTarget, res.Code)

			g, r := res.Apply(game, round)
			s.Same(game, g)
			s.Same(round, r)
		})
	}
}

func (s *PipelineTestSuite) TestUnknownCombination() {
	res := s.pipeline.RunHooks(&charms.Input{
		Event:        charms.EventScoring,
		Game:         withCharms(),
		Round:        hand(1, 3),
		SelectedDice: []int{0},
		Combinations: []string{"royalFlush"},
	})
	s.False(res.Success)
	s.Equal(errors.CodeInvalidTarget, res.Code)
}

// rolled puts the first len(values) starting dice in hand
func rolled(values ...int) *entities.RoundState {
	dice := entities.StartingDice()[:len(values)]
	for i, v := range values {
		dice[i].RolledValue = v
	}
	return &entities.RoundState{DiceHand: dice}
}

func (s *PipelineTestSuite) TestClaimedCombinationsMustMatchDice() {
	rejected := map[string]struct {
		round    *entities.RoundState
		selected []int
		claims   []string
	}{
		"one die claims six of a kind": {hand(2, 3), []int{0}, []string{charms.CombinationSixOfAKind}},
		"same claim twice":             {hand(2, 3), []int{0}, []string{charms.CombinationSixOfAKind, charms.CombinationSixOfAKind}},
		"single one counted twice":     {hand(1, 3), []int{0}, []string{charms.CombinationSingleOne, charms.CombinationSingleOne}},
		"wrong face":                   {hand(5, 3), []int{0}, []string{charms.CombinationSingleOne}},
		"die left unscored":            {hand(1, 3), []int{0, 1}, []string{charms.CombinationSingleOne}},
		"no claims":                    {hand(1, 3), []int{0}, nil},
		"short straight":               {rolled(1, 2, 3, 4, 5, 5), []int{0, 1, 2, 3, 4, 5}, []string{charms.CombinationStraight}},
	}
	for name, tc := range rejected {
		s.Run(name, func() {
			game := withCharms("scoreMultiplier")
			res := s.pipeline.RunHooks(&charms.Input{
				Event:        charms.EventScoring,
				Game:         game,
				Round:        tc.round,
				SelectedDice: tc.selected,
				Combinations: tc.claims,
			})
			s.False(res.Success)
			s.Equal(errors.CodeInvalidTarget, res.Code)
			s.Zero(res.ScoreDelta)

			g, r := res.Apply(game, tc.round)
			s.Same(game, g)
			s.Same(tc.round, r)
		})
	}

	accepted := map[string]struct {
		round  *entities.RoundState
		claims []string
		base   int
	}{
		"two single ones":         {rolled(1, 1), []string{charms.CombinationSingleOne, charms.CombinationSingleOne}, 200},
		"triple plus single":      {rolled(1, 2, 2, 2), []string{charms.CombinationThreeOfAKind, charms.CombinationSingleOne}, 400},
		"triple of ones plus one": {rolled(1, 1, 1, 1), []string{charms.CombinationSingleOne, charms.CombinationThreeOfAKind}, 400},
		"straight":                {rolled(6, 5, 4, 3, 2, 1), []string{charms.CombinationStraight}, 1500},
		"three pairs":             {rolled(2, 2, 4, 4, 6, 6), []string{charms.CombinationThreePairs}, 1500},
		"two triplets":            {rolled(3, 3, 3, 6, 6, 6), []string{charms.CombinationTwoTriplets}, 2500},
		"four and a pair":         {rolled(4, 2, 4, 2, 4, 4), []string{charms.CombinationFourAndAPair}, 1500},
		"six of a kind":           {rolled(2, 2, 2, 2, 2, 2), []string{charms.CombinationSixOfAKind}, 3000},
	}
	for name, tc := range accepted {
		s.Run(name, func() {
			selected := make([]int, len(tc.round.DiceHand))
			for i := range selected {
				selected[i] = i
			}
			res := s.pipeline.RunHooks(&charms.Input{
				Event:        charms.EventScoring,
				Game:         withCharms(),
				Round:        tc.round,
				SelectedDice: selected,
				Combinations: tc.claims,
			})
			s.Require().True(res.Success, res.Message)
			s.Equal(tc.base, res.BaseScore)
		})
	}
}

func (s *PipelineTestSuite) TestUpgradedCombinationScalesBase() {
	g := withCharms()
	g.CombinationLevels[charms.CombinationSingleOne] = 3

	res := s.scoreSingleOne(g, nil)
	s.Equal(300, res.BaseScore)
}

func (s *PipelineTestSuite) TestFlopShieldCharges() {
	s.Run("charge available", func() {
		game := withCharms("flopShield")
		round := &entities.RoundState{RoundPoints: 400}

		res := s.pipeline.RunHooks(&charms.Input{Event: charms.EventFlop, Game: game, Round: round})
		s.Require().True(res.Success)
		s.True(res.PreventFlop)

		g, r := res.Apply(game, round)
		s.Equal(400, r.RoundPoints)
		s.Equal(0, r.ForfeitedPoints)
		s.Equal(1, g.History.Counter(charms.FlopShieldCounter))
		s.Equal(0, game.History.Counter(charms.FlopShieldCounter))
	})
	s.Run("charges spent", func() {
		game := withCharms("flopShield")
		game.History.AddCounter(charms.FlopShieldCounter, 3)
		round := &entities.RoundState{RoundPoints: 400}

		res := s.pipeline.RunHooks(&charms.Input{Event: charms.EventFlop, Game: game, Round: round})
		s.False(res.PreventFlop)

		_, r := res.Apply(game, round)
		s.Equal(0, r.RoundPoints)
		s.Equal(400, r.ForfeitedPoints)
		s.Equal(400, round.RoundPoints)
	})
}

func (s *PipelineTestSuite) TestBankHooks() {
	game := withCharms("piggyBank", "interestCharm", "bankersBonus")
	game.Money = 23
	game.Banks = 2

	res := s.pipeline.RunHooks(&charms.Input{Event: charms.EventBank, Game: game, Round: &entities.RoundState{}})
	s.Require().True(res.Success)
	s.Equal(2+4+2, res.MoneyDelta)

	g, _ := res.Apply(game, &entities.RoundState{})
	s.Equal(31, g.Money)
	s.Equal(23, game.Money)
}

func (s *PipelineTestSuite) TestRoundStartAndFlopRerolls() {
	game := withCharms("headStart", "rerollRecovery", "secondWind")

	start := s.pipeline.RunHooks(&charms.Input{Event: charms.EventRoundStart, Game: game})
	s.Equal(1, start.RerollDelta)

	flop := s.pipeline.RunHooks(&charms.Input{Event: charms.EventFlop, Game: game, Round: &entities.RoundState{}})
	s.Equal(3, flop.RerollDelta)
}

func (s *PipelineTestSuite) TestApplyScoringDoesNotMutate() {
	game := withCharms("scoreMultiplier")
	round := hand(1, 3)
	round.RoundPoints = 50

	res := s.scoreSingleOne(game, nil)
	g, r := res.Apply(game, round)

	s.Equal(175, r.RoundPoints)
	s.Equal(50, round.RoundPoints)
	s.Equal(0, r.HotDiceCount)
	s.NotSame(game, g)
	r.DiceHand[0].RolledValue = 6
	s.Equal(1, round.DiceHand[0].RolledValue)
}

func TestRunHooksRejectsBadInput(t *testing.T) {
	p, err := charms.NewPipeline(&charms.Config{Registry: charms.NewRegistry()})
	require.NoError(t, err)

	res := p.RunHooks(&charms.Input{Event: "explode", Game: withCharms()})
	assert.False(t, res.Success)
	assert.Equal(t, errors.CodeInvalidArgument, res.Code)

	res = p.RunHooks(&charms.Input{Event: charms.EventBank})
	assert.False(t, res.Success)

	_, err = charms.NewPipeline(&charms.Config{})
	assert.Error(t, err)
}
