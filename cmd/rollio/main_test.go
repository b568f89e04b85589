package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bbeaudet-dev/rollio-sub001/internal/config"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/consumables"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run"
	runmock "github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run/mock"
	runsession "github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session"
	"github.com/bbeaudet-dev/rollio-sub001/internal/testutils/builders"
)

func noService(context.Context, *config.Config) (run.Service, func(), error) {
	return nil, nil, errors.Internal("no service in offline tests")
}

func mockFactory(svc run.Service) serviceFactory {
	return func(context.Context, *config.Config) (run.Service, func(), error) {
		return svc, func() {}, nil
	}
}

func execute(t *testing.T, factory serviceFactory, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROLLIO_LOG_LEVEL", "error")
	t.Setenv("ROLLIO_DIFFICULTY", "plastic")
	t.Setenv("ROLLIO_SEED", "0")

	cmd := newRootCmd(factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func testSession() *runsession.Session {
	return &runsession.Session{
		ID:   "run_1",
		Seed: 9,
		Game: builders.NewGameStateBuilder().
			WithDifficulty(entities.DifficultyGold).
			WithCharms("flopShield").
			Build(),
	}
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, noService, "catalog")
	require.NoError(t, err)

	assert.Contains(t, out, "Charms (19)")
	assert.Contains(t, out, "flopShield")
	assert.Contains(t, out, "Consumables (")
	assert.Contains(t, out, "Blessings (")
}

func TestCatalogCommand_UnknownDifficulty(t *testing.T) {
	_, err := execute(t, noService, "catalog", "--difficulty", "cardboard")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestShopCommand_SeededIsDeterministic(t *testing.T) {
	first, err := execute(t, noService, "shop", "--seed", "42")
	require.NoError(t, err)
	second, err := execute(t, noService, "shop", "--seed", "42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Shop (refreshes: 0")
	assert.Contains(t, first, "Charms:")
	assert.Contains(t, first, "Blessings:")
}

func TestDistributionCommand(t *testing.T) {
	out, err := execute(t, noService, "distribution", "--count", "500", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Shops sampled: 500")
	assert.Contains(t, out, string(entities.RarityLegendary))
	assert.Contains(t, out, string(entities.CategoryWhim))

	_, err = execute(t, noService, "distribution", "--count", "0")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRunCommands_ServiceUnavailable(t *testing.T) {
	_, err := execute(t, noService, "run", "show", "run_1")
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
}

func TestRunNewCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		StartRun(gomock.Any(), &run.StartRunInput{Difficulty: entities.DifficultyGold, Seed: 9}).
		Return(&run.StartRunOutput{Session: testSession()}, nil)

	out, err := execute(t, mockFactory(svc), "run", "new", "--difficulty", "gold", "--seed", "9")
	require.NoError(t, err)

	assert.Contains(t, out, "Run run_1 (gold, seed 9)")
	assert.Contains(t, out, "[0] flopShield")
}

func TestRunBuyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	session := testSession()
	session.Shop = &entities.ShopState{}
	svc.EXPECT().
		PurchaseBlessing(gomock.Any(), &run.PurchaseInput{RunID: "run_1", Index: 0}).
		Return(&run.ShopOutput{
			Session: session,
			Result:  &shop.Result{Success: true, Message: "Purchased Blessing"},
		}, nil)

	out, err := execute(t, mockFactory(svc), "run", "buy", "run_1", "blessing", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "OK: Purchased Blessing")
	assert.Contains(t, out, "Shop (refreshes: 0")
}

func TestRunBuyCommand_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		PurchaseCharm(gomock.Any(), &run.PurchaseInput{RunID: "run_1", Index: 2}).
		Return(&run.ShopOutput{
			Session: testSession(),
			Result:  &shop.Result{Message: "Not enough money", Code: errors.CodeInsufficientResources},
		}, nil)

	out, err := execute(t, mockFactory(svc), "run", "buy", "run_1", "charm", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Rejected (")
	assert.Contains(t, out, "Not enough money")
}

func TestRunBuyCommand_BadArguments(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	_, err := execute(t, mockFactory(svc), "run", "buy", "run_1", "die", "0")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "unknown item kind")

	_, err = execute(t, mockFactory(svc), "run", "buy", "run_1", "charm", "first")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRunUseCommand_RequiresInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		UseConsumable(gomock.Any(), &run.UseConsumableInput{RunID: "run_1", Index: 0}).
		Return(&run.UseConsumableOutput{
			Session: testSession(),
			Result: &consumables.Result{
				Success:    true,
				Consumable: entities.Consumable{ID: "chisel", Name: "Chisel"},
				RequiresInput: &consumables.RequiresInput{
					Kind:         consumables.KindDieSelection,
					Scope:        consumables.ScopeDiceSet,
					EligibleDice: []int{0, 1},
					Description:  "Select a die to lower by one face",
				},
			},
		}, nil)

	out, err := execute(t, mockFactory(svc), "run", "use", "run_1", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Chisel needs input: Select a die to lower by one face")
	assert.Contains(t, out, "Eligible dice: [0 1]")
}

func TestRunUseCommand_WithTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		UseConsumable(gomock.Any(), &run.UseConsumableInput{
			RunID:  "run_1",
			Index:  1,
			Target: &consumables.TargetInput{DieIndices: []int{2, 3}, SideValue: 4},
		}).
		Return(&run.UseConsumableOutput{
			Session: testSession(),
			Result: &consumables.Result{
				Success:    true,
				Message:    "Branded die",
				Consumable: entities.Consumable{ID: "brand", Name: "Brand"},
				Prevented:  true,
			},
		}, nil)

	out, err := execute(t, mockFactory(svc), "run", "use", "run_1", "1", "--dice", "2,3", "--side", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "OK: Branded die")
	assert.Contains(t, out, "Brand was not consumed")
	assert.Contains(t, out, "Run run_1")
}

func TestRunReorderCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		ReorderCharms(gomock.Any(), &run.ReorderCharmsInput{RunID: "run_1", Order: []int{2, 0, 1}}).
		Return(&run.ReorderCharmsOutput{Session: testSession()}, nil)

	_, err := execute(t, mockFactory(svc), "run", "reorder", "run_1", "2", "0", "1")
	require.NoError(t, err)
}

func TestRunEndCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		EndRun(gomock.Any(), &run.EndRunInput{RunID: "run_1"}).
		Return(&run.EndRunOutput{Ended: true}, nil)

	out, err := execute(t, mockFactory(svc), "run", "end", "run_1")
	require.NoError(t, err)
	assert.Contains(t, out, "Run run_1 ended")
}

func TestRunServiceErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := runmock.NewMockService(ctrl)

	svc.EXPECT().
		GetRun(gomock.Any(), &run.GetRunInput{RunID: "missing"}).
		Return(nil, errors.NotFound("run missing not found"))

	_, err := execute(t, mockFactory(svc), "run", "show", "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
