package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/charms"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/consumables"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/orchestrators/run"
)

// withService builds the run service for one command invocation
func (a *app) withService(cmd *cobra.Command, fn func(ctx context.Context, svc run.Service) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := a.newService(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, svc)
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.InvalidArgumentf("invalid index %q", arg)
	}
	return i, nil
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play a persisted run",
	}

	cmd.AddCommand(newRunNewCmd(a))
	cmd.AddCommand(newRunShowCmd(a))
	cmd.AddCommand(newRunEndCmd(a))
	cmd.AddCommand(newRunShopCmd(a))
	cmd.AddCommand(newRunRefreshCmd(a))
	cmd.AddCommand(newRunBuyCmd(a))
	cmd.AddCommand(newRunSellCmd(a))
	cmd.AddCommand(newRunUseCmd(a))
	cmd.AddCommand(newRunRollCmd(a))
	cmd.AddCommand(newRunScoreCmd(a))
	cmd.AddCommand(newRunTriggerCmd(a))
	cmd.AddCommand(newRunReorderCmd(a))

	return cmd
}

func newRunNewCmd(a *app) *cobra.Command {
	var (
		difficulty string
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.difficulty(difficulty)
			if err != nil {
				return err
			}
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.StartRun(ctx, &run.StartRunInput{Difficulty: d, Seed: seed})
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), out.Session)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Run difficulty (default from ROLLIO_DIFFICULTY)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Run seed (default from ROLLIO_SEED, else random)")
	return cmd
}

func newRunShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.GetRun(ctx, &run.GetRunInput{RunID: args[0]})
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), out.Session)
				if out.Session.Shop != nil {
					printShop(cmd.OutOrStdout(), out.Session.Game, out.Session.Shop)
				}
				return nil
			})
		},
	}
}

func newRunEndCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "end <run-id>",
		Short: "Delete a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.EndRun(ctx, &run.EndRunInput{RunID: args[0]})
				if err != nil {
					return err
				}
				if !out.Ended {
					fmt.Fprintf(cmd.OutOrStdout(), "Run %s did not exist\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s ended\n", args[0])
				return nil
			})
		},
	}
}

func newRunShopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shop <run-id>",
		Short: "Enter the shop with a fresh inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.EnterShop(ctx, &run.EnterShopInput{RunID: args[0]})
				if err != nil {
					return err
				}
				printShop(cmd.OutOrStdout(), out.Session.Game, out.Shop)
				return nil
			})
		},
	}
}

// printShopOutput reports a shop action and the shop after it
func printShopOutput(cmd *cobra.Command, out *run.ShopOutput) {
	w := cmd.OutOrStdout()
	printOutcome(w, out.Result.Success, out.Result.Message, out.Result.Code)
	fmt.Fprintf(w, "Money: $%d\n", out.Session.Game.Money)
	if out.Session.Shop != nil {
		printShop(w, out.Session.Game, out.Session.Shop)
	}
}

func newRunRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <run-id>",
		Short: "Refresh the open shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.RefreshShop(ctx, &run.RefreshShopInput{RunID: args[0]})
				if err != nil {
					return err
				}
				printShopOutput(cmd, out)
				return nil
			})
		},
	}
}

func newRunBuyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "buy <run-id> <charm|consumable|blessing> <index>",
		Short:     "Buy an item from the open shop",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"charm", "consumable", "blessing"},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			input := &run.PurchaseInput{RunID: args[0], Index: index}

			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				var out *run.ShopOutput
				switch args[1] {
				case "charm":
					out, err = svc.PurchaseCharm(ctx, input)
				case "consumable":
					out, err = svc.PurchaseConsumable(ctx, input)
				case "blessing":
					out, err = svc.PurchaseBlessing(ctx, input)
				default:
					return errors.InvalidArgumentf("unknown item kind %q", args[1])
				}
				if err != nil {
					return err
				}
				printShopOutput(cmd, out)
				return nil
			})
		},
	}
}

func newRunSellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "sell <run-id> <charm|consumable> <index>",
		Short:     "Sell an owned item",
		Args:      cobra.ExactArgs(3),
		ValidArgs: []string{"charm", "consumable"},
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			input := &run.SellInput{RunID: args[0], Index: index}

			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				var out *run.ShopOutput
				switch args[1] {
				case "charm":
					out, err = svc.SellCharm(ctx, input)
				case "consumable":
					out, err = svc.SellConsumable(ctx, input)
				default:
					return errors.InvalidArgumentf("unknown item kind %q", args[1])
				}
				if err != nil {
					return err
				}
				printShopOutput(cmd, out)
				return nil
			})
		},
	}
}

func newRunUseCmd(a *app) *cobra.Command {
	var (
		dice []int
		side int
	)

	cmd := &cobra.Command{
		Use:   "use <run-id> <index>",
		Short: "Use a consumable",
		Long: `Use the consumable at index. Targeted consumables called without --dice
print the selection they need instead of being used.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			input := &run.UseConsumableInput{RunID: args[0], Index: index}
			if len(dice) > 0 {
				input.Target = &consumables.TargetInput{DieIndices: dice, SideValue: side}
			}

			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.UseConsumable(ctx, input)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				res := out.Result
				if req := res.RequiresInput; req != nil {
					fmt.Fprintf(w, "%s needs input: %s\n", res.Consumable.Name, req.Description)
					fmt.Fprintf(w, "  Kind: %s  Scope: %s  Eligible dice: %v\n", req.Kind, req.Scope, req.EligibleDice)
					return nil
				}

				printOutcome(w, res.Success, res.Message, res.Code)
				if res.Prevented {
					fmt.Fprintf(w, "%s was not consumed\n", res.Consumable.Name)
				}
				if res.Bonus != nil {
					fmt.Fprintf(w, "Bonus: %s\n", res.Bonus.Name)
				}
				if res.Unlock != nil {
					fmt.Fprintf(w, "Unlocked: %s\n", res.Unlock.Name)
				}
				if res.Success {
					printSession(w, out.Session)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntSliceVar(&dice, "dice", nil, "Selected die indices")
	cmd.Flags().IntVar(&side, "side", 0, "Selected face value")
	return cmd
}

// printHooks reports a charm pipeline result
func printHooks(cmd *cobra.Command, out *run.HooksOutput) {
	w := cmd.OutOrStdout()
	res := out.Result
	if !res.Success {
		printOutcome(w, false, res.Message, res.Code)
		return
	}
	for _, line := range res.Summary() {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if res.Event == charms.EventScoring {
		fmt.Fprintf(w, "Scored %d (base %d)\n", res.ScoreDelta, res.BaseScore)
	}
	printSession(w, out.Session)
}

func newRunRollCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roll <run-id>",
		Short: "Roll the dice set into a new round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.RollHand(ctx, &run.RollHandInput{RunID: args[0]})
				if err != nil {
					return err
				}
				printHooks(cmd, out)
				return nil
			})
		},
	}
}

func newRunScoreCmd(a *app) *cobra.Command {
	var (
		event        string
		dice         []int
		combinations []string
	)

	cmd := &cobra.Command{
		Use:   "score <run-id>",
		Short: "Run the charm hooks for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.ResolveScoring(ctx, &run.ResolveScoringInput{
					RunID:        args[0],
					Event:        charms.Event(event),
					SelectedDice: dice,
					Combinations: combinations,
				})
				if err != nil {
					return err
				}
				printHooks(cmd, out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&event, "event", string(charms.EventScoring), "Event: scoring, bank, flop or roundStart")
	cmd.Flags().IntSliceVar(&dice, "dice", nil, "Selected die indices (scoring)")
	cmd.Flags().StringSliceVar(&combinations, "combo", nil, "Combinations formed by the selection (scoring)")
	return cmd
}

func newRunTriggerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger <run-id> <bank|flop|rerollUsed|levelEnd>",
		Short: "Fire the dynamic blessings for a trigger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.TriggerBlessings(ctx, &run.TriggerBlessingsInput{
					RunID:   args[0],
					Trigger: blessings.Trigger(args[1]),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Money %+d, rerolls %+d\n", out.MoneyDelta, out.RerollDelta)
				return nil
			})
		},
	}
}

func newRunReorderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <run-id> <index>...",
		Short: "Reorder owned charms",
		Long:  `List every current charm index in its new position, e.g. "reorder run_1 2 0 1".`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				i, err := parseIndex(arg)
				if err != nil {
					return err
				}
				order = append(order, i)
			}

			return a.withService(cmd, func(ctx context.Context, svc run.Service) error {
				out, err := svc.ReorderCharms(ctx, &run.ReorderCharmsInput{RunID: args[0], Order: order})
				if err != nil {
					return err
				}
				printSession(cmd.OutOrStdout(), out.Session)
				return nil
			})
		},
	}
}
