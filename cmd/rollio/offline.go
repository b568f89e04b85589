package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// difficulty picks the flag value over the configured default
func (a *app) difficulty(flag string) (entities.Difficulty, error) {
	d := flag
	if d == "" {
		d = a.cfg.Difficulty
	}
	if !slices.Contains(entities.Difficulties(), d) {
		return "", errors.InvalidArgumentf("unknown difficulty %q", d)
	}
	return entities.Difficulty(d), nil
}

// source returns a seeded source, or rpg-toolkit dice when no seed is set
func (a *app) source(seed uint64) random.Source {
	if seed == 0 {
		seed = a.cfg.Seed
	}
	if seed == 0 {
		return random.NewRollerSource(nil)
	}
	return random.NewSeeded(seed)
}

func newCatalogCmd(a *app) *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List every charm, consumable and blessing",
		Long:  `List the built-in catalog with shop prices at the chosen difficulty.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.difficulty(difficulty)
			if err != nil {
				return err
			}
			game := entities.NewGameState(d)
			cat := catalog.Default()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Charms (%d):\n", len(cat.Charms()))
			for _, def := range cat.Charms() {
				fmt.Fprintf(w, "  %s\t%s\t$%d\t%s\n", def.ID, def.Rarity, shop.CharmPrice(game, def.NewCharm()), def.Description)
			}
			fmt.Fprintf(w, "\nConsumables (%d):\n", len(cat.Consumables()))
			for _, def := range cat.Consumables() {
				fmt.Fprintf(w, "  %s\t%s\t$%d\t%s\n", def.ID, def.Category, shop.ConsumablePrice(game, def.NewConsumable()), def.Description)
			}
			fmt.Fprintf(w, "\nBlessings (%d):\n", len(cat.Blessings()))
			for _, def := range cat.Blessings() {
				fmt.Fprintf(w, "  %s\t%s %d\t$%d\t%s %+d\n", def.ID, def.Family, def.Tier, shop.BlessingPrice(game), def.Effect.Type, def.Effect.Amount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty used for prices (default from ROLLIO_DIFFICULTY)")
	return cmd
}

func newShopCmd(a *app) *cobra.Command {
	var (
		difficulty string
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Generate one shop for a fresh run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.difficulty(difficulty)
			if err != nil {
				return err
			}
			s, err := shop.New(&shop.Config{Catalog: catalog.Default()})
			if err != nil {
				return err
			}

			game := entities.NewGameState(d)
			inv, err := s.Generate(game, a.source(seed))
			if err != nil {
				return err
			}
			printShop(cmd.OutOrStdout(), game, inv)
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty used for prices (default from ROLLIO_DIFFICULTY)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the shop draw (default from ROLLIO_SEED, else random)")
	return cmd
}

func newDistributionCmd(a *app) *cobra.Command {
	var (
		count int
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Sample many shops and report rarity and category frequencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return errors.InvalidArgument("count must be positive")
			}
			s, err := shop.New(&shop.Config{Catalog: catalog.Default()})
			if err != nil {
				return err
			}

			game := entities.NewGameState(entities.DifficultyPlastic)
			src := a.source(seed)
			rarities := map[entities.Rarity]int{}
			categories := map[entities.ConsumableCategory]int{}
			var charmTotal, consumableTotal int
			for range count {
				inv, err := s.Generate(game, src)
				if err != nil {
					return err
				}
				for _, c := range inv.AvailableCharms {
					rarities[c.Rarity]++
					charmTotal++
				}
				for _, c := range inv.AvailableConsumables {
					categories[c.Category]++
					consumableTotal++
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Shops sampled: %d\n\n", count)
			fmt.Fprintln(w, "Charm rarity\tobserved\texpected")
			weights := shop.CharmRarityWeights()
			for _, r := range []entities.Rarity{entities.RarityCommon, entities.RarityUncommon, entities.RarityRare, entities.RarityLegendary} {
				fmt.Fprintf(w, "  %s\t%.4f\t%.4f\n", r, share(rarities[r], charmTotal), weights[r])
			}
			fmt.Fprintln(w, "\nConsumable category\tobserved\texpected")
			catWeights := shop.ConsumableCategoryWeights()
			for _, c := range []entities.ConsumableCategory{entities.CategoryWish, entities.CategoryWhim, entities.CategoryCombinationUpgrade} {
				fmt.Fprintf(w, "  %s\t%.4f\t%.4f\n", c, share(categories[c], consumableTotal), catWeights[c])
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&count, "count", 10000, "Number of shops to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for the draws (default from ROLLIO_SEED, else random)")
	return cmd
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
