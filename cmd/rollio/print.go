package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	runsession "github.com/bbeaudet-dev/rollio-sub001/internal/repositories/run_session"
)

func printSession(w io.Writer, s *runsession.Session) {
	g := s.Game
	fmt.Fprintf(w, "Run %s (%s, seed %d)\n", s.ID, g.Difficulty, s.Seed)
	fmt.Fprintf(w, "  Money: $%d  Rerolls: %d  Banks: %d  Vouchers: %d\n", g.Money, g.Rerolls, g.Banks, g.ShopVouchers)

	fmt.Fprintf(w, "  Charms (%d/%d):", len(g.Charms), g.CharmSlots)
	for i, c := range g.Charms {
		fmt.Fprintf(w, " [%d] %s", i, c.ID)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Consumables (%d/%d):", len(g.Consumables), g.ConsumableSlots)
	for i, c := range g.Consumables {
		fmt.Fprintf(w, " [%d] %s", i, c.ID)
	}
	fmt.Fprintln(w)

	if len(g.Blessings) > 0 {
		ids := make([]string, len(g.Blessings))
		for i, b := range g.Blessings {
			ids[i] = b.ID
		}
		fmt.Fprintf(w, "  Blessings: %s\n", strings.Join(ids, ", "))
	}

	fmt.Fprintf(w, "  Dice:")
	for _, d := range g.DiceSet {
		fmt.Fprintf(w, " %s(d%d %s)", d.ID, d.Sides, d.Material)
	}
	fmt.Fprintln(w)

	if s.Round != nil {
		printRound(w, s.Round)
	}
}

func printRound(w io.Writer, r *entities.RoundState) {
	fmt.Fprintf(w, "  Hand:")
	for i, d := range r.DiceHand {
		fmt.Fprintf(w, " [%d] %s=%d", i, d.ID, d.RolledValue)
	}
	fmt.Fprintf(w, "\n  Round points: %d  Forfeited: %d  Hot dice: %d\n", r.RoundPoints, r.ForfeitedPoints, r.HotDiceCount)
}

func printShop(w io.Writer, game *entities.GameState, s *entities.ShopState) {
	fmt.Fprintf(w, "Shop (refreshes: %d, next refresh $%d)\n", s.RefreshCount, shop.RefreshCost(game, s.RefreshCount))

	fmt.Fprintln(w, "  Charms:")
	for i, c := range s.AvailableCharms {
		if c == nil {
			fmt.Fprintf(w, "    [%d] sold\n", i)
			continue
		}
		fmt.Fprintf(w, "    [%d] %s (%s) $%d\n", i, c.Name, c.Rarity, shop.CharmPrice(game, *c))
	}

	fmt.Fprintln(w, "  Consumables:")
	for i, c := range s.AvailableConsumables {
		if c == nil {
			fmt.Fprintf(w, "    [%d] sold\n", i)
			continue
		}
		fmt.Fprintf(w, "    [%d] %s (%s) $%d\n", i, c.Name, c.Category, shop.ConsumablePrice(game, *c))
	}

	fmt.Fprintln(w, "  Blessings:")
	for i, b := range s.AvailableBlessings {
		if b == nil {
			fmt.Fprintf(w, "    [%d] sold\n", i)
			continue
		}
		fmt.Fprintf(w, "    [%d] %s (tier %d) $%d\n", i, b.Name, b.Tier, shop.BlessingPrice(game))
	}
}

// printOutcome reports an engine result line
func printOutcome(w io.Writer, success bool, message string, code errors.Code) {
	if success {
		fmt.Fprintf(w, "OK: %s\n", message)
		return
	}
	fmt.Fprintf(w, "Rejected (%s): %s\n", code, message)
}
