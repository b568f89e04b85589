// Package main is the entry point for the rollio command line tool
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbeaudet-dev/rollio-sub001/internal/config"
)

func main() {
	if err := newRootCmd(newRedisService).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what the subcommands share once the environment is loaded
type app struct {
	cfg        *config.Config
	newService serviceFactory
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	a := &app{newService: factory}

	root := &cobra.Command{
		Use:   "rollio",
		Short: "Rollio item effect engine",
		Long: `Rollio hosts the charm scoring pipeline, consumable resolver, shop generator
and blessing applier of the Rollio dice game. Offline commands work on the
built-in catalog; run commands play a persisted run stored in Redis.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.AddCommand(newCatalogCmd(a))
	root.AddCommand(newShopCmd(a))
	root.AddCommand(newDistributionCmd(a))
	root.AddCommand(newRunCmd(a))

	return root
}

// setup loads configuration and installs the default logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return nil
}
