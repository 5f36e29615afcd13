package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/catalogdb"
	"github.com/psxcreative/engine/internal/logging"
	"github.com/psxcreative/engine/internal/pricing"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// app is the state shared by all subcommands.
type app struct {
	dbPath  string
	verbose bool
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "psx",
		Short: "Price PSX Creative Factory work",
		Long: `psx prices Creative Factory selections, merch runs and shared quotes
with the same engine the server uses.

Examples:
  psx estimate --content launchFilm,memes --channels twitter --chain Solana
  psx estimate --format json --content nftSeed --chain Ethereum --timeline "2-4 weeks"
  psx merch --items tee,hoodie --method Bulk --qty 300
  psx catalog seed --db ./catalog.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			a.log = logging.NewWithWriter(logging.Config{Level: level, Format: "console"}, cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", os.Getenv("CATALOG_DB_PATH"), "catalog database (default is the built-in catalog)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newEstimateCmd(a),
		newMerchCmd(a),
		newShareCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// engine returns a pricing engine over the selected catalog.
func (a *app) engine(ctx context.Context) (*pricing.Engine, error) {
	c, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return pricing.New(c), nil
}

func (a *app) catalog(ctx context.Context) (*catalog.Catalog, error) {
	if strings.TrimSpace(a.dbPath) == "" {
		return catalog.Default(), nil
	}
	c, seeded, err := catalogdb.Bootstrap(ctx, a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	a.log.Debug("catalog loaded", zap.String("path", a.dbPath), zap.Bool("seeded", seeded))
	return c, nil
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text or json)", format)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
