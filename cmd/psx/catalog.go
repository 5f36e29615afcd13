package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psxcreative/engine/internal/db"
	"github.com/psxcreative/engine/internal/migrations"
	"github.com/psxcreative/engine/internal/pricing"
	"github.com/psxcreative/engine/internal/seed"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and seed the catalog",
	}
	cmd.AddCommand(newCatalogSeedCmd(a), newCatalogShowCmd(a))
	return cmd
}

func newCatalogSeedCmd(a *app) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the catalog database and seed the built-in catalog",
		Long: `Seed inserts built-in catalog rows that are missing from the database.
Rows that already exist are kept as edited unless --overwrite is given.
Rows the built-in catalog does not know are never deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(a.dbPath) == "" {
				return errors.New("--db is required")
			}

			database, err := db.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := migrations.Up(database); err != nil {
				return err
			}
			stats, err := seed.Default(database, seed.Options{Overwrite: overwrite})
			if err != nil {
				return err
			}

			a.log.Debug("catalog seeded", zap.String("path", a.dbPath), zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d inserted, %d updated\n", a.dbPath, stats.Inserts, stats.Updates)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "reset existing rows to the built-in values")
	return cmd
}

func newCatalogShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			t := c.Tables()
			w := cmd.OutOrStdout()
			if format == formatJSON {
				return printJSON(w, t)
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CONTENT\tBASE\tCOMPLEXITY\tMIN WEEKS")
			for _, ct := range t.Contents {
				fmt.Fprintf(tw, "%s\t%s\t%g\t%d\n", ct.ID, pricing.FormatUSD(ct.BasePrice), ct.Complexity, ct.MinTimeWeeks)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "PACKAGE\tFLOOR\tNAME\t")
			for _, p := range t.Packages {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", p.Tier, pricing.FormatUSD(p.MinPrice), p.Name)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "STORE\tPRICE\tTITLE\t")
			for _, s := range t.StoreSKUs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", s.ID, pricing.FormatUSD(s.Price), s.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	return cmd
}
