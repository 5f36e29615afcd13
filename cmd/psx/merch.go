package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/pricing"
)

func newMerchCmd(a *app) *cobra.Command {
	var (
		format   string
		method   string
		platform string
		in       pricing.MerchInput
	)

	cmd := &cobra.Command{
		Use:   "merch",
		Short: "Project the economics of a merch run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}

			in.Method = catalog.MerchMethod(method)
			in.Platform = catalog.MerchPlatform(platform)
			m := e.EstimateMerchEconomics(in)

			w := cmd.OutOrStdout()
			if format == formatJSON {
				return printJSON(w, m)
			}
			fmt.Fprintf(w, "Units:        %d\n", m.Units)
			fmt.Fprintf(w, "Base cost:    %s\n", pricing.FormatUSD(m.BaseCost))
			fmt.Fprintf(w, "Price:        %s\n", pricing.FormatUSD(m.Price))
			fmt.Fprintf(w, "Design fee:   %s\n", pricing.FormatUSD(m.DesignFee))
			fmt.Fprintf(w, "Gross profit: %s\n", pricing.FormatUSD(m.GrossProfit))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	f.StringSliceVar(&in.ItemIDs, "items", []string{"tee", "hoodie"}, "merch item ids")
	f.StringVar(&method, "method", string(catalog.MethodPOD), "fulfillment method (POD, Bulk)")
	f.StringVar(&platform, "platform", string(catalog.PlatformShopify), "storefront (Shopify, Whop, Gumroad)")
	f.IntVar(&in.Quantity, "qty", 100, "units to produce")
	f.Float64Var(&in.Margin, "margin", 0.5, "markup over base cost")
	f.IntVar(&in.DesignCount, "designs", 3, "number of designs")
	return cmd
}
