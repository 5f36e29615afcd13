package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/psxcreative/engine/internal/catalog"
	"github.com/psxcreative/engine/internal/pricing"
)

func newEstimateCmd(a *app) *cobra.Command {
	var (
		format   string
		content  []string
		channels []string
		styles   []string
		sel      pricing.Selection
		timeline string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a Creative Factory selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			e, err := a.engine(cmd.Context())
			if err != nil {
				return err
			}

			sel.Content = ids[catalog.ContentID](content)
			sel.Channels = ids[catalog.ChannelID](channels)
			sel.Styles = ids[catalog.StyleID](styles)
			sel.Timeline = catalog.Timeline(timeline)
			q := e.Quote(sel)

			if format == formatJSON {
				return printJSON(cmd.OutOrStdout(), q)
			}
			return printQuote(cmd.OutOrStdout(), q)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	f.StringSliceVar(&content, "content", nil, "content type ids")
	f.StringSliceVar(&channels, "channels", nil, "channel ids")
	f.StringSliceVar(&styles, "styles", nil, "style ids")
	f.StringVar(&sel.Chain, "chain", "", "chain name")
	f.StringVar(&timeline, "timeline", "", `timeline ("2-4 weeks", "1-2 months", "3+ months")`)
	f.Float64Var(&sel.Budget, "budget", 0, "budget in USD")
	return cmd
}

func printQuote(w io.Writer, q pricing.Quote) error {
	fmt.Fprintf(w, "%s (%s)\n", q.Package.Name, q.Tier)
	fmt.Fprintf(w, "Estimate: %s\n", pricing.FormatUSD(q.Total))
	fmt.Fprintf(w, "Display:  %s\n", q.Package.DisplayPrice)
	fmt.Fprintf(w, "Score:    %g\n", q.Score)

	if len(q.Breakdown) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, l := range q.Breakdown {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Label, l.Value, pricing.FormatUSD(l.Subtotal))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	for _, feature := range q.Package.Features {
		fmt.Fprintf(w, "  - %s\n", feature)
	}
	return nil
}

func ids[T ~string](in []string) []T {
	out := make([]T, 0, len(in))
	for _, s := range in {
		out = append(out, T(s))
	}
	return out
}
