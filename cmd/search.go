package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/waylens/terminal/internal/model"
	"github.com/waylens/terminal/internal/search"
)

var (
	searchRevenueRange   []string
	searchFleetRange     []string
	searchValuationRange []string
	searchGeography      []string
	searchOwnership      []string
	searchProducts       []string
	searchLimit          int
	searchJSON           bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search companies in the dataset snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := model.SearchFilters{
			RevenueRange:   searchRevenueRange,
			FleetSizeRange: searchFleetRange,
			ValuationRange: searchValuationRange,
			Geography:      searchGeography,
			Ownership:      searchOwnership,
			Products:       searchProducts,
		}
		if len(args) == 1 {
			filters.Query = args[0]
		}
		filters.MinRevenue = floatFlag(cmd, "min-revenue")
		filters.MaxRevenue = floatFlag(cmd, "max-revenue")
		filters.MinFleetSize = floatFlag(cmd, "min-fleet")
		filters.MaxFleetSize = floatFlag(cmd, "max-fleet")

		engine := search.NewEngine(search.NewCache(cfg.Data.SnapshotPath))
		results, err := engine.Search(filters)
		if err != nil {
			return eris.Wrap(err, "search")
		}
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No companies found.")
			return nil
		}
		formatSearchResults(os.Stdout, results)
		return nil
	},
}

func formatSearchResults(w io.Writer, results []model.SearchResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tNAME\tREVENUE\tFLEET\tHQ\tMATCHED")
	for _, r := range results {
		c := r.Company
		fmt.Fprintf(tw, "%.0f\t%s\t%s\t%s\t%s\t%s\n",
			r.Score,
			c.Name,
			c.Metrics.RevenueRange,
			c.Metrics.FleetSizeRange,
			c.Geography.Headquarters,
			strings.Join(r.MatchedFields, ","),
		)
	}
	tw.Flush()
}

// floatFlag returns the flag value only when the user set it, so an
// unset flag does not become a min/max of zero.
func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchRevenueRange, "revenue-range", nil, "revenue tier filter (micro/small/medium/large/enterprise)")
	searchCmd.Flags().StringSliceVar(&searchFleetRange, "fleet-range", nil, "fleet size tier filter")
	searchCmd.Flags().StringSliceVar(&searchValuationRange, "valuation-range", nil, "valuation tier filter")
	searchCmd.Flags().StringSliceVar(&searchGeography, "geography", nil, "geography substring filter")
	searchCmd.Flags().StringSliceVar(&searchOwnership, "ownership", nil, "ownership substring filter")
	searchCmd.Flags().StringSliceVar(&searchProducts, "product", nil, "product substring filter")
	searchCmd.Flags().Float64("min-revenue", 0, "minimum revenue in dollars")
	searchCmd.Flags().Float64("max-revenue", 0, "maximum revenue in dollars")
	searchCmd.Flags().Float64("min-fleet", 0, "minimum fleet size")
	searchCmd.Flags().Float64("max-fleet", 0, "maximum fleet size")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "max results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit JSON")
	rootCmd.AddCommand(searchCmd)
}
