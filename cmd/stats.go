package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/waylens/terminal/internal/search"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics for the dataset snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := search.NewEngine(search.NewCache(cfg.Data.SnapshotPath))
		stats, err := engine.Stats()
		if err != nil {
			return eris.Wrap(err, "stats")
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Total companies\t%d\n", stats.TotalCompanies)
		fmt.Fprintf(tw, "With revenue\t%d\n", stats.WithRevenue)
		fmt.Fprintf(tw, "With fleet size\t%d\n", stats.WithFleetSize)
		fmt.Fprintf(tw, "With valuation\t%d\n", stats.WithValuation)
		fmt.Fprintf(tw, "Avg revenue\t%s\n", formatAvg(stats.AvgRevenue))
		fmt.Fprintf(tw, "Avg fleet size\t%s\n", formatAvg(stats.AvgFleetSize))
		fmt.Fprintf(tw, "Avg valuation\t%s\n", formatAvg(stats.AvgValuation))
		tw.Flush()

		printHistogram("Revenue ranges", stats.RevenueRanges)
		printHistogram("Fleet size ranges", stats.FleetSizeRanges)
		printHistogram("Valuation ranges", stats.ValuationRanges)
		return nil
	},
}

func formatAvg(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", *v)
}

func printHistogram(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", title)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%d\n", k, counts[k])
	}
	tw.Flush()
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit JSON")
	rootCmd.AddCommand(statsCmd)
}
