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

	"github.com/waylens/terminal/internal/fileindex"
	"github.com/waylens/terminal/internal/model"
)

var (
	csvsearchCompanies []string
	csvsearchTopics    []string
	csvsearchLimit     int
	csvsearchJSON      bool
)

var csvsearchCmd = &cobra.Command{
	Use:   "csvsearch <query>",
	Short: "Search the raw CSV file index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := fileindex.LoadIndex(cfg.Data.FileIndexPath)
		if err != nil {
			return eris.Wrap(err, "csvsearch: load index")
		}

		results := fileindex.Search(idx, model.FileSearchQuery{
			Query: args[0],
			Filters: &model.FileSearchFilters{
				Companies: csvsearchCompanies,
				Topics:    csvsearchTopics,
				Limit:     csvsearchLimit,
			},
		})

		if csvsearchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No files found.")
			return nil
		}
		formatFileResults(os.Stdout, results)
		return nil
	},
}

func formatFileResults(w io.Writer, results []model.FileSearchResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tFILE\tCOMPANY\tTOPIC\tROWS\tMATCHED")
	for _, r := range results {
		fmt.Fprintf(tw, "%.0f\t%s\t%s\t%s\t%d\t%s\n",
			r.Score, r.Filename, r.Company, r.Topic, r.RowCount,
			strings.Join(r.MatchedKeywords, ","),
		)
	}
	tw.Flush()
}

func init() {
	csvsearchCmd.Flags().StringSliceVar(&csvsearchCompanies, "company", nil, "company allow-list bonus")
	csvsearchCmd.Flags().StringSliceVar(&csvsearchTopics, "topic", nil, "topic allow-list bonus")
	csvsearchCmd.Flags().IntVar(&csvsearchLimit, "limit", 0, "max results (default 10)")
	csvsearchCmd.Flags().BoolVar(&csvsearchJSON, "json", false, "emit JSON")
	rootCmd.AddCommand(csvsearchCmd)
}
