// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-miner/internal/engine"
	"github.com/pdiddy/pubmed-miner/internal/export"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// analyticsLimit is the result cap used when a search restricts an
// analytics subset; large enough to keep every plausible match.
const analyticsLimit = 1000

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show corpus facet counts by journal, year, or author",
	RunE:  runFacets,
}

func runFacets(cmd *cobra.Command, args []string) error {
	by, _ := cmd.Flags().GetString("by")

	eng, err := loadEngine(loadConfig())
	if err != nil {
		return err
	}

	entries, err := eng.Facets(by)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%-40s  %6s  %6s\n", by, "count", "pct")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 56))
	for _, e := range entries {
		value := e.Value
		if len(value) > 40 {
			value = value[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %6d  %6.1f\n", value, e.Count, e.Pct)
	}
	return nil
}

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Show yearly publication counts (2020 onward)",
	Long: `Yearly prints publication counts per year. With --filtered and a
query, counts are restricted to the documents the query matches.`,
	RunE: runYearly,
}

func runYearly(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	var ids []string
	filtered, _ := cmd.Flags().GetBool("filtered")
	if filtered {
		ids, err = searchIDs(cmd, args, cfg, eng)
		if err != nil {
			return err
		}
	}

	counts := eng.YearlyCounts(ids)
	if len(counts) == 0 {
		fmt.Println("No data.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s  %s\n", "year", "count")
	for _, yc := range counts {
		fmt.Fprintf(os.Stdout, "%-6d  %d\n", yc.Year, yc.Count)
	}
	return nil
}

var coauthorsCmd = &cobra.Command{
	Use:   "coauthors",
	Short: "Build the co-authorship network for a query's matches",
	Long: `Coauthors runs a search, builds the undirected co-authorship graph
over the matching documents, and writes coauthors.gexf plus
coauthors_metrics.csv (degree and betweenness per author) to the output
directory.`,
	RunE: runCoauthors,
}

func runCoauthors(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	ids, err := searchIDs(cmd, args, cfg, eng)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No data for coauthors.")
		return nil
	}

	graph, metrics := eng.CoauthorNetwork(ids)

	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	gexfPath := filepath.Join(cfg.Export.OutputDir, "coauthors.gexf")
	csvPath := filepath.Join(cfg.Export.OutputDir, "coauthors_metrics.csv")

	if err := export.WriteGEXF(gexfPath, graph); err != nil {
		return err
	}
	if err := export.WriteMetricsCSV(csvPath, metrics); err != nil {
		return err
	}

	fmt.Printf("Saved %s and %s (%d authors)\n", gexfPath, csvPath, graph.NodeCount())
	return nil
}

// searchIDs runs the flag-configured search with a high limit and returns
// the matching PMIDs.
func searchIDs(cmd *cobra.Command, args []string, cfg types.Config, eng *engine.Engine) ([]string, error) {
	opts := optsFromFlags(cmd, args, cfg)
	opts.Limit = analyticsLimit

	results, err := eng.Search(opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.PMID
	}
	return ids, nil
}

func init() {
	facetsCmd.Flags().String("by", "", "facet dimension: journal, year, or author")
	facetsCmd.MarkFlagRequired("by")

	addSearchFlags(yearlyCmd)
	yearlyCmd.Flags().Bool("filtered", false, "restrict counts to the query's matches")

	addSearchFlags(coauthorsCmd)

	rootCmd.AddCommand(facetsCmd)
	rootCmd.AddCommand(yearlyCmd)
	rootCmd.AddCommand(coauthorsCmd)
}
