// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-miner/internal/engine"
	"github.com/pdiddy/pubmed-miner/internal/export"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the corpus with boolean keyword queries and TF-IDF ranking",
	Long: `Search expands each query term with domain synonyms (microRNA
spellings, IBD, celiac/coeliac), evaluates the boolean query against the
title/abstract inverted indices, filters by metadata, and ranks candidates
by weighted cosine similarity plus title, recency, review, domain, and
proximity boosts.

Terms are separated by ";" in --query or given as arguments.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	opts := optsFromFlags(cmd, args, cfg)
	results, err := eng.Search(opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		formatResults(results)
	}

	if base, _ := cmd.Flags().GetString("export-base"); base != "" && len(results) > 0 {
		paths, err := export.ResultFiles(cfg.Export.OutputDir, base, results)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", strings.Join(paths, ", "))
	}
	return nil
}

// formatResults writes a human-readable result table to stdout.
func formatResults(results []types.Result) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-4s  %-20s  %-10s  %-50s  %s\n",
		"Rank", "Score", "Year", "Journal", "PMID", "Title", "Explain")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		journal := r.Journal
		if len(journal) > 20 {
			journal = journal[:17] + "..."
		}
		year := ""
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6.3f  %-4s  %-20s  %-10s  %-50s  %s\n",
			i+1, r.Score, year, journal, r.PMID, title, strings.Join(r.Explanation, ","))
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
}

// parseTerms splits a ";"-separated flag value into trimmed terms.
func parseTerms(value string) []string {
	var terms []string
	for _, p := range strings.Split(value, ";") {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"`))
		if p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

// addSearchFlags registers the query flags shared by search, yearly, and
// coauthors.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().String("query", "", `query terms separated by ";"`)
	cmd.Flags().String("op", "", "boolean operator: AND, OR, or NOT")
	cmd.Flags().String("fields", "", "fields to match: ti, ab, or tiab")
	cmd.Flags().Int("year-min", -1, "minimum publication year (0 disables)")
	cmd.Flags().Int("year-max", 0, "maximum publication year (0 disables)")
	cmd.Flags().String("journal-include", "", `journal substrings to require, separated by ";"`)
	cmd.Flags().String("journal-exclude", "", `journal substrings to drop, separated by ";"`)
	cmd.Flags().String("author", "", "author substring to require")
	cmd.Flags().Bool("has-doi", false, "require a DOI")
	cmd.Flags().String("exclude", "", `substrings that disqualify a document, separated by ";"`)
	cmd.Flags().Int("limit", 0, "maximum results (0 = configured default)")
}

// optsFromFlags assembles engine options from flags, positional arguments,
// and configured defaults.
func optsFromFlags(cmd *cobra.Command, args []string, cfg types.Config) engine.Options {
	query, _ := cmd.Flags().GetString("query")
	terms := parseTerms(query)
	if len(terms) == 0 && len(args) > 0 {
		terms = parseTerms(strings.Join(args, ";"))
	}

	op, _ := cmd.Flags().GetString("op")
	if op == "" {
		op = cfg.Search.Operator
	}
	fields, _ := cmd.Flags().GetString("fields")
	if fields == "" {
		fields = cfg.Search.Fields
	}
	yearMin, _ := cmd.Flags().GetInt("year-min")
	if yearMin < 0 {
		yearMin = cfg.Search.YearMin
	}
	yearMax, _ := cmd.Flags().GetInt("year-max")
	journalInc, _ := cmd.Flags().GetString("journal-include")
	journalExc, _ := cmd.Flags().GetString("journal-exclude")
	author, _ := cmd.Flags().GetString("author")
	hasDOI, _ := cmd.Flags().GetBool("has-doi")
	exclude, _ := cmd.Flags().GetString("exclude")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Search.MaxResults
	}

	return engine.Options{
		Terms:          terms,
		Operator:       op,
		Fields:         fields,
		YearMin:        yearMin,
		YearMax:        yearMax,
		JournalInclude: parseTerms(journalInc),
		JournalExclude: parseTerms(journalExc),
		Author:         author,
		RequireDOI:     hasDOI,
		ExcludeTerms:   parseTerms(exclude),
		Limit:          limit,
	}
}

func init() {
	addSearchFlags(searchCmd)
	searchCmd.Flags().String("export-base", "", "export results as <base>_results.csv/jsonl and <base>_citations.txt")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
