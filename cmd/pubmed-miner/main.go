// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-miner CLI: local search,
// faceting, and co-authorship analytics over a saved PubMed corpus.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pubmed-miner CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-miner",
	Short: "Local search and analytics over a saved PubMed corpus",
	Long: `pubmed-miner indexes a locally saved PubMed article corpus and answers
boolean keyword queries with TF-IDF ranking, domain-aware boosts, faceted
aggregation, and co-authorship network analytics.

The corpus is produced by the separate fetch scripts as papers.jsonl (or
papers.csv); import it once with "corpus import" and query it with the
search, facets, yearly, and coauthors subcommands.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-miner.yaml or ~/.config/pubmed-miner/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-miner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-miner"))
		}
	}

	viper.SetEnvPrefix("PUBMED_MINER")
	viper.AutomaticEnv()

	viper.SetDefault("corpus.jsonl_path", filepath.Join("data", "papers", "papers.jsonl"))
	viper.SetDefault("corpus.csv_path", filepath.Join("data", "papers", "papers.csv"))
	viper.SetDefault("corpus.db_path", filepath.Join("data", "corpus.db"))
	viper.SetDefault("search.max_results", 30)
	viper.SetDefault("search.year_min", 2020)
	viper.SetDefault("search.fields", "tiab")
	viper.SetDefault("search.operator", "AND")
	viper.SetDefault("export.output_dir", "outputs")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the typed configuration from viper state.
func loadConfig() types.Config {
	return types.Config{
		Corpus: types.CorpusConfig{
			JSONLPath: viper.GetString("corpus.jsonl_path"),
			CSVPath:   viper.GetString("corpus.csv_path"),
			DBPath:    viper.GetString("corpus.db_path"),
		},
		Search: types.SearchConfig{
			MaxResults: viper.GetInt("search.max_results"),
			YearMin:    viper.GetInt("search.year_min"),
			Fields:     viper.GetString("search.fields"),
			Operator:   viper.GetString("search.operator"),
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
