// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-miner/internal/corpus"
	"github.com/pdiddy/pubmed-miner/internal/engine"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the local article corpus cache",
}

var corpusImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import papers.jsonl (or papers.csv) into the SQLite cache",
	Long: `Import reads the saved corpus file, deduplicates records by PMID
keeping the last occurrence, normalizes all text fields, and caches the
result in a SQLite database for later queries.`,
	RunE: runCorpusImport,
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		cfg.Corpus.JSONLPath = from
	}

	articles, err := corpus.Load(cfg.Corpus, os.Stderr)
	if err != nil {
		return err
	}

	store, err := corpus.OpenStore(cfg.Corpus.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Upsert(ctx, articles); err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d articles (%d cached) into %s\n", len(articles), total, cfg.Corpus.DBPath)
	return nil
}

// loadArticles returns the corpus, preferring the SQLite cache and falling
// back to the raw JSONL/CSV files.
func loadArticles(cfg types.Config) ([]types.Article, error) {
	if _, err := os.Stat(cfg.Corpus.DBPath); err == nil {
		store, err := corpus.OpenStore(cfg.Corpus.DBPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadAll(context.Background())
	}
	return corpus.Load(cfg.Corpus, os.Stderr)
}

// loadEngine builds the search engine over the configured corpus.
func loadEngine(cfg types.Config) (*engine.Engine, error) {
	articles, err := loadArticles(cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(articles)
}

func init() {
	corpusImportCmd.Flags().String("from", "", "corpus file to import (overrides corpus.jsonl_path)")

	corpusCmd.AddCommand(corpusImportCmd)
	rootCmd.AddCommand(corpusCmd)
}
