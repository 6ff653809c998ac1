// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CorpusConfig holds settings for corpus loading and persistence.
type CorpusConfig struct {
	// JSONLPath is the line-delimited JSON corpus file
	// (default "data/papers/papers.jsonl").
	JSONLPath string `json:"jsonl_path" yaml:"jsonl_path"`

	// CSVPath is the CSV fallback used when the JSONL file is absent
	// (default "data/papers/papers.csv").
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// DBPath is the SQLite article cache (default "data/corpus.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// SearchConfig holds default query parameters; CLI flags override.
type SearchConfig struct {
	// MaxResults is the default result limit (default 30).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// YearMin is the default minimum publication year (default 2020,
	// 0 disables the filter).
	YearMin int `json:"year_min" yaml:"year_min"`

	// Fields selects which fields queries match: "ti", "ab", or "tiab"
	// (default "tiab").
	Fields string `json:"fields" yaml:"fields"`

	// Operator is the default boolean operator: AND, OR, or NOT.
	Operator string `json:"operator" yaml:"operator"`
}

// ExportConfig holds settings for result and graph export.
type ExportConfig struct {
	// OutputDir is the directory export files are written to
	// (default "outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// Config groups all stage configurations.
type Config struct {
	Corpus CorpusConfig `json:"corpus" yaml:"corpus"`
	Search SearchConfig `json:"search" yaml:"search"`
	Export ExportConfig `json:"export" yaml:"export"`
}
