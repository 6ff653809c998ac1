// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads saved PubMed article records from JSONL or CSV
// exports and caches them in a SQLite database. The loader deduplicates by
// PMID (keeping the last occurrence) and re-normalizes all text fields so
// indexing downstream is consistent regardless of what the fetch scripts
// already did.
package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/pubmed-miner/internal/textutil"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// ErrNoRecords is returned when a corpus source yields zero usable records.
var ErrNoRecords = errors.New("corpus is empty")

// flexString decodes a JSON string or number; PubMed exports carry PMIDs
// both ways.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "null" {
		str = ""
	}
	*s = flexString(str)
	return nil
}

// rawArticle mirrors the field names of the papers.jsonl export.
type rawArticle struct {
	PMID             flexString         `json:"PMID"`
	Title            string             `json:"Title"`
	Abstract         string             `json:"Abstract"`
	Authors          types.StringList   `json:"Authors"`
	Journal          string             `json:"Journal"`
	Year             types.NullableYear `json:"Year"`
	DOI              string             `json:"DOI"`
	CitationAPA      string             `json:"citation_apa"`
	PublicationTypes types.StringList   `json:"PublicationTypes"`
}

func (r rawArticle) article() types.Article {
	authors := make([]string, 0, len(r.Authors))
	for _, a := range r.Authors {
		if a = textutil.Normalize(a); a != "" {
			authors = append(authors, a)
		}
	}
	return types.Article{
		PMID:             strings.TrimSpace(string(r.PMID)),
		Title:            textutil.Normalize(r.Title),
		Abstract:         textutil.Normalize(r.Abstract),
		Authors:          authors,
		Journal:          textutil.Normalize(r.Journal),
		Year:             int(r.Year),
		DOI:              textutil.Normalize(r.DOI),
		CitationAPA:      r.CitationAPA,
		PublicationTypes: r.PublicationTypes,
	}
}

// Load reads the corpus from cfg.JSONLPath, falling back to cfg.CSVPath
// when the JSONL file is absent. Progress warnings go to w.
func Load(cfg types.CorpusConfig, w io.Writer) ([]types.Article, error) {
	if _, err := os.Stat(cfg.JSONLPath); err == nil {
		return LoadJSONL(cfg.JSONLPath)
	}
	if _, err := os.Stat(cfg.CSVPath); err == nil {
		fmt.Fprintf(w, "warning: %s not found, using CSV\n", cfg.JSONLPath)
		return LoadCSV(cfg.CSVPath)
	}
	return nil, fmt.Errorf("no corpus found at %s or %s", cfg.JSONLPath, cfg.CSVPath)
}

// LoadJSONL reads line-delimited JSON article records. Lines that fail to
// parse or lack a PMID are skipped, matching how the fetch scripts append
// partial batches.
func LoadJSONL(path string) ([]types.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	var articles []types.Article
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw rawArticle
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}
		if a := raw.article(); a.PMID != "" {
			articles = append(articles, a)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return finish(articles)
}

// LoadCSV reads a headered CSV article export.
func LoadCSV(path string) ([]types.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var articles []types.Article
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		raw := rawArticle{
			PMID:             flexString(field(row, "PMID")),
			Title:            field(row, "Title"),
			Abstract:         field(row, "Abstract"),
			Authors:          types.StringList(types.SplitList(field(row, "Authors"), ";")),
			Journal:          field(row, "Journal"),
			Year:             types.NullableYear(types.ParseYear(field(row, "Year"))),
			DOI:              field(row, "DOI"),
			CitationAPA:      field(row, "citation_apa"),
			PublicationTypes: types.StringList(types.SplitList(field(row, "PublicationTypes"), ";", ",")),
		}
		if a := raw.article(); a.PMID != "" {
			articles = append(articles, a)
		}
	}
	return finish(articles)
}

// finish deduplicates by PMID, keeping the last occurrence in its original
// position, and rejects an empty corpus.
func finish(articles []types.Article) ([]types.Article, error) {
	if len(articles) == 0 {
		return nil, ErrNoRecords
	}
	last := make(map[string]int, len(articles))
	for i, a := range articles {
		last[a.PMID] = i
	}
	out := make([]types.Article, 0, len(last))
	for i, a := range articles {
		if last[a.PMID] == i {
			out = append(out, a)
		}
	}
	return out, nil
}
