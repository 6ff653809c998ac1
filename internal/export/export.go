// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes search results and co-author analytics to the file
// formats the pipeline's downstream consumers read: CSV and JSONL result
// tables, a plain-text citation list, YAML, GEXF graphs, and a metrics CSV.
// The engine itself performs no I/O; everything here works on its returned
// records.
package export

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-miner/internal/engine"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// ResultFiles writes <base>_results.csv, <base>_results.jsonl, and
// <base>_citations.txt under dir and returns the paths written.
func ResultFiles(dir, base string, results []types.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := []string{
		filepath.Join(dir, base+"_results.csv"),
		filepath.Join(dir, base+"_results.jsonl"),
		filepath.Join(dir, base+"_citations.txt"),
	}
	if err := WriteResultsCSV(paths[0], results); err != nil {
		return nil, err
	}
	if err := WriteResultsJSONL(paths[1], results); err != nil {
		return nil, err
	}
	if err := WriteCitations(paths[2], results); err != nil {
		return nil, err
	}
	return paths, nil
}

var resultHeader = []string{
	"pmid", "title", "abstract", "journal", "year", "doi", "citation_apa",
	"score", "cos_title", "cos_abstract", "matched_terms", "explanation",
	"abstract_len", "has_doi",
}

// WriteResultsCSV writes results as a headered CSV table.
func WriteResultsCSV(path string, results []types.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range results {
		year := ""
		if r.Year > 0 {
			year = strconv.Itoa(r.Year)
		}
		row := []string{
			r.PMID, r.Title, r.Abstract, r.Journal, year, r.DOI, r.CitationAPA,
			strconv.FormatFloat(r.Score, 'f', 6, 64),
			strconv.FormatFloat(r.CosTitle, 'f', 6, 64),
			strconv.FormatFloat(r.CosAbstract, 'f', 6, 64),
			strings.Join(r.MatchedTerms, ";"),
			strings.Join(r.Explanation, ";"),
			strconv.Itoa(r.AbstractLen),
			strconv.Itoa(r.HasDOI),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteResultsJSONL writes one JSON object per line.
func WriteResultsJSONL(path string, results []types.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding result %s: %w", r.PMID, err)
		}
	}
	return nil
}

// WriteCitations writes the APA citation strings, one per line.
func WriteCitations(path string, results []types.Result) error {
	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.CitationAPA)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// WriteResultsYAML writes results as a YAML document.
func WriteResultsYAML(path string, results []types.Result) error {
	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteMetricsCSV writes per-author network metrics as a CSV table.
func WriteMetricsCSV(path string, metrics []types.AuthorMetric) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"author", "degree", "betweenness"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, m := range metrics {
		row := []string{
			m.Author,
			strconv.Itoa(m.Degree),
			strconv.FormatFloat(m.Betweenness, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// GEXF 1.2 document structure, the exchange format graph tools import.
type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfGraph struct {
	EdgeType string     `xml:"defaultedgetype,attr"`
	Nodes    []gexfNode `xml:"nodes>node"`
	Edges    []gexfEdge `xml:"edges>edge"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdge struct {
	ID     int     `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Weight float64 `xml:"weight,attr"`
}

// WriteGEXF writes the co-author graph as a GEXF 1.2 file.
func WriteGEXF(path string, g *engine.Graph) error {
	doc := gexfDoc{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Graph:   gexfGraph{EdgeType: "undirected"},
	}
	for _, name := range g.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{ID: name, Label: name})
	}
	for i, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID: i, Source: e.From, Target: e.To, Weight: float64(e.Weight),
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling GEXF: %w", err)
	}
	return os.WriteFile(path, []byte(xml.Header+string(data)+"\n"), 0o644)
}
