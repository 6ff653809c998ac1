package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-miner/internal/engine"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

func sampleResults() []types.Result {
	return []types.Result{
		{
			PMID:         "100",
			Title:        "microRNA biomarkers in celiac disease",
			Abstract:     "Circulating miRNA panels.",
			Journal:      "Gut",
			Year:         2021,
			DOI:          "10.1/a",
			CitationAPA:  "Rossi, A. (2021). microRNA biomarkers in celiac disease. Gut.",
			Score:        1.23,
			CosTitle:     0.8,
			CosAbstract:  0.4,
			MatchedTerms: []string{"microrna", "mirna"},
			Explanation:  []string{"title", "recency+0.04", "review"},
			AbstractLen:  25,
			HasDOI:       1,
		},
		{
			PMID:        "200",
			Title:       "record without year",
			CitationAPA: "Verdi, C. (n.d.). Record without year.",
		},
	}
}

func TestResultFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	paths, err := ResultFiles(dir, "query1", sampleResults())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	assert.Equal(t, filepath.Join(dir, "query1_results.csv"), paths[0])
	assert.Equal(t, filepath.Join(dir, "query1_results.jsonl"), paths[1])
	assert.Equal(t, filepath.Join(dir, "query1_citations.txt"), paths[2])
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestWriteResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteResultsCSV(path, sampleResults()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, resultHeader, rows[0])
	assert.Equal(t, "100", rows[1][0])
	assert.Equal(t, "2021", rows[1][4])
	assert.Equal(t, "1.230000", rows[1][7])
	assert.Equal(t, "microrna;mirna", rows[1][10])
	assert.Equal(t, "title;recency+0.04;review", rows[1][11])
	// A missing year exports as an empty cell, not "0".
	assert.Equal(t, "", rows[2][4])
}

func TestWriteResultsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	in := sampleResults()
	require.NoError(t, WriteResultsJSONL(path, in))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []types.Result
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var r types.Result
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		out = append(out, r)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, in, out)
}

func TestWriteCitations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citations.txt")
	require.NoError(t, WriteCitations(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Rossi, A. (2021). microRNA biomarkers in celiac disease. Gut.", lines[0])
}

func TestWriteResultsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	in := sampleResults()
	require.NoError(t, WriteResultsYAML(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []types.Result
	require.NoError(t, yaml.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, "200", out[1].PMID)
	assert.Equal(t, "record without year", out[1].Title)
}

func TestWriteMetricsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	metrics := []types.AuthorMetric{
		{Author: "Alice Rossi", Degree: 2, Betweenness: 1},
		{Author: "Bruno Bianchi", Degree: 1, Betweenness: 0},
	}
	require.NoError(t, WriteMetricsCSV(path, metrics))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"author", "degree", "betweenness"}, rows[0])
	assert.Equal(t, []string{"Alice Rossi", "2", "1.000000"}, rows[1])
}

func TestWriteGEXF(t *testing.T) {
	g := engine.NewGraph()
	g.AddEdge("Alice Rossi", "Bruno Bianchi")
	g.AddEdge("Alice Rossi", "Bruno Bianchi")
	g.AddEdge("Alice Rossi", "Carla Verdi")

	path := filepath.Join(t.TempDir(), "coauthors.gexf")
	require.NoError(t, WriteGEXF(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, `<?xml`)
	assert.Contains(t, content, `xmlns="http://www.gexf.net/1.2draft"`)
	assert.Contains(t, content, `defaultedgetype="undirected"`)
	assert.Contains(t, content, `label="Alice Rossi"`)
	assert.Contains(t, content, `source="Alice Rossi" target="Bruno Bianchi" weight="2"`)
	assert.Contains(t, content, `source="Alice Rossi" target="Carla Verdi" weight="1"`)
}
