package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-miner/pkg/types"
)

func TestSearchEndToEnd(t *testing.T) {
	e := testEngine(t)

	results, err := e.Search(Options{
		Terms:    []string{"microRNA"},
		Operator: OpAnd,
		Fields:   FieldsBoth,
		YearMin:  2020,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "100", r.PMID)
	assert.Equal(t, []string{"microrna", "mirna"}, r.MatchedTerms)
	// Title hit, 2021 recency, Review publication type, and the "mucosa"
	// domain keyword; no single sentence holds two distinct query terms.
	assert.Equal(t, []string{"title", "recency+0.04", "review", "domain+0.10"}, r.Explanation)
	assert.Greater(t, r.CosTitle, 0.0)
	assert.Greater(t, r.CosAbstract, 0.0)
	bonuses := r.Score - (1.2*r.CosTitle + 0.8*r.CosAbstract)
	assert.InDelta(t, 0.2+0.04+0.2+0.1, bonuses, 1e-9)
}

func TestSearchPhraseExpansion(t *testing.T) {
	e := testEngine(t)

	// "IBD" expands to the spelled-out phrase, so doc 400 matches even
	// though it never contains the abbreviation.
	results, err := e.Search(Options{
		Terms:    []string{"IBD"},
		Operator: OpOr,
		Fields:   FieldsBoth,
	})
	require.NoError(t, err)

	var pmids []string
	for _, r := range results {
		pmids = append(pmids, r.PMID)
	}
	assert.ElementsMatch(t, []string{"300", "400"}, pmids)
}

func TestSearchProximityBonus(t *testing.T) {
	e := testEngine(t)

	// "celiac disease" appears in one abstract sentence of doc 100.
	results, err := e.Search(Options{
		Terms:    []string{"celiac", "disease"},
		Operator: OpAnd,
		Fields:   FieldsBoth,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "100", r.PMID)
	assert.Equal(t, []string{"celiac", "disease"}, r.MatchedTerms)
	assert.Contains(t, r.Explanation, "proximity")
	assert.Contains(t, r.Explanation, "title")
}

func TestSearchFieldSelection(t *testing.T) {
	e := testEngine(t)

	// Only the selected field contributes a cosine; the other stays at
	// exactly zero.
	results, err := e.Search(Options{
		Terms:    []string{"celiac"},
		Operator: OpOr,
		Fields:   FieldsTitle,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Greater(t, r.CosTitle, 0.0, "pmid %s", r.PMID)
		assert.Zero(t, r.CosAbstract, "pmid %s", r.PMID)
	}

	results, err = e.Search(Options{
		Terms:    []string{"celiac"},
		Operator: OpOr,
		Fields:   FieldsAbstract,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Zero(t, r.CosTitle, "pmid %s", r.PMID)
		assert.Greater(t, r.CosAbstract, 0.0, "pmid %s", r.PMID)
	}
}

func TestSearchNoMatches(t *testing.T) {
	e := testEngine(t)

	results, err := e.Search(Options{
		Terms:    []string{"zzzznotindexed"},
		Operator: OpAnd,
		Fields:   FieldsBoth,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLimit(t *testing.T) {
	e := testEngine(t)

	results, err := e.Search(Options{Operator: OpAnd, Fields: FieldsBoth, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Zero limit falls back to the default, which exceeds the corpus here.
	results, err = e.Search(Options{Operator: OpAnd, Fields: FieldsBoth})
	require.NoError(t, err)
	assert.Len(t, results, e.Size())
}

func TestSearchDeterministic(t *testing.T) {
	e := testEngine(t)
	opts := Options{
		Terms:    []string{"celiac", "IBD", "microRNA"},
		Operator: OpOr,
		Fields:   FieldsBoth,
	}

	first, err := e.Search(opts)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := e.Search(opts)
		require.NoError(t, err)
		require.Equal(t, first, again, "repeat %d", i)
	}

	// A fresh engine over the same corpus must reproduce scores and
	// cosines bit for bit, including order among analytically tied docs.
	for i := 0; i < 5; i++ {
		rebuilt, err := New(testArticles())
		require.NoError(t, err)
		again, err := rebuilt.Search(opts)
		require.NoError(t, err)
		require.Equal(t, first, again, "rebuild %d", i)
	}
}

func TestSearchTieBreaks(t *testing.T) {
	// All documents score zero: pre-2020 years, no review labels, no domain
	// keywords, and an empty query. Only the tie-break chain orders them.
	articles := []types.Article{
		{PMID: "d1", Title: "one", Abstract: "aaaa bbbb", Journal: "J", Year: 2018},
		{PMID: "d2", Title: "two", Abstract: "aaaa bbbb cccc", Journal: "J", Year: 2018},
		{PMID: "d3", Title: "three", Abstract: "x", Journal: "J", Year: 2019},
		{PMID: "d4", Title: "four", Abstract: "aaaa bbbb", Journal: "J", Year: 2018, DOI: "10.1/x"},
	}
	e, err := New(articles)
	require.NoError(t, err)

	results, err := e.Search(Options{Operator: OpAnd, Fields: FieldsBoth})
	require.NoError(t, err)
	require.Len(t, results, 4)

	var pmids []string
	for _, r := range results {
		assert.Zero(t, r.Score)
		pmids = append(pmids, r.PMID)
	}
	// Year desc, then abstract length desc, then DOI presence.
	assert.Equal(t, []string{"d3", "d2", "d4", "d1"}, pmids)
}

func TestRecencyBonus(t *testing.T) {
	tests := []struct {
		year int
		want float64
	}{
		{0, 0},
		{2015, 0},
		{2020, 0},
		{2021, 0.04},
		{2022, 0.08},
		{2023, 0.12},
		{2024, 0.16},
		{2025, 0.2},
		{2030, 0.2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, recencyBonus(tt.year), 1e-9, "year %d", tt.year)
	}

	// Strictly increasing across the ramp.
	for y := 2021; y <= 2025; y++ {
		assert.Greater(t, recencyBonus(y), recencyBonus(y-1))
	}
}

func TestIsReview(t *testing.T) {
	assert.True(t, isReview([]string{"Review"}))
	assert.True(t, isReview([]string{"Systematic Review"}))
	assert.True(t, isReview([]string{"Meta-Analysis"}))
	assert.False(t, isReview([]string{"Journal Article", "Clinical Trial"}))
	assert.False(t, isReview(nil))
}

func TestDomainBoost(t *testing.T) {
	tests := []struct {
		name     string
		abstract string
		want     float64
	}{
		{"no keywords", "a study of imaging methods", 0},
		{"one keyword", "changes in the mucosa were observed", 0.1},
		{"two keywords", "autophagy regulates the epithelial barrier", 0.2},
		{"capped at two", "autophagy, mucosa, and TNF with IL-6 signalling", 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domainBoost(tt.abstract), 1e-9)
		})
	}
}
