// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result is one ranked search hit. It carries the article metadata, the
// final score with its raw cosine components, and a human-readable record of
// which scoring bonuses fired.
type Result struct {
	// PMID identifies the matched article.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title, Abstract, Journal, Year, DOI, and CitationAPA mirror the
	// article record.
	Title       string `json:"title" yaml:"title"`
	Abstract    string `json:"abstract" yaml:"abstract"`
	Journal     string `json:"journal" yaml:"journal"`
	Year        int    `json:"year" yaml:"year"`
	DOI         string `json:"doi" yaml:"doi"`
	CitationAPA string `json:"citation_apa" yaml:"citation_apa"`

	// Score is the final relevance score: weighted cosine base plus bonuses.
	Score float64 `json:"score" yaml:"score"`

	// CosTitle and CosAbstract are the raw per-field cosine similarities.
	CosTitle    float64 `json:"cos_title" yaml:"cos_title"`
	CosAbstract float64 `json:"cos_abstract" yaml:"cos_abstract"`

	// MatchedTerms is the sorted set of expanded query terms found among the
	// document's title or abstract tokens.
	MatchedTerms []string `json:"matched_terms" yaml:"matched_terms"`

	// Explanation lists the bonuses that fired, e.g. "title", "recency+0.04",
	// "review", "domain+0.10", "proximity".
	Explanation []string `json:"explanation" yaml:"explanation"`

	// AbstractLen is the abstract length in runes, used as a tie-break.
	AbstractLen int `json:"abstract_len" yaml:"abstract_len"`

	// HasDOI is 1 when the article carries a DOI, 0 otherwise.
	HasDOI int `json:"has_doi" yaml:"has_doi"`
}

// FacetEntry is one row of a facet breakdown: a categorical value, its
// document count, and its percentage of the top-20 total.
type FacetEntry struct {
	Value string  `json:"value" yaml:"value"`
	Count int     `json:"count" yaml:"count"`
	Pct   float64 `json:"pct" yaml:"pct"`
}

// YearCount is one row of a yearly publication count.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// AuthorMetric holds per-author co-authorship network metrics.
type AuthorMetric struct {
	Author      string  `json:"author" yaml:"author"`
	Degree      int     `json:"degree" yaml:"degree"`
	Betweenness float64 `json:"betweenness" yaml:"betweenness"`
}
