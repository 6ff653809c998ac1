// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/pdiddy/pubmed-miner/internal/textutil"
)

// vectorSpace is a TF-IDF model over one text field. It is fit once over the
// whole corpus at engine construction and reused, unchanged, for every
// query. Features are unigrams and bigrams of word tokens at least two
// characters long; IDF is smoothed and rows are L2-normalized, so cosine
// similarity reduces to a sparse dot product.
type vectorSpace struct {
	vocab map[string]int
	idf   []float64
	rows  []map[int]float64
}

// features returns the unigram and bigram features of text, in order.
func features(text string) []string {
	var toks []string
	for _, t := range textutil.Tokenize(text) {
		if utf8.RuneCountInString(t) >= 2 {
			toks = append(toks, t)
		}
	}
	feats := make([]string, 0, 2*len(toks))
	feats = append(feats, toks...)
	for i := 0; i+1 < len(toks); i++ {
		feats = append(feats, toks[i]+" "+toks[i+1])
	}
	return feats
}

// fitVectorSpace builds the vocabulary, IDF weights, and normalized
// document rows for docs. Empty documents yield empty rows.
func fitVectorSpace(docs []string) *vectorSpace {
	v := &vectorSpace{vocab: make(map[string]int)}

	counts := make([]map[int]float64, len(docs))
	df := []int{}
	for i, doc := range docs {
		row := make(map[int]float64)
		for _, f := range features(doc) {
			id, ok := v.vocab[f]
			if !ok {
				id = len(v.vocab)
				v.vocab[f] = id
				df = append(df, 0)
			}
			if row[id] == 0 {
				df[id]++
			}
			row[id]++
		}
		counts[i] = row
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for id, d := range df {
		v.idf[id] = math.Log((1+n)/(1+float64(d))) + 1
	}

	v.rows = make([]map[int]float64, len(docs))
	for i, row := range counts {
		for id := range row {
			row[id] *= v.idf[id]
		}
		normalize(row)
		v.rows[i] = row
	}
	return v
}

// transform maps query text into the fitted space. Features outside the
// vocabulary are dropped.
func (v *vectorSpace) transform(text string) map[int]float64 {
	vec := make(map[int]float64)
	for _, f := range features(text) {
		if id, ok := v.vocab[f]; ok {
			vec[id]++
		}
	}
	for id := range vec {
		vec[id] *= v.idf[id]
	}
	normalize(vec)
	return vec
}

// sortedIDs returns vec's feature ids in ascending order. Float sums must
// accumulate in a fixed order: addition is non-associative and map iteration
// order varies per run, which would make scores differ in the low bits
// between identical calls.
func sortedIDs(vec map[int]float64) []int {
	ids := make([]int, 0, len(vec))
	for id := range vec {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// normalize scales vec to unit L2 norm in place.
func normalize(vec map[int]float64) {
	var sum float64
	for _, id := range sortedIDs(vec) {
		sum += vec[id] * vec[id]
	}
	if sum == 0 {
		return
	}
	n := math.Sqrt(sum)
	for id := range vec {
		vec[id] /= n
	}
}

// cosine returns the dot product of two unit vectors.
func cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, id := range sortedIDs(a) {
		dot += a[id] * b[id]
	}
	return dot
}
