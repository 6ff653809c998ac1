// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil normalizes and tokenizes biomedical text and expands
// query terms with domain synonyms. All functions are pure; the engine and
// the corpus loader share them so indexing and querying agree on token
// boundaries.
package textutil

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// greekTable transliterates the Greek letters that appear in PubMed titles
// and abstracts to their Latin names, so "NF-κB" and "NF-kappaB" tokenize
// identically.
var greekTable = []struct{ from, to string }{
	{"β", "beta"},
	{"α", "alpha"},
	{"κ", "kappa"},
	{"γ", "gamma"},
	{"δ", "delta"},
}

// DomainKeywords are fixed biomedical relevance-boost signals. Matching is
// by substring against the lower-cased abstract; they never filter.
var DomainKeywords = []string{
	"nf-kb", "tgf-beta", "il-6", "tnf", "t cell", "epithelial barrier",
	"autophagy", "mucosa", "tight junction", "smad2", "smad3",
}

// wordRe matches maximal runs of word characters: letters, digits, and
// underscore. Punctuation separates tokens and is never part of one.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalize applies Unicode NFKC normalization, transliterates Greek
// letters, and collapses whitespace runs to single spaces, trimming the
// ends. Idempotent.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	for _, g := range greekTable {
		text = strings.ReplaceAll(text, g.from, g.to)
	}
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize normalizes, lower-cases, and extracts word tokens in order.
// Empty input yields no tokens.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(Normalize(text)), -1)
}

// ExpandTerms maps each raw query term to its sorted set of synonym
// variants. The variant table is closed and hardcoded: microRNA spellings,
// the IBD abbreviation, and the celiac/coeliac spelling pair. Term order is
// preserved from the input.
func ExpandTerms(terms []string) [][]string {
	expanded := make([][]string, 0, len(terms))
	for _, term := range terms {
		nt := strings.ToLower(Normalize(term))
		variants := map[string]bool{nt: true}
		if strings.Contains(nt, "microrna") || strings.Contains(nt, "mirna") || strings.Contains(nt, "mir-") {
			variants["microrna"] = true
			variants["mirna"] = true
			variants["mir"] = true
		}
		if nt == "ibd" || nt == "inflammatory bowel disease" {
			variants["ibd"] = true
			variants["inflammatory bowel disease"] = true
		}
		if strings.Contains(nt, "celiac") || strings.Contains(nt, "coeliac") {
			variants["celiac"] = true
			variants["coeliac"] = true
		}
		group := make([]string, 0, len(variants))
		for v := range variants {
			group = append(group, v)
		}
		sort.Strings(group)
		expanded = append(expanded, group)
	}
	return expanded
}
