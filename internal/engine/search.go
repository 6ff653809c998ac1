// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/pubmed-miner/internal/textutil"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// DefaultLimit is the result-list truncation applied when Options.Limit is
// zero.
const DefaultLimit = 30

// Options holds the parameters of one search call. The zero value of a
// filter field disables that filter.
type Options struct {
	// Terms are the raw query terms; each expands independently into a
	// synonym group.
	Terms []string

	// Operator combines the term groups: AND, OR, or NOT.
	Operator string

	// Fields selects the indexed fields consulted: "ti", "ab", or "tiab".
	Fields string

	// YearMin excludes documents published before this year. Documents with
	// no year never satisfy a nonzero YearMin.
	YearMin int

	// YearMax excludes documents published after this year; zero disables.
	YearMax int

	// JournalInclude keeps only documents whose journal name contains at
	// least one of these substrings (case-insensitive).
	JournalInclude []string

	// JournalExclude drops documents whose journal name contains any of
	// these substrings.
	JournalExclude []string

	// Author keeps only documents whose author string contains this
	// substring (case-insensitive).
	Author string

	// RequireDOI drops documents without a DOI.
	RequireDOI bool

	// ExcludeTerms drops documents whose selected fields contain any of
	// these substrings (case-insensitive).
	ExcludeTerms []string

	// Limit truncates the ranked result list; zero means DefaultLimit.
	Limit int
}

// Search expands the query, selects boolean candidates, applies the
// metadata filter, scores and ranks the survivors, and returns the top
// results. A query matching nothing returns an empty list, not an error.
func (e *Engine) Search(opts Options) ([]types.Result, error) {
	if !validOperator(opts.Operator) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperator, opts.Operator)
	}
	if !validFields(opts.Fields) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFields, opts.Fields)
	}

	groups := textutil.ExpandTerms(opts.Terms)
	ids := e.candidates(groups, opts.Operator, opts.Fields)
	ids = e.applyFilters(ids, opts)
	if len(ids) == 0 {
		return nil, nil
	}

	// Flattened expanded terms, in group order: the query text for the
	// vector spaces and the term list for the token-level bonuses.
	var flat []string
	for _, g := range groups {
		flat = append(flat, g...)
	}
	qText := strings.Join(flat, " ")
	distinct := distinctTerms(flat)

	var qTitle, qAbstract map[int]float64
	if opts.Fields == FieldsTitle || opts.Fields == FieldsBoth {
		qTitle = e.titleSpace.transform(qText)
	}
	if opts.Fields == FieldsAbstract || opts.Fields == FieldsBoth {
		qAbstract = e.abstractSpace.transform(qText)
	}

	results := make([]types.Result, 0, len(ids))
	for _, a := range e.articles {
		if !ids[a.PMID] {
			continue
		}
		pos := e.position[a.PMID]

		var cosTi, cosAb float64
		if qTitle != nil {
			cosTi = cosine(qTitle, e.titleSpace.rows[pos])
		}
		if qAbstract != nil {
			cosAb = cosine(qAbstract, e.abstractSpace.rows[pos])
		}

		r := e.score(a, cosTi, cosAb, distinct)
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.AbstractLen != b.AbstractLen {
			return a.AbstractLen > b.AbstractLen
		}
		return a.HasDOI > b.HasDOI
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// candidates evaluates the boolean query against the chosen inverted index.
// Operator and fields are validated by the caller. An empty query matches
// the whole corpus.
func (e *Engine) candidates(groups [][]string, op, fields string) idSet {
	if len(groups) == 0 {
		return e.universe()
	}

	var inv map[string]idSet
	switch fields {
	case FieldsTitle:
		inv = e.invTitle
	case FieldsAbstract:
		inv = e.invAbstract
	default:
		inv = e.invBoth
	}

	sets := make([]idSet, 0, len(groups))
	for _, group := range groups {
		set := make(idSet)
		for _, variant := range group {
			for id := range variantDocs(inv, variant) {
				set[id] = true
			}
		}
		sets = append(sets, set)
	}

	switch op {
	case OpAnd:
		cand := e.universe()
		for _, s := range sets {
			for id := range cand {
				if !s[id] {
					delete(cand, id)
				}
			}
		}
		return cand
	case OpOr:
		cand := make(idSet)
		for _, s := range sets {
			for id := range s {
				cand[id] = true
			}
		}
		return cand
	default: // OpNot
		cand := e.universe()
		for _, s := range sets {
			for id := range s {
				delete(cand, id)
			}
		}
		return cand
	}
}

// variantDocs returns the documents matching one synonym variant. A
// single-token variant is an index lookup; a multi-word variant (e.g.
// "inflammatory bowel disease") matches documents containing all of its
// tokens.
func variantDocs(inv map[string]idSet, variant string) idSet {
	toks := textutil.Tokenize(variant)
	if len(toks) == 0 {
		return nil
	}
	docs := inv[toks[0]]
	for _, tok := range toks[1:] {
		next := inv[tok]
		out := make(idSet)
		for id := range docs {
			if next[id] {
				out[id] = true
			}
		}
		docs = out
	}
	return docs
}

// applyFilters narrows ids by the metadata rules in opts. All rules must
// pass for a document to survive.
func (e *Engine) applyFilters(ids idSet, opts Options) idSet {
	out := make(idSet, len(ids))
	for id := range ids {
		a := e.articles[e.position[id]]

		if opts.YearMin > 0 && a.Year < opts.YearMin {
			continue
		}
		if opts.YearMax > 0 && a.Year > 0 && a.Year > opts.YearMax {
			continue
		}

		journal := strings.ToLower(a.Journal)
		if len(opts.JournalInclude) > 0 && !containsAny(journal, opts.JournalInclude) {
			continue
		}
		if len(opts.JournalExclude) > 0 && containsAny(journal, opts.JournalExclude) {
			continue
		}

		if opts.Author != "" &&
			!strings.Contains(strings.ToLower(a.AuthorString()), strings.ToLower(opts.Author)) {
			continue
		}
		if opts.RequireDOI && !a.HasDOI() {
			continue
		}

		if len(opts.ExcludeTerms) > 0 {
			var fields []string
			if opts.Fields == FieldsTitle || opts.Fields == FieldsBoth {
				fields = append(fields, a.Title)
			}
			if opts.Fields == FieldsAbstract || opts.Fields == FieldsBoth {
				fields = append(fields, a.Abstract)
			}
			if containsAny(strings.ToLower(strings.Join(fields, " ")), opts.ExcludeTerms) {
				continue
			}
		}

		out[id] = true
	}
	return out
}

// containsAny reports whether text contains any of the needles,
// case-insensitively. text must already be lower-cased.
func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// distinctTerms returns the unique terms of flat, preserving first-seen
// order.
func distinctTerms(flat []string) []string {
	seen := make(map[string]bool, len(flat))
	var out []string
	for _, t := range flat {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
