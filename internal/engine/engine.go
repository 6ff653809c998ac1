// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine implements local search and analytics over a loaded PubMed
// corpus: inverted-index boolean retrieval, TF-IDF cosine ranking with
// heuristic boosts, faceted aggregation, and co-authorship analytics.
//
// An Engine is built once from a corpus snapshot and is read-only
// afterwards, so concurrent readers need no locking.
package engine

import (
	"errors"
	"regexp"

	"github.com/pdiddy/pubmed-miner/internal/textutil"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// Field selectors choosing which inverted index a query consults.
const (
	FieldsTitle    = "ti"
	FieldsAbstract = "ab"
	FieldsBoth     = "tiab"
)

// Boolean operators combining query-term groups.
const (
	OpAnd = "AND"
	OpOr  = "OR"
	OpNot = "NOT"
)

var (
	// ErrEmptyCorpus is returned when an engine is constructed over zero
	// documents.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrInvalidOperator is returned for a boolean operator other than
	// AND, OR, or NOT.
	ErrInvalidOperator = errors.New("invalid boolean operator")

	// ErrInvalidFields is returned for a field selector other than
	// "ti", "ab", or "tiab".
	ErrInvalidFields = errors.New("invalid fields selector")

	// ErrInvalidFacet is returned for a facet dimension other than
	// journal, year, or author.
	ErrInvalidFacet = errors.New("invalid facet dimension")
)

var sentenceRe = regexp.MustCompile(`[.!?]`)

// idSet is a set of PMIDs.
type idSet map[string]bool

// Engine holds the frozen index structures for one corpus snapshot.
type Engine struct {
	articles []types.Article
	position map[string]int

	invTitle    map[string]idSet
	invAbstract map[string]idSet
	// invBoth is the title∪abstract index, merged once at construction so
	// "tiab" queries do not rebuild it.
	invBoth map[string]idSet

	titleSpace    *vectorSpace
	abstractSpace *vectorSpace

	// titleTokens and abstractTokens are per-document token sets used for
	// exact-match bonuses and matched-term reporting.
	titleTokens    map[string]idSet
	abstractTokens map[string]idSet

	// sentences caches the abstract's per-sentence token sets for the
	// proximity bonus.
	sentences map[string][]idSet
}

// New builds an engine over articles. The slice is captured as the corpus
// snapshot; callers must not mutate it afterwards. PMIDs are assumed unique
// (the loader deduplicates).
func New(articles []types.Article) (*Engine, error) {
	if len(articles) == 0 {
		return nil, ErrEmptyCorpus
	}

	e := &Engine{
		articles:       articles,
		position:       make(map[string]int, len(articles)),
		invTitle:       make(map[string]idSet),
		invAbstract:    make(map[string]idSet),
		invBoth:        make(map[string]idSet),
		titleTokens:    make(map[string]idSet, len(articles)),
		abstractTokens: make(map[string]idSet, len(articles)),
		sentences:      make(map[string][]idSet, len(articles)),
	}

	titles := make([]string, len(articles))
	abstracts := make([]string, len(articles))

	for i, a := range articles {
		e.position[a.PMID] = i
		titles[i] = a.Title
		abstracts[i] = a.Abstract

		e.titleTokens[a.PMID] = index(e.invTitle, a.PMID, textutil.Tokenize(a.Title))
		e.abstractTokens[a.PMID] = index(e.invAbstract, a.PMID, textutil.Tokenize(a.Abstract))

		for _, sent := range sentenceRe.Split(a.Abstract, -1) {
			toks := textutil.Tokenize(sent)
			if len(toks) == 0 {
				continue
			}
			set := make(idSet, len(toks))
			for _, t := range toks {
				set[t] = true
			}
			e.sentences[a.PMID] = append(e.sentences[a.PMID], set)
		}
	}

	for tok, ids := range e.invTitle {
		merge(e.invBoth, tok, ids)
	}
	for tok, ids := range e.invAbstract {
		merge(e.invBoth, tok, ids)
	}

	e.titleSpace = fitVectorSpace(titles)
	e.abstractSpace = fitVectorSpace(abstracts)
	return e, nil
}

// Size returns the number of indexed documents.
func (e *Engine) Size() int { return len(e.articles) }

// Articles returns the corpus snapshot in load order. Callers must treat it
// as read-only.
func (e *Engine) Articles() []types.Article { return e.articles }

// index adds pmid under every token in inv and returns the document's own
// token set.
func index(inv map[string]idSet, pmid string, tokens []string) idSet {
	own := make(idSet, len(tokens))
	for _, tok := range tokens {
		own[tok] = true
		ids := inv[tok]
		if ids == nil {
			ids = make(idSet)
			inv[tok] = ids
		}
		ids[pmid] = true
	}
	return own
}

// merge unions ids into dst[tok].
func merge(dst map[string]idSet, tok string, ids idSet) {
	out := dst[tok]
	if out == nil {
		out = make(idSet, len(ids))
		dst[tok] = out
	}
	for id := range ids {
		out[id] = true
	}
}

// universe returns the set of all document ids.
func (e *Engine) universe() idSet {
	all := make(idSet, len(e.articles))
	for _, a := range e.articles {
		all[a.PMID] = true
	}
	return all
}

func validFields(fields string) bool {
	return fields == FieldsTitle || fields == FieldsAbstract || fields == FieldsBoth
}

func validOperator(op string) bool {
	return op == OpAnd || op == OpOr || op == OpNot
}
