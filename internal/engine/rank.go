// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pubmed-miner/internal/textutil"
	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// Base-score field weights: the title cosine counts 50% more than the
// abstract cosine.
const (
	titleWeight    = 1.2
	abstractWeight = 0.8
)

var reviewRe = regexp.MustCompile(`(?i)review|meta-analysis`)

// score assembles one result record: the weighted cosine base plus the
// additive bonuses, each recorded in the explanation list.
func (e *Engine) score(a types.Article, cosTi, cosAb float64, terms []string) types.Result {
	score := titleWeight*cosTi + abstractWeight*cosAb
	var expl []string

	titleToks := e.titleTokens[a.PMID]
	abstractToks := e.abstractTokens[a.PMID]

	var matched []string
	titleHit := false
	for _, t := range terms {
		inTitle := titleToks[t]
		if inTitle || abstractToks[t] {
			matched = append(matched, t)
		}
		if inTitle {
			titleHit = true
		}
	}
	sort.Strings(matched)

	if titleHit {
		score += 0.2
		expl = append(expl, "title")
	}

	if rec := recencyBonus(a.Year); rec > 0 {
		score += rec
		expl = append(expl, fmt.Sprintf("recency+%.2f", rec))
	}

	if isReview(a.PublicationTypes) {
		score += 0.2
		expl = append(expl, "review")
	}

	if dom := domainBoost(a.Abstract); dom > 0 {
		score += dom
		expl = append(expl, fmt.Sprintf("domain+%.2f", dom))
	}

	if e.proximity(a.PMID, terms) {
		score += 0.15
		expl = append(expl, "proximity")
	}

	hasDOI := 0
	if a.HasDOI() {
		hasDOI = 1
	}

	return types.Result{
		PMID:         a.PMID,
		Title:        a.Title,
		Abstract:     a.Abstract,
		Journal:      a.Journal,
		Year:         a.Year,
		DOI:          a.DOI,
		CitationAPA:  a.CitationAPA,
		Score:        score,
		CosTitle:     cosTi,
		CosAbstract:  cosAb,
		MatchedTerms: matched,
		Explanation:  expl,
		AbstractLen:  utf8.RuneCountInString(a.Abstract),
		HasDOI:       hasDOI,
	}
}

// recencyBonus is 0 for years up to 2020, 0.2 from 2025 on, and linear in
// between. A missing year (0) earns nothing.
func recencyBonus(year int) float64 {
	switch {
	case year <= 2020:
		return 0
	case year >= 2025:
		return 0.2
	default:
		return float64(year-2020) / 5 * 0.2
	}
}

// isReview reports whether any publication-type label names a review or
// meta-analysis.
func isReview(pubTypes []string) bool {
	for _, pt := range pubTypes {
		if reviewRe.MatchString(pt) {
			return true
		}
	}
	return false
}

// domainBoost grants 0.1 per distinct domain keyword found in the abstract,
// capped at 0.2.
func domainBoost(abstract string) float64 {
	text := strings.ToLower(abstract)
	count := 0
	for _, kw := range textutil.DomainKeywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	boost := 0.1 * float64(count)
	if boost > 0.2 {
		boost = 0.2
	}
	return boost
}

// proximity reports whether any single abstract sentence contains at least
// two distinct query terms.
func (e *Engine) proximity(pmid string, terms []string) bool {
	for _, sent := range e.sentences[pmid] {
		hits := 0
		for _, t := range terms {
			if sent[t] {
				hits++
				if hits >= 2 {
					return true
				}
			}
		}
	}
	return false
}
