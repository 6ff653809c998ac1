// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-miner pipeline:
// the Article record supplied by the corpus loader, the Result records
// produced by the search engine, and the analytics row types.
package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Article holds the per-document metadata the engine indexes. Records are
// immutable once loaded; PMID is unique within a corpus (the loader
// deduplicates, keeping the last occurrence).
type Article struct {
	// PMID is the PubMed unique article identifier, treated as an opaque key.
	PMID string `json:"PMID" yaml:"pmid"`

	// Title is the normalized article title.
	Title string `json:"Title" yaml:"title"`

	// Abstract is the normalized abstract text; empty when PubMed has none.
	Abstract string `json:"Abstract" yaml:"abstract"`

	// Authors lists author display names in citation order.
	Authors []string `json:"Authors" yaml:"authors"`

	// Journal is the normalized journal name.
	Journal string `json:"Journal" yaml:"journal"`

	// Year is the publication year, or 0 when PubMed supplied none. A zero
	// year never satisfies a minimum-year filter and sorts last in ties.
	Year int `json:"Year" yaml:"year"`

	// DOI is the article DOI, possibly empty.
	DOI string `json:"DOI" yaml:"doi"`

	// CitationAPA is the prebuilt APA citation string.
	CitationAPA string `json:"citation_apa" yaml:"citation_apa"`

	// PublicationTypes lists PubMed publication-type labels
	// (e.g. "Journal Article", "Review").
	PublicationTypes []string `json:"PublicationTypes" yaml:"publication_types"`
}

// HasDOI reports whether the article carries a DOI.
func (a Article) HasDOI() bool { return a.DOI != "" }

// AuthorString returns the authors joined with "; ", the form PubMed exports
// and the author-substring filter matches against.
func (a Article) AuthorString() string { return strings.Join(a.Authors, "; ") }

// StringList decodes a JSON value that is either an array of strings or a
// single delimited string. PubMed exports carry Authors as "A; B; C" and
// PublicationTypes as either a list or a ";"/"," joined string.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitList(s, ";", ",")
	return nil
}

// SplitList splits s on any of the given separators and returns the trimmed,
// non-empty parts.
func SplitList(s string, seps ...string) []string {
	parts := []string{s}
	for _, sep := range seps {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NullableYear decodes a JSON value that is a number, a numeric string, or
// null/absent, into a year where 0 means unknown.
type NullableYear int

// UnmarshalJSON implements json.Unmarshaler.
func (y *NullableYear) UnmarshalJSON(data []byte) error {
	*y = NullableYear(ParseYear(strings.Trim(string(data), `"`)))
	return nil
}

// ParseYear interprets a year cell from a JSON or CSV export: an integer, a
// float rendering ("2021.0"), or empty/unparseable text, which all mean
// unknown and yield 0.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
