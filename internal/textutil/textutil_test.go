package textutil

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "celiac disease", "celiac disease"},
		{"collapses whitespace", "  celiac \t\n disease  ", "celiac disease"},
		{"greek beta", "TGF-β signalling", "TGF-beta signalling"},
		{"greek kappa", "NF-κB activation", "NF-kappaB activation"},
		{"multiple greek letters", "α and γ and δ", "alpha and gamma and delta"},
		{"nfkc compatibility", "ﬁbrosis", "fibrosis"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"microRNA-21 in  coeliac β disease",
		"NF-κB  and TGF-β",
		"plain ascii text",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases and splits", "MicroRNA Biomarkers", []string{"microrna", "biomarkers"}},
		{"punctuation separates", "mir-21, il-6; tnf.", []string{"mir", "21", "il", "6", "tnf"}},
		{"digits and underscore kept", "smad2_3 p53", []string{"smad2_3", "p53"}},
		{"greek transliterated", "NF-κB", []string{"nf", "kappab"}},
		{"empty", "", nil},
		{"punctuation only", "...!?", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	in := "Circulating microRNA-21 and IL-6 in coeliac β disease!"
	first := Tokenize(in)
	second := Tokenize(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("tokenization not deterministic: %v != %v", first, second)
	}
	for _, tok := range first {
		if strings.ContainsAny(tok, " \t\n.,;!?-") {
			t.Errorf("token %q contains whitespace or punctuation", tok)
		}
	}
}

func TestExpandTerms(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want [][]string
	}{
		{
			name: "microrna variants",
			in:   []string{"microRNA"},
			want: [][]string{{"microrna", "mir", "mirna"}},
		},
		{
			name: "mir prefix variants",
			in:   []string{"miR-21"},
			want: [][]string{{"microrna", "mir", "mir-21", "mirna"}},
		},
		{
			name: "ibd abbreviation",
			in:   []string{"IBD"},
			want: [][]string{{"ibd", "inflammatory bowel disease"}},
		},
		{
			name: "ibd long form",
			in:   []string{"inflammatory bowel disease"},
			want: [][]string{{"ibd", "inflammatory bowel disease"}},
		},
		{
			name: "celiac spellings",
			in:   []string{"coeliac"},
			want: [][]string{{"celiac", "coeliac"}},
		},
		{
			name: "plain term untouched",
			in:   []string{"autophagy"},
			want: [][]string{{"autophagy"}},
		},
		{
			name: "order preserved across terms",
			in:   []string{"celiac", "microRNA"},
			want: [][]string{{"celiac", "coeliac"}, {"microrna", "mir", "mirna"}},
		},
		{
			name: "empty input",
			in:   nil,
			want: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandTerms(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ExpandTerms(%v) returned %d groups, want %d", tt.in, len(got), len(tt.want))
			}
			for i := range got {
				// Variant sets are returned sorted.
				want := append([]string(nil), tt.want[i]...)
				sort.Strings(want)
				if !reflect.DeepEqual(got[i], want) {
					t.Errorf("group %d = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}
