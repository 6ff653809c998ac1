package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["Journal Article", "Review"]`, []string{"Journal Article", "Review"}},
		{"semicolon string", `"Alice Rossi; Bruno Bianchi"`, []string{"Alice Rossi", "Bruno Bianchi"}},
		{"comma string", `"Journal Article, Review"`, []string{"Journal Article", "Review"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			if err := json.Unmarshal([]byte(tt.in), &l); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if !reflect.DeepEqual([]string(l), tt.want) {
				t.Errorf("got %v, want %v", l, tt.want)
			}
		})
	}
}

func TestNullableYearUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"number", `2021`, 2021},
		{"numeric string", `"2022"`, 2022},
		{"float string", `"2021.0"`, 2021},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"unknown"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y NullableYear
			if err := json.Unmarshal([]byte(tt.in), &y); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if int(y) != tt.want {
				t.Errorf("got %d, want %d", y, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2021", 2021},
		{"2021.0", 2021},
		{" 2022 ", 2022},
		{"", 0},
		{"null", 0},
		{"unknown", 0},
	}
	for _, tt := range tests {
		if got := ParseYear(tt.in); got != tt.want {
			t.Errorf("ParseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("a; b,, c ;", ";", ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if out := SplitList("", ";"); out != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", out)
	}
}

func TestArticleHelpers(t *testing.T) {
	a := Article{Authors: []string{"Alice Rossi", "Bruno Bianchi"}, DOI: "10.1/a"}
	if got := a.AuthorString(); got != "Alice Rossi; Bruno Bianchi" {
		t.Errorf("AuthorString = %q", got)
	}
	if !a.HasDOI() {
		t.Error("HasDOI = false, want true")
	}
	if (Article{}).HasDOI() {
		t.Error("HasDOI on empty article = true, want false")
	}
}
