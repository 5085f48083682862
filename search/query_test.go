package search

import (
	"strings"
	"testing"

	"github.com/jonwraymond/pydepdocs/index"
)

func TestBuildQuery_NoFilterIsLowercasedInput(t *testing.T) {
	inputs := []string{
		"workflow tutorial",
		"Lock File",
		"UV vs Poetry",
		"pip install --user",
		"Ünïcode Ärger",
		"already lower",
	}

	for _, in := range inputs {
		got := BuildQuery(in, "")
		if got != strings.ToLower(in) {
			t.Errorf("BuildQuery(%q, none) = %q, want %q", in, got, strings.ToLower(in))
		}
		if strings.Contains(got, "package:") {
			t.Errorf("BuildQuery(%q, none) injected a package clause: %q", in, got)
		}
	}
}

func TestBuildQuery_WithFilter(t *testing.T) {
	for _, p := range index.Packages() {
		got := BuildQuery("Project Setup Tutorial", p)
		want := "package:" + string(p) + " AND (project setup tutorial)"
		if got != want {
			t.Errorf("BuildQuery(filter=%s) = %q, want %q", p, got, want)
		}
	}
}

func TestBuildQuery_OutputParses(t *testing.T) {
	for _, p := range append([]index.Package{""}, index.Packages()...) {
		qs := BuildQuery("Dependency Groups", p)
		if _, err := ParseQuery(qs); err != nil {
			t.Errorf("ParseQuery(%q) error = %v", qs, err)
		}
	}
}
