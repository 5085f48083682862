package render

import (
	"fmt"
	"strings"
)

// separator closes every result block.
var separator = strings.Repeat("-", 80)

// Entry is one formatted search result.
type Entry struct {
	Package    string
	Title      string
	Path       string
	SourceRepo string
	GitHubLink string
	Preview    string
	Score      float64
}

// Text formats a non-empty result list. filter is the active package
// filter, or "" for none.
func Text(query, filter string, entries []Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d result(s) for '%s'", len(entries), query)
	if filter != "" {
		fmt.Fprintf(&b, " (filtered by %s)", filter)
	}
	b.WriteString(":\n\n")

	for i, e := range entries {
		fmt.Fprintf(&b, "**Result %d (Score: %.2f)**\n", i+1, e.Score)
		fmt.Fprintf(&b, "Package: %s\n", e.Package)
		fmt.Fprintf(&b, "Title: %s\n", e.Title)
		fmt.Fprintf(&b, "Path: %s\n", e.Path)
		fmt.Fprintf(&b, "Source: %s\n", e.SourceRepo)
		if e.GitHubLink != "" {
			fmt.Fprintf(&b, "GitHub: %s\n", e.GitHubLink)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Content:\n%s\n", e.Preview)
		b.WriteString(separator)
		b.WriteString("\n\n")
	}

	return b.String()
}

// NoResults is the message returned when a search matches nothing.
func NoResults(query, filter string) string {
	msg := fmt.Sprintf("No documentation found for '%s'.", query)
	if filter != "" {
		msg += " Try searching without package filter."
	}
	return msg
}

// Failure is the message returned for any search failure.
func Failure(err error) string {
	return "Search failed: " + err.Error()
}

// EmptyQuery is the message returned for a blank query.
const EmptyQuery = "Search query cannot be empty"
