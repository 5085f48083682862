package search

import (
	"strings"

	"github.com/jonwraymond/pydepdocs/index"
)

// BuildQuery lowercases text and, when filter is set, wraps it in a
// conjunction with a package clause:
//
//	package:<filter> AND (<lowercased text>)
//
// filter must come from the closed package set; it is inserted verbatim.
func BuildQuery(text string, filter index.Package) string {
	q := strings.ToLower(text)
	if filter == "" {
		return q
	}
	return index.FieldPackage + ":" + string(filter) + " AND (" + q + ")"
}
