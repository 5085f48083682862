// Package search turns a free-text intent into a bleve query and runs it
// against the documentation index.
//
// It exists to:
//   - Keep query-string construction in one place (lowercasing, package
//     filter injection)
//   - Provide the small query language that string is written in, since
//     bleve's own query-string syntax has no AND keyword or grouping
//
// # Usage
//
//	qs := search.BuildQuery("Lock File", index.PackageUV)
//	// qs == "package:uv AND (lock file)"
//
//	s := search.NewSearcher(handle.Index)
//	hits, err := s.Search(ctx, qs, 5)
//
// # Query Language
//
// Bare terms are matched with typo tolerance (edit distance 1 for terms of
// four or more characters) against content, title (boost 2) and package
// (boost 1.5). Juxtaposed terms are alternatives; AND binds tighter than
// OR; parentheses group; "quoted text" is a phrase; field:value restricts a
// clause to one of content, title, package or path. Operators are
// recognised only in upper case, so a lowercased user query never contains
// one.
//
// # Behavior
//
// Hits come back by descending score. Equal scores are ordered by document
// ID ascending so results are deterministic.
package search
