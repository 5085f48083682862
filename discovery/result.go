package discovery

import (
	"github.com/jonwraymond/pydepdocs/render"
	"github.com/jonwraymond/pydepdocs/search"
)

// Result is one ranked documentation page, ready for display.
type Result struct {
	Score          float64 `json:"score"`
	Package        string  `json:"package"`
	Title          string  `json:"title"`
	Path           string  `json:"path"`
	SourceRepo     string  `json:"source_repo"`
	GitHubLink     string  `json:"github_link,omitempty"`
	ContentPreview string  `json:"content_preview"`
}

// Results is a slice of Result in rank order.
type Results []Result

// Paths returns the document paths in rank order.
func (r Results) Paths() []string {
	paths := make([]string, len(r))
	for i, result := range r {
		paths[i] = result.Path
	}
	return paths
}

// Entries converts the results for render.Text.
func (r Results) Entries() []render.Entry {
	entries := make([]render.Entry, len(r))
	for i, result := range r {
		entries[i] = render.Entry{
			Package:    result.Package,
			Title:      result.Title,
			Path:       result.Path,
			SourceRepo: result.SourceRepo,
			GitHubLink: result.GitHubLink,
			Preview:    result.ContentPreview,
			Score:      result.Score,
		}
	}
	return entries
}

// newResult builds the display form of a hit. query is the caller's text,
// used to center the preview.
func newResult(hit search.Hit, query string) Result {
	doc := hit.Document
	return Result{
		Score:          hit.Score,
		Package:        doc.Package,
		Title:          doc.Title,
		Path:           doc.Path,
		SourceRepo:     doc.SourceRepo,
		GitHubLink:     render.GitHubLink(doc.SourceRepo, doc.DocsPath, doc.Path),
		ContentPreview: render.Preview(doc.Content, query),
	}
}
