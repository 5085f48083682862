package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Stored field names.
const (
	FieldContent    = "content"
	FieldPath       = "path"
	FieldPackage    = "package"
	FieldTitle      = "title"
	FieldSourceRepo = "source_repo"
	FieldDocsPath   = "docs_path"
)

// DefaultDocsPath is used when a document carries no docs_path.
const DefaultDocsPath = "docs"

// StoredFields lists every field a search hit should load.
var StoredFields = []string{
	FieldContent,
	FieldPath,
	FieldPackage,
	FieldTitle,
	FieldSourceRepo,
	FieldDocsPath,
}

// Document is one indexed documentation page.
//
// Path is slash-delimited and its first segment is the package namespace
// (for example "uv/guides/projects.md"). SourceRepo is "org/repo", empty,
// or the sentinel "unknown".
type Document struct {
	Content    string `json:"content"`
	Path       string `json:"path"`
	Package    string `json:"package"`
	Title      string `json:"title"`
	SourceRepo string `json:"source_repo"`
	DocsPath   string `json:"docs_path"`
}

// DocumentFromFields builds a Document from a hit's stored fields.
// Absent fields become empty strings; docs_path falls back to
// DefaultDocsPath.
func DocumentFromFields(fields map[string]any) Document {
	doc := Document{
		Content:    stringField(fields, FieldContent),
		Path:       stringField(fields, FieldPath),
		Package:    stringField(fields, FieldPackage),
		Title:      stringField(fields, FieldTitle),
		SourceRepo: stringField(fields, FieldSourceRepo),
		DocsPath:   stringField(fields, FieldDocsPath),
	}
	if doc.DocsPath == "" {
		doc.DocsPath = DefaultDocsPath
	}
	return doc
}

func stringField(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		// multi-valued field: first value wins
		if len(v) == 0 {
			return ""
		}
		return stringField(map[string]any{name: v[0]}, name)
	default:
		return fmt.Sprint(v)
	}
}

// NewMapping returns the bleve mapping an index builder must use so that
// the fields above are stored and searchable the way the query parser
// expects: package and path are exact-match keywords, the rest is analyzed
// text.
func NewMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	text := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = true
		fm.IncludeTermVectors = true
		return fm
	}
	exact := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		return fm
	}
	stored := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		fm.Index = false
		return fm
	}

	docMapping.AddFieldMappingsAt(FieldContent, text())
	docMapping.AddFieldMappingsAt(FieldTitle, text())
	docMapping.AddFieldMappingsAt(FieldPackage, exact())
	docMapping.AddFieldMappingsAt(FieldPath, exact())
	docMapping.AddFieldMappingsAt(FieldSourceRepo, stored())
	docMapping.AddFieldMappingsAt(FieldDocsPath, stored())

	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}
