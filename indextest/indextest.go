// Package indextest builds small on-disk documentation indexes for tests.
package indextest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/pydepdocs/index"
)

// Build writes docs into a fresh index under t.TempDir() and returns its
// directory. Documents get IDs doc-000, doc-001, ... in slice order.
func Build(t testing.TB, docs []index.Document) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "index")
	idx, err := bleve.New(dir, index.NewMapping())
	if err != nil {
		t.Fatalf("create index: %v", err)
	}

	batch := idx.NewBatch()
	for i, doc := range docs {
		if err := batch.Index(DocID(i), doc); err != nil {
			t.Fatalf("index document %d: %v", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		t.Fatalf("apply batch: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close index: %v", err)
	}
	return dir
}

// DocID returns the ID Build assigns to the i-th document.
func DocID(i int) string {
	return fmt.Sprintf("doc-%03d", i)
}

// SampleDocs returns a small corpus covering all four packages.
func SampleDocs() []index.Document {
	return []index.Document{
		{
			Content:    "Working on projects. uv supports managing Python projects, which define their dependencies in a pyproject.toml file. Use uv init to create a new project and uv add to add dependencies.",
			Path:       "uv/guides/projects.md",
			Package:    "uv",
			Title:      "Working on projects",
			SourceRepo: "astral-sh/uv",
			DocsPath:   "docs",
		},
		{
			Content:    "pip install installs packages from the Python Package Index and other indexes. The install command resolves requirements and accepts requirement specifiers.",
			Path:       "pip/cli/pip_install.rst",
			Package:    "pip",
			Title:      "pip install",
			SourceRepo: "pypa/pip",
			DocsPath:   "docs/html",
		},
		{
			Content:    "Poetry helps you declare, manage and install dependencies of Python projects. The poetry add command adds required packages to your pyproject.toml and installs them.",
			Path:       "poetry/cli.md",
			Package:    "poetry",
			Title:      "Commands",
			SourceRepo: "python-poetry/poetry",
		},
		{
			Content:    "Managing environments. With conda, you can create, export, list, remove, and update environments that have different versions of Python and packages installed in them.",
			Path:       "conda/user-guide/tasks/manage-environments.rst",
			Package:    "conda",
			Title:      "Managing environments",
			SourceRepo: "unknown",
			DocsPath:   "docs/source",
		},
	}
}
