package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jonwraymond/pydepdocs/index"
	"github.com/jonwraymond/pydepdocs/indextest"
	"github.com/jonwraymond/pydepdocs/search"
)

const benchDocCount = 1000

func makeBenchDocs() []index.Document {
	pkgs := index.Packages()
	docs := make([]index.Document, benchDocCount)
	for i := range docs {
		pkg := pkgs[i%len(pkgs)]
		docs[i] = index.Document{
			Content: fmt.Sprintf("Page %d explains how %s resolves dependencies, creates environments and writes lock files.", i, pkg),
			Path:    fmt.Sprintf("%s/page-%d.md", pkg, i),
			Package: string(pkg),
			Title:   fmt.Sprintf("%s page %d", pkg, i),
		}
	}
	return docs
}

func BenchmarkParseQuery(b *testing.B) {
	qs := search.BuildQuery("Create virtual environment from lock file", index.PackageUV)
	for b.Loop() {
		if _, err := search.ParseQuery(qs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearcher_Search(b *testing.B) {
	cache := index.NewCache(indextest.Build(b, makeBenchDocs()), nil)
	b.Cleanup(func() { _ = cache.Close() })
	h, err := cache.Ensure()
	if err != nil {
		b.Fatal(err)
	}
	s := search.NewSearcher(h.Index)
	ctx := context.Background()

	queries := map[string]string{
		"plain":    search.BuildQuery("lock files", ""),
		"filtered": search.BuildQuery("environments", index.PackageConda),
		"typo":     search.BuildQuery("dependancies", ""),
	}
	for name, qs := range queries {
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				if _, err := s.Search(ctx, qs, 5); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
