package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/pydepdocs/index"
)

// Hit is one ranked search result with its stored fields.
type Hit struct {
	ID       string
	Score    float64
	Document index.Document
}

// Searcher runs parsed queries against an open index. It holds no state
// beyond the index, so it is safe for concurrent use.
type Searcher struct {
	idx bleve.Index
}

// NewSearcher wraps an open index.
func NewSearcher(idx bleve.Index) *Searcher {
	return &Searcher{idx: idx}
}

// Search parses qs, runs it with at most limit hits and returns the hits in
// rank order. Parse failures wrap ErrQuerySyntax.
func (s *Searcher) Search(ctx context.Context, qs string, limit int) ([]Hit, error) {
	if s == nil || s.idx == nil {
		return nil, ErrNoIndex
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	q, err := ParseQuery(qs)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = index.StoredFields
	req.SortBy([]string{"-_score", "_id"})

	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{
			ID:       h.ID,
			Score:    h.Score,
			Document: index.DocumentFromFields(h.Fields),
		})
	}
	return hits, nil
}
