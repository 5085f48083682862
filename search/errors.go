package search

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrQuerySyntax  = errors.New("query syntax error")
	ErrInvalidLimit = errors.New("invalid result limit")
	ErrNoIndex      = errors.New("searcher has no index")
)
