package discovery

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/pydepdocs/render"
)

// Error values for discovery operations.
var (
	ErrEmptyQuery = errors.New("empty query")
	ErrNoCache    = errors.New("discovery: index cache is required")
)

// UserInputError reports a request the caller must fix. Its message is
// shown to the caller as is and is never logged as an error.
type UserInputError struct {
	Field string
	Err   error
}

func (e *UserInputError) Error() string {
	if errors.Is(e.Err, ErrEmptyQuery) {
		return render.EmptyQuery
	}
	return fmt.Sprintf("Invalid request: %v", e.Err)
}

func (e *UserInputError) Unwrap() error {
	return e.Err
}

// SearchExecutionError reports a failure while parsing or running a
// query against the index.
type SearchExecutionError struct {
	Query string
	Err   error
}

func (e *SearchExecutionError) Error() string {
	return e.Err.Error()
}

func (e *SearchExecutionError) Unwrap() error {
	return e.Err
}
