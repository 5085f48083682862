package index

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling.
var (
	ErrIndexNotFound  = errors.New("search index not found")
	ErrInvalidPackage = errors.New("invalid package")
	ErrClosed         = errors.New("index cache closed")
)

// ConfigurationError reports that the configured index directory cannot be
// used. It wraps ErrIndexNotFound when the directory does not exist.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Err, ErrIndexNotFound) {
		return fmt.Sprintf("search index not found at %s. Run the index build step first to create the index", e.Path)
	}
	return fmt.Sprintf("search index at %s is unusable: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
