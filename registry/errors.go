package registry

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrNoDiscovery     = errors.New("registry: discovery is required")
	ErrNotConnected    = errors.New("client not connected")
	ErrExecutionFailed = errors.New("tool execution failed")
	ErrInvalidRequest  = errors.New("invalid request")
)
