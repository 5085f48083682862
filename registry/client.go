package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/pydepdocs/discovery"
	"github.com/jonwraymond/pydepdocs/internal/version"
)

// ClientConfig describes a connection to a running search server.
type ClientConfig struct {
	// URL is the MCP endpoint (http(s)://host/mcp or sse://host/path).
	URL string
	// Headers are optional HTTP headers for authenticated servers.
	Headers map[string]string
	// MaxRetries controls reconnect attempts for streamable HTTP transport.
	MaxRetries int
	// Transport overrides URL handling when provided (useful for tests).
	Transport mcp.Transport
}

// Client calls the search tool of a remote server.
type Client struct {
	config  ClientConfig
	mu      sync.RWMutex
	session *mcp.ClientSession
}

// Dial connects to the server described by cfg.
func Dial(ctx context.Context, cfg ClientConfig) (*Client, error) {
	transport, err := cfg.transport()
	if err != nil {
		return nil, err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: ToolNamespace + "-client", Version: version.Version}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.describe(), err)
	}
	return &Client{config: cfg, session: session}, nil
}

// ListTools returns the tools the server advertises.
func (c *Client) ListTools(ctx context.Context) ([]*mcp.Tool, error) {
	session, err := c.current()
	if err != nil {
		return nil, err
	}
	res, err := session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return res.Tools, nil
}

// Search calls the search tool and returns its text.
func (c *Client) Search(ctx context.Context, req discovery.Request) (string, error) {
	session, err := c.current()
	if err != nil {
		return "", err
	}

	args := map[string]any{"query": req.Query}
	if req.PackageFilter != "" {
		args["package_filter"] = string(req.PackageFilter)
	}
	if req.TopN != 0 {
		args["top_n"] = req.TopN
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: args,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	if result == nil {
		return "", fmt.Errorf("%w: empty result", ErrExecutionFailed)
	}
	if result.IsError {
		return "", fmt.Errorf("%w: %s", ErrExecutionFailed, toolResultText(result))
	}
	return toolResultText(result), nil
}

// Close ends the session.
func (c *Client) Close() error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()

	if session == nil {
		return nil
	}
	return session.Close()
}

func (c *Client) current() (*mcp.ClientSession, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, ErrNotConnected
	}
	return c.session, nil
}

func (cfg ClientConfig) describe() string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return "in-process transport"
}

func (cfg ClientConfig) transport() (mcp.Transport, error) {
	if cfg.Transport != nil {
		return cfg.Transport, nil
	}
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("%w: server URL is required", ErrInvalidRequest)
	}

	parsed, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid server URL: %v", ErrInvalidRequest, err)
	}

	httpClient := httpClientWithHeaders(cfg.Headers)

	switch parsed.Scheme {
	case "http", "https":
		return &mcp.StreamableClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: httpClient,
			MaxRetries: cfg.MaxRetries,
		}, nil
	case "sse":
		parsed.Scheme = "http"
		return &mcp.SSEClientTransport{
			Endpoint:   parsed.String(),
			HTTPClient: httpClient,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrInvalidRequest, parsed.Scheme)
	}
}

func httpClientWithHeaders(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return nil
	}
	clone := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clone[k] = v
	}
	if len(clone) == 0 {
		return nil
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			base:    http.DefaultTransport,
			headers: clone,
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	for key, value := range h.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}

func toolResultText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "tool returned no text content"
	}
	return strings.Join(parts, "\n")
}
