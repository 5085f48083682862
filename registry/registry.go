package registry

import (
	"context"
	"fmt"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/pydepdocs/discovery"
	"github.com/jonwraymond/pydepdocs/index"
	"github.com/jonwraymond/pydepdocs/internal/metrics"
)

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo

	// Discovery answers tool calls. Required.
	Discovery *discovery.Discovery

	// Cache is reported by the health check. Optional.
	Cache *index.Cache

	// Metrics is served on /metrics and instruments HTTP requests.
	// Optional.
	Metrics *metrics.Metrics

	Logger *zap.Logger

	// AllowedOrigins lists the CORS origins accepted by the HTTP handler.
	// Empty allows any origin.
	AllowedOrigins []string
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Registry owns the MCP server and its single search tool.
type Registry struct {
	config Config
	disc   *discovery.Discovery
	logger *zap.Logger
	tool   model.Tool
	server *mcp.Server
}

// New builds the MCP server and registers the search tool on it.
func New(cfg Config) (*Registry, error) {
	if cfg.Discovery == nil {
		return nil, ErrNoDiscovery
	}
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = ToolNamespace
	}

	tool, err := newTool()
	if err != nil {
		return nil, err
	}

	r := &Registry{
		config: cfg,
		disc:   cfg.Discovery,
		logger: cfg.Logger,
		tool:   tool,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}

	r.server = mcp.NewServer(&mcp.Implementation{
		Name:    cfg.ServerInfo.Name,
		Version: cfg.ServerInfo.Version,
	}, nil)
	mcp.AddTool(r.server, &r.tool.Tool, r.handleSearch)

	r.logger.Debug("registered tool", zap.String("tool", r.tool.ToolID()))
	return r, nil
}

// Server returns the underlying MCP server.
func (r *Registry) Server() *mcp.Server {
	return r.server
}

// Tool returns the descriptor of the search tool.
func (r *Registry) Tool() model.Tool {
	return r.tool
}

// HealthStatus is the body of the health endpoint.
type HealthStatus struct {
	Status      string `json:"status"`
	IndexDir    string `json:"index_dir,omitempty"`
	Documents   uint64 `json:"documents"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// HealthCheck reports whether the index is loaded. Without a cache the
// registry is considered healthy.
func (r *Registry) HealthCheck(_ context.Context) (HealthStatus, error) {
	cache := r.config.Cache
	if cache == nil {
		return HealthStatus{Status: "ok"}, nil
	}

	if !cache.Ready() {
		return HealthStatus{Status: "unavailable", IndexDir: cache.Dir()},
			fmt.Errorf("index %s not loaded", cache.Dir())
	}
	snap, _ := cache.Snapshot()
	return HealthStatus{
		Status:      "ok",
		IndexDir:    snap.Dir,
		Documents:   snap.DocCount,
		Fingerprint: snap.Fingerprint,
	}, nil
}
