// Package registry exposes documentation search as an MCP tool.
//
// It registers one tool, search_py_dep_man_docs, on a server from the
// official MCP Go SDK and serves it over stdio or streamable HTTP. The
// HTTP surface also carries a health check and Prometheus metrics.
//
// Example usage:
//
//	reg, err := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{Name: "pydepdocs", Version: version.Version},
//	    Discovery:  disc,
//	    Cache:      cache,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.ServeStdio(ctx, reg)
//
// Client connects to a running server and calls the tool remotely:
//
//	c, err := registry.Dial(ctx, registry.ClientConfig{URL: "http://localhost:8080/mcp"})
//	text, err := c.Search(ctx, discovery.Request{Query: "lock file"})
package registry
