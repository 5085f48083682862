package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/pydepdocs/discovery"
	"github.com/jonwraymond/pydepdocs/index"
	"github.com/jonwraymond/pydepdocs/internal/logging"
	"github.com/jonwraymond/pydepdocs/internal/version"
)

// ToolName is the name the search tool is registered under.
const ToolName = "search_py_dep_man_docs"

// ToolNamespace groups the tool in toolfoundation descriptors.
const ToolNamespace = "pydepdocs"

const toolDescription = `Search Python dependency manager documentation (pip, conda, poetry, uv).

Full-text search with typo tolerance over the official documentation of the
four tools. Results are ranked by relevance and include the page title, its
path, a preview of the matching content and a link to the page on GitHub
when the source repository is known.

Use package_filter to restrict results to one tool.`

// SearchInput is the argument object of the search tool. A null
// package_filter decodes to "".
type SearchInput struct {
	Query         string `json:"query" jsonschema:"Search terms, e.g. 'lock file' or 'create virtual environment'"`
	PackageFilter string `json:"package_filter,omitempty" jsonschema:"Restrict results to one package manager"`
	TopN          int    `json:"top_n,omitempty" jsonschema:"Maximum number of results to return"`
}

// Request converts the tool arguments into a discovery request.
func (in SearchInput) Request() discovery.Request {
	return discovery.Request{
		Query:         in.Query,
		PackageFilter: index.Package(in.PackageFilter),
		TopN:          in.TopN,
	}
}

// inputSchema infers the schema from SearchInput and adds the closed
// package enumeration and the top_n bounds. package_filter also accepts
// null, which means no filter.
func inputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SearchInput](nil)
	if err != nil {
		return nil, fmt.Errorf("infer input schema: %w", err)
	}

	filter, ok := schema.Properties["package_filter"]
	if !ok {
		return nil, fmt.Errorf("infer input schema: missing package_filter")
	}
	filter.Type = ""
	filter.Types = []string{"string", "null"}
	for _, name := range index.PackageNames() {
		filter.Enum = append(filter.Enum, name)
	}
	filter.Enum = append(filter.Enum, nil)

	topN, ok := schema.Properties["top_n"]
	if !ok {
		return nil, fmt.Errorf("infer input schema: missing top_n")
	}
	minTopN, maxTopN := 1.0, float64(discovery.MaxTopN)
	topN.Minimum = &minTopN
	topN.Maximum = &maxTopN
	topN.Default = json.RawMessage(fmt.Sprint(discovery.DefaultTopN))

	return schema, nil
}

// newTool builds the toolfoundation descriptor for the search tool.
func newTool() (model.Tool, error) {
	schema, err := inputSchema()
	if err != nil {
		return model.Tool{}, err
	}
	openWorld := false
	return model.Tool{
		Tool: mcp.Tool{
			Name:        ToolName,
			Title:       "Search Python dependency manager docs",
			Description: toolDescription,
			InputSchema: schema,
			Annotations: &mcp.ToolAnnotations{
				Title:          "Search Python dependency manager docs",
				ReadOnlyHint:   true,
				IdempotentHint: true,
				OpenWorldHint:  &openWorld,
			},
		},
		Namespace: ToolNamespace,
		Version:   version.Version,
		Tags:      model.NormalizeTags([]string{"docs", "search", "python", "pip", "conda", "poetry", "uv"}),
	}, nil
}

// textResult wraps s as the single text block of a tool result.
func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: s}},
	}
}

func (r *Registry) handleSearch(ctx context.Context, req *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, any, error) {
	ctx = logging.WithContext(ctx, r.callLogger(req))
	return textResult(r.disc.Search(ctx, in.Request())), nil, nil
}

// callLogger scopes the registry logger to one tool call.
func (r *Registry) callLogger(req *mcp.CallToolRequest) *zap.Logger {
	logger := r.logger.With(zap.String("tool", ToolName))
	if req != nil && req.Session != nil {
		if id := req.Session.ID(); id != "" {
			logger = logger.With(zap.String("session", id))
		}
	}
	return logger
}
