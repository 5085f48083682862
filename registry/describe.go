package registry

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolSummary is a flat, printable view of the tool descriptor.
type ToolSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Namespace   string         `json:"namespace"`
	Version     string         `json:"version,omitempty"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty"`
	InputSchema any            `json:"inputSchema"`
}

// Describe summarizes the registered search tool.
func (r *Registry) Describe() ToolSummary {
	tool := r.tool
	tags := make([]string, len(tool.Tags))
	copy(tags, tool.Tags)

	return ToolSummary{
		ID:          tool.ToolID(),
		Name:        tool.Name,
		Namespace:   tool.Namespace,
		Version:     tool.Version,
		Description: tool.Description,
		Tags:        tags,
		Annotations: annotationsFromTool(tool.Annotations),
		InputSchema: tool.InputSchema,
	}
}

func annotationsFromTool(ann *mcp.ToolAnnotations) map[string]any {
	if ann == nil {
		return nil
	}
	out := map[string]any{}
	if ann.DestructiveHint != nil {
		out["destructiveHint"] = *ann.DestructiveHint
	}
	if ann.OpenWorldHint != nil {
		out["openWorldHint"] = *ann.OpenWorldHint
	}
	out["idempotentHint"] = ann.IdempotentHint
	out["readOnlyHint"] = ann.ReadOnlyHint
	if ann.Title != "" {
		out["title"] = ann.Title
	}
	return out
}
