package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGitHubLink(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		docsPath string
		path     string
		want     string
	}{
		{"unknown repo", "unknown", "docs", "uv/guide/x", ""},
		{"empty repo", "", "docs", "uv/guide/x", ""},
		{"strips package segment", "astral-sh/uv", "docs", "uv/guide/x", "https://github.com/astral-sh/uv/tree/main/docs/guide/x"},
		{"nested docs path", "pypa/pip", "docs/html", "pip/cli/pip_install.rst", "https://github.com/pypa/pip/tree/main/docs/html/cli/pip_install.rst"},
		{"no slash in path", "python-poetry/poetry", "docs", "cli.md", "https://github.com/python-poetry/poetry/tree/main/docs/cli.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GitHubLink(tt.repo, tt.docsPath, tt.path))
		})
	}
}
