package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonwraymond/pydepdocs/indextest"
	"github.com/jonwraymond/pydepdocs/internal/version"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"version"}, &out); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.HasPrefix(out.String(), version.Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run([]string{"frobnicate"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRun_SearchLocal(t *testing.T) {
	dir := indextest.Build(t, indextest.SampleDocs())

	var out bytes.Buffer
	err := run([]string{"search", "--index-dir", dir, "-p", "uv", "-n", "2", "working", "on", "projects"}, &out)
	if err != nil {
		t.Fatalf("run(search) error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Found 1 result(s) for 'working on projects' (filtered by uv):") {
		t.Errorf("search output:\n%s", out.String())
	}
}

func TestRun_SearchEmptyQuery(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"search", "--index-dir", t.TempDir()}, &out); err != nil {
		t.Fatalf("run(search) error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "Search query cannot be empty" {
		t.Errorf("search output = %q", out.String())
	}
}

func TestRun_SearchMissingIndex(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"search", "--index-dir", "/nonexistent/index", "lock"}, &out); err != nil {
		t.Fatalf("run(search) error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "Search failed: search index not found at /nonexistent/index") {
		t.Errorf("search output = %q", out.String())
	}
}

func TestRun_SearchInvalidPackage(t *testing.T) {
	if err := run([]string{"search", "-p", "pipenv", "lock"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown package")
	}
}

func TestRun_ServeFailsWithoutIndex(t *testing.T) {
	if err := run([]string{"serve", "--index-dir", "/nonexistent/index"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected serve to fail fast without an index")
	}
}

func TestRun_Tool(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"tool"}, &out); err != nil {
		t.Fatalf("run(tool) error = %v", err)
	}

	var desc struct {
		ID          string         `json:"id"`
		Name        string         `json:"name"`
		InputSchema map[string]any `json:"inputSchema"`
	}
	if err := json.Unmarshal(out.Bytes(), &desc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if desc.Name != "search_py_dep_man_docs" || desc.ID != "pydepdocs:search_py_dep_man_docs" {
		t.Errorf("descriptor = %+v", desc)
	}
	if _, ok := desc.InputSchema["properties"]; !ok {
		t.Errorf("descriptor schema missing properties: %v", desc.InputSchema)
	}
}

func TestRun_ToolYAML(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"tool", "--format", "yaml"}, &out); err != nil {
		t.Fatalf("run(tool --format yaml) error = %v", err)
	}
	if !strings.Contains(out.String(), "name: search_py_dep_man_docs") {
		t.Errorf("yaml output:\n%s", out.String())
	}
	if err := run([]string{"tool", "--format", "toml"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
