package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// seedRepo lays out a minimal tools repo: two skills (one with a
// script), a hook and saved state targeting them.
func seedRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{
		"skills/catchup/bin",
		"skills/scratch",
		"hooks/pre-commit",
	} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "skills/catchup/bin/sync"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	state := `{
  "version": 1,
  "projects": [],
  "assignments": {
    "catchup": {"mode": "global", "on_path_scripts": ["sync"]},
    "scratch": {"mode": "skip"},
    "pre-commit": {"mode": "global"}
  }
}`
	if err := os.MkdirAll(filepath.Join(root, ".rig"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".rig", "state.json"), []byte(state), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, raw)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected a data envelope; got:\n%s", raw)
	}
	return data
}

func TestPlanCmd(t *testing.T) {
	t.Parallel()

	root := seedRepo(t)
	out, err := runCmd(t, "--repo-root", root, "plan")
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, out)
	}
	data := mustJSON(t, out)

	items, _ := data["global_items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected catchup and pre-commit in the global pass; got %v", data["global_items"])
	}
	scripts, _ := data["on_path_scripts"].(map[string]any)
	if _, ok := scripts["catchup"]; !ok {
		t.Fatalf("on_path_scripts missing catchup: %v", data["on_path_scripts"])
	}
	if data["empty"] != false {
		t.Fatalf("plan must not be empty")
	}
}

func TestStateCmd(t *testing.T) {
	t.Parallel()

	root := seedRepo(t)
	out, err := runCmd(t, "--repo-root", root, "state", "--pretty")
	if err != nil {
		t.Fatalf("state: %v\n%s", err, out)
	}
	data := mustJSON(t, out)
	assignments, _ := data["assignments"].(map[string]any)
	if len(assignments) != 3 {
		t.Fatalf("expected 3 saved assignments; got %v", data["assignments"])
	}
}

func TestDocsCmd(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "docs")
	if err != nil {
		t.Fatalf("docs: %v\n%s", err, out)
	}
	data := mustJSON(t, out)
	topics, _ := data["topics"].([]any)
	if len(topics) == 0 {
		t.Fatalf("expected embedded topics; got %v", data)
	}

	raw, err := runCmd(t, "docs", "quickstart", "--raw")
	if err != nil {
		t.Fatalf("docs quickstart: %v", err)
	}
	if !strings.Contains(raw, "# Quickstart") {
		t.Fatalf("raw topic body missing:\n%s", raw)
	}

	if _, err := runCmd(t, "docs", "no-such-topic"); err == nil {
		t.Fatalf("unknown topic must fail")
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v\n%s", err, out)
	}
	data := mustJSON(t, out)
	if data["version"] != "dev" {
		t.Fatalf("got %v", data["version"])
	}
}

func TestPlanCmd_MissingRepo(t *testing.T) {
	t.Parallel()

	if _, err := runCmd(t, "--repo-root", filepath.Join(t.TempDir(), "gone"), "plan"); err == nil {
		t.Fatalf("missing repo root must fail")
	}
}
