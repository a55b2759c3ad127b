package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupBridged(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolvePlugin(t *testing.T) {
	dir := setupBridged(t, "market__alpha-tools", "market__alpha-tools-extra", "market__zeta")

	t.Run("exact match wins over substring", func(t *testing.T) {
		got, err := ResolvePlugin(dir, "market__alpha-tools")
		if err != nil {
			t.Fatalf("ResolvePlugin() error: %v", err)
		}
		if filepath.Base(got) != "market__alpha-tools" {
			t.Errorf("resolved %q", got)
		}
	})

	t.Run("unique partial", func(t *testing.T) {
		got, err := ResolvePlugin(dir, "zeta")
		if err != nil {
			t.Fatalf("ResolvePlugin() error: %v", err)
		}
		if filepath.Base(got) != "market__zeta" {
			t.Errorf("resolved %q", got)
		}
	})

	t.Run("ambiguous lists candidates", func(t *testing.T) {
		_, err := ResolvePlugin(dir, "alpha")
		var ambiguous *AmbiguousError
		if !errors.As(err, &ambiguous) {
			t.Fatalf("error = %v, want *AmbiguousError", err)
		}
		if len(ambiguous.Candidates) != 2 {
			t.Errorf("candidates = %v, want both alpha plugins", ambiguous.Candidates)
		}
	})

	t.Run("suffix narrows ambiguity", func(t *testing.T) {
		got, err := ResolvePlugin(dir, "alpha-tools-extra")
		if err != nil {
			t.Fatalf("ResolvePlugin() error: %v", err)
		}
		if filepath.Base(got) != "market__alpha-tools-extra" {
			t.Errorf("resolved %q", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := ResolvePlugin(dir, "missing")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error = %v, want *NotFoundError", err)
		}
	})

	t.Run("missing bridge dir", func(t *testing.T) {
		_, err := ResolvePlugin(filepath.Join(dir, "nope"), "anything")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error = %v, want *NotFoundError", err)
		}
	})
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	plugin := filepath.Join(dir, "market__alpha")
	writeFile(t, filepath.Join(plugin, "README.md"), "# alpha")
	writeFile(t, filepath.Join(plugin, "skills", "review", "SKILL.md"), "# review")
	writeFile(t, filepath.Join(plugin, "commands", "go.md"), "---\ndescription: start things\nargument-hint: <target>\n---\nbody\n")
	writeFile(t, filepath.Join(plugin, "scripts", "check.sh"), "#!/bin/bash\n")

	// JSONC with comments and a trailing comma: must still parse.
	writeFile(t, filepath.Join(plugin, "hooks", "hooks.json"), `{
  // Validations before tool use.
  "hooks": {
    "PreToolUse": [
      {
        "matcher": "Bash",
        "hooks": [{"type": "command"}, {"type": "prompt"},],
      },
    ],
  },
}`)
	writeFile(t, filepath.Join(plugin, ".mcp.json"), `{
  "mcpServers": {
    "alpha-db": {"command": "alpha-mcp"}, // Local server.
  },
}`)

	summary, err := Inspect(plugin)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	wantFlags := []string{"skills", "hooks", "commands", "scripts", "mcp", "readme"}
	if len(summary.Resources) != len(wantFlags) {
		t.Errorf("resources = %v, want %v", summary.Resources, wantFlags)
	}

	if len(summary.Commands) != 1 {
		t.Fatalf("commands = %+v, want 1", summary.Commands)
	}
	if summary.Commands[0].Meta.Description != "start things" {
		t.Errorf("command description = %q", summary.Commands[0].Meta.Description)
	}
	if summary.Commands[0].Meta.ArgumentHint != "<target>" {
		t.Errorf("argument hint = %q", summary.Commands[0].Meta.ArgumentHint)
	}

	if len(summary.HookEvents) != 1 {
		t.Fatalf("hook events = %+v, want 1", summary.HookEvents)
	}
	he := summary.HookEvents[0]
	if he.Event != "PreToolUse" {
		t.Errorf("event = %q", he.Event)
	}
	if len(he.Matchers) != 1 || he.Matchers[0].Matcher != "Bash" || len(he.Matchers[0].Types) != 2 {
		t.Errorf("matchers = %+v", he.Matchers)
	}

	if len(summary.MCPServers) != 1 || summary.MCPServers[0] != "alpha-db" {
		t.Errorf("mcp servers = %v", summary.MCPServers)
	}
}

func TestInspect_MinimalPlugin(t *testing.T) {
	dir := t.TempDir()
	plugin := filepath.Join(dir, "market__tiny")
	writeFile(t, filepath.Join(plugin, "plugin.json"), "{}")

	summary, err := Inspect(plugin)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if len(summary.Resources) != 0 {
		t.Errorf("resources = %v, want none", summary.Resources)
	}
	if len(summary.HookEvents) != 0 || len(summary.MCPServers) != 0 {
		t.Errorf("unexpected hook/mcp data: %+v", summary)
	}
	if len(summary.Entries) != 1 || summary.Entries[0].Name != "plugin.json" {
		t.Errorf("entries = %+v", summary.Entries)
	}
}
