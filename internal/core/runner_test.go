package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setupRunnablePlugin(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bash fixtures")
	}
	plugin := filepath.Join(t.TempDir(), "market__alpha")
	writeFile(t, filepath.Join(plugin, "plugin.json"), "{}")
	return plugin
}

func TestRunScript_ExitCodePropagation(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	writeFile(t, filepath.Join(plugin, "scripts", "fail.sh"), "#!/bin/bash\nexit 7\n")

	code, err := RunScript(plugin, "scripts/fail.sh", RunOptions{
		Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}
}

func TestRunScript_EnvironmentInjection(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(plugin, "scripts", "env.sh"),
		"#!/bin/bash\necho \"root=$CLAUDE_PLUGIN_ROOT project=$CLAUDE_PROJECT_DIR pwd=$(pwd)\"\n")

	var out bytes.Buffer
	code, err := RunScript(plugin, "scripts/env.sh", RunOptions{
		ProjectDir: project,
		Stdout:     &out,
		Stderr:     &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	got := out.String()
	if !strings.Contains(got, "root="+plugin) {
		t.Errorf("missing plugin root in %q", got)
	}
	if !strings.Contains(got, "project="+project) {
		t.Errorf("missing project dir in %q", got)
	}
	if !strings.Contains(got, "pwd="+project) {
		t.Errorf("child cwd not the project dir: %q", got)
	}
}

func TestRunScript_StdinData(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	writeFile(t, filepath.Join(plugin, "scripts", "echo.sh"), "#!/bin/bash\ncat\n")

	var out bytes.Buffer
	_, err := RunScript(plugin, "scripts/echo.sh", RunOptions{
		StdinData: `{"event":"PreToolUse"}`,
		Stdout:    &out,
		Stderr:    &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if got := out.String(); got != `{"event":"PreToolUse"}` {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunScript_ExtraArgs(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	writeFile(t, filepath.Join(plugin, "scripts", "args.sh"), "#!/bin/bash\necho \"$1 $2\"\n")

	var out bytes.Buffer
	_, err := RunScript(plugin, "scripts/args.sh", RunOptions{
		ExtraArgs: []string{"--verbose", "check"},
		Stdout:    &out,
		Stderr:    &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "--verbose check" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunScript_MissingScript(t *testing.T) {
	plugin := setupRunnablePlugin(t)

	_, err := RunScript(plugin, "scripts/nope.sh", RunOptions{})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
}

func TestRunScript_UnsupportedExtension(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	writeFile(t, filepath.Join(plugin, "scripts", "tool.rb"), "puts 1\n")

	_, err := RunScript(plugin, "scripts/tool.rb", RunOptions{})
	var unsupported *UnsupportedScriptError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want *UnsupportedScriptError", err)
	}
	if unsupported.Ext != ".rb" {
		t.Errorf("Ext = %q, want .rb", unsupported.Ext)
	}
}

func TestInterpreterFor(t *testing.T) {
	tests := []struct {
		path string
		want string // argv[0]; "" means unsupported
	}{
		{"check.sh", "bash"},
		{"hook", "bash"},
		{"tool.py", "python3"},
		{"tool.js", "node"},
		{"Tool.PS1", "powershell"},
		{"tool.rb", ""},
	}
	if runtime.GOOS == "windows" {
		t.Skip("unix interpreter table")
	}
	for _, tt := range tests {
		argv, err := interpreterFor(tt.path)
		if tt.want == "" {
			if err == nil {
				t.Errorf("interpreterFor(%q) = %v, want error", tt.path, argv)
			}
			continue
		}
		if err != nil {
			t.Errorf("interpreterFor(%q) error: %v", tt.path, err)
			continue
		}
		if argv[0] != tt.want {
			t.Errorf("interpreterFor(%q)[0] = %q, want %q", tt.path, argv[0], tt.want)
		}
	}
}

func TestRunScript_DefaultProjectDirIsCwd(t *testing.T) {
	plugin := setupRunnablePlugin(t)
	writeFile(t, filepath.Join(plugin, "scripts", "pwd.sh"), "#!/bin/bash\npwd\n")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	_, err = RunScript(plugin, "scripts/pwd.sh", RunOptions{
		Stdout: &out,
		Stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("RunScript() error: %v", err)
	}
	// Resolve both sides: macOS tempdirs are symlinked.
	gotPath, _ := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	wantPath, _ := filepath.EvalSymlinks(cwd)
	if gotPath != wantPath {
		t.Errorf("child pwd = %q, want %q", gotPath, wantPath)
	}
}
