package core

import (
	"path/filepath"
	"testing"
)

func TestParseCommandMd(t *testing.T) {
	dir := t.TempDir()

	t.Run("with frontmatter", func(t *testing.T) {
		path := filepath.Join(dir, "go.md")
		writeFile(t, path, "---\ndescription: start the thing\nargument-hint: <name>\n---\n\n# Go\n")

		meta, err := ParseCommandMd(path)
		if err != nil {
			t.Fatalf("ParseCommandMd() error: %v", err)
		}
		if meta.Description != "start the thing" {
			t.Errorf("Description = %q", meta.Description)
		}
		if meta.ArgumentHint != "<name>" {
			t.Errorf("ArgumentHint = %q", meta.ArgumentHint)
		}
	})

	t.Run("without frontmatter", func(t *testing.T) {
		path := filepath.Join(dir, "plain.md")
		writeFile(t, path, "# Just markdown\n")

		meta, err := ParseCommandMd(path)
		if err != nil {
			t.Fatalf("ParseCommandMd() error: %v", err)
		}
		if meta.Description != "" {
			t.Errorf("Description = %q, want empty", meta.Description)
		}
	})

	t.Run("malformed frontmatter", func(t *testing.T) {
		path := filepath.Join(dir, "broken.md")
		writeFile(t, path, "---\ndescription: [unclosed\n---\n")

		if _, err := ParseCommandMd(path); err == nil {
			t.Error("ParseCommandMd() = nil error, want parse failure")
		}
	})
}

func TestListCommands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "commands", "b.md"), "---\ndescription: second\n---\n")
	writeFile(t, filepath.Join(dir, "commands", "a.md"), "no frontmatter\n")

	commands := ListCommands(dir)
	if len(commands) != 2 {
		t.Fatalf("got %d commands, want 2", len(commands))
	}
	if commands[0].File != "a.md" || commands[0].Meta.Description != "" {
		t.Errorf("commands[0] = %+v", commands[0])
	}
	if commands[1].File != "b.md" || commands[1].Meta.Description != "second" {
		t.Errorf("commands[1] = %+v", commands[1])
	}
}
