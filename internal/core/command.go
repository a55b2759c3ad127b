package core

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CommandMeta is the YAML frontmatter of a plugin command markdown file.
type CommandMeta struct {
	Description  string `yaml:"description"`
	ArgumentHint string `yaml:"argument-hint,omitempty"`
}

// CommandInfo pairs a command file name with its parsed frontmatter.
type CommandInfo struct {
	File string
	Meta CommandMeta
}

// ParseCommandMd reads the YAML frontmatter from a command markdown file.
// A file without frontmatter is a valid command with empty metadata.
func ParseCommandMd(path string) (*CommandMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return &CommandMeta{}, nil
	}

	var frontmatter strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		frontmatter.WriteString(line)
		frontmatter.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta CommandMeta
	if err := yaml.Unmarshal([]byte(frontmatter.String()), &meta); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	return &meta, nil
}

// ListCommands returns the commands of a plugin with parsed metadata.
// Files with malformed frontmatter still appear, with empty metadata.
func ListCommands(pluginDir string) []CommandInfo {
	var commands []CommandInfo
	for _, file := range CommandFiles(pluginDir) {
		info := CommandInfo{File: file}
		if meta, err := ParseCommandMd(filepath.Join(pluginDir, "commands", file)); err == nil {
			info.Meta = *meta
		}
		commands = append(commands, info)
	}
	return commands
}
