package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// pluginMarkers are files/directories whose presence makes a directory a
// Claude Code plugin. A directory with none of them is silently skipped.
var pluginMarkers = []string{
	"plugin.json",
	"skills",
	"hooks",
	"agents",
	"commands",
	"README.md",
}

// excludedDirNames are directories that are never treated as plugins even
// when they happen to contain a marker.
var excludedDirNames = map[string]bool{
	".git":           true,
	".github":        true,
	".claude":        true,
	".claude-plugin": true,
	"node_modules":   true,
	"__pycache__":    true,
	".venv":          true,
	"tests":          true,
	"test":           true,
	"docs":           true,
	"doc":            true,
	"src":            true,
	"dist":           true,
	"build":          true,
}

// IsPluginDir reports whether a directory looks like a Claude Code plugin.
func IsPluginDir(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || excludedDirNames[name] {
		return false
	}
	for _, marker := range pluginMarkers {
		if pathExists(filepath.Join(path, marker)) {
			return true
		}
	}
	return false
}

// DiscoverPlugins scans the marketplace root for plugins. Each first-level
// directory is a marketplace; its plugins live either directly inside it or
// under a plugins/ subdirectory. A missing root is not an error (nothing to
// bridge yet). Results are sorted by (marketplace, plugin) so reports are
// reproducible; callers must not rely on ordering for correctness.
func DiscoverPlugins(marketplacesRoot string) ([]PluginRef, error) {
	marketplaces, err := os.ReadDir(marketplacesRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading marketplace root: %w", err)
	}

	var refs []PluginRef
	for _, mp := range marketplaces {
		if !mp.IsDir() || strings.HasPrefix(mp.Name(), ".") {
			continue
		}

		mpDir := filepath.Join(marketplacesRoot, mp.Name())
		pluginBase := filepath.Join(mpDir, "plugins")
		if !dirExists(pluginBase) {
			pluginBase = mpDir
		}

		entries, err := os.ReadDir(pluginBase)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			pluginDir := filepath.Join(pluginBase, entry.Name())
			if !IsPluginDir(pluginDir) {
				continue
			}
			abs, err := filepath.Abs(pluginDir)
			if err != nil {
				abs = pluginDir
			}
			refs = append(refs, PluginRef{
				Marketplace: mp.Name(),
				Plugin:      entry.Name(),
				SourcePath:  abs,
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Marketplace != refs[j].Marketplace {
			return refs[i].Marketplace < refs[j].Marketplace
		}
		return refs[i].Plugin < refs[j].Plugin
	})
	return refs, nil
}

// CommandFiles returns the names of a plugin's command markdown files,
// sorted. A plugin without a commands directory simply has none.
func CommandFiles(pluginDir string) []string {
	entries, err := os.ReadDir(filepath.Join(pluginDir, "commands"))
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
