package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// NotFoundError is returned when a plugin name matches nothing in the
// bridged set, or when a script path is absent from a resolved plugin.
type NotFoundError struct {
	Kind string // "plugin" or "script"
	Name string
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "plugin"
	}
	return fmt.Sprintf("%s %q not found", kind, e.Name)
}

// AmbiguousError is returned when a partial plugin name matches more than
// one bridged plugin. The bridge never silently picks one.
type AmbiguousError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous plugin name %q (matches %s)", e.Name, strings.Join(e.Candidates, ", "))
}

// ResolvePlugin resolves a full or partial plugin name against the bridged
// plugins directory. An exact directory name wins; otherwise substring
// matching applies.
func ResolvePlugin(bridgePluginsDir, name string) (string, error) {
	exact := filepath.Join(bridgePluginsDir, name)
	if pathExists(exact) {
		return exact, nil
	}

	entries, err := os.ReadDir(bridgePluginsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Name: name}
		}
		return "", fmt.Errorf("reading bridge plugins directory: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if strings.Contains(entry.Name(), name) {
			candidates = append(candidates, entry.Name())
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return filepath.Join(bridgePluginsDir, candidates[0]), nil
	default:
		return "", &AmbiguousError{Name: name, Candidates: candidates}
	}
}

// EntrySummary is one top-level item of a plugin directory.
type EntrySummary struct {
	Name     string
	IsDir    bool
	Children int   // For directories
	Size     int64 // For files
}

// HookMatcher summarizes one matcher block of a hook event.
type HookMatcher struct {
	Matcher string
	Types   []string
}

// HookEvent summarizes the hooks registered for one event.
type HookEvent struct {
	Event    string
	Matchers []HookMatcher
}

// PluginSummary is the Inspector's shallow structural view of one bridged
// plugin. Nothing is parsed beyond existence checks, command frontmatter,
// and the hooks manifest.
type PluginSummary struct {
	Name       string
	Path       string
	Resources  []string // skills, hooks, agents, commands, scripts, mcp, readme
	Entries    []EntrySummary
	Commands   []CommandInfo
	HookEvents []HookEvent
	MCPServers []string
}

// resourceDirs are the well-known subpaths checked for the list/info flags.
var resourceDirs = []string{"skills", "hooks", "agents", "commands", "scripts"}

// ResourceFlags returns the resource tags present in a plugin directory.
func ResourceFlags(pluginPath string) []string {
	var flags []string
	for _, dir := range resourceDirs {
		if dirExists(filepath.Join(pluginPath, dir)) {
			flags = append(flags, dir)
		}
	}
	if fileExists(filepath.Join(pluginPath, ".mcp.json")) {
		flags = append(flags, "mcp")
	}
	if fileExists(filepath.Join(pluginPath, "README.md")) {
		flags = append(flags, "readme")
	}
	return flags
}

// Inspect produces the structural summary for a resolved plugin path.
func Inspect(pluginPath string) (*PluginSummary, error) {
	entries, err := os.ReadDir(pluginPath)
	if err != nil {
		return nil, fmt.Errorf("reading plugin directory: %w", err)
	}

	summary := &PluginSummary{
		Name:      filepath.Base(pluginPath),
		Path:      pluginPath,
		Resources: ResourceFlags(pluginPath),
		Commands:  ListCommands(pluginPath),
	}

	for _, entry := range entries {
		es := EntrySummary{Name: entry.Name(), IsDir: entry.IsDir()}
		if entry.IsDir() {
			children, err := os.ReadDir(filepath.Join(pluginPath, entry.Name()))
			if err == nil {
				es.Children = len(children)
			}
		} else if info, err := entry.Info(); err == nil {
			es.Size = info.Size()
		}
		summary.Entries = append(summary.Entries, es)
	}
	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Name < summary.Entries[j].Name
	})

	summary.HookEvents, _ = parseHooks(filepath.Join(pluginPath, "hooks", "hooks.json"))
	summary.MCPServers, _ = parseMCPServers(filepath.Join(pluginPath, ".mcp.json"))

	return summary, nil
}

// parseHooks reads a hooks.json manifest. Hook files in the wild carry
// comments and trailing commas, so the content is standardized with hujson
// before decoding. A missing or unparsable file yields no events.
func parseHooks(path string) ([]HookEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing %s: %w", path, err)
	}

	var doc struct {
		Hooks map[string]json.RawMessage `json:"hooks"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	events := doc.Hooks
	if events == nil {
		// Some plugins put the event map at the top level.
		if err := json.Unmarshal(std, &events); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	var result []HookEvent
	for event, raw := range events {
		if event == "description" {
			continue
		}
		var matchers []struct {
			Matcher string `json:"matcher"`
			Hooks   []struct {
				Type string `json:"type"`
			} `json:"hooks"`
		}
		if err := json.Unmarshal(raw, &matchers); err != nil {
			continue
		}
		he := HookEvent{Event: event}
		for _, m := range matchers {
			hm := HookMatcher{Matcher: m.Matcher}
			if hm.Matcher == "" {
				hm.Matcher = "*"
			}
			for _, h := range m.Hooks {
				hm.Types = append(hm.Types, h.Type)
			}
			he.Matchers = append(he.Matchers, hm)
		}
		result = append(result, he)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Event < result[j].Event })
	return result, nil
}

// parseMCPServers returns the server names declared in a plugin .mcp.json.
func parseMCPServers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing %s: %w", path, err)
	}

	var doc struct {
		MCPServers map[string]json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	names := make([]string, 0, len(doc.MCPServers))
	for name := range doc.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
