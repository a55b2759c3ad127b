package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/mludv/agbridge/internal/core"
)

// pluginItem wraps a bridged plugin for the bubbles list.
// Implements list.DefaultItem (Title + Description + FilterValue).
type pluginItem struct {
	name      string
	path      string
	resources []string
}

func (i pluginItem) Title() string { return i.name }

func (i pluginItem) Description() string {
	if len(i.resources) == 0 {
		return "minimal"
	}
	return strings.Join(i.resources, ", ")
}

func (i pluginItem) FilterValue() string { return i.name }

// pluginsToItems converts bridged plugin paths to list items, attaching
// resource flags for the description line.
func pluginsToItems(names []string, dir func(name string) string) []list.Item {
	items := make([]list.Item, len(names))
	for i, name := range names {
		path := dir(name)
		items[i] = pluginItem{
			name:      name,
			path:      path,
			resources: core.ResourceFlags(path),
		}
	}
	return items
}
