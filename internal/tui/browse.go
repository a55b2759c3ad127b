// Package tui implements the interactive plugin browser.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mludv/agbridge/internal/core"
)

// browseView represents the active screen.
type browseView int

const (
	viewList    browseView = iota // Plugin list (default)
	viewPreview                   // README preview overlay
)

// Model is the browse TUI: a filterable list of bridged plugins with a
// glamour-rendered README preview.
type Model struct {
	width  int
	height int

	activeView browseView

	list    list.Model
	preview viewport.Model

	// Cached glamour renderer (lazy-initialized on first preview).
	renderer *glamour.TermRenderer

	previewTitle string

	bridgeDir string
}

// New builds the browse model from the synced plugin set.
func New(paths core.Paths) (Model, error) {
	entries, err := os.ReadDir(paths.BridgePlugins)
	if err != nil && !os.IsNotExist(err) {
		return Model{}, fmt.Errorf("reading bridge plugins directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if core.IsOwnedPluginName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	l := list.New(
		pluginsToItems(names, func(name string) string {
			return filepath.Join(paths.BridgePlugins, name)
		}),
		list.NewDefaultDelegate(), 0, 0,
	)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetShowStatusBar(false)

	return Model{
		list:      l,
		preview:   viewport.New(0, 0),
		bridgeDir: paths.BridgePlugins,
	}, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeH := lipgloss.Height(m.headerView())
		m.list.SetSize(msg.Width, max(1, msg.Height-chromeH))
		m.preview.Width = max(1, msg.Width-4)
		m.preview.Height = max(1, msg.Height-chromeH-2)
		return m, nil

	case tea.KeyMsg:
		if m.activeView == viewList && m.list.SettingFilter() {
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.activeView == viewList {
				if item, ok := m.list.SelectedItem().(pluginItem); ok {
					m = m.openPreview(item)
				}
				return m, nil
			}

		case "esc", "backspace":
			if m.activeView == viewPreview {
				m.activeView = viewList
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeView {
	case viewPreview:
		m.preview, cmd = m.preview.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	header := m.headerView()
	if m.activeView == viewPreview {
		return header + "\n" + previewStyle.Render(m.preview.View())
	}
	return header + "\n" + m.list.View()
}

func (m Model) headerView() string {
	logo := logoStyle.Render("agbridge")
	hint := headerHintStyle.Render(fmt.Sprintf("  %d plugins bridged", len(m.list.Items())))
	if m.activeView == viewPreview {
		hint = headerHintStyle.Render("  " + m.previewTitle + "  [esc] back")
	}
	return logo + hint + "\n"
}

// openPreview loads the plugin README (or a structural fallback) into the
// preview viewport.
func (m Model) openPreview(item pluginItem) Model {
	m.previewTitle = item.name
	m.preview.SetContent(m.renderMarkdown(previewContent(item)))
	m.preview.GotoTop()
	m.activeView = viewPreview
	return m
}

func (m *Model) renderMarkdown(raw string) string {
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(20, m.width-6)),
		)
		if err != nil {
			return raw
		}
		m.renderer = r
	}
	rendered, err := m.renderer.Render(raw)
	if err != nil {
		return raw
	}
	return strings.TrimRight(rendered, "\n")
}

// previewContent prefers README.md, falling back to a generated summary.
func previewContent(item pluginItem) string {
	data, err := os.ReadFile(filepath.Join(item.path, "README.md"))
	if err == nil {
		return string(data)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nNo README.md in this plugin.\n\n", item.name)
	if len(item.resources) > 0 {
		b.WriteString("Resources: " + strings.Join(item.resources, ", ") + "\n")
	}
	for _, cmd := range core.ListCommands(item.path) {
		fmt.Fprintf(&b, "- `%s` %s\n", cmd.File, cmd.Meta.Description)
	}
	return b.String()
}

// Run launches the browse TUI in the alternate screen.
func Run(paths core.Paths) error {
	model, err := New(paths)
	if err != nil {
		return err
	}
	if len(model.list.Items()) == 0 {
		fmt.Println(mutedStyle.Render("No plugins bridged yet. Run 'agbridge sync' first."))
		return nil
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
