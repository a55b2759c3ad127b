package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/mludv/agbridge/internal/core"
	"github.com/mludv/agbridge/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <plugin>",
	Short: "Show details of a bridged plugin",
	Long: `Show the structure of a bridged plugin: resource directories, command
files with their descriptions, registered hooks, and MCP servers.

The plugin name may be partial; an ambiguous match lists the candidates
instead of picking one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.DefaultPaths()
		if err != nil {
			return err
		}

		pluginPath, err := core.ResolvePlugin(paths.BridgePlugins, args[0])
		if err != nil {
			var ambiguous *core.AmbiguousError
			if errors.As(err, &ambiguous) {
				fmt.Fprintf(os.Stderr, "Ambiguous plugin name %q. Matches:\n", ambiguous.Name)
				for _, c := range ambiguous.Candidates {
					fmt.Fprintf(os.Stderr, "    - %s\n", c)
				}
			}
			return err
		}

		if showReadme, _ := cmd.Flags().GetBool("readme"); showReadme {
			return renderReadme(pluginPath)
		}

		summary, err := core.Inspect(pluginPath)
		if err != nil {
			return err
		}
		printSummary(summary)
		return nil
	},
}

func printSummary(s *core.PluginSummary) {
	fmt.Fprintf(os.Stdout, "%s  %s\n", ui.Title.Render(s.Name), ui.Tag(s.Resources))
	fmt.Fprintf(os.Stdout, "  %s\n\n", ui.Muted.Render(s.Path))

	const maxEntries = 10
	for i, e := range s.Entries {
		if i == maxEntries {
			fmt.Fprintf(os.Stdout, "  %s\n", ui.Muted.Render(fmt.Sprintf("... and %d more", len(s.Entries)-maxEntries)))
			break
		}
		if e.IsDir {
			fmt.Fprintf(os.Stdout, "  %s/  %s\n", e.Name, ui.Muted.Render(fmt.Sprintf("(%d items)", e.Children)))
		} else {
			fmt.Fprintf(os.Stdout, "  %s  %s\n", e.Name, ui.Muted.Render(fmt.Sprintf("(%d bytes)", e.Size)))
		}
	}

	if len(s.Commands) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s\n", ui.Highlight.Render("Commands"))
		for _, c := range s.Commands {
			line := "  " + c.File
			if c.Meta.Description != "" {
				line += "  " + ui.Muted.Render(c.Meta.Description)
			}
			if c.Meta.ArgumentHint != "" {
				line += "  " + ui.Muted.Render("["+c.Meta.ArgumentHint+"]")
			}
			fmt.Fprintln(os.Stdout, line)
		}
	}

	if len(s.HookEvents) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s\n", ui.Highlight.Render("Hooks"))
		for _, he := range s.HookEvents {
			fmt.Fprintf(os.Stdout, "  %s:\n", he.Event)
			for _, m := range he.Matchers {
				fmt.Fprintf(os.Stdout, "    matcher=%s  types=[%s]\n", m.Matcher, strings.Join(m.Types, ", "))
			}
		}
	}

	if len(s.MCPServers) > 0 {
		fmt.Fprintf(os.Stdout, "\n%s\n", ui.Highlight.Render("MCP servers"))
		for _, name := range s.MCPServers {
			fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
	}
}

// renderReadme prints the plugin README through glamour.
func renderReadme(pluginPath string) error {
	data, err := os.ReadFile(filepath.Join(pluginPath, "README.md"))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plugin %s has no README.md", filepath.Base(pluginPath))
		}
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	rendered, err := r.Render(string(data))
	if err != nil {
		rendered = string(data)
	}
	fmt.Fprintln(os.Stdout, rendered)
	return nil
}

func init() {
	infoCmd.Flags().Bool("readme", false, "Render the plugin README instead of the summary")
	rootCmd.AddCommand(infoCmd)
}
