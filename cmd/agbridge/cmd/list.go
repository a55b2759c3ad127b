package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mludv/agbridge/internal/core"
	"github.com/mludv/agbridge/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bridged plugins",
	Long: `List the plugins currently bridged into Antigravity, with flags for
the resource types each one provides (skills, hooks, agents, commands,
scripts, mcp, readme).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.DefaultPaths()
		if err != nil {
			return err
		}

		names := bridgedPluginNames(paths.BridgePlugins)
		if len(names) == 0 {
			fmt.Fprintln(os.Stdout, ui.Muted.Render("No plugins bridged yet. Run 'agbridge sync' first."))
			return nil
		}

		showCommands, _ := cmd.Flags().GetBool("commands")

		fmt.Fprintf(os.Stdout, "%s\n\n", ui.Title.Render(fmt.Sprintf("%d bridged plugins", len(names))))
		for _, name := range names {
			pluginPath := filepath.Join(paths.BridgePlugins, name)
			flags := core.ResourceFlags(pluginPath)
			fmt.Fprintf(os.Stdout, "  %s  %s\n", ui.Highlight.Render(name), ui.Tag(flags))

			if showCommands {
				for _, c := range core.ListCommands(pluginPath) {
					desc := c.Meta.Description
					if desc == "" {
						desc = "no description"
					}
					fmt.Fprintf(os.Stdout, "      %s  %s\n", c.File, ui.Muted.Render(desc))
				}
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("commands", false, "Show each plugin's command files with descriptions")
	rootCmd.AddCommand(listCmd)
}
