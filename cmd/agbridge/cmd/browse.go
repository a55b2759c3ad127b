package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mludv/agbridge/internal/core"
	"github.com/mludv/agbridge/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse bridged plugins interactively",
	Long: `Open an interactive browser over the bridged plugins. Enter shows the
plugin README rendered in the terminal; / filters the list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.DefaultPaths()
		if err != nil {
			return err
		}
		return tui.Run(paths)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
