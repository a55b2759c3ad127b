package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "agbridge",
	Short: "Bridge Claude Code marketplace plugins into Antigravity",
	Long: `agbridge links plugins from the Claude Code marketplace into the
Antigravity skill tree and exposes their commands as global workflows.

Run 'agbridge sync' to converge the bridged state, 'agbridge list' to see
what is bridged, and 'agbridge run' to execute plugin scripts with the
environment Claude Code would provide.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agbridge %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
