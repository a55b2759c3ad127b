package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mludv/agbridge/internal/core"
	"github.com/mludv/agbridge/internal/ui"
)

// ChildExitError carries a non-zero exit code from a plugin script. It is
// forwarded as the process exit code, not printed as an error.
type ChildExitError struct {
	Code int
}

func (e *ChildExitError) Error() string {
	return fmt.Sprintf("script exited with code %d", e.Code)
}

var runCmd = &cobra.Command{
	Use:   "run --plugin <name> --script <path> [-- extra args...]",
	Short: "Execute a plugin script with the bridged environment",
	Long: `Execute a script inside a bridged plugin the way Claude Code would:
CLAUDE_PLUGIN_ROOT and CLAUDE_PROJECT_DIR are injected, the interpreter is
chosen by extension (.sh, .py, .js, .ps1), and the child's exit code
becomes agbridge's own.

Arguments after -- are forwarded to the script verbatim.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.DefaultPaths()
		if err != nil {
			return err
		}

		plugin, _ := cmd.Flags().GetString("plugin")
		script, _ := cmd.Flags().GetString("script")
		projectDir, _ := cmd.Flags().GetString("project-dir")
		stdinData, _ := cmd.Flags().GetString("stdin-data")

		pluginRoot, err := core.ResolvePlugin(paths.BridgePlugins, plugin)
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

		fmt.Fprintf(os.Stderr, "%s %s %s\n", ui.Muted.Render("plugin:"), pluginRoot, ui.Muted.Render("script: "+script))

		code, err := core.RunScript(pluginRoot, script, core.RunOptions{
			ProjectDir: projectDir,
			StdinData:  stdinData,
			ExtraArgs:  args,
		})
		if err != nil {
			return err
		}
		if code != 0 {
			return &ChildExitError{Code: code}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("plugin", "", "Plugin name (full or partial)")
	runCmd.Flags().String("script", "", "Script path relative to the plugin root")
	runCmd.Flags().String("project-dir", "", "Project directory exposed to the script (default: current directory)")
	runCmd.Flags().String("stdin-data", "", "Data piped to the script's stdin")
	_ = runCmd.MarkFlagRequired("plugin")
	_ = runCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(runCmd)
}
