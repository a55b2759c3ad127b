package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mludv/agbridge/internal/core"
	"github.com/mludv/agbridge/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync plugins from the Claude marketplace",
	Long: `Rescan the Claude marketplace and converge the bridged state.

Missing plugin links and workflow files are created, drifted links are
repaired, and entries whose source plugin disappeared are removed. Entries
not created by agbridge are never touched. A failure on one plugin is
reported and does not stop the rest of the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := core.DefaultPaths()
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, ui.Title.Render("Claude-Antigravity bridge sync"))
		fmt.Fprintf(os.Stdout, "  Platform : %s\n", runtime.GOOS)
		fmt.Fprintf(os.Stdout, "  Source   : %s\n", paths.Marketplaces)
		fmt.Fprintf(os.Stdout, "  Plugins  : %s\n", paths.BridgePlugins)
		fmt.Fprintf(os.Stdout, "  Workflows: %s\n", paths.GlobalWorkflows)
		fmt.Fprintln(os.Stdout)

		if !dirExists(paths.Marketplaces) {
			fmt.Fprintln(os.Stdout, ui.Warning.Render("Claude marketplace not found. Nothing to sync."))
			return nil
		}

		discovered, err := core.DiscoverPlugins(paths.Marketplaces)
		if err != nil {
			return err
		}

		report, err := core.NewReconciler().Sync(discovered, paths)
		if err != nil {
			return err
		}

		printEntries("plugin", report.Plugins)
		printEntries("workflow", report.Workflows)

		fmt.Fprintln(os.Stdout)
		fmt.Fprintf(os.Stdout, "Plugins  : %s\n", summarize(report.Plugins))
		fmt.Fprintf(os.Stdout, "Workflows: %s\n", summarize(report.Workflows))

		if failed := report.Count(core.OutcomeFailed); failed > 0 {
			return fmt.Errorf("%d entr%s failed to sync", failed, plural(failed, "y", "ies"))
		}
		return nil
	},
}

// printEntries writes one line per entry that changed state. Unchanged
// entries are summarized only.
func printEntries(kind string, entries []core.SyncEntry) {
	for _, e := range entries {
		switch e.Outcome {
		case core.OutcomeAdded:
			fmt.Fprintf(os.Stdout, "  %s link %s %s %s\n",
				ui.Success.Render("[+]"), kind, e.Name, ui.Muted.Render("("+string(e.Mechanism)+")"))
		case core.OutcomeRepaired:
			fmt.Fprintf(os.Stdout, "  %s repair %s %s %s\n",
				ui.Warning.Render("[~]"), kind, e.Name, ui.Muted.Render("("+string(e.Mechanism)+")"))
		case core.OutcomeRemoved:
			fmt.Fprintf(os.Stdout, "  %s remove %s %s\n", ui.Muted.Render("[-]"), kind, e.Name)
		case core.OutcomeFailed:
			fmt.Fprintf(os.Stdout, "  %s %s %s: %v\n", ui.Error.Render("[!]"), kind, e.Name, e.Err)
		}
	}
}

// summarize renders the counters line for one report section.
func summarize(entries []core.SyncEntry) string {
	counts := map[core.SyncOutcome]int{}
	for _, e := range entries {
		counts[e.Outcome]++
	}
	bridged := len(entries) - counts[core.OutcomeRemoved] - counts[core.OutcomeFailed]
	return fmt.Sprintf("%d bridged (%d new, %d existing, %d repaired, %d removed, %d failed)",
		bridged,
		counts[core.OutcomeAdded],
		counts[core.OutcomeUnchanged],
		counts[core.OutcomeRepaired],
		counts[core.OutcomeRemoved],
		counts[core.OutcomeFailed])
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
