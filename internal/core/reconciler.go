package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Reconciler converges the destination tree to match the discovered
// plugin set. It is the sole writer of the bridge-owned subset of that
// tree; foreign entries are never touched.
type Reconciler struct {
	linker *Linker
}

// NewReconciler creates a Reconciler using the default link strategies.
func NewReconciler() *Reconciler {
	return &Reconciler{linker: NewLinker()}
}

// NewReconcilerWithLinker creates a Reconciler with an injected Linker.
// Useful for testing failure isolation.
func NewReconcilerWithLinker(linker *Linker) *Reconciler {
	return &Reconciler{linker: linker}
}

// Sync computes and applies the minimal set of create/repair/remove
// operations so that the owned entries under paths exactly mirror the
// discovered plugins and their command files. A failure on one entry is
// recorded in the report and does not abort the rest; running Sync twice
// with an unchanged discovered set leaves the second report all-unchanged.
func (r *Reconciler) Sync(discovered []PluginRef, paths Paths) (*SyncReport, error) {
	if err := os.MkdirAll(paths.BridgePlugins, 0o755); err != nil {
		return nil, fmt.Errorf("creating bridge plugins directory: %w", err)
	}
	if err := os.MkdirAll(paths.GlobalWorkflows, 0o755); err != nil {
		return nil, fmt.Errorf("creating workflows directory: %w", err)
	}

	report := &SyncReport{}

	// Desired plugin links, keyed by destination name. Discovery order is
	// irrelevant; maps plus a final sort keep the report stable.
	desired := make(map[string]PluginRef, len(discovered))
	for _, ref := range discovered {
		desired[ref.BridgeName()] = ref
	}

	report.Plugins = append(report.Plugins,
		r.removeStale(paths.BridgePlugins, IsOwnedPluginName, func(name string) bool {
			_, ok := desired[name]
			return ok
		})...)

	// healthy tracks plugins whose link converged; only their command
	// files get workflow entries created this run.
	healthy := make([]PluginRef, 0, len(discovered))
	for name, ref := range desired {
		dest := filepath.Join(paths.BridgePlugins, name)
		entry := r.ensure(dest, ref.SourcePath, LinkDir, name)
		report.Plugins = append(report.Plugins, entry)
		if entry.Outcome != OutcomeFailed {
			healthy = append(healthy, ref)
		}
	}

	// Stale-workflow removal keys off every discovered plugin, not just the
	// healthy ones: a plugin whose link failed is skipped, not torn down.
	keep := make(map[string]bool)
	for _, ref := range discovered {
		for _, file := range CommandFiles(ref.SourcePath) {
			keep[WorkflowName(ref.Marketplace, ref.Plugin, file)] = true
		}
	}
	report.Workflows = append(report.Workflows,
		r.removeStale(paths.GlobalWorkflows, IsOwnedWorkflowName, func(name string) bool {
			return keep[name]
		})...)

	desiredWorkflows := make(map[string]string) // name -> source file
	for _, ref := range healthy {
		for _, file := range CommandFiles(ref.SourcePath) {
			name := WorkflowName(ref.Marketplace, ref.Plugin, file)
			desiredWorkflows[name] = filepath.Join(ref.SourcePath, "commands", file)
		}
	}
	for name, source := range desiredWorkflows {
		dest := filepath.Join(paths.GlobalWorkflows, name)
		report.Workflows = append(report.Workflows, r.ensure(dest, source, LinkFile, name))
	}

	sortEntries(report.Plugins)
	sortEntries(report.Workflows)
	return report, nil
}

// ensure converges a single destination entry and classifies the result.
func (r *Reconciler) ensure(dest, target string, kind LinkKind, name string) SyncEntry {
	existed := pathExists(dest)
	created, mech, err := r.linker.EnsureLink(dest, target, kind)
	switch {
	case err != nil:
		return SyncEntry{Name: name, Target: target, Outcome: OutcomeFailed, Err: err}
	case created && existed:
		return SyncEntry{Name: name, Target: target, Outcome: OutcomeRepaired, Mechanism: mech}
	case created:
		return SyncEntry{Name: name, Target: target, Outcome: OutcomeAdded, Mechanism: mech}
	default:
		return SyncEntry{Name: name, Target: target, Outcome: OutcomeUnchanged}
	}
}

// removeStale deletes owned entries in dir that are no longer wanted.
// Foreign entries (not matching the ownership convention) are skipped
// unconditionally, even when their names collide in prefix.
func (r *Reconciler) removeStale(dir string, owned func(string) bool, wanted func(string) bool) []SyncEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var removed []SyncEntry
	for _, entry := range entries {
		name := entry.Name()
		if !owned(name) || wanted(name) {
			continue
		}
		if err := removeArtifact(filepath.Join(dir, name)); err != nil {
			removed = append(removed, SyncEntry{Name: name, Outcome: OutcomeFailed, Err: err})
			continue
		}
		removed = append(removed, SyncEntry{Name: name, Outcome: OutcomeRemoved})
	}
	return removed
}

func sortEntries(entries []SyncEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}
