// Package core provides the business logic for agbridge.
// It has zero UI dependencies and is independently testable.
package core

import "strings"

// workflowPrefix marks workflow files created by the bridge. Only files
// carrying this prefix are ever removed from the shared workflows directory.
const workflowPrefix = "cb__"

// PluginRef identifies a plugin discovered in the Claude marketplace tree.
// The (Marketplace, Plugin) pair is the uniqueness key; refs are recomputed
// on every run and never persisted.
type PluginRef struct {
	Marketplace string
	Plugin      string
	SourcePath  string // Absolute path to the plugin directory
}

// BridgeName returns the destination directory name for the plugin link.
func (p PluginRef) BridgeName() string {
	return p.Marketplace + "__" + p.Plugin
}

// WorkflowName returns the destination name for a plugin command file.
// The compound (marketplace, plugin, filename) key keeps names from
// colliding across marketplaces.
func WorkflowName(marketplace, plugin, filename string) string {
	return workflowPrefix + marketplace + "__" + plugin + "__" + filename
}

// IsOwnedPluginName reports whether a bridge plugins directory entry was
// created by agbridge. Anything else is foreign and must not be touched.
func IsOwnedPluginName(name string) bool {
	return strings.Contains(name, "__")
}

// IsOwnedWorkflowName reports whether a workflows directory entry was
// created by agbridge.
func IsOwnedWorkflowName(name string) bool {
	return strings.HasPrefix(name, workflowPrefix)
}

// SyncOutcome classifies what the reconciler did with a single entry.
type SyncOutcome string

const (
	OutcomeAdded     SyncOutcome = "added"
	OutcomeUnchanged SyncOutcome = "unchanged"
	OutcomeRepaired  SyncOutcome = "repaired"
	OutcomeRemoved   SyncOutcome = "removed"
	OutcomeFailed    SyncOutcome = "failed"
)

// SyncEntry records the outcome for one destination artifact.
type SyncEntry struct {
	Name      string // Destination name (bridge name or workflow name)
	Target    string // Source path the entry should point at ("" for removals)
	Outcome   SyncOutcome
	Mechanism LinkMechanism // Set for added/repaired entries
	Err       error         // Set when Outcome is OutcomeFailed
}

// SyncReport summarizes a reconciliation run. Entries are sorted by name
// for stable output regardless of discovery order.
type SyncReport struct {
	Plugins   []SyncEntry
	Workflows []SyncEntry
}

// Count returns how many entries across both sections have the given outcome.
func (r *SyncReport) Count(outcome SyncOutcome) int {
	n := 0
	for _, e := range r.Plugins {
		if e.Outcome == outcome {
			n++
		}
	}
	for _, e := range r.Workflows {
		if e.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed returns all failed entries across both sections.
func (r *SyncReport) Failed() []SyncEntry {
	var failed []SyncEntry
	for _, e := range r.Plugins {
		if e.Outcome == OutcomeFailed {
			failed = append(failed, e)
		}
	}
	for _, e := range r.Workflows {
		if e.Outcome == OutcomeFailed {
			failed = append(failed, e)
		}
	}
	return failed
}

// HasFailures reports whether any entry failed.
func (r *SyncReport) HasFailures() bool {
	return r.Count(OutcomeFailed) > 0
}
