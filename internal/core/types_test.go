package core

import "testing"

func TestWorkflowName_Injective(t *testing.T) {
	triples := [][3]string{
		{"market", "alpha", "go.md"},
		{"market", "alpha", "stop.md"},
		{"market", "beta", "go.md"},
		{"other", "alpha", "go.md"},
		{"other", "beta", "stop.md"},
	}

	seen := make(map[string][3]string)
	for _, tr := range triples {
		name := WorkflowName(tr[0], tr[1], tr[2])
		if prev, ok := seen[name]; ok {
			t.Errorf("WorkflowName collision: %v and %v both map to %q", prev, tr, name)
		}
		seen[name] = tr
	}
}

func TestOwnershipConventions(t *testing.T) {
	tests := []struct {
		name     string
		plugin   bool
		workflow bool
	}{
		{"market__alpha", true, false},
		{"handmade", false, false},
		{"cb__market__alpha__go.md", true, true},
		{"cb-custom.md", false, false},
		{"cb__x", true, true},
	}
	for _, tt := range tests {
		if got := IsOwnedPluginName(tt.name); got != tt.plugin {
			t.Errorf("IsOwnedPluginName(%q) = %v, want %v", tt.name, got, tt.plugin)
		}
		if got := IsOwnedWorkflowName(tt.name); got != tt.workflow {
			t.Errorf("IsOwnedWorkflowName(%q) = %v, want %v", tt.name, got, tt.workflow)
		}
	}
}

func TestBridgeName(t *testing.T) {
	ref := PluginRef{Marketplace: "market", Plugin: "alpha"}
	if got := ref.BridgeName(); got != "market__alpha" {
		t.Errorf("BridgeName() = %q, want %q", got, "market__alpha")
	}
}
