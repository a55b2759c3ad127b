package core

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the well-known directories the bridge operates on.
// Everything is derived from the user home; there is no config file.
type Paths struct {
	Marketplaces    string // Claude marketplace root (source)
	BridgePlugins   string // Bridged plugin links (destination, fully managed)
	GlobalWorkflows string // Antigravity global workflows (destination, shared)
}

// DefaultPaths resolves the bridge directories under the current user's home.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting home directory: %w", err)
	}
	return PathsUnder(home), nil
}

// PathsUnder resolves the bridge directories under an explicit home
// directory. Useful for testing.
func PathsUnder(home string) Paths {
	return Paths{
		Marketplaces:    filepath.Join(home, ".claude", "plugins", "marketplaces"),
		BridgePlugins:   filepath.Join(home, ".gemini", "antigravity", "skills", "claude-bridge", "plugins"),
		GlobalWorkflows: filepath.Join(home, ".gemini", "antigravity", "global_workflows"),
	}
}
