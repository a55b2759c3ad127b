package cmd

import (
	"os"
	"sort"

	"github.com/mludv/agbridge/internal/core"
)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// bridgedPluginNames returns the sorted names of owned entries in the
// bridge plugins directory. A missing directory means nothing is bridged.
func bridgedPluginNames(bridgeDir string) []string {
	entries, err := os.ReadDir(bridgeDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if core.IsOwnedPluginName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}
