package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mludv/agbridge/cmd/agbridge/cmd"
	"github.com/mludv/agbridge/internal/core"
)

func main() {
	os.Exit(run())
}

// run maps command errors to exit codes: a forwarded script exit code is
// propagated silently, unsupported script types exit 2, everything else
// (not found, ambiguous, sync failures) exits 1.
func run() int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var child *cmd.ChildExitError
	if errors.As(err, &child) {
		return child.Code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var unsupported *core.UnsupportedScriptError
	if errors.As(err, &unsupported) {
		return 2
	}
	return 1
}
