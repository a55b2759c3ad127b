package core

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables injected into plugin scripts so they behave as if
// launched by Claude Code itself.
const (
	EnvPluginRoot = "CLAUDE_PLUGIN_ROOT"
	EnvProjectDir = "CLAUDE_PROJECT_DIR"
)

// UnsupportedScriptError is returned for script extensions outside the
// recognized interpreter set.
type UnsupportedScriptError struct {
	Path string
	Ext  string
}

func (e *UnsupportedScriptError) Error() string {
	return fmt.Sprintf("unsupported script type %q: %s", e.Ext, e.Path)
}

// RunOptions configures a script execution.
type RunOptions struct {
	ProjectDir string   // Working directory for the child; cwd when empty
	StdinData  string   // Piped to the child when non-empty
	ExtraArgs  []string // Forwarded to the script verbatim

	// Streams default to the process's own when nil.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// interpreterFor maps a script extension to its interpreter argv prefix.
// The mapping is a closed set; anything else is unsupported.
func interpreterFor(scriptPath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(scriptPath)) {
	case ".sh", "":
		return []string{bashExecutable()}, nil
	case ".py":
		return []string{"python3"}, nil
	case ".js":
		return []string{"node"}, nil
	case ".ps1":
		return []string{"powershell", "-ExecutionPolicy", "Bypass", "-File"}, nil
	default:
		return nil, &UnsupportedScriptError{Path: scriptPath, Ext: filepath.Ext(scriptPath)}
	}
}

// bashExecutable prefers Git Bash on Windows, where a bare "bash" is often
// the WSL launcher.
func bashExecutable() string {
	if runtime.GOOS != "windows" {
		return "bash"
	}
	programFiles := os.Getenv("ProgramFiles")
	if programFiles == "" {
		programFiles = `C:\Program Files`
	}
	gitBash := filepath.Join(programFiles, "Git", "bin", "bash.exe")
	if fileExists(gitBash) {
		return gitBash
	}
	return "bash"
}

// RunScript executes a script inside a resolved plugin directory with the
// bridged environment and returns the child's exit code. The call blocks
// until the child terminates; no timeout is imposed here.
func RunScript(pluginRoot, script string, opts RunOptions) (int, error) {
	scriptPath := filepath.Join(pluginRoot, script)
	if !fileExists(scriptPath) {
		return 0, &NotFoundError{Kind: "script", Name: script}
	}

	argv, err := interpreterFor(scriptPath)
	if err != nil {
		return 0, err
	}
	argv = append(argv, scriptPath)
	argv = append(argv, opts.ExtraArgs...)

	projectDir := opts.ProjectDir
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return 0, fmt.Errorf("getting current directory: %w", err)
		}
		projectDir = cwd
	}
	projectDir, err = filepath.Abs(projectDir)
	if err != nil {
		return 0, fmt.Errorf("resolving project directory: %w", err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = projectDir
	cmd.Env = append(os.Environ(),
		EnvPluginRoot+"="+pluginRoot,
		EnvProjectDir+"="+projectDir,
	)

	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	switch {
	case opts.StdinData != "":
		cmd.Stdin = strings.NewReader(opts.StdinData)
	case opts.Stdin != nil:
		cmd.Stdin = opts.Stdin
	default:
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			// Non-zero child exit is forwarded, not wrapped.
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("launching %s: %w", scriptPath, err)
	}
	return 0, nil
}
