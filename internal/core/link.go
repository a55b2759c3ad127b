package core

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// LinkKind distinguishes directory links (plugins) from file links
// (workflow files).
type LinkKind int

const (
	LinkDir LinkKind = iota
	LinkFile
)

// LinkMechanism names the strategy that produced a destination artifact.
type LinkMechanism string

const (
	MechanismSymlink  LinkMechanism = "symlink"
	MechanismJunction LinkMechanism = "junction"
	MechanismHardlink LinkMechanism = "hardlink"
	MechanismCopy     LinkMechanism = "copy"
)

// LinkError is returned when every link mechanism has been exhausted for a
// destination. It is per-entry: the sync run continues past it.
type LinkError struct {
	Dest     string
	Target   string
	Attempts []error
}

func (e *LinkError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("linking %s -> %s: %s", e.Dest, e.Target, strings.Join(msgs, "; "))
}

// linkStrategy is one mechanism for materializing a link. Strategies are
// tried in order until one succeeds.
type linkStrategy struct {
	mechanism LinkMechanism
	applies   func(kind LinkKind) bool
	create    func(dest, target string, kind LinkKind) error
}

// Linker creates destination artifacts through an ordered list of
// strategies. The zero set is platform-dependent; tests inject their own.
type Linker struct {
	strategies []linkStrategy
}

// NewLinker returns a Linker with the default strategy order:
// symlink, then (on Windows) junction/hardlink via mklink, then deep copy.
func NewLinker() *Linker {
	strategies := []linkStrategy{symlinkStrategy()}
	if runtime.GOOS == "windows" {
		strategies = append(strategies, mklinkStrategy())
	}
	strategies = append(strategies, copyStrategy())
	return &Linker{strategies: strategies}
}

func symlinkStrategy() linkStrategy {
	return linkStrategy{
		mechanism: MechanismSymlink,
		applies:   func(LinkKind) bool { return true },
		create: func(dest, target string, _ LinkKind) error {
			return os.Symlink(target, dest)
		},
	}
}

// mklinkStrategy shells out to cmd.exe: junctions for directories need no
// elevated privileges, hard links cover files on the same volume.
func mklinkStrategy() linkStrategy {
	return linkStrategy{
		mechanism: MechanismJunction,
		applies:   func(LinkKind) bool { return true },
		create: func(dest, target string, kind LinkKind) error {
			flag := "/J"
			if kind == LinkFile {
				flag = "/H"
			}
			cmd := exec.Command("cmd", "/c", "mklink", flag, dest, target)
			if out, err := cmd.CombinedOutput(); err != nil {
				return fmt.Errorf("mklink %s: %v: %s", flag, err, strings.TrimSpace(string(out)))
			}
			return nil
		},
	}
}

func copyStrategy() linkStrategy {
	return linkStrategy{
		mechanism: MechanismCopy,
		applies:   func(LinkKind) bool { return true },
		create: func(dest, target string, kind LinkKind) error {
			if kind == LinkFile {
				return copyFile(target, dest)
			}
			return copyDirectory(target, dest)
		},
	}
}

// EnsureLink makes dest reference target, creating it if missing and
// replacing it if it points elsewhere. It is idempotent: a dest that
// already resolves to target is left alone and reported as not created.
// The caller is responsible for only passing owned destinations.
func (l *Linker) EnsureLink(dest, target string, kind LinkKind) (created bool, mech LinkMechanism, err error) {
	if ResolvesTo(dest, target) {
		return false, "", nil
	}
	if pathExists(dest) {
		if err := removeArtifact(dest); err != nil {
			return false, "", fmt.Errorf("replacing %s: %w", dest, err)
		}
	}

	var attempts []error
	for _, s := range l.strategies {
		if !s.applies(kind) {
			continue
		}
		err := s.create(dest, target, kind)
		if err != nil && os.IsExist(err) {
			// Raced with an external writer; clear and retry this
			// mechanism once.
			_ = removeArtifact(dest)
			err = s.create(dest, target, kind)
		}
		if err == nil {
			return true, s.mechanism, nil
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", s.mechanism, err))
	}
	return false, "", &LinkError{Dest: dest, Target: target, Attempts: attempts}
}

// ResolvesTo reports whether dest already stands in for target. A symlink
// resolves iff it points at target; a plain file or directory at dest is
// treated as a copy-mechanism artifact and considered current.
func ResolvesTo(dest, target string) bool {
	info, err := os.Lstat(dest)
	if err != nil {
		return false
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return true
	}
	linked, err := os.Readlink(dest)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(linked) {
		linked = filepath.Join(filepath.Dir(dest), linked)
	}
	return filepath.Clean(linked) == filepath.Clean(target)
}

// removeArtifact deletes a link, file, or copied tree at path.
func removeArtifact(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		return os.Remove(path)
	}
	return os.RemoveAll(path)
}

// copyDirectory copies the contents of src to dst, skipping VCS metadata.
func copyDirectory(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}
		return copyFile(path, dstPath)
	})
}

// copyFile copies a single file from src to dst, preserving the mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
