// Package templates installs the bundled project templates into a target directory.
package templates

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/erg0nix/ralphed/internal/core"
)

const (
	LogsDir          = "logs"
	PlaceholderFile  = ".gitkeep"
	RequirementsFile = "PRD.md"
	PlanFile         = "IMPLEMENTATION_PLAN.md"
	ScriptFile       = "ralphed.sh"
)

// Entry maps a bundled template onto its name in the target directory.
type Entry struct {
	Src  string
	Dest string
}

// Manifest lists the templates copied into every project. Dotfiles are stored
// without the leading dot and renamed on copy.
var Manifest = []Entry{
	{Src: ScriptFile, Dest: ScriptFile},
	{Src: "gitignore", Dest: ".gitignore"},
	{Src: "AGENTS.md", Dest: "AGENTS.md"},
	{Src: PlanFile, Dest: PlanFile},
	{Src: "PROMPT_plan.md", Dest: "PROMPT_plan.md"},
	{Src: "PROMPT_build.md", Dest: "PROMPT_build.md"},
}

// PrepareTarget creates dir and its logs subdirectory and writes the logs placeholder.
// It reports whether dir itself had to be created.
func PrepareTarget(dir string) (bool, error) {
	created := false
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		created = true
	}

	logsDir := filepath.Join(dir, LogsDir)
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", logsDir, err)
	}

	placeholder := filepath.Join(logsDir, PlaceholderFile)
	if err := os.WriteFile(placeholder, nil, 0o644); err != nil {
		return created, fmt.Errorf("write %s: %w", placeholder, err)
	}

	return created, nil
}

// InstallResult holds the destination names that were written and the sources that were absent.
type InstallResult struct {
	Created []string
	Skipped []string
}

// Install copies every Manifest entry from fsys into dir, overwriting existing files.
// Missing sources are skipped.
func Install(fsys fs.FS, dir string) (InstallResult, error) {
	var result InstallResult

	for _, e := range Manifest {
		ok, err := installEntry(fsys, dir, e)
		if err != nil {
			return result, err
		}
		if !ok {
			result.Skipped = append(result.Skipped, e.Src)
			continue
		}
		result.Created = append(result.Created, e.Dest)
	}

	return result, nil
}

func installEntry(fsys fs.FS, dir string, e Entry) (bool, error) {
	data, err := fs.ReadFile(fsys, e.Src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read template %s: %w", e.Src, err)
	}

	dest := filepath.Join(dir, e.Dest)
	if err := writeFile(dest, data, fileMode(e.Dest)); err != nil {
		return false, err
	}
	return true, nil
}

func fileMode(name string) fs.FileMode {
	if strings.HasSuffix(name, ".sh") {
		return 0o755
	}
	return 0o644
}

// writeFile writes data and then forces perm, since os.WriteFile keeps the mode of an existing file.
func writeFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// Placement says what PlaceRequirements did with the requirements document.
type Placement int

const (
	// PlacementNone means nothing was written: the supplied path does not exist,
	// or no path was supplied and the template is not bundled.
	PlacementNone Placement = iota
	// PlacementDirectory means a folder was supplied and is referenced in place.
	PlacementDirectory
	// PlacementCopied means the supplied file was copied to RequirementsFile.
	PlacementCopied
	// PlacementTemplate means the bundled template was copied to RequirementsFile.
	PlacementTemplate
)

// PlaceRequirements puts the requirements document into dir according to req.
func PlaceRequirements(fsys fs.FS, dir string, req core.Requirements) (Placement, error) {
	dest := filepath.Join(dir, RequirementsFile)

	switch {
	case req.Exists && req.IsDir:
		return PlacementDirectory, nil
	case req.Exists:
		if err := copyFile(req.Path, dest); err != nil {
			return PlacementNone, err
		}
		return PlacementCopied, nil
	case req.Supplied():
		slog.Debug("requirements path does not exist", "path", req.Path)
		return PlacementNone, nil
	}

	data, err := fs.ReadFile(fsys, RequirementsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PlacementNone, nil
		}
		return PlacementNone, fmt.Errorf("read template %s: %w", RequirementsFile, err)
	}

	if err := writeFile(dest, data, 0o644); err != nil {
		return PlacementNone, err
	}
	return PlacementTemplate, nil
}

func copyFile(src, dest string) error {
	if sameFile(src, dest) {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dest, err)
	}

	return out.Close()
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
