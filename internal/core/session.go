// Package core holds the values shared by the setup steps.
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Answers are the raw responses collected by the prompt form.
type Answers struct {
	Directory        string
	RequirementsPath string
	AutoGenerate     bool
}

// Requirements describes the user-supplied requirements document or folder.
type Requirements struct {
	// Path is the path as entered; empty when none was supplied.
	Path   string
	Exists bool
	IsDir  bool
}

// Supplied reports whether the user entered a path at all, existing or not.
func (r Requirements) Supplied() bool {
	return r.Path != ""
}

// StatRequirements inspects path. A missing or unreadable path is reported as not existing.
func StatRequirements(path string) Requirements {
	path = strings.TrimSpace(path)
	if path == "" {
		return Requirements{}
	}

	info, err := os.Stat(path)
	if err != nil {
		return Requirements{Path: path}
	}

	return Requirements{Path: path, Exists: true, IsDir: info.IsDir()}
}

// SetupSession is the resolved, read-only result of one run's answers.
type SetupSession struct {
	// DirectoryInput is the target directory exactly as entered.
	DirectoryInput string
	TargetDir      string
	Requirements   Requirements
	AutoGenerate   bool
}

// NewSetupSession resolves the target directory and inspects the requirements path.
// AutoGenerate is only honoured when the assistant tool was detected.
func NewSetupSession(answers Answers, toolAvailable bool) (SetupSession, error) {
	dir := strings.TrimSpace(answers.Directory)
	if dir == "" {
		return SetupSession{}, fmt.Errorf("directory is required")
	}

	targetDir, err := filepath.Abs(dir)
	if err != nil {
		return SetupSession{}, fmt.Errorf("resolve %s: %w", dir, err)
	}

	return SetupSession{
		DirectoryInput: dir,
		TargetDir:      targetDir,
		Requirements:   StatRequirements(answers.RequirementsPath),
		AutoGenerate:   toolAvailable && answers.AutoGenerate,
	}, nil
}

// WillGenerate reports whether the auto-generation step runs for this session.
func (s SetupSession) WillGenerate() bool {
	return s.AutoGenerate && s.Requirements.Exists
}
