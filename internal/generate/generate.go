// Package generate asks the external coding assistant to turn a PRD into an implementation plan.
package generate

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/erg0nix/ralphed/internal/config"
	"github.com/erg0nix/ralphed/internal/core"
	"github.com/erg0nix/ralphed/internal/exec"
)

//go:embed prompts/generate.md.tmpl
var promptTemplateText string

var promptTemplate = template.Must(template.New("generate").Parse(promptTemplateText))

const (
	fileInstruction      = "Parse this PRD/project outline"
	directoryInstruction = "Parse all documents in this folder"
)

type promptData struct {
	Reference   string
	Instruction string
	PlanPath    string
}

// Reference returns the @-mention for the requirements. Relative paths are made absolute
// because the assistant runs inside the target directory; folders get a trailing separator.
func Reference(req core.Requirements) string {
	path := req.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if req.IsDir && !strings.HasSuffix(path, string(os.PathSeparator)) {
		path += string(os.PathSeparator)
	}

	return "@" + path
}

// BuildPrompt renders the instruction payload for req, writing the plan to planPath.
func BuildPrompt(req core.Requirements, planPath string) (string, error) {
	data := promptData{
		Reference:   Reference(req),
		Instruction: fileInstruction,
		PlanPath:    planPath,
	}
	if req.IsDir {
		data.Instruction = directoryInstruction
	}

	var sb strings.Builder
	if err := promptTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render generation prompt: %w", err)
	}
	return sb.String(), nil
}

// Args returns the assistant command-line arguments for prompt.
func Args(tool config.ToolConfig, prompt string) []string {
	return []string{"--permission-mode", tool.PermissionMode, "-p", prompt}
}

// Outcome is the result of one generation attempt. Err is set only when the
// assistant could not be started; a failing assistant is reported through ExitCode.
type Outcome struct {
	ExitCode int
	Err      error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.ExitCode == 0
}

// Run invokes the assistant in dir and waits for it to exit.
func Run(ctx context.Context, runner exec.Runner, tool config.ToolConfig, dir, prompt string) Outcome {
	slog.Debug("running assistant", "command", tool.Command, "dir", dir)

	code, err := runner.RunAttached(ctx, dir, tool.Command, Args(tool, prompt)...)
	if err != nil {
		slog.Warn("assistant could not be started", "command", tool.Command, "error", err)
		return Outcome{ExitCode: code, Err: err}
	}

	if code != 0 {
		slog.Warn("assistant exited with non-zero status", "command", tool.Command, "code", code)
	}
	return Outcome{ExitCode: code}
}
