package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/erg0nix/ralphed/internal/config"
	"github.com/erg0nix/ralphed/internal/core"
	"github.com/erg0nix/ralphed/internal/exec"
	"github.com/erg0nix/ralphed/internal/generate"
	"github.com/erg0nix/ralphed/internal/templates"
)

const banner = `
 ██████╗  █████╗ ██╗     ██████╗ ██╗  ██╗███████╗██████╗
 ██╔══██╗██╔══██╗██║     ██╔══██╗██║  ██║██╔════╝██╔══██╗
 ██████╔╝███████║██║     ██████╔╝███████║█████╗  ██║  ██║
 ██╔══██╗██╔══██║██║     ██╔═══╝ ██╔══██║██╔══╝  ██║  ██║
 ██║  ██║██║  ██║███████╗██║     ██║  ██║███████╗██████╔╝
 ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝  ╚═╝╚══════╝╚═════╝
`

// Wizard runs the interactive project setup.
type Wizard struct {
	Out       io.Writer
	Config    config.Config
	Templates fs.FS
	Runner    exec.Runner
	Prompter  Prompter
}

// Run prompts, scaffolds the target directory, optionally generates the plan
// and prints the next steps. Only cancellation and filesystem failures are returned.
func (w *Wizard) Run(ctx context.Context) error {
	w.println(styleBanner.Render(banner))
	w.println(styleDim.Render("  Autonomous AI agent workflow for Claude Code") + "\n")

	toolAvailable := exec.Available(w.Runner, w.Config.Tool.Command)
	if !toolAvailable {
		slog.Info("assistant not found on PATH, auto-generation disabled", "command", w.Config.Tool.Command)
	}

	defaults := core.Answers{Directory: w.Config.DefaultDirectory, AutoGenerate: true}
	answers, err := w.Prompter.Ask(ctx, defaults, toolAvailable)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			w.println(styleError.Render("\nSetup cancelled."))
		}
		return err
	}

	session, err := core.NewSetupSession(answers, toolAvailable)
	if err != nil {
		return err
	}

	w.println("")
	w.println(styleStage.Render("Setting up RALPHED..."))
	w.println("")

	if err := w.scaffold(session); err != nil {
		return err
	}

	if session.WillGenerate() {
		w.generate(ctx, session)
	}

	w.printSummary(session)
	return nil
}

func (w *Wizard) scaffold(session core.SetupSession) error {
	created, err := templates.PrepareTarget(session.TargetDir)
	if err != nil {
		return err
	}
	if created {
		w.println(checkLine("Created " + styleDim.Render(session.TargetDir)))
	}
	w.println(checkLine("Created " + styleDim.Render(templates.LogsDir+"/")))

	result, err := templates.Install(w.Templates, session.TargetDir)
	if err != nil {
		return err
	}
	for _, name := range result.Created {
		w.println(checkLine("Created " + styleDim.Render(name)))
	}
	if len(result.Skipped) > 0 {
		slog.Warn("templates not bundled, skipped", "templates", result.Skipped)
	}

	placement, err := templates.PlaceRequirements(w.Templates, session.TargetDir, session.Requirements)
	if err != nil {
		return err
	}

	switch placement {
	case templates.PlacementDirectory:
		w.println(checkLine("Using PRD folder: " + styleDim.Render(session.Requirements.Path)))
	case templates.PlacementCopied:
		w.println(checkLine("Copied PRD to " + styleDim.Render(templates.RequirementsFile)))
	case templates.PlacementTemplate:
		w.println(checkLine("Created " + styleDim.Render(templates.RequirementsFile) + " (template)"))
	}

	return nil
}

func (w *Wizard) generate(ctx context.Context, session core.SetupSession) {
	w.println("")
	w.println(styleStage.Render("Generating features from PRD..."))
	w.println(styleDim.Render("This will run Claude Code to parse your PRD.") + "\n")

	planPath := filepath.Join(session.TargetDir, templates.PlanFile)

	prompt, err := generate.BuildPrompt(session.Requirements, planPath)
	if err != nil {
		w.reportGenerationError(err)
		return
	}

	outcome := generate.Run(ctx, w.Runner, w.Config.Tool, session.TargetDir, prompt)
	switch {
	case outcome.Err != nil:
		w.reportGenerationError(outcome.Err)
	case outcome.Succeeded():
		w.println("")
		w.println(checkLine("Features generated from PRD"))
	default:
		w.println(warnLine("Feature generation completed with warnings"))
	}
}

func (w *Wizard) reportGenerationError(err error) {
	w.println(warnLine("Could not auto-generate features: " + err.Error()))
	w.println(styleDim.Render("  You can manually edit " + templates.PlanFile))
}

func (w *Wizard) println(s string) {
	fmt.Fprintln(w.Out, s)
}
