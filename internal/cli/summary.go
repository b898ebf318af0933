package cli

import (
	"fmt"

	"github.com/erg0nix/ralphed/internal/core"
	"github.com/erg0nix/ralphed/internal/templates"
)

var keyFiles = []string{
	"  AGENTS.md              - Operational guide (add project conventions here)",
	"  IMPLEMENTATION_PLAN.md - Task tracking (updated each iteration)",
	"  PROMPT_plan.md         - Planning mode instructions",
	"  PROMPT_build.md        - Building mode instructions",
}

// nextSteps lists the follow-up actions, leaving out the ones the run already covered.
func nextSteps(session core.SetupSession) []string {
	var steps []string

	if !session.Requirements.Supplied() {
		steps = append(steps, "Edit "+styleCommand.Render(templates.RequirementsFile)+" with your project requirements")
	}
	if !session.WillGenerate() {
		steps = append(steps, "Edit "+styleCommand.Render(templates.PlanFile)+" with your features")
	}

	steps = append(steps,
		"Run "+styleCommand.Render("/sandbox")+" in Claude Code to enable bash auto-allow",
		"Run planning first: "+styleCommand.Render(fmt.Sprintf("cd %s && ./%s --mode plan 1", session.DirectoryInput, templates.ScriptFile)),
		"Start building: "+styleCommand.Render("./"+templates.ScriptFile+" 10"),
	)

	return steps
}

func (w *Wizard) printSummary(session core.SetupSession) {
	w.println("")
	w.println(styleSuccess.Render("Done!") + " RALPHED is ready.\n")
	w.println(styleHeading.Render("Next steps:") + "\n")

	for i, step := range nextSteps(session) {
		w.println(fmt.Sprintf("  %s %s", styleDim.Render(fmt.Sprintf("%d.", i+1)), step))
	}

	w.println("")
	w.println(styleHeading.Render("Key files:"))
	for _, line := range keyFiles {
		w.println(styleDim.Render(line))
	}

	w.println("")
	w.println(styleDim.Render("Models: Uses Sonnet by default, auto-falls back to Opus when needed."))
	w.println(styleDim.Render("        Add [OPUS] tag to complex feature categories, or let Claude self-escalate."))
	w.println("")
	w.println(styleDim.Render("Learn more: https://github.com/chrisabra-co/ralphed"))
	w.println(styleDim.Render("Methodology: https://github.com/ghuntley/how-to-ralph-wiggum"))
	w.println("")
}
