package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand returns the ralphed command. It takes no arguments or flags;
// the whole interface is the interactive prompt sequence.
func NewRootCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:           "ralphed",
		Short:         "Set up an autonomous AI agent workflow in a project directory",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runSetupCmd,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
}

func runSetupCmd(cmd *cobra.Command, _ []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	wizard := app.wizard(cmd.OutOrStdout())
	return wizard.Run(cmd.Context())
}
