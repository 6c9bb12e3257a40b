// Package show provides the show command, which prints every detail panel of
// a single app.
package show

import (
	"github.com/spf13/cobra"

	"github.com/fioriscope/fioriscope/cmd/application"
	"github.com/fioriscope/fioriscope/internal/cmd/output"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/logging"
	"github.com/fioriscope/fioriscope/pkg/render"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <fiori-id> --release <release>",
		GroupID: "core",
		Short:   "Show all catalog details of one app",
		Long: `Show fetches one app and prints its app info, technical names, business
roles, BSP names, catalogs, spaces, pages, related apps and semantic
objects as markdown. With --format json or yaml the raw result is printed.`,
		Example: `  fioriscope show F0842 --release S28OP`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], app)
		},
	}
	cmd.Flags().StringP("release", "r", "", "Release ID, e.g. S28OP")
	return cmd
}

func run(cmd *cobra.Command, fioriID string, app application.Application) error {
	release, _ := cmd.Flags().GetString("release")

	cfg, err := apps.NewRunConfig([]string{fioriID}, release)
	if err != nil {
		return err
	}
	if len(cfg.Identifiers) != 1 {
		return errors.NewValidationError("fiori-id", fioriID, "exactly one Fiori ID is required")
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	state, err := client.Run(logging.WithLogger(cmd.Context(), app.Logger()), cfg)
	if err != nil {
		return err
	}
	result := &state.Results[0]

	format := output.DetectFormat(app.OutputFormat())
	if !format.IsTable() {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
	}
	return render.AppMarkdown(cmd.OutOrStdout(), result)
}
