// Package fetch provides the fetch command, which runs a batch and writes
// the consolidated workbook.
package fetch

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fioriscope/fioriscope/cmd/application"
	"github.com/fioriscope/fioriscope/internal/cmd/alerts"
	"github.com/fioriscope/fioriscope/internal/cmd/output"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/export"
	"github.com/fioriscope/fioriscope/pkg/logging"
	"github.com/fioriscope/fioriscope/pkg/render"
)

// NewCommand creates the fetch command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fetch <fiori-id>... --release <release>",
		GroupID: "core",
		Short:   "Fetch apps from the Fiori Apps Library and export a workbook",
		Long: `Fetch queries the Fiori Apps Library for every given app in one release,
prints the outcome of each app, and writes Fiori_Apps_Data_<RELEASE>.xlsx
with one row per valid app plus a CONSOLIDATED summary row.

Deprecated and failed apps are reported but not exported. Identifiers may be
passed as separate arguments or as one whitespace-separated argument.`,
		Example: `  # Two apps in S/4HANA 2023
  fioriscope fetch F0842 F1234 --release S28OP

  # Paste a list and print the consolidated sets as markdown
  fioriscope fetch "F0842 F1234 F2345" -r S28OP --summary

  # Only look, do not write the workbook
  fioriscope fetch F0842 -r S28OP --no-export -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, app)
		},
	}

	cmd.Flags().StringP("release", "r", "", "Release ID, e.g. S28OP")
	cmd.Flags().StringP("output-dir", "d", "", "Directory for the workbook (default from config)")
	cmd.Flags().Bool("summary", false, "Print a markdown report with the consolidated sets")
	cmd.Flags().Bool("no-export", false, "Skip writing the workbook")
	cmd.Flags().Bool("no-progress", false, "Do not print progress while fetching")

	return cmd
}

func run(cmd *cobra.Command, args []string, app application.Application) error {
	release, _ := cmd.Flags().GetString("release")
	outDir, _ := cmd.Flags().GetString("output-dir")
	summary, _ := cmd.Flags().GetBool("summary")
	noExport, _ := cmd.Flags().GetBool("no-export")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	format := output.DetectFormat(app.OutputFormat())
	noColor, _ := cmd.Flags().GetBool("no-color")
	notices := alerts.NewWriter(cmd.ErrOrStderr(), format, noColor)

	cfg, err := apps.NewRunConfig([]string{strings.Join(args, " ")}, release)
	if err != nil {
		_ = notices.Write(alerts.FromError(err))
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	logger := app.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)
	logger.Debug().
		Strs("identifiers", cfg.Identifiers).
		Str("release", cfg.Release).
		Msg("Starting fetch")

	var progress *output.Progress
	if !noProgress && format.IsTable() {
		progress = output.NewProgress(cmd.ErrOrStderr())
	}

	var state *apps.State
	if progress != nil {
		state, err = client.Run(ctx, cfg, progress)
	} else {
		state, err = client.Run(ctx, cfg)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := output.State(out, format, state); err != nil {
		return err
	}

	rep, buildErr := export.Build(state)
	if summary {
		if err := render.ReportMarkdown(out, state, rep); err != nil {
			return err
		}
	}

	if _, deprecated, failed := state.Counts(); deprecated+failed > 0 {
		_ = notices.Write(alerts.NewWarning(
			fmt.Sprintf("%d deprecated and %d failed apps are not exported", deprecated, failed)))
	}

	if buildErr != nil {
		_ = notices.Write(alerts.FromError(buildErr))
		return buildErr
	}
	if noExport {
		return nil
	}

	if outDir == "" {
		outDir = app.OutputDir()
	}
	path, err := rep.WriteFile(outDir)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Int("rows", len(rep.Rows)).Msg("Workbook written")
	return notices.Write(alerts.NewSuccess("Saved " + path))
}
