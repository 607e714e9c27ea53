package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/upcheck/internal/errlog"
	"github.com/ariel-frischer/upcheck/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the outcome of the last update check",
	Long: `Show what the most recent 'upcheck check' or 'upcheck run' found, without
contacting the update server, plus the location of the error log.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	out := cmd.OutOrStdout()

	record, err := state.Load(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("loading check state: %w", err)
	}

	if record == nil {
		fmt.Fprintf(out, "No check recorded yet. Run 'upcheck check' first.\n")
	} else {
		fmt.Fprintf(out, "App:             %s\n", record.AppName)
		fmt.Fprintf(out, "Last checked:    %s\n", record.CheckedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Installed:       %s\n", record.CurrentVersion)
		fmt.Fprintf(out, "Latest reported: %s\n", record.LatestVersion)
		if record.UpdateAvailable {
			fmt.Fprintf(out, "Update:          %s\n", green("available"))
			fmt.Fprintf(out, "Artifact:        %s\n", record.ArtifactURL)
		} else {
			fmt.Fprintf(out, "Update:          none\n")
		}
	}

	fmt.Fprintf(out, "%s\n", dim("Error log: "+errlog.New(cfg.AppName).Path()))
	return nil
}
