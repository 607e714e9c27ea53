package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/upcheck/internal/client"
	"github.com/ariel-frischer/upcheck/internal/config"
	"github.com/ariel-frischer/upcheck/internal/state"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query the update server and compare versions",
	Long: `Query the update server for the latest published version of the application
and compare it with the installed version. The outcome is persisted so
'upcheck status' can report it later.

Failures (unreachable server, malformed response, bad version strings) are
advisory: they are appended to the error log and reported here as "check
failed" without a non-zero exit.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c := buildClient(cfg)
	available := c.CheckForUpdate(cmd.Context())
	desc := c.LastFetched()

	reportCheck(cmd, cfg, c, available, desc)

	if desc != nil {
		persistCheck(cmd, cfg, available, desc)
	}
	return nil
}

// reportCheck prints the check outcome.
func reportCheck(cmd *cobra.Command, cfg *config.Configuration, c *client.UpdateClient, available bool, desc *client.VersionDescriptor) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	out := cmd.OutOrStdout()

	switch {
	case available:
		fmt.Fprintf(out, "%s Update available: %s → %s\n",
			green("→"), cfg.CurrentVersion, green(desc.Version))
		fmt.Fprintf(out, "  Run 'upcheck run' to download and launch the installer.\n")
	case desc != nil:
		fmt.Fprintf(out, "%s %s is up to date (%s)\n", green("✓"), cfg.AppName, cfg.CurrentVersion)
	default:
		fmt.Fprintf(out, "%s Check failed; see %s\n", yellow("!"), c.Sink().Path())
	}
}

// persistCheck stores the outcome for 'upcheck status'. Best-effort: a state
// write failure only produces a warning.
func persistCheck(cmd *cobra.Command, cfg *config.Configuration, available bool, desc *client.VersionDescriptor) {
	record := &state.CheckState{
		AppName:         cfg.AppName,
		CheckedAt:       time.Now(),
		CurrentVersion:  cfg.CurrentVersion,
		LatestVersion:   desc.Version,
		UpdateAvailable: available,
		ArtifactURL:     desc.URL,
	}
	if err := state.Save(cfg.StateDir, record); err != nil {
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s Warning: failed to persist check state: %v\n", dim("!"), err)
	}
}
