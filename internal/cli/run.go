package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check for an update and launch the installer if one exists",
	Long: `Run a complete update session: query the update server, and when the
reported version is newer than the installed one, download the installer
artifact to a temporary file and launch it through the OS shell.

The temporary installer file is left in place after launch; removing it is
the installer's job.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runRun executes the run command.
func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	out := cmd.OutOrStdout()

	c := buildClient(cfg)
	available := c.CheckForUpdate(cmd.Context())
	desc := c.LastFetched()

	reportCheck(cmd, cfg, c, available, desc)
	if desc != nil {
		persistCheck(cmd, cfg, available, desc)
	}
	if !available {
		return nil
	}

	if c.DownloadAndRun(cmd.Context()) {
		fmt.Fprintf(out, "%s Installer for %s launched; it will take over from here.\n",
			green("✓"), desc.Version)
		return nil
	}

	fmt.Fprintf(out, "%s Download failed; see %s\n", yellow("!"), c.Sink().Path())
	return nil
}
