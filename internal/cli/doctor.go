package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/upcheck/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the update environment is usable",
	Long: `Run checks against the current configuration: the update URL must be an
absolute http(s) endpoint, the installed version must parse, and the state
directory and error log location must be writable.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(cfg)
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return fmt.Errorf("environment checks failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All checks passed.")
	return nil
}
