// Package cli provides the cobra commands hosting the update client: check
// (query the server and compare versions), run (check then download and
// launch the installer), status (report the last persisted check), doctor
// (environment checks), and version. The commands supply the application
// identity from configuration
// and flags; all update decisions live in internal/client.
package cli

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/upcheck/internal/client"
	"github.com/ariel-frischer/upcheck/internal/config"
	"github.com/ariel-frischer/upcheck/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "upcheck",
	Short: "application update checker",
	Long: `upcheck queries an update server for the latest published version of an
application, compares it against the installed version, and can download and
launch the installer when a newer version exists.

The application identity (name, installed version, update URL) comes from
~/.upcheck/config.json, a local config file, UPCHECK_* environment variables,
or flags.`,
	Example: `  # Is an update available?
  upcheck check --app "My App" --current-version 1.0.0 --url https://updates.example.com/latest

  # Check and, if newer, download and launch the installer
  upcheck run

  # What did the last check find?
  upcheck status`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a local config file")
	rootCmd.PersistentFlags().String("app", "", "Application name")
	rootCmd.PersistentFlags().String("current-version", "", "Installed application version")
	rootCmd.PersistentFlags().String("url", "", "Update server check endpoint")
	rootCmd.PersistentFlags().Int("timeout", 0, "HTTP timeout in seconds")
	rootCmd.PersistentFlags().Bool("no-progress", false, "Disable the download progress spinner")
}

// loadConfig resolves configuration with changed flags as overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("app") {
		overrides["app_name"], _ = flags.GetString("app")
	}
	if flags.Changed("current-version") {
		overrides["current_version"], _ = flags.GetString("current-version")
	}
	if flags.Changed("url") {
		overrides["update_url"], _ = flags.GetString("url")
	}
	if flags.Changed("timeout") {
		overrides["timeout"], _ = flags.GetInt("timeout")
	}
	if flags.Changed("no-progress") {
		if noProgress, _ := flags.GetBool("no-progress"); noProgress {
			overrides["show_progress"] = false
		}
	}

	configPath, _ := flags.GetString("config")
	return config.Load(configPath, overrides)
}

// buildClient constructs the update client for one session.
func buildClient(cfg *config.Configuration) *client.UpdateClient {
	opts := []client.Option{}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout != client.DefaultHTTPTimeout {
		opts = append(opts, client.WithHTTPClient(&http.Client{Timeout: timeout}))
	}
	if cfg.ShowProgress {
		opts = append(opts, client.WithIndicator(progress.NewSpinner()))
	}

	return client.New(cfg.AppName, cfg.CurrentVersion, cfg.UpdateURL, opts...)
}
