// Package health implements the environment checks behind 'upcheck doctor':
// is the configured identity usable, and are the directories upcheck writes
// to actually writable.
package health

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/upcheck/internal/config"
	"github.com/ariel-frischer/upcheck/internal/errlog"
	"github.com/ariel-frischer/upcheck/internal/version"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(cfg *config.Configuration) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	for _, check := range []CheckResult{
		CheckUpdateURL(cfg.UpdateURL),
		CheckCurrentVersion(cfg.CurrentVersion),
		CheckStateDir(cfg.StateDir),
		CheckErrorLog(cfg.AppName),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	return report
}

// CheckUpdateURL verifies the configured check endpoint is an absolute
// http(s) URL.
func CheckUpdateURL(rawURL string) CheckResult {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return CheckResult{
			Name:    "Update URL",
			Passed:  false,
			Message: fmt.Sprintf("update_url %q is not an absolute http(s) URL", rawURL),
		}
	}
	return CheckResult{
		Name:    "Update URL",
		Passed:  true,
		Message: "update URL is well-formed",
	}
}

// CheckCurrentVersion verifies the configured version parses under the
// dotted numeric grammar.
func CheckCurrentVersion(current string) CheckResult {
	if _, err := version.Parse(current); err != nil {
		return CheckResult{
			Name:    "Installed version",
			Passed:  false,
			Message: fmt.Sprintf("current_version is unusable: %v", err),
		}
	}
	return CheckResult{
		Name:    "Installed version",
		Passed:  true,
		Message: "installed version parses",
	}
}

// CheckStateDir verifies the state directory exists or can be created and
// written to.
func CheckStateDir(stateDir string) CheckResult {
	if err := checkWritableDir(stateDir); err != nil {
		return CheckResult{
			Name:    "State directory",
			Passed:  false,
			Message: fmt.Sprintf("state_dir %s is not writable: %v", stateDir, err),
		}
	}
	return CheckResult{
		Name:    "State directory",
		Passed:  true,
		Message: "state directory is writable",
	}
}

// CheckErrorLog verifies the error log location is writable.
func CheckErrorLog(appName string) CheckResult {
	logPath := errlog.New(appName).Path()
	if err := checkWritableDir(filepath.Dir(logPath)); err != nil {
		return CheckResult{
			Name:    "Error log",
			Passed:  false,
			Message: fmt.Sprintf("error log location %s is not writable: %v", logPath, err),
		}
	}
	return CheckResult{
		Name:    "Error log",
		Passed:  true,
		Message: "error log location is writable",
	}
}

// checkWritableDir creates the directory if needed and probes it with a
// throwaway file.
func checkWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".upcheck-write-test-*")
	if err != nil {
		return err
	}
	probe.Close()
	return os.Remove(probe.Name())
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
