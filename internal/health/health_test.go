package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/upcheck/internal/config"
)

func TestCheckUpdateURL(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		rawURL string
		passed bool
	}{
		"https endpoint":    {"https://updates.example.com/check", true},
		"http endpoint":     {"http://localhost:9090/check", true},
		"missing scheme":    {"updates.example.com/check", false},
		"file scheme":       {"file:///tmp/updates.json", false},
		"relative path":     {"/check", false},
		"empty string":      {"", false},
		"garbage":           {"://not a url", false},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := CheckUpdateURL(tc.rawURL)
			assert.Equal(t, tc.passed, result.Passed, result.Message)
		})
	}
}

func TestCheckCurrentVersion(t *testing.T) {
	t.Parallel()

	assert.True(t, CheckCurrentVersion("1.2.3").Passed)
	assert.True(t, CheckCurrentVersion("2").Passed)
	assert.False(t, CheckCurrentVersion("").Passed)
	assert.False(t, CheckCurrentVersion("1.0.0-beta").Passed)
}

func TestCheckStateDir(t *testing.T) {
	t.Parallel()

	t.Run("creates missing directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "state")
		result := CheckStateDir(dir)
		assert.True(t, result.Passed, result.Message)
		_, err := os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("rejects file in the way", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		result := CheckStateDir(filepath.Join(blocker, "state"))
		assert.False(t, result.Passed)
	})
}

func TestRunHealthChecks(t *testing.T) {
	cfg := &config.Configuration{
		AppName:        "doctor test",
		CurrentVersion: "1.0.0",
		UpdateURL:      "https://updates.example.com/check",
		StateDir:       t.TempDir(),
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "")

	report := RunHealthChecks(cfg)
	require.Len(t, report.Checks, 4)
	assert.True(t, report.Passed, FormatReport(report))

	cfg.UpdateURL = "not-a-url"
	report = RunHealthChecks(cfg)
	assert.False(t, report.Passed)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &HealthReport{
		Checks: []CheckResult{
			{Name: "Update URL", Passed: true, Message: "update URL is well-formed"},
			{Name: "State directory", Passed: false, Message: "state_dir /nope is not writable"},
		},
	}
	out := FormatReport(report)
	assert.Contains(t, out, "✓ Update URL: update URL is well-formed")
	assert.Contains(t, out, "✗ State directory: state_dir /nope is not writable")
}
