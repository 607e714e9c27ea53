package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/upcheck/internal/state"
)

// execute runs the root command with the given args and returns its output.
// CLI tests share the package-level command tree, so they run sequentially
// and always pass the full identity flag set.
func execute(t *testing.T, args ...string) string {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

// isolate redirects config, cache, and state lookups into temp dirs.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	stateDir := filepath.Join(home, "state")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("UPCHECK_STATE_DIR", stateDir)
	return stateDir
}

func identityFlags(url string) []string {
	return []string{
		"--app", "My App",
		"--current-version", "1.0.0",
		"--url", url,
		"--no-progress",
	}
}

func TestCheckCommandUpdateAvailable(t *testing.T) {
	stateDir := isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my-app", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte(`{"Version":"1.2.0","Url":"http://host/installer.bin"}`))
	}))
	defer server.Close()

	out := execute(t, append([]string{"check"}, identityFlags(server.URL)...)...)
	assert.Contains(t, out, "Update available: 1.0.0")
	assert.Contains(t, out, "1.2.0")

	record, err := state.Load(stateDir)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.UpdateAvailable)
	assert.Equal(t, "1.2.0", record.LatestVersion)
}

func TestCheckCommandUpToDate(t *testing.T) {
	stateDir := isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Version":"1.0.0","Url":"http://host/installer.bin"}`))
	}))
	defer server.Close()

	out := execute(t, append([]string{"check"}, identityFlags(server.URL)...)...)
	assert.Contains(t, out, "up to date")

	record, err := state.Load(stateDir)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.False(t, record.UpdateAvailable)
}

func TestCheckCommandServerFailure(t *testing.T) {
	stateDir := isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	out := execute(t, append([]string{"check"}, identityFlags(server.URL)...)...)
	assert.Contains(t, out, "Check failed")

	record, err := state.Load(stateDir)
	require.NoError(t, err)
	assert.Nil(t, record, "failed checks leave no state record")
}

func TestCheckCommandMissingIdentity(t *testing.T) {
	isolate(t)

	rootCmd.SetArgs([]string{"check", "--app", "", "--current-version", "", "--url", "", "--no-progress"})
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestStatusCommand(t *testing.T) {
	isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Version":"2.0.0","Url":"http://host/installer.bin"}`))
	}))
	defer server.Close()

	execute(t, append([]string{"check"}, identityFlags(server.URL)...)...)

	out := execute(t, append([]string{"status"}, identityFlags(server.URL)...)...)
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "http://host/installer.bin")
	assert.Contains(t, out, "Error log:")
}

func TestStatusCommandNoRecord(t *testing.T) {
	isolate(t)

	out := execute(t, append([]string{"status"}, identityFlags("https://updates.example.com/latest")...)...)
	assert.Contains(t, out, "No check recorded yet")
}

func TestRunCommandNoUpdate(t *testing.T) {
	isolate(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Version":"1.0.0","Url":"http://host/installer.bin"}`))
	}))
	defer server.Close()

	out := execute(t, append([]string{"run"}, identityFlags(server.URL)...)...)
	assert.Contains(t, out, "up to date")
	assert.NotContains(t, out, "Installer")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "upcheck version dev")
}

func TestDoctorCommand(t *testing.T) {
	isolate(t)

	out := execute(t, append([]string{"doctor"}, identityFlags("https://updates.example.com/latest")...)...)
	assert.Contains(t, out, "All checks passed.")
	assert.NotContains(t, out, "✗")
}

func TestDoctorCommandBadURL(t *testing.T) {
	isolate(t)

	// file:// passes config validation but is not a usable check endpoint.
	rootCmd.SetArgs(append([]string{"doctor"}, "--app", "My App",
		"--current-version", "1.0.0", "--url", "file:///tmp/updates.json", "--no-progress"))
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	assert.Error(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "✗")
}
