// Package client implements the update session: query an update server for
// the latest published version, compare it with the running version, and on a
// positive result download the installer artifact and hand control to it.
//
// Both public operations follow a boolean contract: every failure is caught
// at the operation boundary, written to the error sink, and surfaced only as
// false. Callers that need the cause read the log.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ariel-frischer/upcheck/internal/errlog"
	"github.com/ariel-frischer/upcheck/internal/launch"
	"github.com/ariel-frischer/upcheck/internal/progress"
	"github.com/ariel-frischer/upcheck/internal/version"
)

// maxLoggedBody caps how much of a malformed response body is copied into the
// error log for diagnosis.
const maxLoggedBody = 256

var validate = validator.New()

// VersionDescriptor is the decoded result of a successful check: the
// server-reported latest version and the absolute artifact download URL.
type VersionDescriptor struct {
	Version string `json:"Version" validate:"required"`
	URL     string `json:"Url" validate:"required"`
}

// UpdateClient holds the identity and session state for one update session.
// A single instance may have CheckForUpdate and DownloadAndRun invoked
// concurrently; the descriptor and the error log are both guarded.
type UpdateClient struct {
	appName        string
	currentVersion string
	updateURL      string

	httpClient *http.Client
	sink       *errlog.Sink
	indicator  progress.Indicator
	launcher   launch.Launcher

	mu          sync.Mutex
	lastFetched *VersionDescriptor
}

// Option configures an UpdateClient.
type Option func(*UpdateClient)

// WithHTTPClient sets a custom HTTP client instead of the shared one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *UpdateClient) {
		c.httpClient = hc
	}
}

// WithSink sets the error sink. Defaults to the per-app sink in the user
// cache directory.
func WithSink(s *errlog.Sink) Option {
	return func(c *UpdateClient) {
		c.sink = s
	}
}

// WithIndicator sets the progress indicator shown during downloads.
// Defaults to the no-op indicator.
func WithIndicator(ind progress.Indicator) Option {
	return func(c *UpdateClient) {
		c.indicator = ind
	}
}

// WithLauncher sets the process launcher. Defaults to the shell launcher.
func WithLauncher(l launch.Launcher) Option {
	return func(c *UpdateClient) {
		c.launcher = l
	}
}

// New creates an UpdateClient for one update session.
func New(appName, currentVersion, updateURL string, opts ...Option) *UpdateClient {
	c := &UpdateClient{
		appName:        appName,
		currentVersion: currentVersion,
		updateURL:      updateURL,
		httpClient:     SharedHTTPClient(),
		indicator:      progress.Noop(),
		launcher:       launch.NewShellLauncher(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		c.sink = errlog.New(appName)
	}
	return c
}

// Sink returns the error sink the client logs to.
func (c *UpdateClient) Sink() *errlog.Sink {
	return c.sink
}

// LastFetched returns the descriptor stored by the most recent successful
// check, or nil.
func (c *UpdateClient) LastFetched() *VersionDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastFetched == nil {
		return nil
	}
	desc := *c.lastFetched
	return &desc
}

// CheckForUpdate queries {updateURL}?name={sanitizedAppName} and reports
// whether the server's latest version is strictly newer than the running one.
// The decoded descriptor is stored for a subsequent DownloadAndRun whenever
// the exchange succeeds, even when no update is available. Any failure is
// logged and reported as false.
func (c *UpdateClient) CheckForUpdate(ctx context.Context) bool {
	newer, err := c.check(ctx)
	if err != nil {
		c.sink.Writef("check failed: %v", err)
		return false
	}
	return newer
}

func (c *UpdateClient) check(ctx context.Context) (bool, error) {
	current, err := version.Parse(c.currentVersion)
	if err != nil {
		return false, newError(KindVersionParse, "invalid current version", err)
	}

	desc, err := c.fetchDescriptor(ctx)
	if err != nil {
		return false, err
	}

	reported, err := version.Parse(desc.Version)
	if err != nil {
		return false, newError(KindVersionParse, "invalid reported version", err)
	}

	c.mu.Lock()
	c.lastFetched = desc
	c.mu.Unlock()

	return reported.IsNewerThan(current), nil
}

// fetchDescriptor performs the check round trip and decodes the response.
func (c *UpdateClient) fetchDescriptor(ctx context.Context) (*VersionDescriptor, error) {
	endpoint, err := c.checkEndpoint()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newError(KindTransport, "creating check request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(KindTransport, "check request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newErrorf(KindTransport, "check returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindTransport, "reading check response", err)
	}

	var desc VersionDescriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, newError(KindDecode, fmt.Sprintf("malformed response body %q", truncate(body)), err)
	}
	if err := validate.Struct(&desc); err != nil {
		return nil, newError(KindDecode, fmt.Sprintf("incomplete response body %q", truncate(body)), err)
	}

	return &desc, nil
}

// checkEndpoint builds {updateURL}?name={sanitizedAppName}.
func (c *UpdateClient) checkEndpoint() (string, error) {
	u, err := url.Parse(c.updateURL)
	if err != nil {
		return "", newError(KindTransport, "invalid update URL", err)
	}
	q := u.Query()
	q.Set("name", SanitizeAppName(c.appName))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DownloadAndRun downloads the artifact named by the stored descriptor to a
// temporary file carrying an installer-appropriate extension and launches it
// with shell-execution semantics. It trusts the descriptor left by the
// preceding successful check and does not re-verify that the reported version
// is newer. The temporary file is intentionally not removed after launch;
// cleanup belongs to the installer process. Any failure is logged and
// reported as false.
func (c *UpdateClient) DownloadAndRun(ctx context.Context) bool {
	if err := c.downloadAndRun(ctx); err != nil {
		c.sink.Writef("download failed: %v", err)
		return false
	}
	return true
}

func (c *UpdateClient) downloadAndRun(ctx context.Context) error {
	c.mu.Lock()
	desc := c.lastFetched
	c.mu.Unlock()

	if desc == nil || desc.URL == "" {
		return newErrorf(KindPrecondition, "no update descriptor; run a check first")
	}

	c.indicator.Start("Downloading update for " + c.appName)
	defer c.indicator.Stop()

	path, err := c.downloadArtifact(ctx, desc.URL)
	if err != nil {
		return err
	}

	if err := c.launcher.Launch(path); err != nil {
		return newError(KindLaunch, "launching installer", err)
	}
	return nil
}

// downloadArtifact streams the artifact to a fresh temp file, closes it, and
// renames it to carry the installer extension. Returns the final path.
func (c *UpdateClient) downloadArtifact(ctx context.Context, artifactURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifactURL, nil)
	if err != nil {
		return "", newError(KindTransport, "creating download request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newError(KindTransport, "download request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newErrorf(KindTransport, "download returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "upcheck-*")
	if err != nil {
		return "", newError(KindFilesystem, "creating temp file", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", newError(KindFilesystem, "writing artifact", err)
	}

	// The file must be fully closed before rename and launch.
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", newError(KindFilesystem, "closing artifact", err)
	}

	finalPath := tmp.Name() + launch.InstallerExt(artifactURL)
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		os.Remove(tmp.Name())
		return "", newError(KindFilesystem, "renaming artifact", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(finalPath, 0755); err != nil {
			return "", newError(KindFilesystem, "marking artifact executable", err)
		}
	}

	return finalPath, nil
}

// SanitizeAppName lowercases the application name and replaces spaces with
// hyphens before it enters the query string.
func SanitizeAppName(appName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(appName)), " ", "-")
}

// truncate clips a response body for inclusion in a log line.
func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
