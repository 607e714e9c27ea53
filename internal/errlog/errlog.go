// Package errlog provides the append-only failure log shared by the update
// client's operations. Writes are serialized by a single mutex so concurrent
// check and download failures never interleave within a line, and every write
// is best-effort: a sink failure must never surface to the caller.
package errlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// LogFileName is the name of the error log file inside the app directory.
	LogFileName = "errors.log"

	// appDirName is the vendor directory under the user cache directory.
	appDirName = "upcheck"

	// timestampLayout is the local timestamp format used in log lines.
	timestampLayout = "2006-01-02 15:04:05"
)

// Sink appends timestamped failure messages to a per-application log file.
type Sink struct {
	mu      sync.Mutex
	appName string
	path    string

	// now is overridable in tests.
	now func() time.Time
}

// New creates a sink for the given application. The log lives at
// {UserCacheDir}/upcheck/{sanitized-app}/errors.log; when the cache directory
// cannot be resolved the sink falls back to a file in the working directory.
func New(appName string) *Sink {
	return &Sink{
		appName: appName,
		path:    resolveLogPath(appName),
		now:     time.Now,
	}
}

// NewWithPath creates a sink writing to an explicit file path.
func NewWithPath(appName, path string) *Sink {
	return &Sink{
		appName: appName,
		path:    path,
		now:     time.Now,
	}
}

// Path returns the resolved log file path.
func (s *Sink) Path() string {
	return s.path
}

// WriteError appends a "{appName} - {timestamp} - {message}" line to the log.
// The mutex admits one writer at a time so lines from concurrent operations
// never interleave. Failures to create or write the file are swallowed.
func (s *Sink) WriteError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s - %s\n", s.appName, s.now().Format(timestampLayout), message)
	_, _ = f.WriteString(line)
}

// Writef formats the message in the manner of fmt.Sprintf before writing.
func (s *Sink) Writef(format string, args ...any) {
	s.WriteError(fmt.Sprintf(format, args...))
}

// resolveLogPath picks the well-known per-application log location, with a
// relative fallback when the OS cache directory is unavailable.
func resolveLogPath(appName string) string {
	dir := sanitizeDirName(appName)
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return dir + "-" + LogFileName
	}
	return filepath.Join(cacheDir, appDirName, dir, LogFileName)
}

// sanitizeDirName lowercases the app name and replaces spaces so it is safe
// as a directory component.
func sanitizeDirName(appName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(appName)), " ", "-")
}
