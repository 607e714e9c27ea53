// Package launch starts a downloaded installer artifact as a new OS process
// using shell-execution semantics, so the platform's file-association rules
// decide how the artifact runs (e.g. msiexec picks up .msi files on Windows).
package launch

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"runtime"
)

// Launcher starts an external executable given a file path.
type Launcher interface {
	Launch(path string) error
}

// ShellLauncher launches files through the OS shell so installers open the
// same way a double-click would.
type ShellLauncher struct {
	// goos is overridable in tests; defaults to runtime.GOOS.
	goos string
}

// NewShellLauncher creates a launcher for the current platform.
func NewShellLauncher() *ShellLauncher {
	return &ShellLauncher{goos: runtime.GOOS}
}

// Launch starts the file at path as a detached process. The process is not
// waited on; ownership passes to the launched installer.
func (l *ShellLauncher) Launch(filePath string) error {
	cmd := l.command(filePath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting installer %s: %w", filePath, err)
	}
	// Release the child so it outlives this process.
	if cmd.Process != nil {
		_ = cmd.Process.Release()
	}
	return nil
}

// command builds the platform-specific shell invocation.
func (l *ShellLauncher) command(filePath string) *exec.Cmd {
	switch l.goos {
	case "windows":
		// "start" resolves the handler via file associations. The empty
		// quoted argument is the window title start expects first.
		return exec.Command("cmd", "/C", "start", "", filePath)
	case "darwin":
		return exec.Command("open", filePath)
	default:
		return exec.Command(filePath)
	}
}

// InstallerExt returns the file extension the downloaded artifact should
// carry before launch. The extension from the artifact URL path wins when
// present; otherwise a platform default is used so the local execution
// mechanism recognizes the file.
func InstallerExt(rawURL string) string {
	return installerExtFor(rawURL, runtime.GOOS)
}

func installerExtFor(rawURL, goos string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	switch goos {
	case "windows":
		return ".msi"
	case "darwin":
		return ".pkg"
	default:
		return ".run"
	}
}
