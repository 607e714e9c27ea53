// Package progress provides the optional "working" indicator shown while an
// installer artifact downloads. The indicator is a capability: callers that
// have no terminal (services, tests) use the no-op implementation and the
// update client itself never depends on a concrete display.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Indicator is the show/close contract for a progress display.
type Indicator interface {
	// Start begins displaying the indicator with the given message.
	Start(message string)
	// Stop removes the indicator. Safe to call multiple times and without
	// a prior Start.
	Stop()
}

// noop is the headless indicator.
type noop struct{}

func (noop) Start(string) {}
func (noop) Stop()        {}

// Noop returns an indicator that displays nothing.
func Noop() Indicator {
	return noop{}
}

// Spinner displays an animated terminal spinner while work is in flight.
// On a non-TTY writer it degrades to printing the message once.
type Spinner struct {
	caps    TerminalCapabilities
	writer  io.Writer
	spinner *spinner.Spinner
}

// NewSpinner creates a spinner indicator writing to stderr.
func NewSpinner() *Spinner {
	return &Spinner{
		caps:   DetectTerminalCapabilities(),
		writer: os.Stderr,
	}
}

// Start begins the spinner animation with the message as its suffix.
func (s *Spinner) Start(message string) {
	if !s.caps.IsTTY {
		_, _ = io.WriteString(s.writer, message+"\n")
		return
	}

	set := SelectSymbols(s.caps).SpinnerSet
	s.spinner = spinner.New(spinner.CharSets[set], 100*time.Millisecond)
	s.spinner.Writer = s.writer
	s.spinner.Suffix = " " + message
	s.spinner.Start()
}

// Stop halts the animation if one is running.
func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
		s.spinner = nil
	}
}
