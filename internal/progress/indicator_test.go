package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	t.Parallel()

	ind := Noop()
	assert.NotPanics(t, func() {
		ind.Start("working")
		ind.Stop()
		ind.Stop()
	})
}

func TestSpinnerNonTTYPrintsOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := &Spinner{
		caps:   TerminalCapabilities{IsTTY: false},
		writer: &buf,
	}

	s.Start("downloading update")
	s.Stop()

	assert.Equal(t, "downloading update\n", buf.String())
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	t.Parallel()

	s := &Spinner{caps: TerminalCapabilities{IsTTY: false}, writer: &bytes.Buffer{}}
	assert.NotPanics(t, s.Stop)
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	unicode := SelectSymbols(TerminalCapabilities{SupportsUnicode: true})
	assert.Equal(t, "✓", unicode.Checkmark)

	ascii := SelectSymbols(TerminalCapabilities{SupportsUnicode: false})
	assert.Equal(t, "[OK]", ascii.Checkmark)
	assert.NotEqual(t, unicode.SpinnerSet, ascii.SpinnerSet)
}
