// Package cli handles terminal presentation for the multiplier tool:
// result formatting, duration formatting, and a spinner shown while a
// large product is being computed.
package cli

import (
	"fmt"
	"math/big"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// TruncationLimit is the digit threshold from which a result is
	// truncated in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the
	// beginning and end of a truncated number.
	DisplayEdges = 25
	// SpinnerRefreshRate defines the refresh frequency of the spinner.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// FormatExecutionDuration formats a time.Duration for display. It shows
// microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatProduct renders n in decimal or hexadecimal. Full precision is
// always kept when truncate is false; otherwise very large results are
// shown as leading digits, an ellipsis with the omitted count, and
// trailing digits.
func FormatProduct(n *big.Int, hex, truncate bool) string {
	var s string
	if hex {
		s = n.Text(16)
	} else {
		s = n.String()
	}
	if !truncate || len(s) <= TruncationLimit {
		return s
	}
	omitted := len(s) - 2*DisplayEdges
	return fmt.Sprintf("%s...(%d digits omitted)...%s", s[:DisplayEdges], omitted, s[len(s)-DisplayEdges:])
}

// Spinner abstracts the terminal spinner so display code can be tested
// without driving a real terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// NewSpinner is replaceable in tests.
var NewSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}
