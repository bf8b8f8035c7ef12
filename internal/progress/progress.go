// Package progress shows how far "dtags run --parallel" has got. Output goes
// to stderr to keep stdout clean for the buffered command output, and
// nothing is drawn unless stderr is a terminal.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
// For small operations, progress adds noise without benefit.
const minItems = 5

// Progress tracks completed jobs. Safe for concurrent use.
type Progress struct {
	bar *progressbar.ProgressBar // nil when suppressed
}

// New creates a progress bar on stderr.
// If total is less than minItems or stderr is not a TTY, updates are no-ops.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewWriter creates a progress bar on w. tty reports whether w is a terminal.
func NewWriter(w io.Writer, label string, total int, tty bool) *Progress {
	if total < minItems || !tty {
		return &Progress{}
	}
	return &Progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(0),
		progressbar.OptionClearOnFinish(),
	)}
}

// Increment records one finished job.
func (p *Progress) Increment() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Done clears the bar to make way for final output.
func (p *Progress) Done() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

// Visible reports whether anything is drawn.
func (p *Progress) Visible() bool { return p.bar != nil }
