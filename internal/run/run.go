// Package run executes a shell command in a set of tagged directories.
//
// Jobs run one after another with output streamed straight to the
// terminal, or, in parallel mode, concurrently with each job's output
// buffered and printed in directory order once every job has finished.
// All state lives on the Runner value: nothing is shared between runs.
//
// Cancelling the context (Ctrl-C) kills every running child. In parallel
// mode buffered output of unfinished jobs is dropped.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/jpl-au/dtags/internal/progress"
	"golang.org/x/sync/errgroup"
)

// waitDelay bounds how long a cancelled job may keep its output open.
const waitDelay = 500 * time.Millisecond

// Job is one directory to run the command in.
type Job struct {
	Dir  string
	Tags []string
}

// Result is the outcome of one job.
type Result struct {
	Dir      string `json:"dir"`
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"` // set when the shell could not be started
}

// Failed reports whether the job did not exit cleanly.
func (r Result) Failed() bool { return r.ExitCode != 0 || r.Error != "" }

// Runner runs commands through a shell.
type Runner struct {
	Shell    string // e.g. /bin/bash; the command is passed with -c
	Parallel bool
	Limit    int // maximum concurrent jobs in parallel mode; 0 means one per CPU

	Stdout io.Writer
	Stderr io.Writer

	// Header renders the line printed before a job's output.
	// Defaults to "DIR @tag1 @tag2:".
	Header func(Job) string

	// Progress is shown on stderr in parallel mode.
	Progress func(total int) *progress.Progress
}

// Run executes command in every job's directory and returns one result per
// job in input order. The error is non-nil only when ctx was cancelled.
func (r *Runner) Run(ctx context.Context, jobs []Job, command string) ([]Result, error) {
	if r.Parallel {
		return r.parallel(ctx, jobs, command)
	}

	results := make([]Result, 0, len(jobs))
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fmt.Fprintln(r.stdout(), r.header(j))
		res := r.exec(ctx, j, command, r.stdout(), r.stderr())
		r.footer(r.stdout(), res)
		results = append(results, res)
	}
	return results, ctx.Err()
}

func (r *Runner) parallel(ctx context.Context, jobs []Job, command string) ([]Result, error) {
	results := make([]Result, len(jobs))
	bufs := make([]bytes.Buffer, len(jobs))

	bar := &progress.Progress{}
	if r.Progress != nil {
		bar = r.Progress(len(jobs))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for i, j := range jobs {
		g.Go(func() error {
			// Child failures are reported in results, not as group errors,
			// so one failing directory does not cancel the others.
			results[i] = r.exec(gctx, j, command, &bufs[i], &bufs[i])
			bar.Increment()
			return nil
		})
	}
	_ = g.Wait()
	bar.Done()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := r.stdout()
	for i, j := range jobs {
		fmt.Fprintln(out, r.header(j))
		_, _ = bufs[i].WriteTo(out)
		r.footer(out, results[i])
	}
	return results, nil
}

// exec runs one job and converts the outcome to a Result.
func (r *Runner) exec(ctx context.Context, j Job, command string, stdout, stderr io.Writer) Result {
	res := Result{Dir: j.Dir}

	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	cmd.Dir = j.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// Grandchildren of a killed shell may hold the output pipe open.
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Error = err.Error()
	}
	return res
}

func (r *Runner) footer(w io.Writer, res Result) {
	switch {
	case res.Error != "":
		fmt.Fprintf(w, "Error: %s\n", res.Error)
	case res.ExitCode != 0:
		fmt.Fprintf(w, "Exit status: %d\n", res.ExitCode)
	}
	fmt.Fprintln(w)
}

func (r *Runner) header(j Job) string {
	if r.Header != nil {
		return r.Header(j)
	}
	return DefaultHeader(j)
}

// DefaultHeader renders "DIR @tag1 @tag2:".
func DefaultHeader(j Job) string {
	var b strings.Builder
	b.WriteString(j.Dir)
	for _, t := range j.Tags {
		b.WriteString(" @" + t)
	}
	b.WriteByte(':')
	return b.String()
}

func (r *Runner) limit() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return runtime.NumCPU()
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// Failed counts the results that did not exit cleanly.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
