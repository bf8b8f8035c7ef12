// Package run provides the run extension for dtags.
// It registers commands: run.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/progress"
	"github.com/jpl-au/dtags/internal/run"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the run extension.
type Extension struct {
	store *store.Store
	cfg   *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "run" - this extension runs commands across directories.
func (e *Extension) Name() string { return "run" }

// Init receives the shared store from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Store()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the run command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newRunCmd(),
	}
}

func (e *Extension) newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run TARGET... (-c CMD | -- ARGS...)",
		Short: "Run a command in tagged directories",
		Long: `Run a shell command in every directory a TARGET stands for.

A TARGET is a tag or a directory path. The command runs through the
configured shell (see 'dtags config shell') once per directory, in
directory order.

  dtags run work -c 'git status --short'
  dtags run work ~/notes -- git pull
  dtags run -p work -c 'make test'   # run in parallel

With -p output of each directory is collected and printed once every
command has finished. The exit status is non-zero if any command failed.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: cmd.CompleteTargets,
		RunE:              e.runRun,
	}
	c.Flags().StringP(extension.FlagCmd, "c", "", "Command line to run")
	c.Flags().BoolP(extension.FlagParallel, "p", false, "Run in parallel")
	c.Flags().IntP(extension.FlagJobs, "j", 0, "Maximum parallel jobs (default one per CPU)")
	return c
}

func (e *Extension) runRun(c *cobra.Command, args []string) error {
	parallel, _ := c.Flags().GetBool(extension.FlagParallel)
	jobs, _ := c.Flags().GetInt(extension.FlagJobs)

	targets, command, err := split(c, args)
	l := log.Event("run:run", "run").
		Detail("targets", targets).
		Detail("command", command).
		Detail("parallel", parallel)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	r, err := e.store.Load()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}
	dirs, err := tag.ResolveAll(r, targets, false)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	// Keep stdout for the JSON result.
	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = os.Stderr
	}

	st := cmd.Style(e.cfg)
	runner := &run.Runner{
		Shell:    e.cfg.ShellCommand(),
		Parallel: parallel,
		Limit:    jobs,
		Stdout:   w,
		Stderr:   w,
		Header:   func(j run.Job) string { return st.Header(j.Dir, j.Tags) },
		Progress: func(total int) *progress.Progress { return progress.New("Running", total) },
	}

	list := make([]run.Job, len(dirs))
	for i, d := range dirs {
		list[i] = run.Job{Dir: d, Tags: r.Tags(d)}
	}

	results, err := runner.Run(c.Context(), list, command)
	failed := run.Failed(results)
	l.Changes(len(results)).Detail("failed", failed).Write(err)
	if err != nil {
		return err
	}

	if err := cmd.PrintJSON(results); err != nil {
		return err
	}
	if failed > 0 {
		c.SilenceErrors = true
		return &cmd.ExitCodeError{
			Code: cmd.ExitError,
			Err:  fmt.Errorf("%d of %d commands failed", failed, len(results)),
		}
	}
	return nil
}

// split separates targets from the command. The command comes from -c or
// from everything after "--", quoted so the shell sees the same words.
func split(c *cobra.Command, args []string) ([]string, string, error) {
	command, _ := c.Flags().GetString(extension.FlagCmd)

	targets := args
	if dash := c.ArgsLenAtDash(); dash >= 0 {
		if command != "" {
			return nil, "", errors.New("use either -c or --, not both")
		}
		targets, command = args[:dash], run.Quote(args[dash:])
	}

	switch {
	case len(targets) == 0:
		return nil, "", errors.New("at least one TARGET is required")
	case command == "":
		return nil, "", errors.New("a command is required (-c CMD or -- ARGS)")
	}
	return targets, command, nil
}
