// Package nav provides the navigation extension for dtags.
// It registers commands: d.
//
// "dtags d" cannot change the caller's directory itself. It resolves the
// destination and records it in the store's destination file; the shell
// function installed by "dtags activate" then cds there.
package nav

import (
	"fmt"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the nav extension.
type Extension struct {
	store *store.Store
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "nav" - this extension resolves navigation targets.
func (e *Extension) Name() string { return "nav" }

// Init receives the shared store from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Store()
	return nil
}

// Commands returns the d command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newDCmd(),
	}
}

// Destination is the -o json result of d.
type Destination struct {
	Dir string `json:"dir"`
}

func (e *Extension) newDCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "d [DEST]",
		Short: "Change to a directory or tagged directory",
		Long: `Resolve DEST and record it for the shell function to cd into.

DEST is a directory path or a tag. With no DEST the home directory is
used. When a tag matches several directories you are asked to pick one.

Run through the d function defined by 'dtags activate':

  d work          # cd to the @work directory
  d -t src        # treat src as a tag even if ./src exists
  d -             # previous directory (handled by the shell)`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: cmd.CompleteTargets,
		RunE:              e.runD,
	}
	c.Flags().BoolP(extension.FlagTagOnly, "t", false, "Treat DEST as a tag")
	return c
}

func (e *Extension) runD(c *cobra.Command, args []string) error {
	tagOnly, _ := c.Flags().GetBool(extension.FlagTagOnly)

	dest := path.Home()
	if len(args) > 0 {
		dest = args[0]
	}
	l := log.Event("nav:d", "cd").Path(dest)

	dir, err := e.resolve(dest, tagOnly)
	if err == nil {
		err = e.store.SaveDestination(dir)
	}
	l.Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	return cmd.PrintJSON(Destination{Dir: dir})
}

// resolve picks the single directory dest stands for, asking the user
// when a tag matches more than one.
func (e *Extension) resolve(dest string, tagOnly bool) (string, error) {
	r, err := e.store.Load()
	if err != nil {
		return "", err
	}
	dirs, err := tag.Resolve(r, dest, tagOnly)
	if err != nil {
		return "", err
	}
	if len(dirs) == 1 {
		return dirs[0], nil
	}

	i, err := cmd.Prompter().Choose("Select directory", dirs)
	if err != nil {
		return "", fmt.Errorf("select directory: %w", err)
	}
	return dirs[i], nil
}
