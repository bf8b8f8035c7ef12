// Package tag provides the tag extension for dtags.
// It registers commands: tag, untag.
package tag

import (
	"errors"
	"fmt"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/jpl-au/dtags/internal/validate"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
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

// Name returns "tag" - this extension adds and removes tags.
func (e *Extension) Name() string { return "tag" }

// Init receives the shared store from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Store()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the tag and untag commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
		e.newUntagCmd(),
	}
}

// --- tag command ---

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag DIR... [-t TAG...]",
		Short: "Tag directories",
		Long: `Add tags to one or more directories.

Without -t each directory is tagged with its own name.

  dtags tag ~/src/api                 # adds @api
  dtags tag ~/src/api ~/src/web -t work
  dtags tag ~/src/api -t api,backend -r   # replace existing tags`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: cmd.CompleteDirs,
		RunE:              e.runTag,
	}
	c.Flags().StringSliceP(extension.FlagTags, "t", nil, "Tags to add (repeatable or comma separated)")
	c.Flags().BoolP(extension.FlagReplace, "r", false, "Replace existing tags instead of adding")
	c.Flags().BoolP(extension.FlagYes, "y", false, "Apply without asking")
	_ = c.RegisterFlagCompletionFunc(extension.FlagTags, cmd.CompleteTags)
	return c
}

func (e *Extension) runTag(c *cobra.Command, args []string) error {
	raws, _ := c.Flags().GetStringSlice(extension.FlagTags)
	replace, _ := c.Flags().GetBool(extension.FlagReplace)
	yes, _ := c.Flags().GetBool(extension.FlagYes)

	l := log.Event("tag:tag", "tag").Detail("replace", replace)

	dirs, tags, err := parse(args, raws)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}
	l.Detail("dirs", dirs).Detail("tags", tags)

	r, err := e.store.Load()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	next, d := tag.Tag(r, dirs, tags, replace)
	applied, err := cmd.Apply(e.store, e.cfg, next, d, cmd.ApplyOptions{
		Yes:     yes,
		Done:    "Tags saved successfully",
		Nothing: "Nothing to do",
	})
	l.Changes(changes(applied, d)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("tag: %w", err))
	}
	return nil
}

func parse(dirArgs, tagArgs []string) ([]string, []string, error) {
	dirs, err := validate.Dirs(dirArgs)
	if err != nil {
		return nil, nil, err
	}
	tags, err := validate.TagList(tagArgs)
	if err != nil {
		return nil, nil, err
	}
	return dirs, tags, nil
}

// --- untag command ---

func (e *Extension) newUntagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "untag [DIR...] [-t TAG...]",
		Short: "Remove tags from directories",
		Long: `Remove tags from directories.

  dtags untag ~/src/api               # remove every tag from ~/src/api
  dtags untag -t work                 # remove @work from every directory
  dtags untag ~/src/api -t work       # remove @work from ~/src/api

A directory that no longer exists can still be untagged by its path.`,
		ValidArgsFunction: cmd.CompleteDirs,
		RunE:              e.runUntag,
	}
	c.Flags().StringSliceP(extension.FlagTags, "t", nil, "Tags to remove (repeatable or comma separated)")
	c.Flags().BoolP(extension.FlagYes, "y", false, "Apply without asking")
	_ = c.RegisterFlagCompletionFunc(extension.FlagTags, cmd.CompleteTags)
	return c
}

func (e *Extension) runUntag(c *cobra.Command, args []string) error {
	raws, _ := c.Flags().GetStringSlice(extension.FlagTags)
	yes, _ := c.Flags().GetBool(extension.FlagYes)

	l := log.Event("tag:untag", "untag")

	if len(args) == 0 && len(raws) == 0 {
		err := errors.New("one of DIR or -t is required")
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	tags, err := validate.TagList(raws)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	r, err := e.store.Load()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	dirs, err := tag.Known(r, args)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}
	l.Detail("dirs", dirs).Detail("tags", tags)

	next, d := tag.Untag(r, dirs, tags)
	applied, err := cmd.Apply(e.store, e.cfg, next, d, cmd.ApplyOptions{
		Yes:     yes,
		Done:    "Tags removed successfully",
		Nothing: "Nothing to do",
	})
	l.Changes(changes(applied, d)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("untag: %w", err))
	}
	return nil
}

// changes is the number of directories actually written.
func changes(applied bool, d tag.Diff) int {
	if !applied {
		return 0
	}
	return len(d)
}
