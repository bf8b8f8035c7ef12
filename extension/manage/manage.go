// Package manage provides the manage extension for dtags.
// It registers commands: tags.
//
// "tags" is the read side of the mapping (list, reverse, JSON) plus the two
// housekeeping operations that act on the whole mapping at once: clean and
// purge.
package manage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/format"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/jpl-au/dtags/internal/validate"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the manage extension.
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

// Name returns "manage" - this extension lists and maintains the mapping.
func (e *Extension) Name() string { return "manage" }

// Init receives the shared store from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Store()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the tags command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagsCmd(),
	}
}

func (e *Extension) newTagsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tags [DIR...] [-t TAG...]",
		Short: "List, clean or purge tags",
		Long: `List tagged directories, or tidy up the mapping.

  dtags tags                  # DIR @tag1 @tag2
  dtags tags -r               # @tag followed by its directories
  dtags tags -j               # JSON
  dtags tags -t work ~/src    # only @work directories and ~/src
  dtags tags -c               # forget directories that no longer exist
  dtags tags -p               # forget everything`,
		ValidArgsFunction: cmd.CompleteDirs,
		RunE:              e.runTags,
	}
	c.Flags().BoolP(extension.FlagJSON, "j", false, "Print JSON")
	c.Flags().BoolP(extension.FlagReverse, "r", false, "Group by tag")
	c.Flags().BoolP(extension.FlagClean, "c", false, "Remove directories that no longer exist")
	c.Flags().BoolP(extension.FlagPurge, "p", false, "Remove every tag")
	c.Flags().BoolP(extension.FlagYes, "y", false, "Apply without asking")
	c.Flags().StringSliceP(extension.FlagTags, "t", nil, "Only show directories with these tags")
	_ = c.RegisterFlagCompletionFunc(extension.FlagTags, cmd.CompleteTags)

	c.MarkFlagsMutuallyExclusive(extension.FlagClean, extension.FlagPurge)
	for _, f := range []string{extension.FlagJSON, extension.FlagReverse} {
		c.MarkFlagsMutuallyExclusive(f, extension.FlagClean)
		c.MarkFlagsMutuallyExclusive(f, extension.FlagPurge)
	}
	return c
}

func (e *Extension) runTags(c *cobra.Command, args []string) error {
	clean, _ := c.Flags().GetBool(extension.FlagClean)
	purge, _ := c.Flags().GetBool(extension.FlagPurge)
	raws, _ := c.Flags().GetStringSlice(extension.FlagTags)

	if (clean || purge) && (len(args) > 0 || len(raws) > 0) {
		err := errors.New("--clean and --purge apply to every directory; DIR and -t are not allowed")
		return cmd.PrintJSONError(err)
	}

	switch {
	case clean:
		return e.runMaintain(c, "clean", tag.Clean, cmd.ApplyOptions{
			Done:    "Tags cleaned successfully",
			Nothing: "Nothing to clean",
		})
	case purge:
		return e.runMaintain(c, "purge", tag.Purge, cmd.ApplyOptions{
			Done:    "Tags purged successfully",
			Nothing: "Nothing to purge",
		})
	}
	return e.runList(c, args, raws)
}

func (e *Extension) runMaintain(c *cobra.Command, action string, op func(store.Relation) (store.Relation, tag.Diff), opts cmd.ApplyOptions) error {
	opts.Yes, _ = c.Flags().GetBool(extension.FlagYes)
	l := log.Event("manage:"+action, action)

	r, err := e.store.Load()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	next, d := op(r)
	applied, err := cmd.Apply(e.store, e.cfg, next, d, opts)
	if applied {
		l.Changes(len(d))
	}
	l.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("%s: %w", action, err))
	}
	return nil
}

func (e *Extension) runList(c *cobra.Command, args, raws []string) error {
	asJSON, _ := c.Flags().GetBool(extension.FlagJSON)
	reverse, _ := c.Flags().GetBool(extension.FlagReverse)
	asJSON = asJSON || cmd.JSON()

	l := log.Event("manage:tags", "list").
		Detail("reverse", reverse).
		Detail("filter", slices.Concat(args, raws))

	r, err := e.store.Load()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	view := filter(r, args, raws)
	w := cmd.Out()
	st := cmd.Style(e.cfg)

	switch {
	case asJSON && reverse:
		err = format.IndexJSON(w, tag.Reverse(view))
	case asJSON:
		err = format.RelationJSON(w, view)
	case len(view) == 0:
		_, err = fmt.Fprintln(w, st.Notice("Nothing to list"))
	case reverse:
		err = format.Reverse(w, tag.Reverse(view), st)
	default:
		err = format.List(w, view, st, cmd.Terminal())
	}
	l.Write(err)
	return err
}

// filter narrows r to the listed directories and tags. Arguments that do
// not resolve are ignored; if none resolve nothing is shown.
func filter(r store.Relation, args, raws []string) store.Relation {
	if len(args) == 0 && len(raws) == 0 {
		return r
	}
	dirs := path.Dirs(args)
	tags := validate.Tags(raws)
	if len(dirs) == 0 && len(tags) == 0 {
		return store.Empty()
	}
	return tag.Select(r, dirs, tags)
}
