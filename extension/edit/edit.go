// Package edit provides the edit extension for dtags.
// It registers commands: edit.
//
// "dtags edit" opens the mapping file in the user's editor. What comes back
// is checked with the same strict parser used for loading, so a typo can
// never be saved. A corrupt mapping is opened as-is so it can be repaired.
package edit

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/dtags/cmd"
	"github.com/jpl-au/dtags/extension"
	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/diff"
	"github.com/jpl-au/dtags/internal/edit"
	"github.com/jpl-au/dtags/internal/log"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the edit extension.
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

// Name returns "edit" - this extension edits the mapping by hand.
func (e *Extension) Name() string { return "edit" }

// Init receives the shared store from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.store = ctx.Store()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the edit command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newEditCmd(),
	}
}

func (e *Extension) newEditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "edit",
		Short: "Edit the mapping in your editor",
		Long: `Open the mapping file in your editor.

The editor is taken from 'dtags config editor', then $VISUAL, then
$EDITOR, then vi. After the editor exits the result is validated, the
changes are shown and you are asked to apply them.

Keys must be absolute directory paths and tags must already be in
canonical form (letters, digits and single hyphens).`,
		Args: cobra.NoArgs,
		RunE: e.runEdit,
	}
	c.Flags().BoolP(extension.FlagYes, "y", false, "Apply without asking")
	return c
}

func (e *Extension) runEdit(c *cobra.Command, _ []string) error {
	yes, _ := c.Flags().GetBool(extension.FlagYes)
	editor := e.cfg.EditorCommand()

	l := log.Event("edit:edit", "edit").
		Path(e.store.MappingPath()).
		Detail("editor", editor)

	old, before, corrupt, err := e.current()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	after, err := edit.Run(c.Context(), before, edit.Options{
		Editor:  editor,
		Pattern: "dtags-mapping-*.json",
	})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("edit: %w", err))
	}

	next, err := store.Parse("edited mapping", after)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	// Compare the normalised documents so whitespace-only edits are no-ops.
	normalised, err := store.Marshal(next)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}
	text := diff.Compute(string(before), string(normalised), "before", "after")
	colour := cmd.Colour(e.cfg)

	d := tag.Compare(old, next)
	applied, err := cmd.Apply(e.store, e.cfg, next, d, cmd.ApplyOptions{
		Yes:     yes,
		Force:   corrupt,
		Done:    "Tags saved successfully",
		Nothing: "Nothing to do",
		Preview: func(w io.Writer) error {
			_, err := fmt.Fprint(w, text.Format(colour))
			return err
		},
	})
	if applied {
		l.Changes(len(d))
	}
	l.Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("edit: %w", err))
	}
	return nil
}

// current returns the relation to compare against and the bytes to put in
// front of the user. A corrupt file is shown verbatim, compared as empty
// and reported so the edited result replaces it even when nothing differs.
func (e *Extension) current() (r store.Relation, data []byte, corrupt bool, err error) {
	r, err = e.store.Load()
	if errors.Is(err, store.ErrCorrupt) {
		raw, readErr := os.ReadFile(e.store.MappingPath())
		if readErr != nil {
			return nil, nil, false, err
		}
		return store.Empty(), raw, true, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	data, err = store.Marshal(r)
	if err != nil {
		return nil, nil, false, err
	}
	return r, data, false, nil
}
