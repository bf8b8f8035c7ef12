// apply.go implements the review-confirm-save flow shared by every command
// that changes the mapping.
//
// The diff is printed first. Unless -y was given (or confirm is switched
// off in config) the user must accept it before anything is written.
// Declining is not an error: the command exits cleanly with the mapping
// untouched.

package cmd

import (
	"fmt"
	"io"

	"github.com/jpl-au/dtags/internal/config"
	"github.com/jpl-au/dtags/internal/format"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/tag"
)

// Change is the outcome of a mutating command, printed for -o json.
type Change struct {
	Changes tag.Diff `json:"changes"`
	Applied bool     `json:"applied"`
}

// ApplyOptions controls the review step of Apply.
type ApplyOptions struct {
	Yes     bool   // skip the confirmation prompt
	Force   bool   // save even when the diff is empty, e.g. to replace a corrupt file
	Done    string // printed after saving, e.g. "Tags saved successfully"
	Nothing string // printed for an empty diff, e.g. "Nothing to do"

	// Preview replaces the default diff listing shown before the prompt.
	Preview func(w io.Writer) error
}

// Apply shows d, asks for confirmation and saves next.
// It reports whether next was written. With Force an empty diff still
// goes through the prompt and is saved.
func Apply(s *store.Store, cfg *config.Config, next store.Relation, d tag.Diff, opts ApplyOptions) (bool, error) {
	st := Style(cfg)

	if d.Empty() && !opts.Force {
		if JSON() {
			return false, PrintJSON(Change{Changes: tag.Diff{}})
		}
		fmt.Fprintln(out, st.Notice(opts.Nothing))
		return false, nil
	}

	if !JSON() {
		preview := opts.Preview
		if preview == nil {
			preview = func(w io.Writer) error { return format.Diff(w, d, st) }
		}
		if err := preview(out); err != nil {
			return false, err
		}
	}

	if !opts.Yes && cfg.ConfirmChanges() {
		ok, err := Prompter().Confirm("Apply changes?")
		if err != nil {
			return false, err
		}
		if !ok {
			return false, PrintJSON(Change{Changes: d})
		}
	}

	if err := s.Save(next); err != nil {
		return false, err
	}

	if JSON() {
		return true, PrintJSON(Change{Changes: d, Applied: true})
	}
	fmt.Fprintln(out, st.Notice(opts.Done))
	return true, nil
}
