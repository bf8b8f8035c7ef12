// diff.go defines the change set every relation operation reports.
//
// Commands print the diff before anything is written so the user can
// review and confirm it. The same value is emitted as JSON for -o json.

package tag

import (
	"slices"

	"github.com/jpl-au/dtags/internal/store"
)

// Change describes the tags gained and lost by one directory.
type Change struct {
	Dir     string   `json:"dir"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Diff lists changes ordered by directory. Unchanged directories are absent.
type Diff []Change

// Empty reports whether there is nothing to apply.
func (d Diff) Empty() bool { return len(d) == 0 }

// Dirs returns the directories touched by the diff.
func (d Diff) Dirs() []string {
	out := make([]string, len(d))
	for i, c := range d {
		out[i] = c.Dir
	}
	return out
}

// change builds a Change from two sets, or reports false if they match.
func change(dir string, before, after store.Set) (Change, bool) {
	c := Change{Dir: dir}
	for t := range after {
		if !before.Has(t) {
			c.Added = append(c.Added, t)
		}
	}
	for t := range before {
		if !after.Has(t) {
			c.Removed = append(c.Removed, t)
		}
	}
	if len(c.Added) == 0 && len(c.Removed) == 0 {
		return c, false
	}
	slices.Sort(c.Added)
	slices.Sort(c.Removed)
	return c, true
}

// Compare returns the diff that turns old into next.
func Compare(old, next store.Relation) Diff {
	dirs := make(store.Set, len(old)+len(next))
	for dir := range old {
		dirs.Add(dir)
	}
	for dir := range next {
		dirs.Add(dir)
	}

	var d Diff
	for _, dir := range dirs.Sorted() {
		if c, ok := change(dir, old[dir], next[dir]); ok {
			d = append(d, c)
		}
	}
	return d
}
