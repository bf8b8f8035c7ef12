// Package tag implements the operations that change which directories carry
// which tags.
//
// Every operation is a pure function: it takes a relation plus already
// canonical directories and tag names, and returns a new relation together
// with the Diff between the two. The input relation is never modified, and
// nothing is written to disk here; commands show the diff, optionally ask
// for confirmation, then hand the new relation to the store.
//
// Directories are always processed in lexical order so diffs are stable.
// An operation never leaves a directory with an empty tag set behind: the
// directory is dropped as soon as its last tag goes.
package tag

import (
	"path/filepath"
	"slices"

	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/validate"
)

// Tag adds tags to dirs. With no tags, each directory gets a tag derived
// from its base name; a directory whose name yields no valid tag is skipped.
//
// Without replace the result is the union of old and new tags. With
// replace, each directory ends up with exactly the requested tags.
func Tag(r store.Relation, dirs, tags []string, replace bool) (store.Relation, Diff) {
	out := r.Clone()
	var d Diff

	for _, dir := range sorted(dirs) {
		want := store.NewSet(tags...)
		if len(tags) == 0 {
			t, err := validate.Tag(filepath.Base(dir))
			if err != nil {
				continue
			}
			want = store.NewSet(t)
		}

		before := r[dir]
		after := want
		if !replace {
			after = before.Clone()
			for t := range want {
				after.Add(t)
			}
		}

		if c, ok := change(dir, before, after); ok {
			d = append(d, c)
			out[dir] = after
		}
	}
	return out, d
}

// Untag removes tags from dirs. No dirs means every tagged directory; no
// tags means every tag of each directory.
func Untag(r store.Relation, dirs, tags []string) (store.Relation, Diff) {
	if len(dirs) == 0 {
		dirs = r.Dirs()
	}
	drop := store.NewSet(tags...)

	out := r.Clone()
	var d Diff
	for _, dir := range sorted(dirs) {
		before, ok := r[dir]
		if !ok {
			continue
		}
		after := make(store.Set, len(before))
		if len(tags) > 0 {
			for t := range before {
				if !drop.Has(t) {
					after.Add(t)
				}
			}
		}

		c, changed := change(dir, before, after)
		if !changed {
			continue
		}
		d = append(d, c)
		if len(after) == 0 {
			delete(out, dir)
		} else {
			out[dir] = after
		}
	}
	return out, d
}

// Clean drops every directory that no longer exists on disk.
// This is the only operation that looks at the filesystem.
func Clean(r store.Relation) (store.Relation, Diff) {
	var gone []string
	for _, dir := range r.Dirs() {
		if !path.IsDir(dir) {
			gone = append(gone, dir)
		}
	}
	if len(gone) == 0 {
		return r.Clone(), nil
	}
	return Untag(r, gone, nil)
}

// Purge removes everything. The diff lists every directory with all of
// its tags removed.
func Purge(r store.Relation) (store.Relation, Diff) {
	return store.Empty(), Compare(r, store.Empty())
}

func sorted(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}
