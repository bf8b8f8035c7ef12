// index.go holds the read-side views of a relation: the reversed tag ->
// directories index and the subsets used by listing and navigation.

package tag

import (
	"maps"
	"slices"

	"github.com/jpl-au/dtags/internal/store"
)

// Index maps each tag to the set of directories carrying it.
type Index map[string]store.Set

// Tags returns every indexed tag in lexical order.
func (ix Index) Tags() []string {
	return slices.Sorted(maps.Keys(ix))
}

// Dirs returns the sorted directories carrying tag.
func (ix Index) Dirs(tag string) []string {
	dirs, ok := ix[tag]
	if !ok {
		return nil
	}
	return dirs.Sorted()
}

// Reverse builds the tag -> directories index of r.
func Reverse(r store.Relation) Index {
	ix := make(Index)
	for dir, tags := range r {
		for t := range tags {
			if ix[t] == nil {
				ix[t] = make(store.Set)
			}
			ix[t].Add(dir)
		}
	}
	return ix
}

// Unreverse rebuilds the forward relation from an index.
// Unreverse(Reverse(r)) equals r for any relation without empty tag sets.
func Unreverse(ix Index) store.Relation {
	r := store.Empty()
	for t, dirs := range ix {
		for dir := range dirs {
			if r[dir] == nil {
				r[dir] = make(store.Set)
			}
			r[dir].Add(t)
		}
	}
	return r
}

// Lookup returns the sorted directories tagged with tag.
func Lookup(r store.Relation, tag string) []string {
	var dirs []string
	for dir, tags := range r {
		if tags.Has(tag) {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// Filter keeps the directories carrying at least one of tags.
// With no tags the whole relation is returned.
func Filter(r store.Relation, tags []string) store.Relation {
	return Select(r, nil, tags)
}

// Select keeps directories that are listed in dirs or carry one of tags.
// With neither the whole relation is returned.
func Select(r store.Relation, dirs, tags []string) store.Relation {
	if len(dirs) == 0 && len(tags) == 0 {
		return r.Clone()
	}
	wantDir := store.NewSet(dirs...)
	wantTag := store.NewSet(tags...)

	out := store.Empty()
	for dir, have := range r {
		if wantDir.Has(dir) || intersects(have, wantTag) {
			out[dir] = have.Clone()
		}
	}
	return out
}

func intersects(a, b store.Set) bool {
	for t := range a {
		if b.Has(t) {
			return true
		}
	}
	return false
}
