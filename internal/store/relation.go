// relation.go defines the in-memory directory -> tags relation.
//
// Separated from store.go so that relation operations (internal/tag) can
// depend on the types without touching persistence.

package store

import (
	"maps"
	"slices"
)

// Set is a set of tag names (or, in a reversed index, directory paths).
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Add inserts v.
func (s Set) Add(v string) { s[v] = struct{}{} }

// Has reports whether v is a member.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy. Cloning a nil set gives an empty one.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	maps.Copy(out, s)
	return out
}

// Relation maps canonical directory paths to their tag sets.
//
// A persisted relation never holds an empty set: operations drop a
// directory as soon as its last tag goes, and Marshal skips any that slip
// through.
type Relation map[string]Set

// Empty returns the "nothing tagged" relation.
func Empty() Relation {
	return Relation{}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (r Relation) Clone() Relation {
	out := make(Relation, len(r))
	for dir, tags := range r {
		out[dir] = tags.Clone()
	}
	return out
}

// Dirs returns every directory in lexical order.
func (r Relation) Dirs() []string {
	return slices.Sorted(maps.Keys(r))
}

// Tags returns the sorted tags of dir, or nil if dir is untagged.
func (r Relation) Tags(dir string) []string {
	tags, ok := r[dir]
	if !ok {
		return nil
	}
	return tags.Sorted()
}

// AllTags returns the sorted union of every tag in use.
func (r Relation) AllTags() []string {
	all := make(Set)
	for _, tags := range r {
		for t := range tags {
			all.Add(t)
		}
	}
	return all.Sorted()
}

// Equal reports whether both relations hold the same directory/tag pairs.
// Empty tag sets are ignored on either side.
func (r Relation) Equal(o Relation) bool {
	return r.contains(o) && o.contains(r)
}

func (r Relation) contains(o Relation) bool {
	for dir, tags := range o {
		if len(tags) == 0 {
			continue
		}
		if !maps.Equal(r[dir], tags) {
			return false
		}
	}
	return true
}
