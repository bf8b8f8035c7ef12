// codec.go converts between Relation and the on-disk JSON document.
//
// The document is a single object keyed by canonical directory path, each
// value a sorted array of tag names:
//
//	{
//	  "/home/me/src/api": ["api", "work"],
//	  "/home/me/src/web": ["web", "work"]
//	}
//
// encoding/json sorts map keys on output, which gives byte-for-byte
// reproducible files for the same relation.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/jpl-au/dtags/internal/validate"
)

// Marshal serialises r. Directories with no tags are omitted.
// A relation that Parse would reject is an error, so nothing written by
// Save can fail to load.
func Marshal(r Relation) ([]byte, error) {
	doc := make(map[string][]string, len(r))
	for dir, tags := range r {
		if len(tags) == 0 {
			continue
		}
		sorted := tags.Sorted()
		if err := check(dir, sorted); err != nil {
			return nil, err
		}
		doc[dir] = sorted
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Parse decodes and strictly validates a mapping document. name is used in
// error messages only.
//
// Validation rules:
//   - Blank input is the empty relation (the file created on first use)
//   - The document must be a JSON object of string arrays
//   - Every key must be a clean absolute path
//   - Every directory must have at least one tag
//   - Every tag must already be in canonical form
func Parse(name string, data []byte) (Relation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Empty(), nil
	}

	var doc map[string][]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &CorruptError{Path: name, Err: err}
	}
	if doc == nil {
		return nil, corrupt(name, "expected a JSON object")
	}

	r := make(Relation, len(doc))
	for _, dir := range slices.Sorted(maps.Keys(doc)) {
		tags := doc[dir]
		if len(tags) == 0 {
			return nil, corrupt(name, "directory %q has no tags", dir)
		}
		if err := check(dir, tags); err != nil {
			return nil, &CorruptError{Path: name, Err: err}
		}
		r[dir] = NewSet(tags...)
	}
	return r, nil
}

// check applies the per-entry rules shared by Parse and Marshal.
func check(dir string, tags []string) error {
	if !filepath.IsAbs(dir) || filepath.Clean(dir) != dir {
		return fmt.Errorf("%w: directory %q is not a canonical absolute path", validate.ErrInvalidPath, dir)
	}
	for _, t := range tags {
		if !validate.Canonical(t) {
			return fmt.Errorf("%w: bad tag name %q for directory %q", validate.ErrInvalidTag, t, dir)
		}
	}
	return nil
}
