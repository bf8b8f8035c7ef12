// target.go resolves the DEST and TARGET arguments of "d" and "run".
//
// An argument naming an existing directory is that directory, whether it
// is tagged or not. Anything else is read as a tag and stands for every
// directory carrying it. tagOnly skips the directory check so a tag can be
// used even when a directory of the same name sits in the working
// directory.

package tag

import (
	"errors"
	"fmt"

	"github.com/jpl-au/dtags/internal/path"
	"github.com/jpl-au/dtags/internal/store"
	"github.com/jpl-au/dtags/internal/validate"
)

// ErrNoTarget is returned when an argument is neither a directory nor a
// tag in use.
var ErrNoTarget = errors.New("invalid destination")

// Resolve returns the sorted directories raw stands for.
func Resolve(r store.Relation, raw string, tagOnly bool) ([]string, error) {
	if !tagOnly {
		if dir, ok := path.Dir(raw); ok {
			return []string{dir}, nil
		}
	}
	t, err := validate.Tag(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, raw)
	}
	dirs := Lookup(r, t)
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTarget, raw)
	}
	return dirs, nil
}

// ResolveAll resolves every argument and merges the results, keeping the
// first occurrence of each directory.
func ResolveAll(r store.Relation, raws []string, tagOnly bool) ([]string, error) {
	seen := make(store.Set)
	var out []string
	for _, raw := range raws {
		dirs, err := Resolve(r, raw, tagOnly)
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			if !seen.Has(d) {
				seen.Add(d)
				out = append(out, d)
			}
		}
	}
	return out, nil
}

// Known resolves DIR arguments of commands that remove tags. A directory
// that has since been deleted is still accepted as long as the relation
// holds it, so it can be untagged by name.
func Known(r store.Relation, raws []string) ([]string, error) {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if dir, ok := path.Dir(raw); ok {
			out = append(out, dir)
			continue
		}
		abs, err := path.Abs(raw)
		if err != nil || r[abs] == nil {
			return nil, fmt.Errorf("%w: %s", validate.ErrInvalidPath, raw)
		}
		out = append(out, abs)
	}
	return sorted(out), nil
}
