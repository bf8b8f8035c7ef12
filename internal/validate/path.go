// path.go validates directory arguments that were declared as paths.
//
// The path package answers "is this a directory?" without an error because
// callers often fall back to treating the input as a tag. Commands that only
// accept directories use Dir here to turn that answer into an error.

package validate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/dtags/internal/path"
)

// Dir resolves p to a canonical directory path.
//
// Validation rules:
//   - Empty input rejected
//   - Null bytes rejected
//   - The resolved path must be an existing directory
func Dir(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}
	dir, ok := path.Dir(p)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return dir, nil
}

// Dirs resolves every entry with Dir and stops at the first failure.
// The result keeps input order with duplicates removed.
func Dirs(ps []string) ([]string, error) {
	seen := make(map[string]bool, len(ps))
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		dir, err := Dir(p)
		if err != nil {
			return nil, err
		}
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	return out, nil
}
