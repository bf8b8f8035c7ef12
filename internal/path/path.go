// Package path resolves user-supplied directory references into the
// canonical form dtags uses as a directory's identity.
//
// A canonical path is absolute, cleaned and has every symlink resolved, so
// "~/src", "./src" and a symlink pointing at the same place all produce the
// same key. The "~" form returned by Collapse is for display only and is
// never stored.
//
// Resolution failures are reported with a boolean rather than an error:
// callers frequently try a value as a path first and fall back to reading it
// as a tag name.
package path

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Home returns the user's home directory, or "" if it cannot be determined.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Expand replaces a leading "~" with the home directory.
// "~user" forms are left untouched.
func Expand(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p
	}
	home := Home()
	if home == "" {
		return p
	}
	return filepath.Join(home, p[1:])
}

// Abs expands "~" and makes p absolute without touching the filesystem.
func Abs(p string) (string, error) {
	return filepath.Abs(Expand(p))
}

// Collapse shortens p for display by replacing the home directory with "~".
// Both the literal and the symlink-resolved home are recognised, since
// canonical paths are resolved and $HOME may not be.
func Collapse(p string) string {
	home := Home()
	if home == "" {
		return p
	}
	homes := []string{home}
	if resolved, err := filepath.EvalSymlinks(home); err == nil && resolved != home {
		homes = append(homes, resolved)
	}
	for _, h := range homes {
		if p == h {
			return "~"
		}
		if strings.HasPrefix(p, h+string(filepath.Separator)) {
			return "~" + p[len(h):]
		}
	}
	return p
}

// Dir resolves raw to a canonical directory path.
// ok is false when raw does not name an existing directory.
func Dir(raw string) (dir string, ok bool) {
	if raw == "" {
		return "", false
	}
	abs, err := filepath.Abs(Expand(raw))
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", false
	}
	if !IsDir(resolved) {
		return "", false
	}
	return resolved, true
}

// Dirs resolves every entry, dropping those that are not directories.
// The result is sorted and free of duplicates.
func Dirs(raws []string) []string {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if dir, ok := Dir(raw); ok {
			out = append(out, dir)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// IsDir reports whether p currently exists and is a directory.
func IsDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
